package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/sahajbooks/gst_books_app/internal/apperrors"
	portssvc "github.com/sahajbooks/gst_books_app/internal/core/ports/services"
	"github.com/sahajbooks/gst_books_app/internal/dto"
	"github.com/sahajbooks/gst_books_app/internal/middleware"
	"github.com/sahajbooks/gst_books_app/internal/utils/accounting"
	"github.com/gin-gonic/gin"
)

// purchaseHandler handles HTTP requests related to purchase bills.
type purchaseHandler struct {
	purchaseService portssvc.PurchaseBillSvcFacade
}

// newPurchaseHandler creates a new purchaseHandler.
func newPurchaseHandler(ps portssvc.PurchaseBillSvcFacade) *purchaseHandler {
	return &purchaseHandler{
		purchaseService: ps,
	}
}

// RegisterPurchaseRoutes registers purchase bill routes nested under a workspace.
func RegisterPurchaseRoutes(rg *gin.RouterGroup, purchaseService portssvc.PurchaseBillSvcFacade) {
	h := newPurchaseHandler(purchaseService)

	bills := rg.Group("/purchase-bills")
	{
		bills.POST("", h.createPurchaseBill)
		bills.GET("", h.listPurchaseBills)
		bills.GET("/:bill_id", h.getPurchaseBill)
	}
}

// createPurchaseBill godoc
// @Summary Record and post a vendor bill
// @Description Records a purchase bill, books input tax credit and any TDS deduction, and posts it to the ledger
// @Tags purchases
// @Accept  json
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Param   bill body dto.CreatePurchaseBillRequest true "Bill details"
// @Success 201 {object} dto.PurchaseBillResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 409 {object} map[string]string "Duplicate bill number for this vendor"
// @Failure 500 {object} map[string]string "Failed to record bill"
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/purchase-bills [post]
func (h *purchaseHandler) createPurchaseBill(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workspaceID := c.Param("workspace_id")

	var req dto.CreatePurchaseBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreatePurchaseBill", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(
		slog.String("creator_user_id", creatorUserID),
		slog.String("workspace_id", workspaceID),
		slog.String("bill_number", req.BillNumber),
	)
	logger.Info("Received request to record purchase bill", slog.String("vendor_name", req.VendorName))

	bill, err := h.purchaseService.CreatePurchaseBill(c.Request.Context(), workspaceID, req, creatorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error recording purchase bill", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrDuplicate):
			logger.Warn("Duplicate bill number for vendor")
			c.JSON(http.StatusConflict, gin.H{"error": "A bill with this number already exists for this vendor"})
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Dependency not found recording purchase bill", slog.String("error", err.Error()))
			c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			logger.Warn("User forbidden to record purchase bill")
			c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to perform this action"})
		default:
			logger.Error("Failed to record purchase bill in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record purchase bill"})
		}
		return
	}

	logger.Info("Purchase bill recorded successfully", slog.String("bill_id", bill.BillID))
	c.JSON(http.StatusCreated, dto.ToPurchaseBillResponse(bill, accounting.PurchaseVoucherID(bill.BillID)))
}

// getPurchaseBill godoc
// @Summary Get a purchase bill by ID
// @Description Retrieves a purchase bill with its tax and TDS figures
// @Tags purchases
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Param   bill_id path string true "Bill ID"
// @Success 200 {object} dto.PurchaseBillResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Bill not found"
// @Failure 500 {object} map[string]string "Failed to retrieve bill"
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/purchase-bills/{bill_id} [get]
func (h *purchaseHandler) getPurchaseBill(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workspaceID := c.Param("workspace_id")
	billID := c.Param("bill_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("workspace_id", workspaceID), slog.String("bill_id", billID))

	bill, err := h.purchaseService.GetPurchaseBillByID(c.Request.Context(), workspaceID, billID, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Purchase bill not found")
			c.JSON(http.StatusNotFound, gin.H{"error": "Purchase bill not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			logger.Warn("User forbidden to view purchase bill")
			c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to perform this action"})
		default:
			logger.Error("Failed to get purchase bill from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve purchase bill"})
		}
		return
	}

	logger.Debug("Purchase bill retrieved successfully")
	c.JSON(http.StatusOK, dto.ToPurchaseBillResponse(bill, accounting.PurchaseVoucherID(bill.BillID)))
}

// listPurchaseBills godoc
// @Summary List purchase bills in a workspace
// @Description Retrieves purchase bills filtered by date range, newest first
// @Tags purchases
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Param   limit query int false "Page size" default(20)
// @Param   lastBillID query string false "Keyset cursor from the previous page"
// @Param   from query string false "Start date (YYYY-MM-DD)"
// @Param   to query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.ListPurchaseBillsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to list bills"
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/purchase-bills [get]
func (h *purchaseHandler) listPurchaseBills(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workspaceID := c.Param("workspace_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ListPurchaseBillsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListPurchaseBills", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("workspace_id", workspaceID), slog.String("user_id", userID))

	resp, err := h.purchaseService.ListPurchaseBills(c.Request.Context(), workspaceID, userID, params)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrForbidden):
			logger.Warn("User forbidden to list purchase bills")
			c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to perform this action"})
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Workspace not found")
			c.JSON(http.StatusNotFound, gin.H{"error": "Workspace not found"})
		default:
			logger.Error("Failed to list purchase bills from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list purchase bills"})
		}
		return
	}

	logger.Debug("Purchase bills listed successfully", slog.Int("count", len(resp.Bills)))
	c.JSON(http.StatusOK, resp)
}
