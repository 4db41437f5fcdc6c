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

// invoiceHandler handles HTTP requests related to sales invoices.
type invoiceHandler struct {
	invoiceService portssvc.InvoiceSvcFacade
}

// newInvoiceHandler creates a new invoiceHandler.
func newInvoiceHandler(is portssvc.InvoiceSvcFacade) *invoiceHandler {
	return &invoiceHandler{
		invoiceService: is,
	}
}

// RegisterInvoiceRoutes registers invoice routes nested under a workspace.
func RegisterInvoiceRoutes(rg *gin.RouterGroup, invoiceService portssvc.InvoiceSvcFacade) {
	h := newInvoiceHandler(invoiceService)

	invoices := rg.Group("/invoices")
	{
		invoices.POST("", h.createInvoice)
		invoices.GET("", h.listInvoices)
		invoices.GET("/:invoice_id", h.getInvoice)
	}
}

// createInvoice godoc
// @Summary Create and post a sales invoice
// @Description Creates an invoice, derives the CGST/SGST/IGST split from the parties' states and posts it to the ledger
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Param   invoice body dto.CreateInvoiceRequest true "Invoice details"
// @Success 201 {object} dto.InvoiceResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 409 {object} map[string]string "Duplicate invoice number"
// @Failure 500 {object} map[string]string "Failed to create invoice"
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/invoices [post]
func (h *invoiceHandler) createInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workspaceID := c.Param("workspace_id")

	var req dto.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateInvoice", slog.String("error", err.Error()))
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
		slog.String("invoice_number", req.InvoiceNumber),
	)
	logger.Info("Received request to create invoice", slog.Int("line_count", len(req.Lines)))

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), workspaceID, req, creatorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error creating invoice", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrDuplicate):
			logger.Warn("Duplicate invoice number")
			c.JSON(http.StatusConflict, gin.H{"error": "An invoice with this number already exists"})
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Dependency not found creating invoice", slog.String("error", err.Error()))
			c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			logger.Warn("User forbidden to create invoice")
			c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to perform this action"})
		default:
			logger.Error("Failed to create invoice in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create invoice"})
		}
		return
	}

	logger.Info("Invoice created successfully", slog.String("invoice_id", invoice.InvoiceID))
	c.JSON(http.StatusCreated, dto.ToInvoiceResponse(invoice, accounting.InvoiceVoucherID(invoice.InvoiceID)))
}

// getInvoice godoc
// @Summary Get an invoice by ID
// @Description Retrieves an invoice with its lines and derived tax figures
// @Tags invoices
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Param   invoice_id path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 500 {object} map[string]string "Failed to retrieve invoice"
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/invoices/{invoice_id} [get]
func (h *invoiceHandler) getInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workspaceID := c.Param("workspace_id")
	invoiceID := c.Param("invoice_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("workspace_id", workspaceID), slog.String("invoice_id", invoiceID))

	invoice, err := h.invoiceService.GetInvoiceByID(c.Request.Context(), workspaceID, invoiceID, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Invoice not found")
			c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			logger.Warn("User forbidden to view invoice")
			c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to perform this action"})
		default:
			logger.Error("Failed to get invoice from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve invoice"})
		}
		return
	}

	logger.Debug("Invoice retrieved successfully")
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice, accounting.InvoiceVoucherID(invoice.InvoiceID)))
}

// listInvoices godoc
// @Summary List invoices in a workspace
// @Description Retrieves invoices filtered by date range, newest first
// @Tags invoices
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Param   limit query int false "Page size" default(20)
// @Param   lastInvoiceID query string false "Keyset cursor from the previous page"
// @Param   from query string false "Start date (YYYY-MM-DD)"
// @Param   to query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.ListInvoicesResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to list invoices"
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/invoices [get]
func (h *invoiceHandler) listInvoices(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workspaceID := c.Param("workspace_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ListInvoicesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListInvoices", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("workspace_id", workspaceID), slog.String("user_id", userID))

	resp, err := h.invoiceService.ListInvoices(c.Request.Context(), workspaceID, userID, params)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrForbidden):
			logger.Warn("User forbidden to list invoices")
			c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to perform this action"})
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Workspace not found")
			c.JSON(http.StatusNotFound, gin.H{"error": "Workspace not found"})
		default:
			logger.Error("Failed to list invoices from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list invoices"})
		}
		return
	}

	logger.Debug("Invoices listed successfully", slog.Int("count", len(resp.Invoices)))
	c.JSON(http.StatusOK, resp)
}
