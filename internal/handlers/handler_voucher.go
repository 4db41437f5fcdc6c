package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sahajbooks/gst_books_app/internal/apperrors"
	portssvc "github.com/sahajbooks/gst_books_app/internal/core/ports/services"
	"github.com/sahajbooks/gst_books_app/internal/dto"
	"github.com/sahajbooks/gst_books_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// voucherHandler handles HTTP requests related to vouchers and ledger postings.
type voucherHandler struct {
	voucherService portssvc.VoucherSvcFacade
}

// newVoucherHandler creates a new voucherHandler.
func newVoucherHandler(vs portssvc.VoucherSvcFacade) *voucherHandler {
	return &voucherHandler{
		voucherService: vs,
	}
}

// RegisterVoucherRoutes registers voucher and posting routes nested under a workspace.
func RegisterVoucherRoutes(rg *gin.RouterGroup, voucherService portssvc.VoucherSvcFacade) {
	h := newVoucherHandler(voucherService)

	vouchers := rg.Group("/vouchers")
	{
		vouchers.POST("", h.createVoucher)
		vouchers.GET("", h.listVouchers)
		vouchers.GET("/:voucher_id", h.getVoucher)
		vouchers.PUT("/:voucher_id", h.updateVoucher)
		vouchers.POST("/:voucher_id/reverse", h.reverseVoucher)
	}

	postings := rg.Group("/postings")
	{
		postings.POST("/payments-received", h.postPaymentReceived)
		postings.POST("/payments-made", h.postPaymentMade)
		postings.POST("/credit-notes", h.postCreditNote)
		postings.POST("/debit-notes", h.postDebitNote)
	}
}

// createVoucher godoc
// @Summary Create a manual voucher
// @Description Creates a balanced journal voucher with its debit and credit entries
// @Tags vouchers
// @Accept  json
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Param   voucher body dto.CreateVoucherRequest true "Voucher and entries"
// @Success 201 {object} dto.GetVoucherResponse
// @Failure 400 {object} map[string]string "Invalid input or unbalanced entries"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to create voucher"
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/vouchers [post]
func (h *voucherHandler) createVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workspaceID := c.Param("workspace_id")

	var req dto.CreateVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateVoucher", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("creator_user_id", creatorUserID), slog.String("workspace_id", workspaceID))
	logger.Info("Received request to create voucher", slog.Int("entry_count", len(req.Entries)))

	voucher, err := h.voucherService.CreateVoucher(c.Request.Context(), workspaceID, req, creatorUserID)
	if err != nil {
		h.respondVoucherError(c, logger, err, "create voucher")
		return
	}

	logger.Info("Voucher created successfully", slog.String("voucher_id", voucher.VoucherID))
	c.JSON(http.StatusCreated, dto.GetVoucherResponse{
		Voucher: dto.ToVoucherResponse(voucher),
		Entries: dto.ToEntryResponses(voucher.Entries),
	})
}

// getVoucher godoc
// @Summary Get a voucher and its entries
// @Description Retrieves a voucher with its debit and credit entries
// @Tags vouchers
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Param   voucher_id path string true "Voucher ID"
// @Success 200 {object} dto.GetVoucherResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Voucher not found"
// @Failure 500 {object} map[string]string "Failed to retrieve voucher"
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/vouchers/{voucher_id} [get]
func (h *voucherHandler) getVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workspaceID := c.Param("workspace_id")
	voucherID := c.Param("voucher_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("workspace_id", workspaceID), slog.String("voucher_id", voucherID))

	voucher, err := h.voucherService.GetVoucherByID(c.Request.Context(), workspaceID, voucherID, userID)
	if err != nil {
		h.respondVoucherError(c, logger, err, "retrieve voucher")
		return
	}

	logger.Debug("Voucher retrieved successfully")
	c.JSON(http.StatusOK, dto.GetVoucherResponse{
		Voucher: dto.ToVoucherResponse(voucher),
		Entries: dto.ToEntryResponses(voucher.Entries),
	})
}

// listVouchers godoc
// @Summary List vouchers in a workspace
// @Description Retrieves a paginated list of vouchers, newest first
// @Tags vouchers
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Pagination token from the previous page"
// @Param   includeReversals query bool false "Include reversal vouchers" default(false)
// @Success 200 {object} dto.ListVouchersResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to list vouchers"
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/vouchers [get]
func (h *voucherHandler) listVouchers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workspaceID := c.Param("workspace_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ListVouchersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListVouchers", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("workspace_id", workspaceID), slog.String("user_id", userID))

	resp, err := h.voucherService.ListVouchers(c.Request.Context(), workspaceID, userID, params)
	if err != nil {
		h.respondVoucherError(c, logger, err, "list vouchers")
		return
	}

	logger.Debug("Vouchers listed successfully", slog.Int("count", len(resp.Vouchers)))
	c.JSON(http.StatusOK, resp)
}

// updateVoucher godoc
// @Summary Update a voucher's descriptive fields
// @Description Updates narration or date of a voucher; posted entries are immutable
// @Tags vouchers
// @Accept  json
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Param   voucher_id path string true "Voucher ID"
// @Param   voucher body dto.UpdateVoucherRequest true "Fields to update"
// @Success 200 {object} dto.VoucherResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Voucher not found"
// @Failure 500 {object} map[string]string "Failed to update voucher"
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/vouchers/{voucher_id} [put]
func (h *voucherHandler) updateVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workspaceID := c.Param("workspace_id")
	voucherID := c.Param("voucher_id")

	var req dto.UpdateVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateVoucher", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("workspace_id", workspaceID), slog.String("voucher_id", voucherID))

	voucher, err := h.voucherService.UpdateVoucher(c.Request.Context(), workspaceID, voucherID, req, userID)
	if err != nil {
		h.respondVoucherError(c, logger, err, "update voucher")
		return
	}

	logger.Info("Voucher updated successfully")
	c.JSON(http.StatusOK, dto.ToVoucherResponse(voucher))
}

// reverseVoucher godoc
// @Summary Reverse a voucher
// @Description Creates a reversal voucher whose entries mirror the original
// @Tags vouchers
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Param   voucher_id path string true "Voucher ID to reverse"
// @Success 201 {object} dto.VoucherResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Voucher not found"
// @Failure 409 {object} map[string]string "Voucher already reversed"
// @Failure 500 {object} map[string]string "Failed to reverse voucher"
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/vouchers/{voucher_id}/reverse [post]
func (h *voucherHandler) reverseVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workspaceID := c.Param("workspace_id")
	voucherID := c.Param("voucher_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("workspace_id", workspaceID), slog.String("voucher_id", voucherID), slog.String("user_id", userID))
	logger.Info("Received request to reverse voucher")

	reversal, err := h.voucherService.ReverseVoucher(c.Request.Context(), workspaceID, voucherID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			logger.Warn("Voucher already reversed", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": "Voucher has already been reversed"})
			return
		}
		h.respondVoucherError(c, logger, err, "reverse voucher")
		return
	}

	logger.Info("Voucher reversed successfully", slog.String("reversal_voucher_id", reversal.VoucherID))
	c.JSON(http.StatusCreated, dto.ToVoucherResponse(reversal))
}

// postPaymentReceived godoc
// @Summary Record money received from a customer
// @Description Posts a receipt voucher; repeating the same reference is a safe no-op
// @Tags postings
// @Accept  json
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Param   payment body dto.PostPaymentRequest true "Payment details"
// @Success 201 {object} dto.PostingResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to post payment"
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/postings/payments-received [post]
func (h *voucherHandler) postPaymentReceived(c *gin.Context) {
	h.postPayment(c, "payment received", h.voucherService.PostPaymentReceived)
}

// postPaymentMade godoc
// @Summary Record money paid to a vendor
// @Description Posts a payment voucher; repeating the same reference is a safe no-op
// @Tags postings
// @Accept  json
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Param   payment body dto.PostPaymentRequest true "Payment details"
// @Success 201 {object} dto.PostingResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to post payment"
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/postings/payments-made [post]
func (h *voucherHandler) postPaymentMade(c *gin.Context) {
	h.postPayment(c, "payment made", h.voucherService.PostPaymentMade)
}

type paymentPoster func(ctx context.Context, workspaceID string, req dto.PostPaymentRequest, userID string) (*dto.PostingResponse, error)

func (h *voucherHandler) postPayment(c *gin.Context, kind string, post paymentPoster) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workspaceID := c.Param("workspace_id")

	var req dto.PostPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for payment posting", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("workspace_id", workspaceID), slog.String("user_id", userID), slog.String("reference", req.Reference))
	logger.Info("Received request to post " + kind)

	resp, err := post(c.Request.Context(), workspaceID, req, userID)
	if err != nil {
		h.respondVoucherError(c, logger, err, "post "+kind)
		return
	}

	status := http.StatusCreated
	if resp.AlreadyPosted {
		status = http.StatusOK
	}
	logger.Info("Posting completed", slog.String("voucher_id", resp.VoucherID), slog.Bool("already_posted", resp.AlreadyPosted))
	c.JSON(status, resp)
}

// postCreditNote godoc
// @Summary Record a credit note (sales return)
// @Description Posts a credit note voucher keyed on the client reference
// @Tags postings
// @Accept  json
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Param   note body dto.PostNoteRequest true "Credit note details"
// @Success 201 {object} dto.PostingResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to post note"
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/postings/credit-notes [post]
func (h *voucherHandler) postCreditNote(c *gin.Context) {
	h.postNote(c, "credit note", h.voucherService.PostCreditNote)
}

// postDebitNote godoc
// @Summary Record a debit note (purchase return)
// @Description Posts a debit note voucher keyed on the client reference
// @Tags postings
// @Accept  json
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Param   note body dto.PostNoteRequest true "Debit note details"
// @Success 201 {object} dto.PostingResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to post note"
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/postings/debit-notes [post]
func (h *voucherHandler) postDebitNote(c *gin.Context) {
	h.postNote(c, "debit note", h.voucherService.PostDebitNote)
}

type notePoster func(ctx context.Context, workspaceID string, req dto.PostNoteRequest, userID string) (*dto.PostingResponse, error)

func (h *voucherHandler) postNote(c *gin.Context, kind string, post notePoster) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workspaceID := c.Param("workspace_id")

	var req dto.PostNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for note posting", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("workspace_id", workspaceID), slog.String("user_id", userID), slog.String("reference", req.Reference))
	logger.Info("Received request to post " + kind)

	resp, err := post(c.Request.Context(), workspaceID, req, userID)
	if err != nil {
		h.respondVoucherError(c, logger, err, "post "+kind)
		return
	}

	status := http.StatusCreated
	if resp.AlreadyPosted {
		status = http.StatusOK
	}
	logger.Info("Posting completed", slog.String("voucher_id", resp.VoucherID), slog.Bool("already_posted", resp.AlreadyPosted))
	c.JSON(status, resp)
}

// respondVoucherError maps service errors to HTTP responses.
func (h *voucherHandler) respondVoucherError(c *gin.Context, logger *slog.Logger, err error, action string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("action", action))
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn("Forbidden", slog.String("action", action))
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to perform this action"})
	default:
		logger.Error("Service error", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action})
	}
}
