package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/sahajbooks/gst_books_app/internal/apperrors"
	portssvc "github.com/sahajbooks/gst_books_app/internal/core/ports/services"
	"github.com/sahajbooks/gst_books_app/internal/dto"
	"github.com/sahajbooks/gst_books_app/internal/middleware"
	"github.com/sahajbooks/gst_books_app/internal/utils/gst"
	"github.com/gin-gonic/gin"
)

// gstHandler handles HTTP requests for statutory GST and TDS returns.
type gstHandler struct {
	gstService portssvc.GSTReturnService
}

// newGSTHandler creates a new gstHandler.
func newGSTHandler(gs portssvc.GSTReturnService) *gstHandler {
	return &gstHandler{
		gstService: gs,
	}
}

// RegisterGSTRoutes registers GST return routes nested under a workspace.
func RegisterGSTRoutes(rg *gin.RouterGroup, gstService portssvc.GSTReturnService) {
	h := newGSTHandler(gstService)

	returns := rg.Group("/gst")
	{
		returns.GET("/gstr1", h.getGSTR1)
		returns.GET("/gstr3b", h.getGSTR3B)
		returns.POST("/gstr3b", h.getGSTR3BWithOverride)
		returns.GET("/tds", h.getTDSReport)
	}
}

// bindPeriods reads and validates the filing period query parameters.
// Exactly one of month and quarter must be given; a quarter expands into its
// three monthly periods so a quarterly filer gets the whole quarter's return.
func (h *gstHandler) bindPeriods(c *gin.Context, logger *slog.Logger) ([]gst.ReturnPeriod, bool) {
	var params dto.ReturnPeriodParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid return period parameters", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid period: " + err.Error()})
		return nil, false
	}
	if (params.Month == 0) == (params.Quarter == 0) {
		logger.Warn("Invalid return period parameters", slog.Int("month", params.Month), slog.Int("quarter", params.Quarter))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid period: exactly one of month and quarter is required"})
		return nil, false
	}
	if params.Quarter != 0 {
		// The quarter's months all share one calendar year, so the first of
		// them pins down which financial year the quarter belongs to.
		first := time.April + time.Month((params.Quarter-1)*3)
		if first > time.December {
			first -= 12
		}
		fyStart := gst.FinancialYearStart(time.Date(params.Year, first, 1, 0, 0, 0, 0, time.UTC))
		return gst.PeriodsOfQuarter(fyStart, params.Quarter), true
	}
	return []gst.ReturnPeriod{{Month: time.Month(params.Month), Year: params.Year}}, true
}

// getGSTR1 godoc
// @Summary Build the GSTR-1 outward supply return
// @Description Builds the GSTR-1 payload for a filing month from posted invoices, in the GST portal JSON schema
// @Tags gst
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Param   year query int true "Filing year"
// @Param   month query int false "Filing month (1-12); give exactly one of month and quarter"
// @Param   quarter query int false "Filing quarter (1-4, counted from April)"
// @Success 200 {object} domain.GSTR1Return
// @Failure 400 {object} map[string]string "Invalid period or workspace has no GSTIN"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to build return"
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/gst/gstr1 [get]
func (h *gstHandler) getGSTR1(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workspaceID := c.Param("workspace_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	periods, ok := h.bindPeriods(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("workspace_id", workspaceID), slog.String("user_id", userID), slog.String("period", gst.FilingCode(periods)))
	logger.Info("Received request to build GSTR-1")

	ret, err := h.gstService.GSTR1(c.Request.Context(), workspaceID, periods, userID)
	if err != nil {
		h.respondGSTError(c, logger, err, "build GSTR-1")
		return
	}

	logger.Info("GSTR-1 built successfully", slog.Int("b2b_parties", len(ret.B2B)), slog.Int("b2cs_buckets", len(ret.B2CS)))
	c.JSON(http.StatusOK, ret)
}

// getGSTR3B godoc
// @Summary Build the GSTR-3B summary return
// @Description Builds the GSTR-3B payload for a filing month from posted invoices and purchase bills
// @Tags gst
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Param   year query int true "Filing year"
// @Param   month query int false "Filing month (1-12); give exactly one of month and quarter"
// @Param   quarter query int false "Filing quarter (1-4, counted from April)"
// @Success 200 {object} domain.GSTR3BReturn
// @Failure 400 {object} map[string]string "Invalid period or workspace has no GSTIN"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to build return"
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/gst/gstr3b [get]
func (h *gstHandler) getGSTR3B(c *gin.Context) {
	h.buildGSTR3B(c, nil)
}

// getGSTR3BWithOverride godoc
// @Summary Build GSTR-3B with an ITC override
// @Description Builds the GSTR-3B payload replacing the computed input tax credit with caller supplied figures
// @Tags gst
// @Accept  json
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Param   year query int true "Filing year"
// @Param   month query int false "Filing month (1-12); give exactly one of month and quarter"
// @Param   quarter query int false "Filing quarter (1-4, counted from April)"
// @Param   itc body dto.ITCOverrideRequest true "ITC figures to use"
// @Success 200 {object} domain.GSTR3BReturn
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to build return"
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/gst/gstr3b [post]
func (h *gstHandler) getGSTR3BWithOverride(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var override dto.ITCOverrideRequest
	if err := c.ShouldBindJSON(&override); err != nil {
		logger.Warn("Failed to bind JSON for ITC override", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	h.buildGSTR3B(c, &override)
}

func (h *gstHandler) buildGSTR3B(c *gin.Context, override *dto.ITCOverrideRequest) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workspaceID := c.Param("workspace_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	periods, ok := h.bindPeriods(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("workspace_id", workspaceID), slog.String("user_id", userID), slog.String("period", gst.FilingCode(periods)))
	logger.Info("Received request to build GSTR-3B", slog.Bool("itc_override", override != nil))

	ret, err := h.gstService.GSTR3B(c.Request.Context(), workspaceID, periods, override, userID)
	if err != nil {
		h.respondGSTError(c, logger, err, "build GSTR-3B")
		return
	}

	logger.Info("GSTR-3B built successfully")
	c.JSON(http.StatusOK, ret)
}

// getTDSReport godoc
// @Summary Summarise TDS deducted in a period
// @Description Summarises tax deducted at source by section from purchase bills of the period
// @Tags gst
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Param   year query int true "Filing year"
// @Param   month query int false "Filing month (1-12); give exactly one of month and quarter"
// @Param   quarter query int false "Filing quarter (1-4, counted from April)"
// @Success 200 {object} domain.TDSReport
// @Failure 400 {object} map[string]string "Invalid period"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to build report"
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/gst/tds [get]
func (h *gstHandler) getTDSReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workspaceID := c.Param("workspace_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	periods, ok := h.bindPeriods(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("workspace_id", workspaceID), slog.String("user_id", userID), slog.String("period", gst.FilingCode(periods)))
	logger.Info("Received request to build TDS report")

	report, err := h.gstService.TDSReport(c.Request.Context(), workspaceID, periods, userID)
	if err != nil {
		h.respondGSTError(c, logger, err, "build TDS report")
		return
	}

	logger.Info("TDS report built successfully", slog.Int("sections", len(report.Sections)))
	c.JSON(http.StatusOK, report)
}

func (h *gstHandler) respondGSTError(c *gin.Context, logger *slog.Logger, err error, action string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Workspace not found", slog.String("action", action))
		c.JSON(http.StatusNotFound, gin.H{"error": "Workspace not found"})
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn("Forbidden", slog.String("action", action))
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to perform this action"})
	default:
		logger.Error("Service error", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action})
	}
}
