package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/sahajbooks/gst_books_app/internal/apperrors"
	portssvc "github.com/sahajbooks/gst_books_app/internal/core/ports/services"
	"github.com/sahajbooks/gst_books_app/internal/dto"
	"github.com/sahajbooks/gst_books_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// reportingHandler handles HTTP requests related to financial statements.
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// RegisterReportingRoutes registers statement routes nested under a workspace.
func RegisterReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/trial-balance", h.getTrialBalance)
		reports.POST("/trial-balance", h.uploadTrialBalance)
		reports.GET("/trial-balance/export", h.exportTrialBalance)
		reports.GET("/trading-pl", h.getTradingPL)
		reports.GET("/trading-pl/export", h.exportTradingPL)
		reports.GET("/balance-sheet", h.getBalanceSheet)
		reports.GET("/balance-sheet/export", h.exportBalanceSheet)
	}
}

// parseAsOf reads the asOf query parameter, defaulting to today.
func parseAsOf(c *gin.Context) (time.Time, error) {
	asOfStr := c.DefaultQuery("asOf", time.Now().Format("2006-01-02"))
	return time.Parse("2006-01-02", asOfStr)
}

// getTrialBalance godoc
// @Summary Generate a trial balance
// @Description Generates the trial balance as of a date; an uploaded snapshot for that exact date takes precedence over the derived one
// @Tags reports
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Param   asOf query string false "Report date (YYYY-MM-DD)" default(today)
// @Success 200 {object} dto.TrialBalanceResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/reports/trial-balance [get]
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workspaceID := c.Param("workspace_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	asOf, err := parseAsOf(c)
	if err != nil {
		logger.Warn("Invalid asOf date format", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return
	}

	logger = logger.With(slog.String("workspace_id", workspaceID), slog.String("user_id", userID), slog.String("as_of", asOf.Format("2006-01-02")))
	logger.Info("Received request to generate trial balance")

	tb, err := h.reportingService.TrialBalance(c.Request.Context(), workspaceID, asOf, userID)
	if err != nil {
		h.respondReportError(c, logger, err, "generate trial balance")
		return
	}

	logger.Info("Trial balance generated", slog.Int("row_count", len(tb.Rows)), slog.Bool("balanced", tb.Balanced()))
	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(*tb))
}

// uploadTrialBalance godoc
// @Summary Upload an externally prepared trial balance
// @Description Stores a trial balance snapshot for a date; reports for that date then derive from the upload instead of the voucher ledger
// @Tags reports
// @Accept  json
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Param   upload body dto.UploadTrialBalanceRequest true "Trial balance rows"
// @Success 201 {object} dto.TrialBalanceResponse
// @Failure 400 {object} map[string]string "Invalid or unbalanced rows"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to store upload"
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/reports/trial-balance [post]
func (h *reportingHandler) uploadTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workspaceID := c.Param("workspace_id")

	var req dto.UploadTrialBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UploadTrialBalance", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("workspace_id", workspaceID), slog.String("user_id", userID))
	logger.Info("Received trial balance upload", slog.Int("row_count", len(req.Rows)))

	tb, err := h.reportingService.UploadTrialBalance(c.Request.Context(), workspaceID, req, userID)
	if err != nil {
		h.respondReportError(c, logger, err, "store trial balance upload")
		return
	}

	logger.Info("Trial balance upload stored", slog.String("as_of", tb.Date.Format("2006-01-02")))
	c.JSON(http.StatusCreated, dto.ToTrialBalanceResponse(*tb))
}

// exportTrialBalance godoc
// @Summary Export the trial balance
// @Description Renders the trial balance as a CSV or Excel download
// @Tags reports
// @Produce  text/csv
// @Param   workspace_id path string true "Workspace ID"
// @Param   asOf query string false "Report date (YYYY-MM-DD)" default(today)
// @Param   format query string false "Export format: csv or xlsx" default(csv)
// @Success 200 {file} file
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to export report"
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/reports/trial-balance/export [get]
func (h *reportingHandler) exportTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workspaceID := c.Param("workspace_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	asOf, err := parseAsOf(c)
	if err != nil {
		logger.Warn("Invalid asOf date format", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return
	}

	format := c.DefaultQuery("format", "csv")
	logger = logger.With(slog.String("workspace_id", workspaceID), slog.String("user_id", userID), slog.String("format", format))
	logger.Info("Received request to export trial balance")

	filename := fmt.Sprintf("trial-balance-%s", asOf.Format("2006-01-02"))
	switch format {
	case "csv":
		data, err := h.reportingService.ExportTrialBalanceCSV(c.Request.Context(), workspaceID, asOf, userID)
		if err != nil {
			h.respondReportError(c, logger, err, "export trial balance")
			return
		}
		c.Header("Content-Disposition", `attachment; filename="`+filename+`.csv"`)
		c.Data(http.StatusOK, "text/csv", data)
	case "xlsx":
		data, err := h.reportingService.ExportTrialBalanceXLSX(c.Request.Context(), workspaceID, asOf, userID)
		if err != nil {
			h.respondReportError(c, logger, err, "export trial balance")
			return
		}
		c.Header("Content-Disposition", `attachment; filename="`+filename+`.xlsx"`)
		c.Data(http.StatusOK, xlsxContentType, data)
	default:
		logger.Warn("Unsupported export format")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported format. Use csv or xlsx"})
	}
}

// getTradingPL godoc
// @Summary Generate the trading and profit and loss account
// @Description Generates the two-sided trading and P&L account as of a date, with an optional closing stock adjustment
// @Tags reports
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Param   asOf query string false "Report date (YYYY-MM-DD)" default(today)
// @Param   closingStock query number false "Closing stock valuation"
// @Success 200 {object} dto.TradingPLResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/reports/trading-pl [get]
func (h *reportingHandler) getTradingPL(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workspaceID := c.Param("workspace_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	asOf, err := parseAsOf(c)
	if err != nil {
		logger.Warn("Invalid asOf date format", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return
	}

	var params dto.ClosingStockParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for TradingPL", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("workspace_id", workspaceID), slog.String("user_id", userID), slog.String("as_of", asOf.Format("2006-01-02")))
	logger.Info("Received request to generate trading and P&L account")

	report, err := h.reportingService.TradingPL(c.Request.Context(), workspaceID, asOf, params, userID)
	if err != nil {
		h.respondReportError(c, logger, err, "generate trading and P&L account")
		return
	}

	logger.Info("Trading and P&L account generated",
		slog.String("gross_profit", report.GrossProfit.String()),
		slog.String("net_profit", report.NetProfit.String()))
	c.JSON(http.StatusOK, dto.ToTradingPLResponse(report))
}

// exportTradingPL godoc
// @Summary Export the trading and profit and loss account
// @Description Renders the trading and P&L account as a CSV download
// @Tags reports
// @Produce  text/csv
// @Param   workspace_id path string true "Workspace ID"
// @Param   asOf query string false "Report date (YYYY-MM-DD)" default(today)
// @Param   closingStock query number false "Closing stock valuation"
// @Success 200 {file} file
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to export report"
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/reports/trading-pl/export [get]
func (h *reportingHandler) exportTradingPL(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workspaceID := c.Param("workspace_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	asOf, err := parseAsOf(c)
	if err != nil {
		logger.Warn("Invalid asOf date format", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return
	}

	var params dto.ClosingStockParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for trading P&L export", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("workspace_id", workspaceID), slog.String("user_id", userID))
	logger.Info("Received request to export trading and P&L account")

	data, err := h.reportingService.ExportTradingPLCSV(c.Request.Context(), workspaceID, asOf, params, userID)
	if err != nil {
		h.respondReportError(c, logger, err, "export trading and P&L account")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="trading-pl-%s.csv"`, asOf.Format("2006-01-02")))
	c.Data(http.StatusOK, "text/csv", data)
}

// getBalanceSheet godoc
// @Summary Generate a balance sheet
// @Description Generates the balance sheet as of a date; net profit from the P&L flows into equity so both sides agree
// @Tags reports
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Param   asOf query string false "Report date (YYYY-MM-DD)" default(today)
// @Param   closingStock query number false "Closing stock valuation"
// @Success 200 {object} dto.BalanceSheetResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/reports/balance-sheet [get]
func (h *reportingHandler) getBalanceSheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workspaceID := c.Param("workspace_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	asOf, err := parseAsOf(c)
	if err != nil {
		logger.Warn("Invalid asOf date format", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return
	}

	var params dto.ClosingStockParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for BalanceSheet", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("workspace_id", workspaceID), slog.String("user_id", userID), slog.String("as_of", asOf.Format("2006-01-02")))
	logger.Info("Received request to generate balance sheet")

	report, err := h.reportingService.BalanceSheet(c.Request.Context(), workspaceID, asOf, params, userID)
	if err != nil {
		h.respondReportError(c, logger, err, "generate balance sheet")
		return
	}

	logger.Info("Balance sheet generated", slog.String("total_assets", report.TotalAssets.String()))
	c.JSON(http.StatusOK, dto.ToBalanceSheetResponse(report))
}

// exportBalanceSheet godoc
// @Summary Export the balance sheet
// @Description Renders the balance sheet as a CSV download
// @Tags reports
// @Produce  text/csv
// @Param   workspace_id path string true "Workspace ID"
// @Param   asOf query string false "Report date (YYYY-MM-DD)" default(today)
// @Param   closingStock query number false "Closing stock valuation"
// @Success 200 {file} file
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to export report"
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/reports/balance-sheet/export [get]
func (h *reportingHandler) exportBalanceSheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workspaceID := c.Param("workspace_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	asOf, err := parseAsOf(c)
	if err != nil {
		logger.Warn("Invalid asOf date format", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return
	}

	var params dto.ClosingStockParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for balance sheet export", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("workspace_id", workspaceID), slog.String("user_id", userID))
	logger.Info("Received request to export balance sheet")

	data, err := h.reportingService.ExportBalanceSheetCSV(c.Request.Context(), workspaceID, asOf, params, userID)
	if err != nil {
		h.respondReportError(c, logger, err, "export balance sheet")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="balance-sheet-%s.csv"`, asOf.Format("2006-01-02")))
	c.Data(http.StatusOK, "text/csv", data)
}

func (h *reportingHandler) respondReportError(c *gin.Context, logger *slog.Logger, err error, action string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Workspace not found", slog.String("action", action))
		c.JSON(http.StatusNotFound, gin.H{"error": "Workspace not found"})
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn("Forbidden", slog.String("action", action))
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to access this report"})
	default:
		logger.Error("Service error", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action})
	}
}
