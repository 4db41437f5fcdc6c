package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/sahajbooks/gst_books_app/internal/apperrors"
	portssvc "github.com/sahajbooks/gst_books_app/internal/core/ports/services"
	"github.com/sahajbooks/gst_books_app/internal/dto"
	"github.com/sahajbooks/gst_books_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// cmaHandler handles HTTP requests for bank-lending projections.
type cmaHandler struct {
	cmaService portssvc.CMAService
}

// newCMAHandler creates a new cmaHandler.
func newCMAHandler(cs portssvc.CMAService) *cmaHandler {
	return &cmaHandler{
		cmaService: cs,
	}
}

// RegisterCMARoutes registers CMA projection routes nested under a workspace.
func RegisterCMARoutes(rg *gin.RouterGroup, cmaService portssvc.CMAService) {
	h := newCMAHandler(cmaService)

	cma := rg.Group("/cma")
	{
		cma.POST("/projections", h.projectCMA)
		cma.POST("/loan-schedule", h.loanSchedule)
	}
}

// projectCMA godoc
// @Summary Build a CMA projection
// @Description Projects revenue, profitability, net worth and lending ratios over future years from historical figures and growth assumptions
// @Tags cma
// @Accept  json
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Param   request body dto.CMAReportRequest true "Historical figures and assumptions"
// @Success 200 {object} domain.CMAReport
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to build projection"
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/cma/projections [post]
func (h *cmaHandler) projectCMA(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workspaceID := c.Param("workspace_id")

	var req dto.CMAReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CMA projection", slog.String("error", err.Error()))
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
	logger.Info("Received request to build CMA projection",
		slog.Int("history_years", len(req.History)),
		slog.Int("projected_years", len(req.Assumptions)))

	report, err := h.cmaService.ProjectCMA(c.Request.Context(), workspaceID, req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error building CMA projection", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Workspace not found")
			c.JSON(http.StatusNotFound, gin.H{"error": "Workspace not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			logger.Warn("User forbidden to build CMA projection")
			c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to perform this action"})
		default:
			logger.Error("Failed to build CMA projection", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build CMA projection"})
		}
		return
	}

	logger.Info("CMA projection built successfully", slog.Int("years", len(report.Years)))
	c.JSON(http.StatusOK, report)
}

// loanSchedule godoc
// @Summary Build an EMI amortization schedule
// @Description Computes the EMI and month-by-month principal/interest split for a loan
// @Tags cma
// @Accept  json
// @Produce  json
// @Param   request body dto.LoanScheduleRequest true "Loan terms"
// @Success 200 {object} domain.LoanSchedule
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to build schedule"
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/cma/loan-schedule [post]
func (h *cmaHandler) loanSchedule(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.LoanScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for loan schedule", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger.Info("Received request to build loan schedule", slog.Int("term_months", req.TermMonths))

	schedule, err := h.cmaService.LoanSchedule(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error building loan schedule", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to build loan schedule", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build loan schedule"})
		return
	}

	logger.Info("Loan schedule built successfully", slog.Int("installments", len(schedule.Installments)))
	c.JSON(http.StatusOK, schedule)
}
