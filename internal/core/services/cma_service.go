package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sahajbooks/gst_books_app/internal/apperrors"
	"github.com/sahajbooks/gst_books_app/internal/core/domain"
	portssvc "github.com/sahajbooks/gst_books_app/internal/core/ports/services"
	"github.com/sahajbooks/gst_books_app/internal/dto"
	"github.com/sahajbooks/gst_books_app/internal/middleware"
	"github.com/sahajbooks/gst_books_app/internal/utils/cma"
	"github.com/sahajbooks/gst_books_app/internal/utils/loan"
)

// cmaService implements portssvc.CMAService. Projections and schedules are
// pure computations over the caller's figures; nothing is persisted.
type cmaService struct {
	workspaceSvc portssvc.WorkspaceAuthorizerSvc
}

// NewCMAService creates a new CMAService.
func NewCMAService(workspaceSvc portssvc.WorkspaceAuthorizerSvc) portssvc.CMAService {
	return &cmaService{workspaceSvc: workspaceSvc}
}

// Ensure cmaService implements the CMAService interface
var _ portssvc.CMAService = (*cmaService)(nil)

// ProjectCMA builds a multi-year CMA projection from historical figures and
// growth assumptions.
func (s *cmaService) ProjectCMA(ctx context.Context, workspaceID string, req dto.CMAReportRequest, userID string) (*domain.CMAReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.workspaceSvc.AuthorizeUserAction(ctx, userID, workspaceID, domain.RoleReadOnly); err != nil {
		logger.Warn("User not authorized to build CMA projection", slog.String("user_id", userID), slog.String("workspace_id", workspaceID))
		return nil, err
	}

	if len(req.History) == 0 {
		return nil, fmt.Errorf("%w: at least one historical year is required", apperrors.ErrValidation)
	}
	if len(req.Assumptions) == 0 {
		return nil, fmt.Errorf("%w: at least one projected year is required", apperrors.ErrValidation)
	}

	report := cma.Project(dto.ToDomainCMARequest(workspaceID, req))

	logger.Info("CMA projection built",
		slog.String("workspace_id", workspaceID),
		slog.Int("history_years", len(req.History)),
		slog.Int("projected_years", len(req.Assumptions)))
	return &report, nil
}

// LoanSchedule builds an EMI amortization schedule.
func (s *cmaService) LoanSchedule(ctx context.Context, req dto.LoanScheduleRequest) (*domain.LoanSchedule, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Principal.IsPositive() {
		return nil, fmt.Errorf("%w: principal must be positive", apperrors.ErrValidation)
	}
	if req.AnnualRatePct.IsNegative() {
		return nil, fmt.Errorf("%w: rate cannot be negative", apperrors.ErrValidation)
	}
	if req.TermMonths <= 0 {
		return nil, fmt.Errorf("%w: term must be at least one month", apperrors.ErrValidation)
	}

	schedule := loan.BuildSchedule(req.Principal, req.AnnualRatePct, req.TermMonths)

	logger.Debug("Loan schedule built",
		slog.String("principal", req.Principal.String()),
		slog.Int("term_months", req.TermMonths),
		slog.String("emi", schedule.EMI.String()))
	return &schedule, nil
}
