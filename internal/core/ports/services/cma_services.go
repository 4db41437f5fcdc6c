package services

import (
	"context"

	"github.com/sahajbooks/gst_books_app/internal/core/domain"
	"github.com/sahajbooks/gst_books_app/internal/dto"
)

// CMAService produces bank-lending projections and loan schedules. Both are
// pure computations over caller supplied figures; nothing is persisted.
type CMAService interface {
	// ProjectCMA builds a multi-year CMA projection from historical figures
	// and growth assumptions.
	ProjectCMA(ctx context.Context, workspaceID string, req dto.CMAReportRequest, userID string) (*domain.CMAReport, error)

	// LoanSchedule builds an EMI amortization schedule.
	LoanSchedule(ctx context.Context, req dto.LoanScheduleRequest) (*domain.LoanSchedule, error)
}
