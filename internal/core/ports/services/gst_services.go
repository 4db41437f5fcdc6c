package services

import (
	"context"

	"github.com/sahajbooks/gst_books_app/internal/core/domain"
	"github.com/sahajbooks/gst_books_app/internal/dto"
	"github.com/sahajbooks/gst_books_app/internal/utils/gst"
)

// GSTReturnService builds statutory return payloads for a set of filing
// months: one for monthly filers, a quarter's three for quarterly filers.
// Payload field names follow the GST portal JSON schema so the output can
// be uploaded as is.
type GSTReturnService interface {
	// GSTR1 builds the outward supply return from posted invoices of the
	// filing months.
	GSTR1(ctx context.Context, workspaceID string, periods []gst.ReturnPeriod, userID string) (*domain.GSTR1Return, error)

	// GSTR3B builds the summary return from posted invoices and bills of
	// the filing months. A caller supplied ITC override replaces the
	// computed input tax credit wholesale.
	GSTR3B(ctx context.Context, workspaceID string, periods []gst.ReturnPeriod, override *dto.ITCOverrideRequest, userID string) (*domain.GSTR3BReturn, error)

	// TDSReport summarises tax deducted at source by section for the
	// filing months.
	TDSReport(ctx context.Context, workspaceID string, periods []gst.ReturnPeriod, userID string) (*domain.TDSReport, error)
}
