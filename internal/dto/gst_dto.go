package dto

import (
	"github.com/shopspring/decimal"
)

// ReturnPeriodParams identifies the GST filing period in query parameters.
// Monthly filers pass year and month; quarterly filers pass year and quarter,
// with year being the calendar year the quarter's months fall in.
type ReturnPeriodParams struct {
	Year    int `form:"year" binding:"required"`
	Month   int `form:"month" binding:"omitempty,min=1,max=12"`
	Quarter int `form:"quarter" binding:"omitempty,min=1,max=4"`
}

// ITCOverrideRequest replaces the ITC figures computed from purchase bills.
// It is sent explicitly per request; there is no stored accepted-ITC state.
type ITCOverrideRequest struct {
	CGST decimal.Decimal `json:"cgst"`
	SGST decimal.Decimal `json:"sgst"`
	IGST decimal.Decimal `json:"igst"`
}
