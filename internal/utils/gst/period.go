package gst

import (
	"fmt"
	"time"
)

// ReturnPeriod identifies one GST filing month.
type ReturnPeriod struct {
	Month time.Month
	Year  int
}

// Code renders the portal's MMYYYY filing-period format.
func (p ReturnPeriod) Code() string {
	return fmt.Sprintf("%02d%d", int(p.Month), p.Year)
}

// Contains reports whether a document date falls inside the period.
func (p ReturnPeriod) Contains(t time.Time) bool {
	return t.Year() == p.Year && t.Month() == p.Month
}

// FinancialYearStart returns the starting calendar year of the Indian
// financial year (April to March) a date belongs to: March 2025 is FY2024-25,
// April 2025 is FY2025-26.
func FinancialYearStart(t time.Time) int {
	if t.Month() < time.April {
		return t.Year() - 1
	}
	return t.Year()
}

// PeriodsContain reports whether a document date falls inside any of the
// filing periods.
func PeriodsContain(periods []ReturnPeriod, t time.Time) bool {
	for _, p := range periods {
		if p.Contains(t) {
			return true
		}
	}
	return false
}

// FilingCode returns the portal period code a set of filing months files
// under. A quarterly return files under the quarter's closing month, so the
// code of the last period is used.
func FilingCode(periods []ReturnPeriod) string {
	if len(periods) == 0 {
		return ""
	}
	return periods[len(periods)-1].Code()
}

// PeriodsOfQuarter expands a quarter (1..4, counted from April) of a
// financial year into its three monthly periods, for quarterly filers.
func PeriodsOfQuarter(fyStart int, quarter int) []ReturnPeriod {
	periods := make([]ReturnPeriod, 0, 3)
	for i := 0; i < 3; i++ {
		monthIndex := (quarter-1)*3 + i // 0-based from April
		month := time.April + time.Month(monthIndex)
		year := fyStart
		if month > time.December {
			month -= 12
			year++
		}
		periods = append(periods, ReturnPeriod{Month: month, Year: year})
	}
	return periods
}
