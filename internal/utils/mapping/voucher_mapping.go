package mapping

import (
	"github.com/sahajbooks/gst_books_app/internal/core/domain"
	"github.com/sahajbooks/gst_books_app/internal/models"
)

// ToModelVoucher converts a domain Voucher to a model Voucher
func ToModelVoucher(d domain.Voucher) models.Voucher {
	return models.Voucher{
		VoucherID:          d.VoucherID,
		WorkspaceID:        d.WorkspaceID,
		VoucherDate:        d.VoucherDate,
		Narration:          d.Narration,
		CurrencyCode:       d.CurrencyCode,
		Status:             models.VoucherStatus(d.Status),
		Source:             string(d.Source),
		SourceID:           d.SourceID,
		OriginalVoucherID:  d.OriginalVoucherID,
		ReversingVoucherID: d.ReversingVoucherID,
		Amount:             d.Amount,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainVoucher converts a model Voucher to a domain Voucher
func ToDomainVoucher(m models.Voucher) domain.Voucher {
	return domain.Voucher{
		VoucherID:          m.VoucherID,
		WorkspaceID:        m.WorkspaceID,
		VoucherDate:        m.VoucherDate,
		Narration:          m.Narration,
		CurrencyCode:       m.CurrencyCode,
		Status:             domain.VoucherStatus(m.Status),
		Source:             domain.VoucherSource(m.Source),
		SourceID:           m.SourceID,
		OriginalVoucherID:  m.OriginalVoucherID,
		ReversingVoucherID: m.ReversingVoucherID,
		Amount:             m.Amount,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelVoucherEntry converts a domain VoucherEntry to a model VoucherEntry
func ToModelVoucherEntry(d domain.VoucherEntry) models.VoucherEntry {
	return models.VoucherEntry{
		EntryID:          d.EntryID,
		VoucherID:        d.VoucherID,
		AccountID:        d.AccountID,
		Amount:           d.Amount,
		Side:             models.EntrySide(d.Side),
		CurrencyCode:     d.CurrencyCode,
		Notes:            d.Notes,
		AuditFields:      ToModelAuditFields(d.AuditFields),
		RunningBalance:   d.RunningBalance,
		VoucherDate:      d.VoucherDate,
		VoucherNarration: d.VoucherNarration,
	}
}

// ToDomainVoucherEntry converts a model VoucherEntry to a domain VoucherEntry
func ToDomainVoucherEntry(m models.VoucherEntry) domain.VoucherEntry {
	return domain.VoucherEntry{
		EntryID:          m.EntryID,
		VoucherID:        m.VoucherID,
		AccountID:        m.AccountID,
		Amount:           m.Amount,
		Side:             domain.EntrySide(m.Side),
		CurrencyCode:     m.CurrencyCode,
		Notes:            m.Notes,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
		RunningBalance:   m.RunningBalance,
		VoucherDate:      m.VoucherDate,
		VoucherNarration: m.VoucherNarration,
	}
}

// ToDomainVoucherEntrySlice converts a slice of model VoucherEntries to a slice of domain VoucherEntries
func ToDomainVoucherEntrySlice(ms []models.VoucherEntry) []domain.VoucherEntry {
	ds := make([]domain.VoucherEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainVoucherEntry(m)
	}
	return ds
}
