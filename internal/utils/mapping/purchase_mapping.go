package mapping

import (
	"github.com/sahajbooks/gst_books_app/internal/core/domain"
	"github.com/sahajbooks/gst_books_app/internal/models"
)

// ToModelPurchaseBill converts a domain PurchaseBill to a model PurchaseBill
func ToModelPurchaseBill(d domain.PurchaseBill) models.PurchaseBill {
	return models.PurchaseBill{
		BillID:          d.BillID,
		WorkspaceID:     d.WorkspaceID,
		BillNumber:      d.BillNumber,
		BillDate:        d.BillDate,
		VendorAccountID: d.VendorAccountID,
		VendorName:      d.VendorName,
		VendorGSTIN:     d.VendorGSTIN,
		TaxableValue:    d.TaxableValue,
		GSTAmount:       d.GSTAmount,
		TotalAmount:     d.TotalAmount,
		TDSSection:      d.TDSSection,
		TDSAmount:       d.TDSAmount,
		Status:          models.DocumentStatus(d.Status),
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPurchaseBill converts a model PurchaseBill to a domain PurchaseBill
func ToDomainPurchaseBill(m models.PurchaseBill) domain.PurchaseBill {
	return domain.PurchaseBill{
		BillID:          m.BillID,
		WorkspaceID:     m.WorkspaceID,
		BillNumber:      m.BillNumber,
		BillDate:        m.BillDate,
		VendorAccountID: m.VendorAccountID,
		VendorName:      m.VendorName,
		VendorGSTIN:     m.VendorGSTIN,
		TaxableValue:    m.TaxableValue,
		GSTAmount:       m.GSTAmount,
		TotalAmount:     m.TotalAmount,
		TDSSection:      m.TDSSection,
		TDSAmount:       m.TDSAmount,
		Status:          domain.DocumentStatus(m.Status),
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPurchaseBillSlice converts a slice of model PurchaseBills to domain PurchaseBills
func ToDomainPurchaseBillSlice(ms []models.PurchaseBill) []domain.PurchaseBill {
	ds := make([]domain.PurchaseBill, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPurchaseBill(m)
	}
	return ds
}

// ToDomainTrialBalanceRow converts an uploaded trial balance row to a report row.
func ToDomainTrialBalanceRow(m models.TrialBalanceUploadRow) domain.TrialBalanceRow {
	return domain.TrialBalanceRow{
		AccountID:   m.RowID,
		AccountName: m.AccountName,
		AccountType: domain.AccountType(m.AccountType),
		Placement:   domain.PLPlacement(m.Placement),
		Debit:       m.Debit,
		Credit:      m.Credit,
	}
}
