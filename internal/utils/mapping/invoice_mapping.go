package mapping

import (
	"github.com/sahajbooks/gst_books_app/internal/core/domain"
	"github.com/sahajbooks/gst_books_app/internal/models"
)

// ToModelInvoice converts a domain Invoice to a model Invoice (header only;
// lines are persisted separately).
func ToModelInvoice(d domain.Invoice) models.Invoice {
	return models.Invoice{
		InvoiceID:         d.InvoiceID,
		WorkspaceID:       d.WorkspaceID,
		InvoiceNumber:     d.InvoiceNumber,
		InvoiceDate:       d.InvoiceDate,
		CustomerAccountID: d.CustomerAccountID,
		CustomerName:      d.CustomerName,
		CustomerGSTIN:     d.CustomerGSTIN,
		PlaceOfSupply:     d.PlaceOfSupply,
		TaxableValue:      d.TaxableValue,
		CGST:              d.CGST,
		SGST:              d.SGST,
		IGST:              d.IGST,
		TotalAmount:       d.TotalAmount,
		Status:            models.DocumentStatus(d.Status),
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInvoice converts a model Invoice and its lines to a domain Invoice
func ToDomainInvoice(m models.Invoice, lines []models.InvoiceLine) domain.Invoice {
	d := domain.Invoice{
		InvoiceID:         m.InvoiceID,
		WorkspaceID:       m.WorkspaceID,
		InvoiceNumber:     m.InvoiceNumber,
		InvoiceDate:       m.InvoiceDate,
		CustomerAccountID: m.CustomerAccountID,
		CustomerName:      m.CustomerName,
		CustomerGSTIN:     m.CustomerGSTIN,
		PlaceOfSupply:     m.PlaceOfSupply,
		TaxableValue:      m.TaxableValue,
		CGST:              m.CGST,
		SGST:              m.SGST,
		IGST:              m.IGST,
		TotalAmount:       m.TotalAmount,
		Status:            domain.DocumentStatus(m.Status),
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
	for _, line := range lines {
		d.Lines = append(d.Lines, ToDomainInvoiceLine(line))
	}
	return d
}

// ToModelInvoiceLine converts a domain InvoiceLine to a model InvoiceLine
func ToModelInvoiceLine(d domain.InvoiceLine, invoiceID string) models.InvoiceLine {
	return models.InvoiceLine{
		LineID:       d.LineID,
		InvoiceID:    invoiceID,
		Description:  d.Description,
		HSNCode:      d.HSNCode,
		Quantity:     d.Quantity,
		UnitPrice:    d.UnitPrice,
		GSTRate:      d.GSTRate,
		TaxableValue: d.TaxableValue,
		CGST:         d.CGST,
		SGST:         d.SGST,
		IGST:         d.IGST,
	}
}

// ToDomainInvoiceLine converts a model InvoiceLine to a domain InvoiceLine
func ToDomainInvoiceLine(m models.InvoiceLine) domain.InvoiceLine {
	return domain.InvoiceLine{
		LineID:       m.LineID,
		Description:  m.Description,
		HSNCode:      m.HSNCode,
		Quantity:     m.Quantity,
		UnitPrice:    m.UnitPrice,
		GSTRate:      m.GSTRate,
		TaxableValue: m.TaxableValue,
		CGST:         m.CGST,
		SGST:         m.SGST,
		IGST:         m.IGST,
	}
}
