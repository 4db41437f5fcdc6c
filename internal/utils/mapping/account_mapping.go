package mapping

import (
	"github.com/sahajbooks/gst_books_app/internal/core/domain"
	"github.com/sahajbooks/gst_books_app/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:       d.AccountID,
		WorkspaceID:     d.WorkspaceID,
		Name:            d.Name,
		AccountType:     models.AccountType(d.AccountType),
		Placement:       string(d.Placement),
		SystemCode:      d.SystemCode,
		PartyType:       string(d.PartyType),
		GSTIN:           d.GSTIN,
		CurrencyCode:    d.CurrencyCode,
		ParentAccountID: d.ParentAccountID,
		Description:     d.Description,
		IsActive:        d.IsActive,
		AuditFields:     ToModelAuditFields(d.AuditFields),
		Balance:         d.Balance,
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:       m.AccountID,
		WorkspaceID:     m.WorkspaceID,
		Name:            m.Name,
		AccountType:     domain.AccountType(m.AccountType),
		Placement:       domain.PLPlacement(m.Placement),
		SystemCode:      m.SystemCode,
		PartyType:       domain.PartyType(m.PartyType),
		GSTIN:           m.GSTIN,
		CurrencyCode:    m.CurrencyCode,
		ParentAccountID: m.ParentAccountID,
		Description:     m.Description,
		IsActive:        m.IsActive,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
		Balance:         m.Balance,
	}
}

// ToDomainAccountSlice converts a slice of model Accounts to a slice of domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
