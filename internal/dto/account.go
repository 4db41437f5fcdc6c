package dto

import (
	"time"

	"github.com/sahajbooks/gst_books_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest creates a ledger account. GSTIN applies only to
// party accounts and may be empty for unregistered parties.
type CreateAccountRequest struct {
	Name            string             `json:"name" binding:"required"`
	AccountType     domain.AccountType `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY INCOME EXPENSE"`
	Placement       domain.PLPlacement `json:"placement" binding:"omitempty,oneof=DIRECT INDIRECT NONE"`
	PartyType       domain.PartyType   `json:"partyType" binding:"omitempty,oneof=CUSTOMER VENDOR NONE"`
	GSTIN           string             `json:"gstin"`
	CurrencyCode    string             `json:"currencyCode" binding:"required"`
	ParentAccountID *string            `json:"parentAccountID"`
	Description     string             `json:"description"`
	UserID          string             `json:"userID"`
}

// AccountResponse is the API view of a ledger account.
type AccountResponse struct {
	AccountID       string             `json:"accountID"`
	Name            string             `json:"name"`
	AccountType     domain.AccountType `json:"accountType"`
	Placement       domain.PLPlacement `json:"placement"`
	SystemCode      string             `json:"systemCode,omitempty"`
	PartyType       domain.PartyType   `json:"partyType"`
	GSTIN           string             `json:"gstin,omitempty"`
	CurrencyCode    string             `json:"currencyCode"`
	ParentAccountID string             `json:"parentAccountID"`
	Description     string             `json:"description"`
	IsActive        bool               `json:"isActive"`
	CreatedAt       time.Time          `json:"createdAt"`
	CreatedBy       string             `json:"createdBy"`
	LastUpdatedAt   time.Time          `json:"lastUpdatedAt"`
	LastUpdatedBy   string             `json:"lastUpdatedBy"`
}

// UpdateAccountRequest carries the updatable account fields. Pointers
// distinguish omitted fields from zero values.
type UpdateAccountRequest struct {
	Name        *string             `json:"name"`
	Description *string             `json:"description"`
	Placement   *domain.PLPlacement `json:"placement" binding:"omitempty,oneof=DIRECT INDIRECT NONE"`
	PartyType   *domain.PartyType   `json:"partyType" binding:"omitempty,oneof=CUSTOMER VENDOR NONE"`
	GSTIN       *string             `json:"gstin"`
	IsActive    *bool               `json:"isActive"`
}

// ToAccountResponse maps a domain account to its API view.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:       acc.AccountID,
		Name:            acc.Name,
		AccountType:     acc.AccountType,
		Placement:       acc.Placement,
		SystemCode:      acc.SystemCode,
		PartyType:       acc.PartyType,
		GSTIN:           acc.GSTIN,
		CurrencyCode:    acc.CurrencyCode,
		ParentAccountID: acc.ParentAccountID,
		Description:     acc.Description,
		IsActive:        acc.IsActive,
		CreatedAt:       acc.CreatedAt,
		CreatedBy:       acc.CreatedBy,
		LastUpdatedAt:   acc.LastUpdatedAt,
		LastUpdatedBy:   acc.LastUpdatedBy,
	}
}

// ToListAccountResponse maps domain accounts to their API views.
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}

// AccountBalanceResponse answers an account balance query.
type AccountBalanceResponse struct {
	AccountID string          `json:"accountID"`
	Balance   decimal.Decimal `json:"balance"`
}

// ListAccountsParams are the query parameters for the account list endpoint.
type ListAccountsParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListAccountsResponse wraps a page of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}
