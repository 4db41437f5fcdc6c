package services

import (
	"context"

	"github.com/sahajbooks/gst_books_app/internal/core/domain"
	"github.com/sahajbooks/gst_books_app/internal/dto"
)

// CurrencyReaderSvc reads currency reference data.
type CurrencyReaderSvc interface {
	// GetCurrencyByCode looks up a currency by its ISO 4217 code.
	GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error)

	// ListCurrencies returns every registered currency.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}

// CurrencyWriterSvc registers currencies.
type CurrencyWriterSvc interface {
	CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error)
}

// CurrencySvcFacade bundles the currency service surface.
type CurrencySvcFacade interface {
	CurrencyReaderSvc
	CurrencyWriterSvc
}
