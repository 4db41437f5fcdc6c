package repositories

import (
	"context"

	"github.com/sahajbooks/gst_books_app/internal/core/domain"
)

// CurrencyReader reads currency reference data.
type CurrencyReader interface {
	// FindCurrencyByCode looks up a currency by its ISO 4217 code.
	FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error)

	// ListCurrencies returns every registered currency.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}

// CurrencyWriter persists currency reference data.
type CurrencyWriter interface {
	SaveCurrency(ctx context.Context, currency domain.Currency) error
}

// CurrencyRepositoryFacade bundles the reader and writer for callers that
// need both.
type CurrencyRepositoryFacade interface {
	CurrencyReader
	CurrencyWriter
}

// CurrencyRepositoryWithTx adds transaction control to the facade.
type CurrencyRepositoryWithTx interface {
	CurrencyRepositoryFacade
	TransactionManager
}
