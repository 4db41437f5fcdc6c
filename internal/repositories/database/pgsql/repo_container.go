package pgsql

import (
	portsrepo "github.com/sahajbooks/gst_books_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	currencyRepo := newPgxCurrencyRepository(dbPool)
	userRepo := newPgxUserRepository(dbPool)
	voucherRepo := newPgxVoucherRepository(dbPool, accountRepo)
	invoiceRepo := newPgxInvoiceRepository(dbPool)
	purchaseRepo := newPgxPurchaseRepository(dbPool)
	workspaceRepo := newPgxWorkspaceRepository(dbPool)
	reportingRepo := newReportingRepository(dbPool, voucherRepo, accountRepo)
	trialBalanceRepo := newTrialBalanceRepository(dbPool)
	apiTokenRepo := newPgxAPITokenRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:      accountRepo,
		CurrencyRepo:     currencyRepo,
		UserRepo:         userRepo,
		VoucherRepo:      voucherRepo,
		InvoiceRepo:      invoiceRepo,
		PurchaseRepo:     purchaseRepo,
		WorkspaceRepo:    workspaceRepo,
		ReportingRepo:    reportingRepo,
		TrialBalanceRepo: trialBalanceRepo,
		APITokenRepo:     apiTokenRepo,
	}
}
