package repositories

// RepositoryProvider groups every repository the service container needs,
// so wiring stays a single argument.
type RepositoryProvider struct {
	AccountRepo      AccountRepositoryFacade
	CurrencyRepo     CurrencyRepositoryFacade
	UserRepo         UserRepositoryFacade
	VoucherRepo      VoucherRepositoryWithTx
	InvoiceRepo      InvoiceRepositoryFacade
	PurchaseRepo     PurchaseBillRepositoryFacade
	ReportingRepo    ReportingRepository
	TrialBalanceRepo TrialBalanceUploadRepository
	WorkspaceRepo    WorkspaceRepositoryFacade
	APITokenRepo     APITokenRepository
}
