package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Account            AccountSvcFacade
	Currency           CurrencySvcFacade
	User               UserSvcFacade
	Voucher            VoucherSvcFacade
	Invoice            InvoiceSvcFacade
	Purchase           PurchaseBillSvcFacade
	Workspace          WorkspaceSvcFacade
	Reporting          ReportingService
	GST                GSTReturnService
	CMA                CMAService
	TokenService       TokenSvcFacade
	GoogleOAuthHandler GoogleOAuthHandlerSvcFacade
	APIToken           APITokenSvc
}
