package services

import (
	portsrepo "github.com/sahajbooks/gst_books_app/internal/core/ports/repositories"
	portssvc "github.com/sahajbooks/gst_books_app/internal/core/ports/services"
	"github.com/sahajbooks/gst_books_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Workspace service first since most other services authorize through it.
	workspaceSvc := NewWorkspaceService(repos.WorkspaceRepo, repos.CurrencyRepo)
	container.Workspace = workspaceSvc

	container.Account = NewAccountService(repos.AccountRepo, repos.CurrencyRepo, container.Workspace)

	// Workspace creation seeds the default chart through the account service.
	if ws, ok := workspaceSvc.(*workspaceService); ok {
		ws.SetChartSeeder(container.Account)
	}

	container.Currency = NewCurrencyService(repos.CurrencyRepo)
	container.User = NewUserService(repos.UserRepo)

	container.Voucher = NewVoucherService(repos.VoucherRepo, repos.AccountRepo, container.Account, container.Workspace)
	container.Invoice = NewInvoiceService(repos.InvoiceRepo, repos.VoucherRepo, repos.AccountRepo, container.Account, container.Workspace)
	container.Purchase = NewPurchaseService(repos.PurchaseRepo, repos.VoucherRepo, repos.AccountRepo, container.Account, container.Workspace)

	container.Reporting = NewReportingService(repos.ReportingRepo, repos.TrialBalanceRepo, container.Workspace)
	container.GST = NewGSTService(repos.InvoiceRepo, repos.PurchaseRepo, container.Workspace)
	container.CMA = NewCMAService(container.Workspace)

	container.TokenService = NewTokenService(cfg, container.User)
	container.GoogleOAuthHandler = NewGoogleOAuthHandlerService(cfg)
	container.APIToken = NewAPITokenService(repos.APITokenRepo, container.User)

	return container
}
