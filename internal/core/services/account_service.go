package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/sahajbooks/gst_books_app/internal/apperrors"
	"github.com/sahajbooks/gst_books_app/internal/core/domain"
	portsrepo "github.com/sahajbooks/gst_books_app/internal/core/ports/repositories"
	portssvc "github.com/sahajbooks/gst_books_app/internal/core/ports/services"
	"github.com/sahajbooks/gst_books_app/internal/dto"
	"github.com/sahajbooks/gst_books_app/internal/middleware"
	"github.com/shopspring/decimal"
)

// defaultChartSpec describes one account seeded into every new workspace.
type defaultChartSpec struct {
	systemCode  string
	name        string
	accountType domain.AccountType
	placement   domain.PLPlacement
}

// defaultChart is the standard chart of accounts seeded by EnsureDefaultChart.
// The system codes are the ones the voucher translators resolve against.
var defaultChart = []defaultChartSpec{
	{domain.CodeSales, "Sales", domain.Income, domain.PlacementDirect},
	{domain.CodePurchases, "Purchases", domain.Expense, domain.PlacementDirect},
	{domain.CodeStock, "Stock in Hand", domain.Asset, domain.PlacementNone},
	{domain.CodeCash, "Cash in Hand", domain.Asset, domain.PlacementNone},
	{domain.CodeBank, "Bank", domain.Asset, domain.PlacementNone},
	{domain.CodeReceivables, "Sundry Debtors", domain.Asset, domain.PlacementNone},
	{domain.CodePayables, "Sundry Creditors", domain.Liability, domain.PlacementNone},
	{domain.CodeCapital, "Capital", domain.Equity, domain.PlacementNone},
	{domain.CodeOutputCGST, "Output CGST", domain.Liability, domain.PlacementNone},
	{domain.CodeOutputSGST, "Output SGST", domain.Liability, domain.PlacementNone},
	{domain.CodeOutputIGST, "Output IGST", domain.Liability, domain.PlacementNone},
	{domain.CodeInputGST, "Input GST Credit", domain.Asset, domain.PlacementNone},
	{domain.CodeTDSPayable, "TDS Payable", domain.Liability, domain.PlacementNone},
}

// accountService implements portssvc.AccountSvcFacade.
type accountService struct {
	accountRepo  portsrepo.AccountRepositoryFacade
	currencyRepo portsrepo.CurrencyReader
	workspaceSvc portssvc.WorkspaceAuthorizerSvc
}

// NewAccountService creates a new account service.
func NewAccountService(repo portsrepo.AccountRepositoryFacade, currencyRepo portsrepo.CurrencyReader, workspaceSvc portssvc.WorkspaceAuthorizerSvc) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo:  repo,
		currencyRepo: currencyRepo,
		workspaceSvc: workspaceSvc,
	}
}

// Ensure accountService implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, workspaceID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.workspaceSvc.AuthorizeUserAction(ctx, userID, workspaceID, domain.RoleMember); err != nil {
		logger.Warn("User not authorized to create account", slog.String("user_id", userID), slog.String("workspace_id", workspaceID))
		return nil, err
	}

	if s.currencyRepo != nil {
		if _, err := s.currencyRepo.FindCurrencyByCode(ctx, req.CurrencyCode); err != nil {
			logger.Warn("Invalid currency code for new account", slog.String("currency_code", req.CurrencyCode))
			return nil, fmt.Errorf("invalid currency code: %w", err)
		}
	}

	now := time.Now()
	newAccountID := uuid.NewString()

	parentID := ""
	if req.ParentAccountID != nil {
		parentID = *req.ParentAccountID
		parentAccount, err := s.accountRepo.FindAccountByID(ctx, parentID)
		if err != nil {
			logger.Warn("Failed to find parent account", slog.String("parent_id", parentID), slog.String("error", err.Error()))
			return nil, fmt.Errorf("invalid parent account: %w", err)
		}
		if parentAccount.WorkspaceID != workspaceID {
			logger.Warn("Parent account belongs to different workspace", slog.String("parent_workspace", parentAccount.WorkspaceID), slog.String("requested_workspace", workspaceID))
			return nil, fmt.Errorf("parent account belongs to different workspace: %w", apperrors.ErrValidation)
		}
	}

	placement := req.Placement
	if placement == "" {
		placement = domain.PlacementNone
	}
	if placement != domain.PlacementNone && req.AccountType != domain.Income && req.AccountType != domain.Expense {
		return nil, fmt.Errorf("%w: placement applies only to income and expense accounts", apperrors.ErrValidation)
	}

	partyType := req.PartyType
	if partyType == "" {
		partyType = domain.PartyNone
	}
	if req.GSTIN != "" && partyType == domain.PartyNone {
		return nil, fmt.Errorf("%w: gstin can only be set on customer or vendor accounts", apperrors.ErrValidation)
	}

	account := domain.Account{
		AccountID:       newAccountID,
		WorkspaceID:     workspaceID,
		Name:            req.Name,
		AccountType:     req.AccountType,
		Placement:       placement,
		PartyType:       partyType,
		GSTIN:           req.GSTIN,
		CurrencyCode:    req.CurrencyCode,
		ParentAccountID: parentID,
		Description:     req.Description,
		IsActive:        true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account", slog.String("error", err.Error()), slog.String("account_id", account.AccountID), slog.String("workspace_id", workspaceID))
		return nil, err
	}

	logger.Info("Account created successfully", slog.String("account_id", account.AccountID), slog.String("workspace_id", workspaceID))
	return &account, nil
}

// EnsureDefaultChart seeds the standard chart of accounts for a workspace.
// System accounts that already exist are left alone, so it is safe to call
// again for an established workspace.
func (s *accountService) EnsureDefaultChart(ctx context.Context, workspaceID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.workspaceSvc.AuthorizeUserAction(ctx, userID, workspaceID, domain.RoleMember); err != nil {
		logger.Warn("User not authorized to seed chart of accounts", slog.String("user_id", userID), slog.String("workspace_id", workspaceID))
		return err
	}

	existing, err := s.accountRepo.GetSystemAccountMap(ctx, workspaceID)
	if err != nil {
		logger.Error("Failed to load system account map", slog.String("error", err.Error()), slog.String("workspace_id", workspaceID))
		return fmt.Errorf("failed to load system account map: %w", err)
	}

	now := time.Now()
	seeded := 0
	for _, spec := range defaultChart {
		if _, ok := existing[spec.systemCode]; ok {
			continue
		}
		account := domain.Account{
			AccountID:    uuid.NewString(),
			WorkspaceID:  workspaceID,
			Name:         spec.name,
			AccountType:  spec.accountType,
			Placement:    spec.placement,
			SystemCode:   spec.systemCode,
			PartyType:    domain.PartyNone,
			CurrencyCode: "INR",
			IsActive:     true,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
		if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
			logger.Error("Failed to seed system account", slog.String("error", err.Error()), slog.String("system_code", spec.systemCode), slog.String("workspace_id", workspaceID))
			return fmt.Errorf("failed to seed account %s: %w", spec.systemCode, err)
		}
		seeded++
	}

	logger.Info("Default chart of accounts ensured", slog.String("workspace_id", workspaceID), slog.Int("seeded", seeded))
	return nil
}

func (s *accountService) GetAccountByID(ctx context.Context, workspaceID string, accountID string, userID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.workspaceSvc.AuthorizeUserAction(ctx, userID, workspaceID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find account by ID", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return nil, err
	}

	// Obscure existence of accounts from other workspaces
	if account.WorkspaceID != workspaceID {
		logger.Debug("Account found but belongs to different workspace", slog.String("account_id", accountID), slog.String("account_workspace", account.WorkspaceID), slog.String("requested_workspace", workspaceID))
		return nil, apperrors.ErrNotFound
	}

	return account, nil
}

func (s *accountService) GetAccountBySystemCode(ctx context.Context, workspaceID string, systemCode string, userID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.workspaceSvc.AuthorizeUserAction(ctx, userID, workspaceID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	account, err := s.accountRepo.FindAccountBySystemCode(ctx, workspaceID, systemCode)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find account by system code", slog.String("error", err.Error()), slog.String("system_code", systemCode), slog.String("workspace_id", workspaceID))
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) GetAccountByIDs(ctx context.Context, workspaceID string, accountIDs []string, userID string) (map[string]domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		logger.Error("Failed to find accounts by IDs", slog.String("error", err.Error()))
		return nil, err
	}

	for _, account := range accounts {
		if account.WorkspaceID != workspaceID {
			logger.Debug("Account found but belongs to different workspace", slog.String("account_id", account.AccountID), slog.String("account_workspace", account.WorkspaceID), slog.String("requested_workspace", workspaceID))
			return nil, apperrors.ErrNotFound
		}
	}

	return accounts, nil
}

func (s *accountService) ListAccounts(ctx context.Context, workspaceID string, limit int, offset int) ([]domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	accounts, err := s.accountRepo.ListAccounts(ctx, workspaceID, limit, offset)
	if err != nil {
		logger.Error("Failed to list accounts", slog.String("error", err.Error()), slog.String("workspace_id", workspaceID), slog.Int("limit", limit), slog.Int("offset", offset))
		return nil, fmt.Errorf("failed to list accounts for workspace %s: %w", workspaceID, err)
	}

	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, workspaceID string, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.workspaceSvc.AuthorizeUserAction(ctx, userID, workspaceID, domain.RoleMember); err != nil {
		return nil, err
	}

	account, err := s.GetAccountByID(ctx, workspaceID, accountID, userID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		account.Name = *req.Name
		updated = true
	}
	if req.Description != nil {
		account.Description = *req.Description
		updated = true
	}
	if req.Placement != nil {
		if *req.Placement != domain.PlacementNone && account.AccountType != domain.Income && account.AccountType != domain.Expense {
			return nil, fmt.Errorf("%w: placement applies only to income and expense accounts", apperrors.ErrValidation)
		}
		account.Placement = *req.Placement
		updated = true
	}
	if req.PartyType != nil {
		account.PartyType = *req.PartyType
		updated = true
	}
	if req.GSTIN != nil {
		account.GSTIN = *req.GSTIN
		updated = true
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
		updated = true
	}
	if !updated {
		logger.Debug("No fields provided for account update", slog.String("account_id", accountID))
		return account, nil
	}

	now := time.Now()
	account.LastUpdatedAt = now
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		logger.Error("Failed to update account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, err
	}

	logger.Info("Account updated successfully", slog.String("account_id", account.AccountID), slog.String("workspace_id", account.WorkspaceID))
	return account, nil
}

func (s *accountService) DeactivateAccount(ctx context.Context, workspaceID string, accountID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.workspaceSvc.AuthorizeUserAction(ctx, userID, workspaceID, domain.RoleMember); err != nil {
		return err
	}

	// Verify the account exists and belongs to the workspace
	if _, err := s.GetAccountByID(ctx, workspaceID, accountID, userID); err != nil {
		return err
	}

	now := time.Now()
	if err := s.accountRepo.DeactivateAccount(ctx, accountID, userID, now); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrValidation) {
			logger.Error("Failed to deactivate account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return err
	}

	logger.Info("Account deactivated successfully", slog.String("account_id", accountID), slog.String("workspace_id", workspaceID))
	return nil
}

func (s *accountService) CalculateAccountBalance(ctx context.Context, workspaceID string, accountID string, userID string) (decimal.Decimal, error) {
	account, err := s.GetAccountByID(ctx, workspaceID, accountID, userID)
	if err != nil {
		return decimal.Zero, err
	}
	return account.Balance, nil
}
