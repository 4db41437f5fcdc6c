package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sahajbooks/gst_books_app/internal/apperrors"
	"github.com/sahajbooks/gst_books_app/internal/core/domain"
	portsrepo "github.com/sahajbooks/gst_books_app/internal/core/ports/repositories"
	portssvc "github.com/sahajbooks/gst_books_app/internal/core/ports/services"
	"github.com/sahajbooks/gst_books_app/internal/dto"
	"github.com/sahajbooks/gst_books_app/internal/middleware"
	"github.com/sahajbooks/gst_books_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// Voucher validation failures wrap the apperrors sentinels so handlers can
// map them to HTTP statuses with errors.Is.
var (
	ErrVoucherMinEntries  = fmt.Errorf("%w: voucher must have at least two entries", apperrors.ErrValidation)
	ErrVoucherMinAccounts = fmt.Errorf("%w: voucher must affect at least two different accounts", apperrors.ErrValidation)
	ErrAccountNotFound    = fmt.Errorf("%w: account not found", apperrors.ErrNotFound)
	ErrCurrencyMismatch   = fmt.Errorf("%w: account currency does not match voucher currency", apperrors.ErrValidation)
	ErrNotPosted          = fmt.Errorf("%w: voucher must be posted to be updated", apperrors.ErrConflict)
	ErrNarrationMissing   = fmt.Errorf("%w: voucher narration is required", apperrors.ErrValidation)
)

// ledgerPoster carries the dependencies every ledger-writing service needs.
// The invoice, purchase and voucher services all embed it so translator
// output goes through one validation and persistence path.
type ledgerPoster struct {
	accountSvc   portssvc.AccountSvcFacade
	accountRepo  portsrepo.AccountRepositoryFacade
	voucherRepo  portsrepo.VoucherRepositoryWithTx
	workspaceSvc portssvc.WorkspaceSvcFacade
}

// voucherService provides core voucher and entry operations, including the
// idempotent posting of business documents through the translators.
type voucherService struct {
	ledgerPoster
}

// NewVoucherService creates a new VoucherService.
func NewVoucherService(voucherRepo portsrepo.VoucherRepositoryWithTx, accountRepo portsrepo.AccountRepositoryFacade, accountSvc portssvc.AccountSvcFacade, workspaceSvc portssvc.WorkspaceSvcFacade) portssvc.VoucherSvcFacade {
	return &voucherService{
		ledgerPoster: ledgerPoster{
			accountSvc:   accountSvc,
			accountRepo:  accountRepo,
			voucherRepo:  voucherRepo,
			workspaceSvc: workspaceSvc,
		},
	}
}

// Ensure voucherService implements the portssvc.VoucherSvcFacade interface
var _ portssvc.VoucherSvcFacade = (*voucherService)(nil)

// workspaceCurrency resolves the default currency of a workspace, falling back to INR.
func (s *ledgerPoster) workspaceCurrency(ctx context.Context, workspaceID string) string {
	ws, err := s.workspaceSvc.FindWorkspaceByID(ctx, workspaceID)
	if err == nil && ws.DefaultCurrencyCode != nil && *ws.DefaultCurrencyCode != "" {
		return *ws.DefaultCurrencyCode
	}
	return "INR"
}

// validateEntryAccounts fetches the accounts referenced by the entries,
// verifies they belong to the workspace, are active and carry the voucher
// currency, and returns their types keyed by account ID.
func (s *ledgerPoster) validateEntryAccounts(ctx context.Context, workspaceID string, entries []domain.VoucherEntry, currencyCode string, userID string) (map[string]domain.AccountType, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	accountIDs := make([]string, 0, len(entries))
	for _, e := range entries {
		accountIDs = append(accountIDs, e.AccountID)
	}
	uniqueAccountIDs := uniqueStrings(accountIDs)

	accountsMap, err := s.accountSvc.GetAccountByIDs(ctx, workspaceID, uniqueAccountIDs, userID)
	if err != nil {
		logger.Error("Failed to fetch accounts for voucher validation", slog.String("error", err.Error()), slog.String("workspace_id", workspaceID))
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}

	accountTypes := make(map[string]domain.AccountType)
	for _, id := range uniqueAccountIDs {
		acc, found := accountsMap[id]
		if !found {
			return nil, fmt.Errorf("%w: ID %s", ErrAccountNotFound, id)
		}
		if acc.WorkspaceID != workspaceID {
			logger.Warn("Account used in voucher belongs to a different workspace", slog.String("voucher_workspace", workspaceID), slog.String("account_id", id), slog.String("account_workspace", acc.WorkspaceID))
			return nil, fmt.Errorf("%w: account %s does not belong to workspace %s", ErrAccountNotFound, id, workspaceID)
		}
		if !acc.IsActive {
			return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, id)
		}
		if acc.CurrencyCode != currencyCode {
			return nil, fmt.Errorf("%w: account currency %s does not match voucher currency %s for account %s", ErrCurrencyMismatch, acc.CurrencyCode, currencyCode, id)
		}
		accountTypes[id] = acc.AccountType
	}
	return accountTypes, nil
}

// balanceChangesFor computes the net signed balance delta per account for a set of entries.
func balanceChangesFor(entries []domain.VoucherEntry, accountTypes map[string]domain.AccountType) (map[string]decimal.Decimal, error) {
	balanceChanges := make(map[string]decimal.Decimal)
	for _, entry := range entries {
		signedAmount, err := accounting.CalculateSignedAmount(entry, accountTypes[entry.AccountID])
		if err != nil {
			return nil, fmt.Errorf("internal error calculating balance changes: %w", err)
		}
		balanceChanges[entry.AccountID] = balanceChanges[entry.AccountID].Add(signedAmount)
	}
	return balanceChanges, nil
}

// CreateVoucher creates a new manual voucher with its entries after validation.
// Implements portssvc.VoucherSvcFacade
func (s *voucherService) CreateVoucher(ctx context.Context, workspaceID string, req dto.CreateVoucherRequest, creatorUserID string) (*domain.Voucher, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.workspaceSvc.AuthorizeUserAction(ctx, creatorUserID, workspaceID, domain.RoleMember); err != nil {
		logger.Warn("Authorization failed for CreateVoucher", slog.String("user_id", creatorUserID), slog.String("workspace_id", workspaceID), slog.String("error", err.Error()))
		return nil, err
	}

	if len(req.Entries) < 2 {
		return nil, ErrVoucherMinEntries
	}

	accountSet := make(map[string]bool)
	for _, e := range req.Entries {
		accountSet[e.AccountID] = true
	}
	if len(accountSet) < 2 {
		return nil, ErrVoucherMinAccounts
	}

	if req.Narration == "" {
		return nil, ErrNarrationMissing
	}

	now := time.Now().UTC()
	voucherID := uuid.NewString()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}

	entries := make([]domain.VoucherEntry, len(req.Entries))
	for i, entryReq := range req.Entries {
		if entryReq.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: entry amount must be positive for account %s", apperrors.ErrValidation, entryReq.AccountID)
		}
		entries[i] = domain.VoucherEntry{
			EntryID:      uuid.NewString(),
			VoucherID:    voucherID,
			AccountID:    entryReq.AccountID,
			Amount:       entryReq.Amount,
			Side:         domain.EntrySide(entryReq.Side),
			CurrencyCode: req.CurrencyCode,
			Notes:        entryReq.Notes,
			AuditFields:  audit,
			// RunningBalance is calculated by the repository
		}
	}

	if err := accounting.ValidateVoucherBalance(entries); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	accountTypes, err := s.validateEntryAccounts(ctx, workspaceID, entries, req.CurrencyCode, creatorUserID)
	if err != nil {
		return nil, err
	}

	balanceChanges, err := balanceChangesFor(entries, accountTypes)
	if err != nil {
		logger.Error("Error calculating balance changes for manual voucher", slog.String("error", err.Error()), slog.String("voucher_id", voucherID))
		return nil, err
	}

	voucher := domain.Voucher{
		VoucherID:    voucherID,
		WorkspaceID:  workspaceID,
		VoucherDate:  req.VoucherDate,
		Narration:    req.Narration,
		CurrencyCode: req.CurrencyCode,
		Status:       domain.Posted,
		Source:       domain.SourceManual,
		Amount:       accounting.VoucherAmount(entries),
		AuditFields:  audit,
	}

	if err := s.voucherRepo.SaveVoucher(ctx, voucher, entries, balanceChanges); err != nil {
		logger.Error("Failed to save voucher", slog.String("error", err.Error()), slog.String("workspace_id", workspaceID))
		return nil, fmt.Errorf("failed to save voucher: %w", err)
	}

	logger.Info("Voucher created successfully", slog.String("voucher_id", voucher.VoucherID), slog.String("workspace_id", workspaceID))
	voucher.Entries = nil
	return &voucher, nil
}

// postDerivedVoucher persists a translator-produced voucher. The deterministic
// voucher ID makes this idempotent: when the ID already exists the posting is
// reported as a replay and nothing is written.
func (s *ledgerPoster) postDerivedVoucher(ctx context.Context, workspaceID string, voucher domain.Voucher, userID string) (*dto.PostingResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	exists, err := s.voucherRepo.VoucherExists(ctx, voucher.VoucherID)
	if err != nil {
		return nil, fmt.Errorf("failed to check voucher existence: %w", err)
	}
	if exists {
		logger.Info("Voucher already posted, skipping", slog.String("voucher_id", voucher.VoucherID))
		return &dto.PostingResponse{VoucherID: voucher.VoucherID, AlreadyPosted: true}, nil
	}

	if err := accounting.ValidateVoucherBalance(voucher.Entries); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	accountTypes, err := s.validateEntryAccounts(ctx, workspaceID, voucher.Entries, voucher.CurrencyCode, userID)
	if err != nil {
		return nil, err
	}

	balanceChanges, err := balanceChangesFor(voucher.Entries, accountTypes)
	if err != nil {
		return nil, err
	}

	entries := voucher.Entries
	voucher.Entries = nil
	if err := s.voucherRepo.SaveVoucher(ctx, voucher, entries, balanceChanges); err != nil {
		logger.Error("Failed to save derived voucher", slog.String("error", err.Error()), slog.String("voucher_id", voucher.VoucherID))
		return nil, fmt.Errorf("failed to save voucher: %w", err)
	}

	logger.Info("Document posted to ledger", slog.String("voucher_id", voucher.VoucherID), slog.String("source", string(voucher.Source)))
	return &dto.PostingResponse{VoucherID: voucher.VoucherID}, nil
}

// chartFor loads the workspace's system account mapping for the translators.
func (s *ledgerPoster) chartFor(ctx context.Context, workspaceID string) (accounting.Chart, error) {
	chart, err := s.accountRepo.GetSystemAccountMap(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load system account map: %w", err)
	}
	return accounting.Chart(chart), nil
}

func (s *voucherService) postPayment(ctx context.Context, workspaceID string, req dto.PostPaymentRequest, kind domain.PaymentKind, userID string) (*dto.PostingResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.workspaceSvc.AuthorizeUserAction(ctx, userID, workspaceID, domain.RoleMember); err != nil {
		logger.Warn("Authorization failed for payment posting", slog.String("user_id", userID), slog.String("workspace_id", workspaceID), slog.String("error", err.Error()))
		return nil, err
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}

	chart, err := s.chartFor(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	audit := domain.AuditFields{CreatedAt: now, CreatedBy: userID, LastUpdatedAt: now, LastUpdatedBy: userID}
	payment := domain.Payment{
		PaymentID:       req.Reference,
		WorkspaceID:     workspaceID,
		Kind:            kind,
		PaymentDate:     req.PaymentDate,
		PartyAccountID:  req.PartyAccountID,
		SettleAccountID: req.SettleAccountID,
		Amount:          req.Amount,
		Narration:       req.Narration,
	}

	voucher := accounting.PaymentVoucher(payment, chart, s.workspaceCurrency(ctx, workspaceID), audit)
	return s.postDerivedVoucher(ctx, workspaceID, voucher, userID)
}

// PostPaymentReceived books money received from a customer.
func (s *voucherService) PostPaymentReceived(ctx context.Context, workspaceID string, req dto.PostPaymentRequest, userID string) (*dto.PostingResponse, error) {
	return s.postPayment(ctx, workspaceID, req, domain.PaymentReceived, userID)
}

// PostPaymentMade books money paid to a vendor.
func (s *voucherService) PostPaymentMade(ctx context.Context, workspaceID string, req dto.PostPaymentRequest, userID string) (*dto.PostingResponse, error) {
	return s.postPayment(ctx, workspaceID, req, domain.PaymentMade, userID)
}

func (s *voucherService) postNote(ctx context.Context, workspaceID string, req dto.PostNoteRequest, kind domain.NoteKind, userID string) (*dto.PostingResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.workspaceSvc.AuthorizeUserAction(ctx, userID, workspaceID, domain.RoleMember); err != nil {
		logger.Warn("Authorization failed for note posting", slog.String("user_id", userID), slog.String("workspace_id", workspaceID), slog.String("error", err.Error()))
		return nil, err
	}
	if req.TaxableValue.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: note taxable value must be positive", apperrors.ErrValidation)
	}

	chart, err := s.chartFor(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	audit := domain.AuditFields{CreatedAt: now, CreatedBy: userID, LastUpdatedAt: now, LastUpdatedBy: userID}
	note := domain.Note{
		NoteID:         req.Reference,
		WorkspaceID:    workspaceID,
		Kind:           kind,
		NoteDate:       req.NoteDate,
		PartyAccountID: req.PartyAccountID,
		PartyGSTIN:     req.PartyGSTIN,
		TaxableValue:   req.TaxableValue,
		CGST:           req.CGST,
		SGST:           req.SGST,
		IGST:           req.IGST,
		Narration:      req.Narration,
	}

	voucher := accounting.NoteVoucher(note, chart, s.workspaceCurrency(ctx, workspaceID), audit)
	return s.postDerivedVoucher(ctx, workspaceID, voucher, userID)
}

// PostCreditNote books a sales return against a customer.
func (s *voucherService) PostCreditNote(ctx context.Context, workspaceID string, req dto.PostNoteRequest, userID string) (*dto.PostingResponse, error) {
	return s.postNote(ctx, workspaceID, req, domain.NoteCredit, userID)
}

// PostDebitNote books a purchase return against a vendor.
func (s *voucherService) PostDebitNote(ctx context.Context, workspaceID string, req dto.PostNoteRequest, userID string) (*dto.PostingResponse, error) {
	return s.postNote(ctx, workspaceID, req, domain.NoteDebit, userID)
}

// GetVoucherByID retrieves a specific voucher with its entries.
// Implements portssvc.VoucherSvcFacade
func (s *voucherService) GetVoucherByID(ctx context.Context, workspaceID string, voucherID string, requestingUserID string) (*domain.Voucher, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.workspaceSvc.AuthorizeUserAction(ctx, requestingUserID, workspaceID, domain.RoleReadOnly); err != nil {
		logger.Warn("Authorization failed for GetVoucherByID", slog.String("user_id", requestingUserID), slog.String("workspace_id", workspaceID), slog.String("voucher_id", voucherID), slog.String("error", err.Error()))
		return nil, err
	}

	voucher, err := s.voucherRepo.FindVoucherByID(ctx, voucherID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find voucher by ID", slog.String("error", err.Error()), slog.String("voucher_id", voucherID))
		}
		return nil, fmt.Errorf("failed to find voucher by ID %s: %w", voucherID, err)
	}

	// Obscure existence of vouchers from other workspaces
	if voucher.WorkspaceID != workspaceID {
		logger.Warn("Voucher found but belongs to different workspace", slog.String("voucher_id", voucherID), slog.String("voucher_workspace", voucher.WorkspaceID), slog.String("requested_workspace", workspaceID))
		return nil, apperrors.ErrNotFound
	}

	entries, err := s.voucherRepo.FindEntriesByVoucherID(ctx, voucherID)
	if err != nil {
		logger.Error("Failed to fetch entries for voucher", slog.String("error", err.Error()), slog.String("voucher_id", voucherID))
		return nil, fmt.Errorf("failed to retrieve entries for voucher %s: %w", voucherID, apperrors.ErrInternal)
	}

	for i := range entries {
		entries[i].VoucherID = voucherID
		entries[i].VoucherDate = voucher.VoucherDate
		entries[i].VoucherNarration = voucher.Narration
	}
	voucher.Entries = entries

	logger.Debug("Voucher and entries retrieved successfully", slog.String("voucher_id", voucherID), slog.String("workspace_id", workspaceID), slog.Int("entry_count", len(entries)))
	return voucher, nil
}

// ListVouchers retrieves a paginated list of vouchers for a specific workspace.
func (s *voucherService) ListVouchers(ctx context.Context, workspaceID string, userID string, params dto.ListVouchersParams) (*dto.ListVouchersResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.workspaceSvc.AuthorizeUserAction(ctx, userID, workspaceID, domain.RoleReadOnly); err != nil {
		logger.Warn("Authorization failed for ListVouchers", "error", err)
		return nil, err
	}

	vouchers, nextToken, err := s.voucherRepo.ListVouchersByWorkspace(ctx, workspaceID, params.Limit, params.NextToken, params.IncludeReversals)
	if err != nil {
		logger.Error("Failed to list vouchers from repository", "error", err)
		return nil, fmt.Errorf("failed to retrieve vouchers: %w", err)
	}

	voucherResponses := make([]dto.VoucherResponse, len(vouchers))
	for i, voucher := range vouchers {
		voucherResponses[i] = dto.ToVoucherResponse(&voucher)
	}

	resp := &dto.ListVouchersResponse{
		Vouchers:  voucherResponses,
		NextToken: nextToken,
	}

	logger.Info("Vouchers listed successfully", "count", len(vouchers))
	return resp, nil
}

// UpdateVoucher updates the narration and date of a voucher.
// Implements portssvc.VoucherSvcFacade
func (s *voucherService) UpdateVoucher(ctx context.Context, workspaceID string, voucherID string, req dto.UpdateVoucherRequest, requestingUserID string) (*domain.Voucher, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.workspaceSvc.AuthorizeUserAction(ctx, requestingUserID, workspaceID, domain.RoleMember); err != nil {
		logger.Warn("Authorization failed for UpdateVoucher", slog.String("user_id", requestingUserID), slog.String("workspace_id", workspaceID), slog.String("voucher_id", voucherID), slog.String("error", err.Error()))
		return nil, err
	}

	voucher, err := s.voucherRepo.FindVoucherByID(ctx, voucherID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Voucher not found for update", slog.String("voucher_id", voucherID), slog.String("workspace_id", workspaceID))
		} else {
			logger.Error("Failed to find voucher for update", slog.String("error", err.Error()), slog.String("voucher_id", voucherID))
		}
		return nil, err
	}

	if voucher.WorkspaceID != workspaceID {
		logger.Warn("Attempt to update voucher from wrong workspace", slog.String("voucher_id", voucherID), slog.String("voucher_workspace", voucher.WorkspaceID), slog.String("requested_workspace", workspaceID))
		return nil, apperrors.ErrNotFound
	}

	if voucher.Status != domain.Posted {
		return nil, ErrNotPosted
	}

	updated := false
	if req.VoucherDate != nil {
		voucher.VoucherDate = *req.VoucherDate
		updated = true
	}
	if req.Narration != nil {
		voucher.Narration = *req.Narration
		updated = true
	}

	if !updated {
		logger.Debug("No fields provided for voucher update", slog.String("voucher_id", voucherID))
		return voucher, nil
	}

	now := time.Now()
	voucher.LastUpdatedAt = now
	voucher.LastUpdatedBy = requestingUserID

	if err := s.voucherRepo.UpdateVoucher(ctx, *voucher); err != nil {
		logger.Error("Failed to save voucher update to repository", slog.String("error", err.Error()), slog.String("voucher_id", voucherID))
		return nil, fmt.Errorf("failed to save voucher update: %w", err)
	}

	logger.Info("Voucher updated successfully in repository", slog.String("voucher_id", voucherID))
	voucher.Entries = nil
	return voucher, nil
}

// ListEntriesByAccount retrieves entries for a specific account within a workspace.
func (s *voucherService) ListEntriesByAccount(ctx context.Context, workspaceID string, accountID string, userID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.workspaceSvc.AuthorizeUserAction(ctx, userID, workspaceID, domain.RoleReadOnly); err != nil {
		logger.Warn("Authorization failed for ListEntriesByAccount", "error", err)
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	entries, nextToken, err := s.voucherRepo.ListEntriesByAccountID(ctx, workspaceID, accountID, limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list entries by account from repository", "error", err)
		return nil, fmt.Errorf("failed to retrieve entries: %w", err)
	}

	resp := &dto.ListEntriesResponse{
		Entries:   dto.ToEntryResponses(entries),
		NextToken: nextToken,
	}

	logger.Info("Entries listed successfully for account", "count", len(entries))
	return resp, nil
}

// CalculateAccountBalance returns the persisted balance of an account.
func (s *voucherService) CalculateAccountBalance(ctx context.Context, workspaceID string, accountID string) (decimal.Decimal, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	if account.WorkspaceID != workspaceID {
		return decimal.Zero, apperrors.ErrNotFound
	}
	return account.Balance, nil
}

// uniqueStrings returns a slice containing only the unique strings from the input.
func uniqueStrings(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	result := make([]string, 0, len(input))
	for _, str := range input {
		if _, ok := seen[str]; !ok {
			seen[str] = struct{}{}
			result = append(result, str)
		}
	}
	return result
}

func (s *voucherService) validateReversalAndGetOriginal(ctx context.Context, voucherID string, userID string, workspaceID string) (*domain.Voucher, []domain.VoucherEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.workspaceSvc.AuthorizeUserAction(ctx, userID, workspaceID, domain.RoleMember); err != nil {
		logger.Warn("Authorization failed for ReverseVoucher", "error", err)
		return nil, nil, err
	}

	original, err := s.voucherRepo.FindVoucherByID(ctx, voucherID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Original voucher not found for reversal")
			return nil, nil, apperrors.ErrNotFound
		}
		logger.Error("Failed to fetch original voucher for reversal", "error", err)
		return nil, nil, fmt.Errorf("failed to retrieve original voucher: %w", err)
	}

	if original.WorkspaceID != workspaceID {
		logger.Warn("Attempted to reverse voucher from wrong workspace")
		return nil, nil, apperrors.ErrNotFound
	}
	if original.Status != domain.Posted {
		logger.Warn("Attempted to reverse non-posted voucher", "status", original.Status)
		return nil, nil, fmt.Errorf("%w: voucher status is %s, expected POSTED", apperrors.ErrConflict, original.Status)
	}

	if original.OriginalVoucherID != nil {
		logger.Warn("Attempted to reverse a voucher that is already a reversal", "voucherID", voucherID)
		return nil, nil, fmt.Errorf("%w: cannot reverse a voucher that is already a reversal", apperrors.ErrConflict)
	}

	originalEntries, err := s.voucherRepo.FindEntriesByVoucherID(ctx, voucherID)
	if err != nil {
		logger.Error("Failed to fetch original entries for reversal", "error", err)
		return nil, nil, fmt.Errorf("failed to retrieve original entries: %w", err)
	}
	return original, originalEntries, nil
}

// ReverseVoucher creates a new voucher that reverses a previously posted one,
// flipping every entry side and linking the two vouchers.
func (s *voucherService) ReverseVoucher(ctx context.Context, workspaceID string, voucherID string, userID string) (*domain.Voucher, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	original, originalEntries, err := s.validateReversalAndGetOriginal(ctx, voucherID, userID, workspaceID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	newVoucherID := uuid.NewString()

	reversing := domain.Voucher{
		VoucherID:    newVoucherID,
		WorkspaceID:  workspaceID,
		VoucherDate:  original.VoucherDate,
		CurrencyCode: original.CurrencyCode,
		Status:       domain.Posted,
		Source:       domain.SourceManual,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	reversing.OriginalVoucherID = &original.VoucherID
	reversing.Narration = fmt.Sprintf("Reversal of Voucher: %s", strings.TrimPrefix(original.Narration, "Reversal of Voucher: "))

	reversingEntries := make([]domain.VoucherEntry, len(originalEntries))
	accIDList := make([]string, 0, len(originalEntries))
	for i, origEntry := range originalEntries {
		accIDList = append(accIDList, origEntry.AccountID)
		newSide := domain.Credit
		if origEntry.Side == domain.Credit {
			newSide = domain.Debit
		}
		reversingEntries[i] = domain.VoucherEntry{
			EntryID:      uuid.NewString(),
			VoucherID:    newVoucherID,
			AccountID:    origEntry.AccountID,
			Amount:       origEntry.Amount,
			Side:         newSide,
			CurrencyCode: origEntry.CurrencyCode,
			Notes:        origEntry.Notes,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
	}

	accountsMap, err := s.accountSvc.GetAccountByIDs(ctx, workspaceID, accIDList, userID)
	if err != nil {
		logger.Error("Failed to fetch accounts for reversal balance calculation", "error", err)
		return nil, fmt.Errorf("failed to get account details for reversal: %w", err)
	}

	reversing.Amount = original.Amount

	balanceChanges := make(map[string]decimal.Decimal)
	for _, revEntry := range reversingEntries {
		acc, ok := accountsMap[revEntry.AccountID]
		if !ok {
			logger.Error("Account missing from map during reversal balance calculation", "accountID", revEntry.AccountID)
			return nil, fmt.Errorf("internal error: account %s not found during balance calculation", revEntry.AccountID)
		}
		signedAmount, err := accounting.CalculateSignedAmount(revEntry, acc.AccountType)
		if err != nil {
			logger.Error("Failed to calculate signed amount for reversal entry", "entryID", revEntry.EntryID, "error", err)
			return nil, fmt.Errorf("failed to calculate signed amount for reversal: %w", err)
		}
		balanceChanges[revEntry.AccountID] = balanceChanges[revEntry.AccountID].Add(signedAmount)
	}

	if err := s.voucherRepo.SaveVoucher(ctx, reversing, reversingEntries, balanceChanges); err != nil {
		logger.Error("Failed to save reversing voucher", "error", err)
		return nil, fmt.Errorf("failed to save reversing voucher: %w", err)
	}

	if err := s.voucherRepo.UpdateVoucherStatusAndLinks(ctx, original.VoucherID, domain.Reversed, &newVoucherID, original.OriginalVoucherID, userID, now); err != nil {
		logger.Error("Failed to update original voucher status after successful reversal", "originalVoucherID", original.VoucherID, "reversingVoucherID", newVoucherID, "error", err)
		return nil, fmt.Errorf("failed to update original voucher status: %w", err)
	}

	logger.Info("Voucher reversed successfully", "reversingVoucherID", newVoucherID)
	reversing.Entries = nil
	return &reversing, nil
}
