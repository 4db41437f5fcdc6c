package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sahajbooks/gst_books_app/internal/apperrors"
	"github.com/sahajbooks/gst_books_app/internal/core/domain"
	portsrepo "github.com/sahajbooks/gst_books_app/internal/core/ports/repositories"
	portssvc "github.com/sahajbooks/gst_books_app/internal/core/ports/services"
	"github.com/sahajbooks/gst_books_app/internal/dto"
	"github.com/sahajbooks/gst_books_app/internal/middleware"
	"github.com/google/uuid"
)

// chartSeeder seeds the default chart of accounts for a newly created
// workspace. Wired after construction to avoid a constructor cycle with
// the account service.
type chartSeeder interface {
	EnsureDefaultChart(ctx context.Context, workspaceID string, userID string) error
}

// workspaceService implements the WorkspaceSvcFacade interface
type workspaceService struct {
	workspaceRepo portsrepo.WorkspaceRepositoryFacade
	currencyRepo  portsrepo.CurrencyReader
	chartSeeder   chartSeeder
}

// NewWorkspaceService creates a new workspace service with the provided dependencies
func NewWorkspaceService(
	workspaceRepo portsrepo.WorkspaceRepositoryFacade,
	currencyRepo portsrepo.CurrencyReader,
) portssvc.WorkspaceSvcFacade {
	return &workspaceService{
		workspaceRepo: workspaceRepo,
		currencyRepo:  currencyRepo,
	}
}

// Ensure workspaceService implements the WorkspaceSvcFacade interface
var _ portssvc.WorkspaceSvcFacade = (*workspaceService)(nil)

// SetChartSeeder attaches the account service used to seed the default chart
// of accounts on workspace creation.
func (s *workspaceService) SetChartSeeder(seeder chartSeeder) {
	s.chartSeeder = seeder
}

// FindWorkspaceByID retrieves a workspace by its ID
func (s *workspaceService) FindWorkspaceByID(ctx context.Context, workspaceID string) (*domain.Workspace, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	workspace, err := s.workspaceRepo.FindWorkspaceByID(ctx, workspaceID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.ErrorContext(ctx, "Failed to find workspace by ID",
				slog.String("workspace_id", workspaceID),
				slog.String("error", err.Error()))
		}
		return nil, err
	}
	return workspace, nil
}

// ListUserWorkspaces retrieves all workspaces a user belongs to
func (s *workspaceService) ListUserWorkspaces(ctx context.Context, userID string, includeDisabled bool) ([]domain.Workspace, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	workspaces, err := s.workspaceRepo.ListWorkspacesByUserID(ctx, userID, includeDisabled, nil)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to list workspaces for user",
			slog.String("user_id", userID),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list workspaces for user %s: %w", userID, err)
	}

	if workspaces == nil {
		return []domain.Workspace{}, nil
	}
	return workspaces, nil
}

// ListWorkspaceUsers retrieves all memberships of a workspace. The requesting
// user must be a member of the workspace.
func (s *workspaceService) ListWorkspaceUsers(ctx context.Context, workspaceID string, requestingUserID string) ([]domain.UserWorkspace, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.AuthorizeUserAction(ctx, requestingUserID, workspaceID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	members, err := s.workspaceRepo.ListUsersByWorkspaceID(ctx, workspaceID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to list workspace users",
			slog.String("workspace_id", workspaceID),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list users for workspace %s: %w", workspaceID, err)
	}

	if members == nil {
		return []domain.UserWorkspace{}, nil
	}
	return members, nil
}

// CreateWorkspace creates a new workspace, makes the creator its admin and
// seeds the default chart of accounts.
func (s *workspaceService) CreateWorkspace(ctx context.Context, req dto.CreateWorkspaceRequest, creatorUserID string) (*domain.Workspace, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.DefaultCurrencyCode != "" && s.currencyRepo != nil {
		if _, err := s.currencyRepo.FindCurrencyByCode(ctx, req.DefaultCurrencyCode); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: currency code %s not found", apperrors.ErrValidation, req.DefaultCurrencyCode)
			}
			logger.ErrorContext(ctx, "Failed to validate default currency code",
				slog.String("currency_code", req.DefaultCurrencyCode),
				slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to validate currency code: %w", err)
		}
	}

	now := time.Now()
	workspaceID := uuid.NewString()

	workspace := domain.Workspace{
		WorkspaceID: workspaceID,
		Name:        req.Name,
		Description: req.Description,
		GSTIN:       req.GSTIN,
		PAN:         req.PAN,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
			Version:       1,
		},
	}
	if req.DefaultCurrencyCode != "" {
		code := req.DefaultCurrencyCode
		workspace.DefaultCurrencyCode = &code
	}

	if err := s.workspaceRepo.SaveWorkspace(ctx, workspace); err != nil {
		logger.ErrorContext(ctx, "Failed to save workspace",
			slog.String("workspace_name", req.Name),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}

	membership := domain.UserWorkspace{
		UserID:      creatorUserID,
		WorkspaceID: workspaceID,
		Role:        domain.RoleAdmin,
		JoinedAt:    now,
	}
	if err := s.workspaceRepo.AddUserToWorkspace(ctx, membership); err != nil {
		logger.ErrorContext(ctx, "Failed to add creator as admin to new workspace",
			slog.String("workspace_id", workspaceID),
			slog.String("user_id", creatorUserID),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to add creator to workspace: %w", err)
	}

	if s.chartSeeder != nil {
		if err := s.chartSeeder.EnsureDefaultChart(ctx, workspaceID, creatorUserID); err != nil {
			logger.ErrorContext(ctx, "Failed to seed default chart of accounts",
				slog.String("workspace_id", workspaceID),
				slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to seed default chart of accounts: %w", err)
		}
	}

	logger.InfoContext(ctx, "Workspace created",
		slog.String("workspace_id", workspaceID),
		slog.String("creator_user_id", creatorUserID))
	return &workspace, nil
}

// DeactivateWorkspace marks a workspace as inactive. Admin only.
func (s *workspaceService) DeactivateWorkspace(ctx context.Context, workspaceID string, requestingUserID string) error {
	return s.setWorkspaceStatus(ctx, workspaceID, requestingUserID, false)
}

// ActivateWorkspace marks a workspace as active again. Admin only.
func (s *workspaceService) ActivateWorkspace(ctx context.Context, workspaceID string, requestingUserID string) error {
	return s.setWorkspaceStatus(ctx, workspaceID, requestingUserID, true)
}

func (s *workspaceService) setWorkspaceStatus(ctx context.Context, workspaceID, requestingUserID string, isActive bool) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.AuthorizeUserAction(ctx, requestingUserID, workspaceID, domain.RoleAdmin); err != nil {
		return err
	}

	workspace, err := s.workspaceRepo.FindWorkspaceByID(ctx, workspaceID)
	if err != nil {
		return err
	}
	if workspace.IsActive == isActive {
		return nil
	}

	if err := s.workspaceRepo.UpdateWorkspaceStatus(ctx, workspace, isActive, requestingUserID); err != nil {
		logger.ErrorContext(ctx, "Failed to update workspace status",
			slog.String("workspace_id", workspaceID),
			slog.Bool("is_active", isActive),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to update workspace status: %w", err)
	}

	logger.InfoContext(ctx, "Workspace status updated",
		slog.String("workspace_id", workspaceID),
		slog.Bool("is_active", isActive))
	return nil
}

// AddUserToWorkspace adds a user to a workspace with a specific role
func (s *workspaceService) AddUserToWorkspace(ctx context.Context, addingUserID, targetUserID, workspaceID string, role domain.UserWorkspaceRole) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	// Self-assignment happens only during workspace creation; everything else
	// requires admin rights.
	if addingUserID != targetUserID {
		if err := s.AuthorizeUserAction(ctx, addingUserID, workspaceID, domain.RoleAdmin); err != nil {
			return err
		}
	}

	membership := domain.UserWorkspace{
		UserID:      targetUserID,
		WorkspaceID: workspaceID,
		Role:        role,
		JoinedAt:    time.Now(),
	}

	if err := s.workspaceRepo.AddUserToWorkspace(ctx, membership); err != nil {
		logger.ErrorContext(ctx, "Failed to add user to workspace",
			slog.String("target_user_id", targetUserID),
			slog.String("workspace_id", workspaceID),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to add user %s to workspace %s: %w", targetUserID, workspaceID, err)
	}

	logger.InfoContext(ctx, "User added to workspace",
		slog.String("target_user_id", targetUserID),
		slog.String("workspace_id", workspaceID),
		slog.String("role", string(role)))
	return nil
}

// RemoveUserFromWorkspace marks a user's membership as removed. Admin only.
func (s *workspaceService) RemoveUserFromWorkspace(ctx context.Context, requestingUserID, targetUserID, workspaceID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.AuthorizeUserAction(ctx, requestingUserID, workspaceID, domain.RoleAdmin); err != nil {
		return err
	}
	if requestingUserID == targetUserID {
		return fmt.Errorf("%w: admins cannot remove themselves from a workspace", apperrors.ErrValidation)
	}

	if err := s.workspaceRepo.RemoveUserFromWorkspace(ctx, targetUserID, workspaceID); err != nil {
		logger.ErrorContext(ctx, "Failed to remove user from workspace",
			slog.String("target_user_id", targetUserID),
			slog.String("workspace_id", workspaceID),
			slog.String("error", err.Error()))
		return err
	}

	logger.InfoContext(ctx, "User removed from workspace",
		slog.String("target_user_id", targetUserID),
		slog.String("workspace_id", workspaceID))
	return nil
}

// UpdateUserWorkspaceRole changes a member's role. Admin only.
func (s *workspaceService) UpdateUserWorkspaceRole(ctx context.Context, requestingUserID, targetUserID, workspaceID string, newRole domain.UserWorkspaceRole) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.AuthorizeUserAction(ctx, requestingUserID, workspaceID, domain.RoleAdmin); err != nil {
		return err
	}
	if requestingUserID == targetUserID {
		return fmt.Errorf("%w: admins cannot change their own role", apperrors.ErrValidation)
	}

	if err := s.workspaceRepo.UpdateUserWorkspaceRole(ctx, targetUserID, workspaceID, newRole); err != nil {
		logger.ErrorContext(ctx, "Failed to update user workspace role",
			slog.String("target_user_id", targetUserID),
			slog.String("workspace_id", workspaceID),
			slog.String("new_role", string(newRole)),
			slog.String("error", err.Error()))
		return err
	}

	logger.InfoContext(ctx, "User workspace role updated",
		slog.String("target_user_id", targetUserID),
		slog.String("workspace_id", workspaceID),
		slog.String("new_role", string(newRole)))
	return nil
}

// AuthorizeUserAction checks if a user has required permissions for a workspace.
// Returns apperrors.ErrNotFound when the user is not a member, so membership
// checks do not reveal whether a workspace exists.
func (s *workspaceService) AuthorizeUserAction(ctx context.Context, userID, workspaceID string, requiredRole domain.UserWorkspaceRole) error {
	membership, err := s.workspaceRepo.FindUserWorkspaceRole(ctx, userID, workspaceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to check authorization: %w", err)
	}

	if !hasRequiredRole(membership.Role, requiredRole) {
		return apperrors.ErrForbidden
	}
	return nil
}

// hasRequiredRole checks if the user's role meets or exceeds the required role
func hasRequiredRole(userRole, requiredRole domain.UserWorkspaceRole) bool {
	switch requiredRole {
	case domain.RoleReadOnly:
		return userRole == domain.RoleReadOnly || userRole == domain.RoleMember || userRole == domain.RoleAdmin
	case domain.RoleMember:
		return userRole == domain.RoleMember || userRole == domain.RoleAdmin
	case domain.RoleAdmin:
		return userRole == domain.RoleAdmin
	default:
		return false
	}
}
