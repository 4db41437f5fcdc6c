package services

import (
	"context"

	"github.com/sahajbooks/gst_books_app/internal/core/domain"
	"github.com/sahajbooks/gst_books_app/internal/dto"
)

// WorkspaceReaderSvc defines read operations for workspace data
type WorkspaceReaderSvc interface {
	// FindWorkspaceByID retrieves a specific workspace by its ID.
	FindWorkspaceByID(ctx context.Context, workspaceID string) (*domain.Workspace, error)

	// ListUserWorkspaces retrieves workspaces a user belongs to with filtering options.
	// If includeDisabled is true, it includes inactive workspaces.
	// If roleFilter is provided, it only returns workspaces where the user has that specific role.
	ListUserWorkspaces(ctx context.Context, userID string, includeDisabled bool) ([]domain.Workspace, error)

	// ListWorkspaceUsers retrieves all users and their roles for a specific workspace.
	// Only authorized users (members of the workspace) can access this data.
	ListWorkspaceUsers(ctx context.Context, workspaceID string, requestingUserID string) ([]domain.UserWorkspace, error)
}

// WorkspaceWriterSvc defines write operations for workspace data
type WorkspaceWriterSvc interface {
	// CreateWorkspace persists a new workspace and seeds its default chart of accounts.
	CreateWorkspace(ctx context.Context, req dto.CreateWorkspaceRequest, creatorUserID string) (*domain.Workspace, error)

	// DeactivateWorkspace marks a workspace as inactive.
	DeactivateWorkspace(ctx context.Context, workspaceID string, requestingUserID string) error

	// ActivateWorkspace marks a workspace as active.
	ActivateWorkspace(ctx context.Context, workspaceID string, requestingUserID string) error
}

// WorkspaceMembershipSvc defines operations for managing workspace membership
type WorkspaceMembershipSvc interface {
	// AddUserToWorkspace adds a user to a workspace with a specific role.
	AddUserToWorkspace(ctx context.Context, addingUserID, targetUserID, workspaceID string, role domain.UserWorkspaceRole) error

	// RemoveUserFromWorkspace removes a user from a workspace.
	// Only workspace admins can remove users from a workspace.
	RemoveUserFromWorkspace(ctx context.Context, requestingUserID, targetUserID, workspaceID string) error

	// UpdateUserWorkspaceRole updates a user's role in a workspace.
	// Only workspace admins can update user roles.
	UpdateUserWorkspaceRole(ctx context.Context, requestingUserID, targetUserID, workspaceID string, newRole domain.UserWorkspaceRole) error
}

// WorkspaceAuthorizerSvc defines operations for workspace authorization
type WorkspaceAuthorizerSvc interface {
	// AuthorizeUserAction checks if a user has required permissions for a workspace.
	AuthorizeUserAction(ctx context.Context, userID, workspaceID string, requiredRole domain.UserWorkspaceRole) error
}

// WorkspaceSvcFacade combines all workspace-related service interfaces
// This is a facade for clients that need access to all operations
type WorkspaceSvcFacade interface {
	WorkspaceReaderSvc
	WorkspaceWriterSvc
	WorkspaceMembershipSvc
	WorkspaceAuthorizerSvc
}
