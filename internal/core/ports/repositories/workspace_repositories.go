package repositories

import (
	"context"

	"github.com/sahajbooks/gst_books_app/internal/core/domain"
)

// WorkspaceReader defines read operations for workspace data
type WorkspaceReader interface {
	// FindWorkspaceByID retrieves a specific workspace by its ID.
	FindWorkspaceByID(ctx context.Context, workspaceID string) (*domain.Workspace, error)

	// ListWorkspacesByUserID retrieves workspaces a user belongs to.
	// When includeDisabled is true inactive workspaces are included; a
	// non-nil role restricts results to memberships with that role.
	ListWorkspacesByUserID(ctx context.Context, userID string, includeDisabled bool, role *domain.UserWorkspaceRole) ([]domain.Workspace, error)
}

// WorkspaceWriter defines write operations for workspace data
type WorkspaceWriter interface {
	// SaveWorkspace persists a new workspace.
	SaveWorkspace(ctx context.Context, workspace domain.Workspace) error

	// UpdateWorkspaceStatus sets the active flag on a workspace.
	UpdateWorkspaceStatus(ctx context.Context, workspace *domain.Workspace, isActive bool, updatedByUserID string) error
}

// WorkspaceMembershipManager defines operations for managing workspace memberships
type WorkspaceMembershipManager interface {
	// AddUserToWorkspace adds a user to a workspace with a specific role.
	AddUserToWorkspace(ctx context.Context, membership domain.UserWorkspace) error

	// FindUserWorkspaceRole retrieves the role of a user in a workspace.
	FindUserWorkspaceRole(ctx context.Context, userID, workspaceID string) (*domain.UserWorkspace, error)

	// ListUsersByWorkspaceID retrieves memberships for a workspace.
	// Removed members are excluded unless includeRemoved is passed as true.
	ListUsersByWorkspaceID(ctx context.Context, workspaceID string, includeRemoved ...bool) ([]domain.UserWorkspace, error)

	// RemoveUserFromWorkspace marks a user's membership as removed.
	RemoveUserFromWorkspace(ctx context.Context, userID, workspaceID string) error

	// UpdateUserWorkspaceRole changes a user's role within a workspace.
	UpdateUserWorkspaceRole(ctx context.Context, userID, workspaceID string, newRole domain.UserWorkspaceRole) error
}

// WorkspaceRepositoryFacade combines all workspace-related repository interfaces
// This is a facade for clients that need access to all operations
type WorkspaceRepositoryFacade interface {
	WorkspaceReader
	WorkspaceWriter
	WorkspaceMembershipManager
}

// WorkspaceRepositoryWithTx extends WorkspaceRepositoryFacade with transaction capabilities
type WorkspaceRepositoryWithTx interface {
	WorkspaceRepositoryFacade
	TransactionManager
}
