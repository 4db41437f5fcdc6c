package pgsql

import (
	"context"
	"errors"

	"github.com/sahajbooks/gst_books_app/internal/apperrors"
	"github.com/sahajbooks/gst_books_app/internal/core/domain"
	portsrepo "github.com/sahajbooks/gst_books_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxWorkspaceRepository struct {
	BaseRepository
}

// newPgxWorkspaceRepository creates a new repository for workspace data.
func newPgxWorkspaceRepository(pool *pgxpool.Pool) portsrepo.WorkspaceRepositoryWithTx {
	return &PgxWorkspaceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxWorkspaceRepository implements portsrepo.WorkspaceRepositoryWithTx
var _ portsrepo.WorkspaceRepositoryWithTx = (*PgxWorkspaceRepository)(nil)

var FULL_WORKSPACE_SELECT_QUERY = `
SELECT
	w.workspace_id, w.name, w.description, w.gstin, w.pan, w.default_currency_code, w.is_active,
	w.created_at, w.created_by, w.last_updated_at, w.last_updated_by, w.version
FROM workspaces w
`

// getUsers private func to get user from the select query filters
func (r *PgxWorkspaceRepository) getWorkspaces(ctx context.Context, filterQuery string, args ...any) ([]domain.Workspace, error) {
	query := FULL_WORKSPACE_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query workspaces", err)
	}
	defer rows.Close()
	domainWorkspaces, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Workspace])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) { // It's possible to get no rows, which is not an error for a list.
			return []domain.Workspace{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect workspace rows", err)
	}

	return domainWorkspaces, nil
}

func (r *PgxWorkspaceRepository) SaveWorkspace(ctx context.Context, workspace domain.Workspace) error {
	query := `
		INSERT INTO workspaces (
			workspace_id, name, description, gstin, pan, default_currency_code, is_active,
			created_at, created_by, last_updated_at, last_updated_by, version
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		workspace.WorkspaceID,
		workspace.Name,
		workspace.Description,
		workspace.GSTIN,
		workspace.PAN,
		workspace.DefaultCurrencyCode,
		workspace.IsActive,
		workspace.CreatedAt,
		workspace.CreatedBy,
		workspace.LastUpdatedAt,
		workspace.LastUpdatedBy,
		1,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return apperrors.NewConflictError("workspace ID " + workspace.WorkspaceID + " already exists")
			}
			// Handle foreign key violation for currency
			if pgErr.Code == "23503" && pgErr.ConstraintName == "fk_workspace_default_currency" { // foreign_key_violation
				return apperrors.NewValidationFailedError("currency code does not exist")
			}
		}
		return apperrors.NewAppError(500, "failed to save workspace "+workspace.WorkspaceID, err)
	}
	return nil
}

func (r *PgxWorkspaceRepository) FindWorkspaceByID(ctx context.Context, workspaceID string) (*domain.Workspace, error) {
	query := `WHERE w.workspace_id = $1`
	workspaces, err := r.getWorkspaces(ctx, query, workspaceID)
	if err != nil {
		return nil, err
	}
	if len(workspaces) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &workspaces[0], nil
}

func (r *PgxWorkspaceRepository) AddUserToWorkspace(ctx context.Context, membership domain.UserWorkspace) error {
	query := `
		INSERT INTO user_workspaces (user_id, workspace_id, role, joined_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, workspace_id) DO UPDATE SET role = EXCLUDED.role;
	` // Upsert: Add user or update their role if they already exist
	_, err := r.Pool.Exec(ctx, query,
		membership.UserID,
		membership.WorkspaceID,
		membership.Role,
		membership.JoinedAt,
	)

	if err != nil {
		// Check for foreign key violation if needed (e.g., user_id or workspace_id doesn't exist)
		return apperrors.NewAppError(500, "failed to add/update user "+membership.UserID+" in workspace "+membership.WorkspaceID, err)
	}
	return nil
}

func (r *PgxWorkspaceRepository) FindUserWorkspaceRole(ctx context.Context, userID, workspaceID string) (*domain.UserWorkspace, error) {
	query := `
		SELECT user_id, workspace_id, role, joined_at
		FROM user_workspaces
		WHERE user_id = $1 AND workspace_id = $2;
	`
	var uw domain.UserWorkspace
	err := r.Pool.QueryRow(ctx, query, userID, workspaceID).Scan(
		&uw.UserID,
		&uw.WorkspaceID,
		&uw.Role,
		&uw.JoinedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Consider if ErrNotFound is appropriate or if absence means 'no access'
			return nil, apperrors.NewNotFoundError("workspace not found") // User not found within this specific workspace
		}
		return nil, apperrors.NewAppError(500, "failed to find user "+userID+" workspace role in "+workspaceID, err)
	}
	return &uw, nil
}

func (r *PgxWorkspaceRepository) ListWorkspacesByUserID(ctx context.Context, userID string, includeDisabled bool, role *domain.UserWorkspaceRole) ([]domain.Workspace, error) {
	// Base query component
	baseQuery := `JOIN user_workspaces uw ON w.workspace_id = uw.workspace_id WHERE uw.user_id = $1`

	// Logic for workspace status and role filtering:
	// - For active workspaces: include all that the user is a member of (any role)
	// - For inactive workspaces: only include those where the user is an admin
	var whereClause string
	var args []any
	args = append(args, userID)

	if !includeDisabled {
		// Simple case: Only include active workspaces
		whereClause = " AND w.is_active = true"

		// If a specific role is requested, add that filter
		if role != nil {
			whereClause += " AND uw.role = $2"
			args = append(args, *role)
		}
	} else {
		// Complex case: All active workspaces + inactive workspaces where user is admin
		whereClause = " AND (w.is_active = true OR (w.is_active = false AND uw.role = $2))"
		args = append(args, domain.RoleAdmin)

		// If a specific role is requested, add that as an additional condition for active workspaces
		if role != nil {
			whereClause = " AND (w.is_active = true AND uw.role = $2 OR (w.is_active = false AND uw.role = $3))"
			args = append(args, *role, domain.RoleAdmin)
		}
	}

	// Complete the query
	query := baseQuery + whereClause + " ORDER BY w.name;"

	workspaces, err := r.getWorkspaces(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return workspaces, nil
}

// UpdateWorkspaceStatus updates the is_active status of a workspace
func (r *PgxWorkspaceRepository) UpdateWorkspaceStatus(ctx context.Context, workspace *domain.Workspace, isActive bool, updatedByUserID string) error {
	query := `
		UPDATE workspaces
		SET is_active = $1, last_updated_at = NOW(), last_updated_by = $2, version = version + 1
		WHERE workspace_id = $3 AND version = $4;
	`
	result, err := r.Pool.Exec(ctx, query, isActive, updatedByUserID, workspace.WorkspaceID, workspace.Version)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update workspace status "+workspace.WorkspaceID, err)
	}

	// Check if any rows were affected
	rowsAffected := result.RowsAffected()
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError("optimistic locking failed: workspace " + workspace.WorkspaceID)
	}

	return nil
}

// ListUsersByWorkspaceID retrieves all users that belong to a specific workspace
// By default, it excludes users with the REMOVED role.
// Set includeRemoved to true to include users with the REMOVED role.
func (r *PgxWorkspaceRepository) ListUsersByWorkspaceID(ctx context.Context, workspaceID string, includeRemoved ...bool) ([]domain.UserWorkspace, error) {
	query := `
		SELECT uw.user_id, u.name as user_name, uw.workspace_id, uw.role, uw.joined_at
		FROM user_workspaces uw
		JOIN users u ON uw.user_id = u.user_id
		WHERE uw.workspace_id = $1
	`

	// By default, exclude REMOVED users
	shouldIncludeRemoved := false
	if len(includeRemoved) > 0 {
		shouldIncludeRemoved = includeRemoved[0]
	}

	if !shouldIncludeRemoved {
		query += ` AND uw.role != $2`
	}

	query += ` ORDER BY uw.joined_at DESC;`

	var rows pgx.Rows
	var err error

	if !shouldIncludeRemoved {
		rows, err = r.Pool.Query(ctx, query, workspaceID, domain.RoleRemoved)
	} else {
		rows, err = r.Pool.Query(ctx, query, workspaceID)
	}

	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query users for workspace "+workspaceID, err)
	}
	defer rows.Close()

	var userWorkspaces []domain.UserWorkspace
	for rows.Next() {
		var uw domain.UserWorkspace
		err := rows.Scan(
			&uw.UserID,
			&uw.UserName,
			&uw.WorkspaceID,
			&uw.Role,
			&uw.JoinedAt,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan user workspace row", err)
		}
		userWorkspaces = append(userWorkspaces, uw)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating user workspace rows", err)
	}

	return userWorkspaces, nil
}

// RemoveUserFromWorkspace marks a user as removed in a workspace by setting their role to REMOVED
func (r *PgxWorkspaceRepository) RemoveUserFromWorkspace(ctx context.Context, userID, workspaceID string) error {
	// Reuse the UpdateUserWorkspaceRole method with the REMOVED role
	return r.UpdateUserWorkspaceRole(ctx, userID, workspaceID, domain.RoleRemoved)
}

// UpdateUserWorkspaceRole updates a user's role in a workspace
func (r *PgxWorkspaceRepository) UpdateUserWorkspaceRole(ctx context.Context, userID, workspaceID string, newRole domain.UserWorkspaceRole) error {
	query := `
		UPDATE user_workspaces
		SET role = $3
		WHERE user_id = $1 AND workspace_id = $2;
	`

	result, err := r.Pool.Exec(ctx, query, userID, workspaceID, newRole)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update role for user "+userID+" in workspace "+workspaceID, err)
	}

	// Check if any rows were affected
	rowsAffected := result.RowsAffected()
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError("workspace not found")
	}

	return nil
}
