package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sahajbooks/gst_books_app/internal/apperrors"
	"github.com/sahajbooks/gst_books_app/internal/core/domain"
	portsrepo "github.com/sahajbooks/gst_books_app/internal/core/ports/repositories"
	"github.com/sahajbooks/gst_books_app/internal/models"
	"github.com/sahajbooks/gst_books_app/internal/utils/mapping"
)

const apiTokenColumns = `api_token_id, user_id, name, token_hash, last_used_at, expires_at, created_at, updated_at`

// PgxAPITokenRepository stores API tokens. Rows are soft deleted so revoked
// tokens remain auditable.
type PgxAPITokenRepository struct {
	BaseRepository
}

func newPgxAPITokenRepository(pool *pgxpool.Pool) portsrepo.APITokenRepositoryWithTx {
	return &PgxAPITokenRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.APITokenRepositoryWithTx = (*PgxAPITokenRepository)(nil)

// Create inserts a token and backfills the generated ID and timestamps.
func (r *PgxAPITokenRepository) Create(ctx context.Context, token *domain.APIToken) error {
	if token == nil {
		return fmt.Errorf("%w: token is required", apperrors.ErrValidation)
	}

	modelToken := mapping.ToModelAPIToken(*token)

	query := `
		INSERT INTO api_tokens (user_id, name, token_hash, expires_at)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + apiTokenColumns

	row := r.Pool.QueryRow(ctx, query,
		modelToken.UserID,
		modelToken.Name,
		modelToken.TokenHash,
		modelToken.ExpiresAt,
	)

	created, err := scanAPIToken(row)
	if err != nil {
		return fmt.Errorf("failed to insert api token: %w", err)
	}

	token.ID = created.ID
	token.CreatedAt = created.CreatedAt
	token.UpdatedAt = created.UpdatedAt
	return nil
}

// FindByID retrieves a live token by its ID.
func (r *PgxAPITokenRepository) FindByID(ctx context.Context, id string) (*domain.APIToken, error) {
	query := `
		SELECT ` + apiTokenColumns + `
		FROM api_tokens
		WHERE api_token_id = $1 AND deleted_at IS NULL
	`
	row := r.Pool.QueryRow(ctx, query, id)

	token, err := scanAPIToken(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find api token %s: %w", id, err)
	}

	domainToken := mapping.ToDomainAPIToken(*token)
	return &domainToken, nil
}

// FindByUserID returns the user's live tokens, newest first.
func (r *PgxAPITokenRepository) FindByUserID(ctx context.Context, userID string) ([]domain.APIToken, error) {
	query := `
		SELECT ` + apiTokenColumns + `
		FROM api_tokens
		WHERE user_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query api tokens for user %s: %w", userID, err)
	}
	defer rows.Close()

	var tokens []domain.APIToken
	for rows.Next() {
		token, err := scanAPIToken(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan api token: %w", err)
		}
		tokens = append(tokens, mapping.ToDomainAPIToken(*token))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read api tokens: %w", err)
	}

	return tokens, nil
}

// FindByToken resolves a live token by the digest of its plaintext value.
// The digest column is unique among live rows.
func (r *PgxAPITokenRepository) FindByToken(ctx context.Context, tokenHash string) (*domain.APIToken, error) {
	query := `
		SELECT ` + apiTokenColumns + `
		FROM api_tokens
		WHERE token_hash = $1 AND deleted_at IS NULL
	`
	row := r.Pool.QueryRow(ctx, query, tokenHash)

	token, err := scanAPIToken(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find api token by hash: %w", err)
	}

	domainToken := mapping.ToDomainAPIToken(*token)
	return &domainToken, nil
}

// Update stamps last_used_at on an existing token.
func (r *PgxAPITokenRepository) Update(ctx context.Context, token *domain.APIToken) error {
	if token == nil {
		return fmt.Errorf("%w: token is required", apperrors.ErrValidation)
	}

	query := `
		UPDATE api_tokens
		SET last_used_at = COALESCE($2, last_used_at),
		    updated_at = NOW()
		WHERE api_token_id = $1 AND deleted_at IS NULL
	`
	result, err := r.Pool.Exec(ctx, query, token.ID, token.LastUsedAt)
	if err != nil {
		return fmt.Errorf("failed to update api token %s: %w", token.ID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	token.UpdatedAt = time.Now()
	return nil
}

// Delete soft deletes a token by ID.
func (r *PgxAPITokenRepository) Delete(ctx context.Context, id string) error {
	query := `
		UPDATE api_tokens
		SET deleted_at = NOW()
		WHERE api_token_id = $1 AND deleted_at IS NULL
	`
	result, err := r.Pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete api token %s: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteByUserID soft deletes every live token belonging to a user.
func (r *PgxAPITokenRepository) DeleteByUserID(ctx context.Context, userID string) error {
	query := `
		UPDATE api_tokens
		SET deleted_at = NOW()
		WHERE user_id = $1 AND deleted_at IS NULL
	`
	if _, err := r.Pool.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to delete api tokens for user %s: %w", userID, err)
	}
	return nil
}

// DeleteExpired soft deletes tokens that expired before the cutoff and
// reports how many rows were touched.
func (r *PgxAPITokenRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	query := `
		UPDATE api_tokens
		SET deleted_at = NOW()
		WHERE expires_at < $1 AND deleted_at IS NULL
	`
	result, err := r.Pool.Exec(ctx, query, before)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired api tokens: %w", err)
	}
	return result.RowsAffected(), nil
}

func scanAPIToken(row pgx.Row) (*models.APIToken, error) {
	var token models.APIToken
	err := row.Scan(
		&token.ID,
		&token.UserID,
		&token.Name,
		&token.TokenHash,
		&token.LastUsedAt,
		&token.ExpiresAt,
		&token.CreatedAt,
		&token.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &token, nil
}
