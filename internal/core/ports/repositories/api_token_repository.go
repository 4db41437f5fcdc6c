package repositories

import (
	"context"
	"time"

	"github.com/sahajbooks/gst_books_app/internal/core/domain"
)

// APITokenRepository stores API tokens. Token hashes, never plaintext
// values, cross this boundary.
type APITokenRepository interface {
	// Create persists a new token.
	Create(ctx context.Context, token *domain.APIToken) error

	// FindByID retrieves a token by its ID.
	FindByID(ctx context.Context, id string) (*domain.APIToken, error)

	// FindByUserID retrieves every token belonging to a user.
	FindByUserID(ctx context.Context, userID string) ([]domain.APIToken, error)

	// FindByToken resolves a token by the digest of its plaintext value.
	FindByToken(ctx context.Context, tokenHash string) (*domain.APIToken, error)

	// Update rewrites a token row, typically to stamp last_used_at.
	Update(ctx context.Context, token *domain.APIToken) error

	// Delete removes a token by ID.
	Delete(ctx context.Context, id string) error

	// DeleteByUserID removes every token belonging to a user.
	DeleteByUserID(ctx context.Context, userID string) error

	// DeleteExpired purges tokens whose expiry is before the cutoff and
	// returns how many were removed.
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

// APITokenRepositoryWithTx adds transaction control to the repository.
type APITokenRepositoryWithTx interface {
	APITokenRepository
	TransactionManager
}
