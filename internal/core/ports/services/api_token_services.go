package services

import (
	"context"
	"time"

	"github.com/sahajbooks/gst_books_app/internal/core/domain"
)

// APITokenSvc manages long lived API tokens for programmatic access.
type APITokenSvc interface {
	// CreateToken mints a token for the user. The plaintext value is
	// returned exactly once; only its hash is stored.
	CreateToken(ctx context.Context, userID, name string, expiresIn *time.Duration) (string, *domain.APIToken, error)

	// ListTokens returns the user's tokens, hashes excluded.
	ListTokens(ctx context.Context, userID string) ([]domain.APIToken, error)

	// RevokeToken deletes one of the user's tokens.
	RevokeToken(ctx context.Context, userID, tokenID string) error

	// RevokeAllTokens deletes every token the user owns.
	RevokeAllTokens(ctx context.Context, userID string) error

	// ValidateToken resolves a presented token to its user and stamps
	// last_used_at on success.
	ValidateToken(ctx context.Context, tokenString string) (*domain.User, error)
}
