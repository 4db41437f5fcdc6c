package repositories

import (
	"context"
	"time"

	"github.com/sahajbooks/gst_books_app/internal/core/domain"
)

// UserReader reads user accounts.
type UserReader interface {
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindUserByProviderDetails looks up a user by the external identity
	// that provisioned it.
	FindUserByProviderDetails(ctx context.Context, authProvider string, providerUserID string) (*domain.User, error)

	// FindUsers returns a page of users.
	FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error)
}

// UserWriter persists user accounts.
type UserWriter interface {
	SaveUser(ctx context.Context, user domain.User) error
	UpdateUser(ctx context.Context, user domain.User) error

	// UpdateRefreshToken stores a refresh token hash with its expiry.
	UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error

	// ClearRefreshToken drops any stored refresh token.
	ClearRefreshToken(ctx context.Context, userID string) error
}

// UserLifecycleManager soft deletes user accounts.
type UserLifecycleManager interface {
	MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time, deletedBy string) error
}

// UserRepositoryFacade bundles the full user repository surface.
type UserRepositoryFacade interface {
	UserReader
	UserWriter
	UserLifecycleManager
}
