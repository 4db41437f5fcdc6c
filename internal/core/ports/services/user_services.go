package services

import (
	"context"
	"time"

	"github.com/sahajbooks/gst_books_app/internal/core/domain"
	"github.com/sahajbooks/gst_books_app/internal/dto"
)

// UserReaderSvc reads user accounts.
type UserReaderSvc interface {
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// ListUsers returns a page of users ordered by creation time.
	ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error)
}

// UserWriterSvc creates and updates user accounts.
type UserWriterSvc interface {
	// CreateUser registers a local username/password account.
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error)

	// CreateOAuthUser finds or provisions an account for an external
	// identity, linking by verified email when one matches.
	CreateOAuthUser(ctx context.Context, name, email, authProvider, providerUserID string, emailVerified bool) (*domain.User, error)

	// UpdateUser applies the allowed profile changes on behalf of the
	// requesting user.
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error)

	// UpdateRefreshToken stores a new refresh token hash and expiry.
	UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error

	// ClearRefreshToken revokes the stored refresh token.
	ClearRefreshToken(ctx context.Context, userID string) error
}

// UserLifecycleSvc manages account deactivation.
type UserLifecycleSvc interface {
	// DeleteUser soft deletes a user on behalf of the requesting user.
	DeleteUser(ctx context.Context, userID string, requestingUserID string) error
}

// UserAuthSvc verifies credentials.
type UserAuthSvc interface {
	// AuthenticateUser checks a username/password pair and returns the
	// user on success.
	AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error)
}

// UserSvcFacade bundles every user service concern for consumers that need
// the full surface.
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserLifecycleSvc
	UserAuthSvc
}
