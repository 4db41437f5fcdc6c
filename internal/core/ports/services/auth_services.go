package services

import (
	"context"
	"time"

	"github.com/sahajbooks/gst_books_app/internal/core/domain"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
)

// TokenSvcFacade issues and validates the JWT access / opaque refresh
// token pair used by the auth endpoints.
type TokenSvcFacade interface {
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
	GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error)

	// ValidateAndParseRefreshToken checks a presented refresh token against
	// the hash stored on the user and returns the user when it matches and
	// has not expired.
	ValidateAndParseRefreshToken(ctx context.Context, userID string, refreshTokenString string) (*domain.User, error)
}

// GoogleOAuthHandlerSvcFacade wraps the Google OAuth code flow and ID token
// verification.
type GoogleOAuthHandlerSvcFacade interface {
	// GenerateStateString creates the CSRF state parameter for the flow.
	GenerateStateString(ctx context.Context) (string, error)
	// GetGoogleLoginURL returns the consent screen URL for the given state.
	GetGoogleLoginURL(ctx context.Context, state string) string
	// ExchangeCodeForToken trades an authorization code for tokens.
	ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error)
	// GetUserInfo fetches the Google profile for an access token.
	GetUserInfo(ctx context.Context, token *oauth2.Token) (*domain.GoogleUserInfo, error)
	// ValidateGoogleIDToken verifies an ID token and returns its payload.
	ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error)
}
