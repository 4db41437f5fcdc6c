package dto

import (
	"time"

	"github.com/sahajbooks/gst_books_app/internal/core/domain"
)

// CreateAPITokenRequest is the body for minting a new API token. ExpiresIn
// is an optional lifetime in nanoseconds; omitted means the token never
// expires.
type CreateAPITokenRequest struct {
	Name      string         `json:"name" binding:"required,min=3,max=100"`
	ExpiresIn *time.Duration `json:"expiresIn,omitempty"`
}

// APITokenResponse is the API view of a token. The token value itself is
// never included.
type APITokenResponse struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	LastUsedAt *time.Time `json:"lastUsedAt,omitempty"`
	ExpiresAt  *time.Time `json:"expiresAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// CreateAPITokenResponse carries the plaintext token alongside its
// metadata. The plaintext is shown exactly once.
type CreateAPITokenResponse struct {
	TokenString string           `json:"token"`
	Details     APITokenResponse `json:"details"`
}

// ListAPITokensResponse is the list view of a user's tokens.
type ListAPITokensResponse []APITokenResponse

// ToAPITokenResponse maps a domain token to its API view.
func ToAPITokenResponse(token domain.APIToken) APITokenResponse {
	return APITokenResponse{
		ID:         token.ID,
		Name:       token.Name,
		LastUsedAt: token.LastUsedAt,
		ExpiresAt:  token.ExpiresAt,
		CreatedAt:  token.CreatedAt,
	}
}

// ToAPITokenResponseList maps domain tokens to their list view.
func ToAPITokenResponseList(tokens []domain.APIToken) ListAPITokensResponse {
	result := make(ListAPITokensResponse, len(tokens))
	for i, token := range tokens {
		result[i] = ToAPITokenResponse(token)
	}
	return result
}

// ToCreateAPITokenResponse pairs a freshly minted plaintext token with its
// metadata.
func ToCreateAPITokenResponse(tokenStr string, token domain.APIToken) CreateAPITokenResponse {
	return CreateAPITokenResponse{
		TokenString: tokenStr,
		Details:     ToAPITokenResponse(token),
	}
}
