package domain

import "time"

// AuthProvider identifies how a user authenticates.
type AuthProvider string

const (
	ProviderLocal  AuthProvider = "LOCAL"
	ProviderGoogle AuthProvider = "GOOGLE"
)

// User represents a user of the application in the domain.
type User struct {
	UserID       string       `json:"userID"` // Primary Key (e.g., UUID)
	Username     string       `json:"username"`
	Name         string       `json:"name"`
	Email        string       `json:"email,omitempty"`
	PasswordHash *string      `json:"-"` // nil for users provisioned via an external provider
	AuthProvider AuthProvider `json:"authProvider"`
	// ProviderUserID is the external provider's identifier for the user (e.g. Google's sub claim).
	ProviderUserID *string `json:"-"`
	IsVerified     bool    `json:"isVerified"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty" db:"deleted_at"` // Used for soft delete

	// Refresh token state; hash only, the raw token is never stored.
	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`
}

// GetUserID returns the user's ID.
func (u *User) GetUserID() string { return u.UserID }

// GetUsername returns the user's username.
func (u *User) GetUsername() string { return u.Username }

// GetName returns the user's display name.
func (u *User) GetName() string { return u.Name }

// GoogleUserInfo mirrors the payload of Google's userinfo endpoint.
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
	Picture       string `json:"picture"`
}
