package models

import (
	"database/sql"
	"time"
)

// User is the users table row. PasswordHash is NULL for accounts
// provisioned through an OAuth provider.
type User struct {
	UserID         string         `json:"userID"`
	Username       string         `json:"username" db:"username"`
	Name           string         `json:"name"`
	Email          sql.NullString `json:"email" db:"email"`
	PasswordHash   sql.NullString `json:"-" db:"password_hash"`
	AuthProvider   string         `db:"auth_provider"`
	ProviderUserID sql.NullString `db:"provider_user_id"`
	IsVerified     bool           `db:"is_verified"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty" db:"deleted_at"`

	RefreshTokenHash       sql.NullString `db:"refresh_token_hash"`
	RefreshTokenExpiryTime sql.NullTime   `db:"refresh_token_expiry_time"`
}
