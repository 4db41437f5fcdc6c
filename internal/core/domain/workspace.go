package domain

import "time"

// Workspace represents one business's isolated set of books: accounts,
// vouchers, invoices, purchase bills and reports.
type Workspace struct {
	WorkspaceID         string  `json:"workspaceID"` // Primary Key (e.g., UUID)
	Name                string  `json:"name"`        // Business name
	Description         string  `json:"description"` // Optional description
	GSTIN               string  `json:"gstin"`       // Business GSTIN; first two characters are the state code
	PAN                 string  `json:"pan"`         // Business PAN, used for TDS reporting
	DefaultCurrencyCode *string `json:"defaultCurrencyCode"` // Default currency code, normally "INR"
	IsActive            bool    `json:"isActive"`
	AuditFields
}

// StateCode returns the two-character GST state code of the business,
// or the empty string when no GSTIN is recorded.
func (w Workspace) StateCode() string {
	if len(w.GSTIN) < 2 {
		return ""
	}
	return w.GSTIN[:2]
}

// UserWorkspaceRole defines the possible roles a user can have within a workspace.
type UserWorkspaceRole string

const (
	RoleAdmin    UserWorkspaceRole = "ADMIN"
	RoleMember   UserWorkspaceRole = "MEMBER"
	RoleReadOnly UserWorkspaceRole = "READONLY" // Users with read-only access to workspace data
	RoleRemoved  UserWorkspaceRole = "REMOVED"  // For users who have been removed from the workspace
)

// UserWorkspace represents the membership of a User in a Workspace.
type UserWorkspace struct {
	UserID      string            `json:"userID"`      // FK -> users.user_id
	UserName    string            `json:"userName"`    // Name of the user
	WorkspaceID string            `json:"workspaceID"` // FK -> workspaces.workspace_id
	Role        UserWorkspaceRole `json:"role"`        // Role of the user in this specific workspace
	JoinedAt    time.Time         `json:"joinedAt"`    // Timestamp when the user joined the workspace
}
