package dto

import (
	"time"

	"github.com/sahajbooks/gst_books_app/internal/core/domain"
)

// --- Workspace DTOs ---

// CreateWorkspaceRequest defines data for creating a new workspace.
type CreateWorkspaceRequest struct {
	Name                string `json:"name" binding:"required"`
	Description         string `json:"description"`
	GSTIN               string `json:"gstin" binding:"omitempty,len=15"`
	PAN                 string `json:"pan" binding:"omitempty,len=10"`
	DefaultCurrencyCode string `json:"defaultCurrencyCode" binding:"required,iso4217"`
}

// WorkspaceResponse defines data returned for a workspace.
type WorkspaceResponse struct {
	WorkspaceID         string    `json:"workspaceID"`
	Name                string    `json:"name"`
	Description         string    `json:"description"`
	GSTIN               string    `json:"gstin,omitempty"`
	PAN                 string    `json:"pan,omitempty"`
	DefaultCurrencyCode *string   `json:"defaultCurrencyCode,omitempty"`
	CreatedAt           time.Time `json:"createdAt"`
	CreatedBy           string    `json:"createdBy"` // UserID
	LastUpdatedAt       time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy       string    `json:"lastUpdatedBy"` // UserID
}

// ToWorkspaceResponse converts domain.Workspace to DTO.
func ToWorkspaceResponse(w *domain.Workspace) WorkspaceResponse {
	return WorkspaceResponse{
		WorkspaceID:         w.WorkspaceID,
		Name:                w.Name,
		Description:         w.Description,
		GSTIN:               w.GSTIN,
		PAN:                 w.PAN,
		DefaultCurrencyCode: w.DefaultCurrencyCode,
		CreatedAt:           w.CreatedAt,
		CreatedBy:           w.CreatedBy,
		LastUpdatedAt:       w.LastUpdatedAt,
		LastUpdatedBy:       w.LastUpdatedBy,
	}
}

// ListWorkspacesResponse wraps a list of workspaces.
type ListWorkspacesResponse struct {
	Workspaces []WorkspaceResponse `json:"workspaces"`
}

// ToListWorkspacesResponse converts a slice of domain.Workspace to DTO.
func ToListWorkspacesResponse(ws []domain.Workspace) ListWorkspacesResponse {
	list := make([]WorkspaceResponse, len(ws))
	for i, w := range ws {
		list[i] = ToWorkspaceResponse(&w)
	}
	return ListWorkspacesResponse{Workspaces: list}
}

// --- User Workspace Membership DTOs ---

// AddUserToWorkspaceRequest defines data for adding a user to a workspace.
type AddUserToWorkspaceRequest struct {
	UserID string                   `json:"userID" binding:"required"`
	Role   domain.UserWorkspaceRole `json:"role" binding:"required,oneof=ADMIN MEMBER READONLY"`
}

// UpdateUserWorkspaceRoleRequest defines data for changing a member's role.
type UpdateUserWorkspaceRoleRequest struct {
	Role domain.UserWorkspaceRole `json:"role" binding:"required,oneof=ADMIN MEMBER READONLY"`
}

// ListWorkspacesParams defines query parameters for listing a user's workspaces.
type ListWorkspacesParams struct {
	IncludeDisabled bool `form:"includeDisabled,default=false"`
}

// UserWorkspaceResponse defines data returned about a user's membership.
type UserWorkspaceResponse struct {
	UserID      string                   `json:"userID"`
	UserName    string                   `json:"userName,omitempty"`
	WorkspaceID string                   `json:"workspaceID"`
	Role        domain.UserWorkspaceRole `json:"role"`
	JoinedAt    time.Time                `json:"joinedAt"`
}

// ToUserWorkspaceResponse converts domain.UserWorkspace to DTO.
func ToUserWorkspaceResponse(uw *domain.UserWorkspace) UserWorkspaceResponse {
	return UserWorkspaceResponse{
		UserID:      uw.UserID,
		UserName:    uw.UserName,
		WorkspaceID: uw.WorkspaceID,
		Role:        uw.Role,
		JoinedAt:    uw.JoinedAt,
	}
}

// ListWorkspaceUsersResponse wraps the members of a workspace.
type ListWorkspaceUsersResponse struct {
	Users []UserWorkspaceResponse `json:"users"`
}

// ToListWorkspaceUsersResponse converts a slice of domain.UserWorkspace to DTO.
func ToListWorkspaceUsersResponse(members []domain.UserWorkspace) ListWorkspaceUsersResponse {
	list := make([]UserWorkspaceResponse, len(members))
	for i, m := range members {
		list[i] = ToUserWorkspaceResponse(&m)
	}
	return ListWorkspaceUsersResponse{Users: list}
}
