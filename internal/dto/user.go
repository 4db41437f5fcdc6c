package dto

import (
	"github.com/sahajbooks/gst_books_app/internal/core/domain"
)

// CreateUserRequest registers a local username/password account.
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"omitempty,email"`
}

// UpdateUserRequest carries the updatable profile fields. Pointers
// distinguish omitted fields from zero values.
type UpdateUserRequest struct {
	Name *string `json:"name"`
}

// ListUsersParams are the query parameters for the user list endpoint.
type ListUsersParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListUsersResponse wraps a page of users.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}

// ToListUserResponse maps domain users into the list response.
func ToListUserResponse(users []domain.User) ListUsersResponse {
	userResponses := make([]UserResponse, len(users))
	for i := range users {
		userResponses[i] = ToUserResponse(&users[i])
	}
	return ListUsersResponse{Users: userResponses}
}
