package dto

import (
	"time"

	"github.com/novacollege/nodues_backend/internal/core/domain"
)

// CreateUserRequest defines the data needed to register a new user.
type CreateUserRequest struct {
	Username   string   `json:"username" binding:"required,min=3,max=50"`
	Email      string   `json:"email" binding:"required,email"`
	Password   string   `json:"password" binding:"required,min=8"`
	FirstName  string   `json:"firstName" binding:"required"`
	LastName   string   `json:"lastName" binding:"required"`
	UniqueCode string   `json:"uniqueCode"`
	Department string   `json:"department" binding:"required,department"`
	Roles      []string `json:"roles" binding:"required,min=1,dive,oneof=STUDENT DEPARTMENT_ADMIN HOD PRINCIPAL ADMIN"`
}

// UpdateUserRequest defines the data allowed for updating a user.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateUserRequest struct {
	Email      *string   `json:"email" binding:"omitempty,email"`
	FirstName  *string   `json:"firstName"`
	LastName   *string   `json:"lastName"`
	Department *string   `json:"department" binding:"omitempty,department"`
	Roles      *[]string `json:"roles" binding:"omitempty,min=1,dive,oneof=STUDENT DEPARTMENT_ADMIN HOD PRINCIPAL ADMIN"`
	IsEnabled  *bool     `json:"isEnabled"`
}

// ListUsersParams defines query parameters for listing users.
type ListUsersParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// UserResponse defines the data returned for a user.
type UserResponse struct {
	UserID     string    `json:"userID"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	UniqueCode string    `json:"uniqueCode,omitempty"`
	Department string    `json:"department"`
	Roles      []string  `json:"roles"`
	IsEnabled  bool      `json:"isEnabled"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ToUserResponse converts a domain.User to UserResponse DTO
func ToUserResponse(user *domain.User) UserResponse {
	roles := make([]string, len(user.Roles))
	for i, r := range user.Roles {
		roles[i] = string(r)
	}
	return UserResponse{
		UserID:     user.UserID,
		Username:   user.Username,
		Email:      user.Email,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		UniqueCode: user.UniqueCode,
		Department: string(user.Department),
		Roles:      roles,
		IsEnabled:  user.IsEnabled,
		CreatedAt:  user.CreatedAt,
	}
}

// ListUsersResponse wraps the list of users.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}

// ToListUserResponse converts a slice of domain.User to ListUsersResponse DTO
func ToListUserResponse(users []domain.User) ListUsersResponse {
	userResponses := make([]UserResponse, len(users))
	for i := range users {
		userResponses[i] = ToUserResponse(&users[i])
	}
	return ListUsersResponse{Users: userResponses}
}
