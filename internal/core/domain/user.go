package domain

import (
	"fmt"
	"time"

	"github.com/novacollege/nodues_backend/internal/apperrors"
)

// Role is an application role granted to a user.
type Role string

const (
	RoleStudent         Role = "STUDENT"
	RoleDepartmentAdmin Role = "DEPARTMENT_ADMIN"
	RoleHOD             Role = "HOD"
	RolePrincipal       Role = "PRINCIPAL"
	RoleAdmin           Role = "ADMIN"
)

// ParseRole converts a string into a Role, returning a validation error for
// unknown input.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleStudent, RoleDepartmentAdmin, RoleHOD, RolePrincipal, RoleAdmin:
		return Role(s), nil
	default:
		return "", fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, s)
	}
}

// User represents an application user: a student, a department admin, an
// HOD, the principal, or a system admin.
type User struct {
	UserID       string     `json:"userID"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	FirstName    string     `json:"firstName"`
	LastName     string     `json:"lastName"`
	UniqueCode   string     `json:"uniqueCode"`
	Department   Department `json:"department"`
	Roles        []Role     `json:"roles"`
	IsEnabled    bool       `json:"isEnabled"`

	// SignatureImage is the stored signature image used when signing with
	// useSignatureImage=true. Nil when the user has not uploaded one.
	SignatureImage []byte `json:"-"`

	// Refresh token state, stored hashed.
	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`

	// AuthProvider is "local" or an external provider like "google".
	AuthProvider   string `json:"authProvider,omitempty"`
	ProviderUserID string `json:"-"`

	DeletedAt *time.Time `json:"deletedAt,omitempty"`
	AuditFields
}

// FullName returns the user's display name.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// HasRole reports whether the user holds the given role.
func (u User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// GoogleUserInfo holds the subset of Google profile data used during OAuth
// sign-in.
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
	Picture       string `json:"picture"`
}
