package repositories

import (
	"context"
	"time"

	"github.com/novacollege/nodues_backend/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a user by their unique identifier.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByUsername retrieves a user by username.
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// FindUserByEmail retrieves a user by email address.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindUsers retrieves a paginated list of users.
	FindUsers(ctx context.Context, limit, offset int) ([]domain.User, error)

	// FindUsersByDepartment retrieves users belonging to a department.
	FindUsersByDepartment(ctx context.Context, department domain.Department) ([]domain.User, error)

	// FindDepartmentAdmin retrieves the administrative owner of a
	// clearance department, i.e. the enabled user holding the
	// DEPARTMENT_ADMIN role for it.
	FindDepartmentAdmin(ctx context.Context, department domain.Department) (*domain.User, error)

	// FindUserByProviderDetails retrieves a user registered via an
	// external auth provider.
	FindUserByProviderDetails(ctx context.Context, authProvider, providerUserID string) (*domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdateUser updates mutable user fields.
	UpdateUser(ctx context.Context, user domain.User) error

	// UpdateSignatureImage replaces the user's stored signature image.
	UpdateSignatureImage(ctx context.Context, userID string, image []byte, updatedBy string, updatedAt time.Time) error

	// UpdateRefreshToken stores a hashed refresh token and its expiry.
	UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error

	// ClearRefreshToken removes the stored refresh token.
	ClearRefreshToken(ctx context.Context, userID string) error

	// MarkUserDeleted soft-deletes a user.
	MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time, deleterUserID string) error
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
