package repositories

import (
	"context"

	"github.com/novacollege/nodues_backend/internal/core/domain"
)

// StudentReader defines read operations for student profile data
type StudentReader interface {
	// FindStudentByID retrieves a student profile by its identifier.
	FindStudentByID(ctx context.Context, studentID string) (*domain.StudentProfile, error)

	// FindStudentByUserID retrieves the profile attached to a user.
	FindStudentByUserID(ctx context.Context, userID string) (*domain.StudentProfile, error)

	// FindStudentByRollNumber retrieves a profile by roll number.
	FindStudentByRollNumber(ctx context.Context, rollNumber string) (*domain.StudentProfile, error)

	// FindStudents retrieves a paginated list of student profiles.
	FindStudents(ctx context.Context, limit, offset int) ([]domain.StudentProfile, error)
}

// StudentWriter defines write operations for student profile data
type StudentWriter interface {
	// SaveStudent persists a new student profile.
	SaveStudent(ctx context.Context, student domain.StudentProfile) error

	// UpdateStudent updates mutable profile fields.
	UpdateStudent(ctx context.Context, student domain.StudentProfile) error

	// DeleteStudent removes a student profile.
	DeleteStudent(ctx context.Context, studentID string) error
}

// StudentRepositoryFacade combines all student-related repository interfaces
type StudentRepositoryFacade interface {
	StudentReader
	StudentWriter
}
