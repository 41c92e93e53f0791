package services

import (
	"context"

	"github.com/novacollege/nodues_backend/internal/core/domain"
	"github.com/novacollege/nodues_backend/internal/dto"
)

// StudentSvcFacade defines operations over student profiles.
type StudentSvcFacade interface {
	// CreateStudent registers a profile for an existing student user.
	CreateStudent(ctx context.Context, req dto.CreateStudentRequest, creatorUserID string) (*domain.StudentProfile, error)

	// GetStudentByUserID retrieves the profile attached to a user.
	GetStudentByUserID(ctx context.Context, userID string) (*domain.StudentProfile, error)

	// GetStudentByRollNumber retrieves a profile by roll number.
	GetStudentByRollNumber(ctx context.Context, rollNumber string) (*domain.StudentProfile, error)

	// ListStudents retrieves a paginated list of profiles.
	ListStudents(ctx context.Context, limit, offset int) ([]domain.StudentProfile, error)

	// UpdateStudent updates mutable profile fields.
	UpdateStudent(ctx context.Context, studentID string, req dto.UpdateStudentRequest, requestingUserID string) (*domain.StudentProfile, error)
}
