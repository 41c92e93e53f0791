package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/novacollege/nodues_backend/internal/apperrors"
	"github.com/novacollege/nodues_backend/internal/core/domain"
	portsrepo "github.com/novacollege/nodues_backend/internal/core/ports/repositories"
	portssvc "github.com/novacollege/nodues_backend/internal/core/ports/services"
	"github.com/novacollege/nodues_backend/internal/dto"
	"github.com/novacollege/nodues_backend/internal/middleware"
)

// studentService provides student profile operations.
type studentService struct {
	studentRepo portsrepo.StudentRepositoryFacade
	userRepo    portsrepo.UserRepositoryFacade
}

// NewStudentService creates a new student service.
func NewStudentService(studentRepo portsrepo.StudentRepositoryFacade, userRepo portsrepo.UserRepositoryFacade) portssvc.StudentSvcFacade {
	return &studentService{
		studentRepo: studentRepo,
		userRepo:    userRepo,
	}
}

var _ portssvc.StudentSvcFacade = (*studentService)(nil)

func (s *studentService) CreateStudent(ctx context.Context, req dto.CreateStudentRequest, creatorUserID string) (*domain.StudentProfile, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByID(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve user %s for student profile: %w", req.UserID, err)
	}
	if !user.HasRole(domain.RoleStudent) {
		return nil, fmt.Errorf("%w: user %s does not hold the STUDENT role", apperrors.ErrValidation, req.UserID)
	}

	if _, err := s.studentRepo.FindStudentByUserID(ctx, req.UserID); err == nil {
		return nil, fmt.Errorf("%w: user %s already has a student profile", apperrors.ErrConflict, req.UserID)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing profile: %w", err)
	}
	if _, err := s.studentRepo.FindStudentByRollNumber(ctx, req.RollNumber); err == nil {
		return nil, fmt.Errorf("%w: roll number %q is already registered", apperrors.ErrConflict, req.RollNumber)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check roll number: %w", err)
	}

	now := time.Now().UTC()
	student := domain.StudentProfile{
		StudentID:     uuid.NewString(),
		UserID:        req.UserID,
		RollNumber:    req.RollNumber,
		Semester:      req.Semester,
		Batch:         req.Batch,
		Course:        req.Course,
		Section:       req.Section,
		FatherName:    req.FatherName,
		MotherName:    req.MotherName,
		ContactNumber: req.ContactNumber,
		Address:       req.Address,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.studentRepo.SaveStudent(ctx, student); err != nil {
		logger.Error("Failed to save student profile", slog.String("error", err.Error()), slog.String("user_id", req.UserID))
		return nil, fmt.Errorf("failed to create student profile: %w", err)
	}

	logger.Info("Student profile created", slog.String("student_id", student.StudentID), slog.String("roll_number", student.RollNumber))
	return &student, nil
}

func (s *studentService) GetStudentByUserID(ctx context.Context, userID string) (*domain.StudentProfile, error) {
	student, err := s.studentRepo.FindStudentByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get student profile for user %s: %w", userID, err)
	}
	return student, nil
}

func (s *studentService) GetStudentByRollNumber(ctx context.Context, rollNumber string) (*domain.StudentProfile, error) {
	student, err := s.studentRepo.FindStudentByRollNumber(ctx, rollNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to get student profile by roll number: %w", err)
	}
	return student, nil
}

func (s *studentService) ListStudents(ctx context.Context, limit, offset int) ([]domain.StudentProfile, error) {
	students, err := s.studentRepo.FindStudents(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	return students, nil
}

func (s *studentService) UpdateStudent(ctx context.Context, studentID string, req dto.UpdateStudentRequest, requestingUserID string) (*domain.StudentProfile, error) {
	student, err := s.studentRepo.FindStudentByID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to find student %s for update: %w", studentID, err)
	}

	if req.Semester != nil {
		student.Semester = *req.Semester
	}
	if req.Batch != nil {
		student.Batch = *req.Batch
	}
	if req.Course != nil {
		student.Course = *req.Course
	}
	if req.Section != nil {
		student.Section = *req.Section
	}
	if req.ContactNumber != nil {
		student.ContactNumber = *req.ContactNumber
	}
	if req.Address != nil {
		student.Address = *req.Address
	}

	student.LastUpdatedAt = time.Now().UTC()
	student.LastUpdatedBy = requestingUserID

	if err := s.studentRepo.UpdateStudent(ctx, *student); err != nil {
		return nil, fmt.Errorf("failed to update student %s: %w", studentID, err)
	}
	return student, nil
}
