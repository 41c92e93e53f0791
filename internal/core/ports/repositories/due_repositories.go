package repositories

import (
	"context"

	"github.com/novacollege/nodues_backend/internal/core/domain"
)

// DueReader defines read operations for due data
type DueReader interface {
	// FindDueByID retrieves a due by its identifier.
	FindDueByID(ctx context.Context, dueID string) (*domain.Due, error)

	// FindDuesByStudent retrieves all dues owed by a student.
	FindDuesByStudent(ctx context.Context, studentUserID string) ([]domain.Due, error)

	// FindDuesByStudentAndDepartment retrieves a student's dues within one
	// department.
	FindDuesByStudentAndDepartment(ctx context.Context, studentUserID string, department domain.Department) ([]domain.Due, error)

	// FindDuesByDepartment retrieves all dues raised by a department.
	FindDuesByDepartment(ctx context.Context, department domain.Department) ([]domain.Due, error)

	// ListDues retrieves a page of dues ordered by creation time using
	// token-based pagination. It returns the dues, a token for the next
	// page, and an error.
	ListDues(ctx context.Context, limit int, nextToken *string) ([]domain.Due, *string, error)

	// CountNotApprovedByStudent returns how many of the student's dues are
	// not yet APPROVED. The eligibility gate is built on this.
	CountNotApprovedByStudent(ctx context.Context, studentUserID string) (int, error)

	// CountNotApprovedByStudentAndDepartment is the department-scoped
	// variant of CountNotApprovedByStudent.
	CountNotApprovedByStudentAndDepartment(ctx context.Context, studentUserID string, department domain.Department) (int, error)
}

// DueWriter defines write operations for due data
type DueWriter interface {
	// SaveDue persists a new due.
	SaveDue(ctx context.Context, due domain.Due) error

	// UpdateDue updates mutable due fields (status, payment and approval
	// attribution, receipt fields).
	UpdateDue(ctx context.Context, due domain.Due) error

	// DeleteDue removes a due. Callers must enforce that only PENDING
	// dues are deletable.
	DeleteDue(ctx context.Context, dueID string) error
}

// DueRepositoryFacade combines all due-related repository interfaces
type DueRepositoryFacade interface {
	DueReader
	DueWriter
}
