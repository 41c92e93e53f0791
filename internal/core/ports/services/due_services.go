package services

import (
	"context"

	"github.com/novacollege/nodues_backend/internal/core/domain"
	"github.com/novacollege/nodues_backend/internal/dto"
)

// DueReaderSvc defines read operations over the due ledger.
type DueReaderSvc interface {
	// GetDueByID retrieves a due by ID.
	GetDueByID(ctx context.Context, dueID string) (*domain.Due, error)

	// ListDuesForActor retrieves dues visible to the actor: admins see
	// everything, department admins their department, students their own.
	ListDuesForActor(ctx context.Context, actor domain.Actor, limit int, nextToken *string) ([]domain.Due, *string, error)

	// ListDuesByStudent retrieves a student's dues, department-scoped for
	// department-scoped actors.
	ListDuesByStudent(ctx context.Context, actor domain.Actor, studentUserID string) ([]domain.Due, error)
}

// DueWriterSvc defines the due lifecycle mutations.
type DueWriterSvc interface {
	// CreateDue raises a due against a student. Department admins are
	// force-scoped to their own department.
	CreateDue(ctx context.Context, actor domain.Actor, req dto.CreateDueRequest) (*domain.Due, error)

	// PayDue marks a due PAID on behalf of the owning student.
	PayDue(ctx context.Context, actor domain.Actor, dueID string, paymentReference string) (*domain.Due, error)

	// ApproveDue moves a PAID due to APPROVED, recording the approver.
	ApproveDue(ctx context.Context, actor domain.Actor, dueID string) (*domain.Due, error)

	// RejectDue moves a due to REJECTED.
	RejectDue(ctx context.Context, actor domain.Actor, dueID string) (*domain.Due, error)

	// DeleteDue removes a due; department admins may only delete PENDING
	// dues of their own department.
	DeleteDue(ctx context.Context, actor domain.Actor, dueID string) error

	// GenerateDueReceipt allocates a unique receipt number for an
	// APPROVED due. Idempotent: a second call returns the existing
	// receipt.
	GenerateDueReceipt(ctx context.Context, actor domain.Actor, dueID string) (*domain.Due, error)
}

// EligibilitySvc is the pure predicate over the due ledger used to gate
// certificate creation and per-department receipts.
type EligibilitySvc interface {
	// HasClearedAllDues reports whether every due of the student is
	// APPROVED. A student with zero dues has cleared all dues.
	HasClearedAllDues(ctx context.Context, studentUserID string) (bool, error)

	// HasPendingDuesInDepartment reports whether any due of the student
	// in the department is not APPROVED.
	HasPendingDuesInDepartment(ctx context.Context, studentUserID string, department domain.Department) (bool, error)
}

// DueSvcFacade combines all due-related service interfaces
type DueSvcFacade interface {
	DueReaderSvc
	DueWriterSvc
	EligibilitySvc
}
