package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/novacollege/nodues_backend/internal/apperrors"
	"github.com/novacollege/nodues_backend/internal/core/domain"
	portsrepo "github.com/novacollege/nodues_backend/internal/core/ports/repositories"
	portssvc "github.com/novacollege/nodues_backend/internal/core/ports/services"
	"github.com/novacollege/nodues_backend/internal/dto"
	"github.com/novacollege/nodues_backend/internal/middleware"
)

const receiptTimestampLayout = "20060102150405"

// dueService provides the due ledger lifecycle and the eligibility gate.
type dueService struct {
	dueRepo  portsrepo.DueRepositoryFacade
	userRepo portsrepo.UserRepositoryFacade
	notifier portssvc.NotifierSvcFacade
}

// NewDueService creates a new due service.
func NewDueService(dueRepo portsrepo.DueRepositoryFacade, userRepo portsrepo.UserRepositoryFacade, notifier portssvc.NotifierSvcFacade) portssvc.DueSvcFacade {
	return &dueService{
		dueRepo:  dueRepo,
		userRepo: userRepo,
		notifier: notifier,
	}
}

var _ portssvc.DueSvcFacade = (*dueService)(nil)

func (s *dueService) GetDueByID(ctx context.Context, dueID string) (*domain.Due, error) {
	due, err := s.dueRepo.FindDueByID(ctx, dueID)
	if err != nil {
		return nil, fmt.Errorf("failed to get due %s: %w", dueID, err)
	}
	return due, nil
}

func (s *dueService) ListDuesForActor(ctx context.Context, actor domain.Actor, limit int, nextToken *string) ([]domain.Due, *string, error) {
	switch {
	case actor.HasRole(domain.RoleAdmin) || actor.HasRole(domain.RolePrincipal):
		return s.dueRepo.ListDues(ctx, limit, nextToken)
	case actor.HasAnyRole(domain.RoleDepartmentAdmin, domain.RoleHOD):
		dues, err := s.dueRepo.FindDuesByDepartment(ctx, actor.Department)
		return dues, nil, err
	case actor.HasRole(domain.RoleStudent):
		dues, err := s.dueRepo.FindDuesByStudent(ctx, actor.UserID)
		return dues, nil, err
	default:
		return nil, nil, apperrors.ErrForbidden
	}
}

func (s *dueService) ListDuesByStudent(ctx context.Context, actor domain.Actor, studentUserID string) ([]domain.Due, error) {
	if actor.HasRole(domain.RoleStudent) && !actor.HasAnyRole(domain.RoleAdmin, domain.RoleDepartmentAdmin, domain.RoleHOD, domain.RolePrincipal) && actor.UserID != studentUserID {
		return nil, fmt.Errorf("%w: students may only view their own dues", apperrors.ErrForbidden)
	}
	if actor.IsDepartmentScoped() {
		return s.dueRepo.FindDuesByStudentAndDepartment(ctx, studentUserID, actor.Department)
	}
	return s.dueRepo.FindDuesByStudent(ctx, studentUserID)
}

func (s *dueService) CreateDue(ctx context.Context, actor domain.Actor, req dto.CreateDueRequest) (*domain.Due, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !actor.HasAnyRole(domain.RoleAdmin, domain.RoleDepartmentAdmin) {
		return nil, fmt.Errorf("%w: only admins and department admins may raise dues", apperrors.ErrForbidden)
	}

	department := domain.Department(req.Department)
	// Department admins always raise dues in their own department.
	if actor.IsDepartmentScoped() {
		department = actor.Department
	}
	if !department.IsKnown() {
		return nil, fmt.Errorf("%w: unknown department %q", apperrors.ErrValidation, department)
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: due amount must be positive", apperrors.ErrValidation)
	}

	student, err := s.userRepo.FindUserByID(ctx, req.StudentUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve student %s: %w", req.StudentUserID, err)
	}
	if !student.HasRole(domain.RoleStudent) {
		return nil, fmt.Errorf("%w: user %s is not a student", apperrors.ErrValidation, req.StudentUserID)
	}

	now := time.Now().UTC()
	due := domain.Due{
		DueID:         uuid.NewString(),
		StudentUserID: req.StudentUserID,
		Department:    department,
		Description:   req.Description,
		Amount:        req.Amount,
		DueDate:       req.DueDate,
		Status:        domain.PaymentPending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.dueRepo.SaveDue(ctx, due); err != nil {
		logger.Error("Failed to save due", slog.String("error", err.Error()), slog.String("student_user_id", req.StudentUserID))
		return nil, fmt.Errorf("failed to create due: %w", err)
	}

	logger.Info("Due created", slog.String("due_id", due.DueID), slog.String("department", string(due.Department)))

	s.dispatchNotification(ctx, domain.Notification{
		Kind:      domain.NotifyDueAdded,
		Recipient: student.Email,
		Subject:   fmt.Sprintf("New due from %s", department.DisplayName()),
		Body:      fmt.Sprintf("Hello %s,\n\nA due of %s has been raised against you by %s: %s\nDue date: %s", student.FullName(), due.Amount.String(), department.DisplayName(), due.Description, due.DueDate.Format("02 Jan 2006")),
		Meta:      map[string]string{"dueID": due.DueID},
	})

	return &due, nil
}

func (s *dueService) PayDue(ctx context.Context, actor domain.Actor, dueID string, paymentReference string) (*domain.Due, error) {
	due, err := s.dueRepo.FindDueByID(ctx, dueID)
	if err != nil {
		return nil, fmt.Errorf("failed to find due %s: %w", dueID, err)
	}
	if due.StudentUserID != actor.UserID {
		return nil, fmt.Errorf("%w: only the owning student may pay a due", apperrors.ErrForbidden)
	}
	// A rejected payment can be retried with a fresh reference.
	if due.Status != domain.PaymentPending && due.Status != domain.PaymentRejected {
		return nil, fmt.Errorf("%w: due %s is %s, only PENDING or REJECTED dues can be paid", apperrors.ErrConflict, dueID, due.Status)
	}

	now := time.Now().UTC()
	due.Status = domain.PaymentPaid
	due.PaymentDate = &now
	due.PaymentReference = paymentReference
	due.LastUpdatedAt = now
	due.LastUpdatedBy = actor.UserID

	if err := s.dueRepo.UpdateDue(ctx, *due); err != nil {
		return nil, fmt.Errorf("failed to record payment for due %s: %w", dueID, err)
	}
	return due, nil
}

func (s *dueService) ApproveDue(ctx context.Context, actor domain.Actor, dueID string) (*domain.Due, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	due, err := s.dueRepo.FindDueByID(ctx, dueID)
	if err != nil {
		return nil, fmt.Errorf("failed to find due %s: %w", dueID, err)
	}
	if err := s.authorizeDueAction(actor, due); err != nil {
		return nil, err
	}
	if due.Status != domain.PaymentPaid {
		return nil, fmt.Errorf("%w: due %s is %s, only PAID dues can be approved", apperrors.ErrConflict, dueID, due.Status)
	}

	now := time.Now().UTC()
	due.Status = domain.PaymentApproved
	due.ApprovedBy = &actor.UserID
	due.ApprovalDate = &now
	due.LastUpdatedAt = now
	due.LastUpdatedBy = actor.UserID

	if err := s.dueRepo.UpdateDue(ctx, *due); err != nil {
		logger.Error("Failed to approve due", slog.String("error", err.Error()), slog.String("due_id", dueID))
		return nil, fmt.Errorf("failed to approve due %s: %w", dueID, err)
	}

	logger.Info("Due approved", slog.String("due_id", dueID), slog.String("approved_by", actor.UserID))

	if student, err := s.userRepo.FindUserByID(ctx, due.StudentUserID); err == nil {
		s.dispatchNotification(ctx, domain.Notification{
			Kind:      domain.NotifyDueApproved,
			Recipient: student.Email,
			Subject:   fmt.Sprintf("Payment approved by %s", due.Department.DisplayName()),
			Body:      fmt.Sprintf("Hello %s,\n\nYour payment of %s to %s has been approved.", student.FullName(), due.Amount.String(), due.Department.DisplayName()),
			Meta:      map[string]string{"dueID": due.DueID},
		})
	}

	return due, nil
}

func (s *dueService) RejectDue(ctx context.Context, actor domain.Actor, dueID string) (*domain.Due, error) {
	due, err := s.dueRepo.FindDueByID(ctx, dueID)
	if err != nil {
		return nil, fmt.Errorf("failed to find due %s: %w", dueID, err)
	}
	if err := s.authorizeDueAction(actor, due); err != nil {
		return nil, err
	}
	if due.Status == domain.PaymentApproved || due.Status == domain.PaymentRejected {
		return nil, fmt.Errorf("%w: due %s is already %s", apperrors.ErrConflict, dueID, due.Status)
	}

	now := time.Now().UTC()
	due.Status = domain.PaymentRejected
	due.LastUpdatedAt = now
	due.LastUpdatedBy = actor.UserID

	if err := s.dueRepo.UpdateDue(ctx, *due); err != nil {
		return nil, fmt.Errorf("failed to reject due %s: %w", dueID, err)
	}
	return due, nil
}

func (s *dueService) DeleteDue(ctx context.Context, actor domain.Actor, dueID string) error {
	due, err := s.dueRepo.FindDueByID(ctx, dueID)
	if err != nil {
		return fmt.Errorf("failed to find due %s: %w", dueID, err)
	}
	if err := s.authorizeDueAction(actor, due); err != nil {
		return err
	}
	if !due.IsDeletable() {
		return fmt.Errorf("%w: due %s is %s and part of the financial record", apperrors.ErrConflict, dueID, due.Status)
	}
	if err := s.dueRepo.DeleteDue(ctx, dueID); err != nil {
		return fmt.Errorf("failed to delete due %s: %w", dueID, err)
	}
	return nil
}

// GenerateDueReceipt allocates the receipt number for an approved due.
// Calling it again returns the already stored receipt unchanged.
func (s *dueService) GenerateDueReceipt(ctx context.Context, actor domain.Actor, dueID string) (*domain.Due, error) {
	due, err := s.dueRepo.FindDueByID(ctx, dueID)
	if err != nil {
		return nil, fmt.Errorf("failed to find due %s: %w", dueID, err)
	}
	if actor.HasRole(domain.RoleStudent) && !actor.HasAnyRole(domain.RoleAdmin, domain.RoleDepartmentAdmin) && due.StudentUserID != actor.UserID {
		return nil, fmt.Errorf("%w: students may only request receipts for their own dues", apperrors.ErrForbidden)
	}
	if due.Status != domain.PaymentApproved {
		return nil, fmt.Errorf("%w: due %s is %s, receipts are issued for APPROVED dues only", apperrors.ErrConflict, dueID, due.Status)
	}
	if due.ReceiptGenerated && due.ReceiptNumber != nil {
		return due, nil
	}

	now := time.Now().UTC()
	receiptNumber := fmt.Sprintf("IPS-%s-%s-%s", due.Department, due.DueID, now.Format(receiptTimestampLayout))
	due.ReceiptGenerated = true
	due.ReceiptNumber = &receiptNumber
	due.LastUpdatedAt = now
	due.LastUpdatedBy = actor.UserID

	if err := s.dueRepo.UpdateDue(ctx, *due); err != nil {
		return nil, fmt.Errorf("failed to store receipt for due %s: %w", dueID, err)
	}
	return due, nil
}

// HasClearedAllDues reports whether every due of the student is APPROVED.
// A student with no dues at all has nothing outstanding and is eligible.
func (s *dueService) HasClearedAllDues(ctx context.Context, studentUserID string) (bool, error) {
	count, err := s.dueRepo.CountNotApprovedByStudent(ctx, studentUserID)
	if err != nil {
		return false, fmt.Errorf("failed to evaluate due clearance for student %s: %w", studentUserID, err)
	}
	return count == 0, nil
}

func (s *dueService) HasPendingDuesInDepartment(ctx context.Context, studentUserID string, department domain.Department) (bool, error) {
	count, err := s.dueRepo.CountNotApprovedByStudentAndDepartment(ctx, studentUserID, department)
	if err != nil {
		return false, fmt.Errorf("failed to evaluate department clearance for student %s: %w", studentUserID, err)
	}
	return count > 0, nil
}

// authorizeDueAction enforces department scoping on due mutations: admins
// act everywhere, department admins only within their own department.
func (s *dueService) authorizeDueAction(actor domain.Actor, due *domain.Due) error {
	if actor.HasRole(domain.RoleAdmin) {
		return nil
	}
	if !actor.HasAnyRole(domain.RoleDepartmentAdmin, domain.RoleHOD) {
		return fmt.Errorf("%w: insufficient role for due management", apperrors.ErrForbidden)
	}
	if due.Department != actor.Department {
		return fmt.Errorf("%w: due belongs to %s, actor is scoped to %s", apperrors.ErrForbidden, due.Department, actor.Department)
	}
	return nil
}

func (s *dueService) dispatchNotification(ctx context.Context, n domain.Notification) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, n); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Notification dispatch failed",
			slog.String("kind", string(n.Kind)), slog.String("error", err.Error()))
	}
}
