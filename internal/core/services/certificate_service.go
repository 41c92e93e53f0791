package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/novacollege/nodues_backend/internal/apperrors"
	"github.com/novacollege/nodues_backend/internal/core/domain"
	portsrepo "github.com/novacollege/nodues_backend/internal/core/ports/repositories"
	portssvc "github.com/novacollege/nodues_backend/internal/core/ports/services"
	"github.com/novacollege/nodues_backend/internal/dto"
	"github.com/novacollege/nodues_backend/internal/middleware"
)

var (
	// ErrUnclearedDues is returned when certificate creation is attempted
	// while the student still has dues that are not APPROVED.
	ErrUnclearedDues = errors.New("student has uncleared dues")

	// ErrActiveCertificateExists is returned when the student already has
	// a non-rejected certificate.
	ErrActiveCertificateExists = errors.New("an active certificate already exists for this student")
)

// certificateService drives the no-dues certificate workflow. Every
// signature mutation runs inside a transaction with the certificate row
// locked, so concurrent signers against one certificate serialize.
type certificateService struct {
	certRepo portsrepo.CertificateRepositoryWithTx
	userRepo portsrepo.UserRepositoryFacade
	dueSvc   portssvc.EligibilitySvc
	notifier portssvc.NotifierSvcFacade
}

// NewCertificateService creates a new certificate service.
func NewCertificateService(certRepo portsrepo.CertificateRepositoryWithTx, userRepo portsrepo.UserRepositoryFacade, dueSvc portssvc.EligibilitySvc, notifier portssvc.NotifierSvcFacade) portssvc.CertificateSvcFacade {
	return &certificateService{
		certRepo: certRepo,
		userRepo: userRepo,
		dueSvc:   dueSvc,
		notifier: notifier,
	}
}

var _ portssvc.CertificateSvcFacade = (*certificateService)(nil)

// newCertificateNumber builds a certificate number from the student's
// academic department and a short random suffix, e.g. IPS-CSE-3f9c01ab.
func newCertificateNumber(department domain.Department) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("IPS-%s-%s", department, suffix)
}

func (s *certificateService) CreateCertificate(ctx context.Context, actor domain.Actor, studentUserID string) (*domain.NoDuesCertificate, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !actor.HasRole(domain.RoleAdmin) && actor.UserID != studentUserID {
		return nil, fmt.Errorf("%w: students may only request their own certificate", apperrors.ErrForbidden)
	}

	student, err := s.userRepo.FindUserByID(ctx, studentUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve student %s: %w", studentUserID, err)
	}
	if !student.HasRole(domain.RoleStudent) {
		return nil, fmt.Errorf("%w: user %s is not a student", apperrors.ErrValidation, studentUserID)
	}

	cleared, err := s.dueSvc.HasClearedAllDues(ctx, studentUserID)
	if err != nil {
		return nil, err
	}
	if !cleared {
		return nil, fmt.Errorf("%w: %s", ErrUnclearedDues, studentUserID)
	}

	if _, err := s.certRepo.FindActiveCertificateByStudent(ctx, studentUserID); err == nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrConflict, ErrActiveCertificateExists)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check active certificate: %w", err)
	}

	// Standalone receipt signatures collected before the request carry
	// over: their SIGNED state counts toward the new certificate.
	existing, err := s.certRepo.FindSignaturesByStudent(ctx, studentUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load existing signatures: %w", err)
	}
	existingByDept := make(map[domain.Department]domain.DepartmentSignature, len(existing))
	for _, sig := range existing {
		if sig.CertificateID == "" {
			existingByDept[sig.Department] = sig
		}
	}

	now := time.Now().UTC()
	certificateID := uuid.NewString()

	required := domain.RequiredSignatureDepartments()
	signatures := make([]domain.DepartmentSignature, len(required))
	signedCount := 0
	for i, dept := range required {
		sig := domain.DepartmentSignature{
			SignatureID:   uuid.NewString(),
			CertificateID: certificateID,
			StudentUserID: studentUserID,
			Department:    dept,
			Status:        domain.SignaturePending,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actor.UserID,
				LastUpdatedAt: now,
				LastUpdatedBy: actor.UserID,
			},
		}
		if prior, ok := existingByDept[dept]; ok && prior.Status == domain.SignatureSigned {
			sig.SignatureID = prior.SignatureID
			sig.Status = prior.Status
			sig.SignedBy = prior.SignedBy
			sig.SignedAt = prior.SignedAt
			sig.Comments = prior.Comments
			sig.SignatureImage = prior.SignatureImage
			signedCount++
		}
		signatures[i] = sig
	}

	certificate := domain.NoDuesCertificate{
		CertificateID:     certificateID,
		StudentUserID:     studentUserID,
		CertificateNumber: newCertificateNumber(student.Department),
		Status:            domain.DeriveStatus(signedCount, len(required), false),
		Signatures:        signatures,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.certRepo.SaveCertificate(ctx, certificate); err != nil {
		logger.Error("Failed to save certificate", slog.String("error", err.Error()), slog.String("student_user_id", studentUserID))
		return nil, fmt.Errorf("failed to create certificate: %w", err)
	}

	logger.Info("Certificate created",
		slog.String("certificate_id", certificate.CertificateID),
		slog.String("certificate_number", certificate.CertificateNumber),
		slog.String("status", string(certificate.Status)),
	)
	return &certificate, nil
}

func (s *certificateService) SignByDepartment(ctx context.Context, actor domain.Actor, req dto.SignByDepartmentRequest) (*domain.DepartmentSignature, error) {
	return s.processDepartmentAction(ctx, actor, req, domain.SignatureSigned)
}

func (s *certificateService) RejectByDepartment(ctx context.Context, actor domain.Actor, req dto.SignByDepartmentRequest) (*domain.DepartmentSignature, error) {
	return s.processDepartmentAction(ctx, actor, req, domain.SignatureRejected)
}

// processDepartmentAction records a department's sign or reject decision
// under the certificate row lock and recomputes the aggregate status.
func (s *certificateService) processDepartmentAction(ctx context.Context, actor domain.Actor, req dto.SignByDepartmentRequest, decision domain.SignatureStatus) (*domain.DepartmentSignature, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	department := domain.Department(req.Department)

	tx, err := s.certRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.certRepo.Rollback(ctx, tx)

	cert, err := s.certRepo.FindCertificateByIDForUpdate(ctx, tx, req.CertificateID)
	if err != nil {
		return nil, fmt.Errorf("failed to load certificate %s: %w", req.CertificateID, err)
	}
	if cert.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: certificate %s is already %s", apperrors.ErrConflict, cert.CertificateID, cert.Status)
	}

	if err := s.authorizeDepartmentSigner(ctx, actor, cert, department); err != nil {
		return nil, err
	}

	sig := cert.SignatureFor(department)
	if sig == nil {
		return nil, fmt.Errorf("%w: certificate carries no signature slot for %s", apperrors.ErrNotFound, department)
	}
	if sig.IsProcessed() {
		// Signatures are write-once. A repeated decision is a conflict,
		// never a silent overwrite.
		return nil, fmt.Errorf("%w: %s signature is already %s", apperrors.ErrConflict, department, sig.Status)
	}

	if decision == domain.SignatureSigned {
		pending, err := s.dueSvc.HasPendingDuesInDepartment(ctx, cert.StudentUserID, department)
		if err != nil {
			return nil, err
		}
		if pending {
			return nil, fmt.Errorf("%w: student has uncleared dues in %s", apperrors.ErrConflict, department)
		}
	}

	signer, err := s.userRepo.FindUserByID(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve signer: %w", err)
	}

	now := time.Now().UTC()
	sig.Status = decision
	sig.SignedBy = fmt.Sprintf("%s (%s)", signer.FullName(), department.DisplayName())
	sig.SignedAt = &now
	sig.Comments = req.Comments
	if req.UseSignatureImage && decision == domain.SignatureSigned {
		if len(signer.SignatureImage) == 0 {
			return nil, fmt.Errorf("%w: no stored signature image for signer", apperrors.ErrValidation)
		}
		sig.SignatureImage = signer.SignatureImage
	}
	sig.LastUpdatedAt = now
	sig.LastUpdatedBy = actor.UserID

	if err := s.certRepo.UpdateSignatureInTx(ctx, tx, *sig); err != nil {
		return nil, err
	}

	// Recompute the aggregate from the mutated tally. A rejection pins
	// the certificate to REJECTED regardless of the remaining tally.
	if decision == domain.SignatureRejected {
		cert.Status = domain.CertificateRejected
	} else {
		cert.Status = domain.DeriveStatus(cert.SignedCount(), len(cert.Signatures), cert.PrincipalSigned)
	}
	cert.LastUpdatedAt = now
	cert.LastUpdatedBy = actor.UserID
	if err := s.certRepo.UpdateCertificateInTx(ctx, tx, *cert); err != nil {
		return nil, err
	}

	if err := s.certRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	logger.Info("Department signature recorded",
		slog.String("certificate_id", cert.CertificateID),
		slog.String("department", string(department)),
		slog.String("decision", string(decision)),
		slog.String("certificate_status", string(cert.Status)),
	)
	return sig, nil
}

func (s *certificateService) SignByPrincipal(ctx context.Context, actor domain.Actor, certificateID string, useSignatureImage bool) (*domain.NoDuesCertificate, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !actor.HasAnyRole(domain.RolePrincipal, domain.RoleAdmin) {
		return nil, fmt.Errorf("%w: principal sign-off requires the PRINCIPAL role", apperrors.ErrForbidden)
	}

	tx, err := s.certRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.certRepo.Rollback(ctx, tx)

	cert, err := s.certRepo.FindCertificateByIDForUpdate(ctx, tx, certificateID)
	if err != nil {
		return nil, fmt.Errorf("failed to load certificate %s: %w", certificateID, err)
	}
	if cert.Status != domain.CertificateAllSigned || !cert.AllSigned() {
		return nil, fmt.Errorf("%w: certificate %s is %s, principal sign-off requires ALLSIGNED", apperrors.ErrConflict, certificateID, cert.Status)
	}
	if cert.PrincipalSigned {
		return nil, fmt.Errorf("%w: certificate %s is already signed by the principal", apperrors.ErrConflict, certificateID)
	}

	signer, err := s.userRepo.FindUserByID(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve signer: %w", err)
	}

	now := time.Now().UTC()
	signedBy := signer.FullName()
	cert.PrincipalSigned = true
	cert.PrincipalSignedBy = &signedBy
	cert.PrincipalSignedAt = &now
	if useSignatureImage {
		if len(signer.SignatureImage) == 0 {
			return nil, fmt.Errorf("%w: no stored signature image for principal", apperrors.ErrValidation)
		}
		cert.PrincipalSignatureImage = signer.SignatureImage
	}
	cert.IssueDate = &now
	cert.Status = domain.DeriveStatus(cert.SignedCount(), len(cert.Signatures), true)
	cert.LastUpdatedAt = now
	cert.LastUpdatedBy = actor.UserID

	if err := s.certRepo.UpdateCertificateInTx(ctx, tx, *cert); err != nil {
		return nil, err
	}
	if err := s.certRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	logger.Info("Certificate completed",
		slog.String("certificate_id", cert.CertificateID),
		slog.String("certificate_number", cert.CertificateNumber),
	)
	return cert, nil
}

// UpdateCertificateStatus is the administrative entry point for status
// changes. Requested transitions are checked against the transition table;
// anything else fails with a conflict.
func (s *certificateService) UpdateCertificateStatus(ctx context.Context, actor domain.Actor, certificateID string, requestedStatus string) (*domain.NoDuesCertificate, error) {
	if !actor.HasRole(domain.RoleAdmin) {
		return nil, fmt.Errorf("%w: direct status changes are admin only", apperrors.ErrForbidden)
	}

	next, err := domain.ParseCertificateStatus(requestedStatus)
	if err != nil {
		return nil, err
	}

	tx, err := s.certRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.certRepo.Rollback(ctx, tx)

	cert, err := s.certRepo.FindCertificateByIDForUpdate(ctx, tx, certificateID)
	if err != nil {
		return nil, fmt.Errorf("failed to load certificate %s: %w", certificateID, err)
	}
	if !cert.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: cannot move certificate from %s to %s", apperrors.ErrConflict, cert.Status, next)
	}
	if next == domain.CertificateComplete && !cert.AllSigned() {
		return nil, fmt.Errorf("%w: cannot complete a certificate with unsigned departments", apperrors.ErrConflict)
	}

	now := time.Now().UTC()
	cert.Status = next
	if next == domain.CertificateComplete {
		// Completing administratively still records the acting admin as
		// the principal signer so the certificate is never COMPLETE with
		// an empty sign-off.
		if !cert.PrincipalSigned {
			signer, err := s.userRepo.FindUserByID(ctx, actor.UserID)
			if err != nil {
				return nil, fmt.Errorf("failed to resolve signer: %w", err)
			}
			signedBy := signer.FullName()
			cert.PrincipalSigned = true
			cert.PrincipalSignedBy = &signedBy
			cert.PrincipalSignedAt = &now
		}
		if cert.IssueDate == nil {
			cert.IssueDate = &now
		}
	}
	cert.LastUpdatedAt = now
	cert.LastUpdatedBy = actor.UserID

	if err := s.certRepo.UpdateCertificateInTx(ctx, tx, *cert); err != nil {
		return nil, err
	}
	if err := s.certRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return cert, nil
}

// RequestDepartmentSignature notifies the department's admin that a
// certificate awaits their signature. Delivery is best-effort.
func (s *certificateService) RequestDepartmentSignature(ctx context.Context, actor domain.Actor, certificateID string, department domain.Department) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	cert, err := s.certRepo.FindCertificateByID(ctx, certificateID)
	if err != nil {
		return fmt.Errorf("failed to load certificate %s: %w", certificateID, err)
	}
	if !actor.HasRole(domain.RoleAdmin) && actor.UserID != cert.StudentUserID {
		return fmt.Errorf("%w: only the owning student may request signatures", apperrors.ErrForbidden)
	}
	sig := cert.SignatureFor(department)
	if sig == nil {
		return fmt.Errorf("%w: certificate carries no signature slot for %s", apperrors.ErrNotFound, department)
	}
	if sig.IsProcessed() {
		return fmt.Errorf("%w: %s signature is already %s", apperrors.ErrConflict, department, sig.Status)
	}

	admin, err := s.userRepo.FindDepartmentAdmin(ctx, department)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: no admin registered for department %s", apperrors.ErrNotFound, department)
		}
		return fmt.Errorf("failed to resolve department admin: %w", err)
	}

	s.dispatchNotification(ctx, domain.Notification{
		Kind:      domain.NotifySignatureRequested,
		Recipient: admin.Email,
		Subject:   fmt.Sprintf("Signature requested: certificate %s", cert.CertificateNumber),
		Body:      fmt.Sprintf("Hello %s,\n\nCertificate %s awaits the %s signature.", admin.FullName(), cert.CertificateNumber, department.DisplayName()),
		Meta: map[string]string{
			"certificateID": cert.CertificateID,
			"department":    string(department),
		},
	})

	logger.Info("Signature requested",
		slog.String("certificate_id", certificateID),
		slog.String("department", string(department)),
	)
	return nil
}

// GenerateDepartmentReceipt records a standalone department clearance for
// a student who has no certificate yet. When the student later requests a
// certificate, the recorded SIGNED state carries over.
func (s *certificateService) GenerateDepartmentReceipt(ctx context.Context, actor domain.Actor, studentUserID string, department domain.Department) (*domain.DepartmentSignature, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !actor.HasRole(domain.RoleAdmin) {
		if !actor.HasAnyRole(domain.RoleDepartmentAdmin, domain.RoleHOD) || actor.Department != department {
			return nil, fmt.Errorf("%w: receipts are issued by the department's own admin", apperrors.ErrForbidden)
		}
	}
	if !department.IsRequiredForClearance() {
		return nil, fmt.Errorf("%w: %s is not a clearance department", apperrors.ErrValidation, department)
	}

	pending, err := s.dueSvc.HasPendingDuesInDepartment(ctx, studentUserID, department)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, fmt.Errorf("%w: student has uncleared dues in %s", apperrors.ErrConflict, department)
	}

	// Idempotent: an already signed clearance is returned as is.
	if existing, err := s.certRepo.FindSignatureByStudentAndDepartment(ctx, studentUserID, department); err == nil {
		if existing.Status == domain.SignatureSigned {
			return existing, nil
		}
		if existing.CertificateID != "" {
			return nil, fmt.Errorf("%w: signature for %s is managed by certificate %s", apperrors.ErrConflict, department, existing.CertificateID)
		}
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing signature: %w", err)
	}

	signer, err := s.userRepo.FindUserByID(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve signer: %w", err)
	}

	now := time.Now().UTC()
	sig := domain.DepartmentSignature{
		SignatureID:   uuid.NewString(),
		StudentUserID: studentUserID,
		Department:    department,
		Status:        domain.SignatureSigned,
		SignedBy:      fmt.Sprintf("%s (%s)", signer.FullName(), department.DisplayName()),
		SignedAt:      &now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	saved, err := s.certRepo.UpsertStandaloneSignature(ctx, sig)
	if err != nil {
		logger.Error("Failed to record department receipt", slog.String("error", err.Error()), slog.String("student_user_id", studentUserID))
		return nil, fmt.Errorf("failed to record department receipt: %w", err)
	}

	logger.Info("Department receipt recorded",
		slog.String("student_user_id", studentUserID),
		slog.String("department", string(department)),
	)
	return saved, nil
}

func (s *certificateService) DeleteCertificate(ctx context.Context, actor domain.Actor, certificateID string) error {
	if !actor.HasRole(domain.RoleAdmin) {
		return fmt.Errorf("%w: certificate deletion is admin only", apperrors.ErrForbidden)
	}
	if err := s.certRepo.DeleteCertificate(ctx, certificateID); err != nil {
		return fmt.Errorf("failed to delete certificate %s: %w", certificateID, err)
	}
	return nil
}

func (s *certificateService) GetCertificateByID(ctx context.Context, certificateID string) (*domain.NoDuesCertificate, error) {
	cert, err := s.certRepo.FindCertificateByID(ctx, certificateID)
	if err != nil {
		return nil, fmt.Errorf("failed to get certificate %s: %w", certificateID, err)
	}
	return cert, nil
}

func (s *certificateService) GetCertificateByNumber(ctx context.Context, certificateNumber string) (*domain.NoDuesCertificate, error) {
	cert, err := s.certRepo.FindCertificateByNumber(ctx, certificateNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to get certificate %s: %w", certificateNumber, err)
	}
	return cert, nil
}

func (s *certificateService) ListCertificatesByStudent(ctx context.Context, studentUserID string) ([]domain.NoDuesCertificate, error) {
	return s.certRepo.FindCertificatesByStudent(ctx, studentUserID)
}

func (s *certificateService) ListCertificatesByStatus(ctx context.Context, status domain.CertificateStatus) ([]domain.NoDuesCertificate, error) {
	return s.certRepo.FindCertificatesByStatus(ctx, status)
}

// ListCertificatesForActor scopes the certificate listing by role:
// admins see everything, the principal sees the sign-off queue, HODs see
// their academic department's students, department admins their pending
// queue, students their own certificates.
func (s *certificateService) ListCertificatesForActor(ctx context.Context, actor domain.Actor) ([]domain.NoDuesCertificate, error) {
	switch {
	case actor.HasRole(domain.RoleAdmin):
		all := []domain.NoDuesCertificate{}
		for _, status := range []domain.CertificateStatus{
			domain.CertificatePending,
			domain.CertificatePartial,
			domain.CertificateAllSigned,
			domain.CertificateComplete,
			domain.CertificateRejected,
		} {
			certs, err := s.certRepo.FindCertificatesByStatus(ctx, status)
			if err != nil {
				return nil, err
			}
			all = append(all, certs...)
		}
		return all, nil
	case actor.HasRole(domain.RolePrincipal):
		return s.certRepo.FindCertificatesAwaitingPrincipal(ctx)
	case actor.HasRole(domain.RoleHOD):
		return s.certRepo.FindCertificatesByStudentDepartment(ctx, actor.Department)
	case actor.HasRole(domain.RoleDepartmentAdmin):
		return s.certRepo.FindCertificatesWithPendingSignature(ctx, actor.Department)
	case actor.HasRole(domain.RoleStudent):
		return s.certRepo.FindCertificatesByStudent(ctx, actor.UserID)
	default:
		return nil, apperrors.ErrForbidden
	}
}

func (s *certificateService) ListPendingPrincipalSignatures(ctx context.Context) ([]domain.NoDuesCertificate, error) {
	return s.certRepo.FindCertificatesAwaitingPrincipal(ctx)
}

func (s *certificateService) ListPendingSignaturesByDepartment(ctx context.Context, department domain.Department) ([]domain.DepartmentSignature, error) {
	return s.certRepo.FindSignaturesByDepartmentAndStatus(ctx, department, domain.SignaturePending)
}

func (s *certificateService) ListSignaturesByStudent(ctx context.Context, studentUserID string) ([]domain.DepartmentSignature, error) {
	return s.certRepo.FindSignaturesByStudent(ctx, studentUserID)
}

// authorizeDepartmentSigner decides whether the actor may act on the given
// department's signature slot. The HOD slot is special: it is signed by
// the head of the student's academic department, not by a clearance
// department admin.
func (s *certificateService) authorizeDepartmentSigner(ctx context.Context, actor domain.Actor, cert *domain.NoDuesCertificate, department domain.Department) error {
	if actor.HasRole(domain.RoleAdmin) {
		return nil
	}
	if department == domain.DeptHOD {
		if !actor.HasRole(domain.RoleHOD) {
			return fmt.Errorf("%w: the HOD slot is signed by the student's head of department", apperrors.ErrForbidden)
		}
		student, err := s.userRepo.FindUserByID(ctx, cert.StudentUserID)
		if err != nil {
			return fmt.Errorf("failed to resolve student for HOD check: %w", err)
		}
		if student.Department != actor.Department {
			return fmt.Errorf("%w: student belongs to %s, actor heads %s", apperrors.ErrForbidden, student.Department, actor.Department)
		}
		return nil
	}
	if !actor.HasRole(domain.RoleDepartmentAdmin) || actor.Department != department {
		return fmt.Errorf("%w: signing for %s requires its department admin", apperrors.ErrForbidden, department)
	}
	return nil
}

func (s *certificateService) dispatchNotification(ctx context.Context, n domain.Notification) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, n); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Notification dispatch failed",
			slog.String("kind", string(n.Kind)), slog.String("error", err.Error()))
	}
}
