package services

import (
	"context"

	"github.com/novacollege/nodues_backend/internal/core/domain"
	"github.com/novacollege/nodues_backend/internal/dto"
)

// CertificateReaderSvc defines read operations over certificates and their
// signatures.
type CertificateReaderSvc interface {
	// GetCertificateByID retrieves a certificate with its signatures.
	GetCertificateByID(ctx context.Context, certificateID string) (*domain.NoDuesCertificate, error)

	// GetCertificateByNumber retrieves a certificate by its number.
	GetCertificateByNumber(ctx context.Context, certificateNumber string) (*domain.NoDuesCertificate, error)

	// ListCertificatesByStudent retrieves a student's certificates.
	ListCertificatesByStudent(ctx context.Context, studentUserID string) ([]domain.NoDuesCertificate, error)

	// ListCertificatesByStatus retrieves certificates in a given state.
	ListCertificatesByStatus(ctx context.Context, status domain.CertificateStatus) ([]domain.NoDuesCertificate, error)

	// ListCertificatesForActor retrieves certificates visible to the
	// actor per their role scoping.
	ListCertificatesForActor(ctx context.Context, actor domain.Actor) ([]domain.NoDuesCertificate, error)

	// ListPendingPrincipalSignatures retrieves all-signed certificates
	// that still await principal sign-off.
	ListPendingPrincipalSignatures(ctx context.Context) ([]domain.NoDuesCertificate, error)

	// ListPendingSignaturesByDepartment retrieves a department's open
	// signature queue.
	ListPendingSignaturesByDepartment(ctx context.Context, department domain.Department) ([]domain.DepartmentSignature, error)

	// ListSignaturesByStudent retrieves all signatures recorded for a
	// student.
	ListSignaturesByStudent(ctx context.Context, studentUserID string) ([]domain.DepartmentSignature, error)
}

// CertificateWorkflowSvc defines the certificate state machine operations.
type CertificateWorkflowSvc interface {
	// CreateCertificate opens a certificate request for a student,
	// creating one PENDING signature per required department. Fails with
	// ErrConflict while an active certificate exists and with a domain
	// error when the student has uncleared dues.
	CreateCertificate(ctx context.Context, actor domain.Actor, studentUserID string) (*domain.NoDuesCertificate, error)

	// SignByDepartment records one department's sign-off and recomputes
	// the aggregate status.
	SignByDepartment(ctx context.Context, actor domain.Actor, req dto.SignByDepartmentRequest) (*domain.DepartmentSignature, error)

	// RejectByDepartment records one department's rejection; the
	// certificate moves to REJECTED.
	RejectByDepartment(ctx context.Context, actor domain.Actor, req dto.SignByDepartmentRequest) (*domain.DepartmentSignature, error)

	// SignByPrincipal completes an all-signed certificate.
	SignByPrincipal(ctx context.Context, actor domain.Actor, certificateID string, useSignatureImage bool) (*domain.NoDuesCertificate, error)

	// UpdateCertificateStatus is the administrative transition entry
	// point, validated against the transition table.
	UpdateCertificateStatus(ctx context.Context, actor domain.Actor, certificateID string, requestedStatus string) (*domain.NoDuesCertificate, error)

	// RequestDepartmentSignature asks a department's admin to sign,
	// dispatching a notification.
	RequestDepartmentSignature(ctx context.Context, actor domain.Actor, certificateID string, department domain.Department) error

	// GenerateDepartmentReceipt upserts a standalone (student,
	// department) signature when no certificate exists yet, gated on the
	// department-scoped eligibility check.
	GenerateDepartmentReceipt(ctx context.Context, actor domain.Actor, studentUserID string, department domain.Department) (*domain.DepartmentSignature, error)

	// DeleteCertificate removes a certificate and its signatures. Admin
	// only.
	DeleteCertificate(ctx context.Context, actor domain.Actor, certificateID string) error
}

// CertificateSvcFacade combines all certificate-related service interfaces
type CertificateSvcFacade interface {
	CertificateReaderSvc
	CertificateWorkflowSvc
}
