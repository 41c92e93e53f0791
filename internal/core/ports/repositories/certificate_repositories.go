package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/novacollege/nodues_backend/internal/core/domain"
)

// CertificateReader defines read operations for certificate aggregates.
// Reads return the certificate with its signature collection loaded.
type CertificateReader interface {
	// FindCertificateByID retrieves a certificate and its signatures.
	FindCertificateByID(ctx context.Context, certificateID string) (*domain.NoDuesCertificate, error)

	// FindCertificateByNumber retrieves a certificate by its unique number.
	FindCertificateByNumber(ctx context.Context, certificateNumber string) (*domain.NoDuesCertificate, error)

	// FindCertificatesByStudent retrieves all certificates ever issued or
	// requested for a student.
	FindCertificatesByStudent(ctx context.Context, studentUserID string) ([]domain.NoDuesCertificate, error)

	// FindCertificatesByStatus retrieves certificates in a given state.
	FindCertificatesByStatus(ctx context.Context, status domain.CertificateStatus) ([]domain.NoDuesCertificate, error)

	// FindActiveCertificateByStudent retrieves the student's most recent
	// non-REJECTED certificate, or ErrNotFound when none exists.
	FindActiveCertificateByStudent(ctx context.Context, studentUserID string) (*domain.NoDuesCertificate, error)

	// FindCertificatesAwaitingPrincipal retrieves certificates whose
	// signatures are all SIGNED but which lack principal sign-off.
	FindCertificatesAwaitingPrincipal(ctx context.Context) ([]domain.NoDuesCertificate, error)

	// FindCertificatesByStudentDepartment retrieves certificates whose
	// student belongs to the given academic department.
	FindCertificatesByStudentDepartment(ctx context.Context, department domain.Department) ([]domain.NoDuesCertificate, error)

	// FindCertificatesWithPendingSignature retrieves certificates that
	// still carry a PENDING signature slot for the given department.
	FindCertificatesWithPendingSignature(ctx context.Context, department domain.Department) ([]domain.NoDuesCertificate, error)
}

// CertificateWriter defines write operations for certificate aggregates.
// Signature mutations are transactional: the caller opens a transaction,
// locks the aggregate with FindCertificateByIDForUpdate, mutates, and
// commits, so racing signers serialize per certificate.
type CertificateWriter interface {
	// SaveCertificate persists a certificate together with its initial
	// signature collection in one transaction.
	SaveCertificate(ctx context.Context, certificate domain.NoDuesCertificate) error

	// FindCertificateByIDForUpdate loads the certificate and its
	// signatures inside tx with the certificate row locked.
	FindCertificateByIDForUpdate(ctx context.Context, tx pgx.Tx, certificateID string) (*domain.NoDuesCertificate, error)

	// UpdateSignatureInTx persists signature field changes inside tx.
	UpdateSignatureInTx(ctx context.Context, tx pgx.Tx, signature domain.DepartmentSignature) error

	// UpdateCertificateInTx persists aggregate field changes (status,
	// principal sign-off, issue date) inside tx.
	UpdateCertificateInTx(ctx context.Context, tx pgx.Tx, certificate domain.NoDuesCertificate) error

	// DeleteCertificate removes a certificate and cascades to its
	// signatures.
	DeleteCertificate(ctx context.Context, certificateID string) error
}

// SignatureReader defines read operations for signatures outside a
// certificate aggregate (receipt path and department work queues).
type SignatureReader interface {
	// FindSignaturesByStudent retrieves all signatures recorded for a
	// student.
	FindSignaturesByStudent(ctx context.Context, studentUserID string) ([]domain.DepartmentSignature, error)

	// FindSignaturesByDepartmentAndStatus retrieves a department's
	// signatures in a given state.
	FindSignaturesByDepartmentAndStatus(ctx context.Context, department domain.Department, status domain.SignatureStatus) ([]domain.DepartmentSignature, error)

	// FindSignatureByStudentAndDepartment retrieves the signature recorded
	// for a (student, department) pair, or ErrNotFound.
	FindSignatureByStudentAndDepartment(ctx context.Context, studentUserID string, department domain.Department) (*domain.DepartmentSignature, error)
}

// SignatureWriter defines write operations for standalone signatures.
type SignatureWriter interface {
	// UpsertStandaloneSignature inserts or updates a signature record not
	// tied to a certificate, keyed by (student, department).
	UpsertStandaloneSignature(ctx context.Context, signature domain.DepartmentSignature) (*domain.DepartmentSignature, error)
}

// CertificateRepositoryFacade combines all certificate-related repository
// interfaces.
type CertificateRepositoryFacade interface {
	CertificateReader
	CertificateWriter
	SignatureReader
	SignatureWriter
}

// CertificateRepositoryWithTx extends CertificateRepositoryFacade with
// transaction capabilities.
type CertificateRepositoryWithTx interface {
	CertificateRepositoryFacade
	TransactionManager
}
