package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/novacollege/nodues_backend/internal/apperrors"
	"github.com/novacollege/nodues_backend/internal/core/domain"
	portsrepo "github.com/novacollege/nodues_backend/internal/core/ports/repositories"
	"github.com/novacollege/nodues_backend/internal/models"
	"github.com/novacollege/nodues_backend/internal/utils/mapping"
)

type PgxCertificateRepository struct {
	BaseRepository
}

func newPgxCertificateRepository(pool *pgxpool.Pool) portsrepo.CertificateRepositoryWithTx {
	return &PgxCertificateRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxCertificateRepository implements portsrepo.CertificateRepositoryWithTx
var _ portsrepo.CertificateRepositoryWithTx = (*PgxCertificateRepository)(nil)

const certificateColumns = `certificate_id, student_user_id, certificate_number, issue_date, status, principal_signed, principal_signed_by, principal_signed_at, principal_signature_image, created_at, created_by, last_updated_at, last_updated_by`

const signatureColumns = `signature_id, certificate_id, student_user_id, department, status, signed_by, signed_at, comments, signature_image, created_at, created_by, last_updated_at, last_updated_by`

func scanCertificateRow(row pgx.Row) (*models.NoDuesCertificate, error) {
	var m models.NoDuesCertificate
	err := row.Scan(
		&m.CertificateID,
		&m.StudentUserID,
		&m.CertificateNumber,
		&m.IssueDate,
		&m.Status,
		&m.PrincipalSigned,
		&m.PrincipalSignedBy,
		&m.PrincipalSignedAt,
		&m.PrincipalSignatureImage,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func scanSignatureRow(row pgx.Row) (*models.DepartmentSignature, error) {
	var m models.DepartmentSignature
	err := row.Scan(
		&m.SignatureID,
		&m.CertificateID,
		&m.StudentUserID,
		&m.Department,
		&m.Status,
		&m.SignedBy,
		&m.SignedAt,
		&m.Comments,
		&m.SignatureImage,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// querier is satisfied by both the pool and a transaction so aggregate
// loads can run inside or outside an explicit transaction.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (r *PgxCertificateRepository) loadSignatures(ctx context.Context, q querier, certificateID string) ([]domain.DepartmentSignature, error) {
	query := `
        SELECT ` + signatureColumns + `
        FROM department_signatures
        WHERE certificate_id = $1
        ORDER BY department ASC;
    `
	rows, err := q.Query(ctx, query, certificateID)
	if err != nil {
		return nil, fmt.Errorf("failed to query signatures for certificate %s: %w", certificateID, err)
	}
	defer rows.Close()

	modelSigs := []models.DepartmentSignature{}
	for rows.Next() {
		m, err := scanSignatureRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan signature row: %w", err)
		}
		modelSigs = append(modelSigs, *m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating signature rows: %w", rows.Err())
	}
	return mapping.ToDomainSignatureSlice(modelSigs), nil
}

func (r *PgxCertificateRepository) loadAggregate(ctx context.Context, q querier, query string, args ...any) (*domain.NoDuesCertificate, error) {
	m, err := scanCertificateRow(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find certificate: %w", err)
	}
	cert := mapping.ToDomainCertificate(*m)
	sigs, err := r.loadSignatures(ctx, q, cert.CertificateID)
	if err != nil {
		return nil, err
	}
	cert.Signatures = sigs
	return &cert, nil
}

// loadAggregates fetches certificates matching the query, then attaches
// each certificate's signature collection.
func (r *PgxCertificateRepository) loadAggregates(ctx context.Context, query string, args ...any) ([]domain.NoDuesCertificate, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query certificates: %w", err)
	}
	defer rows.Close()

	modelCerts := []models.NoDuesCertificate{}
	for rows.Next() {
		m, err := scanCertificateRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan certificate row: %w", err)
		}
		modelCerts = append(modelCerts, *m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating certificate rows: %w", rows.Err())
	}

	certs := make([]domain.NoDuesCertificate, len(modelCerts))
	for i, m := range modelCerts {
		cert := mapping.ToDomainCertificate(m)
		sigs, err := r.loadSignatures(ctx, r.Pool, cert.CertificateID)
		if err != nil {
			return nil, err
		}
		cert.Signatures = sigs
		certs[i] = cert
	}
	return certs, nil
}

// SaveCertificate persists the certificate row and its initial signature
// rows atomically.
func (r *PgxCertificateRepository) SaveCertificate(ctx context.Context, certificate domain.NoDuesCertificate) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelCertificate(certificate)
	certQuery := `
        INSERT INTO no_dues_certificates (certificate_id, student_user_id, certificate_number, issue_date, status, principal_signed, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
    `
	_, err = tx.Exec(ctx, certQuery,
		m.CertificateID,
		m.StudentUserID,
		m.CertificateNumber,
		m.IssueDate,
		m.Status,
		m.PrincipalSigned,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert certificate "+m.CertificateID, err)
	}

	// Fresh slots insert as new rows. Carried-over standalone receipts
	// arrive with their existing signature_id and are attached to the new
	// certificate in place, keeping their signed state and created_at.
	batch := &pgx.Batch{}
	sigQuery := `
        INSERT INTO department_signatures (signature_id, certificate_id, student_user_id, department, status, signed_by, signed_at, comments, signature_image, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
        ON CONFLICT (signature_id) DO UPDATE SET
            certificate_id = EXCLUDED.certificate_id,
            last_updated_at = EXCLUDED.last_updated_at,
            last_updated_by = EXCLUDED.last_updated_by;
    `
	for _, sig := range certificate.Signatures {
		ms := mapping.ToModelSignature(sig)
		batch.Queue(sigQuery,
			ms.SignatureID,
			ms.CertificateID,
			ms.StudentUserID,
			ms.Department,
			ms.Status,
			ms.SignedBy,
			ms.SignedAt,
			ms.Comments,
			ms.SignatureImage,
			ms.CreatedAt,
			ms.CreatedBy,
			ms.LastUpdatedAt,
			ms.LastUpdatedBy,
		)
	}
	if batch.Len() > 0 {
		br := tx.SendBatch(ctx, batch)
		for i := 0; i < batch.Len(); i++ {
			if _, err := br.Exec(); err != nil {
				br.Close()
				return apperrors.NewAppError(500, "failed to insert signature rows", err)
			}
		}
		if err := br.Close(); err != nil {
			return apperrors.NewAppError(500, "failed to close signature batch", err)
		}
	}

	return r.Commit(ctx, tx)
}

func (r *PgxCertificateRepository) FindCertificateByID(ctx context.Context, certificateID string) (*domain.NoDuesCertificate, error) {
	query := `SELECT ` + certificateColumns + ` FROM no_dues_certificates WHERE certificate_id = $1;`
	return r.loadAggregate(ctx, r.Pool, query, certificateID)
}

func (r *PgxCertificateRepository) FindCertificateByNumber(ctx context.Context, certificateNumber string) (*domain.NoDuesCertificate, error) {
	query := `SELECT ` + certificateColumns + ` FROM no_dues_certificates WHERE certificate_number = $1;`
	return r.loadAggregate(ctx, r.Pool, query, certificateNumber)
}

func (r *PgxCertificateRepository) FindCertificatesByStudent(ctx context.Context, studentUserID string) ([]domain.NoDuesCertificate, error) {
	query := `
        SELECT ` + certificateColumns + `
        FROM no_dues_certificates
        WHERE student_user_id = $1
        ORDER BY created_at DESC;
    `
	return r.loadAggregates(ctx, query, studentUserID)
}

func (r *PgxCertificateRepository) FindCertificatesByStatus(ctx context.Context, status domain.CertificateStatus) ([]domain.NoDuesCertificate, error) {
	query := `
        SELECT ` + certificateColumns + `
        FROM no_dues_certificates
        WHERE status = $1
        ORDER BY created_at DESC;
    `
	return r.loadAggregates(ctx, query, string(status))
}

func (r *PgxCertificateRepository) FindActiveCertificateByStudent(ctx context.Context, studentUserID string) (*domain.NoDuesCertificate, error) {
	query := `
        SELECT ` + certificateColumns + `
        FROM no_dues_certificates
        WHERE student_user_id = $1 AND status <> $2
        ORDER BY created_at DESC
        LIMIT 1;
    `
	return r.loadAggregate(ctx, r.Pool, query, studentUserID, string(domain.CertificateRejected))
}

func (r *PgxCertificateRepository) FindCertificatesAwaitingPrincipal(ctx context.Context) ([]domain.NoDuesCertificate, error) {
	query := `
        SELECT ` + certificateColumns + `
        FROM no_dues_certificates
        WHERE status = $1 AND principal_signed = FALSE
        ORDER BY created_at ASC;
    `
	return r.loadAggregates(ctx, query, string(domain.CertificateAllSigned))
}

func (r *PgxCertificateRepository) FindCertificatesByStudentDepartment(ctx context.Context, department domain.Department) ([]domain.NoDuesCertificate, error) {
	query := `
        SELECT c.` + joinCertificateColumns("c") + `
        FROM no_dues_certificates c
        JOIN users u ON u.user_id = c.student_user_id
        WHERE u.department = $1
        ORDER BY c.created_at DESC;
    `
	return r.loadAggregates(ctx, query, string(department))
}

func (r *PgxCertificateRepository) FindCertificatesWithPendingSignature(ctx context.Context, department domain.Department) ([]domain.NoDuesCertificate, error) {
	query := `
        SELECT c.` + joinCertificateColumns("c") + `
        FROM no_dues_certificates c
        JOIN department_signatures s ON s.certificate_id = c.certificate_id
        WHERE s.department = $1 AND s.status = $2
        ORDER BY c.created_at ASC;
    `
	return r.loadAggregates(ctx, query, string(department), string(domain.SignaturePending))
}

// FindCertificateByIDForUpdate loads the certificate with its row locked.
// Must be called within a transaction.
func (r *PgxCertificateRepository) FindCertificateByIDForUpdate(ctx context.Context, tx pgx.Tx, certificateID string) (*domain.NoDuesCertificate, error) {
	query := `
        SELECT ` + certificateColumns + `
        FROM no_dues_certificates
        WHERE certificate_id = $1
        FOR UPDATE;
    `
	return r.loadAggregate(ctx, tx, query, certificateID)
}

func (r *PgxCertificateRepository) UpdateSignatureInTx(ctx context.Context, tx pgx.Tx, signature domain.DepartmentSignature) error {
	m := mapping.ToModelSignature(signature)
	query := `
        UPDATE department_signatures
        SET status = $1, signed_by = $2, signed_at = $3, comments = $4, signature_image = $5, last_updated_at = $6, last_updated_by = $7
        WHERE signature_id = $8;
    `
	cmdTag, err := tx.Exec(ctx, query,
		m.Status,
		m.SignedBy,
		m.SignedAt,
		m.Comments,
		m.SignatureImage,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.SignatureID,
	)
	if err != nil {
		return fmt.Errorf("failed to update signature %s: %w", m.SignatureID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("signature not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxCertificateRepository) UpdateCertificateInTx(ctx context.Context, tx pgx.Tx, certificate domain.NoDuesCertificate) error {
	m := mapping.ToModelCertificate(certificate)
	query := `
        UPDATE no_dues_certificates
        SET status = $1, issue_date = $2, principal_signed = $3, principal_signed_by = $4, principal_signed_at = $5, principal_signature_image = $6, last_updated_at = $7, last_updated_by = $8
        WHERE certificate_id = $9;
    `
	cmdTag, err := tx.Exec(ctx, query,
		m.Status,
		m.IssueDate,
		m.PrincipalSigned,
		m.PrincipalSignedBy,
		m.PrincipalSignedAt,
		m.PrincipalSignatureImage,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.CertificateID,
	)
	if err != nil {
		return fmt.Errorf("failed to update certificate %s: %w", m.CertificateID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("certificate not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

// DeleteCertificate removes the certificate; the signature rows cascade
// via the certificate_id foreign key.
func (r *PgxCertificateRepository) DeleteCertificate(ctx context.Context, certificateID string) error {
	query := `DELETE FROM no_dues_certificates WHERE certificate_id = $1;`
	cmdTag, err := r.Pool.Exec(ctx, query, certificateID)
	if err != nil {
		return fmt.Errorf("failed to delete certificate %s: %w", certificateID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("certificate not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxCertificateRepository) FindSignaturesByStudent(ctx context.Context, studentUserID string) ([]domain.DepartmentSignature, error) {
	query := `
        SELECT ` + signatureColumns + `
        FROM department_signatures
        WHERE student_user_id = $1
        ORDER BY department ASC;
    `
	return r.findSignatures(ctx, query, studentUserID)
}

func (r *PgxCertificateRepository) FindSignaturesByDepartmentAndStatus(ctx context.Context, department domain.Department, status domain.SignatureStatus) ([]domain.DepartmentSignature, error) {
	query := `
        SELECT ` + signatureColumns + `
        FROM department_signatures
        WHERE department = $1 AND status = $2
        ORDER BY created_at ASC;
    `
	return r.findSignatures(ctx, query, string(department), string(status))
}

// FindSignatureByStudentAndDepartment returns the live signature for the
// pair: the slot on a non-rejected certificate when one exists, otherwise
// the standalone receipt. Rows belonging to rejected certificates are
// history and are skipped.
func (r *PgxCertificateRepository) FindSignatureByStudentAndDepartment(ctx context.Context, studentUserID string, department domain.Department) (*domain.DepartmentSignature, error) {
	query := `
        SELECT s.` + joinSignatureColumns("s") + `
        FROM department_signatures s
        LEFT JOIN no_dues_certificates c ON c.certificate_id = s.certificate_id
        WHERE s.student_user_id = $1 AND s.department = $2
          AND (s.certificate_id IS NULL OR c.status <> $3)
        ORDER BY s.certificate_id IS NULL
        LIMIT 1;
    `
	m, err := scanSignatureRow(r.Pool.QueryRow(ctx, query, studentUserID, string(department), string(domain.CertificateRejected)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find signature for student %s in %s: %w", studentUserID, department, err)
	}
	sig := mapping.ToDomainSignature(*m)
	return &sig, nil
}

// UpsertStandaloneSignature records or refreshes a signature not tied to
// any certificate, keyed by (student, department).
func (r *PgxCertificateRepository) UpsertStandaloneSignature(ctx context.Context, signature domain.DepartmentSignature) (*domain.DepartmentSignature, error) {
	m := mapping.ToModelSignature(signature)
	query := `
        INSERT INTO department_signatures (signature_id, certificate_id, student_user_id, department, status, signed_by, signed_at, comments, signature_image, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
        ON CONFLICT (student_user_id, department) WHERE certificate_id IS NULL DO UPDATE SET
            status = EXCLUDED.status,
            signed_by = EXCLUDED.signed_by,
            signed_at = EXCLUDED.signed_at,
            comments = EXCLUDED.comments,
            signature_image = EXCLUDED.signature_image,
            last_updated_at = EXCLUDED.last_updated_at,
            last_updated_by = EXCLUDED.last_updated_by
        RETURNING ` + signatureColumns + `;
    `
	saved, err := scanSignatureRow(r.Pool.QueryRow(ctx, query,
		m.SignatureID,
		m.CertificateID,
		m.StudentUserID,
		m.Department,
		m.Status,
		m.SignedBy,
		m.SignedAt,
		m.Comments,
		m.SignatureImage,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert signature for student %s in %s: %w", m.StudentUserID, m.Department, err)
	}
	sig := mapping.ToDomainSignature(*saved)
	return &sig, nil
}

func (r *PgxCertificateRepository) findSignatures(ctx context.Context, query string, args ...any) ([]domain.DepartmentSignature, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query signatures: %w", err)
	}
	defer rows.Close()

	modelSigs := []models.DepartmentSignature{}
	for rows.Next() {
		m, err := scanSignatureRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan signature row: %w", err)
		}
		modelSigs = append(modelSigs, *m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating signature rows: %w", rows.Err())
	}
	return mapping.ToDomainSignatureSlice(modelSigs), nil
}

// joinCertificateColumns prefixes every certificate column with the given
// table alias for use in join queries.
func joinCertificateColumns(alias string) string {
	return aliasColumns(alias, []string{
		"certificate_id", "student_user_id", "certificate_number", "issue_date",
		"status", "principal_signed", "principal_signed_by", "principal_signed_at",
		"principal_signature_image", "created_at", "created_by", "last_updated_at", "last_updated_by",
	})
}

// joinSignatureColumns prefixes every signature column with the given table
// alias for use in join queries.
func joinSignatureColumns(alias string) string {
	return aliasColumns(alias, []string{
		"signature_id", "certificate_id", "student_user_id", "department",
		"status", "signed_by", "signed_at", "comments", "signature_image",
		"created_at", "created_by", "last_updated_at", "last_updated_by",
	})
}

// aliasColumns leaves the first column bare since call sites write the
// alias before the expansion.
func aliasColumns(alias string, cols []string) string {
	out := cols[0]
	for _, c := range cols[1:] {
		out += ", " + alias + "." + c
	}
	return out
}
