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
	"github.com/novacollege/nodues_backend/internal/utils/pagination"
)

type PgxDueRepository struct {
	db *pgxpool.Pool
}

func newPgxDueRepository(db *pgxpool.Pool) portsrepo.DueRepositoryFacade {
	return &PgxDueRepository{db: db}
}

// Ensure PgxDueRepository implements portsrepo.DueRepositoryFacade
var _ portsrepo.DueRepositoryFacade = (*PgxDueRepository)(nil)

const dueColumns = `due_id, student_user_id, department, description, amount, due_date, status, payment_date, payment_reference, approved_by, approval_date, receipt_generated, receipt_number, created_at, created_by, last_updated_at, last_updated_by`

func scanDueRow(row pgx.Row) (*models.Due, error) {
	var m models.Due
	err := row.Scan(
		&m.DueID,
		&m.StudentUserID,
		&m.Department,
		&m.Description,
		&m.Amount,
		&m.DueDate,
		&m.Status,
		&m.PaymentDate,
		&m.PaymentReference,
		&m.ApprovedBy,
		&m.ApprovalDate,
		&m.ReceiptGenerated,
		&m.ReceiptNumber,
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

func (r *PgxDueRepository) findMany(ctx context.Context, query string, args ...any) ([]domain.Due, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query dues: %w", err)
	}
	defer rows.Close()

	modelDues := []models.Due{}
	for rows.Next() {
		m, err := scanDueRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan due row: %w", err)
		}
		modelDues = append(modelDues, *m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating due rows: %w", rows.Err())
	}
	return mapping.ToDomainDueSlice(modelDues), nil
}

func (r *PgxDueRepository) SaveDue(ctx context.Context, due domain.Due) error {
	m := mapping.ToModelDue(due)
	query := `
        INSERT INTO dues (due_id, student_user_id, department, description, amount, due_date, status, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
    `
	_, err := r.db.Exec(ctx, query,
		m.DueID,
		m.StudentUserID,
		m.Department,
		m.Description,
		m.Amount,
		m.DueDate,
		m.Status,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save due: %w", err)
	}
	return nil
}

func (r *PgxDueRepository) FindDueByID(ctx context.Context, dueID string) (*domain.Due, error) {
	query := `SELECT ` + dueColumns + ` FROM dues WHERE due_id = $1;`
	m, err := scanDueRow(r.db.QueryRow(ctx, query, dueID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find due by ID %s: %w", dueID, err)
	}
	due := mapping.ToDomainDue(*m)
	return &due, nil
}

func (r *PgxDueRepository) FindDuesByStudent(ctx context.Context, studentUserID string) ([]domain.Due, error) {
	query := `
        SELECT ` + dueColumns + `
        FROM dues
        WHERE student_user_id = $1
        ORDER BY created_at DESC;
    `
	return r.findMany(ctx, query, studentUserID)
}

func (r *PgxDueRepository) FindDuesByStudentAndDepartment(ctx context.Context, studentUserID string, department domain.Department) ([]domain.Due, error) {
	query := `
        SELECT ` + dueColumns + `
        FROM dues
        WHERE student_user_id = $1 AND department = $2
        ORDER BY created_at DESC;
    `
	return r.findMany(ctx, query, studentUserID, string(department))
}

func (r *PgxDueRepository) FindDuesByDepartment(ctx context.Context, department domain.Department) ([]domain.Due, error) {
	query := `
        SELECT ` + dueColumns + `
        FROM dues
        WHERE department = $1
        ORDER BY created_at DESC;
    `
	return r.findMany(ctx, query, string(department))
}

// ListDues pages over all dues newest first. The cursor encodes the
// (created_at, due_id) of the last row of the previous page.
func (r *PgxDueRepository) ListDues(ctx context.Context, limit int, nextToken *string) ([]domain.Due, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
        SELECT ` + dueColumns + `
        FROM dues
    `
	args := []any{}
	if nextToken != nil && *nextToken != "" {
		createdAt, dueID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid pagination token", err)
		}
		query += ` WHERE (created_at, due_id) < ($1, $2)`
		args = append(args, createdAt, dueID)
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC, due_id DESC LIMIT $%d;`, len(args)+1)
	// Fetch one extra row to detect whether a further page exists.
	args = append(args, limit+1)

	dues, err := r.findMany(ctx, query, args...)
	if err != nil {
		return nil, nil, err
	}

	var newNextToken *string
	if len(dues) > limit {
		dues = dues[:limit]
		last := dues[len(dues)-1]
		token := pagination.EncodeToken(last.CreatedAt, last.DueID)
		newNextToken = &token
	}
	return dues, newNextToken, nil
}

func (r *PgxDueRepository) CountNotApprovedByStudent(ctx context.Context, studentUserID string) (int, error) {
	query := `SELECT COUNT(*) FROM dues WHERE student_user_id = $1 AND status <> $2;`
	var count int
	err := r.db.QueryRow(ctx, query, studentUserID, string(domain.PaymentApproved)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unapproved dues for student %s: %w", studentUserID, err)
	}
	return count, nil
}

func (r *PgxDueRepository) CountNotApprovedByStudentAndDepartment(ctx context.Context, studentUserID string, department domain.Department) (int, error) {
	query := `SELECT COUNT(*) FROM dues WHERE student_user_id = $1 AND department = $2 AND status <> $3;`
	var count int
	err := r.db.QueryRow(ctx, query, studentUserID, string(department), string(domain.PaymentApproved)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unapproved dues for student %s in %s: %w", studentUserID, department, err)
	}
	return count, nil
}

func (r *PgxDueRepository) UpdateDue(ctx context.Context, due domain.Due) error {
	m := mapping.ToModelDue(due)
	query := `
        UPDATE dues
        SET description = $1, amount = $2, due_date = $3, status = $4, payment_date = $5, payment_reference = $6, approved_by = $7, approval_date = $8, receipt_generated = $9, receipt_number = $10, last_updated_at = $11, last_updated_by = $12
        WHERE due_id = $13;
    `
	cmdTag, err := r.db.Exec(ctx, query,
		m.Description,
		m.Amount,
		m.DueDate,
		m.Status,
		m.PaymentDate,
		m.PaymentReference,
		m.ApprovedBy,
		m.ApprovalDate,
		m.ReceiptGenerated,
		m.ReceiptNumber,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.DueID,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update due query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("due not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxDueRepository) DeleteDue(ctx context.Context, dueID string) error {
	query := `DELETE FROM dues WHERE due_id = $1;`
	cmdTag, err := r.db.Exec(ctx, query, dueID)
	if err != nil {
		return fmt.Errorf("failed to delete due %s: %w", dueID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("due not found: %w", apperrors.ErrNotFound)
	}
	return nil
}
