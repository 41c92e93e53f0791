package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/novacollege/nodues_backend/internal/core/domain"
	portsrepo "github.com/novacollege/nodues_backend/internal/core/ports/repositories"
)

type PgxDashboardRepository struct {
	db *pgxpool.Pool
}

func newPgxDashboardRepository(db *pgxpool.Pool) portsrepo.DashboardRepositoryFacade {
	return &PgxDashboardRepository{db: db}
}

// Ensure PgxDashboardRepository implements portsrepo.DashboardRepositoryFacade
var _ portsrepo.DashboardRepositoryFacade = (*PgxDashboardRepository)(nil)

func countGrouped(ctx context.Context, db *pgxpool.Pool, query string, args ...any) (map[string]int, error) {
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to run grouped count query: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var key string
		var count int
		if err := rows.Scan(&key, &count); err != nil {
			return nil, fmt.Errorf("failed to scan grouped count row: %w", err)
		}
		counts[key] = count
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating grouped count rows: %w", rows.Err())
	}
	return counts, nil
}

func (r *PgxDashboardRepository) CountDuesByStatus(ctx context.Context) (map[domain.PaymentStatus]int, error) {
	raw, err := countGrouped(ctx, r.db, `SELECT status, COUNT(*) FROM dues GROUP BY status;`)
	if err != nil {
		return nil, err
	}
	counts := make(map[domain.PaymentStatus]int, len(raw))
	for k, v := range raw {
		counts[domain.PaymentStatus(k)] = v
	}
	return counts, nil
}

func (r *PgxDashboardRepository) CountDuesByDepartment(ctx context.Context) (map[domain.Department]int, error) {
	raw, err := countGrouped(ctx, r.db, `SELECT department, COUNT(*) FROM dues GROUP BY department;`)
	if err != nil {
		return nil, err
	}
	counts := make(map[domain.Department]int, len(raw))
	for k, v := range raw {
		counts[domain.Department(k)] = v
	}
	return counts, nil
}

func (r *PgxDashboardRepository) CountCertificatesByStatus(ctx context.Context) (map[domain.CertificateStatus]int, error) {
	raw, err := countGrouped(ctx, r.db, `SELECT status, COUNT(*) FROM no_dues_certificates GROUP BY status;`)
	if err != nil {
		return nil, err
	}
	counts := make(map[domain.CertificateStatus]int, len(raw))
	for k, v := range raw {
		counts[domain.CertificateStatus(k)] = v
	}
	return counts, nil
}

func (r *PgxDashboardRepository) CountPendingSignaturesByDepartment(ctx context.Context) (map[domain.Department]int, error) {
	raw, err := countGrouped(ctx, r.db,
		`SELECT department, COUNT(*) FROM department_signatures WHERE status = $1 GROUP BY department;`,
		string(domain.SignaturePending),
	)
	if err != nil {
		return nil, err
	}
	counts := make(map[domain.Department]int, len(raw))
	for k, v := range raw {
		counts[domain.Department(k)] = v
	}
	return counts, nil
}

func (r *PgxDashboardRepository) CountStudents(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM students;`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count students: %w", err)
	}
	return count, nil
}
