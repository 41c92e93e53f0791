package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/novacollege/nodues_backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	userRepo := newPgxUserRepository(dbPool)
	studentRepo := newPgxStudentRepository(dbPool)
	dueRepo := newPgxDueRepository(dbPool)
	certificateRepo := newPgxCertificateRepository(dbPool)
	dashboardRepo := newPgxDashboardRepository(dbPool)

	return portsrepo.RepositoryProvider{
		UserRepo:        userRepo,
		StudentRepo:     studentRepo,
		DueRepo:         dueRepo,
		CertificateRepo: certificateRepo,
		DashboardRepo:   dashboardRepo,
	}
}
