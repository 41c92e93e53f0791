package repositories

import (
	"context"

	"github.com/novacollege/nodues_backend/internal/core/domain"
)

// DashboardRepositoryFacade defines the aggregate count queries backing the
// admin dashboard.
type DashboardRepositoryFacade interface {
	// CountDuesByStatus returns due counts grouped by payment status.
	CountDuesByStatus(ctx context.Context) (map[domain.PaymentStatus]int, error)

	// CountDuesByDepartment returns due counts grouped by department.
	CountDuesByDepartment(ctx context.Context) (map[domain.Department]int, error)

	// CountCertificatesByStatus returns certificate counts grouped by
	// aggregate status.
	CountCertificatesByStatus(ctx context.Context) (map[domain.CertificateStatus]int, error)

	// CountPendingSignaturesByDepartment returns, per clearance
	// department, how many signatures still await action.
	CountPendingSignaturesByDepartment(ctx context.Context) (map[domain.Department]int, error)

	// CountStudents returns the number of registered student profiles.
	CountStudents(ctx context.Context) (int, error)
}
