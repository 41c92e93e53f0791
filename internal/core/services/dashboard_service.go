package services

import (
	"context"
	"fmt"

	"github.com/novacollege/nodues_backend/internal/core/domain"
	portsrepo "github.com/novacollege/nodues_backend/internal/core/ports/repositories"
	portssvc "github.com/novacollege/nodues_backend/internal/core/ports/services"
	"github.com/novacollege/nodues_backend/internal/dto"
)

// dashboardService assembles the admin dashboard counters.
type dashboardService struct {
	dashboardRepo portsrepo.DashboardRepositoryFacade
}

// NewDashboardService creates a new dashboard service.
func NewDashboardService(dashboardRepo portsrepo.DashboardRepositoryFacade) portssvc.DashboardSvcFacade {
	return &dashboardService{dashboardRepo: dashboardRepo}
}

var _ portssvc.DashboardSvcFacade = (*dashboardService)(nil)

func (s *dashboardService) GetDashboardStats(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	totalStudents, err := s.dashboardRepo.CountStudents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count students: %w", err)
	}

	duesByStatus, err := s.dashboardRepo.CountDuesByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count dues by status: %w", err)
	}
	duesByDepartment, err := s.dashboardRepo.CountDuesByDepartment(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count dues by department: %w", err)
	}
	certificatesByStatus, err := s.dashboardRepo.CountCertificatesByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count certificates by status: %w", err)
	}
	pendingSignatures, err := s.dashboardRepo.CountPendingSignaturesByDepartment(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count pending signatures: %w", err)
	}

	return &dto.DashboardStatsResponse{
		TotalStudents:                 totalStudents,
		DuesByStatus:                  paymentStatusCounts(duesByStatus),
		DuesByDepartment:              departmentCounts(duesByDepartment),
		CertificatesByStatus:          certificateStatusCounts(certificatesByStatus),
		PendingSignaturesByDepartment: departmentCounts(pendingSignatures),
	}, nil
}

func paymentStatusCounts(in map[domain.PaymentStatus]int) map[string]int {
	out := make(map[string]int, len(in))
	for k, v := range in {
		out[string(k)] = v
	}
	return out
}

func certificateStatusCounts(in map[domain.CertificateStatus]int) map[string]int {
	out := make(map[string]int, len(in))
	for k, v := range in {
		out[string(k)] = v
	}
	return out
}

func departmentCounts(in map[domain.Department]int) map[string]int {
	out := make(map[string]int, len(in))
	for k, v := range in {
		out[string(k)] = v
	}
	return out
}
