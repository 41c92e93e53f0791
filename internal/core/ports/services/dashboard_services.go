package services

import (
	"context"

	"github.com/novacollege/nodues_backend/internal/dto"
)

// DashboardSvcFacade exposes the aggregate statistics shown on the admin
// dashboard.
type DashboardSvcFacade interface {
	// GetDashboardStats assembles due, certificate, and signature counts.
	GetDashboardStats(ctx context.Context) (*dto.DashboardStatsResponse, error)
}
