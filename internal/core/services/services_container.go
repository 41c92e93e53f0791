package services

import (
	portsrepo "github.com/novacollege/nodues_backend/internal/core/ports/repositories"
	portssvc "github.com/novacollege/nodues_backend/internal/core/ports/services"
	"github.com/novacollege/nodues_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies. The notifier is injected from the outside so
// that the delivery backend (queue, SMTP) stays out of the core.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, notifier portssvc.NotifierSvcFacade) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Notifier = notifier
	container.User = NewUserService(repos.UserRepo, notifier)
	container.Student = NewStudentService(repos.StudentRepo, repos.UserRepo)
	container.Due = NewDueService(repos.DueRepo, repos.UserRepo, notifier)
	container.Certificate = NewCertificateService(repos.CertificateRepo, repos.UserRepo, container.Due, notifier)
	container.Dashboard = NewDashboardService(repos.DashboardRepo)
	container.Token = NewTokenService(cfg, container.User)
	container.GoogleOAuth = NewGoogleOAuthHandlerService(cfg)

	return container
}
