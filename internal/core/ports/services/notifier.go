package services

import (
	"context"

	"github.com/novacollege/nodues_backend/internal/core/domain"
)

// NotifierSvcFacade is the outbound notification port. Implementations
// deliver best-effort: Notify is called after the triggering transaction
// has committed, failures are logged and suppressed, and the core never
// retries.
type NotifierSvcFacade interface {
	Notify(ctx context.Context, notification domain.Notification) error
}
