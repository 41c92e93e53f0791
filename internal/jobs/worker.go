package jobs

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/novacollege/nodues_backend/internal/core/domain"
)

// Worker wraps the asynq server and processes notification tasks.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	logger *slog.Logger
}

// WorkerConfig collects the dependencies required to bootstrap the worker.
type WorkerConfig struct {
	RedisOpts asynq.RedisClientOpt
	Logger    *slog.Logger
	Mailer    Mailer
}

// NewWorker constructs a Worker that delivers notifications via the mailer.
func NewWorker(cfg WorkerConfig) *Worker {
	srv := asynq.NewServer(cfg.RedisOpts, asynq.Config{
		Concurrency: 5,
		Queues: map[string]int{
			QueueDefault: 1,
		},
	})
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskTypeSendNotification, handleNotificationTask(cfg.Logger, cfg.Mailer))

	return &Worker{server: srv, mux: mux, logger: cfg.Logger}
}

// Run starts processing tasks until context cancellation.
func (w *Worker) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- w.server.Run(w.mux)
	}()
	select {
	case <-ctx.Done():
		w.server.Shutdown()
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

func handleNotificationTask(logger *slog.Logger, mailer Mailer) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var notification domain.Notification
		if err := json.Unmarshal(t.Payload(), &notification); err != nil {
			logger.Error("Dropping malformed notification task", "error", err)
			return asynq.SkipRetry
		}

		if err := mailer.Send(ctx, notification); err != nil {
			logger.Error("Failed to deliver notification",
				"kind", notification.Kind,
				"recipient", notification.Recipient,
				"error", err)
			return err
		}

		logger.Info("Notification delivered",
			"kind", notification.Kind,
			"recipient", notification.Recipient)
		return nil
	}
}
