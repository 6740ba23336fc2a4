package jobs

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// ExpiryJob manages the scheduled sweep of elapsed offers.
// Runs every second to settle pending attempts whose acceptance window has
// passed, which frees their orders for the next offer.
type ExpiryJob struct {
	handler commands.ExpireOffersCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewExpiryJob creates a new job for the expiry sweep.
// Uses ExpireOffersCommandHandler to settle elapsed offers every second.
func NewExpiryJob(handler commands.ExpireOffersCommandHandler, logger *slog.Logger) *ExpiryJob {
	return &ExpiryJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "expiry_job"),
	}
}

// Start begins the expiry job to run every second.
func (j *ExpiryJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewExpireOffersCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Expiry job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Expiry job started (running every second)")
	return nil
}

// Stop stops the expiry job.
func (j *ExpiryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Expiry job stopped")
}
