package jobs

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// OfferJob manages the scheduled offering of orders to couriers.
// Runs every second so orders awaiting assignment get a pending offer to
// their best eligible courier, or are parked as unassignable when no
// candidate remains.
type OfferJob struct {
	handler commands.OfferOrdersCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewOfferJob creates a new job for the offer loop.
// Uses OfferOrdersCommandHandler to process awaiting orders every second.
func NewOfferJob(handler commands.OfferOrdersCommandHandler, logger *slog.Logger) *OfferJob {
	return &OfferJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "offer_job"),
	}
}

// Start begins the offer job to run every second.
func (j *OfferJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewOfferOrdersCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Offer job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Offer job started (running every second)")
	return nil
}

// Stop stops the offer job.
func (j *OfferJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Offer job stopped")
}
