package jobs

import (
	"fmt"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	offerJob  *OfferJob
	expiryJob *ExpiryJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	offerOrdersHandler commands.OfferOrdersCommandHandler,
	expireOffersHandler commands.ExpireOffersCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		offerJob:  NewOfferJob(offerOrdersHandler, logger),
		expiryJob: NewExpiryJob(expireOffersHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.offerJob.Start(); err != nil {
		return fmt.Errorf("failed to start offer job: %w", err)
	}

	if err := jm.expiryJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.offerJob.Stop()
		return fmt.Errorf("failed to start expiry job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.expiryJob.Stop()
	jm.offerJob.Stop()
}
