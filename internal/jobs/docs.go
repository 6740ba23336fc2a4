// Package jobs provides scheduled background tasks for the fulfillment system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to drive the courier assignment loop.
//
// # Available Jobs
//
// 1. OfferJob - Runs every second to offer orders awaiting assignment to their best eligible courier
// 2. ExpiryJob - Runs every second to settle pending offers whose acceptance window has elapsed
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(offerOrdersHandler, expireOffersHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Both jobs use the cron expression "* * * * * *" which means they run every
// second. Offers therefore go out within a second of an order entering the
// pool, and elapsed windows are swept within a second of expiring. Expiry
// works off the persisted deadline of each attempt, so offers in flight
// across a restart are swept on the next tick rather than re-armed.
//
// # Error Handling
//
// Both handlers treat an empty worklist as a normal result, so every error
// the jobs see is logged.
package jobs
