package ports

import (
	"context"

	"fulfillment/internal/core/domain/events"
)

// EventPublisher delivers domain events to downstream consumers.
//
// Publishing is fire-and-forget from the core's perspective: command
// handlers log publish failures but never fail the business operation on
// them, and never await consumer acknowledgement.
type EventPublisher interface {
	// Publish hands an event to the transport.
	Publish(ctx context.Context, event events.Event) error
}
