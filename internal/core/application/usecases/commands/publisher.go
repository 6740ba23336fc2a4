package commands

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/domain/events"
	"fulfillment/internal/core/ports"
)

// publishEvents hands domain events to the publisher after the business
// transaction has committed. Publish failures are logged and swallowed:
// the state change already happened and must not be reported as failed.
func publishEvents(
	ctx context.Context,
	publisher ports.EventPublisher,
	logger *slog.Logger,
	eventList []events.Event,
) {
	if publisher == nil {
		return
	}

	for _, event := range eventList {
		if err := publisher.Publish(ctx, event); err != nil {
			logger.Warn("failed to publish domain event",
				"type", string(event.Type),
				"orderID", event.OrderID.String(),
				"error", err)
		}
	}
}
