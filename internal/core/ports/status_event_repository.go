package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// StatusEventRepository defines the persistence contract for the
// append-only status ledger. Events are never updated or deleted.
type StatusEventRepository interface {
	// Append persists a new ledger entry.
	Append(ctx context.Context, event *order.StatusEvent) error

	// GetAllByOrder retrieves the order's ledger, oldest first.
	GetAllByOrder(ctx context.Context, orderID kernel.UUID) ([]*order.StatusEvent, error)

	// GetByOrderAndMilestone retrieves the ledger entry recording the
	// given milestone for the order, if any. Used for idempotent replay
	// of milestone reports.
	GetByOrderAndMilestone(
		ctx context.Context, orderID kernel.UUID, milestone order.Milestone,
	) (*order.StatusEvent, error)
}
