package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order and takes a row-level lock on it for
	// the duration of the surrounding transaction. All mutating command
	// handlers load through GetForUpdate so that events for one order are
	// processed serially while different orders proceed concurrently.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllAwaitingAssignment retrieves orders at the created milestone,
	// oldest first. Used by the assignment loop to find work.
	GetAllAwaitingAssignment(ctx context.Context) ([]*order.Order, error)
}
