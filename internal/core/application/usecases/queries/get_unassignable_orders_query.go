package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetUnassignableOrdersQueryIsNotConstructed = errors.New(
	"GetUnassignableOrdersQuery must be created via NewGetUnassignableOrdersQuery constructor",
)

// GetUnassignableOrdersQuery retrieves all orders parked for dispatcher
// review: every eligible courier rejected them or let their offer expire.
//
// Example:
//
//	query := NewGetUnassignableOrdersQuery()
//	handler := NewGetUnassignableOrdersQueryHandler(db)
//
//	parked, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get unassignable orders: %w", err)
//	}
//	fmt.Printf("%d orders need manual attention\n", len(parked))
type GetUnassignableOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetUnassignableOrdersQuery creates a query to retrieve parked orders.
// This is a parameterless query that fetches the whole review backlog.
func NewGetUnassignableOrdersQuery() GetUnassignableOrdersQuery {
	return GetUnassignableOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetUnassignableOrdersQueryIsNotConstructed if validation fails.
func (q GetUnassignableOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetUnassignableOrdersQueryIsNotConstructed)
}

// GetUnassignableOrdersQueryResponse represents one parked order.
// AttemptCount counts the offers already burned, so dispatchers can see
// how contested the order was before deciding to requeue or steer it.
type GetUnassignableOrdersQueryResponse struct {
	OrderID      kernel.UUID
	ServiceArea  string
	CreatedAt    time.Time
	AttemptCount int
}
