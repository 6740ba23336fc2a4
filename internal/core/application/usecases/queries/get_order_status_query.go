// Package queries contains read-only operations over the fulfillment
// state. Query handlers bypass the domain model and project straight from
// the database, per the CQRS split.
package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetOrderStatusQueryIsNotConstructed = errors.New(
	"GetOrderStatusQuery must be created via NewGetOrderStatusQuery constructor",
)

// GetOrderStatusQuery retrieves the current milestone and full status
// history of a single order.
//
// Example:
//
//	query, err := NewGetOrderStatusQuery(orderID)
//	if err != nil {
//	    return err
//	}
//
//	handler := NewGetOrderStatusQueryHandler(db)
//	status, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get order status: %w", err)
//	}
//	fmt.Printf("Order %s is %s\n", status.OrderID, status.Milestone)
type GetOrderStatusQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderStatusQuery creates a query for one order's status.
func NewGetOrderStatusQuery(orderID kernel.UUID) (GetOrderStatusQuery, error) {
	query := GetOrderStatusQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setOrderID(orderID); err != nil {
		return GetOrderStatusQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderStatusQueryIsNotConstructed if validation fails.
func (q GetOrderStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderStatusQueryIsNotConstructed)
}

// OrderID returns the order being inspected.
func (q GetOrderStatusQuery) OrderID() kernel.UUID {
	return q.orderID
}

func (q *GetOrderStatusQuery) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	q.orderID = orderID
	return nil
}

// StatusHistoryEntry is one recorded milestone transition.
type StatusHistoryEntry struct {
	Milestone  string
	Actor      string
	OccurredAt time.Time
}

// GetOrderStatusQueryResponse represents an order's fulfillment status.
//
// AwaitingCourierResponse distinguishes an order whose offer is out with a
// courier from one idling in the pool; Unassignable marks orders parked
// for dispatcher review. Both are false once the order enters the
// delivery chain.
type GetOrderStatusQueryResponse struct {
	OrderID                 kernel.UUID
	Milestone               string
	CourierID               *kernel.UUID
	TrackingNumber          *string
	AwaitingCourierResponse bool
	Unassignable            bool
	History                 []StatusHistoryEntry
}
