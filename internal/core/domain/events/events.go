// Package events defines the domain events the orchestration core emits
// to downstream consumers (notifications, analytics). Events are
// fire-and-forget: the core never awaits delivery.
package events

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

// Type identifies the kind of domain event.
type Type string

const (
	// TypeOffered is emitted when an order is offered to a courier.
	TypeOffered Type = "offered"
	// TypeAccepted is emitted when a courier accepts an offer.
	TypeAccepted Type = "accepted"
	// TypeRejected is emitted when a courier rejects an offer.
	TypeRejected Type = "rejected"
	// TypeExpired is emitted when an acceptance window elapses unanswered.
	TypeExpired Type = "expired"
	// TypeUnassignable is emitted when candidate exhaustion strands an order.
	TypeUnassignable Type = "unassignable"
	// TypeMilestoneReached is emitted for every recorded delivery milestone.
	TypeMilestoneReached Type = "milestone_reached"
)

// Event is a single domain event. CourierID and Milestone are set only
// where they apply to the event type.
type Event struct {
	ID         kernel.UUID
	Type       Type
	OrderID    kernel.UUID
	CourierID  *kernel.UUID
	Milestone  string
	OccurredAt time.Time
}

// NewAssignmentEvent creates an event for the assignment loop
// (offered, accepted, rejected, expired, unassignable). courierID may be
// nil for unassignable events.
func NewAssignmentEvent(eventType Type, orderID kernel.UUID, courierID *kernel.UUID) Event {
	return Event{
		ID:         kernel.NewUUID(),
		Type:       eventType,
		OrderID:    orderID,
		CourierID:  courierID,
		OccurredAt: time.Now().UTC(),
	}
}

// NewMilestoneEvent creates a milestone_reached event.
func NewMilestoneEvent(orderID kernel.UUID, courierID *kernel.UUID, milestone string) Event {
	return Event{
		ID:         kernel.NewUUID(),
		Type:       TypeMilestoneReached,
		OrderID:    orderID,
		CourierID:  courierID,
		Milestone:  milestone,
		OccurredAt: time.Now().UTC(),
	}
}
