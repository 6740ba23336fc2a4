package order

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ErrStatusEventIsNotConstructed is returned when a StatusEvent instance was
// not created through one of its constructors.
var ErrStatusEventIsNotConstructed = errors.New(
	"StatusEvent must be created via NewStatusEvent or RestoreStatusEvent")

// StatusEvent is one entry of the append-only status ledger: the record of
// a single milestone transition for a single order. Events are immutable
// once written and are the source of truth the read projection is derived
// from.
//
// Invariants:
//   - Only delivery-chain milestones are ledgered (assigned .. returned)
//   - Events for an order are strictly time-ordered and each milestone
//     appears at most once
type StatusEvent struct {
	// id uniquely identifies the ledger entry
	id kernel.UUID

	// orderID is the order this transition belongs to
	orderID kernel.UUID

	// milestone is the stage the order reached
	milestone Milestone

	// actor is who caused the transition
	actor Actor

	// occurredAt is when the transition was recorded
	occurredAt time.Time

	// isConstructed ensures the event was created via a constructor
	isConstructed bool
}

// NewStatusEvent creates a ledger entry for a milestone transition.
// Only delivery-chain milestones may be recorded; assignment-phase states
// (created, unassignable) never enter the ledger.
func NewStatusEvent(
	id kernel.UUID,
	orderID kernel.UUID,
	milestone Milestone,
	actor Actor,
	occurredAt time.Time,
) (*StatusEvent, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		milestone.Validate(),
		actor.Validate(),
	); err != nil {
		return nil, err
	}

	if !milestone.IsDeliveryMilestone() {
		return nil, errs.NewValueIsInvalidError("milestone is not part of the delivery chain")
	}

	if occurredAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("occurredAt")
	}

	return &StatusEvent{
		id:            id,
		orderID:       orderID,
		milestone:     milestone,
		actor:         actor,
		occurredAt:    occurredAt,
		isConstructed: true,
	}, nil
}

// RestoreStatusEvent reconstructs a ledger entry from persistent storage.
func RestoreStatusEvent(
	id kernel.UUID,
	orderID kernel.UUID,
	milestone Milestone,
	actor Actor,
	occurredAt time.Time,
) (*StatusEvent, error) {
	return NewStatusEvent(id, orderID, milestone, actor, occurredAt)
}

// Validate ensures the StatusEvent was created through a constructor.
func (e *StatusEvent) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrStatusEventIsNotConstructed
	}
	return nil
}

// ID returns the ledger entry identifier.
func (e *StatusEvent) ID() kernel.UUID {
	return e.id
}

// OrderID returns the order the transition belongs to.
func (e *StatusEvent) OrderID() kernel.UUID {
	return e.orderID
}

// Milestone returns the recorded milestone.
func (e *StatusEvent) Milestone() Milestone {
	return e.milestone
}

// Actor returns who caused the transition.
func (e *StatusEvent) Actor() Actor {
	return e.actor
}

// OccurredAt returns when the transition was recorded.
func (e *StatusEvent) OccurredAt() time.Time {
	return e.occurredAt
}
