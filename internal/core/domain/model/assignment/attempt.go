package assignment

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	// ErrAttemptIsNotConstructed is returned when using an improperly
	// initialized Attempt.
	ErrAttemptIsNotConstructed = errors.New("Attempt must be created via NewAttempt or RestoreAttempt")

	// ErrAlreadySettled is returned to the loser of a settlement race: the
	// attempt was already resolved by another actor. The caller must
	// re-fetch current state instead of retrying the same action.
	ErrAlreadySettled = errors.New("attempt already settled")
)

// Attempt is one courier's time-boxed offer to fulfill an order.
//
// Invariants:
//   - ExpiresAt is always OfferedAt plus the acceptance window
//   - Outcome starts Pending and transitions exactly once to a settled
//     outcome; Settle on a settled attempt returns ErrAlreadySettled
//   - A voided attempt no longer excludes its courier from eligibility
//     (manual requeue resets exclusions) but remains for audit
type Attempt struct {
	// id uniquely identifies the attempt
	id kernel.UUID
	// orderID is the order being offered
	orderID kernel.UUID
	// courierID is the courier the offer was made to
	courierID kernel.UUID
	// offeredAt is when the offer was made
	offeredAt time.Time
	// expiresAt bounds the acceptance window
	expiresAt time.Time
	// outcome is the settlement state
	outcome Outcome
	// voided marks the attempt as excluded from eligibility filtering
	voided bool
	// guard ensures the attempt was properly constructed
	guard guard.ConstructorGuard
}

// NewAttempt creates a pending offer of an order to a courier.
// The acceptance window must be positive; ExpiresAt is derived from
// OfferedAt, never from the wall clock at evaluation time, so a process
// restart cannot extend the courier's window.
func NewAttempt(
	id kernel.UUID,
	orderID kernel.UUID,
	courierID kernel.UUID,
	offeredAt time.Time,
	acceptanceWindow time.Duration,
) (*Attempt, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		courierID.Validate(),
	); err != nil {
		return nil, err
	}

	if offeredAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("offeredAt")
	}

	if acceptanceWindow <= 0 {
		return nil, errs.NewValueIsInvalidError("acceptance window must be positive")
	}

	return &Attempt{
		id:        id,
		orderID:   orderID,
		courierID: courierID,
		offeredAt: offeredAt,
		expiresAt: offeredAt.Add(acceptanceWindow),
		outcome:   OutcomePending,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// RestoreAttempt reconstructs an attempt from persistent storage.
func RestoreAttempt(
	id kernel.UUID,
	orderID kernel.UUID,
	courierID kernel.UUID,
	offeredAt time.Time,
	expiresAt time.Time,
	outcome Outcome,
	voided bool,
) (*Attempt, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		courierID.Validate(),
		outcome.Validate(),
	); err != nil {
		return nil, err
	}

	if offeredAt.IsZero() || expiresAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("offeredAt and expiresAt")
	}

	if !expiresAt.After(offeredAt) {
		return nil, errs.NewValueIsInvalidError("expiresAt must be after offeredAt")
	}

	return &Attempt{
		id:        id,
		orderID:   orderID,
		courierID: courierID,
		offeredAt: offeredAt,
		expiresAt: expiresAt,
		outcome:   outcome,
		voided:    voided,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Attempt instance was created through a constructor.
func (a *Attempt) Validate() error {
	if a == nil {
		return ErrAttemptIsNotConstructed
	}
	return a.guard.Validate(ErrAttemptIsNotConstructed)
}

// ID returns the attempt's unique identifier.
func (a *Attempt) ID() kernel.UUID {
	return a.id
}

// OrderID returns the order being offered.
func (a *Attempt) OrderID() kernel.UUID {
	return a.orderID
}

// CourierID returns the courier the offer was made to.
func (a *Attempt) CourierID() kernel.UUID {
	return a.courierID
}

// OfferedAt returns when the offer was made.
func (a *Attempt) OfferedAt() time.Time {
	return a.offeredAt
}

// ExpiresAt returns the end of the acceptance window.
func (a *Attempt) ExpiresAt() time.Time {
	return a.expiresAt
}

// Outcome returns the settlement state.
func (a *Attempt) Outcome() Outcome {
	return a.outcome
}

// IsPending reports whether the attempt is still awaiting settlement.
func (a *Attempt) IsPending() bool {
	return a.outcome == OutcomePending
}

// IsVoided reports whether the attempt was excluded from eligibility
// filtering by a manual requeue.
func (a *Attempt) IsVoided() bool {
	return a.voided
}

// WindowElapsed reports whether the acceptance window has passed at the
// given instant. It says nothing about settlement: a pending attempt whose
// window elapsed still needs to be settled as expired.
func (a *Attempt) WindowElapsed(now time.Time) bool {
	return !now.Before(a.expiresAt)
}

// ExcludesCourier reports whether this attempt disqualifies its courier
// from receiving the same order again.
func (a *Attempt) ExcludesCourier() bool {
	return !a.voided && a.outcome.Excludes()
}

// Settle resolves the attempt to a settled outcome.
//
// Returns:
//   - nil on the first settlement
//   - ErrAlreadySettled when the attempt was already resolved
//   - a validation error when outcome is not a settled outcome
//
// Settle only mutates the in-memory aggregate. Persistence must apply the
// same pending-state check atomically (compare-and-swap on the stored
// outcome) so that concurrent actors racing through separate aggregate
// instances still settle exactly once.
func (a *Attempt) Settle(outcome Outcome) error {
	if err := outcome.Validate(); err != nil {
		return err
	}

	if !outcome.IsSettled() {
		return errs.NewValueIsInvalidError("settlement outcome must be accepted, rejected, or expired")
	}

	if a.outcome != OutcomePending {
		return ErrAlreadySettled
	}

	a.outcome = outcome
	return nil
}

// Void excludes the attempt from eligibility filtering while retaining it
// for audit. Only settled attempts can be voided; the pending attempt of
// an order is settled, never voided.
func (a *Attempt) Void() error {
	if a.outcome == OutcomePending {
		return errs.NewValueIsInvalidError("pending attempt cannot be voided")
	}

	a.voided = true
	return nil
}
