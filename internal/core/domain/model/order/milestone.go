package order

import (
	"errors"
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Transition errors surfaced to callers of the delivery state machine.
// Both are recoverable: the caller sent a transition the order cannot take
// and must not retry it unchanged.
var (
	// ErrInvalidTransition is returned when the target milestone is not the
	// immediate successor of the current one (no skip-ahead, no rewind).
	ErrInvalidTransition = errors.New("invalid milestone transition")

	// ErrDuplicateTransition is returned when the target milestone was
	// already recorded for the order.
	ErrDuplicateTransition = errors.New("milestone already recorded")
)

// Milestone represents a discrete stage of the order delivery lifecycle.
// It implements a state machine with strictly forward transitions: no
// milestone may be skipped, repeated, or rewound.
//
// Transitions:
//
//	Created ──> Assigned ──> ReadyForPickup ──> PickedUp ──> Dispatched ──> OutForDelivery ──> Delivered | Returned
//	Created ──> Unassignable ──> Created (requeue)
//
// Delivered and Returned are terminal. Returned is reachable only from
// OutForDelivery, modeling a failed-delivery return.
type Milestone int

const (
	// Unknown represents an invalid or undefined milestone.
	// This value (0) helps catch uninitialized Milestone values.
	Unknown Milestone = iota

	// Created is the initial milestone of a paid order awaiting courier
	// assignment. Orders in this state are owned by the assignment loop.
	Created

	// Assigned indicates a courier accepted the order. First milestone of
	// the delivery chain and first entry in the status ledger.
	Assigned

	// ReadyForPickup indicates the vendor prepared the order for handover.
	ReadyForPickup

	// PickedUp indicates the courier collected the order from the vendor.
	PickedUp

	// Dispatched indicates the order left the vendor's facility.
	Dispatched

	// OutForDelivery indicates the courier is en route to the customer.
	OutForDelivery

	// Delivered indicates successful handover to the customer. Terminal.
	Delivered

	// Returned indicates a failed delivery returned to the vendor. Terminal.
	Returned

	// Unassignable indicates candidate exhaustion: every eligible courier
	// rejected the order or let the acceptance window expire. Requires
	// manual re-entry (requeue); not part of the delivery chain.
	Unassignable
)

// getMilestoneStrings returns a map of Milestone values to their wire names.
func getMilestoneStrings() map[Milestone]string {
	return map[Milestone]string{
		Unknown:        "unknown",
		Created:        "created",
		Assigned:       "assigned",
		ReadyForPickup: "ready_for_pickup",
		PickedUp:       "picked_up",
		Dispatched:     "dispatched",
		OutForDelivery: "out_for_delivery",
		Delivered:      "delivered",
		Returned:       "returned",
		Unassignable:   "unassignable",
	}
}

// getValidMilestoneStrings returns a map of only valid Milestone values.
func getValidMilestoneStrings() map[Milestone]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Milestone]string{
		Created:        "created",
		Assigned:       "assigned",
		ReadyForPickup: "ready_for_pickup",
		PickedUp:       "picked_up",
		Dispatched:     "dispatched",
		OutForDelivery: "out_for_delivery",
		Delivered:      "delivered",
		Returned:       "returned",
		Unassignable:   "unassignable",
	}
}

// getSuccessors returns the allowed next milestones per milestone.
// Unassignable→Created (requeue) is intentionally absent: requeue is a
// manual re-entry handled by Order.Requeue, not a delivery transition.
func getSuccessors() map[Milestone][]Milestone {
	//nolint:exhaustive // terminal milestones have no successors
	return map[Milestone][]Milestone{
		Created:        {Assigned},
		Assigned:       {ReadyForPickup},
		ReadyForPickup: {PickedUp},
		PickedUp:       {Dispatched},
		Dispatched:     {OutForDelivery},
		OutForDelivery: {Delivered, Returned},
	}
}

// chainRank orders the delivery chain so rewinds can be told apart from
// skip-aheads. Milestones outside the chain rank -1.
func (m Milestone) chainRank() int {
	switch m {
	case Created:
		return 0
	case Assigned:
		return 1
	case ReadyForPickup:
		return 2
	case PickedUp:
		return 3
	case Dispatched:
		return 4
	case OutForDelivery:
		return 5
	case Delivered, Returned:
		return 6
	case Unknown, Unassignable:
		return -1
	default:
		return -1
	}
}

// MilestoneFromString parses a milestone wire name as used by the HTTP
// surface and the database projection.
func MilestoneFromString(s string) (Milestone, error) {
	for milestone, name := range getValidMilestoneStrings() {
		if name == s {
			return milestone, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"milestone", fmt.Errorf("%q is not a valid milestone", s))
}

// Validate checks that the Milestone value is one of the defined lifecycle
// stages. Unknown (0) and out-of-range values are invalid.
func (m Milestone) Validate() error {
	if _, ok := getValidMilestoneStrings()[m]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"milestone", fmt.Errorf("%d is not a valid milestone", m))
	}
	return nil
}

// String returns the wire name of the milestone, or "unknown" for invalid
// values. Implements fmt.Stringer.
func (m Milestone) String() string {
	if str, ok := getMilestoneStrings()[m]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the milestone ends the order lifecycle.
func (m Milestone) IsTerminal() bool {
	return m == Delivered || m == Returned
}

// IsDeliveryMilestone reports whether the milestone belongs to the ledgered
// delivery chain (assigned through delivered/returned). Created and
// Unassignable are assignment-phase states and are not recorded as
// status events.
func (m Milestone) IsDeliveryMilestone() bool {
	return m.chainRank() >= 1
}

// Advance validates the transition from the current milestone to target and
// returns the new milestone.
//
// Returns:
//   - (target, nil) when target is an immediate successor
//   - ErrDuplicateTransition when target equals the current milestone or
//     lies behind it in the chain (already recorded)
//   - ErrInvalidTransition for skip-aheads and transitions out of terminal
//     or assignment-phase states
//
// Example:
//
//	next, err := current.Advance(order.PickedUp)
//	if errors.Is(err, order.ErrInvalidTransition) {
//	    // surface as a rejected request
//	}
func (m Milestone) Advance(target Milestone) (Milestone, error) {
	if err := target.Validate(); err != nil {
		return Unknown, err
	}

	if target == m {
		return Unknown, fmt.Errorf("%w: %s", ErrDuplicateTransition, target)
	}

	if m.chainRank() >= 0 && target.chainRank() >= 0 && target.chainRank() <= m.chainRank() {
		return Unknown, fmt.Errorf("%w: %s recorded before reaching %s", ErrDuplicateTransition, target, m)
	}

	for _, successor := range getSuccessors()[m] {
		if successor == target {
			return target, nil
		}
	}

	return Unknown, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, m, target)
}
