// Package order contains the Order aggregate and its delivery lifecycle.
//
// The lifecycle is a strict forward sequence of milestones:
//
//	created ──> assigned ──> ready_for_pickup ──> picked_up ──> dispatched ──> out_for_delivery ──┬──> delivered
//	   │                                                                                          └──> returned
//	   └──> unassignable (no eligible courier; re-entry via requeue)
//
// delivered and returned are terminal. returned models a failed delivery
// and is only reachable once the order is out for delivery.
//
// Milestone transitions are validated by the Milestone value object; the
// Order aggregate applies them and owns the current milestone. Each applied
// delivery milestone is recorded as an immutable StatusEvent, the unit of
// the append-only status ledger that the read model is projected from.
package order
