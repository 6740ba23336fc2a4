package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/assignment"
	"fulfillment/internal/core/domain/model/kernel"
)

// AttemptRepository defines the persistence contract for assignment
// attempts.
//
// Settlement discipline: Settle is the only way to change a stored
// attempt's outcome. Implementations must apply it as an atomic
// compare-and-swap from the pending outcome and return
// assignment.ErrAlreadySettled when the stored attempt was no longer
// pending, so that concurrent accept/reject/expiry resolve exactly once
// regardless of in-memory state.
type AttemptRepository interface {
	// Add persists a new attempt.
	Add(ctx context.Context, aggregate *assignment.Attempt) error

	// Settle persists the settlement of a previously pending attempt.
	// Returns assignment.ErrAlreadySettled if the stored outcome was not
	// pending anymore.
	Settle(ctx context.Context, aggregate *assignment.Attempt) error

	// Get retrieves an attempt by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*assignment.Attempt, error)

	// GetPendingByOrder retrieves the order's pending attempt.
	// At most one attempt per order is pending at any time.
	GetPendingByOrder(ctx context.Context, orderID kernel.UUID) (*assignment.Attempt, error)

	// GetAllByOrder retrieves the order's full attempt history,
	// oldest first. Used for eligibility exclusion and audit.
	GetAllByOrder(ctx context.Context, orderID kernel.UUID) ([]*assignment.Attempt, error)

	// GetAllPendingElapsed retrieves pending attempts whose acceptance
	// window elapsed at or before now. Used by the expiry sweep, including
	// after a restart: windows are evaluated against the stored ExpiresAt,
	// never re-armed from the current time.
	GetAllPendingElapsed(ctx context.Context, now time.Time) ([]*assignment.Attempt, error)

	// VoidAllSettledByOrder marks the order's settled attempts as voided so
	// they stop excluding couriers. Used by the manual requeue re-entry.
	VoidAllSettledByOrder(ctx context.Context, orderID kernel.UUID) error
}
