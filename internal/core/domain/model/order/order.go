package order

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")
)

// Order represents a paid delivery order. It is the aggregate root owning
// the order's lifecycle from assignment through delivery.
//
// Order follows these invariants:
//   - Must have valid identifiers, a service area, and a creation time
//   - Exactly one current milestone at any time; milestone transitions
//     follow the strict delivery chain (see Milestone)
//   - A courier is set if and only if the order has reached assigned
//   - Can only be created through NewOrder or RestoreOrder
//
// Only the assignment settlement path may call Assign, and only the
// delivery state machine may call AdvanceTo; no other code writes the
// current milestone.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// vendorID identifies the vendor fulfilling the order
	vendorID kernel.UUID

	// courierID is the accepted courier's ID (nil until assigned)
	courierID *kernel.UUID

	// serviceArea is the delivery zone used for eligibility matching
	serviceArea kernel.ServiceArea

	// milestone is the current stage of the lifecycle
	milestone Milestone

	// trackingNumber is the vendor-supplied shipment reference, set at dispatch
	trackingNumber *string

	// createdAt is when the order was paid and entered fulfillment
	createdAt time.Time

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a paid order entering the assignment loop.
// The order starts at the created milestone with no courier.
//
// Parameters:
//   - id: unique order identifier (must be a valid UUID)
//   - vendorID: vendor fulfilling the order (must be a valid UUID)
//   - serviceArea: the delivery zone of the destination
//   - createdAt: payment time (must be non-zero)
//
// Returns the order, or a validation error when any parameter is invalid.
func NewOrder(
	id kernel.UUID,
	vendorID kernel.UUID,
	serviceArea kernel.ServiceArea,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		milestone:     Created,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setVendorID(vendorID),
		o.setServiceArea(serviceArea),
		o.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an order from persistent storage.
// Unlike NewOrder it accepts any lifecycle state, but still validates
// cross-field consistency: a courier must be present exactly when the
// order has reached the delivery chain.
func RestoreOrder(
	id kernel.UUID,
	vendorID kernel.UUID,
	serviceArea kernel.ServiceArea,
	milestone Milestone,
	courierID *kernel.UUID,
	trackingNumber *string,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setVendorID(vendorID),
		o.setServiceArea(serviceArea),
		o.setCreatedAt(createdAt),
		milestone.Validate(),
	); err != nil {
		return nil, err
	}

	if err := validateCourierConsistency(milestone, courierID != nil); err != nil {
		return nil, err
	}

	if courierID != nil {
		if err := courierID.Validate(); err != nil {
			return nil, err
		}
		id := *courierID
		o.courierID = &id
	}

	if trackingNumber != nil {
		if *trackingNumber == "" {
			return nil, errs.NewValueIsRequiredError("trackingNumber")
		}
		tn := *trackingNumber
		o.trackingNumber = &tn
	}

	o.milestone = milestone
	return o, nil
}

// validateCourierConsistency enforces that orders in the delivery chain
// have a courier and assignment-phase orders do not.
func validateCourierConsistency(milestone Milestone, hasCourier bool) error {
	inChain := milestone.IsDeliveryMilestone()
	if inChain && !hasCourier {
		return errs.NewValueIsInvalidErrorWithCause(
			"courierID", fmt.Errorf("%s order must have a courier", milestone))
	}
	if !inChain && hasCourier {
		return errs.NewValueIsInvalidErrorWithCause(
			"courierID", fmt.Errorf("%s order must not have a courier", milestone))
	}
	return nil
}

// Validate ensures the Order instance was created through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// VendorID returns the vendor fulfilling the order.
func (o *Order) VendorID() kernel.UUID {
	return o.vendorID
}

// ServiceArea returns the delivery zone of the destination.
func (o *Order) ServiceArea() kernel.ServiceArea {
	return o.serviceArea
}

// Milestone returns the current lifecycle stage.
func (o *Order) Milestone() Milestone {
	return o.milestone
}

// Courier returns the accepted courier's ID, or nil before assignment.
func (o *Order) Courier() *kernel.UUID {
	return o.courierID
}

// TrackingNumber returns the vendor-supplied shipment reference, or nil
// if none was recorded.
func (o *Order) TrackingNumber() *string {
	return o.trackingNumber
}

// CreatedAt returns when the order entered fulfillment.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// IsAwaitingAssignment reports whether the order is owned by the
// assignment loop.
func (o *Order) IsAwaitingAssignment() bool {
	return o.milestone == Created
}

// Assign records the accepted courier and moves the order onto the
// delivery chain at the assigned milestone.
//
// Business rules:
//   - The courier ID must be valid
//   - The order must be at the created milestone (awaiting assignment)
//
// This is the only operation that sets the courier.
func (o *Order) Assign(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	newMilestone, err := o.milestone.Advance(Assigned)
	if err != nil {
		return err
	}

	o.milestone = newMilestone
	o.courierID = &courierID
	return nil
}

// AdvanceTo applies a delivery milestone transition.
//
// Returns ErrInvalidTransition or ErrDuplicateTransition exactly as
// Milestone.Advance does. The assigned milestone cannot be reached through
// AdvanceTo; acceptance settlement must go through Assign so the courier
// is recorded atomically with the transition.
func (o *Order) AdvanceTo(target Milestone) error {
	if target == Assigned && o.courierID == nil {
		return errs.NewValueIsRequiredError("courier must be set via Assign before assigned milestone")
	}

	newMilestone, err := o.milestone.Advance(target)
	if err != nil {
		return err
	}

	o.milestone = newMilestone
	return nil
}

// MarkUnassignable records candidate exhaustion. Only orders awaiting
// assignment can become unassignable; the state is terminal for the
// assignment loop until a manual Requeue.
func (o *Order) MarkUnassignable() error {
	if o.milestone != Created {
		return errs.NewValueIsInvalidErrorWithCause(
			"milestone", fmt.Errorf("%s order cannot become unassignable", o.milestone))
	}

	o.milestone = Unassignable
	return nil
}

// Requeue returns an unassignable order to the assignment loop.
// This is the manual admin re-entry point; attempt exclusions are reset
// by the caller.
func (o *Order) Requeue() error {
	if o.milestone != Unassignable {
		return errs.NewValueIsInvalidErrorWithCause(
			"milestone", fmt.Errorf("%s order cannot be requeued", o.milestone))
	}

	o.milestone = Created
	return nil
}

// SetTrackingNumber records the vendor-supplied shipment reference.
func (o *Order) SetTrackingNumber(trackingNumber string) error {
	if trackingNumber == "" {
		return errs.NewValueIsRequiredError("trackingNumber")
	}

	o.trackingNumber = &trackingNumber
	return nil
}

// setID validates and sets the order's unique identifier.
func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// setVendorID validates and sets the vendor identifier.
func (o *Order) setVendorID(vendorID kernel.UUID) error {
	if err := vendorID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("vendorID", err)
	}
	o.vendorID = vendorID
	return nil
}

// setServiceArea validates and sets the delivery zone.
func (o *Order) setServiceArea(serviceArea kernel.ServiceArea) error {
	if err := serviceArea.Validate(); err != nil {
		return err
	}
	o.serviceArea = serviceArea
	return nil
}

// setCreatedAt validates and sets the payment time.
func (o *Order) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	o.createdAt = createdAt
	return nil
}
