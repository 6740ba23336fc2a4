package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrRejectOfferCommandIsNotConstructed = errors.New(
	"RejectOfferCommand must be created via NewRejectOfferCommand constructor",
)

// RejectOfferCommand represents a courier declining the order offered to them.
// Settles the pending attempt as rejected; the courier is excluded from
// future offers for this order and the order re-enters the assignment pool.
type RejectOfferCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRejectOfferCommand creates a command for a courier declining an offer.
// Validates that both identifiers are valid UUIDs.
func NewRejectOfferCommand(orderID kernel.UUID, courierID kernel.UUID) (RejectOfferCommand, error) {
	cmd := RejectOfferCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCourierID(courierID),
	); err != nil {
		return RejectOfferCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrRejectOfferCommandIsNotConstructed if validation fails.
func (c RejectOfferCommand) Validate() error {
	return c.guard.Validate(ErrRejectOfferCommandIsNotConstructed)
}

// OrderID returns the order whose offer is being declined.
func (c RejectOfferCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CourierID returns the courier declining the offer.
func (c RejectOfferCommand) CourierID() kernel.UUID {
	return c.courierID
}

func (c *RejectOfferCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *RejectOfferCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	c.courierID = courierID
	return nil
}
