package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrAcceptOfferCommandIsNotConstructed = errors.New(
	"AcceptOfferCommand must be created via NewAcceptOfferCommand constructor",
)

// AcceptOfferCommand represents a courier taking the order offered to them.
// Settles the pending attempt as accepted and moves the order to the
// "assigned" milestone.
//
// Example:
//
//	cmd, err := NewAcceptOfferCommand(orderID, courierID)
//	if err != nil {
//	    return err
//	}
//
//	handler := NewAcceptOfferCommandHandler(uowFactory, publisher, logger)
//	switch err := handler.Handle(ctx, cmd); {
//	case errors.Is(err, assignment.ErrAlreadySettled):
//	    // another actor settled the offer first
//	case errors.Is(err, ErrOfferWindowElapsed):
//	    // the courier answered too late
//	}
type AcceptOfferCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAcceptOfferCommand creates a command for a courier accepting an offer.
// Validates that both identifiers are valid UUIDs.
func NewAcceptOfferCommand(orderID kernel.UUID, courierID kernel.UUID) (AcceptOfferCommand, error) {
	cmd := AcceptOfferCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCourierID(courierID),
	); err != nil {
		return AcceptOfferCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAcceptOfferCommandIsNotConstructed if validation fails.
func (c AcceptOfferCommand) Validate() error {
	return c.guard.Validate(ErrAcceptOfferCommandIsNotConstructed)
}

// OrderID returns the order whose offer is being accepted.
func (c AcceptOfferCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CourierID returns the courier accepting the offer.
func (c AcceptOfferCommand) CourierID() kernel.UUID {
	return c.courierID
}

func (c *AcceptOfferCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AcceptOfferCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	c.courierID = courierID
	return nil
}
