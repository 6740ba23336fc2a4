package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrExpireOfferCommandIsNotConstructed = errors.New(
	"ExpireOfferCommand must be created via NewExpireOfferCommand constructor",
)

// ExpireOfferCommand expires the pending offer of a single order.
// Used when a caller observes a timed-out offer and wants it settled now
// instead of waiting for the next expiry sweep.
type ExpireOfferCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewExpireOfferCommand creates a command to expire an order's pending offer.
func NewExpireOfferCommand(orderID kernel.UUID) (ExpireOfferCommand, error) {
	cmd := ExpireOfferCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return ExpireOfferCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrExpireOfferCommandIsNotConstructed if validation fails.
func (c ExpireOfferCommand) Validate() error {
	return c.guard.Validate(ErrExpireOfferCommandIsNotConstructed)
}

// OrderID returns the order whose pending offer should be expired.
func (c ExpireOfferCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *ExpireOfferCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
