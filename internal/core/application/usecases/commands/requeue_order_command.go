package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrRequeueOrderCommandIsNotConstructed = errors.New(
	"RequeueOrderCommand must be created via NewRequeueOrderCommand constructor",
)

// RequeueOrderCommand puts an unassignable order back into the assignment
// pool. Prior rejections and expirations stop excluding couriers so the
// whole pool is considered again; the attempt history itself stays on
// record for audit.
type RequeueOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRequeueOrderCommand creates a command to requeue an unassignable order.
func NewRequeueOrderCommand(orderID kernel.UUID) (RequeueOrderCommand, error) {
	cmd := RequeueOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return RequeueOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrRequeueOrderCommandIsNotConstructed if validation fails.
func (c RequeueOrderCommand) Validate() error {
	return c.guard.Validate(ErrRequeueOrderCommandIsNotConstructed)
}

// OrderID returns the order to requeue.
func (c RequeueOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *RequeueOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
