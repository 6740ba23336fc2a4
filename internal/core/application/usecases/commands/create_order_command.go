package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
)

// CreateOrderCommand represents a paid order entering fulfillment.
// Encapsulates the order identity, the vendor fulfilling it and the
// delivery zone of the destination.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(orderID, vendorID, "midtown")
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
//	fmt.Printf("Order %s created and awaiting courier assignment", orderID)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	vendorID    kernel.UUID
	serviceArea kernel.ServiceArea

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a paid order.
// Validates that both identifiers are valid and that the service area
// name is not empty. Returns an error if any validation fails.
func NewCreateOrderCommand(orderID kernel.UUID, vendorID kernel.UUID, serviceArea string) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setVendorID(vendorID),
		orderCommand.setServiceArea(serviceArea),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// VendorID returns the vendor fulfilling the order.
func (c CreateOrderCommand) VendorID() kernel.UUID {
	return c.vendorID
}

// ServiceArea returns the delivery zone of the destination.
func (c CreateOrderCommand) ServiceArea() kernel.ServiceArea {
	return c.serviceArea
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setVendorID(vendorID kernel.UUID) error {
	if err := vendorID.Validate(); err != nil {
		return err
	}

	c.vendorID = vendorID
	return nil
}

func (c *CreateOrderCommand) setServiceArea(serviceArea string) error {
	area, err := kernel.NewServiceArea(serviceArea)
	if err != nil {
		return err
	}

	c.serviceArea = area
	return nil
}
