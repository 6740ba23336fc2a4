package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrCreateCourierCommandIsNotConstructed = errors.New(
		"CreateCourierCommand must be created via NewCreateCourierCommand constructor",
	)
)

// CreateCourierCommand represents a request to register a new courier.
// Encapsulates the courier's name, ranking signal and the delivery zones
// the courier covers. A unique courier ID is generated on construction.
//
// Example:
//
//	cmd, err := NewCreateCourierCommand("Dana K.", 7, []string{"midtown", "harbor"})
//	if err != nil {
//	    return fmt.Errorf("invalid courier data: %w", err)
//	}
//
//	handler := NewCreateCourierCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to register courier: %w", err)
//	}
//	fmt.Printf("Registered courier with ID: %s", cmd.CourierID())
type CreateCourierCommand struct { //nolint:recvcheck //using for validation
	courierID    kernel.UUID
	name         string
	rank         int
	serviceAreas []kernel.ServiceArea

	guard guard.ConstructorGuard
}

// NewCreateCourierCommand creates a command to register a new courier.
// Automatically generates a unique ID for the courier. Validates that
// the name is not empty and that at least one service area is given.
func NewCreateCourierCommand(name string, rank int, serviceAreas []string) (CreateCourierCommand, error) {
	courierCommand := CreateCourierCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		courierCommand.setCourierID(kernel.NewUUID()),
		courierCommand.setName(name),
		courierCommand.setRank(rank),
		courierCommand.setServiceAreas(serviceAreas),
	); err != nil {
		return CreateCourierCommand{}, err
	}

	return courierCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateCourierCommandIsNotConstructed if validation fails.
func (c CreateCourierCommand) Validate() error {
	return c.guard.Validate(ErrCreateCourierCommandIsNotConstructed)
}

// CourierID returns the generated identifier for the courier.
func (c CreateCourierCommand) CourierID() kernel.UUID {
	return c.courierID
}

// Name returns the courier name from the command.
func (c CreateCourierCommand) Name() string {
	return c.name
}

// Rank returns the ranking signal from the command.
func (c CreateCourierCommand) Rank() int {
	return c.rank
}

// ServiceAreas returns the delivery zones the courier covers.
func (c CreateCourierCommand) ServiceAreas() []kernel.ServiceArea {
	return c.serviceAreas
}

func (c *CreateCourierCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	c.courierID = courierID
	return nil
}

func (c *CreateCourierCommand) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}

	c.name = name
	return nil
}

func (c *CreateCourierCommand) setRank(rank int) error {
	if rank < 0 {
		return errs.NewValueIsInvalidError("rank")
	}

	c.rank = rank
	return nil
}

func (c *CreateCourierCommand) setServiceAreas(serviceAreas []string) error {
	if len(serviceAreas) == 0 {
		return errs.NewValueIsRequiredError("serviceAreas")
	}

	areas := make([]kernel.ServiceArea, 0, len(serviceAreas))
	for _, name := range serviceAreas {
		area, err := kernel.NewServiceArea(name)
		if err != nil {
			return err
		}
		areas = append(areas, area)
	}

	c.serviceAreas = areas
	return nil
}
