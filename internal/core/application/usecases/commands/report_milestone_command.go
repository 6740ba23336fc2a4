package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrReportMilestoneCommandIsNotConstructed = errors.New(
	"ReportMilestoneCommand must be created via NewReportMilestoneCommand constructor",
)

// ReportMilestoneCommand represents a courier or vendor reporting delivery
// progress. Advances the order along the delivery chain and appends the
// transition to the status ledger.
//
// TrackingNumber is optional and only meaningful when the vendor reports
// the "dispatched" milestone.
//
// Example:
//
//	cmd, err := NewReportMilestoneCommand(orderID, order.PickedUp, order.ActorCourier, "")
//	if err != nil {
//	    return err
//	}
//
//	handler := NewReportMilestoneCommandHandler(uowFactory, publisher, logger)
//	statusEvent, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, order.ErrInvalidTransition) {
//	    // the courier skipped a step
//	}
type ReportMilestoneCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	milestone      order.Milestone
	actor          order.Actor
	trackingNumber string

	guard guard.ConstructorGuard
}

// NewReportMilestoneCommand creates a command for a delivery progress report.
// Validates the order ID, that the milestone is part of the delivery chain
// and that the actor is known. trackingNumber may be empty.
func NewReportMilestoneCommand(
	orderID kernel.UUID,
	milestone order.Milestone,
	actor order.Actor,
	trackingNumber string,
) (ReportMilestoneCommand, error) {
	cmd := ReportMilestoneCommand{
		trackingNumber: trackingNumber,
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setMilestone(milestone),
		cmd.setActor(actor),
	); err != nil {
		return ReportMilestoneCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrReportMilestoneCommandIsNotConstructed if validation fails.
func (c ReportMilestoneCommand) Validate() error {
	return c.guard.Validate(ErrReportMilestoneCommandIsNotConstructed)
}

// OrderID returns the order the report is about.
func (c ReportMilestoneCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Milestone returns the delivery milestone being reported.
func (c ReportMilestoneCommand) Milestone() order.Milestone {
	return c.milestone
}

// Actor returns who is reporting the milestone.
func (c ReportMilestoneCommand) Actor() order.Actor {
	return c.actor
}

// TrackingNumber returns the carrier tracking number, or "" when none
// was supplied.
func (c ReportMilestoneCommand) TrackingNumber() string {
	return c.trackingNumber
}

func (c *ReportMilestoneCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ReportMilestoneCommand) setMilestone(milestone order.Milestone) error {
	if err := milestone.Validate(); err != nil {
		return err
	}
	if !milestone.IsDeliveryMilestone() {
		return order.ErrInvalidTransition
	}

	c.milestone = milestone
	return nil
}

func (c *ReportMilestoneCommand) setActor(actor order.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}
