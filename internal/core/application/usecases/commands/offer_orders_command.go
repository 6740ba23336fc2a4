package commands

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

var ErrOfferOrdersCommandIsNotConstructed = errors.New(
	"OfferOrdersCommand must be created via NewOfferOrdersCommand constructor",
)

// OfferOrdersCommand triggers one pass of the assignment loop.
// Every order still awaiting assignment either gets a fresh offer to its
// best eligible courier or, when no eligible courier remains, is parked
// as unassignable for dispatcher review.
//
// Example:
//
//	cmd := NewOfferOrdersCommand()
//	handler := NewOfferOrdersCommandHandler(uowFactory, acceptanceWindow, publisher, logger)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    log.Printf("Offer pass failed: %v", err)
//	}
type OfferOrdersCommand struct {
	guard guard.ConstructorGuard
}

// NewOfferOrdersCommand creates a new command to trigger an offer pass.
// This is a parameterless command that initiates the order-courier matching process.
func NewOfferOrdersCommand() OfferOrdersCommand {
	return OfferOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
// Returns ErrOfferOrdersCommandIsNotConstructed if validation fails.
func (c *OfferOrdersCommand) Validate() error {
	return c.guard.Validate(
		ErrOfferOrdersCommandIsNotConstructed,
	)
}
