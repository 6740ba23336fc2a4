package commands

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

var ErrExpireOffersCommandIsNotConstructed = errors.New(
	"ExpireOffersCommand must be created via NewExpireOffersCommand constructor",
)

// ExpireOffersCommand triggers one pass of the expiry sweep.
// Every pending offer whose acceptance window has elapsed is settled as
// expired. Windows are judged by the expiry instant persisted when the
// offer was made, so a process restart never extends them.
type ExpireOffersCommand struct {
	guard guard.ConstructorGuard
}

// NewExpireOffersCommand creates a new command to trigger an expiry pass.
func NewExpireOffersCommand() ExpireOffersCommand {
	return ExpireOffersCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
// Returns ErrExpireOffersCommandIsNotConstructed if validation fails.
func (c *ExpireOffersCommand) Validate() error {
	return c.guard.Validate(
		ErrExpireOffersCommandIsNotConstructed,
	)
}
