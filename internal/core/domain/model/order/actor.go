package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Actor identifies who caused a milestone transition: the courier, the
// vendor, or the system itself (timeouts, assignment exhaustion).
type Actor int

const (
	// ActorUnknown represents an invalid or undefined actor.
	ActorUnknown Actor = iota

	// ActorSystem marks system-initiated transitions (timers, schedulers).
	ActorSystem

	// ActorCourier marks transitions reported by the assigned courier.
	ActorCourier

	// ActorVendor marks transitions reported by the vendor.
	ActorVendor
)

func getActorStrings() map[Actor]string {
	return map[Actor]string{
		ActorUnknown: "unknown",
		ActorSystem:  "system",
		ActorCourier: "courier",
		ActorVendor:  "vendor",
	}
}

// ActorFromString parses an actor wire name.
func ActorFromString(s string) (Actor, error) {
	for actor, name := range getActorStrings() {
		if actor != ActorUnknown && name == s {
			return actor, nil
		}
	}
	return ActorUnknown, errs.NewValueIsInvalidErrorWithCause(
		"actor", fmt.Errorf("%q is not a valid actor", s))
}

// Validate checks that the Actor value is one of the defined actors.
func (a Actor) Validate() error {
	if a != ActorSystem && a != ActorCourier && a != ActorVendor {
		return errs.NewValueIsInvalidErrorWithCause(
			"actor", fmt.Errorf("%d is not a valid actor", a))
	}
	return nil
}

// String returns the wire name of the actor. Implements fmt.Stringer.
func (a Actor) String() string {
	if str, ok := getActorStrings()[a]; ok {
		return str
	}
	return "unknown"
}
