// Package guard implements the constructor guard pattern used by domain
// objects to reject zero-value instances that bypassed their constructors.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific
// validation error is supplied for an unconstructed object.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard distinguishes objects created through their designated
// constructor from zero values. Embedding a ConstructorGuard in a struct and
// checking it in Validate enforces that all invariant-establishing code in
// the constructor actually ran.
//
// Example usage:
//
//	var ErrAttemptNotConstructed = errors.New("Attempt must be created via NewAttempt")
//
//	type Attempt struct {
//	    id    kernel.UUID
//	    guard guard.ConstructorGuard
//	}
//
//	func NewAttempt(id kernel.UUID) (*Attempt, error) {
//	    return &Attempt{id: id, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (a *Attempt) Validate() error {
//	    return a.guard.Validate(ErrAttemptNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard marking the owning object as properly
// constructed. Call it only from the object's constructor.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil when the owning object was created through its
// constructor. For zero-value objects it returns validationError, or
// ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
