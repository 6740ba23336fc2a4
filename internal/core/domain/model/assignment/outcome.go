package assignment

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Outcome represents the resolution state of an assignment attempt.
//
// Transitions: OutcomePending is the only initial state; OutcomeAccepted,
// OutcomeRejected, and OutcomeExpired are settled states with no further
// transitions.
type Outcome int

const (
	// OutcomeUnknown represents an invalid or undefined outcome.
	OutcomeUnknown Outcome = iota

	// OutcomePending means the offered courier has not responded and the
	// acceptance window has not elapsed.
	OutcomePending

	// OutcomeAccepted means the courier accepted within the window.
	OutcomeAccepted

	// OutcomeRejected means the courier explicitly declined the offer.
	OutcomeRejected

	// OutcomeExpired means the acceptance window elapsed without a response.
	OutcomeExpired
)

func getOutcomeStrings() map[Outcome]string {
	return map[Outcome]string{
		OutcomeUnknown:  "unknown",
		OutcomePending:  "pending",
		OutcomeAccepted: "accepted",
		OutcomeRejected: "rejected",
		OutcomeExpired:  "expired",
	}
}

// OutcomeFromString parses an outcome wire name.
func OutcomeFromString(s string) (Outcome, error) {
	for outcome, name := range getOutcomeStrings() {
		if outcome != OutcomeUnknown && name == s {
			return outcome, nil
		}
	}
	return OutcomeUnknown, errs.NewValueIsInvalidErrorWithCause(
		"outcome", fmt.Errorf("%q is not a valid outcome", s))
}

// Validate checks that the Outcome value is one of the defined outcomes.
func (o Outcome) Validate() error {
	if o != OutcomePending && o != OutcomeAccepted && o != OutcomeRejected && o != OutcomeExpired {
		return errs.NewValueIsInvalidErrorWithCause(
			"outcome", fmt.Errorf("%d is not a valid outcome", o))
	}
	return nil
}

// String returns the wire name of the outcome. Implements fmt.Stringer.
func (o Outcome) String() string {
	if str, ok := getOutcomeStrings()[o]; ok {
		return str
	}
	return "unknown"
}

// IsSettled reports whether the outcome is a final resolution.
func (o Outcome) IsSettled() bool {
	return o == OutcomeAccepted || o == OutcomeRejected || o == OutcomeExpired
}

// Excludes reports whether the outcome disqualifies the courier from
// receiving this order again: rejections and expiries do, acceptance and
// a still-pending offer do not.
func (o Outcome) Excludes() bool {
	return o == OutcomeRejected || o == OutcomeExpired
}
