package services

import (
	"sort"

	"fulfillment/internal/core/domain/model/assignment"
	"fulfillment/internal/core/domain/model/courier"
	"fulfillment/internal/core/domain/model/order"
)

// EligibilityResolver is a domain service computing which couriers may
// receive an order, in offer order.
//
// Eligibility rules:
//   - The courier must be active and not blacklisted
//   - The courier must cover the order's service area
//   - The courier must not have a prior rejected or expired attempt for
//     this order (voided attempts do not count)
//
// Ordering policy: rank descending (external proximity/performance
// signal), ties broken by courier ID ascending for determinism.
//
// The resolver is stateless: callers re-query it on every assignment step
// with the current attempt history, so freshly settled attempts are
// excluded automatically. An empty result is a normal condition meaning
// the order is unassignable, not an error.
//
// Example usage:
//
//	resolver := services.NewEligibilityResolver()
//	candidates, err := resolver.Candidates(order, couriers, attempts)
//	if err != nil {
//	    return err
//	}
//	if len(candidates) == 0 {
//	    // no eligible courier: mark the order unassignable
//	}
type EligibilityResolver struct{}

// NewEligibilityResolver creates a new EligibilityResolver instance.
func NewEligibilityResolver() EligibilityResolver {
	return EligibilityResolver{}
}

// Candidates returns the couriers eligible to receive the order, best
// candidate first.
//
// Parameters:
//   - o: the order to offer (must be valid)
//   - couriers: the courier pool to filter
//   - attempts: the order's full attempt history, used for exclusion
//
// Returns the ordered eligible couriers (possibly empty), or a validation
// error when any input aggregate is invalid.
func (r EligibilityResolver) Candidates(
	o *order.Order,
	couriers []*courier.Courier,
	attempts []*assignment.Attempt,
) ([]*courier.Courier, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	excluded, err := r.excludedCouriers(o, attempts)
	if err != nil {
		return nil, err
	}

	candidates := make([]*courier.Courier, 0, len(couriers))
	for _, c := range couriers {
		if err := c.Validate(); err != nil {
			return nil, err
		}

		if !c.IsAvailable() {
			continue
		}

		if !c.CanServe(o.ServiceArea()) {
			continue
		}

		if excluded[c.ID().String()] {
			continue
		}

		candidates = append(candidates, c)
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Rank() != candidates[j].Rank() {
			return candidates[i].Rank() > candidates[j].Rank()
		}
		return candidates[i].ID().String() < candidates[j].ID().String()
	})

	return candidates, nil
}

// excludedCouriers collects couriers disqualified by the order's attempt
// history.
func (r EligibilityResolver) excludedCouriers(
	o *order.Order,
	attempts []*assignment.Attempt,
) (map[string]bool, error) {
	excluded := make(map[string]bool, len(attempts))
	for _, attempt := range attempts {
		if err := attempt.Validate(); err != nil {
			return nil, err
		}

		if !attempt.OrderID().IsEqual(o.ID()) {
			continue
		}

		if attempt.ExcludesCourier() {
			excluded[attempt.CourierID().String()] = true
		}
	}
	return excluded, nil
}
