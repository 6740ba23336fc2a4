// Package services contains stateless domain services coordinating
// multiple aggregates. EligibilityResolver computes the ordered candidate
// list for offering an order to couriers.
package services
