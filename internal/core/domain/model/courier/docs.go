// Package courier contains the Courier aggregate.
//
// Couriers are read-mostly from the orchestration core's point of view:
// admin operations mutate them, the eligibility resolver consumes them.
// A courier can receive offers when it is active, not blacklisted, and
// covers the order's service area.
package courier
