// Package assignment contains the AssignmentAttempt aggregate: one
// courier's time-boxed offer to fulfill an order.
//
// At most one attempt per order is pending at any time. An attempt is
// settled exactly once, by explicit acceptance, explicit rejection, or
// acceptance-window expiry, whichever happens first. Settlement is a
// single atomic transition from the pending outcome; the losing actor of
// a race receives ErrAlreadySettled. Attempt history is retained for audit
// and drives courier exclusion in later eligibility queries.
package assignment
