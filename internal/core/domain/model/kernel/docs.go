// Package kernel contains shared value objects used across all domain
// aggregates: strongly typed identifiers and the service area value object.
//
// Everything in this package is immutable. Value objects validate
// themselves on construction and expose a Validate method for use when
// reconstructing aggregates from persistence.
package kernel
