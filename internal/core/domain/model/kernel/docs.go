// Package kernel provides core domain primitives for the dispatch system.
// It implements the fundamental value objects used throughout the domain model:
//
//   - UUID: a validated unique identifier with comparison capabilities
//   - Money: a fixed-point monetary amount for totals, tips, fees, and earnings
//
// These primitives enforce domain invariants at construction time and are
// immutable, making them safe for concurrent use. The zero value of each type
// is invalid and must be replaced through the provided factory functions.
package kernel
