// Package partner provides domain entities and business logic for delivery
// partner management. It implements the Partner aggregate root with
// eligibility rules, an incrementally maintained rating, and lifetime
// delivery counters.
//
// Key business rules:
//   - A partner is eligible for assignments only when available, active, and
//     rated at or above the configured threshold
//   - The rating is a weighted running mean of all received scores, rounded
//     to one decimal place, never recomputed from history
//   - New partners start with a rating of 5.0 and no recorded ratings
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package partner
