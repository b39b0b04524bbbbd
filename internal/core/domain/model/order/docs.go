// Package order provides domain entities and business logic for the delivery
// lifecycle of an order. It implements the Order aggregate root with partner
// assignment, state transitions, tracking history, and post-delivery rating.
//
// The package includes:
//   - Order: The aggregate root that manages assignment state, timestamps, and history
//   - DeliveryStatus: A state machine that enforces valid assignment transitions
//   - Status: The customer-facing order status mirrored from delivery progress
//   - TrackingNote: An immutable entry in the order's delivery history
//
// Key business rules:
//   - An order has an assigned partner if and only if its delivery status is not None
//   - Delivery status follows a defined workflow: None -> Assigned -> Accepted -> PickedUp -> Delivered
//   - Rejection and timeout return an Assigned order to the unassigned pool
//   - Lifecycle timestamps are set exactly once and in order
//   - A delivery is rated at most once, and only after completion
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
