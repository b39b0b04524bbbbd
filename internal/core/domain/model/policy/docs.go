// Package policy provides the DispatchPolicy singleton aggregate: the
// platform's dispatch configuration and the payout formula for completed
// deliveries.
//
// The policy controls whether orders auto-assign, the partner acceptance
// window, the eligibility rating threshold, and the payment model
// (percentage of order total or fixed amount, plus optional capped tips).
package policy
