package http

// Request and response payloads for the dispatch HTTP API. Request bodies are
// bound via echo and checked with validator/v10 before reaching the use cases.

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateOrderRequest carries the amounts for a new order.
type CreateOrderRequest struct {
	Total       float64 `json:"total"        validate:"required,gt=0"`
	TipAmount   float64 `json:"tip_amount"   validate:"gte=0"`
	DeliveryFee float64 `json:"delivery_fee" validate:"gte=0"`
}

// CreateOrderResponse reports the new order and the immediate assignment outcome.
type CreateOrderResponse struct {
	OrderID  string `json:"order_id"`
	Assigned bool   `json:"assigned"`
}

// AssignResponse reports an assignment attempt. Reason is set when no
// assignment happened for an expected cause (pool empty, assignment disabled).
type AssignResponse struct {
	Assigned bool   `json:"assigned"`
	Reason   string `json:"reason,omitempty"`
}

// CreatePartnerRequest registers a delivery partner profile.
type CreatePartnerRequest struct {
	UserID string `json:"user_id" validate:"required,uuid"`
	Name   string `json:"name"    validate:"required"`
}

// CreatePartnerResponse returns the new partner identifier.
type CreatePartnerResponse struct {
	PartnerID string `json:"partner_id"`
}

// SetAvailabilityRequest toggles a partner's availability flag.
type SetAvailabilityRequest struct {
	IsAvailable *bool `json:"is_available" validate:"required"`
}

// RejectResponse reports whether the rejected order was returned to the pool.
type RejectResponse struct {
	Reassigned bool `json:"reassigned"`
}

// UpdateDeliveryStatusRequest advances an accepted delivery.
type UpdateDeliveryStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=picked_up delivered"`
	Notes  string `json:"notes"`
}

// RateDeliveryRequest records the customer's rating for a delivered order.
type RateDeliveryRequest struct {
	Rating int    `json:"rating" validate:"required,min=1,max=5"`
	Review string `json:"review"`
}

// DeliveryResponse is one in-flight delivery in a partner's list.
type DeliveryResponse struct {
	OrderID        string  `json:"order_id"`
	DeliveryStatus string  `json:"delivery_status"`
	Status         string  `json:"status"`
	Total          float64 `json:"total"`
	TipAmount      float64 `json:"tip_amount"`
	DeliveryFee    float64 `json:"delivery_fee"`
	AssignedAt     *string `json:"assigned_at,omitempty"`
	AcceptedAt     *string `json:"accepted_at,omitempty"`
	PickedUpAt     *string `json:"picked_up_at,omitempty"`
}

// EarningsDeliveryResponse is one completed delivery in the earnings report.
type EarningsDeliveryResponse struct {
	OrderID     string  `json:"order_id"`
	Earnings    float64 `json:"earnings"`
	TipAmount   float64 `json:"tip_amount"`
	CompletedAt *string `json:"completed_at,omitempty"`
}

// EarningsResponse aggregates a partner's lifetime counters with recent deliveries.
type EarningsResponse struct {
	PartnerID       string                     `json:"partner_id"`
	TotalDeliveries int                        `json:"total_deliveries"`
	TotalEarnings   float64                    `json:"total_earnings"`
	Rating          float64                    `json:"rating"`
	TotalRatings    int                        `json:"total_ratings"`
	Deliveries      []EarningsDeliveryResponse `json:"deliveries"`
}

// StatsResponse carries the dispatch counters.
type StatsResponse struct {
	TotalPartners     int `json:"total_partners"`
	AvailablePartners int `json:"available_partners"`
	PendingOrders     int `json:"pending_orders"`
	CompletedToday    int `json:"completed_today"`
}

// DeliveryConfigDTO is the dispatch policy as exposed over HTTP. Used both
// for reading the current configuration and for amending it.
type DeliveryConfigDTO struct {
	AutoAssignmentEnabled    *bool   `json:"auto_assignment_enabled"    validate:"required"`
	AssignmentTimeoutMinutes int     `json:"assignment_timeout_minutes" validate:"required,min=1,max=60"`
	PartnerRatingThreshold   float64 `json:"partner_rating_threshold"   validate:"gte=0,lte=5"`
	PaymentType              string  `json:"payment_type"               validate:"required,oneof=percentage fixed"`
	PaymentValue             float64 `json:"payment_value"              validate:"required,gt=0"`
	TipEnabled               *bool   `json:"tip_enabled"                validate:"required"`
	MaxTipAmount             float64 `json:"max_tip_amount"             validate:"gte=0"`
	DeliveryFee              float64 `json:"delivery_fee"               validate:"gte=0"`
	MaxDeliveryRadiusKm      float64 `json:"max_delivery_radius_km"     validate:"required,gt=0"`
}
