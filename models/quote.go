package models

type QuoteRequest struct {
	LawnSize   LawnSize  `json:"lawnSize,omitempty" validate:"omitempty,oneof=small medium large estate"`
	LawnArea   float64   `json:"lawnArea,omitempty" validate:"omitempty,gte=0"`
	Frequency  Frequency `json:"frequency" validate:"required,oneof=one_off weekly fortnightly monthly"`
	Extras     []string  `json:"extras,omitempty" validate:"omitempty,max=20,dive,max=100"`
	Address    string    `json:"address,omitempty" validate:"omitempty,max=300"`
	Postcode   string    `json:"postcode,omitempty" validate:"omitempty,max=20"`
	DistanceKm float64   `json:"distanceKm,omitempty" validate:"omitempty,gte=0"`
}

type PriceBreakdown struct {
	Base       float64 `json:"base"`
	Extras     float64 `json:"extras"`
	Surcharges float64 `json:"surcharges"`
	Discount   float64 `json:"discount"`
}

type QuoteResponse struct {
	EstimatedPrice           float64        `json:"estimatedPrice"`
	EstimatedDurationMinutes int            `json:"estimatedDurationMinutes"`
	Explanation              string         `json:"explanation"`
	PriceBreakdown           PriceBreakdown `json:"priceBreakdown"`
}

// BookingRequest is submitted from the public booking form and becomes a pending lead.
type BookingRequest struct {
	QuoteRequest
	CustomerName  string `json:"customerName" validate:"required,min=2,max=200"`
	CustomerEmail string `json:"customerEmail" validate:"required,email"`
	CustomerPhone string `json:"customerPhone,omitempty" validate:"omitempty,e164"`
	Notes         string `json:"notes,omitempty" validate:"omitempty,max=1000"`
}
