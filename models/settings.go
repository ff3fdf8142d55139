package models

import "time"

// BusinessSettings is the per-organization pricing, schedule and weather configuration.
type BusinessSettings struct {
	OrgID string `json:"orgID" dynamodbav:"orgID"`

	// Pricing
	Prices             SizePrices        `json:"prices" dynamodbav:"prices"`
	ExtraPrices        ExtraPrices       `json:"extraPrices" dynamodbav:"extraPrices"`
	FrequencyDiscounts FrequencyDiscount `json:"frequencyDiscounts" dynamodbav:"frequencyDiscounts"`
	UseAreaPricing     bool              `json:"useAreaPricing" dynamodbav:"useAreaPricing"`
	PricePerSqMetre    float64           `json:"pricePerSqMetre" dynamodbav:"pricePerSqMetre" validate:"gte=0"`

	// Deterministic surcharges, off unless ApplySurcharges is set
	ApplySurcharges            bool    `json:"applySurcharges" dynamodbav:"applySurcharges"`
	OvergrownDurationThreshold int     `json:"overgrownDurationThreshold" dynamodbav:"overgrownDurationThreshold" validate:"gte=0"`
	OvergrownSurcharge         float64 `json:"overgrownSurcharge" dynamodbav:"overgrownSurcharge" validate:"gte=0"`
	FuelSurchargeRadiusKm      float64 `json:"fuelSurchargeRadiusKm" dynamodbav:"fuelSurchargeRadiusKm" validate:"gte=0"`
	FuelSurcharge              float64 `json:"fuelSurcharge" dynamodbav:"fuelSurcharge" validate:"gte=0"`

	AutoCreateRecurring bool `json:"autoCreateRecurring" dynamodbav:"autoCreateRecurring"`

	// Schedule window
	ScheduleStartHour int    `json:"scheduleStartHour" dynamodbav:"scheduleStartHour" validate:"gte=0,lte=23"`
	ScheduleEndHour   int    `json:"scheduleEndHour" dynamodbav:"scheduleEndHour" validate:"gte=1,lte=24,gtfield=ScheduleStartHour"`
	WorkingDays       uint8  `json:"workingDays" dynamodbav:"workingDays" validate:"lte=127"`
	HolidayRegion     string `json:"holidayRegion,omitempty" dynamodbav:"holidayRegion,omitempty" validate:"omitempty,oneof=gb us none"`
	TimeZone          string `json:"timeZone,omitempty" dynamodbav:"timeZone,omitempty"`

	// Weather
	WeatherCity             string              `json:"weatherCity,omitempty" dynamodbav:"weatherCity,omitempty" validate:"omitempty,max=100"`
	Mowability              MowabilityThreshold `json:"mowability" dynamodbav:"mowability"`
	RainDelayScoreThreshold int                 `json:"rainDelayScoreThreshold" dynamodbav:"rainDelayScoreThreshold" validate:"gte=0,lte=100"`

	UpdatedAt time.Time `json:"updatedAt,omitempty" dynamodbav:"updatedAt,omitempty"`
	UpdatedBy string    `json:"updatedBy,omitempty" dynamodbav:"updatedBy,omitempty"`
}

type SizePrices struct {
	Small  float64 `json:"small" dynamodbav:"small" validate:"gte=0"`
	Medium float64 `json:"medium" dynamodbav:"medium" validate:"gte=0"`
	Large  float64 `json:"large" dynamodbav:"large" validate:"gte=0"`
	Estate float64 `json:"estate" dynamodbav:"estate" validate:"gte=0"`
}

type ExtraPrices struct {
	Fertilizer  float64 `json:"fertilizer" dynamodbav:"fertilizer" validate:"gte=0"`
	Edging      float64 `json:"edging" dynamodbav:"edging" validate:"gte=0"`
	Weeding     float64 `json:"weeding" dynamodbav:"weeding" validate:"gte=0"`
	LeafCleanup float64 `json:"leafCleanup" dynamodbav:"leafCleanup" validate:"gte=0"`
}

// FrequencyDiscount holds percentages (0-100).
type FrequencyDiscount struct {
	Weekly      float64 `json:"weekly" dynamodbav:"weekly" validate:"gte=0,lte=100"`
	Fortnightly float64 `json:"fortnightly" dynamodbav:"fortnightly" validate:"gte=0,lte=100"`
	Monthly     float64 `json:"monthly" dynamodbav:"monthly" validate:"gte=0,lte=100"`
}

type MowabilityThreshold struct {
	MaxRainChance float64 `json:"maxRainChance" dynamodbav:"maxRainChance" validate:"gte=0,lte=100"`
	MaxWindKmh    float64 `json:"maxWindKmh" dynamodbav:"maxWindKmh" validate:"gte=0"`
	MinTempC      float64 `json:"minTempC" dynamodbav:"minTempC"`
	MaxTempC      float64 `json:"maxTempC" dynamodbav:"maxTempC" validate:"gtfield=MinTempC"`
}

// IsWorkingDay reports whether the weekday bit is set.
func (s *BusinessSettings) IsWorkingDay(d time.Weekday) bool {
	return s.WorkingDays&(1<<uint(d)) != 0
}

// WorkingDayMask builds a WorkingDays bitset from weekdays.
func WorkingDayMask(days ...time.Weekday) uint8 {
	var mask uint8
	for _, d := range days {
		mask |= 1 << uint(d)
	}
	return mask
}
