package models

import "time"

// DailyForecast is one day of provider data.
type DailyForecast struct {
	Date          time.Time `json:"date"`
	TempC         float64   `json:"tempC"`
	RainChancePct float64   `json:"rainChancePct"`
	WindKmh       float64   `json:"windKmh"`
	HumidityPct   float64   `json:"humidityPct"`
	Condition     string    `json:"condition"`
}

type DayOutlook struct {
	DailyForecast
	Score int `json:"score"`
}

// Outlook is what the API returns; Available=false means the provider could not be reached.
type Outlook struct {
	City      string       `json:"city"`
	Available bool         `json:"available"`
	Days      []DayOutlook `json:"days,omitempty"`
}
