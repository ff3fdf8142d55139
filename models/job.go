package models

import "time"

type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusScheduled JobStatus = "scheduled"
	JobStatusCompleted JobStatus = "completed"
	JobStatusCancelled JobStatus = "cancelled"
)

// IsTerminal reports whether no further status transitions exist.
func (s JobStatus) IsTerminal() bool {
	return s == JobStatusCompleted || s == JobStatusCancelled
}

type LawnSize string

const (
	LawnSizeSmall  LawnSize = "small"
	LawnSizeMedium LawnSize = "medium"
	LawnSizeLarge  LawnSize = "large"
	LawnSizeEstate LawnSize = "estate"
)

type Frequency string

const (
	FrequencyOneOff      Frequency = "one_off"
	FrequencyWeekly      Frequency = "weekly"
	FrequencyFortnightly Frequency = "fortnightly"
	FrequencyMonthly     Frequency = "monthly"
)

// Next returns the date of the following cycle. Monthly uses calendar month
// arithmetic, so Jan 31 rolls over to early March.
func (f Frequency) Next(from time.Time) (time.Time, bool) {
	switch f {
	case FrequencyWeekly:
		return from.AddDate(0, 0, 7), true
	case FrequencyFortnightly:
		return from.AddDate(0, 0, 14), true
	case FrequencyMonthly:
		return from.AddDate(0, 1, 0), true
	default:
		return time.Time{}, false
	}
}

type PaymentStatus string

const (
	PaymentStatusUnpaid PaymentStatus = "unpaid"
	PaymentStatusPaid   PaymentStatus = "paid"
)

type Job struct {
	JobID      string `json:"jobID" dynamodbav:"jobID" validate:"omitempty,uuid4"`
	OrgID      string `json:"orgID" dynamodbav:"orgID" validate:"required"`
	CustomerID string `json:"customerID" dynamodbav:"customerID"`

	CustomerName  string    `json:"customerName" dynamodbav:"customerName" validate:"required,min=2,max=200"`
	CustomerEmail string    `json:"customerEmail,omitempty" dynamodbav:"customerEmail,omitempty"`
	CustomerPhone string    `json:"customerPhone,omitempty" dynamodbav:"customerPhone,omitempty"`
	Address       string    `json:"address" dynamodbav:"address"`
	Postcode      string    `json:"postcode,omitempty" dynamodbav:"postcode,omitempty"`
	Zone          string    `json:"zone,omitempty" dynamodbav:"zone,omitempty"`
	LawnSize      LawnSize  `json:"lawnSize" dynamodbav:"lawnSize"`
	Frequency     Frequency `json:"frequency" dynamodbav:"frequency"`
	Extras        []string  `json:"extras,omitempty" dynamodbav:"extras,omitempty"`
	Notes         string    `json:"notes,omitempty" dynamodbav:"notes,omitempty"`

	PriceQuote      float64       `json:"priceQuote" dynamodbav:"priceQuote"`
	DurationMinutes int           `json:"durationMinutes" dynamodbav:"durationMinutes"`
	PaymentStatus   PaymentStatus `json:"paymentStatus,omitempty" dynamodbav:"paymentStatus,omitempty"`

	Status             JobStatus  `json:"status" dynamodbav:"status"`
	ScheduledDate      *time.Time `json:"scheduledDate,omitempty" dynamodbav:"scheduledDate,omitempty"`
	CompletedDate      *time.Time `json:"completedDate,omitempty" dynamodbav:"completedDate,omitempty"`
	LeadSource         string     `json:"leadSource,omitempty" dynamodbav:"leadSource,omitempty"`
	RouteOrder         int        `json:"routeOrder" dynamodbav:"routeOrder"`
	RecurringFromJobID string     `json:"recurringFromJobID,omitempty" dynamodbav:"recurringFromJobID,omitempty"`

	IsTimerRunning        bool       `json:"isTimerRunning" dynamodbav:"isTimerRunning"`
	TimerStartTime        *time.Time `json:"timerStartTime,omitempty" dynamodbav:"timerStartTime,omitempty"`
	ActualDurationMinutes float64    `json:"actualDurationMinutes" dynamodbav:"actualDurationMinutes"`

	IsRainDelayed bool `json:"isRainDelayed" dynamodbav:"isRainDelayed"`

	CreatedAt time.Time `json:"createdAt" dynamodbav:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt,omitempty" dynamodbav:"updatedAt,omitempty"`
	UpdatedBy string    `json:"updatedBy,omitempty" dynamodbav:"updatedBy,omitempty"`
}

// Clone returns a deep copy so snapshots survive in-place mutation.
func (j *Job) Clone() *Job {
	if j == nil {
		return nil
	}
	c := *j
	c.Extras = append([]string(nil), j.Extras...)
	c.ScheduledDate = cloneTime(j.ScheduledDate)
	c.CompletedDate = cloneTime(j.CompletedDate)
	c.TimerStartTime = cloneTime(j.TimerStartTime)
	return &c
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

type CreateJobRequest struct {
	CustomerID      string     `json:"customerID,omitempty"`
	CustomerName    string     `json:"customerName" validate:"required,min=2,max=200"`
	CustomerEmail   string     `json:"customerEmail,omitempty" validate:"omitempty,email"`
	CustomerPhone   string     `json:"customerPhone,omitempty" validate:"omitempty,e164"`
	Address         string     `json:"address" validate:"omitempty,max=300"`
	Postcode        string     `json:"postcode,omitempty" validate:"omitempty,max=20"`
	Zone            string     `json:"zone,omitempty" validate:"omitempty,max=100"`
	LawnSize        LawnSize   `json:"lawnSize" validate:"required,oneof=small medium large estate"`
	Frequency       Frequency  `json:"frequency" validate:"required,oneof=one_off weekly fortnightly monthly"`
	Extras          []string   `json:"extras,omitempty" validate:"omitempty,max=20,dive,max=100"`
	Notes           string     `json:"notes,omitempty" validate:"omitempty,max=1000"`
	PriceQuote      float64    `json:"priceQuote" validate:"gte=0"`
	DurationMinutes int        `json:"durationMinutes" validate:"gt=0"`
	LeadSource      string     `json:"leadSource,omitempty" validate:"omitempty,max=100"`
	Status          JobStatus  `json:"status,omitempty" validate:"omitempty,oneof=pending scheduled"`
	ScheduledDate   *time.Time `json:"scheduledDate,omitempty"`
}

type UpdateJobRequest struct {
	CustomerName    string   `json:"customerName,omitempty" validate:"omitempty,min=2,max=200"`
	CustomerEmail   string   `json:"customerEmail,omitempty" validate:"omitempty,email"`
	CustomerPhone   string   `json:"customerPhone,omitempty" validate:"omitempty,e164"`
	Address         string   `json:"address,omitempty" validate:"omitempty,max=300"`
	Postcode        string   `json:"postcode,omitempty" validate:"omitempty,max=20"`
	Zone            *string  `json:"zone,omitempty" validate:"omitempty,max=100"`
	Notes           *string  `json:"notes,omitempty" validate:"omitempty,max=1000"`
	Extras          []string `json:"extras,omitempty" validate:"omitempty,max=20,dive,max=100"`
	PriceQuote      *float64 `json:"priceQuote,omitempty" validate:"omitempty,gte=0"`
	DurationMinutes *int     `json:"durationMinutes,omitempty" validate:"omitempty,gt=0"`
}

type AcceptJobRequest struct {
	ScheduledDate time.Time `json:"scheduledDate" validate:"required"`
}

type RainDelayRequest struct {
	// NewDate is optional; the next working day is used when it is absent.
	NewDate *time.Time `json:"newDate,omitempty"`
}

type ReorderRequest struct {
	Date       time.Time `json:"date" validate:"required"`
	OrderedIDs []string  `json:"orderedIDs" validate:"required,min=1,dive,required"`
}

type JobFilter struct {
	Status   JobStatus `json:"status,omitempty"`
	Zone     string    `json:"zone,omitempty"`
	FromDate time.Time `json:"fromDate,omitempty"`
	ToDate   time.Time `json:"toDate,omitempty"`
}
