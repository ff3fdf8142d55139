package models

import "time"

type SystemEvent string

const (
	EventLeadCreated        SystemEvent = "lead_created"
	EventJobCreated         SystemEvent = "job_created"
	EventStatusChanged      SystemEvent = "status_changed"
	EventRecurrenceCreated  SystemEvent = "recurrence_created"
	EventRainDelayed        SystemEvent = "rain_delayed"
	EventPaymentChanged     SystemEvent = "payment_changed"
	EventRainDelaySuggested SystemEvent = "rain_delay_suggested"
)

// SystemLog is the audit record behind the communications log.
type SystemLog struct {
	LogID      string      `json:"logID" dynamodbav:"logID"`
	OrgID      string      `json:"orgID" dynamodbav:"orgID"`
	CustomerID string      `json:"customerID,omitempty" dynamodbav:"customerID,omitempty"`
	JobID      string      `json:"jobID,omitempty" dynamodbav:"jobID,omitempty"`
	Event      SystemEvent `json:"event" dynamodbav:"event"`
	OldStatus  JobStatus   `json:"oldStatus,omitempty" dynamodbav:"oldStatus,omitempty"`
	NewStatus  JobStatus   `json:"newStatus,omitempty" dynamodbav:"newStatus,omitempty"`
	Message    string      `json:"message,omitempty" dynamodbav:"message,omitempty"`
	CreatedAt  time.Time   `json:"createdAt" dynamodbav:"createdAt"`
}
