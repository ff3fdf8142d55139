package models

// DraftMessage is a customer message prepared for a job
type DraftMessage struct {
	JobID  string `json:"jobID"`
	Kind   string `json:"kind"`
	Text   string `json:"text"`
	Source string `json:"source"` // "ai" or "template"
	Sent   bool   `json:"sent"`
}

type ETARequest struct {
	Minutes int  `json:"minutes" validate:"required,gt=0,lte=600"`
	Send    bool `json:"send"`
}

// OptimizeResult reports a suggested route order and whether it was applied
type OptimizeResult struct {
	Applied bool         `json:"applied"`
	Reason  string       `json:"reason,omitempty"`
	Result  *BatchResult `json:"result"`
}
