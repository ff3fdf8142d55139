package models

// APIResponse is a generic structure for all API responses
type APIResponse struct {
	Status  string      `json:"status"`            // "success" or "error"
	Code    int         `json:"code"`              // HTTP status code
	Message string      `json:"message,omitempty"` // Human-readable message
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"` // nil on success
}

// APIError holds detailed error information
type APIError struct {
	Type    string `json:"type,omitempty"` // InvalidTransition, ValidationError, PersistenceFailure, NotFound
	Details string `json:"details,omitempty"`
	Field   string `json:"field,omitempty"`
}

// ListResponse wraps collection payloads
type ListResponse struct {
	Items interface{} `json:"items"`
	Count int         `json:"count"`
}
