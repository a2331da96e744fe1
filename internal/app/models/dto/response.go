package dto

import "time"

// APIResponse is the standard success envelope for API endpoints.
type APIResponse struct {
	Data      interface{}  `json:"data,omitempty"`
	Message   string       `json:"message,omitempty" example:"Enrollment successful!"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Timestamp time.Time    `json:"timestamp" example:"2025-04-23T12:01:05.123Z"`
}

// NewAPIResponse creates a success envelope with data and a flash-style message.
func NewAPIResponse(data interface{}, message string) APIResponse {
	return APIResponse{
		Data:      data,
		Message:   message,
		Timestamp: time.Now(),
	}
}
