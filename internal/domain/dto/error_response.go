package dto

import "time"

// ErrorResponse is the JSON body of every non-2xx API response.
//
// Fields:
//   - Message: short, user-facing description.
//   - ErrorDetails: underlying error text, when there is one.
//   - Timestamp: UTC time the error was produced.
type ErrorResponse struct {
	Message      string    `json:"message" example:"invalid chart kind"`
	ErrorDetails string    `json:"error,omitempty" example:"unknown chart kind: \"pie\""`
	Timestamp    time.Time `json:"timestamp" example:"2025-01-02T15:04:05Z"`
}

// Error makes ErrorResponse usable as an error value.
func (e ErrorResponse) Error() string {
	if e.ErrorDetails == "" {
		return e.Message
	}
	return e.Message + ": " + e.ErrorDetails
}

// NewErrorResponse builds an ErrorResponse stamped with the current time.
// A nil err leaves ErrorDetails empty.
func NewErrorResponse(message string, err error) ErrorResponse {
	resp := ErrorResponse{Message: message, Timestamp: time.Now().UTC()}
	if err != nil {
		resp.ErrorDetails = err.Error()
	}
	return resp
}
