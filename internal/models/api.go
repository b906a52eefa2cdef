package models

// APIError is the JSON error body returned by the HTTP API.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError with the request ID for correlation.
type ErrorResponse struct {
	Error     APIError `json:"error"`
	RequestID string   `json:"requestId,omitempty"`
}
