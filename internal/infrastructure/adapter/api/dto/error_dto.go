package dto

// ErrorResponse represents a standardized error response for the API
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// StatusResponse is the minimal acknowledgement body
type StatusResponse struct {
	Status string `json:"status"`
}
