package dto

// ErrorBody is the error member of the service's uniform error envelope.
type ErrorBody struct {
	Status  int            `json:"status"`
	Name    string         `json:"name"`
	Message string         `json:"message"`
	Details map[string]any `json:"details"`
}

// ErrorResponse is the service's uniform error envelope.
type ErrorResponse struct {
	Data  any        `json:"data"`
	Error *ErrorBody `json:"error,omitempty"`
}
