package dto

// APIResponse is the envelope of every JSON response: exactly one of Data or Error is set
type APIResponse struct {
	Data  interface{}  `json:"data,omitempty"`
	Error *ErrorDetail `json:"error,omitempty"`
}

// SuccessResponse represents a standard success response for API endpoints
type SuccessResponse struct {
	Message string `json:"message"`
}

// DeletedResponse confirms a delete and echoes the removed id
type DeletedResponse struct {
	Message string `json:"message" example:"Goal deleted successfully"`
	ID      int64  `json:"id" example:"1"`
}

// HealthResponse is returned by the liveness endpoint
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}
