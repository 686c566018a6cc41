package api

// ErrorResponse is the error wrapper shared by every endpoint.
// Success marshals as false because it is never set.
// swagger:model api.ErrorResponse
type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Error   string `json:"error" example:"Task not found"`
}

// Err builds an error envelope.
func Err(message string) ErrorResponse {
	return ErrorResponse{Error: message}
}
