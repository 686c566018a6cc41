package api

// Envelope is the success wrapper shared by every endpoint.
// swagger:model api.Envelope
type Envelope struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"Tasks retrieved successfully"`
	Data    any    `json:"data,omitempty"`
}

// OK builds a success envelope; data may be nil.
func OK(message string, data any) Envelope {
	return Envelope{Success: true, Message: message, Data: data}
}
