package api

// RegisterData is the data payload of a successful registration.
// swagger:model api.RegisterData
type RegisterData struct {
	UserID int    `json:"user_id" example:"1"`
	Email  string `json:"email" example:"alice@example.com"`
}
