package api

import "time"

// swagger:model api.TaskResponse
type TaskResponse struct {
	ID          int       `json:"id" example:"1"`
	Title       string    `json:"title" example:"Write report"`
	Description string    `json:"description" example:"Quarterly numbers"`
	Status      string    `json:"status" example:"pending"`
	UserID      int       `json:"user_id" example:"1"`
	CreatedAt   time.Time `json:"created_at" example:"2025-05-01T15:04:05Z"`
	UpdatedAt   time.Time `json:"updated_at" example:"2025-05-01T15:04:05Z"`
}
