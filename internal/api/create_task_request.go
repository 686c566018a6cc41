package api

// swagger:model api.CreateTaskRequest
type CreateTaskRequest struct {
	Title       string `json:"title" validate:"required,max=200" example:"Write report"`
	Description string `json:"description" validate:"omitempty" example:"Quarterly numbers"`
	Status      string `json:"status" validate:"omitempty,oneof=pending in_progress completed cancelled" example:"pending"`
}
