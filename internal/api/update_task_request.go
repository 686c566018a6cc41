package api

// UpdateTaskRequest carries a partial update; absent fields keep their
// current values.
// swagger:model api.UpdateTaskRequest
type UpdateTaskRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=200" example:"Write report"`
	Description *string `json:"description" validate:"omitempty" example:"Quarterly numbers"`
	Status      *string `json:"status" validate:"omitempty,oneof=pending in_progress completed cancelled" example:"completed"`
}
