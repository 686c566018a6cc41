package api

// swagger:model api.Pagination
type Pagination struct {
	Total int `json:"total" example:"42"`
	Page  int `json:"page" example:"1"`
	Limit int `json:"limit" example:"10"`
	Pages int `json:"pages" example:"5"`
}

// TaskListData is the data payload of the paginated task listing.
// swagger:model api.TaskListData
type TaskListData struct {
	Tasks      []TaskResponse `json:"tasks"`
	Pagination Pagination     `json:"pagination"`
}

// AdminTaskListData is the data payload of the admin-wide task listing.
// swagger:model api.AdminTaskListData
type AdminTaskListData struct {
	Tasks []TaskResponse `json:"tasks"`
	Total int            `json:"total" example:"42"`
}
