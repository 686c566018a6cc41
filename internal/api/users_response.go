package api

// UsersData is the data payload of the admin user listing.
// swagger:model api.UsersData
type UsersData struct {
	Users []UserResponse `json:"users"`
	Total int            `json:"total" example:"3"`
}
