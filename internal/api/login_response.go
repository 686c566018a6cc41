package api

// LoginData is the data payload of a successful login.
// swagger:model api.LoginData
type LoginData struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
