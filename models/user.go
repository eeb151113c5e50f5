package models

// User model for the console operator
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	AvatarURL string `json:"avatarUrl"`
}

// LoginResult is returned by a successful login
type LoginResult struct {
	Token string `json:"token"`
}
