package model

// User is a placeholder account record. No endpoint exposes it yet.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"`
}

// UserInput carries the fields accepted when creating a user.
type UserInput struct {
	Username string
	Password string
}
