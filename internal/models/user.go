package models

type User struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	Password  string `json:"-"` // bcrypt hash
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}
