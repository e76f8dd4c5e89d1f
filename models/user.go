package models

// User is an account that can own tasks. The password holds a bcrypt
// hash and is never serialized.
type User struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"-"`
	Admin    bool   `json:"admin"`
}

// NewUser carries the column values for an insert; Password is the
// already hashed credential.
type NewUser struct {
	Name     string
	Username string
	Password string
	Admin    bool
}
