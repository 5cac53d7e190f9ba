package model

// User is an account in the simulated user table. Password is kept in clear
// text by the backend (it only ever lives in local durable storage) and must
// be stripped before a user is put on the wire.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
}

// WithoutPassword returns a copy safe to include in a response body.
func (u User) WithoutPassword() User {
	u.Password = ""
	return u
}
