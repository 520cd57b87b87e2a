package models

// User represents a row in the "users" table. Password holds a bcrypt
// hash, never the plaintext.
type User struct {
	ID       int64
	Email    string
	Username string
	Password string
}

// Credentials is what a successful login hands back to the caller.
type Credentials struct {
	ID       int64
	Username string
}
