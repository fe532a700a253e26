package models

// User is the identity kept in the local session under the "user" key.
type User struct {
	Email string `json:"email"`
	Type  string `json:"type"`
}
