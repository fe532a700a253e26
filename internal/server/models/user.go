package models

import "time"

type User struct {
	ID           string
	Email        string
	PasswordHash []byte
	Type         string
	CreatedAt    time.Time
}
