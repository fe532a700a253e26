// Package models defines server-side data models persisted in the database.
package models

import "time"

// Bill is a stored expense report line. FileKey is the object-storage key of
// the attachment; it and FileName stay nil until a file has been uploaded.
type Bill struct {
	ID           string
	Email        string
	Type         string
	Name         string
	Amount       int
	Date         string
	Vat          string
	Pct          int
	Commentary   string
	CommentAdmin string
	FileKey      *string
	FileName     *string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
