// Package models defines the client-side data model of the billed CLI.
package models

// Bill is an expense report line as shown to and submitted by an employee.
// Date holds the stored YYYY-MM-DD value, or its short display form once the
// bill has gone through the list loader.
type Bill struct {
	ID           string  `json:"id,omitempty"`
	Email        string  `json:"email"`
	Type         string  `json:"type"`
	Name         string  `json:"name"`
	Amount       int     `json:"amount"`
	Date         string  `json:"date"`
	Vat          string  `json:"vat"`
	Pct          int     `json:"pct"`
	Commentary   string  `json:"commentary"`
	CommentAdmin string  `json:"commentAdmin,omitempty"`
	FileURL      *string `json:"fileUrl"`
	FileName     *string `json:"fileName"`
	Status       string  `json:"status"`
}

// BillFile is the attachment picked in the new bill form.
type BillFile struct {
	Name        string
	ContentType string
	Content     []byte
}

// Expense categories offered by the new bill form.
var BillTypes = []string{
	"Transports",
	"Restaurants et bars",
	"Hôtel et logement",
	"Services en ligne",
	"IT et électronique",
	"Equipement et matériel",
	"Fournitures de bureau",
}
