// Package services contains the server-side business logic of the bill
// store: account management and the bill lifecycle.
package services
