package services

import (
	"errors"
	"fmt"
)

// InvalidFileFormatMessage is shown when the attached file is not an image.
const InvalidFileFormatMessage = "Format invalide, veuillez uploader une image en format jpeg, jpg ou png"

// ErrNoSession is returned by operations that need the logged-in user's
// email when nobody is logged in.
var ErrNoSession = errors.New("no active session")

// ValidationError reports input rejected locally, before any store call.
// Message is meant for the user.
type ValidationError struct {
	Field   string
	Value   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Message)
}

// StoreError wraps a failed store call.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// MalformedDataError reports a stored value that could not be interpreted.
type MalformedDataError struct {
	BillID string
	Field  string
	Value  string
	Err    error
}

func (e *MalformedDataError) Error() string {
	return fmt.Sprintf("bill %s: malformed %s %q: %v", e.BillID, e.Field, e.Value, e.Err)
}

func (e *MalformedDataError) Unwrap() error { return e.Err }
