// Package common contains constants and sentinel errors shared by the billed
// client and server.
package common

// AccessTokenHeaderName is the gRPC metadata key carrying the access token.
const AccessTokenHeaderName = "access_token"

// User types.
const (
	UserTypeEmployee = "Employee"
	UserTypeAdmin    = "Admin"
)

// Bill statuses.
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusRefused  = "refused"
)
