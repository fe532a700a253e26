// Package services contains the application services of the billed CLI:
// loading the bill listing, the new bill submission workflow and
// authentication.
package services
