package models

// Route names a screen of the employee area.
type Route string

const (
	RouteLogin   Route = "#"
	RouteBills   Route = "#employee/bills"
	RouteNewBill Route = "#employee/bill/new"
)

// Navigator moves the UI to another screen.
type Navigator interface {
	Navigate(route Route)
}
