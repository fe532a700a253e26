// Package client is the CLI side of the bill store transport. It defines the
// Store capability consumed by the services (a bills collection with List,
// Create and Update) and GRPCClient, its gRPC implementation, which also
// carries authentication and connectivity checks.
package client
