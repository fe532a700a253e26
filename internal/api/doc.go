// Package api is the wire contract between the billed CLI and the bill store
// server: request and response messages, the JSON gRPC codec and the
// BillStore service descriptor together with its client and server bindings.
//
// Messages are plain Go structs encoded as JSON. Calls made through
// BillStoreClient select the codec with grpc.CallContentSubtype, so the same
// connection can still serve protobuf services such as grpc.health.v1.
package api
