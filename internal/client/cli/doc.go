// Package cli provides the interactive billed command-line client used by
// employees to review their expense reports and submit new bills.
//
// The REPL mirrors the screens of the employee area: commands navigate to a
// route (the bill listing or the new bill form) and the App renders whichever
// route is pending once the command returns. A background watcher pings the
// server and reports when the connection is lost or recovered.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
