// Package server holds the HTTP server configuration.
//
// The review server started by the serve command exposes the latest scan output
// read-only. It never deletes anything; deletion is only reachable through the
// destroy command.
//
// # Configuration
//
// The Config struct defines the bind host, the HTTP port and the API key that
// protects every route.
package server
