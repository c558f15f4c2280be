// Package server holds the HTTP server configuration.
//
// The start command owns the fiber app itself; this package only defines the
// listen port, the API key and the timeout applied to reconciliations that
// are triggered over HTTP.
package server
