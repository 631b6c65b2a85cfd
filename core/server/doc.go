// Package server holds the HTTP hook server configuration and app construction.
//
// The host mod manager can reach the lifecycle callbacks over HTTP instead of the CLI.
// NewApp installs the shared middleware chain (ray id, request logging, API key auth);
// features register their routes on the result through core/loader.
package server
