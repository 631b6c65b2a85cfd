// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation protecting the hook endpoints.
//   - rayid: a unique Request ID (RayID) for every incoming request, injected into the
//     context and response headers for tracing.
//
// Both are installed globally by core/server.NewApp.
package middleware
