// Package handler provides HTTP request handlers for the clubs API.
//
// Each handler struct depends on a small interface describing the service
// calls it makes, so handlers are tested against mocks and wired to the
// concrete services in cmd/server.
//
// # Handler Pattern
//
//   - Constructor function (NewXxxHandler) accepts the service interface
//   - Methods handle one route each; path IDs come from r.PathValue
//   - The caller is read from the request context set by middleware.Auth
//   - Service errors go through MapServiceError, which owns every status
//     code and client-visible message
//
// # Response Format
//
// Success bodies are the resource itself or {"message": "..."}. Errors are
// {"error": "...", "code": "...", "fields": [...]}. Empty collections are
// always encoded as [].
package handler
