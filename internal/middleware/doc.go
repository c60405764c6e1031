// Package middleware provides HTTP middleware for the clubs API.
//
// # Available Middleware
//
//   - RequestID: assigns or propagates X-Request-ID
//   - Logger: one structured slog line per request
//   - Recovery: turns panics into a JSON 500
//   - CORS: origin allow-list and preflight handling
//   - RateLimit: per-client token buckets (golang.org/x/time/rate)
//   - Auth: bearer token verification
//   - OwnerOnly: 403 unless the authenticated caller is an owner
//
// # Authentication
//
// Auth decodes the caller once and stores a model.Identity on the request
// context. Handlers read it back explicitly:
//
//	identity, ok := middleware.GetIdentity(r.Context())
//
// Owner routes compose both gates:
//
//	middleware.Chain(h, middleware.Auth(tokens), middleware.OwnerOnly)
//
// # Rate Limiting
//
// RateLimit keys buckets by authenticated user ID when Auth ran first,
// otherwise by remote IP. Rejections answer 429 with Retry-After.
package middleware
