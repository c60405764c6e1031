package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/forgo/clubs/api/internal/model"
)

// TokenValidator verifies a bearer token and returns the caller it encodes
type TokenValidator interface {
	ValidateAccessToken(token string) (*model.Identity, error)
}

// IdentityKey is the context key for the authenticated caller
const IdentityKey contextKey = "identity"

// Auth returns a middleware that requires a valid bearer token.
// Missing headers and any token failure answer 401; the decoded identity is
// stored on the request context for handlers.
func Auth(validator TokenValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				model.NewUnauthorizedError("Missing Authorization header").WriteJSON(w)
				return
			}

			token, ok := bearerToken(authHeader)
			if !ok {
				model.NewUnauthorizedError("Invalid or expired token").WriteJSON(w)
				return
			}

			identity, err := validator.ValidateAccessToken(token)
			if err != nil || identity == nil {
				model.NewUnauthorizedError("Invalid or expired token").WriteJSON(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), *identity)))
		})
	}
}

// OwnerOnly rejects callers whose role is not owner. It must run after Auth.
func OwnerOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := GetIdentity(r.Context())
		if !ok {
			model.NewUnauthorizedError("Missing Authorization header").WriteJSON(w)
			return
		}
		if !identity.IsOwner() {
			model.NewForbiddenError("Owner access required").WriteJSON(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// bearerToken splits "Bearer <token>", accepting any case for the scheme
func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// WithIdentity returns a context carrying the authenticated caller
func WithIdentity(ctx context.Context, identity model.Identity) context.Context {
	ctx = context.WithValue(ctx, IdentityKey, identity)
	return context.WithValue(ctx, UserIDKey, identity.ID)
}

// GetIdentity extracts the authenticated caller from context
func GetIdentity(ctx context.Context) (model.Identity, bool) {
	identity, ok := ctx.Value(IdentityKey).(model.Identity)
	return identity, ok
}

// GetUserID extracts the authenticated user ID from context, or 0
func GetUserID(ctx context.Context) int64 {
	if id, ok := ctx.Value(UserIDKey).(int64); ok {
		return id
	}
	return 0
}
