package server

import (
	"net/http"

	"github.com/forgo/clubs/api/internal/handler"
	"github.com/forgo/clubs/api/internal/metrics"
	"github.com/forgo/clubs/api/internal/middleware"
)

// RouterConfig holds everything the route table needs
type RouterConfig struct {
	Tokens         middleware.TokenValidator
	Auth           *handler.AuthHandler
	Clubs          *handler.ClubHandler
	Memberships    *handler.MembershipHandler
	Events         *handler.EventHandler
	Health         *handler.HealthHandler
	Metrics        *metrics.Metrics        // Optional; nil disables /metrics
	RateLimiter    *middleware.RateLimiter // Optional; nil disables limiting
	AllowedOrigins []string
}

// NewRouter builds the HTTP handler: API routes under /api, operational
// routes at the root, and the global middleware chain.
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	limit := func(h http.Handler) http.Handler { return h }
	if cfg.RateLimiter != nil {
		limit = middleware.RateLimit(cfg.RateLimiter)
	}
	auth := middleware.Auth(cfg.Tokens)

	public := func(h http.HandlerFunc) http.Handler {
		return middleware.Chain(h, limit)
	}
	authed := func(h http.HandlerFunc) http.Handler {
		return middleware.Chain(h, auth, limit)
	}
	owner := func(h http.HandlerFunc) http.Handler {
		return middleware.Chain(h, auth, limit, middleware.OwnerOnly)
	}

	// Operational endpoints
	mux.HandleFunc("GET /health", cfg.Health.Health)
	if cfg.Metrics != nil {
		mux.Handle("GET /metrics", cfg.Metrics.Handler())
	}

	// Auth endpoints (public)
	mux.Handle("POST /api/auth/register", public(cfg.Auth.Register))
	mux.Handle("POST /api/auth/login", public(cfg.Auth.Login))
	mux.Handle("GET /api/me", authed(cfg.Auth.Me))

	// Browsing and joining
	mux.Handle("GET /api/clubs", authed(cfg.Clubs.List))
	mux.Handle("GET /api/clubs/{id}", authed(cfg.Clubs.Get))
	mux.Handle("POST /api/clubs/{id}/join", authed(cfg.Memberships.Join))
	mux.Handle("POST /api/clubs/{id}/withdraw", authed(cfg.Memberships.Withdraw))
	mux.Handle("POST /api/clubs/{id}/leave", authed(cfg.Memberships.Leave))
	mux.Handle("GET /api/my/applications", authed(cfg.Clubs.MyApplications))
	mux.Handle("GET /api/my/schedule", authed(cfg.Clubs.MySchedule))
	mux.Handle("POST /api/events/{id}/rsvp", authed(cfg.Events.RSVP))

	// Owner endpoints
	mux.Handle("GET /api/owner/clubs", owner(cfg.Clubs.ListOwned))
	mux.Handle("GET /api/owner/clubs/{id}", owner(cfg.Clubs.GetOwned))
	mux.Handle("PUT /api/owner/clubs/{id}", owner(cfg.Clubs.Update))
	mux.Handle("GET /api/owner/clubs/{id}/applications", owner(cfg.Memberships.ListApplications))
	mux.Handle("PATCH /api/owner/applications/{id}", owner(cfg.Memberships.UpdateApplicationStatus))
	mux.Handle("GET /api/owner/clubs/{id}/members", owner(cfg.Memberships.ListMembers))
	mux.Handle("DELETE /api/owner/clubs/{id}/members/{memberId}", owner(cfg.Memberships.RemoveMember))
	mux.Handle("GET /api/owner/clubs/{id}/events", owner(cfg.Events.ListForClub))
	mux.Handle("POST /api/owner/clubs/{id}/events", owner(cfg.Events.Create))
	mux.Handle("PUT /api/owner/events/{id}", owner(cfg.Events.Update))
	mux.Handle("DELETE /api/owner/events/{id}", owner(cfg.Events.Delete))
	mux.Handle("GET /api/owner/events/{id}/rsvps", owner(cfg.Events.ListRSVPs))

	var routed http.Handler = mux
	if cfg.Metrics != nil {
		routed = cfg.Metrics.Middleware(mux)
	}

	return middleware.Chain(
		routed,
		middleware.RequestID,
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(cfg.AllowedOrigins),
	)
}
