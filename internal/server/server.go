// Package server assembles repositories, services, and handlers into the
// HTTP application.
package server

import (
	"net/http"
	"time"

	"github.com/forgo/clubs/api/internal/database"
	"github.com/forgo/clubs/api/internal/handler"
	"github.com/forgo/clubs/api/internal/metrics"
	"github.com/forgo/clubs/api/internal/middleware"
	"github.com/forgo/clubs/api/internal/repository"
	"github.com/forgo/clubs/api/internal/service"
	"github.com/forgo/clubs/api/pkg/jwt"
)

// Options configures New
type Options struct {
	JWTSecret      string
	JWTIssuer      string
	JWTExpiration  time.Duration
	BcryptCost     int
	AllowedOrigins []string

	RateLimit *middleware.RateLimitConfig // nil disables rate limiting
	Metrics   *metrics.Metrics            // nil disables /metrics and transition counts
}

// App is the wired application
type App struct {
	Handler http.Handler
	Auth    *service.AuthService
	Seeder  *service.SeederService

	limiter *middleware.RateLimiter
}

// New wires every layer on top of db
func New(db *database.DB, opts Options) (*App, error) {
	jwtService, err := jwt.NewService(jwt.Config{
		Secret:     opts.JWTSecret,
		Issuer:     opts.JWTIssuer,
		Expiration: opts.JWTExpiration,
	})
	if err != nil {
		return nil, err
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	clubRepo := repository.NewClubRepository(db)
	appRepo := repository.NewApplicationRepository(db)
	memberRepo := repository.NewMembershipRepository(db)
	eventRepo := repository.NewEventRepository(db)
	rsvpRepo := repository.NewRSVPRepository(db)
	seedRepo := repository.NewSeedRepository(db)

	// Services
	tokenService := service.NewTokenService(service.TokenServiceConfig{JWTService: jwtService})
	authService := service.NewAuthService(service.AuthServiceConfig{
		UserRepo:     userRepo,
		TokenService: tokenService,
		BcryptCost:   opts.BcryptCost,
	})

	var observer service.TransitionObserver
	if opts.Metrics != nil {
		observer = opts.Metrics
		opts.Metrics.RegisterDB(db.SQL(), db.Driver())
	}

	membershipService := service.NewMembershipService(service.MembershipServiceConfig{
		Tx:              db,
		ClubRepo:        clubRepo,
		ApplicationRepo: appRepo,
		MembershipRepo:  memberRepo,
		Observer:        observer,
	})
	clubService := service.NewClubService(service.ClubServiceConfig{
		ClubRepo:        clubRepo,
		ApplicationRepo: appRepo,
		MembershipRepo:  memberRepo,
		EventRepo:       eventRepo,
	})
	eventService := service.NewEventService(service.EventServiceConfig{
		Tx:             db,
		ClubRepo:       clubRepo,
		EventRepo:      eventRepo,
		RSVPRepo:       rsvpRepo,
		MembershipRepo: memberRepo,
	})
	seederService := service.NewSeederService(service.SeederServiceConfig{
		Tx:        db,
		Store:     seedRepo,
		UserRepo:  userRepo,
		ClubRepo:  clubRepo,
		EventRepo: eventRepo,
		Hasher:    authService,
	})

	var limiter *middleware.RateLimiter
	if opts.RateLimit != nil {
		limiter = middleware.NewRateLimiter(*opts.RateLimit)
	}

	router := NewRouter(RouterConfig{
		Tokens:         authService,
		Auth:           handler.NewAuthHandler(authService),
		Clubs:          handler.NewClubHandler(clubService),
		Memberships:    handler.NewMembershipHandler(membershipService),
		Events:         handler.NewEventHandler(eventService),
		Health:         handler.NewHealthHandler(db),
		Metrics:        opts.Metrics,
		RateLimiter:    limiter,
		AllowedOrigins: opts.AllowedOrigins,
	})

	return &App{
		Handler: router,
		Auth:    authService,
		Seeder:  seederService,
		limiter: limiter,
	}, nil
}

// Close stops background work started by New
func (a *App) Close() {
	if a.limiter != nil {
		a.limiter.Stop()
	}
}
