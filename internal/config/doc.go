// Package config manages application configuration for the clubs API.
//
// The config package loads and validates configuration from environment variables.
// All configuration is centralized here to provide a single source of truth.
//
// # Configuration Loading
//
// Configuration is loaded from environment variables:
//
//	cfg, err := config.Load()
//	if err := cfg.Validate(); err != nil { ... }
//
// # Configuration Groups
//
//   - ServerConfig: HTTP server settings (host, port, timeouts, CORS)
//   - DatabaseConfig: SQL driver, DSN and migration behaviour
//   - JWTConfig: token signing secret, issuer and lifetime
//   - AuthConfig: bcrypt cost
//   - RateLimitConfig: per-client request budget
//   - MetricsConfig: Prometheus endpoint toggle
//
// # Environment Variables
//
// Key environment variables:
//
//	PORT              - HTTP server port (default: 4000)
//	DB_DRIVER         - sqlite or postgres (default: sqlite)
//	DB_DSN            - driver connection string
//	JWT_SECRET        - HS256 signing secret
//	JWT_EXPIRATION    - token lifetime (default: 168h)
//	LOG_LEVEL         - debug, info, warn or error
package config
