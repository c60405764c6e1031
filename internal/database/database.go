// Package database provides the SQL access layer for the clubs API.
//
// A DB wraps a sqlx connection pool for one of two drivers: the pure-Go
// SQLite driver (modernc.org/sqlite) used for development and tests, or
// Postgres (lib/pq). Repositories write queries with '?' placeholders and
// rebind them for the active driver.
//
// # Transaction Support
//
// Transactions are carried on the context. WithTx begins a transaction and
// passes a derived context to the callback; any repository call that obtains
// its Querier from that context joins the transaction:
//
//	err := db.WithTx(ctx, func(ctx context.Context) error {
//	    if err := apps.UpdateStatus(ctx, id, status); err != nil {
//	        return err
//	    }
//	    return members.Ensure(ctx, clubID, userID)
//	})
//
// A nested WithTx joins the outer transaction. Returning an error (or
// panicking) rolls back; returning nil commits.
//
// # Error Handling
//
// Standard errors are defined for common failure cases:
//   - ErrNotFound: Record does not exist
//   - ErrDuplicate: Unique constraint violation
//   - ErrConnection: Database connection issues
//   - ErrQuery: Query execution failures
//
// Use errors.Is() to check error types:
//
//	if errors.Is(err, database.ErrNotFound) {
//	    // Handle missing record
//	}
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Supported drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Standard errors for database operations.
// Use errors.Is() to check these error types in calling code.
var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate indicates a unique constraint violation (e.g., duplicate email).
	ErrDuplicate = errors.New("duplicate record")

	// ErrConnection indicates a failure to connect to or communicate with the database.
	ErrConnection = errors.New("database connection error")

	// ErrQuery indicates a query execution failure (syntax error, invalid reference, etc.).
	ErrQuery = errors.New("query error")

	// ErrUnsupportedDriver indicates a driver name other than sqlite or postgres.
	ErrUnsupportedDriver = errors.New("unsupported database driver")
)

// Querier is the query surface shared by *sqlx.DB and *sqlx.Tx.
type Querier interface {
	sqlx.ExtContext
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

// Config holds database configuration
type Config struct {
	Driver          string
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DB is a driver-aware sqlx pool.
type DB struct {
	x      *sqlx.DB
	driver string
}

// Open connects to the configured database and verifies the connection.
func Open(ctx context.Context, cfg Config) (*DB, error) {
	if cfg.Driver != DriverSQLite && cfg.Driver != DriverPostgres {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.Driver)
	}

	x, err := sqlx.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrConnection, cfg.Driver, err)
	}

	if cfg.Driver == DriverSQLite {
		// SQLite allows one writer; a single connection also keeps
		// in-memory databases alive for the life of the pool.
		x.SetMaxOpenConns(1)
		x.SetConnMaxLifetime(0)
	} else {
		x.SetMaxOpenConns(valueOr(cfg.MaxOpenConns, 25))
		x.SetMaxIdleConns(valueOr(cfg.MaxIdleConns, 5))
		x.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if err := x.PingContext(ctx); err != nil {
		_ = x.Close()
		return nil, fmt.Errorf("%w: ping %s: %v", ErrConnection, cfg.Driver, err)
	}

	return &DB{x: x, driver: cfg.Driver}, nil
}

// New wraps an existing sqlx handle. The driver name selects the migration
// set and placeholder style.
func New(x *sqlx.DB, driver string) *DB {
	return &DB{x: x, driver: driver}
}

// Driver returns the driver name (sqlite or postgres).
func (db *DB) Driver() string {
	return db.driver
}

// Close closes the underlying pool.
func (db *DB) Close() error {
	return db.x.Close()
}

// Ping verifies the database is reachable.
func (db *DB) Ping(ctx context.Context) error {
	if err := db.x.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	return nil
}

// Querier returns the transaction carried by ctx, or the pool when there is none.
func (db *DB) Querier(ctx context.Context) Querier {
	if tx, ok := txFromContext(ctx); ok {
		return tx
	}
	return db.x
}

func valueOr(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}

// SQL returns the underlying connection pool.
func (db *DB) SQL() *sql.DB {
	return db.x.DB
}
