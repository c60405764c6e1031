// Package testdb provides test database utilities for e2e testing.
//
// This package creates isolated test databases that run real queries, so
// tests exercise the actual schema: foreign key cascades, unique indexes and
// check constraints.
//
// Usage:
//
//	func TestSomething(t *testing.T) {
//	    tdb := testdb.New(t)
//	    repo := repository.NewClubRepository(tdb.DB)
//	}
package testdb

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/forgo/clubs/api/internal/database"
)

// PostgresDSNEnv names the variable that enables PostgreSQL-backed tests.
const PostgresDSNEnv = "TEST_POSTGRES_DSN"

// SQLiteMemoryDSN opens a private in-memory database per connection.
const SQLiteMemoryDSN = "file::memory:?_pragma=foreign_keys(1)&_time_format=sqlite"

// TestDB provides an isolated, migrated database for one test.
type TestDB struct {
	DB     *database.DB
	Schema string // PostgreSQL only
	t      *testing.T
}

var schemaCounter atomic.Int64

// New creates an in-memory SQLite database with migrations applied.
// It is closed automatically when the test ends.
func New(t *testing.T) *TestDB {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.Open(ctx, database.Config{
		Driver: database.DriverSQLite,
		DSN:    SQLiteMemoryDSN,
	})
	if err != nil {
		t.Fatalf("testdb: failed to open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := db.Migrate(); err != nil {
		t.Fatalf("testdb: failed to migrate: %v", err)
	}

	return &TestDB{DB: db, t: t}
}

// NewPostgres creates a migrated database in a fresh PostgreSQL schema. The
// test is skipped unless TEST_POSTGRES_DSN is set. The schema is dropped when
// the test ends.
func NewPostgres(t *testing.T) *TestDB {
	t.Helper()

	baseDSN := os.Getenv(PostgresDSNEnv)
	if baseDSN == "" {
		t.Skipf("testdb: %s not set", PostgresDSNEnv)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	admin, err := database.Open(ctx, database.Config{Driver: database.DriverPostgres, DSN: baseDSN})
	if err != nil {
		t.Fatalf("testdb: failed to connect to postgres: %v", err)
	}

	schema := uniqueSchema()
	if _, err := admin.Querier(ctx).ExecContext(ctx, "CREATE SCHEMA "+schema); err != nil {
		_ = admin.Close()
		t.Fatalf("testdb: failed to create schema %s: %v", schema, err)
	}

	db, err := database.Open(ctx, database.Config{
		Driver: database.DriverPostgres,
		DSN:    withSearchPath(baseDSN, schema),
	})
	if err != nil {
		_ = admin.Close()
		t.Fatalf("testdb: failed to open schema %s: %v", schema, err)
	}

	t.Cleanup(func() {
		_ = db.Close()
		dropCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_, _ = admin.Querier(dropCtx).ExecContext(dropCtx, "DROP SCHEMA "+schema+" CASCADE")
		_ = admin.Close()
	})

	if err := db.Migrate(); err != nil {
		t.Fatalf("testdb: failed to migrate: %v", err)
	}

	return &TestDB{DB: db, Schema: schema, t: t}
}

// Context returns a context that expires with a 30 second timeout.
func (tdb *TestDB) Context() context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	tdb.t.Cleanup(cancel)
	return ctx
}

// Count returns the number of rows in table matching an optional WHERE clause.
func (tdb *TestDB) Count(table, where string, args ...interface{}) int {
	tdb.t.Helper()

	query := "SELECT COUNT(*) FROM " + table
	if where != "" {
		query += " WHERE " + where
	}

	ctx := tdb.Context()
	q := tdb.DB.Querier(ctx)
	var n int
	if err := q.GetContext(ctx, &n, q.Rebind(query), args...); err != nil {
		tdb.t.Fatalf("testdb: count %s: %v", table, err)
	}
	return n
}

func uniqueSchema() string {
	return fmt.Sprintf("test_%d_%d", time.Now().UnixNano(), schemaCounter.Add(1))
}

// withSearchPath points a URL or key=value DSN at schema.
func withSearchPath(dsn, schema string) string {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		u, err := url.Parse(dsn)
		if err == nil {
			q := u.Query()
			q.Set("search_path", schema)
			u.RawQuery = q.Encode()
			return u.String()
		}
	}
	return dsn + " search_path=" + schema
}
