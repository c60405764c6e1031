// Package testdb provides test database utilities for the clubs API.
//
// The testdb package manages test database connections with automatic
// setup, migration, and cleanup.
//
// # Test Database Setup
//
// Create a test database for each test:
//
//	func TestSomething(t *testing.T) {
//	    tdb := testdb.New(t) // in-memory SQLite, closed on cleanup
//	}
//
// # Migrations
//
// The embedded migrations are applied on setup, so every test sees the
// production schema.
//
// # PostgreSQL
//
// Set TEST_POSTGRES_DSN to run the same tests against PostgreSQL. Each test
// gets its own schema, dropped on cleanup:
//
//	tdb := testdb.NewPostgres(t) // skipped without TEST_POSTGRES_DSN
//
// # Timeout Context
//
// Test databases include timeout contexts:
//
//	ctx := tdb.Context() // 30 second timeout
package testdb
