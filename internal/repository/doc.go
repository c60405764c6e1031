// Package repository implements the data access layer for the clubs API.
//
// The repository package contains all database operations using sqlx over
// SQLite or PostgreSQL. Each repository struct handles operations for a
// specific domain entity.
//
// # Repository Pattern
//
// All repositories follow a consistent pattern:
//
//   - Constructor function (NewXxxRepository) accepts a *database.DB
//   - Methods implement specific data operations (Create, GetByID, Update, Delete, etc.)
//   - Every statement runs on db.Querier(ctx), so calls made inside
//     database.DB.WithTx join the open transaction
//   - Results are scanned into model structs through db tags
//
// # Query Patterns
//
// Common query patterns used:
//
//   - ? placeholders, rebound for the active driver
//   - INSERT ... ON CONFLICT DO NOTHING for idempotent writes; the returned
//     bool reports whether a row was written
//   - INSERT ... RETURNING id for generated keys
//   - Lookups return (nil, nil) when nothing matches
//
// # Example Usage
//
//	repo := NewClubRepository(db)
//	club, err := repo.GetByID(ctx, 42)
//	if err != nil {
//	    return err
//	}
//	if club == nil {
//	    // Handle not found
//	}
package repository
