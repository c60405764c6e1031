package repository

import (
	"context"
	"fmt"

	"github.com/forgo/clubs/api/internal/database"
)

// Child tables first so foreign keys never block a delete.
var resetTables = []string{
	"event_rsvps",
	"events",
	"memberships",
	"club_applications",
	"clubs",
	"users",
}

// SeedRepository wipes domain data ahead of a development seed
type SeedRepository struct {
	db *database.DB
}

// NewSeedRepository creates a new seed repository
func NewSeedRepository(db *database.DB) *SeedRepository {
	return &SeedRepository{db: db}
}

// ResetAll deletes every row from every domain table and restarts ids
func (r *SeedRepository) ResetAll(ctx context.Context) error {
	q := r.db.Querier(ctx)

	if r.db.Driver() == database.DriverPostgres {
		_, err := q.ExecContext(ctx,
			`TRUNCATE event_rsvps, events, memberships, club_applications, clubs, users RESTART IDENTITY CASCADE`)
		return database.MapError(err)
	}

	for _, table := range resetTables {
		if _, err := q.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("reset %s: %w", table, err)
		}
	}
	// sqlite_sequence exists because every table uses AUTOINCREMENT.
	if _, err := q.ExecContext(ctx, "DELETE FROM sqlite_sequence"); err != nil {
		return fmt.Errorf("reset sequences: %w", err)
	}
	return nil
}
