package repository

import (
	"context"
	"time"

	"github.com/forgo/clubs/api/internal/database"
	"github.com/forgo/clubs/api/internal/model"
)

// RSVPRepository handles event RSVP data access
type RSVPRepository struct {
	db *database.DB
}

// NewRSVPRepository creates a new RSVP repository
func NewRSVPRepository(db *database.DB) *RSVPRepository {
	return &RSVPRepository{db: db}
}

// Exists reports whether userID has RSVP'd to eventID
func (r *RSVPRepository) Exists(ctx context.Context, eventID, userID int64) (bool, error) {
	return exists(ctx, r.db.Querier(ctx),
		`SELECT EXISTS (SELECT 1 FROM event_rsvps WHERE event_id = ? AND user_id = ?)`, eventID, userID)
}

// Create inserts an RSVP; false when one already exists
func (r *RSVPRepository) Create(ctx context.Context, eventID, userID int64) (bool, error) {
	return execAffected(ctx, r.db.Querier(ctx), `
		INSERT INTO event_rsvps (event_id, user_id, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT (event_id, user_id) DO NOTHING
	`, eventID, userID, time.Now().UTC())
}

// Delete removes an RSVP; false when there was none
func (r *RSVPRepository) Delete(ctx context.Context, eventID, userID int64) (bool, error) {
	return execAffected(ctx, r.db.Querier(ctx),
		`DELETE FROM event_rsvps WHERE event_id = ? AND user_id = ?`, eventID, userID)
}

// ListByEvent lists attendees, most recent RSVP first
func (r *RSVPRepository) ListByEvent(ctx context.Context, eventID int64) ([]model.Attendee, error) {
	return selectAll[model.Attendee](ctx, r.db.Querier(ctx), `
		SELECT r.user_id, u.name, u.email, r.created_at
		FROM event_rsvps r
		JOIN users u ON u.id = r.user_id
		WHERE r.event_id = ?
		ORDER BY r.created_at DESC, r.id DESC
	`, eventID)
}
