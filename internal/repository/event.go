package repository

import (
	"context"

	"github.com/forgo/clubs/api/internal/database"
	"github.com/forgo/clubs/api/internal/model"
)

const eventColumns = `e.id, e.club_id, e.title, e.start_time, e.end_time, e.location, e.description`

// EventRepository handles event data access. Start and end times are stored
// as sortable text, so ordering by start_time is chronological.
type EventRepository struct {
	db *database.DB
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *database.DB) *EventRepository {
	return &EventRepository{db: db}
}

// Create inserts an event
func (r *EventRepository) Create(ctx context.Context, event *model.Event) error {
	id, err := insertID(ctx, r.db.Querier(ctx), `
		INSERT INTO events (club_id, title, start_time, end_time, location, description)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id
	`, event.ClubID, event.Title, event.StartTime, event.EndTime, event.Location, event.Description)
	if err != nil {
		return err
	}
	event.ID = id
	return nil
}

// GetByID retrieves an event by ID
func (r *EventRepository) GetByID(ctx context.Context, id int64) (*model.Event, error) {
	return getOne[model.Event](ctx, r.db.Querier(ctx),
		`SELECT `+eventColumns+` FROM events e WHERE e.id = ?`, id)
}

// Update overwrites an event's editable fields
func (r *EventRepository) Update(ctx context.Context, event *model.Event) error {
	ok, err := execAffected(ctx, r.db.Querier(ctx), `
		UPDATE events
		SET title = ?, start_time = ?, end_time = ?, location = ?, description = ?
		WHERE id = ?
	`, event.Title, event.StartTime, event.EndTime, event.Location, event.Description, event.ID)
	if err != nil {
		return err
	}
	if !ok {
		return database.ErrNotFound
	}
	return nil
}

// Delete removes an event; its RSVPs cascade
func (r *EventRepository) Delete(ctx context.Context, id int64) error {
	_, err := execAffected(ctx, r.db.Querier(ctx), `DELETE FROM events WHERE id = ?`, id)
	return err
}

// ListByClub lists a club's events by start time
func (r *EventRepository) ListByClub(ctx context.Context, clubID int64) ([]model.Event, error) {
	return selectAll[model.Event](ctx, r.db.Querier(ctx), `
		SELECT `+eventColumns+`
		FROM events e
		WHERE e.club_id = ?
		ORDER BY e.start_time, e.id
	`, clubID)
}

// ListByClubWithRSVP lists a club's events with RSVP counts and viewerID's flag
func (r *EventRepository) ListByClubWithRSVP(ctx context.Context, clubID, viewerID int64) ([]model.EventWithRSVP, error) {
	return selectAll[model.EventWithRSVP](ctx, r.db.Querier(ctx), `
		SELECT `+eventColumns+`,
			(SELECT COUNT(*) FROM event_rsvps r WHERE r.event_id = e.id) AS rsvp_count,
			EXISTS (
				SELECT 1 FROM event_rsvps r2
				WHERE r2.event_id = e.id AND r2.user_id = ?
			) AS rsvped
		FROM events e
		WHERE e.club_id = ?
		ORDER BY e.start_time, e.id
	`, viewerID, clubID)
}

// ListForMember lists events of every club userID belongs to, with userID's
// RSVP flag, by start time
func (r *EventRepository) ListForMember(ctx context.Context, userID int64) ([]model.ScheduleEvent, error) {
	return selectAll[model.ScheduleEvent](ctx, r.db.Querier(ctx), `
		SELECT `+eventColumns+`, c.name AS club_name,
			EXISTS (
				SELECT 1 FROM event_rsvps r
				WHERE r.event_id = e.id AND r.user_id = ?
			) AS rsvped
		FROM events e
		JOIN memberships m ON m.club_id = e.club_id
		JOIN clubs c ON c.id = e.club_id
		WHERE m.user_id = ?
		ORDER BY e.start_time, e.id
	`, userID, userID)
}
