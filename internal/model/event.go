package model

import (
	"strings"
	"time"
)

// Event is a scheduled club activity. StartTime and EndTime hold the
// club-local timestamp text the owner entered.
type Event struct {
	ID          int64  `db:"id" json:"id"`
	ClubID      int64  `db:"club_id" json:"club_id"`
	Title       string `db:"title" json:"title"`
	StartTime   string `db:"start_time" json:"start_time"`
	EndTime     string `db:"end_time" json:"end_time"`
	Location    string `db:"location" json:"location"`
	Description string `db:"description" json:"description"`
}

// EventWithRSVP is an event in the owner's club view.
type EventWithRSVP struct {
	Event
	RSVPCount int64 `db:"rsvp_count" json:"rsvp_count"`
	RSVPed    bool  `db:"rsvped" json:"rsvped"`
}

// ClubEvents is an owned club with its events and RSVP counts.
type ClubEvents struct {
	Club   Club            `json:"club"`
	Events []EventWithRSVP `json:"events"`
}

// ScheduleEvent is an upcoming event from one of the user's clubs.
type ScheduleEvent struct {
	Event
	ClubName string `db:"club_name" json:"club_name"`
	RSVPed   bool   `db:"rsvped" json:"rsvped"`
}

// Schedule is a user's meetings and club events.
type Schedule struct {
	Meetings []Meeting       `json:"meetings"`
	Events   []ScheduleEvent `json:"events"`
}

// RSVP marks a user's intent to attend an event. Unique per (event, user).
type RSVP struct {
	ID        int64     `db:"id" json:"id"`
	EventID   int64     `db:"event_id" json:"event_id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Attendee is an RSVP as the club owner sees it.
type Attendee struct {
	UserID    int64     `db:"user_id" json:"user_id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// RSVPRequest sets attendance. A nil RSVP toggles the current state.
type RSVPRequest struct {
	RSVP *bool `json:"rsvp"`
}

// RSVPResponse reports the resulting attendance state.
type RSVPResponse struct {
	RSVPed bool `json:"rsvped"`
}

// Validation constants
const (
	MaxEventTitleLength = 200
)

// eventTimeLayouts are the accepted timestamp formats, most specific last.
var eventTimeLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// ParseEventTime parses a club-local event timestamp.
func ParseEventTime(s string) (time.Time, bool) {
	for _, layout := range eventTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// CreateEventRequest represents the request to create an event
type CreateEventRequest struct {
	Title       string `json:"title"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

// Validate checks required fields and timestamp formats.
func (r *CreateEventRequest) Validate() []FieldError {
	var errs []FieldError

	title := strings.TrimSpace(r.Title)
	if title == "" {
		errs = append(errs, FieldError{Field: "title", Message: "title is required"})
	} else if len(title) > MaxEventTitleLength {
		errs = append(errs, FieldError{Field: "title", Message: "title must be 200 characters or less"})
	}

	return append(errs, validateEventTimes(r.StartTime, r.EndTime)...)
}

// UpdateEventRequest represents an edit. Empty fields keep the stored value,
// except Description: an explicit "" clears it and only nil keeps it.
type UpdateEventRequest struct {
	Title       string  `json:"title"`
	StartTime   string  `json:"start_time"`
	EndTime     string  `json:"end_time"`
	Location    string  `json:"location"`
	Description *string `json:"description"`
}

// ApplyTo returns event with the request's fields applied.
func (r *UpdateEventRequest) ApplyTo(event Event) Event {
	event.Title = fallback(strings.TrimSpace(r.Title), event.Title)
	event.StartTime = fallback(r.StartTime, event.StartTime)
	event.EndTime = fallback(r.EndTime, event.EndTime)
	event.Location = fallback(r.Location, event.Location)
	if r.Description != nil {
		event.Description = *r.Description
	}
	return event
}

// ValidateAgainst checks the request merged onto current.
func (r *UpdateEventRequest) ValidateAgainst(current Event) []FieldError {
	var errs []FieldError
	if len(strings.TrimSpace(r.Title)) > MaxEventTitleLength {
		errs = append(errs, FieldError{Field: "title", Message: "title must be 200 characters or less"})
	}
	merged := r.ApplyTo(current)
	return append(errs, validateEventTimes(merged.StartTime, merged.EndTime)...)
}

func validateEventTimes(start, end string) []FieldError {
	var errs []FieldError

	startAt, startOK := ParseEventTime(start)
	switch {
	case start == "":
		errs = append(errs, FieldError{Field: "start_time", Message: "start_time is required"})
	case !startOK:
		errs = append(errs, FieldError{Field: "start_time", Message: "start_time must be a timestamp like 2006-01-02T15:04"})
	}

	endAt, endOK := ParseEventTime(end)
	switch {
	case end == "":
		errs = append(errs, FieldError{Field: "end_time", Message: "end_time is required"})
	case !endOK:
		errs = append(errs, FieldError{Field: "end_time", Message: "end_time must be a timestamp like 2006-01-02T15:04"})
	}

	if startOK && endOK && endAt.Before(startAt) {
		errs = append(errs, FieldError{Field: "end_time", Message: "end_time must not be before start_time"})
	}
	return errs
}
