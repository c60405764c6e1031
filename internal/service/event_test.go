package service

import (
	"context"
	"errors"
	"testing"

	"github.com/forgo/clubs/api/internal/model"
)

func setupEventService(t *testing.T) (*EventService, *mockClubRepo, *mockEventRepo, *mockRSVPRepo, *mockMembershipRepo) {
	t.Helper()
	clubs := newMockClubRepo()
	events := newMockEventRepo()
	rsvps := newMockRSVPRepo()
	members := newMockMembershipRepo()

	svc := NewEventService(EventServiceConfig{
		ClubRepo:       clubs,
		EventRepo:      events,
		RSVPRepo:       rsvps,
		MembershipRepo: members,
	})
	return svc, clubs, events, rsvps, members
}

func boolPtr(b bool) *bool { return &b }

// ============================================================================
// CreateEvent
// ============================================================================

func TestEventService_CreateEvent_Success(t *testing.T) {
	t.Parallel()
	svc, clubs, events, _, _ := setupEventService(t)
	club := clubs.add(100, model.JoinTypeOpen)

	event, err := svc.CreateEvent(context.Background(), owner(100), club.ID, &model.CreateEventRequest{
		Title:     "  Spring Showcase ",
		StartTime: "2025-04-10T19:00",
		EndTime:   "2025-04-10T21:00",
		Location:  "Sudler Hall",
	})
	if err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}
	if event.ID == 0 || event.ClubID != club.ID {
		t.Errorf("unexpected event: %+v", event)
	}
	if event.Title != "Spring Showcase" {
		t.Errorf("expected trimmed title, got %q", event.Title)
	}
	if len(events.events) != 1 {
		t.Errorf("expected one stored event, got %d", len(events.events))
	}
}

func TestEventService_CreateEvent_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		req   model.CreateEventRequest
		field string
	}{
		{"missing start", model.CreateEventRequest{Title: "T", EndTime: "2025-04-10T21:00"}, "start_time"},
		{"missing title", model.CreateEventRequest{StartTime: "2025-04-10T19:00", EndTime: "2025-04-10T21:00"}, "title"},
		{"malformed end", model.CreateEventRequest{Title: "T", StartTime: "2025-04-10T19:00", EndTime: "tomorrow"}, "end_time"},
		{"end before start", model.CreateEventRequest{Title: "T", StartTime: "2025-04-10T19:00", EndTime: "2025-04-10T18:00"}, "end_time"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, clubs, events, _, _ := setupEventService(t)
			club := clubs.add(100, model.JoinTypeOpen)

			_, err := svc.CreateEvent(context.Background(), owner(100), club.ID, &tt.req)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Fields[0].Field != tt.field {
				t.Errorf("expected first failing field %s, got %s", tt.field, verr.Fields[0].Field)
			}
			if len(events.events) != 0 {
				t.Error("invalid event must not be stored")
			}
		})
	}
}

func TestEventService_CreateEvent_Ownership(t *testing.T) {
	t.Parallel()
	svc, clubs, _, _, _ := setupEventService(t)
	club := clubs.add(100, model.JoinTypeOpen)
	req := &model.CreateEventRequest{Title: "T", StartTime: "2025-04-10T19:00", EndTime: "2025-04-10T21:00"}

	if _, err := svc.CreateEvent(context.Background(), owner(200), club.ID, req); !errors.Is(err, ErrClubNotFound) {
		t.Errorf("expected ErrClubNotFound, got %v", err)
	}
	if _, err := svc.CreateEvent(context.Background(), student(1), club.ID, req); !errors.Is(err, ErrOwnerRequired) {
		t.Errorf("expected ErrOwnerRequired, got %v", err)
	}
}

// ============================================================================
// UpdateEvent / DeleteEvent
// ============================================================================

func TestEventService_UpdateEvent(t *testing.T) {
	t.Parallel()
	svc, clubs, events, _, _ := setupEventService(t)
	ctx := context.Background()
	club := clubs.add(100, model.JoinTypeOpen)
	event := events.add(club.ID)
	event.Description = "old"

	updated, err := svc.UpdateEvent(ctx, owner(100), event.ID, &model.UpdateEventRequest{
		Location:    "Dwight Hall",
		Description: new(string),
	})
	if err != nil {
		t.Fatalf("UpdateEvent failed: %v", err)
	}
	if updated.Title != "Meetup" || updated.Location != "Dwight Hall" {
		t.Errorf("unexpected merge: %+v", updated)
	}
	if updated.Description != "" {
		t.Errorf("explicit empty description should clear it, got %q", updated.Description)
	}
}

func TestEventService_UpdateEvent_EndBeforeStoredStart(t *testing.T) {
	t.Parallel()
	svc, clubs, events, _, _ := setupEventService(t)
	club := clubs.add(100, model.JoinTypeOpen)
	event := events.add(club.ID)

	_, err := svc.UpdateEvent(context.Background(), owner(100), event.ID, &model.UpdateEventRequest{
		EndTime: "2025-03-01T17:00",
	})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	stored, _ := events.GetByID(context.Background(), event.ID)
	if stored.EndTime != "2025-03-01T20:00" {
		t.Error("rejected update must not be stored")
	}
}

func TestEventService_DeleteEvent(t *testing.T) {
	t.Parallel()
	svc, clubs, events, _, _ := setupEventService(t)
	ctx := context.Background()
	club := clubs.add(100, model.JoinTypeOpen)
	event := events.add(club.ID)

	if err := svc.DeleteEvent(ctx, owner(200), event.ID); !errors.Is(err, ErrEventNotFound) {
		t.Errorf("expected ErrEventNotFound for non-owner, got %v", err)
	}
	if err := svc.DeleteEvent(ctx, owner(100), event.ID); err != nil {
		t.Fatalf("DeleteEvent failed: %v", err)
	}
	if err := svc.DeleteEvent(ctx, owner(100), event.ID); !errors.Is(err, ErrEventNotFound) {
		t.Errorf("expected ErrEventNotFound after delete, got %v", err)
	}
}

// ============================================================================
// SetRSVP
// ============================================================================

func TestEventService_SetRSVP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		initial bool
		desired *bool
		want    bool
	}{
		{"toggle on", false, nil, true},
		{"toggle off", true, nil, false},
		{"explicit true when absent", false, boolPtr(true), true},
		{"explicit true when present", true, boolPtr(true), true},
		{"explicit false when present", true, boolPtr(false), false},
		{"explicit false when absent", false, boolPtr(false), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, clubs, events, rsvps, members := setupEventService(t)
			ctx := context.Background()
			club := clubs.add(100, model.JoinTypeOpen)
			event := events.add(club.ID)
			_, _ = members.Ensure(ctx, club.ID, 1)
			if tt.initial {
				_, _ = rsvps.Create(ctx, event.ID, 1)
			}

			got, err := svc.SetRSVP(ctx, student(1), event.ID, tt.desired)
			if err != nil {
				t.Fatalf("SetRSVP failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
			if exists, _ := rsvps.Exists(ctx, event.ID, 1); exists != tt.want {
				t.Errorf("stored state %v does not match result %v", exists, tt.want)
			}
		})
	}
}

func TestEventService_SetRSVP_Errors(t *testing.T) {
	t.Parallel()
	svc, clubs, events, rsvps, _ := setupEventService(t)
	ctx := context.Background()
	club := clubs.add(100, model.JoinTypeOpen)
	event := events.add(club.ID)

	if _, err := svc.SetRSVP(ctx, student(1), 999, nil); !errors.Is(err, ErrEventNotFound) {
		t.Errorf("expected ErrEventNotFound, got %v", err)
	}
	if _, err := svc.SetRSVP(ctx, student(1), event.ID, boolPtr(true)); !errors.Is(err, ErrNotClubMember) {
		t.Errorf("expected ErrNotClubMember, got %v", err)
	}
	if len(rsvps.rsvps) != 0 {
		t.Error("non-member RSVP must not be stored")
	}
}

// ============================================================================
// Owner views
// ============================================================================

func TestEventService_ListClubEventsAndRSVPs(t *testing.T) {
	t.Parallel()
	svc, clubs, events, rsvps, _ := setupEventService(t)
	ctx := context.Background()
	club := clubs.add(100, model.JoinTypeOpen)
	event := events.add(club.ID)
	events.add(club.ID)
	_, _ = rsvps.Create(ctx, event.ID, 1)
	_, _ = rsvps.Create(ctx, event.ID, 2)

	listing, err := svc.ListClubEvents(ctx, owner(100), club.ID)
	if err != nil {
		t.Fatalf("ListClubEvents failed: %v", err)
	}
	if len(listing.Events) != 2 {
		t.Errorf("expected 2 events, got %d", len(listing.Events))
	}

	attendees, err := svc.ListRSVPs(ctx, owner(100), event.ID)
	if err != nil {
		t.Fatalf("ListRSVPs failed: %v", err)
	}
	if len(attendees) != 2 {
		t.Errorf("expected 2 attendees, got %d", len(attendees))
	}

	if _, err := svc.ListRSVPs(ctx, owner(200), event.ID); !errors.Is(err, ErrEventNotFound) {
		t.Errorf("expected ErrEventNotFound, got %v", err)
	}
}
