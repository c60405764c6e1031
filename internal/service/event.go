package service

import (
	"context"
	"strings"

	"github.com/forgo/clubs/api/internal/model"
)

// EventRepository defines the interface for event storage.
// GetByID returns (nil, nil) when the event does not exist.
type EventRepository interface {
	Create(ctx context.Context, event *model.Event) error
	GetByID(ctx context.Context, id int64) (*model.Event, error)
	Update(ctx context.Context, event *model.Event) error
	Delete(ctx context.Context, id int64) error
	ListByClub(ctx context.Context, clubID int64) ([]model.Event, error)
	ListByClubWithRSVP(ctx context.Context, clubID, viewerID int64) ([]model.EventWithRSVP, error)
	ListForMember(ctx context.Context, userID int64) ([]model.ScheduleEvent, error)
}

// RSVPRepository defines the interface for RSVP storage
type RSVPRepository interface {
	Exists(ctx context.Context, eventID, userID int64) (bool, error)
	// Create inserts the RSVP; false when it already exists.
	Create(ctx context.Context, eventID, userID int64) (bool, error)
	// Delete removes the RSVP; false when there was none.
	Delete(ctx context.Context, eventID, userID int64) (bool, error)
	ListByEvent(ctx context.Context, eventID int64) ([]model.Attendee, error)
}

// EventService handles event business logic
type EventService struct {
	tx      Transactor
	clubs   ClubRepository
	events  EventRepository
	rsvps   RSVPRepository
	members MembershipRepository
}

// EventServiceConfig holds configuration for the event service
type EventServiceConfig struct {
	Tx             Transactor
	ClubRepo       ClubRepository
	EventRepo      EventRepository
	RSVPRepo       RSVPRepository
	MembershipRepo MembershipRepository
}

// NewEventService creates a new event service
func NewEventService(cfg EventServiceConfig) *EventService {
	return &EventService{
		tx:      transactorOrDefault(cfg.Tx),
		clubs:   cfg.ClubRepo,
		events:  cfg.EventRepo,
		rsvps:   cfg.RSVPRepo,
		members: cfg.MembershipRepo,
	}
}

// CreateEvent creates an event in a club the caller owns
func (s *EventService) CreateEvent(ctx context.Context, owner model.Identity, clubID int64, req *model.CreateEventRequest) (*model.Event, error) {
	if err := validationErr(req.Validate()); err != nil {
		return nil, err
	}

	if _, err := ownedClub(ctx, s.clubs, owner, clubID); err != nil {
		return nil, err
	}

	event := &model.Event{
		ClubID:      clubID,
		Title:       strings.TrimSpace(req.Title),
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Location:    req.Location,
		Description: req.Description,
	}
	if err := s.events.Create(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// ListClubEvents returns an owned club with its events and RSVP counts
func (s *EventService) ListClubEvents(ctx context.Context, owner model.Identity, clubID int64) (*model.ClubEvents, error) {
	club, err := ownedClub(ctx, s.clubs, owner, clubID)
	if err != nil {
		return nil, err
	}
	events, err := s.events.ListByClubWithRSVP(ctx, clubID, owner.ID)
	if err != nil {
		return nil, err
	}
	return &model.ClubEvents{Club: *club, Events: events}, nil
}

// UpdateEvent edits an event field by field; empty fields keep stored values
// except description, which an explicit "" clears.
func (s *EventService) UpdateEvent(ctx context.Context, owner model.Identity, eventID int64, req *model.UpdateEventRequest) (*model.Event, error) {
	var updated model.Event

	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		current, err := s.ownedEvent(ctx, owner, eventID)
		if err != nil {
			return err
		}
		if err := validationErr(req.ValidateAgainst(*current)); err != nil {
			return err
		}

		updated = req.ApplyTo(*current)
		return s.events.Update(ctx, &updated)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteEvent removes an event and its RSVPs
func (s *EventService) DeleteEvent(ctx context.Context, owner model.Identity, eventID int64) error {
	return s.tx.WithTx(ctx, func(ctx context.Context) error {
		if _, err := s.ownedEvent(ctx, owner, eventID); err != nil {
			return err
		}
		return s.events.Delete(ctx, eventID)
	})
}

// SetRSVP sets the caller's attendance for an event in one of their clubs.
// A nil desired state toggles the current one. Returns the resulting state.
func (s *EventService) SetRSVP(ctx context.Context, caller model.Identity, eventID int64, desired *bool) (bool, error) {
	var result bool

	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		event, err := s.events.GetByID(ctx, eventID)
		if err != nil {
			return err
		}
		if event == nil {
			return ErrEventNotFound
		}

		isMember, err := s.members.Exists(ctx, event.ClubID, caller.ID)
		if err != nil {
			return err
		}
		if !isMember {
			return ErrNotClubMember
		}

		current, err := s.rsvps.Exists(ctx, eventID, caller.ID)
		if err != nil {
			return err
		}

		result = !current
		if desired != nil {
			result = *desired
		}

		switch {
		case result && !current:
			_, err = s.rsvps.Create(ctx, eventID, caller.ID)
		case !result && current:
			_, err = s.rsvps.Delete(ctx, eventID, caller.ID)
		}
		return err
	})
	if err != nil {
		return false, err
	}
	return result, nil
}

// ListRSVPs returns who RSVP'd to an owned event, most recent first
func (s *EventService) ListRSVPs(ctx context.Context, owner model.Identity, eventID int64) ([]model.Attendee, error) {
	if _, err := s.ownedEvent(ctx, owner, eventID); err != nil {
		return nil, err
	}
	return s.rsvps.ListByEvent(ctx, eventID)
}

// ownedEvent walks event -> club -> owner. Anything that does not resolve to
// the caller is reported as a missing event.
func (s *EventService) ownedEvent(ctx context.Context, owner model.Identity, eventID int64) (*model.Event, error) {
	if !owner.IsOwner() {
		return nil, ErrOwnerRequired
	}
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}
	club, err := s.clubs.GetByID(ctx, event.ClubID)
	if err != nil {
		return nil, err
	}
	if club == nil || club.OwnerID != owner.ID {
		return nil, ErrEventNotFound
	}
	return event, nil
}
