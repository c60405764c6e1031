package service

import (
	"context"

	"github.com/forgo/clubs/api/internal/model"
)

// ClubService assembles club views and handles owner edits
type ClubService struct {
	clubs   ClubRepository
	apps    ApplicationRepository
	members MembershipRepository
	events  EventRepository
}

// ClubServiceConfig holds configuration for the club service
type ClubServiceConfig struct {
	ClubRepo        ClubRepository
	ApplicationRepo ApplicationRepository
	MembershipRepo  MembershipRepository
	EventRepo       EventRepository
}

// NewClubService creates a new club service
func NewClubService(cfg ClubServiceConfig) *ClubService {
	return &ClubService{
		clubs:   cfg.ClubRepo,
		apps:    cfg.ApplicationRepo,
		members: cfg.MembershipRepo,
		events:  cfg.EventRepo,
	}
}

// ListClubs returns every club with member_count, application_status and
// is_member computed for the caller.
func (s *ClubService) ListClubs(ctx context.Context, caller model.Identity) ([]model.ClubListing, error) {
	return s.clubs.ListForViewer(ctx, caller.ID)
}

// GetClub returns a club and its events ordered by start time
func (s *ClubService) GetClub(ctx context.Context, clubID int64) (*model.ClubDetail, error) {
	club, err := s.clubs.GetForDisplay(ctx, clubID)
	if err != nil {
		return nil, err
	}
	if club == nil {
		return nil, ErrClubNotFound
	}

	events, err := s.events.ListByClub(ctx, clubID)
	if err != nil {
		return nil, err
	}

	return &model.ClubDetail{Club: *club, Events: events}, nil
}

// ListOwnedClubs returns the clubs the caller owns
func (s *ClubService) ListOwnedClubs(ctx context.Context, owner model.Identity) ([]model.OwnedClub, error) {
	if !owner.IsOwner() {
		return nil, ErrOwnerRequired
	}
	return s.clubs.ListByOwner(ctx, owner.ID)
}

// GetOwnedClub returns one club the caller owns
func (s *ClubService) GetOwnedClub(ctx context.Context, owner model.Identity, clubID int64) (*model.Club, error) {
	return ownedClub(ctx, s.clubs, owner, clubID)
}

// UpdateClub applies an owner's edit. Name and join type are required; other
// empty fields keep their stored values.
func (s *ClubService) UpdateClub(ctx context.Context, owner model.Identity, clubID int64, req *model.UpdateClubRequest) (*model.Club, error) {
	if err := validationErr(req.Validate()); err != nil {
		return nil, err
	}

	club, err := ownedClub(ctx, s.clubs, owner, clubID)
	if err != nil {
		return nil, err
	}

	updated := req.ApplyTo(*club)
	if err := s.clubs.Update(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// MyApplications returns the caller's applications, newest first
func (s *ClubService) MyApplications(ctx context.Context, caller model.Identity) ([]model.ApplicationWithClub, error) {
	return s.apps.ListByUser(ctx, caller.ID)
}

// MySchedule returns the meetings of the caller's clubs and their events,
// each flagged with the caller's RSVP
func (s *ClubService) MySchedule(ctx context.Context, caller model.Identity) (*model.Schedule, error) {
	meetings, err := s.members.ListMeetings(ctx, caller.ID)
	if err != nil {
		return nil, err
	}
	events, err := s.events.ListForMember(ctx, caller.ID)
	if err != nil {
		return nil, err
	}
	return &model.Schedule{Meetings: meetings, Events: events}, nil
}
