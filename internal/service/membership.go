package service

import (
	"context"
	"log/slog"

	"github.com/forgo/clubs/api/internal/model"
)

// ClubRepository defines the interface for club storage.
// GetByID and GetForDisplay return (nil, nil) when the club does not exist.
type ClubRepository interface {
	GetByID(ctx context.Context, id int64) (*model.Club, error)
	GetForDisplay(ctx context.Context, id int64) (*model.Club, error)
	ListForViewer(ctx context.Context, viewerID int64) ([]model.ClubListing, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]model.OwnedClub, error)
	Update(ctx context.Context, club *model.Club) error
}

// ApplicationRepository defines the interface for application storage.
// Getters return (nil, nil) when no row exists.
type ApplicationRepository interface {
	// CreatePending inserts a pending application; false when one already exists.
	CreatePending(ctx context.Context, clubID, userID int64) (bool, error)
	GetByID(ctx context.Context, id int64) (*model.Application, error)
	GetByClubAndUser(ctx context.Context, clubID, userID int64) (*model.Application, error)
	UpdateStatus(ctx context.Context, id int64, status model.ApplicationStatus) error
	Delete(ctx context.Context, id int64) error
	DeleteByClubAndUser(ctx context.Context, clubID, userID int64) (bool, error)
	ListByClub(ctx context.Context, clubID int64) ([]model.ApplicationWithStudent, error)
	ListByUser(ctx context.Context, userID int64) ([]model.ApplicationWithClub, error)
}

// MembershipRepository defines the interface for membership storage
type MembershipRepository interface {
	// Ensure inserts the membership; false when it already exists.
	Ensure(ctx context.Context, clubID, userID int64) (bool, error)
	// Remove deletes the membership; false when there was none.
	Remove(ctx context.Context, clubID, userID int64) (bool, error)
	Exists(ctx context.Context, clubID, userID int64) (bool, error)
	ListMembers(ctx context.Context, clubID int64) ([]model.Member, error)
	ListMeetings(ctx context.Context, userID int64) ([]model.Meeting, error)
}

// TransitionObserver is notified of every state engine transition.
type TransitionObserver interface {
	ObserveTransition(action string)
}

// Transition names reported to the observer.
const (
	TransitionJoinMember     = "join_member"
	TransitionJoinApplied    = "join_applied"
	TransitionWithdraw       = "withdraw"
	TransitionLeave          = "leave"
	TransitionStatusAccepted = "status_accepted"
	TransitionStatusRejected = "status_rejected"
	TransitionStatusPending  = "status_pending"
	TransitionMemberRemoved  = "member_removed"
)

// membershipEffect is what an application status does to the membership row.
type membershipEffect int

const (
	effectGrant  membershipEffect = iota + 1 // ensure a membership exists
	effectRevoke                             // ensure no membership exists
)

// statusEffects keeps membership equal to the latest decision: only an
// accepted application may leave a membership behind.
var statusEffects = map[model.ApplicationStatus]membershipEffect{
	model.ApplicationStatusAccepted: effectGrant,
	model.ApplicationStatusRejected: effectRevoke,
	model.ApplicationStatusPending:  effectRevoke,
}

var statusTransitions = map[model.ApplicationStatus]string{
	model.ApplicationStatusAccepted: TransitionStatusAccepted,
	model.ApplicationStatusRejected: TransitionStatusRejected,
	model.ApplicationStatusPending:  TransitionStatusPending,
}

// MembershipService owns how a user's relationship to a club evolves:
// joining, applying, withdrawing, leaving, and the owner's decisions.
type MembershipService struct {
	tx       Transactor
	clubs    ClubRepository
	apps     ApplicationRepository
	members  MembershipRepository
	observer TransitionObserver
}

// MembershipServiceConfig holds configuration for the membership service
type MembershipServiceConfig struct {
	Tx              Transactor
	ClubRepo        ClubRepository
	ApplicationRepo ApplicationRepository
	MembershipRepo  MembershipRepository
	Observer        TransitionObserver // Optional
}

// NewMembershipService creates a new membership service
func NewMembershipService(cfg MembershipServiceConfig) *MembershipService {
	return &MembershipService{
		tx:       transactorOrDefault(cfg.Tx),
		clubs:    cfg.ClubRepo,
		apps:     cfg.ApplicationRepo,
		members:  cfg.MembershipRepo,
		observer: cfg.Observer,
	}
}

// Join requests membership. Open clubs grant it immediately and clear any
// stale application; other clubs record a pending application. Repeating a
// join is a no-op.
func (s *MembershipService) Join(ctx context.Context, caller model.Identity, clubID int64) (*model.JoinResult, error) {
	var (
		result     *model.JoinResult
		transition string
	)

	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		club, err := s.clubs.GetByID(ctx, clubID)
		if err != nil {
			return err
		}
		if club == nil {
			return ErrClubNotFound
		}

		if !club.JoinType.RequiresDecision() {
			if _, err := s.members.Ensure(ctx, clubID, caller.ID); err != nil {
				return err
			}
			removed, err := s.apps.DeleteByClubAndUser(ctx, clubID, caller.ID)
			if err != nil {
				return err
			}
			if removed {
				slog.Info("cleared stale application on open join",
					slog.Int64("club_id", clubID), slog.Int64("user_id", caller.ID))
			}
			result = &model.JoinResult{Message: "Joined club successfully", Type: "member"}
			transition = TransitionJoinMember
			return nil
		}

		if _, err := s.apps.CreatePending(ctx, clubID, caller.ID); err != nil {
			return err
		}
		result = &model.JoinResult{Message: "Application submitted", Type: string(club.JoinType)}
		transition = TransitionJoinApplied
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.observe(transition)
	return result, nil
}

// Withdraw deletes the caller's pending application to a club.
func (s *MembershipService) Withdraw(ctx context.Context, caller model.Identity, clubID int64) error {
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		app, err := s.apps.GetByClubAndUser(ctx, clubID, caller.ID)
		if err != nil {
			return err
		}
		if app == nil {
			return ErrNoApplication
		}
		if app.Status != model.ApplicationStatusPending {
			return ErrApplicationNotPending
		}
		return s.apps.Delete(ctx, app.ID)
	})
	if err != nil {
		return err
	}

	s.observe(TransitionWithdraw)
	return nil
}

// Leave removes the caller's membership, if any.
func (s *MembershipService) Leave(ctx context.Context, caller model.Identity, clubID int64) error {
	if _, err := s.members.Remove(ctx, clubID, caller.ID); err != nil {
		return err
	}
	s.observe(TransitionLeave)
	return nil
}

// UpdateApplicationStatus records an owner's decision and applies its
// membership effect in the same transaction.
func (s *MembershipService) UpdateApplicationStatus(ctx context.Context, owner model.Identity, applicationID int64, status string) error {
	if !owner.IsOwner() {
		return ErrOwnerRequired
	}
	newStatus := model.ApplicationStatus(status)
	effect, ok := statusEffects[newStatus]
	if !ok {
		return ErrInvalidStatus
	}

	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		app, err := s.apps.GetByID(ctx, applicationID)
		if err != nil {
			return err
		}
		if app == nil {
			return ErrApplicationNotFound
		}

		club, err := s.clubs.GetByID(ctx, app.ClubID)
		if err != nil {
			return err
		}
		if club == nil || club.OwnerID != owner.ID {
			return ErrApplicationNotFound
		}

		if err := s.apps.UpdateStatus(ctx, app.ID, newStatus); err != nil {
			return err
		}
		return s.applyEffect(ctx, effect, app.ClubID, app.UserID)
	})
	if err != nil {
		return err
	}

	slog.Info("application status updated",
		slog.Int64("application_id", applicationID),
		slog.String("status", string(newStatus)),
		slog.Int64("owner_id", owner.ID))
	s.observe(statusTransitions[newStatus])
	return nil
}

// ListClubApplications returns a club's applications, newest first.
func (s *MembershipService) ListClubApplications(ctx context.Context, owner model.Identity, clubID int64) ([]model.ApplicationWithStudent, error) {
	if _, err := ownedClub(ctx, s.clubs, owner, clubID); err != nil {
		return nil, err
	}
	return s.apps.ListByClub(ctx, clubID)
}

// ListMembers returns an owned club with its roster.
func (s *MembershipService) ListMembers(ctx context.Context, owner model.Identity, clubID int64) (*model.ClubMembers, error) {
	club, err := ownedClub(ctx, s.clubs, owner, clubID)
	if err != nil {
		return nil, err
	}
	members, err := s.members.ListMembers(ctx, clubID)
	if err != nil {
		return nil, err
	}
	return &model.ClubMembers{Club: *club, Members: members}, nil
}

// RemoveMember deletes a user's membership in an owned club. Existing RSVPs
// are left in place.
func (s *MembershipService) RemoveMember(ctx context.Context, owner model.Identity, clubID, userID int64) error {
	if _, err := ownedClub(ctx, s.clubs, owner, clubID); err != nil {
		return err
	}
	if _, err := s.members.Remove(ctx, clubID, userID); err != nil {
		return err
	}
	s.observe(TransitionMemberRemoved)
	return nil
}

func (s *MembershipService) applyEffect(ctx context.Context, effect membershipEffect, clubID, userID int64) error {
	switch effect {
	case effectGrant:
		_, err := s.members.Ensure(ctx, clubID, userID)
		return err
	case effectRevoke:
		_, err := s.members.Remove(ctx, clubID, userID)
		return err
	}
	return nil
}

func (s *MembershipService) observe(transition string) {
	if s.observer != nil && transition != "" {
		s.observer.ObserveTransition(transition)
	}
}

// ownedClub resolves a club the caller owns. A club owned by someone else is
// reported as missing.
func ownedClub(ctx context.Context, clubs ClubRepository, owner model.Identity, clubID int64) (*model.Club, error) {
	if !owner.IsOwner() {
		return nil, ErrOwnerRequired
	}
	club, err := clubs.GetByID(ctx, clubID)
	if err != nil {
		return nil, err
	}
	if club == nil || club.OwnerID != owner.ID {
		return nil, ErrClubNotFound
	}
	return club, nil
}
