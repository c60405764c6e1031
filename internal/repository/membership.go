package repository

import (
	"context"
	"time"

	"github.com/forgo/clubs/api/internal/database"
	"github.com/forgo/clubs/api/internal/model"
)

// MembershipRepository handles membership data access
type MembershipRepository struct {
	db *database.DB
}

// NewMembershipRepository creates a new membership repository
func NewMembershipRepository(db *database.DB) *MembershipRepository {
	return &MembershipRepository{db: db}
}

// Ensure inserts a membership; false when the pair is already a member.
func (r *MembershipRepository) Ensure(ctx context.Context, clubID, userID int64) (bool, error) {
	return execAffected(ctx, r.db.Querier(ctx), `
		INSERT INTO memberships (club_id, user_id, role, joined_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (club_id, user_id) DO NOTHING
	`, clubID, userID, model.MembershipRoleMember, time.Now().UTC())
}

// Remove deletes a membership; false when there was none.
func (r *MembershipRepository) Remove(ctx context.Context, clubID, userID int64) (bool, error) {
	return execAffected(ctx, r.db.Querier(ctx),
		`DELETE FROM memberships WHERE club_id = ? AND user_id = ?`, clubID, userID)
}

// Exists reports whether userID belongs to clubID
func (r *MembershipRepository) Exists(ctx context.Context, clubID, userID int64) (bool, error) {
	return exists(ctx, r.db.Querier(ctx),
		`SELECT EXISTS (SELECT 1 FROM memberships WHERE club_id = ? AND user_id = ?)`, clubID, userID)
}

// ListMembers returns a club's roster ordered by name
func (r *MembershipRepository) ListMembers(ctx context.Context, clubID int64) ([]model.Member, error) {
	return selectAll[model.Member](ctx, r.db.Querier(ctx), `
		SELECT u.id, u.name, u.email, m.role, m.joined_at
		FROM memberships m
		JOIN users u ON u.id = m.user_id
		WHERE m.club_id = ?
		ORDER BY u.name, u.id
	`, clubID)
}

// ListMeetings returns the recurring meetings of every club userID belongs to
func (r *MembershipRepository) ListMeetings(ctx context.Context, userID int64) ([]model.Meeting, error) {
	return selectAll[model.Meeting](ctx, r.db.Querier(ctx), `
		SELECT c.id AS club_id, c.name AS club_name, c.meeting_time, c.location
		FROM memberships m
		JOIN clubs c ON c.id = m.club_id
		WHERE m.user_id = ?
		ORDER BY c.name, c.id
	`, userID)
}
