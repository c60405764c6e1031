package repository

import (
	"context"

	"github.com/forgo/clubs/api/internal/database"
	"github.com/forgo/clubs/api/internal/model"
)

const clubColumns = `c.id, c.name, c.owner_id, c.meeting_time, c.location, c.join_type,
	c.deadline, c.description, c.owner_name, c.owner_email`

// Owner contact falls back to the owning account when no override is stored.
const clubDisplayColumns = `c.id, c.name, c.owner_id, c.meeting_time, c.location, c.join_type,
	c.deadline, c.description,
	COALESCE(NULLIF(c.owner_name, ''), u.name) AS owner_name,
	COALESCE(NULLIF(c.owner_email, ''), u.email) AS owner_email`

// ClubRepository handles club data access
type ClubRepository struct {
	db *database.DB
}

// NewClubRepository creates a new club repository
func NewClubRepository(db *database.DB) *ClubRepository {
	return &ClubRepository{db: db}
}

// Create inserts a club
func (r *ClubRepository) Create(ctx context.Context, club *model.Club) error {
	id, err := insertID(ctx, r.db.Querier(ctx), `
		INSERT INTO clubs (name, owner_id, meeting_time, location, join_type, deadline,
			description, owner_name, owner_email)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`, club.Name, club.OwnerID, club.MeetingTime, club.Location, string(club.JoinType), nullString(club.Deadline),
		club.Description, club.OwnerName, club.OwnerEmail)
	if err != nil {
		return err
	}
	club.ID = id
	return nil
}

// GetByID retrieves a club as stored
func (r *ClubRepository) GetByID(ctx context.Context, id int64) (*model.Club, error) {
	return getOne[model.Club](ctx, r.db.Querier(ctx),
		`SELECT `+clubColumns+` FROM clubs c WHERE c.id = ?`, id)
}

// GetForDisplay retrieves a club with owner contact resolved
func (r *ClubRepository) GetForDisplay(ctx context.Context, id int64) (*model.Club, error) {
	return getOne[model.Club](ctx, r.db.Querier(ctx), `
		SELECT `+clubDisplayColumns+`
		FROM clubs c
		JOIN users u ON u.id = c.owner_id
		WHERE c.id = ?
	`, id)
}

// ListForViewer lists every club by name with member_count,
// application_status and is_member computed for viewerID
func (r *ClubRepository) ListForViewer(ctx context.Context, viewerID int64) ([]model.ClubListing, error) {
	return selectAll[model.ClubListing](ctx, r.db.Querier(ctx), `
		SELECT `+clubDisplayColumns+`,
			(SELECT COUNT(*) FROM memberships m WHERE m.club_id = c.id) AS member_count,
			COALESCE((
				SELECT a.status FROM club_applications a
				WHERE a.club_id = c.id AND a.user_id = ?
			), '') AS application_status,
			EXISTS (
				SELECT 1 FROM memberships m2
				WHERE m2.club_id = c.id AND m2.user_id = ?
			) AS is_member
		FROM clubs c
		JOIN users u ON u.id = c.owner_id
		ORDER BY c.name, c.id
	`, viewerID, viewerID)
}

// ListByOwner lists an owner's clubs with their member counts
func (r *ClubRepository) ListByOwner(ctx context.Context, ownerID int64) ([]model.OwnedClub, error) {
	return selectAll[model.OwnedClub](ctx, r.db.Querier(ctx), `
		SELECT `+clubColumns+`,
			(SELECT COUNT(*) FROM memberships m WHERE m.club_id = c.id) AS member_count
		FROM clubs c
		WHERE c.owner_id = ?
		ORDER BY c.name, c.id
	`, ownerID)
}

// Update overwrites a club's editable fields
func (r *ClubRepository) Update(ctx context.Context, club *model.Club) error {
	ok, err := execAffected(ctx, r.db.Querier(ctx), `
		UPDATE clubs
		SET name = ?, meeting_time = ?, location = ?, join_type = ?, deadline = ?,
			description = ?, owner_name = ?, owner_email = ?
		WHERE id = ?
	`, club.Name, club.MeetingTime, club.Location, string(club.JoinType), nullString(club.Deadline),
		club.Description, club.OwnerName, club.OwnerEmail, club.ID)
	if err != nil {
		return err
	}
	if !ok {
		return database.ErrNotFound
	}
	return nil
}
