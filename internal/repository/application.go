package repository

import (
	"context"
	"time"

	"github.com/forgo/clubs/api/internal/database"
	"github.com/forgo/clubs/api/internal/model"
)

const applicationColumns = `a.id, a.club_id, a.user_id, a.status, a.created_at`

// ApplicationRepository handles club application data access
type ApplicationRepository struct {
	db *database.DB
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *database.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

// CreatePending inserts a pending application. An existing row for the pair
// is left untouched and false is returned.
func (r *ApplicationRepository) CreatePending(ctx context.Context, clubID, userID int64) (bool, error) {
	return execAffected(ctx, r.db.Querier(ctx), `
		INSERT INTO club_applications (club_id, user_id, status, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (club_id, user_id) DO NOTHING
	`, clubID, userID, string(model.ApplicationStatusPending), time.Now().UTC())
}

// GetByID retrieves an application by ID
func (r *ApplicationRepository) GetByID(ctx context.Context, id int64) (*model.Application, error) {
	return getOne[model.Application](ctx, r.db.Querier(ctx),
		`SELECT `+applicationColumns+` FROM club_applications a WHERE a.id = ?`, id)
}

// GetByClubAndUser retrieves the application for a (club, user) pair
func (r *ApplicationRepository) GetByClubAndUser(ctx context.Context, clubID, userID int64) (*model.Application, error) {
	return getOne[model.Application](ctx, r.db.Querier(ctx),
		`SELECT `+applicationColumns+` FROM club_applications a WHERE a.club_id = ? AND a.user_id = ?`,
		clubID, userID)
}

// UpdateStatus sets an application's status
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id int64, status model.ApplicationStatus) error {
	ok, err := execAffected(ctx, r.db.Querier(ctx),
		`UPDATE club_applications SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return err
	}
	if !ok {
		return database.ErrNotFound
	}
	return nil
}

// Delete removes an application by ID
func (r *ApplicationRepository) Delete(ctx context.Context, id int64) error {
	_, err := execAffected(ctx, r.db.Querier(ctx), `DELETE FROM club_applications WHERE id = ?`, id)
	return err
}

// DeleteByClubAndUser removes the application for a pair, if any
func (r *ApplicationRepository) DeleteByClubAndUser(ctx context.Context, clubID, userID int64) (bool, error) {
	return execAffected(ctx, r.db.Querier(ctx),
		`DELETE FROM club_applications WHERE club_id = ? AND user_id = ?`, clubID, userID)
}

// ListByClub lists a club's applications with applicant details, newest first
func (r *ApplicationRepository) ListByClub(ctx context.Context, clubID int64) ([]model.ApplicationWithStudent, error) {
	return selectAll[model.ApplicationWithStudent](ctx, r.db.Querier(ctx), `
		SELECT `+applicationColumns+`, u.name AS student_name, u.email AS student_email
		FROM club_applications a
		JOIN users u ON u.id = a.user_id
		WHERE a.club_id = ?
		ORDER BY a.created_at DESC, a.id DESC
	`, clubID)
}

// ListByUser lists a user's applications with club names, newest first
func (r *ApplicationRepository) ListByUser(ctx context.Context, userID int64) ([]model.ApplicationWithClub, error) {
	return selectAll[model.ApplicationWithClub](ctx, r.db.Querier(ctx), `
		SELECT `+applicationColumns+`, c.name AS club_name
		FROM club_applications a
		JOIN clubs c ON c.id = a.club_id
		WHERE a.user_id = ?
		ORDER BY a.created_at DESC, a.id DESC
	`, userID)
}
