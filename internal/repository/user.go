package repository

import (
	"context"
	"time"

	"github.com/forgo/clubs/api/internal/database"
	"github.com/forgo/clubs/api/internal/model"
)

const userColumns = `id, email, password_hash, name, role, created_at`

// UserRepository handles user data access
type UserRepository struct {
	db *database.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a user. A taken email returns database.ErrDuplicate.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	if user.Role == "" {
		user.Role = model.UserRoleStudent
	}
	user.CreatedAt = time.Now().UTC()

	id, err := insertID(ctx, r.db.Querier(ctx), `
		INSERT INTO users (email, password_hash, name, role, created_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id
	`, user.Email, user.PasswordHash, user.Name, string(user.Role), user.CreatedAt)
	if err != nil {
		return err
	}
	user.ID = id
	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return getOne[model.User](ctx, r.db.Querier(ctx),
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return getOne[model.User](ctx, r.db.Querier(ctx),
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email)
}
