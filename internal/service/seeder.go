package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/forgo/clubs/api/internal/model"
	"github.com/forgo/clubs/api/internal/seed"
)

// DefaultOwnerPassword is the password given to seeded owner accounts
const DefaultOwnerPassword = "ownerpass123"

// SeedStore wipes all domain rows before a seed
type SeedStore interface {
	ResetAll(ctx context.Context) error
}

// ClubCreator inserts clubs
type ClubCreator interface {
	Create(ctx context.Context, club *model.Club) error
}

// PasswordHasher hashes seeded passwords
type PasswordHasher interface {
	HashPassword(password string) (string, error)
}

// SeederService loads a development data set
type SeederService struct {
	tx     Transactor
	store  SeedStore
	users  UserRepository
	clubs  ClubCreator
	events EventRepository
	hasher PasswordHasher
}

// SeederServiceConfig holds configuration for the seeder service
type SeederServiceConfig struct {
	Tx        Transactor
	Store     SeedStore
	UserRepo  UserRepository
	ClubRepo  ClubCreator
	EventRepo EventRepository
	Hasher    PasswordHasher
}

// NewSeederService creates a new seeder service
func NewSeederService(cfg SeederServiceConfig) *SeederService {
	return &SeederService{
		tx:     transactorOrDefault(cfg.Tx),
		store:  cfg.Store,
		users:  cfg.UserRepo,
		clubs:  cfg.ClubRepo,
		events: cfg.EventRepo,
		hasher: cfg.Hasher,
	}
}

// SeedResult contains the results of a seeding operation
type SeedResult struct {
	Owners   int   `json:"owners"`
	Clubs    int   `json:"clubs"`
	Events   int   `json:"events"`
	Duration int64 `json:"duration_ms"`
}

// Seed replaces every user, club, application, membership, event and RSVP
// with the data set, in one transaction.
func (s *SeederService) Seed(ctx context.Context, ds *seed.Dataset, ownerPassword string) (*SeedResult, error) {
	start := time.Now()
	if ownerPassword == "" {
		ownerPassword = DefaultOwnerPassword
	}

	hash, err := s.hasher.HashPassword(ownerPassword)
	if err != nil {
		return nil, fmt.Errorf("hash owner password: %w", err)
	}

	result := &SeedResult{}
	err = s.tx.WithTx(ctx, func(ctx context.Context) error {
		if err := s.store.ResetAll(ctx); err != nil {
			return fmt.Errorf("reset data: %w", err)
		}

		ownerIDs := make(map[string]int64, len(ds.Owners))
		for _, o := range ds.Owners {
			user := &model.User{
				Email:        normalizeEmail(o.Email),
				PasswordHash: hash,
				Name:         o.Name,
				Role:         model.UserRoleOwner,
			}
			if err := s.users.Create(ctx, user); err != nil {
				return fmt.Errorf("create owner %s: %w", o.Email, err)
			}
			ownerIDs[o.Email] = user.ID
			result.Owners++
		}

		for _, c := range ds.Clubs {
			club := &model.Club{
				Name:        c.Name,
				OwnerID:     ownerIDs[c.Owner],
				MeetingTime: c.MeetingTime,
				Location:    c.Location,
				JoinType:    model.JoinType(c.JoinType),
				Deadline:    c.Deadline,
				Description: c.Description,
			}
			if err := s.clubs.Create(ctx, club); err != nil {
				return fmt.Errorf("create club %s: %w", c.Name, err)
			}
			result.Clubs++

			for _, e := range c.Events {
				event := &model.Event{
					ClubID:      club.ID,
					Title:       e.Title,
					StartTime:   e.StartTime,
					EndTime:     e.EndTime,
					Location:    e.Location,
					Description: e.Description,
				}
				if err := s.events.Create(ctx, event); err != nil {
					return fmt.Errorf("create event %s: %w", e.Title, err)
				}
				result.Events++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result.Duration = time.Since(start).Milliseconds()
	slog.Info("seed complete",
		slog.Int("owners", result.Owners),
		slog.Int("clubs", result.Clubs),
		slog.Int("events", result.Events),
		slog.Int64("duration_ms", result.Duration))
	return result, nil
}
