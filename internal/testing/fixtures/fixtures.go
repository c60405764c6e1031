// Package fixtures provides test data factories for e2e testing.
//
// Each factory method creates entities with sensible defaults while allowing
// customization via option functions. Factories insert rows directly and
// return fully populated models.
//
// Usage:
//
//	f := fixtures.New(tdb.DB)
//	owner := f.CreateOwner(t)
//	club := f.CreateClub(t, owner)
//	event := f.CreateEvent(t, club)
package fixtures

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/forgo/clubs/api/internal/database"
	"github.com/forgo/clubs/api/internal/model"

	"golang.org/x/crypto/bcrypt"
)

// DefaultPassword is the password of every fixture user
const DefaultPassword = "testpass123"

// Factory creates test entities in the database
type Factory struct {
	db *database.DB
}

// New creates a new fixture factory
func New(db *database.DB) *Factory {
	return &Factory{db: db}
}

// randomID generates a random hex ID
func randomID() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func (f *Factory) insert(t *testing.T, what, query string, args ...interface{}) int64 {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	q := f.db.Querier(ctx)
	var id int64
	if err := q.QueryRowxContext(ctx, q.Rebind(query+" RETURNING id"), args...).Scan(&id); err != nil {
		t.Fatalf("fixtures: failed to create %s: %v", what, err)
	}
	return id
}

// ============================================================================
// User Fixtures
// ============================================================================

// UserOpts customizes user creation
type UserOpts struct {
	Email    string
	Name     string
	Password string
	Role     model.UserRole
}

// WithEmail sets the user's email
func WithEmail(email string) func(*UserOpts) {
	return func(o *UserOpts) { o.Email = email }
}

// WithName sets the user's display name
func WithName(name string) func(*UserOpts) {
	return func(o *UserOpts) { o.Name = name }
}

// CreateUser creates a student with optional customizations
func (f *Factory) CreateUser(t *testing.T, opts ...func(*UserOpts)) *model.User {
	t.Helper()

	id := randomID()
	o := &UserOpts{
		Email:    fmt.Sprintf("user_%s@test.local", id),
		Name:     fmt.Sprintf("User %s", id),
		Password: DefaultPassword,
		Role:     model.UserRoleStudent,
	}
	for _, fn := range opts {
		fn(o)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(o.Password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("fixtures: failed to hash password: %v", err)
	}

	user := &model.User{
		Email:     o.Email,
		Name:      o.Name,
		Role:      o.Role,
		CreatedAt: time.Now().UTC(),
	}
	user.ID = f.insert(t, "user",
		`INSERT INTO users (email, password_hash, name, role, created_at) VALUES (?, ?, ?, ?, ?)`,
		user.Email, string(hash), user.Name, string(user.Role), user.CreatedAt)
	return user
}

// CreateOwner creates a club owner
func (f *Factory) CreateOwner(t *testing.T, opts ...func(*UserOpts)) *model.User {
	t.Helper()
	return f.CreateUser(t, append([]func(*UserOpts){func(o *UserOpts) {
		o.Role = model.UserRoleOwner
	}}, opts...)...)
}

// ============================================================================
// Club Fixtures
// ============================================================================

// ClubOpts customizes club creation
type ClubOpts struct {
	Name        string
	JoinType    model.JoinType
	MeetingTime string
	Location    string
	Description string
	OwnerName   string
	OwnerEmail  string
}

// WithJoinType sets the club's join type
func WithJoinType(jt model.JoinType) func(*ClubOpts) {
	return func(o *ClubOpts) { o.JoinType = jt }
}

// WithClubName sets the club's name
func WithClubName(name string) func(*ClubOpts) {
	return func(o *ClubOpts) { o.Name = name }
}

// CreateClub creates a club owned by owner
func (f *Factory) CreateClub(t *testing.T, owner *model.User, opts ...func(*ClubOpts)) *model.Club {
	t.Helper()

	o := &ClubOpts{
		Name:        fmt.Sprintf("Club %s", randomID()),
		JoinType:    model.JoinTypeOpen,
		MeetingTime: "Mondays, 7:00 PM",
		Location:    "Dwight Hall",
		Description: "Test club description",
	}
	for _, fn := range opts {
		fn(o)
	}

	club := &model.Club{
		Name:        o.Name,
		OwnerID:     owner.ID,
		MeetingTime: o.MeetingTime,
		Location:    o.Location,
		JoinType:    o.JoinType,
		Description: o.Description,
		OwnerName:   o.OwnerName,
		OwnerEmail:  o.OwnerEmail,
	}
	club.ID = f.insert(t, "club", `
		INSERT INTO clubs (name, owner_id, meeting_time, location, join_type, description, owner_name, owner_email)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		club.Name, club.OwnerID, club.MeetingTime, club.Location, string(club.JoinType),
		club.Description, club.OwnerName, club.OwnerEmail)
	return club
}

// ============================================================================
// Membership Fixtures
// ============================================================================

// AddMember makes user a member of club
func (f *Factory) AddMember(t *testing.T, club *model.Club, user *model.User) {
	t.Helper()
	f.insert(t, "membership",
		`INSERT INTO memberships (club_id, user_id, role, joined_at) VALUES (?, ?, ?, ?)`,
		club.ID, user.ID, model.MembershipRoleMember, time.Now().UTC())
}

// CreateApplication records an application with the given status
func (f *Factory) CreateApplication(t *testing.T, club *model.Club, user *model.User, status model.ApplicationStatus) *model.Application {
	t.Helper()

	app := &model.Application{
		ClubID:    club.ID,
		UserID:    user.ID,
		Status:    status,
		CreatedAt: time.Now().UTC(),
	}
	app.ID = f.insert(t, "application",
		`INSERT INTO club_applications (club_id, user_id, status, created_at) VALUES (?, ?, ?, ?)`,
		app.ClubID, app.UserID, string(app.Status), app.CreatedAt)
	return app
}

// ============================================================================
// Event Fixtures
// ============================================================================

// EventOpts customizes event creation
type EventOpts struct {
	Title     string
	StartTime string
	EndTime   string
	Location  string
}

// WithStartTime sets the event's start and end, one hour apart
func WithStartTime(start time.Time) func(*EventOpts) {
	return func(o *EventOpts) {
		o.StartTime = start.Format("2006-01-02T15:04")
		o.EndTime = start.Add(time.Hour).Format("2006-01-02T15:04")
	}
}

// CreateEvent creates an event in club
func (f *Factory) CreateEvent(t *testing.T, club *model.Club, opts ...func(*EventOpts)) *model.Event {
	t.Helper()

	o := &EventOpts{
		Title:     fmt.Sprintf("Event %s", randomID()),
		StartTime: "2025-03-01T18:00",
		EndTime:   "2025-03-01T20:00",
		Location:  "Sterling Library",
	}
	for _, fn := range opts {
		fn(o)
	}

	event := &model.Event{
		ClubID:    club.ID,
		Title:     o.Title,
		StartTime: o.StartTime,
		EndTime:   o.EndTime,
		Location:  o.Location,
	}
	event.ID = f.insert(t, "event",
		`INSERT INTO events (club_id, title, start_time, end_time, location) VALUES (?, ?, ?, ?, ?)`,
		event.ClubID, event.Title, event.StartTime, event.EndTime, event.Location)
	return event
}

// RSVP records user's RSVP to event
func (f *Factory) RSVP(t *testing.T, event *model.Event, user *model.User) {
	t.Helper()
	f.insert(t, "rsvp",
		`INSERT INTO event_rsvps (event_id, user_id, created_at) VALUES (?, ?, ?)`,
		event.ID, user.ID, time.Now().UTC())
}
