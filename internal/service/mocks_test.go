package service

import (
	"context"
	"sort"
	"time"

	"github.com/forgo/clubs/api/internal/database"
	"github.com/forgo/clubs/api/internal/model"
)

// ============================================================================
// Users
// ============================================================================

type mockUserRepo struct {
	users      map[int64]*model.User
	emailIndex map[string]*model.User
	nextID     int64
	createErr  error
	getErr     error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		users:      make(map[int64]*model.User),
		emailIndex: make(map[string]*model.User),
	}
}

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	if _, ok := m.emailIndex[user.Email]; ok {
		return database.ErrDuplicate
	}
	m.nextID++
	user.ID = m.nextID
	user.CreatedAt = time.Now().UTC()
	m.users[user.ID] = user
	m.emailIndex[user.Email] = user
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.users[id], nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.emailIndex[email], nil
}

// ============================================================================
// Clubs
// ============================================================================

type mockClubRepo struct {
	clubs     map[int64]*model.Club
	nextID    int64
	getErr    error
	updateErr error
}

func newMockClubRepo() *mockClubRepo {
	return &mockClubRepo{clubs: make(map[int64]*model.Club)}
}

func (m *mockClubRepo) add(ownerID int64, jt model.JoinType) *model.Club {
	m.nextID++
	club := &model.Club{ID: m.nextID, Name: "Club", OwnerID: ownerID, JoinType: jt}
	m.clubs[club.ID] = club
	return club
}

func (m *mockClubRepo) Create(ctx context.Context, club *model.Club) error {
	m.nextID++
	club.ID = m.nextID
	c := *club
	m.clubs[club.ID] = &c
	return nil
}

func (m *mockClubRepo) GetByID(ctx context.Context, id int64) (*model.Club, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	c, ok := m.clubs[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (m *mockClubRepo) GetForDisplay(ctx context.Context, id int64) (*model.Club, error) {
	return m.GetByID(ctx, id)
}

func (m *mockClubRepo) ListForViewer(ctx context.Context, viewerID int64) ([]model.ClubListing, error) {
	out := []model.ClubListing{}
	for _, id := range sortedKeys(m.clubs) {
		out = append(out, model.ClubListing{Club: *m.clubs[id]})
	}
	return out, nil
}

func (m *mockClubRepo) ListByOwner(ctx context.Context, ownerID int64) ([]model.OwnedClub, error) {
	out := []model.OwnedClub{}
	for _, id := range sortedKeys(m.clubs) {
		if m.clubs[id].OwnerID == ownerID {
			out = append(out, model.OwnedClub{Club: *m.clubs[id]})
		}
	}
	return out, nil
}

func (m *mockClubRepo) Update(ctx context.Context, club *model.Club) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	c := *club
	m.clubs[club.ID] = &c
	return nil
}

// ============================================================================
// Applications
// ============================================================================

type mockApplicationRepo struct {
	apps   map[int64]*model.Application
	nextID int64
}

func newMockApplicationRepo() *mockApplicationRepo {
	return &mockApplicationRepo{apps: make(map[int64]*model.Application)}
}

func (m *mockApplicationRepo) find(clubID, userID int64) *model.Application {
	for _, a := range m.apps {
		if a.ClubID == clubID && a.UserID == userID {
			return a
		}
	}
	return nil
}

func (m *mockApplicationRepo) add(clubID, userID int64, status model.ApplicationStatus) *model.Application {
	m.nextID++
	app := &model.Application{ID: m.nextID, ClubID: clubID, UserID: userID, Status: status}
	m.apps[app.ID] = app
	return app
}

func (m *mockApplicationRepo) CreatePending(ctx context.Context, clubID, userID int64) (bool, error) {
	if m.find(clubID, userID) != nil {
		return false, nil
	}
	m.add(clubID, userID, model.ApplicationStatusPending)
	return true, nil
}

func (m *mockApplicationRepo) GetByID(ctx context.Context, id int64) (*model.Application, error) {
	a, ok := m.apps[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (m *mockApplicationRepo) GetByClubAndUser(ctx context.Context, clubID, userID int64) (*model.Application, error) {
	a := m.find(clubID, userID)
	if a == nil {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (m *mockApplicationRepo) UpdateStatus(ctx context.Context, id int64, status model.ApplicationStatus) error {
	if a, ok := m.apps[id]; ok {
		a.Status = status
	}
	return nil
}

func (m *mockApplicationRepo) Delete(ctx context.Context, id int64) error {
	delete(m.apps, id)
	return nil
}

func (m *mockApplicationRepo) DeleteByClubAndUser(ctx context.Context, clubID, userID int64) (bool, error) {
	a := m.find(clubID, userID)
	if a == nil {
		return false, nil
	}
	delete(m.apps, a.ID)
	return true, nil
}

func (m *mockApplicationRepo) ListByClub(ctx context.Context, clubID int64) ([]model.ApplicationWithStudent, error) {
	out := []model.ApplicationWithStudent{}
	for _, id := range sortedKeys(m.apps) {
		if a := m.apps[id]; a.ClubID == clubID {
			out = append(out, model.ApplicationWithStudent{Application: *a})
		}
	}
	return out, nil
}

func (m *mockApplicationRepo) ListByUser(ctx context.Context, userID int64) ([]model.ApplicationWithClub, error) {
	out := []model.ApplicationWithClub{}
	for _, id := range sortedKeys(m.apps) {
		if a := m.apps[id]; a.UserID == userID {
			out = append(out, model.ApplicationWithClub{Application: *a})
		}
	}
	return out, nil
}

// ============================================================================
// Memberships
// ============================================================================

type membershipKey struct{ clubID, userID int64 }

type mockMembershipRepo struct {
	members   map[membershipKey]bool
	ensureErr error
}

func newMockMembershipRepo() *mockMembershipRepo {
	return &mockMembershipRepo{members: make(map[membershipKey]bool)}
}

func (m *mockMembershipRepo) Ensure(ctx context.Context, clubID, userID int64) (bool, error) {
	if m.ensureErr != nil {
		return false, m.ensureErr
	}
	k := membershipKey{clubID, userID}
	if m.members[k] {
		return false, nil
	}
	m.members[k] = true
	return true, nil
}

func (m *mockMembershipRepo) Remove(ctx context.Context, clubID, userID int64) (bool, error) {
	k := membershipKey{clubID, userID}
	if !m.members[k] {
		return false, nil
	}
	delete(m.members, k)
	return true, nil
}

func (m *mockMembershipRepo) Exists(ctx context.Context, clubID, userID int64) (bool, error) {
	return m.members[membershipKey{clubID, userID}], nil
}

func (m *mockMembershipRepo) ListMembers(ctx context.Context, clubID int64) ([]model.Member, error) {
	out := []model.Member{}
	for k := range m.members {
		if k.clubID == clubID {
			out = append(out, model.Member{ID: k.userID, Role: model.MembershipRoleMember})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockMembershipRepo) ListMeetings(ctx context.Context, userID int64) ([]model.Meeting, error) {
	out := []model.Meeting{}
	for k := range m.members {
		if k.userID == userID {
			out = append(out, model.Meeting{ClubID: k.clubID})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ClubID < out[j].ClubID })
	return out, nil
}

// ============================================================================
// Events and RSVPs
// ============================================================================

type mockEventRepo struct {
	events map[int64]*model.Event
	nextID int64
}

func newMockEventRepo() *mockEventRepo {
	return &mockEventRepo{events: make(map[int64]*model.Event)}
}

func (m *mockEventRepo) add(clubID int64) *model.Event {
	m.nextID++
	e := &model.Event{
		ID:        m.nextID,
		ClubID:    clubID,
		Title:     "Meetup",
		StartTime: "2025-03-01T18:00",
		EndTime:   "2025-03-01T20:00",
	}
	m.events[e.ID] = e
	return e
}

func (m *mockEventRepo) Create(ctx context.Context, event *model.Event) error {
	m.nextID++
	event.ID = m.nextID
	e := *event
	m.events[event.ID] = &e
	return nil
}

func (m *mockEventRepo) GetByID(ctx context.Context, id int64) (*model.Event, error) {
	e, ok := m.events[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (m *mockEventRepo) Update(ctx context.Context, event *model.Event) error {
	e := *event
	m.events[event.ID] = &e
	return nil
}

func (m *mockEventRepo) Delete(ctx context.Context, id int64) error {
	delete(m.events, id)
	return nil
}

func (m *mockEventRepo) ListByClub(ctx context.Context, clubID int64) ([]model.Event, error) {
	out := []model.Event{}
	for _, id := range sortedKeys(m.events) {
		if e := m.events[id]; e.ClubID == clubID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (m *mockEventRepo) ListByClubWithRSVP(ctx context.Context, clubID, viewerID int64) ([]model.EventWithRSVP, error) {
	events, _ := m.ListByClub(ctx, clubID)
	out := make([]model.EventWithRSVP, 0, len(events))
	for _, e := range events {
		out = append(out, model.EventWithRSVP{Event: e})
	}
	return out, nil
}

func (m *mockEventRepo) ListForMember(ctx context.Context, userID int64) ([]model.ScheduleEvent, error) {
	return []model.ScheduleEvent{}, nil
}

type rsvpKey struct{ eventID, userID int64 }

type mockRSVPRepo struct {
	rsvps map[rsvpKey]bool
}

func newMockRSVPRepo() *mockRSVPRepo {
	return &mockRSVPRepo{rsvps: make(map[rsvpKey]bool)}
}

func (m *mockRSVPRepo) Exists(ctx context.Context, eventID, userID int64) (bool, error) {
	return m.rsvps[rsvpKey{eventID, userID}], nil
}

func (m *mockRSVPRepo) Create(ctx context.Context, eventID, userID int64) (bool, error) {
	k := rsvpKey{eventID, userID}
	if m.rsvps[k] {
		return false, nil
	}
	m.rsvps[k] = true
	return true, nil
}

func (m *mockRSVPRepo) Delete(ctx context.Context, eventID, userID int64) (bool, error) {
	k := rsvpKey{eventID, userID}
	if !m.rsvps[k] {
		return false, nil
	}
	delete(m.rsvps, k)
	return true, nil
}

func (m *mockRSVPRepo) ListByEvent(ctx context.Context, eventID int64) ([]model.Attendee, error) {
	out := []model.Attendee{}
	for k := range m.rsvps {
		if k.eventID == eventID {
			out = append(out, model.Attendee{UserID: k.userID})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

// ============================================================================
// Transactions and observers
// ============================================================================

// recordingTx runs fn directly and counts invocations.
type recordingTx struct {
	calls int
}

func (r *recordingTx) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	r.calls++
	return fn(ctx)
}

type recordingObserver struct {
	transitions []string
}

func (r *recordingObserver) ObserveTransition(action string) {
	r.transitions = append(r.transitions, action)
}

// ============================================================================
// Helpers
// ============================================================================

func sortedKeys[V any](m map[int64]V) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func student(id int64) model.Identity {
	return model.Identity{ID: id, Email: "student@yale.edu", Name: "Student", Role: model.UserRoleStudent}
}

func owner(id int64) model.Identity {
	return model.Identity{ID: id, Email: "owner@yale.edu", Name: "Owner", Role: model.UserRoleOwner}
}
