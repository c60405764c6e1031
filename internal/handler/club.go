package handler

import (
	"context"
	"net/http"

	"github.com/forgo/clubs/api/internal/model"
)

// ClubService is what the club browsing and editing endpoints need
type ClubService interface {
	ListClubs(ctx context.Context, caller model.Identity) ([]model.ClubListing, error)
	GetClub(ctx context.Context, clubID int64) (*model.ClubDetail, error)
	ListOwnedClubs(ctx context.Context, owner model.Identity) ([]model.OwnedClub, error)
	GetOwnedClub(ctx context.Context, owner model.Identity, clubID int64) (*model.Club, error)
	UpdateClub(ctx context.Context, owner model.Identity, clubID int64, req *model.UpdateClubRequest) (*model.Club, error)
	MyApplications(ctx context.Context, caller model.Identity) ([]model.ApplicationWithClub, error)
	MySchedule(ctx context.Context, caller model.Identity) (*model.Schedule, error)
}

// ClubHandler serves club listings, details, and the caller's own views
type ClubHandler struct {
	clubService ClubService
}

// NewClubHandler creates a new club handler
func NewClubHandler(clubService ClubService) *ClubHandler {
	return &ClubHandler{clubService: clubService}
}

// List handles GET /api/clubs
func (h *ClubHandler) List(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	clubs, err := h.clubService.ListClubs(r.Context(), caller)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, nonNil(clubs))
}

// Get handles GET /api/clubs/{id}
func (h *ClubHandler) Get(w http.ResponseWriter, r *http.Request) {
	clubID, ok := pathID(r, "id")
	if !ok {
		WriteError(w, model.NewBadRequestError("Invalid club id"))
		return
	}

	detail, err := h.clubService.GetClub(r.Context(), clubID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	detail.Events = nonNil(detail.Events)
	WriteJSON(w, http.StatusOK, detail)
}

// MyApplications handles GET /api/my/applications
func (h *ClubHandler) MyApplications(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	apps, err := h.clubService.MyApplications(r.Context(), caller)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, nonNil(apps))
}

// MySchedule handles GET /api/my/schedule
func (h *ClubHandler) MySchedule(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	schedule, err := h.clubService.MySchedule(r.Context(), caller)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	schedule.Meetings = nonNil(schedule.Meetings)
	schedule.Events = nonNil(schedule.Events)
	WriteJSON(w, http.StatusOK, schedule)
}

// ListOwned handles GET /api/owner/clubs
func (h *ClubHandler) ListOwned(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	clubs, err := h.clubService.ListOwnedClubs(r.Context(), owner)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, nonNil(clubs))
}

// GetOwned handles GET /api/owner/clubs/{id}
func (h *ClubHandler) GetOwned(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	clubID, ok := pathID(r, "id")
	if !ok {
		WriteError(w, model.NewBadRequestError("Invalid club id"))
		return
	}

	club, err := h.clubService.GetOwnedClub(r.Context(), owner, clubID)
	if err != nil {
		writeServiceError(w, r, err, ownerClubWording)
		return
	}

	WriteJSON(w, http.StatusOK, club)
}

// Update handles PUT /api/owner/clubs/{id}
func (h *ClubHandler) Update(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	clubID, ok := pathID(r, "id")
	if !ok {
		WriteError(w, model.NewBadRequestError("Invalid club id"))
		return
	}

	var req model.UpdateClubRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("Invalid request body"))
		return
	}

	club, err := h.clubService.UpdateClub(r.Context(), owner, clubID, &req)
	if err != nil {
		writeServiceError(w, r, err, ownerClubWording)
		return
	}

	WriteJSON(w, http.StatusOK, club)
}
