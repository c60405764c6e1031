package handler

import (
	"context"
	"net/http"

	"github.com/forgo/clubs/api/internal/model"
)

// MembershipService is what the join/apply/decide endpoints need
type MembershipService interface {
	Join(ctx context.Context, caller model.Identity, clubID int64) (*model.JoinResult, error)
	Withdraw(ctx context.Context, caller model.Identity, clubID int64) error
	Leave(ctx context.Context, caller model.Identity, clubID int64) error
	UpdateApplicationStatus(ctx context.Context, owner model.Identity, applicationID int64, status string) error
	ListClubApplications(ctx context.Context, owner model.Identity, clubID int64) ([]model.ApplicationWithStudent, error)
	ListMembers(ctx context.Context, owner model.Identity, clubID int64) (*model.ClubMembers, error)
	RemoveMember(ctx context.Context, owner model.Identity, clubID, userID int64) error
}

// MembershipHandler serves the membership state machine endpoints
type MembershipHandler struct {
	membershipService MembershipService
}

// NewMembershipHandler creates a new membership handler
func NewMembershipHandler(membershipService MembershipService) *MembershipHandler {
	return &MembershipHandler{membershipService: membershipService}
}

// Join handles POST /api/clubs/{id}/join
func (h *MembershipHandler) Join(w http.ResponseWriter, r *http.Request) {
	caller, clubID, ok := callerAndClub(w, r)
	if !ok {
		return
	}

	result, err := h.membershipService.Join(r.Context(), caller, clubID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, result)
}

// Withdraw handles POST /api/clubs/{id}/withdraw
func (h *MembershipHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	caller, clubID, ok := callerAndClub(w, r)
	if !ok {
		return
	}

	if err := h.membershipService.Withdraw(r.Context(), caller, clubID); err != nil {
		writeServiceError(w, r, err)
		return
	}

	WriteMessage(w, "Application withdrawn")
}

// Leave handles POST /api/clubs/{id}/leave
func (h *MembershipHandler) Leave(w http.ResponseWriter, r *http.Request) {
	caller, clubID, ok := callerAndClub(w, r)
	if !ok {
		return
	}

	if err := h.membershipService.Leave(r.Context(), caller, clubID); err != nil {
		writeServiceError(w, r, err)
		return
	}

	WriteMessage(w, "Left club")
}

// ListApplications handles GET /api/owner/clubs/{id}/applications
func (h *MembershipHandler) ListApplications(w http.ResponseWriter, r *http.Request) {
	owner, clubID, ok := callerAndClub(w, r)
	if !ok {
		return
	}

	apps, err := h.membershipService.ListClubApplications(r.Context(), owner, clubID)
	if err != nil {
		writeServiceError(w, r, err, ownerClubWording)
		return
	}

	WriteJSON(w, http.StatusOK, nonNil(apps))
}

// UpdateApplicationStatus handles PATCH /api/owner/applications/{id}
func (h *MembershipHandler) UpdateApplicationStatus(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	appID, ok := pathID(r, "id")
	if !ok {
		WriteError(w, model.NewBadRequestError("Invalid application id"))
		return
	}

	var req model.UpdateApplicationStatusRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("Invalid request body"))
		return
	}

	if err := h.membershipService.UpdateApplicationStatus(r.Context(), owner, appID, req.Status); err != nil {
		writeServiceError(w, r, err)
		return
	}

	WriteMessage(w, "Status updated")
}

// ListMembers handles GET /api/owner/clubs/{id}/members
func (h *MembershipHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	owner, clubID, ok := callerAndClub(w, r)
	if !ok {
		return
	}

	roster, err := h.membershipService.ListMembers(r.Context(), owner, clubID)
	if err != nil {
		writeServiceError(w, r, err, rosterClubWording)
		return
	}

	roster.Members = nonNil(roster.Members)
	WriteJSON(w, http.StatusOK, roster)
}

// RemoveMember handles DELETE /api/owner/clubs/{id}/members/{memberId}
func (h *MembershipHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	owner, clubID, ok := callerAndClub(w, r)
	if !ok {
		return
	}
	memberID, ok := pathID(r, "memberId")
	if !ok {
		WriteError(w, model.NewBadRequestError("Invalid member id"))
		return
	}

	if err := h.membershipService.RemoveMember(r.Context(), owner, clubID, memberID); err != nil {
		writeServiceError(w, r, err, rosterClubWording)
		return
	}

	WriteMessage(w, "Member removed")
}

// callerAndClub resolves the caller and the {id} club path parameter,
// writing the error response when either is missing
func callerAndClub(w http.ResponseWriter, r *http.Request) (model.Identity, int64, bool) {
	caller, ok := requireIdentity(w, r)
	if !ok {
		return model.Identity{}, 0, false
	}
	clubID, ok := pathID(r, "id")
	if !ok {
		WriteError(w, model.NewBadRequestError("Invalid club id"))
		return model.Identity{}, 0, false
	}
	return caller, clubID, true
}
