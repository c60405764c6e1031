package handler

import (
	"context"
	"net/http"

	"github.com/forgo/clubs/api/internal/model"
)

// EventService is what the event and RSVP endpoints need
type EventService interface {
	CreateEvent(ctx context.Context, owner model.Identity, clubID int64, req *model.CreateEventRequest) (*model.Event, error)
	ListClubEvents(ctx context.Context, owner model.Identity, clubID int64) (*model.ClubEvents, error)
	UpdateEvent(ctx context.Context, owner model.Identity, eventID int64, req *model.UpdateEventRequest) (*model.Event, error)
	DeleteEvent(ctx context.Context, owner model.Identity, eventID int64) error
	SetRSVP(ctx context.Context, caller model.Identity, eventID int64, desired *bool) (bool, error)
	ListRSVPs(ctx context.Context, owner model.Identity, eventID int64) ([]model.Attendee, error)
}

// EventHandler handles event endpoints
type EventHandler struct {
	eventService EventService
}

// NewEventHandler creates a new event handler
func NewEventHandler(eventService EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// ListForClub handles GET /api/owner/clubs/{id}/events
func (h *EventHandler) ListForClub(w http.ResponseWriter, r *http.Request) {
	owner, clubID, ok := callerAndClub(w, r)
	if !ok {
		return
	}

	result, err := h.eventService.ListClubEvents(r.Context(), owner, clubID)
	if err != nil {
		writeServiceError(w, r, err, ownerClubWording)
		return
	}

	result.Events = nonNil(result.Events)
	WriteJSON(w, http.StatusOK, result)
}

// Create handles POST /api/owner/clubs/{id}/events
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	owner, clubID, ok := callerAndClub(w, r)
	if !ok {
		return
	}

	var req model.CreateEventRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("Invalid request body"))
		return
	}

	event, err := h.eventService.CreateEvent(r.Context(), owner, clubID, &req)
	if err != nil {
		writeServiceError(w, r, err, ownerClubWording)
		return
	}

	WriteJSON(w, http.StatusCreated, event)
}

// Update handles PUT /api/owner/events/{id}
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	owner, eventID, ok := callerAndEvent(w, r)
	if !ok {
		return
	}

	var req model.UpdateEventRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("Invalid request body"))
		return
	}

	event, err := h.eventService.UpdateEvent(r.Context(), owner, eventID, &req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, event)
}

// Delete handles DELETE /api/owner/events/{id}
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	owner, eventID, ok := callerAndEvent(w, r)
	if !ok {
		return
	}

	if err := h.eventService.DeleteEvent(r.Context(), owner, eventID); err != nil {
		writeServiceError(w, r, err)
		return
	}

	WriteMessage(w, "Event deleted")
}

// RSVP handles POST /api/events/{id}/rsvp. The body's "rsvp" sets the state;
// an empty body toggles it.
func (h *EventHandler) RSVP(w http.ResponseWriter, r *http.Request) {
	caller, eventID, ok := callerAndEvent(w, r)
	if !ok {
		return
	}

	var req model.RSVPRequest
	if err := decodeOptionalJSON(w, r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("Invalid request body"))
		return
	}

	rsvped, err := h.eventService.SetRSVP(r.Context(), caller, eventID, req.RSVP)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, model.RSVPResponse{RSVPed: rsvped})
}

// ListRSVPs handles GET /api/owner/events/{id}/rsvps
func (h *EventHandler) ListRSVPs(w http.ResponseWriter, r *http.Request) {
	owner, eventID, ok := callerAndEvent(w, r)
	if !ok {
		return
	}

	attendees, err := h.eventService.ListRSVPs(r.Context(), owner, eventID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, nonNil(attendees))
}

func callerAndEvent(w http.ResponseWriter, r *http.Request) (model.Identity, int64, bool) {
	caller, ok := requireIdentity(w, r)
	if !ok {
		return model.Identity{}, 0, false
	}
	eventID, ok := pathID(r, "id")
	if !ok {
		WriteError(w, model.NewBadRequestError("Invalid event id"))
		return model.Identity{}, 0, false
	}
	return caller, eventID, true
}
