package handler

import (
	"net/http"

	"github.com/asyachem/explore-events/internal/model"
	"github.com/asyachem/explore-events/internal/service"
	"github.com/go-chi/chi/v5"
)

// EventHandler holds the HTTP handlers for event endpoints.
type EventHandler struct {
	svc *service.EventService
}

// NewEventHandler constructs an EventHandler.
func NewEventHandler(svc *service.EventService) *EventHandler {
	return &EventHandler{svc: svc}
}

// Create handles POST /users/{userId}/events
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.NewEvent
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	event, err := h.svc.Create(r.Context(), chi.URLParam(r, "userId"), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, event)
}

// ListOwn handles GET /users/{userId}/events
func (h *EventHandler) ListOwn(w http.ResponseWriter, r *http.Request) {
	from, size, err := pagination(r)
	if err != nil {
		writeError(w, err)
		return
	}
	events, err := h.svc.ListByInitiator(r.Context(), chi.URLParam(r, "userId"), from, size)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

// GetOwn handles GET /users/{userId}/events/{eventId}
func (h *EventHandler) GetOwn(w http.ResponseWriter, r *http.Request) {
	event, err := h.svc.GetByInitiator(r.Context(), chi.URLParam(r, "userId"), chi.URLParam(r, "eventId"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

// UpdateOwn handles PATCH /users/{userId}/events/{eventId}
func (h *EventHandler) UpdateOwn(w http.ResponseWriter, r *http.Request) {
	var upd model.UpdateEvent
	if err := decodeJSON(r, &upd); err != nil {
		writeError(w, err)
		return
	}
	event, err := h.svc.UpdateByUser(r.Context(), chi.URLParam(r, "userId"), chi.URLParam(r, "eventId"), upd)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

// AdminSearch handles GET /admin/events
func (h *EventHandler) AdminSearch(w http.ResponseWriter, r *http.Request) {
	from, size, err := pagination(r)
	if err != nil {
		writeError(w, err)
		return
	}
	events, err := h.svc.AdminSearch(r.Context(), service.AdminSearchParams{
		Users:      listParam(r, "users"),
		States:     listParam(r, "states"),
		Categories: listParam(r, "categories"),
		RangeStart: r.URL.Query().Get("rangeStart"),
		RangeEnd:   r.URL.Query().Get("rangeEnd"),
		From:       from,
		Size:       size,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

// AdminUpdate handles PATCH /admin/events/{eventId}
func (h *EventHandler) AdminUpdate(w http.ResponseWriter, r *http.Request) {
	var upd model.UpdateEvent
	if err := decodeJSON(r, &upd); err != nil {
		writeError(w, err)
		return
	}
	event, err := h.svc.UpdateByAdmin(r.Context(), chi.URLParam(r, "eventId"), upd)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

// PublicSearch handles GET /events
func (h *EventHandler) PublicSearch(w http.ResponseWriter, r *http.Request) {
	from, size, err := pagination(r)
	if err != nil {
		writeError(w, err)
		return
	}
	paid, err := boolParam(r, "paid")
	if err != nil {
		writeError(w, err)
		return
	}
	events, err := h.svc.PublicSearch(r.Context(), service.PublicSearchParams{
		Text:          r.URL.Query().Get("text"),
		Categories:    listParam(r, "categories"),
		Paid:          paid,
		RangeStart:    r.URL.Query().Get("rangeStart"),
		RangeEnd:      r.URL.Query().Get("rangeEnd"),
		OnlyAvailable: r.URL.Query().Get("onlyAvailable") == "true",
		Sort:          r.URL.Query().Get("sort"),
		From:          from,
		Size:          size,
		URI:           r.URL.Path,
		ClientIP:      r.RemoteAddr,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

// PublicGet handles GET /events/{eventId}
func (h *EventHandler) PublicGet(w http.ResponseWriter, r *http.Request) {
	event, err := h.svc.PublicGet(r.Context(), chi.URLParam(r, "eventId"), r.URL.Path, r.RemoteAddr)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}
