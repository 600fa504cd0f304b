package handler

import (
	"net/http"

	"github.com/asyachem/explore-events/internal/model"
	"github.com/asyachem/explore-events/internal/service"
	"github.com/go-chi/chi/v5"
)

// RequestHandler holds the HTTP handlers for participation requests.
type RequestHandler struct {
	svc *service.RequestService
}

// NewRequestHandler constructs a RequestHandler.
func NewRequestHandler(svc *service.RequestService) *RequestHandler {
	return &RequestHandler{svc: svc}
}

// Create handles POST /users/{userId}/requests?eventId=
func (h *RequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, err := h.svc.Create(r.Context(), chi.URLParam(r, "userId"), r.URL.Query().Get("eventId"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, req)
}

// ListOwn handles GET /users/{userId}/requests
func (h *RequestHandler) ListOwn(w http.ResponseWriter, r *http.Request) {
	requests, err := h.svc.ListByRequester(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, requests)
}

// Cancel handles PATCH /users/{userId}/requests/{requestId}/cancel
func (h *RequestHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	req, err := h.svc.Cancel(r.Context(), chi.URLParam(r, "userId"), chi.URLParam(r, "requestId"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

// ListForEvent handles GET /users/{userId}/events/{eventId}/requests
func (h *RequestHandler) ListForEvent(w http.ResponseWriter, r *http.Request) {
	requests, err := h.svc.ListByEvent(r.Context(), chi.URLParam(r, "userId"), chi.URLParam(r, "eventId"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, requests)
}

// ChangeStatus handles PATCH /users/{userId}/events/{eventId}/requests
func (h *RequestHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	var upd model.StatusUpdate
	if err := decodeJSON(r, &upd); err != nil {
		writeError(w, err)
		return
	}
	result, err := h.svc.ChangeStatus(r.Context(), chi.URLParam(r, "userId"), chi.URLParam(r, "eventId"), upd)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
