package handler

import (
	"net/http"

	"github.com/asyachem/explore-events/internal/model"
	"github.com/asyachem/explore-events/internal/service"
	"github.com/go-chi/chi/v5"
)

// CommentHandler holds the HTTP handlers for comments.
type CommentHandler struct {
	svc *service.CommentService
}

// NewCommentHandler constructs a CommentHandler.
func NewCommentHandler(svc *service.CommentService) *CommentHandler {
	return &CommentHandler{svc: svc}
}

// Create handles POST /users/{userId}/comments?eventId=
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.NewComment
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	comment, err := h.svc.Add(r.Context(), chi.URLParam(r, "userId"), r.URL.Query().Get("eventId"), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, comment)
}

// Update handles PATCH /users/{userId}/comments/{commentId}
func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req model.NewComment
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	comment, err := h.svc.Update(r.Context(), chi.URLParam(r, "userId"), chi.URLParam(r, "commentId"), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, comment)
}

// Delete handles DELETE /users/{userId}/comments/{commentId}
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "userId"), chi.URLParam(r, "commentId")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListOwn handles GET /users/{userId}/comments
func (h *CommentHandler) ListOwn(w http.ResponseWriter, r *http.Request) {
	comments, err := h.svc.ListByAuthor(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, comments)
}

// PublicList handles GET /events/{eventId}/comments
func (h *CommentHandler) PublicList(w http.ResponseWriter, r *http.Request) {
	from, size, err := pagination(r)
	if err != nil {
		writeError(w, err)
		return
	}
	comments, err := h.svc.PublishedByEvent(r.Context(), chi.URLParam(r, "eventId"), from, size)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, comments)
}

// PublicGet handles GET /events/{eventId}/comments/{commentId}
func (h *CommentHandler) PublicGet(w http.ResponseWriter, r *http.Request) {
	comment, err := h.svc.PublishedByID(r.Context(), chi.URLParam(r, "eventId"), chi.URLParam(r, "commentId"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, comment)
}

// Pending handles GET /admin/comments
func (h *CommentHandler) Pending(w http.ResponseWriter, r *http.Request) {
	comments, err := h.svc.Pending(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, comments)
}

// Approve handles PATCH /admin/comments/{commentId}/approve
func (h *CommentHandler) Approve(w http.ResponseWriter, r *http.Request) {
	comment, err := h.svc.Approve(r.Context(), chi.URLParam(r, "commentId"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, comment)
}

// Reject handles PATCH /admin/comments/{commentId}/reject
func (h *CommentHandler) Reject(w http.ResponseWriter, r *http.Request) {
	var req model.RejectComment
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	comment, err := h.svc.Reject(r.Context(), chi.URLParam(r, "commentId"), req.Reason)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, comment)
}
