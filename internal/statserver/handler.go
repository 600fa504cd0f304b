package statserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/asyachem/explore-events/internal/apperr"
	"github.com/asyachem/explore-events/internal/stats"
	"github.com/go-chi/chi/v5"
)

// Handler exposes the collector's HTTP surface.
type Handler struct {
	svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Routes builds the collector router.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/hit", h.SaveHit)
	r.Get("/stats", h.GetStats)
	return r
}

// SaveHit handles POST /hit.
func (h *Handler) SaveHit(w http.ResponseWriter, r *http.Request) {
	var hit stats.EndpointHit
	if err := json.NewDecoder(r.Body).Decode(&hit); err != nil {
		h.writeError(w, apperr.BadRequest("invalid request body: %v", err))
		return
	}
	if err := h.svc.SaveHit(r.Context(), hit); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// GetStats handles GET /stats.
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	out, err := h.svc.Stats(r.Context(), q.Get("start"), q.Get("end"), q["uris"], q.Get("unique") == "true")
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, out)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var ae *apperr.Error
	if errors.As(err, &ae) && ae.Kind == apperr.KindBadRequest {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": ae.Message})
		return
	}
	h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
}
