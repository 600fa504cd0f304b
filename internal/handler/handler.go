// Package handler contains chi HTTP handlers that translate HTTP
// requests/responses to and from the service layer.
package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/asyachem/explore-events/internal/apperr"
	"github.com/asyachem/explore-events/internal/model"
)

// ApiError is the JSON error envelope of the API.
type ApiError struct {
	Status    string         `json:"status"`
	Reason    string         `json:"reason"`
	Message   string         `json:"message"`
	Timestamp model.DateTime `json:"timestamp"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps a domain error onto the API's error contract.
func writeError(w http.ResponseWriter, err error) {
	status, reason := statusOf(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal server error"
	}
	writeJSON(w, status, ApiError{
		Status:    http.StatusText(status),
		Reason:    reason,
		Message:   msg,
		Timestamp: model.Now(),
	})
}

// statusOf translates an error category into an HTTP status and the
// contract's fixed reason phrase.
func statusOf(err error) (int, string) {
	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		return http.StatusNotFound, "The required object was not found."
	case apperr.KindBadRequest:
		return http.StatusBadRequest, "Incorrectly made request."
	case apperr.KindConflict:
		return http.StatusConflict, "For the requested operation the conditions are not met."
	default:
		return http.StatusInternalServerError, "Internal server error."
	}
}

func decodeJSON(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, 1<<20) // 1 MB limit
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return apperr.BadRequest("invalid request body: %v", err)
	}
	return nil
}

// pagination reads the from/size query parameters with the API defaults.
func pagination(r *http.Request) (from, size int, err error) {
	from, err = intParam(r, "from", 0)
	if err != nil {
		return 0, 0, err
	}
	size, err = intParam(r, "size", 10)
	if err != nil {
		return 0, 0, err
	}
	if from < 0 || size <= 0 {
		return 0, 0, apperr.BadRequest("from must be >= 0 and size > 0")
	}
	return from, size, nil
}

func intParam(r *http.Request, key string, def int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperr.BadRequest("%s must be an integer", key)
	}
	return v, nil
}

// listParam collects a multi-valued query parameter, accepting both
// repeated keys and comma-separated values.
func listParam(r *http.Request, key string) []string {
	var out []string
	for _, raw := range r.URL.Query()[key] {
		for _, v := range strings.Split(raw, ",") {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}

func boolParam(r *http.Request, key string) (*bool, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, apperr.BadRequest("%s must be a boolean", key)
	}
	return &v, nil
}

// HealthCheck handles GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
