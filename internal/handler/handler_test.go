package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/asyachem/explore-events/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		err    error
		status int
		reason string
	}{
		{apperr.NotFound("gone"), http.StatusNotFound, "The required object was not found."},
		{apperr.BadRequest("bad"), http.StatusBadRequest, "Incorrectly made request."},
		{apperr.Conflict("busy"), http.StatusConflict, "For the requested operation the conditions are not met."},
		{errors.New("boom"), http.StatusInternalServerError, "Internal server error."},
	}
	for _, tt := range tests {
		status, reason := statusOf(tt.err)
		assert.Equal(t, tt.status, status)
		assert.Equal(t, tt.reason, reason)
	}
}

func TestWriteError_HidesInternalDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body ApiError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "internal server error", body.Message)
	assert.NotContains(t, body.Message, "pq:")
}

func TestWriteError_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, apperr.Conflict("the participant limit has been reached"))

	assert.Equal(t, http.StatusConflict, rec.Code)
	var body ApiError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Conflict", body.Status)
	assert.Equal(t, "For the requested operation the conditions are not met.", body.Reason)
	assert.Equal(t, "the participant limit has been reached", body.Message)
	assert.False(t, body.Timestamp.IsZero())
}

func TestPagination(t *testing.T) {
	from, size, err := pagination(httptest.NewRequest(http.MethodGet, "/events", nil))
	require.NoError(t, err)
	assert.Equal(t, 0, from)
	assert.Equal(t, 10, size)

	from, size, err = pagination(httptest.NewRequest(http.MethodGet, "/events?from=20&size=5", nil))
	require.NoError(t, err)
	assert.Equal(t, 20, from)
	assert.Equal(t, 5, size)
}

func TestPagination_Invalid(t *testing.T) {
	for _, target := range []string{
		"/events?from=-1",
		"/events?size=0",
		"/events?from=abc",
	} {
		_, _, err := pagination(httptest.NewRequest(http.MethodGet, target, nil))
		assert.True(t, apperr.IsBadRequest(err), target)
	}
}

func TestListParam(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/admin/events?users=a&users=b,c&users=%20d%20", nil)
	assert.Equal(t, []string{"a", "b", "c", "d"}, listParam(r, "users"))

	r = httptest.NewRequest(http.MethodGet, "/admin/events", nil)
	assert.Nil(t, listParam(r, "users"))
}

func TestBoolParam(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/events?paid=true", nil)
	v, err := boolParam(r, "paid")
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.True(t, *v)

	r = httptest.NewRequest(http.MethodGet, "/events", nil)
	v, err = boolParam(r, "paid")
	require.NoError(t, err)
	assert.Nil(t, v)

	r = httptest.NewRequest(http.MethodGet, "/events?paid=maybe", nil)
	_, err = boolParam(r, "paid")
	assert.True(t, apperr.IsBadRequest(err))
}

func TestDecodeJSON_RejectsUnknownFields(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/admin/users",
		strings.NewReader(`{"name":"x","surprise":true}`))

	var dst struct {
		Name string `json:"name"`
	}
	err := decodeJSON(r, &dst)
	assert.True(t, apperr.IsBadRequest(err))
}

func TestDecodeJSON(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/admin/users",
		strings.NewReader(`{"name":"x"}`))

	var dst struct {
		Name string `json:"name"`
	}
	require.NoError(t, decodeJSON(r, &dst))
	assert.Equal(t, "x", dst.Name)
}
