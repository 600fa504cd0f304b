package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateTimeWireFormat(t *testing.T) {
	d, err := ParseDateTime("2026-03-01 18:30:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 1, 18, 30, 0, 0, time.UTC), d.Time())
	assert.Equal(t, "2026-03-01 18:30:00", d.String())
}

func TestParseDateTime_Invalid(t *testing.T) {
	_, err := ParseDateTime("2026-03-01T18:30:00Z")
	assert.Error(t, err)
	_, err = ParseDateTime("not a date")
	assert.Error(t, err)
}

func TestDateTimeJSON(t *testing.T) {
	d := DateTime(time.Date(2026, 3, 1, 18, 30, 0, 0, time.UTC))

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2026-03-01 18:30:00"`, string(b))

	var back DateTime
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, d.Time(), back.Time())
}

func TestDateTimeJSON_Null(t *testing.T) {
	b, err := json.Marshal(DateTime{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))

	var d DateTime
	require.NoError(t, json.Unmarshal([]byte("null"), &d))
	assert.True(t, d.IsZero())
}

func TestDateTimeJSON_RejectsNonString(t *testing.T) {
	var d DateTime
	assert.Error(t, json.Unmarshal([]byte("12345"), &d))
}
