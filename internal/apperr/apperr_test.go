package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(NotFound("user with id %s not found", "u1")))
	assert.Equal(t, KindBadRequest, KindOf(BadRequest("bad input")))
	assert.Equal(t, KindConflict, KindOf(Conflict("limit reached")))
	assert.Equal(t, Kind(0), KindOf(errors.New("plain")))
	assert.Equal(t, Kind(0), KindOf(nil))
}

func TestKindSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("change status: %w", Conflict("the participant limit has been reached"))
	assert.True(t, IsConflict(err))
	assert.False(t, IsNotFound(err))
}

func TestMessageFormatting(t *testing.T) {
	err := NotFound("event with id %s not found", "evt-42")
	assert.EqualError(t, err, "event with id evt-42 not found")
}
