package werrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindRoundTrip(t *testing.T) {
	err := ContentError("window %d too short", 3)
	assert.True(t, Is(err, KindContentError))
	assert.False(t, Is(err, KindInvalidInput))
}

func TestUnexpectedErrorWraps(t *testing.T) {
	cause := errors.New("boom")
	err := UnexpectedError(cause, "driver invariant violated")
	assert.ErrorIs(t, err, cause)
	assert.True(t, Is(err, KindUnexpectedError))
}
