package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGameError_ClosedSet(t *testing.T) {
	codes := make(map[string]bool)
	messages := make(map[string]bool)

	for _, e := range AllErrors {
		assert.NotEqual(t, "UNKNOWN", e.Code())
		assert.NotEqual(t, "unknown game error", e.Error())
		assert.False(t, codes[e.Code()], "duplicate code %s", e.Code())
		assert.False(t, messages[e.Error()], "duplicate message %s", e.Error())
		codes[e.Code()] = true
		messages[e.Error()] = true
	}

	assert.Len(t, codes, 11)
	assert.Equal(t, "UNKNOWN", GameError(0).Code())
}

func TestGameError_Is(t *testing.T) {
	wrapped := fmt.Errorf("join game-1: %w", ErrGameFull)

	assert.True(t, errors.Is(wrapped, ErrGameFull))
	assert.False(t, errors.Is(wrapped, ErrGameAlreadyStarted))

	var ge GameError
	assert.True(t, errors.As(wrapped, &ge))
	assert.Equal(t, ErrGameFull, ge)
}
