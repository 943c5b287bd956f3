package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPlayersTurn(t *testing.T) {
	g := newStartedGame(t)

	assert.True(t, g.IsPlayersTurn(0))
	assert.False(t, g.IsPlayersTurn(1))
	assert.False(t, g.IsPlayersTurn(-1))
	assert.False(t, g.IsPlayersTurn(2))
	assert.Equal(t, alice, g.CurrentPlayerID())

	g.advanceTurn()
	assert.True(t, g.IsPlayersTurn(1))
	assert.Equal(t, bob, g.CurrentPlayerID())

	g.advanceTurn()
	assert.Equal(t, 0, g.CurrentTurn)
}

func TestIsPlayersTurn_NoParticipants(t *testing.T) {
	g := &Game{}
	assert.False(t, g.IsPlayersTurn(0))
	assert.Equal(t, "", g.CurrentPlayerID())
	g.advanceTurn()
	assert.Equal(t, 0, g.CurrentTurn)
}
