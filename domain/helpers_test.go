package domain

import (
	"testing"

	"github.com/lazharichir/stakecards/cards"
	"github.com/stretchr/testify/require"
)

const (
	alice = "alice"
	bob   = "bob"
	carol = "carol"
	stake = DefaultMinStake
)

func mustCard(t *testing.T, s string) cards.Card {
	t.Helper()
	c, err := cards.CardFromString(s)
	require.NoError(t, err)
	return c
}

func mustStack(t *testing.T, shorthands ...string) cards.Stack {
	t.Helper()
	s := cards.NewStack()
	for _, sh := range shorthands {
		s.AddCard(mustCard(t, sh))
	}
	return s
}

func newWaitingGame(t *testing.T) *Game {
	t.Helper()
	g, err := NewGame("game-1", alice, stake, DefaultRules())
	require.NoError(t, err)
	return g
}

func newStartedGame(t *testing.T) *Game {
	t.Helper()
	g := newWaitingGame(t)
	require.NoError(t, g.Join(bob, 42))
	g.TakeEvents()
	return g
}

// newStartedGameWithHands starts a game and replaces the dealt hands
func newStartedGameWithHands(t *testing.T, aliceHand, bobHand cards.Stack) *Game {
	t.Helper()
	g := newStartedGame(t)
	g.Participants[0].Hand = aliceHand
	g.Participants[1].Hand = bobHand
	return g
}

func play(t *testing.T, g *Game, playerID, card string) {
	t.Helper()
	require.NoError(t, g.Play(playerID, mustCard(t, card)))
}
