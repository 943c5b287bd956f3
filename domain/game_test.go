package domain

import (
	"math"
	"testing"

	"github.com/lazharichir/stakecards/cards"
	"github.com/lazharichir/stakecards/domain/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGame(t *testing.T) {
	g, err := NewGame("game-1", alice, stake, DefaultRules())
	require.NoError(t, err)

	assert.Equal(t, "game-1", g.ID)
	assert.Equal(t, alice, g.Creator)
	assert.Equal(t, GameStatusWaitingForPlayer, g.Status)
	assert.Equal(t, stake, g.TotalPool)
	assert.Equal(t, stake, g.StakeAmount)
	assert.Equal(t, 5, g.TotalRounds)
	assert.Equal(t, 0, g.CurrentRound)
	assert.Empty(t, g.Winner)
	assert.False(t, g.ResultClaimed)
	assert.Equal(t, cards.NewDeck52(), g.Deck)

	require.Len(t, g.Participants, 1)
	assert.Equal(t, alice, g.Participants[0].ID)
	assert.Equal(t, stake, g.Participants[0].CommittedStake)
	assert.Empty(t, g.Participants[0].Hand)

	require.Len(t, g.Events, 1)
	assert.Equal(t, events.GameCreated{GameID: "game-1", Creator: alice, Stake: stake}, g.Events[0])
}

func TestNewGame_InsufficientStake(t *testing.T) {
	g, err := NewGame("game-1", alice, stake-1, DefaultRules())
	assert.Nil(t, g)
	assert.Equal(t, ErrInsufficientStake, err)
}

func TestNewGame_StakeTooLargeToMatch(t *testing.T) {
	g, err := NewGame("game-1", alice, MaxStake+1, DefaultRules())
	assert.Nil(t, g)
	assert.Equal(t, ErrInsufficientStake, err)

	g, err = NewGame("game-1", alice, MaxStake, DefaultRules())
	require.NoError(t, err)
	require.NoError(t, g.Join(bob, 42))

	assert.Equal(t, 2*MaxStake, g.TotalPool)
	assert.Equal(t, 2*MaxStake, g.StakedTotal())
	assert.Equal(t, MaxStake, g.TieShare())
}

func TestJoin_PoolOverflowIsRejected(t *testing.T) {
	g := newWaitingGame(t)
	g.StakeAmount = math.MaxUint64/2 + 1
	g.TotalPool = g.StakeAmount
	g.Participants[0].CommittedStake = g.StakeAmount
	g.TakeEvents()
	before := g.Clone()

	assert.Equal(t, ErrInsufficientStake, g.Join(bob, 42))
	assert.Equal(t, before, g.Clone())
	assert.Empty(t, g.Events)
}

func TestNewGame_InvalidRules(t *testing.T) {
	_, err := NewGame("game-1", alice, stake, Rules{MinStake: 1, HandSize: 0, TotalRounds: 5})
	require.Error(t, err)
	_, isGameError := err.(GameError)
	assert.False(t, isGameError)
}

func TestJoin_StartsGame(t *testing.T) {
	g := newWaitingGame(t)
	g.TakeEvents()

	require.NoError(t, g.Join(bob, 42))

	assert.Equal(t, GameStatusInProgress, g.Status)
	assert.Equal(t, 2*stake, g.TotalPool)
	assert.Equal(t, 0, g.CurrentTurn)
	require.Len(t, g.Participants, 2)
	assert.Equal(t, bob, g.Participants[1].ID)
	assert.Equal(t, stake, g.Participants[1].CommittedStake)
	assert.Len(t, g.Participants[0].Hand, 5)
	assert.Len(t, g.Participants[1].Hand, 5)
	assert.Len(t, g.Deck, 42)

	// dealt cards and the remaining deck form exactly one deck
	seen := make(map[cards.Card]int)
	for _, p := range g.Participants {
		for _, c := range p.Hand {
			seen[c]++
		}
	}
	for _, c := range g.Deck {
		seen[c]++
	}
	assert.Len(t, seen, cards.DeckSize)
	for c, n := range seen {
		assert.Equal(t, 1, n, "card %s seen %d times", c, n)
	}

	// hands come off the top of the seeded shuffle, in join order
	shuffled := cards.Shuffle(cards.NewDeck52(), 42)
	assert.Equal(t, shuffled[0:5], g.Participants[0].Hand)
	assert.Equal(t, shuffled[5:10], g.Participants[1].Hand)

	names := make([]string, 0)
	for _, e := range g.TakeEvents() {
		names = append(names, e.Name())
	}
	assert.Equal(t, []string{"PLAYER_JOINED", "HAND_DEALT", "HAND_DEALT", "GAME_STARTED"}, names)
}

func TestJoin_SameSeedSameDeal(t *testing.T) {
	a := newWaitingGame(t)
	b := newWaitingGame(t)
	require.NoError(t, a.Join(bob, 2024))
	require.NoError(t, b.Join(bob, 2024))

	assert.Equal(t, a.Participants[0].Hand, b.Participants[0].Hand)
	assert.Equal(t, a.Participants[1].Hand, b.Participants[1].Hand)
	assert.Equal(t, a.Deck, b.Deck)
}

func TestJoin_Rejections(t *testing.T) {
	t.Run("already started", func(t *testing.T) {
		g := newStartedGame(t)
		assert.Equal(t, ErrGameAlreadyStarted, g.Join(carol, 1))
	})

	t.Run("full", func(t *testing.T) {
		g := newWaitingGame(t)
		g.Participants = append(g.Participants, NewParticipant(bob, stake))
		assert.Equal(t, ErrGameFull, g.Join(carol, 1))
	})

	t.Run("own game", func(t *testing.T) {
		g := newWaitingGame(t)
		assert.Equal(t, ErrCannotJoinOwnGame, g.Join(alice, 1))
	})

	t.Run("already seated reports player not in game", func(t *testing.T) {
		g := newWaitingGame(t)
		g.Participants = []Participant{NewParticipant(bob, stake)}
		assert.Equal(t, ErrPlayerNotInGame, g.Join(bob, 1))
	})
}

func TestJoin_RejectionLeavesGameUntouched(t *testing.T) {
	g := newWaitingGame(t)
	g.TakeEvents()
	before := g.Clone()

	require.Error(t, g.Join(alice, 1))

	assert.Equal(t, before, g.Clone())
	assert.Empty(t, g.Events)
}

func TestPlay_Rejections(t *testing.T) {
	t.Run("not started", func(t *testing.T) {
		g := newWaitingGame(t)
		assert.Equal(t, ErrGameNotStarted, g.Play(alice, mustCard(t, "As")))
	})

	t.Run("not in game", func(t *testing.T) {
		g := newStartedGame(t)
		assert.Equal(t, ErrPlayerNotInGame, g.Play(carol, g.Participants[0].Hand[0]))
	})

	t.Run("not your turn", func(t *testing.T) {
		g := newStartedGame(t)
		assert.Equal(t, ErrNotYourTurn, g.Play(bob, g.Participants[1].Hand[0]))
	})

	t.Run("card not in hand", func(t *testing.T) {
		g := newStartedGame(t)
		assert.Equal(t, ErrInvalidCard, g.Play(alice, g.Participants[1].Hand[0]))
	})

	t.Run("ended", func(t *testing.T) {
		g := newStartedGame(t)
		g.Status = GameStatusEnded
		assert.Equal(t, ErrGameAlreadyEnded, g.Play(alice, g.Participants[0].Hand[0]))
	})

	t.Run("claimed", func(t *testing.T) {
		g := newStartedGame(t)
		g.ResultClaimed = true
		assert.Equal(t, ErrGameAlreadyEnded, g.Play(alice, g.Participants[0].Hand[0]))
	})
}

func TestPlay_RejectionLeavesGameUntouched(t *testing.T) {
	g := newStartedGame(t)
	before := g.Clone()

	require.Equal(t, ErrNotYourTurn, g.Play(bob, g.Participants[1].Hand[0]))
	require.Equal(t, ErrInvalidCard, g.Play(alice, g.Participants[1].Hand[0]))

	assert.Equal(t, before, g.Clone())
	assert.Empty(t, g.Events)
}

func TestPlay_TurnAlternatesWithinRound(t *testing.T) {
	g := newStartedGameWithHands(t,
		mustStack(t, "2h", "3h", "4h", "5h", "6h"),
		mustStack(t, "2c", "3c", "4c", "5c", "6c"),
	)

	assert.True(t, g.IsPlayersTurn(0))
	play(t, g, alice, "2h")
	assert.Equal(t, 1, g.CurrentTurn)
	assert.True(t, g.IsPlayersTurn(1))

	p := g.Participants[0]
	assert.True(t, p.HasPlayedThisRound)
	require.NotNil(t, p.PlayedCard)
	assert.Equal(t, mustCard(t, "2h"), *p.PlayedCard)
	assert.Len(t, p.Hand, 4)
	assert.Equal(t, 0, g.CurrentRound)
}

func TestPlay_RoundWinnerLeadsNextRound(t *testing.T) {
	g := newStartedGameWithHands(t,
		mustStack(t, "2h", "3h", "4h", "5h", "6h"),
		mustStack(t, "Kc", "3c", "4c", "5c", "6c"),
	)

	play(t, g, alice, "2h")
	play(t, g, bob, "Kc")

	assert.Equal(t, 1, g.CurrentRound)
	assert.Equal(t, 1, g.CurrentTurn, "bob won and leads")
	assert.False(t, g.Participants[0].HasPlayedThisRound)
	assert.False(t, g.Participants[1].HasPlayedThisRound)
	assert.Nil(t, g.Participants[0].PlayedCard)
	require.Len(t, g.Rounds, 1)
	assert.Equal(t, 1, g.Rounds[0].WinnerIndex)

	// bob leads, alice matches the rank
	play(t, g, bob, "3c")
	assert.Equal(t, 0, g.CurrentTurn)
	require.NoError(t, g.Play(alice, mustCard(t, "3h")))
	assert.Equal(t, 2, g.CurrentRound)
	assert.Equal(t, -1, g.Rounds[1].WinnerIndex, "3 against 3 is a tie")
}

func TestPlay_AceBeatsKing(t *testing.T) {
	g := newStartedGameWithHands(t,
		mustStack(t, "Kh", "3h", "4h", "5h", "6h"),
		mustStack(t, "Ac", "3c", "4c", "5c", "6c"),
	)

	play(t, g, alice, "Kh")
	play(t, g, bob, "Ac")

	assert.Equal(t, 1, g.Rounds[0].WinnerIndex)
	assert.Equal(t, 1, g.CurrentTurn)
}

func TestPlay_TiedRoundKeepsTurn(t *testing.T) {
	g := newStartedGameWithHands(t,
		mustStack(t, "9h", "3h", "4h", "5h", "6h"),
		mustStack(t, "9s", "3c", "4c", "5c", "6c"),
	)

	play(t, g, alice, "9h")
	turnBeforeCompletion := g.CurrentTurn
	g.TakeEvents()
	play(t, g, bob, "9s")

	assert.Equal(t, turnBeforeCompletion, g.CurrentTurn)
	assert.Equal(t, 1, g.CurrentRound)

	var resolved events.RoundResolved
	for _, e := range g.TakeEvents() {
		if r, ok := e.(events.RoundResolved); ok {
			resolved = r
		}
	}
	assert.True(t, resolved.Tie)
	assert.Empty(t, resolved.WinnerID)
}

func TestPlay_FullGameEndsAfterLastRound(t *testing.T) {
	// alice wins four of five rounds, but both hands run out together
	g := newStartedGameWithHands(t,
		mustStack(t, "Ah", "Kh", "Qh", "Jh", "2h"),
		mustStack(t, "2c", "3c", "4c", "5c", "Ac"),
	)

	play(t, g, alice, "Ah")
	play(t, g, bob, "2c")
	play(t, g, alice, "Kh")
	play(t, g, bob, "3c")
	play(t, g, alice, "Qh")
	play(t, g, bob, "4c")
	play(t, g, alice, "Jh")
	play(t, g, bob, "5c")
	play(t, g, alice, "2h")
	g.TakeEvents()
	play(t, g, bob, "Ac")

	assert.Equal(t, GameStatusEnded, g.Status)
	assert.Equal(t, 5, g.CurrentRound)
	assert.Empty(t, g.Winner, "equal hand sizes mean a tie, whoever won more rounds")
	assert.Len(t, g.Rounds, 5)

	last := g.TakeEvents()
	require.NotEmpty(t, last)
	ended, ok := last[len(last)-1].(events.GameEnded)
	require.True(t, ok)
	assert.True(t, ended.Tie)
	assert.Equal(t, 2*stake, ended.Pool)

	assert.Equal(t, ErrGameAlreadyEnded, g.Play(alice, mustCard(t, "Ah")))
}

func TestPlay_EndsWhenAHandEmpties(t *testing.T) {
	g := newStartedGameWithHands(t, mustStack(t, "5h"), mustStack(t, "6c", "7c"))

	play(t, g, alice, "5h")
	play(t, g, bob, "6c")

	assert.Equal(t, GameStatusEnded, g.Status)
	assert.Equal(t, 1, g.CurrentRound)
	assert.Equal(t, bob, g.Winner, "bob holds more cards")
}

func TestDetermineWinner(t *testing.T) {
	g := newStartedGame(t)

	g.Participants[0].Hand = mustStack(t, "2h", "3h")
	g.Participants[1].Hand = mustStack(t, "2c")
	assert.Equal(t, alice, g.DetermineWinner())

	g.Participants[1].Hand = mustStack(t, "2c", "3c", "4c")
	assert.Equal(t, bob, g.DetermineWinner())

	g.Participants[0].Hand = mustStack(t, "2h", "3h", "4h")
	assert.Equal(t, "", g.DetermineWinner())

	w := newWaitingGame(t)
	assert.Equal(t, "", w.DetermineWinner())
}

func TestClone_IsDeep(t *testing.T) {
	g := newStartedGameWithHands(t, mustStack(t, "2h", "3h"), mustStack(t, "2c", "3c"))
	play(t, g, alice, "2h")
	deck := g.Deck.Clone()

	c := g.Clone()
	c.Participants[0].Hand[0] = mustCard(t, "As")
	c.Participants[0].PlayedCard.Rank = cards.King
	c.Deck[0] = cards.Card{}
	c.TotalPool = 0

	assert.Equal(t, mustStack(t, "3h"), g.Participants[0].Hand)
	assert.Equal(t, mustCard(t, "2h"), *g.Participants[0].PlayedCard)
	assert.Equal(t, deck, g.Deck)
	assert.Equal(t, 2*stake, g.TotalPool)
	assert.Nil(t, c.Events)
}

func TestRegisterEventHandler(t *testing.T) {
	g := newWaitingGame(t)

	var received []string
	g.RegisterEventHandler(func(event events.Event) {
		received = append(received, event.Name())
	})

	require.NoError(t, g.Join(bob, 1))
	assert.Equal(t, []string{"PLAYER_JOINED", "HAND_DEALT", "HAND_DEALT", "GAME_STARTED"}, received)
}
