package events

import (
	"github.com/lazharichir/stakecards/cards"
)

type EventHandler func(event Event)

type Event interface {
	Name() string
}

type GameCreated struct {
	GameID  string
	Creator string
	Stake   uint64
}

func (e GameCreated) Name() string { return "GAME_CREATED" }

type PlayerJoined struct {
	GameID   string
	PlayerID string
	Stake    uint64
	Pool     uint64
}

func (e PlayerJoined) Name() string { return "PLAYER_JOINED" }

// HandDealt is private to PlayerID.
type HandDealt struct {
	GameID   string
	PlayerID string
	Hand     cards.Stack
}

func (e HandDealt) Name() string { return "HAND_DEALT" }

type GameStarted struct {
	GameID      string
	Players     []string
	FirstToPlay string
	DeckLeft    int
}

func (e GameStarted) Name() string { return "GAME_STARTED" }

type CardPlayed struct {
	GameID   string
	PlayerID string
	Card     cards.Card
	Round    int
}

func (e CardPlayed) Name() string { return "CARD_PLAYED" }

// RoundResolved carries the played cards in seat order. WinnerID is empty on a tie.
type RoundResolved struct {
	GameID   string
	Round    int
	Cards    []cards.Card
	WinnerID string
	Tie      bool
}

func (e RoundResolved) Name() string { return "ROUND_RESOLVED" }

type TurnChanged struct {
	GameID   string
	PlayerID string
	Round    int
}

func (e TurnChanged) Name() string { return "TURN_CHANGED" }

type GameEnded struct {
	GameID   string
	WinnerID string
	Tie      bool
	Pool     uint64
}

func (e GameEnded) Name() string { return "GAME_ENDED" }

type WinningsClaimed struct {
	GameID   string
	PlayerID string
	Amount   uint64
	PoolLeft uint64
}

func (e WinningsClaimed) Name() string { return "WINNINGS_CLAIMED" }
