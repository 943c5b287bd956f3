package domain

import (
	"fmt"
	"math"

	"github.com/lazharichir/stakecards/cards"
)

// MaxPlayers is fixed: the game is strictly heads-up.
const MaxPlayers = 2

// MaxStake is the largest stake whose pool still fits in a uint64
const MaxStake uint64 = math.MaxUint64 / MaxPlayers

const (
	DefaultMinStake    uint64 = 1_000_000
	DefaultHandSize           = 5
	DefaultTotalRounds        = 5
)

// Rules defines the limits a game is created with
type Rules struct {
	MinStake    uint64 `json:"min_stake"`
	HandSize    int    `json:"hand_size"`
	TotalRounds int    `json:"total_rounds"`
}

// DefaultRules returns the standard five-card, five-round rules
func DefaultRules() Rules {
	return Rules{
		MinStake:    DefaultMinStake,
		HandSize:    DefaultHandSize,
		TotalRounds: DefaultTotalRounds,
	}
}

// Validate checks that a game under these rules can be dealt and finished
func (r Rules) Validate() error {
	if r.MinStake == 0 {
		return fmt.Errorf("minimum stake must be positive")
	}
	if r.MinStake > MaxStake {
		return fmt.Errorf("minimum stake %d exceeds the largest stake %d", r.MinStake, MaxStake)
	}
	if r.HandSize < 1 {
		return fmt.Errorf("hand size must be positive, got %d", r.HandSize)
	}
	if r.HandSize*MaxPlayers > cards.DeckSize {
		return fmt.Errorf("hand size %d cannot be dealt to %d players from %d cards", r.HandSize, MaxPlayers, cards.DeckSize)
	}
	if r.TotalRounds < 1 {
		return fmt.Errorf("total rounds must be positive, got %d", r.TotalRounds)
	}
	return nil
}
