package domain

import (
	"math"
	"time"

	"github.com/lazharichir/stakecards/cards"
	"github.com/lazharichir/stakecards/domain/events"
)

type GameStatus string

const (
	GameStatusWaitingForPlayer GameStatus = "waiting_for_player"
	GameStatusInProgress       GameStatus = "in_progress"
	GameStatusEnded            GameStatus = "ended"
)

// RoundResult records how a completed round went. WinnerIndex is -1 on a tie.
type RoundResult struct {
	Round       int          `json:"round"`
	Cards       []cards.Card `json:"cards"`
	WinnerIndex int          `json:"winner_index"`
}

// Game is the aggregate root: every participant, the deck and the pool live on it.
type Game struct {
	ID            string        `json:"id"`
	Creator       string        `json:"creator"`
	Participants  []Participant `json:"participants"`
	Status        GameStatus    `json:"status"`
	CurrentRound  int           `json:"current_round"`
	TotalRounds   int           `json:"total_rounds"`
	StakeAmount   uint64        `json:"stake_amount"`
	TotalPool     uint64        `json:"total_pool"`
	Winner        string        `json:"winner,omitempty"`
	ResultClaimed bool          `json:"result_claimed"`
	Deck          cards.Stack   `json:"deck"`
	CurrentTurn   int           `json:"current_turn"`
	Rules         Rules         `json:"rules"`
	Rounds        []RoundResult `json:"rounds"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`

	// events
	Events        []events.Event `json:"-"`
	eventHandlers []events.EventHandler
}

// NewGame creates a game waiting for an opponent, with the creator's stake already in the pool.
func NewGame(id string, creator string, stake uint64, rules Rules) (*Game, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}

	// a stake above MaxStake could not be matched without overflowing the pool
	if stake < rules.MinStake || stake > MaxStake {
		return nil, ErrInsufficientStake
	}

	g := &Game{
		ID:           id,
		Creator:      creator,
		Participants: []Participant{NewParticipant(creator, stake)},
		Status:       GameStatusWaitingForPlayer,
		CurrentRound: 0,
		TotalRounds:  rules.TotalRounds,
		StakeAmount:  stake,
		TotalPool:    stake,
		Deck:         cards.NewDeck52(),
		CurrentTurn:  0,
		Rules:        rules,
		Rounds:       []RoundResult{},
	}

	g.emitEvent(events.GameCreated{
		GameID:  g.ID,
		Creator: creator,
		Stake:   stake,
	})

	return g, nil
}

// Join seats playerID with the game's stake. When the table fills up the deck is
// shuffled with seed, hands are dealt and play begins.
func (g *Game) Join(playerID string, seed uint64) error {
	if g.Status != GameStatusWaitingForPlayer {
		return ErrGameAlreadyStarted
	}

	if len(g.Participants) >= MaxPlayers {
		return ErrGameFull
	}

	if playerID == g.Creator {
		return ErrCannotJoinOwnGame
	}

	// An already seated player is reported as ErrPlayerNotInGame.
	if g.ParticipantIndex(playerID) >= 0 {
		return ErrPlayerNotInGame
	}

	if g.TotalPool > math.MaxUint64-g.StakeAmount {
		return ErrInsufficientStake
	}

	starting := len(g.Participants)+1 == MaxPlayers

	var hands []cards.Stack
	var rest cards.Stack
	if starting {
		var err error
		hands, rest, err = cards.Deal(cards.Shuffle(g.Deck, seed), g.Rules.HandSize, MaxPlayers)
		if err != nil {
			return err
		}
	}

	g.Participants = append(g.Participants, NewParticipant(playerID, g.StakeAmount))
	g.TotalPool += g.StakeAmount

	g.emitEvent(events.PlayerJoined{
		GameID:   g.ID,
		PlayerID: playerID,
		Stake:    g.StakeAmount,
		Pool:     g.TotalPool,
	})

	if !starting {
		return nil
	}

	for i := range g.Participants {
		g.Participants[i].Hand = hands[i]
		g.Participants[i].ResetForNewRound()
	}
	g.Deck = rest
	g.CurrentTurn = 0
	g.Status = GameStatusInProgress

	for _, p := range g.Participants {
		g.emitEvent(events.HandDealt{
			GameID:   g.ID,
			PlayerID: p.ID,
			Hand:     p.Hand.Clone(),
		})
	}

	g.emitEvent(events.GameStarted{
		GameID:      g.ID,
		Players:     g.PlayerIDs(),
		FirstToPlay: g.CurrentPlayerID(),
		DeckLeft:    len(g.Deck),
	})

	return nil
}

// Play puts card from playerID's hand on the table. Completing a round resolves it,
// and the last round ends the game.
func (g *Game) Play(playerID string, card cards.Card) error {
	switch {
	case g.Status == GameStatusWaitingForPlayer:
		return ErrGameNotStarted
	case g.Status == GameStatusEnded, g.ResultClaimed:
		return ErrGameAlreadyEnded
	}

	index := g.ParticipantIndex(playerID)
	if index < 0 {
		return ErrPlayerNotInGame
	}

	if !g.IsPlayersTurn(index) {
		return ErrNotYourTurn
	}

	if !g.CanPlay(playerID, card) {
		return ErrInvalidCard
	}

	if err := g.ApplyPlay(playerID, card); err != nil {
		return err
	}

	g.emitEvent(events.CardPlayed{
		GameID:   g.ID,
		PlayerID: playerID,
		Card:     card,
		Round:    g.CurrentRound + 1,
	})

	if !g.RoundIsComplete() {
		g.advanceTurn()
		g.emitTurnChanged()
		return nil
	}

	g.completeRound()

	if g.shouldEnd() {
		g.end()
		return nil
	}

	g.emitTurnChanged()
	return nil
}

func (g *Game) completeRound() {
	played := make([]cards.Card, 0, len(g.Participants))
	for _, p := range g.Participants {
		if p.PlayedCard != nil {
			played = append(played, *p.PlayedCard)
		}
	}

	result := RoundResult{Round: g.CurrentRound + 1, Cards: played, WinnerIndex: -1}
	resolved := events.RoundResolved{GameID: g.ID, Round: result.Round, Cards: played, Tie: true}

	if winner, ok := g.ResolveRound(); ok {
		g.setTurn(winner)
		result.WinnerIndex = winner
		resolved.WinnerID = g.Participants[winner].ID
		resolved.Tie = false
	}

	g.Rounds = append(g.Rounds, result)
	g.CurrentRound++
	g.ResetRound()

	g.emitEvent(resolved)
}

func (g *Game) shouldEnd() bool {
	if g.CurrentRound >= g.TotalRounds {
		return true
	}
	for _, p := range g.Participants {
		if len(p.Hand) == 0 {
			return true
		}
	}
	return false
}

func (g *Game) end() {
	g.Status = GameStatusEnded
	g.Winner = g.DetermineWinner()

	g.emitEvent(events.GameEnded{
		GameID:   g.ID,
		WinnerID: g.Winner,
		Tie:      g.Winner == "",
		Pool:     g.TotalPool,
	})
}

// DetermineWinner picks the participant holding more cards. Equal hands are a tie ("").
// Round wins are not counted.
func (g *Game) DetermineWinner() string {
	if len(g.Participants) != MaxPlayers {
		return ""
	}

	first, second := g.Participants[0], g.Participants[1]
	switch {
	case len(first.Hand) > len(second.Hand):
		return first.ID
	case len(second.Hand) > len(first.Hand):
		return second.ID
	default:
		return ""
	}
}

// ParticipantIndex returns the seat of playerID, or -1
func (g *Game) ParticipantIndex(playerID string) int {
	for i, p := range g.Participants {
		if p.ID == playerID {
			return i
		}
	}
	return -1
}

// Participant returns the participant seated as playerID
func (g *Game) Participant(playerID string) (*Participant, bool) {
	i := g.ParticipantIndex(playerID)
	if i < 0 {
		return nil, false
	}
	return &g.Participants[i], true
}

// PlayerIDs returns participant ids in join order
func (g *Game) PlayerIDs() []string {
	ids := make([]string, len(g.Participants))
	for i, p := range g.Participants {
		ids[i] = p.ID
	}
	return ids
}

// HasWinner reports whether the game ended with a decisive winner
func (g *Game) HasWinner() bool {
	return g.Status == GameStatusEnded && g.Winner != ""
}

// Clone returns a deep copy of the record without events or handlers.
func (g *Game) Clone() *Game {
	out := *g

	out.Participants = make([]Participant, len(g.Participants))
	for i, p := range g.Participants {
		out.Participants[i] = p.clone()
	}

	out.Deck = g.Deck.Clone()

	out.Rounds = cloneRounds(g.Rounds)

	out.Events = nil
	out.eventHandlers = nil
	return &out
}

func cloneRounds(rounds []RoundResult) []RoundResult {
	out := make([]RoundResult, len(rounds))
	for i, r := range rounds {
		r.Cards = append([]cards.Card(nil), r.Cards...)
		out[i] = r
	}
	return out
}

// RegisterEventHandler registers a callback function that will be called when events occur
func (g *Game) RegisterEventHandler(handler events.EventHandler) {
	g.eventHandlers = append(g.eventHandlers, handler)
}

// TakeEvents returns the events emitted since the last call and clears them
func (g *Game) TakeEvents() []events.Event {
	out := g.Events
	g.Events = nil
	return out
}

// emitEvent notifies all registered handlers of a new event
func (g *Game) emitEvent(event events.Event) {
	g.Events = append(g.Events, event)

	for _, handler := range g.eventHandlers {
		handler(event)
	}
}

func (g *Game) emitTurnChanged() {
	g.emitEvent(events.TurnChanged{
		GameID:   g.ID,
		PlayerID: g.CurrentPlayerID(),
		Round:    g.CurrentRound + 1,
	})
}
