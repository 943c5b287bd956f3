package domain

import "github.com/lazharichir/stakecards/cards"

// PlayerView is what a viewer may see of one participant
type PlayerView struct {
	ID             string      `json:"id"`
	CardsInHand    int         `json:"cards_in_hand"`
	Hand           cards.Stack `json:"hand,omitempty"`
	CommittedStake uint64      `json:"committed_stake"`
	HasPlayed      bool        `json:"has_played"`
	PlayedCard     *cards.Card `json:"played_card,omitempty"`
	HasClaimed     bool        `json:"has_claimed"`
}

// GameView is a game as seen by one viewer: only the viewer's own hand and no undealt cards.
type GameView struct {
	ID            string        `json:"id"`
	Creator       string        `json:"creator"`
	Status        GameStatus    `json:"status"`
	CurrentRound  int           `json:"current_round"`
	TotalRounds   int           `json:"total_rounds"`
	StakeAmount   uint64        `json:"stake_amount"`
	TotalPool     uint64        `json:"total_pool"`
	Winner        string        `json:"winner,omitempty"`
	ResultClaimed bool          `json:"result_claimed"`
	DeckRemaining int           `json:"deck_remaining"`
	CurrentPlayer string        `json:"current_player,omitempty"`
	YourTurn      bool          `json:"your_turn"`
	Players       []PlayerView  `json:"players"`
	Rounds        []RoundResult `json:"rounds"`
}

// ViewFor builds the view of the game for viewerID. Anyone may look;
// non-participants simply see no hand.
func (g *Game) ViewFor(viewerID string) GameView {
	view := GameView{
		ID:            g.ID,
		Creator:       g.Creator,
		Status:        g.Status,
		CurrentRound:  g.CurrentRound,
		TotalRounds:   g.TotalRounds,
		StakeAmount:   g.StakeAmount,
		TotalPool:     g.TotalPool,
		Winner:        g.Winner,
		ResultClaimed: g.ResultClaimed,
		DeckRemaining: len(g.Deck),
		Players:       make([]PlayerView, 0, len(g.Participants)),
		Rounds:        cloneRounds(g.Rounds),
	}

	if g.Status == GameStatusInProgress {
		view.CurrentPlayer = g.CurrentPlayerID()
		view.YourTurn = viewerID != "" && view.CurrentPlayer == viewerID
	}

	for _, p := range g.Participants {
		pv := PlayerView{
			ID:             p.ID,
			CardsInHand:    len(p.Hand),
			CommittedStake: p.CommittedStake,
			HasPlayed:      p.HasPlayedThisRound,
			HasClaimed:     p.HasClaimed,
		}
		if p.PlayedCard != nil {
			c := *p.PlayedCard
			pv.PlayedCard = &c
		}
		if p.ID == viewerID {
			pv.Hand = p.Hand.Clone()
		}
		view.Players = append(view.Players, pv)
	}

	return view
}
