package domain

import "github.com/lazharichir/stakecards/cards"

// CanPlay reports whether playerID holds card and has not played this round yet.
func (g *Game) CanPlay(playerID string, card cards.Card) bool {
	p, ok := g.Participant(playerID)
	if !ok {
		return false
	}
	return p.Hand.Contains(card) && !p.HasPlayedThisRound
}

// ApplyPlay moves card from playerID's hand onto the table.
// The hand is checked again here since ApplyPlay can be called on its own.
func (g *Game) ApplyPlay(playerID string, card cards.Card) error {
	p, ok := g.Participant(playerID)
	if !ok {
		return ErrPlayerNotInGame
	}

	if !p.Hand.Remove(card) {
		return ErrInvalidCard
	}

	played := card
	p.PlayedCard = &played
	p.HasPlayedThisRound = true
	return nil
}

// RoundIsComplete reports whether every participant has played this round
func (g *Game) RoundIsComplete() bool {
	if len(g.Participants) == 0 {
		return false
	}
	for _, p := range g.Participants {
		if !p.HasPlayedThisRound {
			return false
		}
	}
	return true
}

// ResolveRound returns the index of the participant with the higher scoring card.
// ok is false on a tie, or when the round is not a complete heads-up round.
func (g *Game) ResolveRound() (winner int, ok bool) {
	if len(g.Participants) != MaxPlayers || !g.RoundIsComplete() {
		return 0, false
	}

	first, second := g.Participants[0].PlayedCard, g.Participants[1].PlayedCard
	if first == nil || second == nil {
		return 0, false
	}

	switch {
	case first.Score() > second.Score():
		return 0, true
	case second.Score() > first.Score():
		return 1, true
	default:
		return 0, false
	}
}

// ResetRound clears the played cards of every participant
func (g *Game) ResetRound() {
	for i := range g.Participants {
		g.Participants[i].ResetForNewRound()
	}
}
