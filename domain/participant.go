package domain

import "github.com/lazharichir/stakecards/cards"

// Participant is a player seated in a game. It only exists inside its Game.
type Participant struct {
	ID                 string      `json:"id"`
	Hand               cards.Stack `json:"hand"`
	CommittedStake     uint64      `json:"committed_stake"`
	HasPlayedThisRound bool        `json:"has_played_this_round"`
	PlayedCard         *cards.Card `json:"played_card,omitempty"`
	HasClaimed         bool        `json:"has_claimed"`
}

// NewParticipant creates a participant who has committed stake
func NewParticipant(id string, stake uint64) Participant {
	return Participant{
		ID:             id,
		Hand:           cards.NewStack(),
		CommittedStake: stake,
	}
}

// ResetForNewRound clears the per-round play markers
func (p *Participant) ResetForNewRound() {
	p.HasPlayedThisRound = false
	p.PlayedCard = nil
}

func (p Participant) clone() Participant {
	out := p
	out.Hand = p.Hand.Clone()
	if p.PlayedCard != nil {
		c := *p.PlayedCard
		out.PlayedCard = &c
	}
	return out
}
