package domain

import "github.com/lazharichir/stakecards/domain/events"

// StakedTotal is the sum of every committed stake
func (g *Game) StakedTotal() uint64 {
	var total uint64
	for _, p := range g.Participants {
		total += p.CommittedStake
	}
	return total
}

// PaidOut is how much of the pool has already been claimed
func (g *Game) PaidOut() uint64 {
	return g.StakedTotal() - g.TotalPool
}

// Claim computes what claimantID is owed from the pool and books it as paid.
// A decisive winner takes the whole pool. On a tie each participant may claim
// half of the staked total once; an odd remainder stays in the pool.
// Moving the value is the caller's job.
func (g *Game) Claim(claimantID string) (uint64, error) {
	if g.Status != GameStatusEnded {
		return 0, ErrGameNotStarted
	}

	if g.ResultClaimed {
		return 0, ErrResultAlreadyClaimed
	}

	if g.Winner != "" {
		if claimantID != g.Winner {
			return 0, ErrOnlyWinnerCanClaim
		}

		payout := g.TotalPool
		if p, ok := g.Participant(claimantID); ok {
			p.HasClaimed = true
		}
		g.TotalPool = 0
		g.ResultClaimed = true

		g.emitClaimed(claimantID, payout)
		return payout, nil
	}

	p, ok := g.Participant(claimantID)
	if !ok {
		return 0, ErrPlayerNotInGame
	}

	if p.HasClaimed {
		return 0, ErrResultAlreadyClaimed
	}

	payout := g.TieShare()
	if payout > g.TotalPool {
		payout = g.TotalPool
	}

	p.HasClaimed = true
	g.TotalPool -= payout
	if g.TotalPool == 0 || g.everyoneClaimed() {
		g.ResultClaimed = true
	}

	g.emitClaimed(claimantID, payout)
	return payout, nil
}

// TieShare is what each participant receives when the game ends in a tie
func (g *Game) TieShare() uint64 {
	return g.StakedTotal() / MaxPlayers
}

func (g *Game) everyoneClaimed() bool {
	for _, p := range g.Participants {
		if !p.HasClaimed {
			return false
		}
	}
	return true
}

func (g *Game) emitClaimed(claimantID string, amount uint64) {
	g.emitEvent(events.WinningsClaimed{
		GameID:   g.ID,
		PlayerID: claimantID,
		Amount:   amount,
		PoolLeft: g.TotalPool,
	})
}
