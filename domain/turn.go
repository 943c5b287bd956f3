package domain

// IsPlayersTurn reports whether the participant at index is the one to act.
func (g *Game) IsPlayersTurn(index int) bool {
	n := len(g.Participants)
	if n == 0 || index < 0 || index >= n {
		return false
	}
	return g.CurrentTurn%n == index
}

// CurrentPlayerID returns the id of the participant whose turn it is
func (g *Game) CurrentPlayerID() string {
	n := len(g.Participants)
	if n == 0 {
		return ""
	}
	return g.Participants[g.CurrentTurn%n].ID
}

func (g *Game) advanceTurn() {
	n := len(g.Participants)
	if n == 0 {
		return
	}
	g.CurrentTurn = (g.CurrentTurn + 1) % n
}

// setTurn hands the lead to index; the round winner plays first next round.
func (g *Game) setTurn(index int) {
	g.CurrentTurn = index
}
