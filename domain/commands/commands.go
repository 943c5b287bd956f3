package commands

type Command interface {
	Name() string
}

type CreateGame struct {
	PlayerID string `json:"-"`
	Stake    uint64 `json:"stake"`
}

func (c CreateGame) Name() string { return "CREATE_GAME" }

type JoinGame struct {
	PlayerID string `json:"-"`
	GameID   string `json:"game_id"`
}

func (j JoinGame) Name() string { return "JOIN_GAME" }

// PlayCard carries the card as a shorthand such as "Ah" or "10♠"
type PlayCard struct {
	PlayerID string `json:"-"`
	GameID   string `json:"game_id"`
	Card     string `json:"card"`
}

func (p PlayCard) Name() string { return "PLAY_CARD" }

type ClaimWinnings struct {
	PlayerID string `json:"-"`
	GameID   string `json:"game_id"`
}

func (c ClaimWinnings) Name() string { return "CLAIM_WINNINGS" }
