package domain

// GameError is the closed set of reasons an action on a game can be rejected.
// Every rejection leaves the game untouched.
type GameError uint8

const (
	ErrGameFull GameError = iota + 1
	ErrGameAlreadyStarted
	ErrGameNotStarted
	ErrGameAlreadyEnded
	ErrNotYourTurn
	ErrInvalidCard
	ErrInsufficientStake
	ErrPlayerNotInGame
	ErrCannotJoinOwnGame
	ErrResultAlreadyClaimed
	ErrOnlyWinnerCanClaim
)

// AllErrors lists every GameError, in declaration order.
var AllErrors = []GameError{
	ErrGameFull,
	ErrGameAlreadyStarted,
	ErrGameNotStarted,
	ErrGameAlreadyEnded,
	ErrNotYourTurn,
	ErrInvalidCard,
	ErrInsufficientStake,
	ErrPlayerNotInGame,
	ErrCannotJoinOwnGame,
	ErrResultAlreadyClaimed,
	ErrOnlyWinnerCanClaim,
}

func (e GameError) Error() string {
	switch e {
	case ErrGameFull:
		return "game is already full"
	case ErrGameAlreadyStarted:
		return "game has already started"
	case ErrGameNotStarted:
		return "game has not started yet"
	case ErrGameAlreadyEnded:
		return "game has already ended"
	case ErrNotYourTurn:
		return "not your turn"
	case ErrInvalidCard:
		return "invalid card played"
	case ErrInsufficientStake:
		return "insufficient stake amount"
	case ErrPlayerNotInGame:
		return "player not in game"
	case ErrCannotJoinOwnGame:
		return "cannot join own game"
	case ErrResultAlreadyClaimed:
		return "game result already claimed"
	case ErrOnlyWinnerCanClaim:
		return "only winner can claim"
	default:
		return "unknown game error"
	}
}

// Code is the stable machine-readable name of the error.
func (e GameError) Code() string {
	switch e {
	case ErrGameFull:
		return "GAME_FULL"
	case ErrGameAlreadyStarted:
		return "GAME_ALREADY_STARTED"
	case ErrGameNotStarted:
		return "GAME_NOT_STARTED"
	case ErrGameAlreadyEnded:
		return "GAME_ALREADY_ENDED"
	case ErrNotYourTurn:
		return "NOT_YOUR_TURN"
	case ErrInvalidCard:
		return "INVALID_CARD"
	case ErrInsufficientStake:
		return "INSUFFICIENT_STAKE"
	case ErrPlayerNotInGame:
		return "PLAYER_NOT_IN_GAME"
	case ErrCannotJoinOwnGame:
		return "CANNOT_JOIN_OWN_GAME"
	case ErrResultAlreadyClaimed:
		return "RESULT_ALREADY_CLAIMED"
	case ErrOnlyWinnerCanClaim:
		return "ONLY_WINNER_CAN_CLAIM"
	default:
		return "UNKNOWN"
	}
}
