package handlers

import (
	"errors"
	"net/http"

	"github.com/lazharichir/stakecards/domain"
	"github.com/lazharichir/stakecards/store"
	"github.com/lazharichir/stakecards/wallet"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrBadRequest     = errors.New("bad request")
)

// ErrorBody is the client-facing description of a failed action
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// DescribeError maps an error to an HTTP status and a body that is safe to show the caller.
func DescribeError(err error) (int, ErrorBody) {
	var gameErr domain.GameError
	if errors.As(err, &gameErr) {
		return gameErrorStatus(gameErr), ErrorBody{Code: gameErr.Code(), Message: gameErr.Error()}
	}

	switch {
	case errors.Is(err, store.ErrGameNotFound):
		return http.StatusNotFound, ErrorBody{Code: "GAME_NOT_FOUND", Message: "game not found"}
	case errors.Is(err, wallet.ErrInsufficientFunds):
		return http.StatusPaymentRequired, ErrorBody{Code: "INSUFFICIENT_FUNDS", Message: "insufficient funds"}
	case errors.Is(err, wallet.ErrInvalidAmount):
		return http.StatusBadRequest, ErrorBody{Code: "INVALID_AMOUNT", Message: "amount must be positive"}
	case errors.Is(err, wallet.ErrBalanceOverflow):
		return http.StatusConflict, ErrorBody{Code: "BALANCE_OVERFLOW", Message: "balance would overflow"}
	case errors.Is(err, ErrUnknownCommand):
		return http.StatusBadRequest, ErrorBody{Code: "UNKNOWN_COMMAND", Message: err.Error()}
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest, ErrorBody{Code: "BAD_REQUEST", Message: err.Error()}
	}

	return http.StatusInternalServerError, ErrorBody{Code: "INTERNAL", Message: "internal error"}
}

func gameErrorStatus(err domain.GameError) int {
	switch err {
	case domain.ErrNotYourTurn, domain.ErrOnlyWinnerCanClaim, domain.ErrCannotJoinOwnGame, domain.ErrPlayerNotInGame:
		return http.StatusForbidden
	case domain.ErrInvalidCard, domain.ErrInsufficientStake:
		return http.StatusBadRequest
	default:
		return http.StatusConflict
	}
}
