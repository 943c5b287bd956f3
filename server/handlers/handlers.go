package handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lazharichir/stakecards/cards"
	"github.com/lazharichir/stakecards/domain"
	"github.com/lazharichir/stakecards/domain/commands"
	"github.com/lazharichir/stakecards/server/connection"
	"go.uber.org/zap"
)

const (
	ReplyResult = "COMMAND_RESULT"
	ReplyError  = "COMMAND_ERROR"
)

// GameService runs player actions
type GameService interface {
	Create(ctx context.Context, playerID string, stake uint64) (*domain.Game, error)
	Join(ctx context.Context, gameID, playerID string) (*domain.Game, error)
	Play(ctx context.Context, gameID, playerID string, card cards.Card) (*domain.Game, error)
	Claim(ctx context.Context, gameID, playerID string) (uint64, error)
}

// Reply answers one command on the connection that sent it
type Reply struct {
	Name    string      `json:"name"`
	Command string      `json:"command"`
	Payload interface{} `json:"payload,omitempty"`
	Error   *ErrorBody  `json:"error,omitempty"`
}

// ClaimResult is the payload of a successful claim
type ClaimResult struct {
	GameID string `json:"game_id"`
	Amount uint64 `json:"amount"`
}

// CommandRouter routes incoming commands to the appropriate handler
type CommandRouter struct {
	games   GameService
	connMgr *connection.Manager
	logger  *zap.Logger
}

// NewCommandRouter creates a new command router
func NewCommandRouter(games GameService, connMgr *connection.Manager, logger *zap.Logger) *CommandRouter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CommandRouter{
		games:   games,
		connMgr: connMgr,
		logger:  logger,
	}
}

// HandleCommand processes an incoming command message and replies to the client.
// The returned error is the one reported to the client, if any.
func (r *CommandRouter) HandleCommand(ctx context.Context, client *connection.Client, message []byte) error {
	name, payload, err := r.route(ctx, client, message)

	reply := Reply{Name: ReplyResult, Command: name, Payload: payload}
	if err != nil {
		_, body := DescribeError(err)
		reply = Reply{Name: ReplyError, Command: name, Error: &body}
	}

	data, merr := json.Marshal(reply)
	if merr != nil {
		r.logger.Error("failed to marshal reply", zap.String("command", name), zap.Error(merr))
		return err
	}
	r.connMgr.SendToClient(client.ID, data)
	return err
}

func (r *CommandRouter) route(ctx context.Context, client *connection.Client, message []byte) (string, interface{}, error) {
	// First determine command type
	var baseCmd struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(message, &baseCmd); err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}

	switch baseCmd.Name {
	case commands.CreateGame{}.Name():
		var cmd commands.CreateGame
		if err := decode(message, &cmd); err != nil {
			return baseCmd.Name, nil, err
		}
		cmd.PlayerID = client.PlayerID
		payload, err := r.handleCreateGame(ctx, client, cmd)
		return baseCmd.Name, payload, err

	case commands.JoinGame{}.Name():
		var cmd commands.JoinGame
		if err := decode(message, &cmd); err != nil {
			return baseCmd.Name, nil, err
		}
		cmd.PlayerID = client.PlayerID
		payload, err := r.handleJoinGame(ctx, client, cmd)
		return baseCmd.Name, payload, err

	case commands.PlayCard{}.Name():
		var cmd commands.PlayCard
		if err := decode(message, &cmd); err != nil {
			return baseCmd.Name, nil, err
		}
		cmd.PlayerID = client.PlayerID
		payload, err := r.handlePlayCard(ctx, cmd)
		return baseCmd.Name, payload, err

	case commands.ClaimWinnings{}.Name():
		var cmd commands.ClaimWinnings
		if err := decode(message, &cmd); err != nil {
			return baseCmd.Name, nil, err
		}
		cmd.PlayerID = client.PlayerID
		payload, err := r.handleClaimWinnings(ctx, cmd)
		return baseCmd.Name, payload, err

	default:
		r.logger.Debug("unknown command type", zap.String("command", baseCmd.Name), zap.String("client_id", client.ID))
		return baseCmd.Name, nil, fmt.Errorf("%w: %q", ErrUnknownCommand, baseCmd.Name)
	}
}

func (r *CommandRouter) handleCreateGame(ctx context.Context, client *connection.Client, cmd commands.CreateGame) (interface{}, error) {
	game, err := r.games.Create(ctx, cmd.PlayerID, cmd.Stake)
	if err != nil {
		return nil, err
	}
	r.connMgr.AddGameToClient(client.ID, game.ID)
	return game.ViewFor(cmd.PlayerID), nil
}

func (r *CommandRouter) handleJoinGame(ctx context.Context, client *connection.Client, cmd commands.JoinGame) (interface{}, error) {
	game, err := r.games.Join(ctx, cmd.GameID, cmd.PlayerID)
	if err != nil {
		return nil, err
	}
	r.connMgr.AddGameToClient(client.ID, game.ID)
	return game.ViewFor(cmd.PlayerID), nil
}

func (r *CommandRouter) handlePlayCard(ctx context.Context, cmd commands.PlayCard) (interface{}, error) {
	card, err := cards.CardFromString(cmd.Card)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}

	game, err := r.games.Play(ctx, cmd.GameID, cmd.PlayerID, card)
	if err != nil {
		return nil, err
	}
	return game.ViewFor(cmd.PlayerID), nil
}

func (r *CommandRouter) handleClaimWinnings(ctx context.Context, cmd commands.ClaimWinnings) (interface{}, error) {
	amount, err := r.games.Claim(ctx, cmd.GameID, cmd.PlayerID)
	if err != nil {
		return nil, err
	}
	return ClaimResult{GameID: cmd.GameID, Amount: amount}, nil
}

func decode(message []byte, cmd interface{}) error {
	if err := json.Unmarshal(message, cmd); err != nil {
		return fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	return nil
}
