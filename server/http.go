package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/lazharichir/stakecards/cards"
	"github.com/lazharichir/stakecards/domain/events"
	serverevents "github.com/lazharichir/stakecards/server/events"
	"github.com/lazharichir/stakecards/server/handlers"
	"go.uber.org/zap"
)

// CreateGameRequest is the body of POST /api/games
type CreateGameRequest struct {
	Stake uint64 `json:"stake"`
}

// PlayCardRequest is the body of POST /api/games/{id}/play
type PlayCardRequest struct {
	Card string `json:"card"`
}

// WalletResponse is the body of GET /api/wallet
type WalletResponse struct {
	PlayerID string `json:"player_id"`
	Balance  uint64 `json:"balance"`
}

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	playerID, ok := s.identify(w, r)
	if !ok {
		return
	}

	var req CreateGameRequest
	if err := decodeBody(r, &req); err != nil {
		s.fail(w, err)
		return
	}

	g, err := s.engine.Create(r.Context(), playerID, req.Stake)
	if err != nil {
		s.fail(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, g.ViewFor(playerID))
}

func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	playerID, ok := s.identify(w, r)
	if !ok {
		return
	}

	views, err := s.engine.List(r.Context(), playerID)
	if err != nil {
		s.fail(w, err)
		return
	}

	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	playerID, ok := s.identify(w, r)
	if !ok {
		return
	}

	view, err := s.engine.View(r.Context(), r.PathValue("id"), playerID)
	if err != nil {
		s.fail(w, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleJoinGame(w http.ResponseWriter, r *http.Request) {
	playerID, ok := s.identify(w, r)
	if !ok {
		return
	}

	g, err := s.engine.Join(r.Context(), r.PathValue("id"), playerID)
	if err != nil {
		s.fail(w, err)
		return
	}

	writeJSON(w, http.StatusOK, g.ViewFor(playerID))
}

func (s *Server) handlePlayCard(w http.ResponseWriter, r *http.Request) {
	playerID, ok := s.identify(w, r)
	if !ok {
		return
	}

	var req PlayCardRequest
	if err := decodeBody(r, &req); err != nil {
		s.fail(w, err)
		return
	}

	card, err := cards.CardFromString(req.Card)
	if err != nil {
		s.fail(w, fmt.Errorf("%w: %v", handlers.ErrBadRequest, err))
		return
	}

	g, err := s.engine.Play(r.Context(), r.PathValue("id"), playerID, card)
	if err != nil {
		s.fail(w, err)
		return
	}

	writeJSON(w, http.StatusOK, g.ViewFor(playerID))
}

func (s *Server) handleClaim(w http.ResponseWriter, r *http.Request) {
	playerID, ok := s.identify(w, r)
	if !ok {
		return
	}

	gameID := r.PathValue("id")
	amount, err := s.engine.Claim(r.Context(), gameID, playerID)
	if err != nil {
		s.fail(w, err)
		return
	}

	writeJSON(w, http.StatusOK, handlers.ClaimResult{GameID: gameID, Amount: amount})
}

// handleGameEvents returns the game's event log without other players' hands
func (s *Server) handleGameEvents(w http.ResponseWriter, r *http.Request) {
	playerID, ok := s.identify(w, r)
	if !ok {
		return
	}

	recorded, err := s.engine.Events(r.Context(), r.PathValue("id"))
	if err != nil {
		s.fail(w, err)
		return
	}

	envelopes := make([]serverevents.EventEnvelope, 0, len(recorded))
	for _, event := range recorded {
		if recipient := events.Recipient(event); recipient != "" && recipient != playerID {
			continue
		}
		env, err := serverevents.NewEnvelope(event)
		if err != nil {
			s.fail(w, err)
			return
		}
		envelopes = append(envelopes, env)
	}

	writeJSON(w, http.StatusOK, envelopes)
}

func (s *Server) handleWallet(w http.ResponseWriter, r *http.Request) {
	playerID, ok := s.identify(w, r)
	if !ok {
		return
	}

	balance, err := s.wallet.Balance(r.Context(), playerID)
	if err != nil {
		s.fail(w, err)
		return
	}

	writeJSON(w, http.StatusOK, WalletResponse{PlayerID: playerID, Balance: balance})
}

func (s *Server) identify(w http.ResponseWriter, r *http.Request) (string, bool) {
	playerID, err := s.auth.Authenticate(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, handlers.ErrorBody{Code: "UNAUTHENTICATED", Message: err.Error()})
		return "", false
	}
	return playerID, true
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	status, body := handlers.DescribeError(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", zap.Error(err))
	}
	writeError(w, status, body)
}

func decodeBody(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: invalid request body", handlers.ErrBadRequest)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, body handlers.ErrorBody) {
	writeJSON(w, status, map[string]handlers.ErrorBody{"error": body})
}
