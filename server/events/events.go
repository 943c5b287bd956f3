package events

import (
	"encoding/json"

	"github.com/lazharichir/stakecards/domain/events"
	"github.com/lazharichir/stakecards/server/connection"
	"go.uber.org/zap"
)

// EventEnvelope wraps an event with its name for client consumption
type EventEnvelope struct {
	Name    string          `json:"name"`
	Payload json.RawMessage `json:"payload"`
}

// NewEnvelope marshals event into an envelope
func NewEnvelope(event events.Event) (EventEnvelope, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return EventEnvelope{}, err
	}
	return EventEnvelope{Name: event.Name(), Payload: payload}, nil
}

// Dispatcher handles routing events to clients
type Dispatcher struct {
	connMgr *connection.Manager
	logger  *zap.Logger
}

// NewDispatcher creates a new event dispatcher
func NewDispatcher(connMgr *connection.Manager, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		connMgr: connMgr,
		logger:  logger,
	}
}

// HandleEvent sends a domain event to the clients allowed to see it.
// Players are subscribed to a game as soon as they create or join it,
// whichever transport they used.
func (d *Dispatcher) HandleEvent(event events.Event) {
	gameID := events.ExtractGameID(event)

	switch e := event.(type) {
	case events.GameCreated:
		d.connMgr.AddGameToPlayer(e.Creator, gameID)
	case events.PlayerJoined:
		d.connMgr.AddGameToPlayer(e.PlayerID, gameID)
	}

	envelope, err := NewEnvelope(event)
	if err != nil {
		d.logger.Error("failed to marshal event payload", zap.String("event", event.Name()), zap.Error(err))
		return
	}

	data, err := json.Marshal(envelope)
	if err != nil {
		d.logger.Error("failed to marshal event envelope", zap.String("event", event.Name()), zap.Error(err))
		return
	}

	d.logger.Debug("dispatching event", zap.String("event", event.Name()), zap.String("game_id", gameID))

	if recipient := events.Recipient(event); recipient != "" {
		d.connMgr.SendToPlayer(recipient, data)
		return
	}

	if gameID != "" {
		d.connMgr.SendToGame(gameID, data)
	}
}
