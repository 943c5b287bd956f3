package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/lazharichir/stakecards/game"
	"github.com/lazharichir/stakecards/server/connection"
	"github.com/lazharichir/stakecards/server/events"
	"github.com/lazharichir/stakecards/server/handlers"
	"github.com/lazharichir/stakecards/wallet"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // identity is asserted by the Authenticator, not the origin
	},
}

// Server exposes the engine over HTTP and websockets
type Server struct {
	engine     *game.Engine
	wallet     wallet.Wallet
	auth       Authenticator
	connMgr    *connection.Manager
	cmdRouter  *handlers.CommandRouter
	dispatcher *events.Dispatcher
	logger     *zap.Logger
	httpServer *http.Server
}

// NewServer creates a new server and subscribes it to the engine's events
func NewServer(engine *game.Engine, w wallet.Wallet, auth Authenticator, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if auth == nil {
		auth = HeaderAuthenticator{}
	}

	connMgr := connection.NewManager(logger)
	dispatcher := events.NewDispatcher(connMgr, logger)
	cmdRouter := handlers.NewCommandRouter(engine, connMgr, logger)

	// Register dispatcher as event handler for the engine
	engine.RegisterEventHandler(dispatcher.HandleEvent)

	return &Server{
		engine:     engine,
		wallet:     w,
		auth:       auth,
		connMgr:    connMgr,
		cmdRouter:  cmdRouter,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Handler returns the routes served by the server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ws", s.handleWebSocket)
	mux.HandleFunc("POST /api/games", s.handleCreateGame)
	mux.HandleFunc("GET /api/games", s.handleListGames)
	mux.HandleFunc("GET /api/games/{id}", s.handleGetGame)
	mux.HandleFunc("POST /api/games/{id}/join", s.handleJoinGame)
	mux.HandleFunc("POST /api/games/{id}/play", s.handlePlayCard)
	mux.HandleFunc("POST /api/games/{id}/claim", s.handleClaim)
	mux.HandleFunc("GET /api/games/{id}/events", s.handleGameEvents)
	mux.HandleFunc("GET /api/wallet", s.handleWallet)
	return corsMiddleware(mux)
}

// Start serves on addr until Shutdown is called
func (s *Server) Start(addr string) error {
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	s.logger.Info("starting server", zap.String("addr", addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// corsMiddleware adds CORS headers to all responses
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Player-ID")

		// Handle preflight requests
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// handleWebSocket handles incoming WebSocket connections
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	playerID, err := s.auth.Authenticate(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, handlers.ErrorBody{Code: "UNAUTHENTICATED", Message: err.Error()})
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := &connection.Client{
		ID:       uuid.NewString(),
		PlayerID: playerID,
		Conn:     conn,
		Send:     make(chan []byte, 256),
	}

	s.logger.Info("client connected",
		zap.String("client_id", client.ID),
		zap.String("player_id", playerID),
		zap.String("remote_addr", r.RemoteAddr),
	)

	s.connMgr.Register(client)

	go s.writePump(client)
	go s.readPump(client)
}

// readPump reads commands from the WebSocket connection
func (s *Server) readPump(client *connection.Client) {
	defer func() {
		s.connMgr.Unregister(client)
		client.Conn.Close()
		s.logger.Info("client disconnected", zap.String("client_id", client.ID))
	}()

	client.Conn.SetReadLimit(maxMessageSize)
	client.Conn.SetReadDeadline(time.Now().Add(pongWait))
	client.Conn.SetPongHandler(func(string) error {
		return client.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := client.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				s.logger.Warn("websocket read failed", zap.String("client_id", client.ID), zap.Error(err))
			}
			break
		}

		// Process the message through the command router
		if err := s.cmdRouter.HandleCommand(context.Background(), client, message); err != nil {
			s.logger.Debug("command failed", zap.String("client_id", client.ID), zap.Error(err))
		}
	}
}

// writePump is the only writer on the connection
func (s *Server) writePump(client *connection.Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		client.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-client.Send:
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Channel closed
				client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := client.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				s.logger.Warn("websocket write failed", zap.String("client_id", client.ID), zap.Error(err))
				return
			}
		case <-ticker.C:
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
