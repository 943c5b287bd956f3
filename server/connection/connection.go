package connection

import (
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Client represents a connected player
type Client struct {
	ID       string
	PlayerID string
	Conn     *websocket.Conn
	Send     chan []byte
	GameIDs  []string // Games the client receives events for
}

// Manager handles all client connections
type Manager struct {
	clients   map[string]*Client         // Map connection IDs to clients
	playerMap map[string]map[string]bool // Map player IDs to their connection IDs
	logger    *zap.Logger
	mutex     sync.RWMutex
}

// NewManager creates a new connection manager
func NewManager(logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		clients:   make(map[string]*Client),
		playerMap: make(map[string]map[string]bool),
		logger:    logger,
	}
}

// Register adds a client. It returns once the client can receive messages.
func (m *Manager) Register(client *Client) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.clients[client.ID] = client
	if client.PlayerID != "" {
		if m.playerMap[client.PlayerID] == nil {
			m.playerMap[client.PlayerID] = make(map[string]bool)
		}
		m.playerMap[client.PlayerID][client.ID] = true
	}
}

// Unregister removes a client and closes its Send channel
func (m *Manager) Unregister(client *Client) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, ok := m.clients[client.ID]; !ok {
		return
	}
	if conns, ok := m.playerMap[client.PlayerID]; ok {
		delete(conns, client.ID)
		if len(conns) == 0 {
			delete(m.playerMap, client.PlayerID)
		}
	}
	delete(m.clients, client.ID)
	close(client.Send)
}

// SendToClient sends a message to one connection
func (m *Manager) SendToClient(clientID string, message []byte) bool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	client, ok := m.clients[clientID]
	if !ok {
		return false
	}
	return m.deliver(client, message)
}

// SendToPlayer sends a message to every connection of a player
func (m *Manager) SendToPlayer(playerID string, message []byte) bool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	sent := false
	for connID := range m.playerMap[playerID] {
		if client, ok := m.clients[connID]; ok {
			sent = m.deliver(client, message) || sent
		}
	}
	return sent
}

// SendToGame sends a message to all clients following a game
func (m *Manager) SendToGame(gameID string, message []byte) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	for _, client := range m.clients {
		for _, id := range client.GameIDs {
			if id == gameID {
				m.deliver(client, message)
				break
			}
		}
	}
}

// AddGameToClient subscribes a client to a game's events
func (m *Manager) AddGameToClient(clientID string, gameID string) bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	client, ok := m.clients[clientID]
	if !ok {
		return false
	}
	addGame(client, gameID)
	return true
}

// AddGameToPlayer subscribes every connection of a player to a game's events
func (m *Manager) AddGameToPlayer(playerID string, gameID string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for connID := range m.playerMap[playerID] {
		if client, ok := m.clients[connID]; ok {
			addGame(client, gameID)
		}
	}
}

// RemoveGameFromClient unsubscribes a client from a game
func (m *Manager) RemoveGameFromClient(clientID string, gameID string) bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if client, ok := m.clients[clientID]; ok {
		for i, id := range client.GameIDs {
			if id == gameID {
				client.GameIDs = append(client.GameIDs[:i], client.GameIDs[i+1:]...)
				return true
			}
		}
	}
	return false
}

// IsClientInGame checks if a client follows a specific game
func (m *Manager) IsClientInGame(clientID string, gameID string) bool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if client, ok := m.clients[clientID]; ok {
		for _, id := range client.GameIDs {
			if id == gameID {
				return true
			}
		}
	}
	return false
}

// ClientCount returns the number of registered connections
func (m *Manager) ClientCount() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.clients)
}

// deliver never blocks: a client that stops reading loses messages
func (m *Manager) deliver(client *Client, message []byte) bool {
	select {
	case client.Send <- message:
		return true
	default:
		m.logger.Warn("client send buffer full",
			zap.String("client_id", client.ID),
			zap.String("player_id", client.PlayerID),
		)
		return false
	}
}

func addGame(client *Client, gameID string) {
	for _, id := range client.GameIDs {
		if id == gameID {
			return
		}
	}
	client.GameIDs = append(client.GameIDs, gameID)
}
