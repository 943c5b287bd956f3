package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/lazharichir/stakecards/domain"
)

var ErrGameNotFound = errors.New("game not found")

// GameStore persists game records. Loaded games are independent copies:
// mutating one has no effect until it is saved again.
type GameStore interface {
	Save(ctx context.Context, game *domain.Game) error
	Load(ctx context.Context, gameID string) (*domain.Game, error)
	List(ctx context.Context) ([]*domain.Game, error)
}

// InMemoryGameStore keeps every game as its JSON encoding, so a save is a snapshot.
type InMemoryGameStore struct {
	games map[string][]byte
	mutex sync.RWMutex
}

func NewInMemoryGameStore() *InMemoryGameStore {
	return &InMemoryGameStore{
		games: make(map[string][]byte),
	}
}

func (s *InMemoryGameStore) Save(ctx context.Context, game *domain.Game) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if game == nil || game.ID == "" {
		return errors.New("cannot save a game without an id")
	}

	data, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("failed to encode game %s: %w", game.ID, err)
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.games[game.ID] = data
	return nil
}

func (s *InMemoryGameStore) Load(ctx context.Context, gameID string) (*domain.Game, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mutex.RLock()
	data, ok := s.games[gameID]
	s.mutex.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%s: %w", gameID, ErrGameNotFound)
	}

	return decode(data)
}

// List returns every game, oldest first
func (s *InMemoryGameStore) List(ctx context.Context) ([]*domain.Game, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mutex.RLock()
	snapshots := make([][]byte, 0, len(s.games))
	for _, data := range s.games {
		snapshots = append(snapshots, data)
	}
	s.mutex.RUnlock()

	games := make([]*domain.Game, 0, len(snapshots))
	for _, data := range snapshots {
		game, err := decode(data)
		if err != nil {
			return nil, err
		}
		games = append(games, game)
	}

	sort.Slice(games, func(i, j int) bool {
		if games[i].CreatedAt.Equal(games[j].CreatedAt) {
			return games[i].ID < games[j].ID
		}
		return games[i].CreatedAt.Before(games[j].CreatedAt)
	})

	return games, nil
}

func decode(data []byte) (*domain.Game, error) {
	var game domain.Game
	if err := json.Unmarshal(data, &game); err != nil {
		return nil, fmt.Errorf("failed to decode game: %w", err)
	}
	return &game, nil
}
