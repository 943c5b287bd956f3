package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lazharichir/stakecards/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGame(t *testing.T, id string, createdAt time.Time) *domain.Game {
	t.Helper()
	g, err := domain.NewGame(id, "alice", domain.DefaultMinStake, domain.DefaultRules())
	require.NoError(t, err)
	g.CreatedAt = createdAt
	g.UpdatedAt = createdAt
	return g
}

func TestInMemoryGameStore_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryGameStore()

	g := newGame(t, "game-1", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, g.Join("bob", 7))
	require.NoError(t, s.Save(ctx, g))

	loaded, err := s.Load(ctx, "game-1")
	require.NoError(t, err)

	assert.Equal(t, g.Clone(), loaded)
	assert.Nil(t, loaded.Events, "events are not part of the record")
}

func TestInMemoryGameStore_LoadIsACopy(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryGameStore()
	require.NoError(t, s.Save(ctx, newGame(t, "game-1", time.Time{})))

	loaded, err := s.Load(ctx, "game-1")
	require.NoError(t, err)
	loaded.TotalPool = 0
	loaded.Deck = nil

	again, err := s.Load(ctx, "game-1")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultMinStake, again.TotalPool)
	assert.Len(t, again.Deck, 52)
}

func TestInMemoryGameStore_NotFound(t *testing.T) {
	s := NewInMemoryGameStore()

	_, err := s.Load(context.Background(), "nope")
	assert.True(t, errors.Is(err, ErrGameNotFound))
}

func TestInMemoryGameStore_SaveRejectsMissingID(t *testing.T) {
	s := NewInMemoryGameStore()

	assert.Error(t, s.Save(context.Background(), nil))
	assert.Error(t, s.Save(context.Background(), &domain.Game{}))
}

func TestInMemoryGameStore_ListOrdersByCreation(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryGameStore()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, s.Save(ctx, newGame(t, "c", base.Add(time.Minute))))
	require.NoError(t, s.Save(ctx, newGame(t, "b", base)))
	require.NoError(t, s.Save(ctx, newGame(t, "a", base)))

	games, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, games, 3)
	assert.Equal(t, "a", games[0].ID)
	assert.Equal(t, "b", games[1].ID)
	assert.Equal(t, "c", games[2].ID)
}

func TestInMemoryGameStore_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := NewInMemoryGameStore()

	assert.ErrorIs(t, s.Save(ctx, newGame(t, "game-1", time.Time{})), context.Canceled)
	_, err := s.Load(ctx, "game-1")
	assert.ErrorIs(t, err, context.Canceled)
	_, err = s.List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
