package game

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lazharichir/stakecards/cards"
	"github.com/lazharichir/stakecards/domain"
	"github.com/lazharichir/stakecards/domain/events"
	"github.com/lazharichir/stakecards/store"
	"github.com/lazharichir/stakecards/wallet"
	"github.com/sanity-io/litter"
	"go.uber.org/zap"
)

// Engine runs player actions against stored games. Actions on the same game are
// serialized; each one is applied to a loaded copy, value is moved through the
// wallet, and only then is the copy saved and its events published.
type Engine struct {
	games      store.GameStore
	wallet     wallet.Wallet
	eventStore events.EventStore
	seeds      SeedSource
	rules      domain.Rules
	logger     *zap.Logger
	now        func() time.Time
	newID      func() string

	locks      map[string]*gameLock
	locksMutex sync.Mutex

	handlers      []events.EventHandler
	handlersMutex sync.RWMutex
}

type Option func(*Engine)

func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

func WithSeedSource(seeds SeedSource) Option {
	return func(e *Engine) { e.seeds = seeds }
}

func WithRules(rules domain.Rules) Option {
	return func(e *Engine) { e.rules = rules }
}

func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(e *Engine) { e.newID = newID }
}

// NewEngine creates an engine over the given adapters
func NewEngine(games store.GameStore, w wallet.Wallet, eventStore events.EventStore, opts ...Option) *Engine {
	e := &Engine{
		games:      games,
		wallet:     w,
		eventStore: eventStore,
		seeds:      CryptoSeedSource{},
		rules:      domain.DefaultRules(),
		logger:     zap.NewNop(),
		now:        func() time.Time { return time.Now().UTC() },
		newID:      func() string { return uuid.New().String() },
		locks:      make(map[string]*gameLock),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Rules returns the rules new games are created with
func (e *Engine) Rules() domain.Rules {
	return e.rules
}

// RegisterEventHandler registers a callback for every event published by the engine
func (e *Engine) RegisterEventHandler(handler events.EventHandler) {
	e.handlersMutex.Lock()
	defer e.handlersMutex.Unlock()
	e.handlers = append(e.handlers, handler)
}

// Create opens a new game for playerID and takes the stake from their wallet.
func (e *Engine) Create(ctx context.Context, playerID string, stake uint64) (*domain.Game, error) {
	game, err := domain.NewGame(e.newID(), playerID, stake, e.rules)
	if err != nil {
		return nil, err
	}

	unlock := e.lock(game.ID)
	defer unlock()

	now := e.now()
	game.CreatedAt = now
	game.UpdatedAt = now

	if err := e.wallet.Debit(ctx, playerID, stake, stakeMemo(game.ID)); err != nil {
		return nil, fmt.Errorf("failed to collect stake: %w", err)
	}

	if err := e.games.Save(ctx, game); err != nil {
		e.refund(playerID, stake, game.ID)
		return nil, fmt.Errorf("failed to save game: %w", err)
	}

	e.logger.Info("game created",
		zap.String("game_id", game.ID),
		zap.String("player_id", playerID),
		zap.Uint64("stake", stake),
	)

	e.publish(game.TakeEvents())
	return game.Clone(), nil
}

// Join seats playerID in gameID, matching the creator's stake.
func (e *Engine) Join(ctx context.Context, gameID, playerID string) (*domain.Game, error) {
	unlock := e.lock(gameID)
	defer unlock()

	game, err := e.games.Load(ctx, gameID)
	if err != nil {
		return nil, err
	}

	seed, err := e.seeds.Seed()
	if err != nil {
		return nil, err
	}

	if err := game.Join(playerID, seed); err != nil {
		e.rejected("join", gameID, playerID, err)
		return nil, err
	}

	if err := e.wallet.Debit(ctx, playerID, game.StakeAmount, stakeMemo(gameID)); err != nil {
		return nil, fmt.Errorf("failed to collect stake: %w", err)
	}

	game.UpdatedAt = e.now()
	if err := e.games.Save(ctx, game); err != nil {
		e.refund(playerID, game.StakeAmount, gameID)
		return nil, fmt.Errorf("failed to save game: %w", err)
	}

	e.logger.Info("player joined",
		zap.String("game_id", gameID),
		zap.String("player_id", playerID),
		zap.Uint64("pool", game.TotalPool),
		zap.String("status", string(game.Status)),
	)

	e.publish(game.TakeEvents())
	return game.Clone(), nil
}

// Play puts card from playerID's hand on the table.
func (e *Engine) Play(ctx context.Context, gameID, playerID string, card cards.Card) (*domain.Game, error) {
	unlock := e.lock(gameID)
	defer unlock()

	game, err := e.games.Load(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if err := game.Play(playerID, card); err != nil {
		e.rejected("play", gameID, playerID, err)
		return nil, err
	}

	game.UpdatedAt = e.now()
	if err := e.games.Save(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to save game: %w", err)
	}

	e.logger.Info("card played",
		zap.String("game_id", gameID),
		zap.String("player_id", playerID),
		zap.Stringer("card", card),
		zap.Int("round", game.CurrentRound),
		zap.String("status", string(game.Status)),
	)

	e.publish(game.TakeEvents())
	return game.Clone(), nil
}

// Claim pays playerID what the ended game owes them and returns the amount.
func (e *Engine) Claim(ctx context.Context, gameID, playerID string) (uint64, error) {
	unlock := e.lock(gameID)
	defer unlock()

	game, err := e.games.Load(ctx, gameID)
	if err != nil {
		return 0, err
	}

	payout, err := game.Claim(playerID)
	if err != nil {
		e.rejected("claim", gameID, playerID, err)
		return 0, err
	}

	if payout > 0 {
		if err := e.wallet.Credit(ctx, playerID, payout, payoutMemo(gameID)); err != nil {
			return 0, fmt.Errorf("failed to pay out: %w", err)
		}
	}

	game.UpdatedAt = e.now()
	if err := e.games.Save(ctx, game); err != nil {
		e.clawBack(playerID, payout, gameID)
		return 0, fmt.Errorf("failed to save game: %w", err)
	}

	e.logger.Info("winnings claimed",
		zap.String("game_id", gameID),
		zap.String("player_id", playerID),
		zap.Uint64("amount", payout),
		zap.Uint64("pool_left", game.TotalPool),
	)

	e.publish(game.TakeEvents())
	return payout, nil
}

// Get returns the full record, hands and deck included
func (e *Engine) Get(ctx context.Context, gameID string) (*domain.Game, error) {
	return e.games.Load(ctx, gameID)
}

// View returns the game as viewerID is allowed to see it
func (e *Engine) View(ctx context.Context, gameID, viewerID string) (domain.GameView, error) {
	game, err := e.games.Load(ctx, gameID)
	if err != nil {
		return domain.GameView{}, err
	}
	return game.ViewFor(viewerID), nil
}

// List returns every game as viewerID is allowed to see it
func (e *Engine) List(ctx context.Context, viewerID string) ([]domain.GameView, error) {
	games, err := e.games.List(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]domain.GameView, 0, len(games))
	for _, g := range games {
		views = append(views, g.ViewFor(viewerID))
	}
	return views, nil
}

// Events returns the events recorded for gameID, oldest first
func (e *Engine) Events(ctx context.Context, gameID string) ([]events.Event, error) {
	if _, err := e.games.Load(ctx, gameID); err != nil {
		return nil, err
	}
	return e.eventStore.LoadEvents(gameID)
}

// gameLock serializes actions on one game. It is dropped from the map once
// no action holds or waits for it, so the map only tracks games in use.
type gameLock struct {
	mutex sync.Mutex
	refs  int
}

func (e *Engine) lock(gameID string) func() {
	e.locksMutex.Lock()
	l, ok := e.locks[gameID]
	if !ok {
		l = &gameLock{}
		e.locks[gameID] = l
	}
	l.refs++
	e.locksMutex.Unlock()

	l.mutex.Lock()
	return func() {
		l.mutex.Unlock()

		e.locksMutex.Lock()
		l.refs--
		if l.refs == 0 {
			delete(e.locks, gameID)
		}
		e.locksMutex.Unlock()
	}
}

// lockedGames returns how many games currently have an action running or waiting
func (e *Engine) lockedGames() int {
	e.locksMutex.Lock()
	defer e.locksMutex.Unlock()
	return len(e.locks)
}

func (e *Engine) publish(evts []events.Event) {
	e.handlersMutex.RLock()
	handlers := append([]events.EventHandler(nil), e.handlers...)
	e.handlersMutex.RUnlock()

	for _, event := range evts {
		if err := e.eventStore.Append(event); err != nil {
			e.logger.Error("failed to record event", zap.String("event", event.Name()), zap.Error(err))
		}

		if ce := e.logger.Check(zap.DebugLevel, "event"); ce != nil {
			ce.Write(zap.String("event", event.Name()), zap.String("dump", litter.Sdump(event)))
		}

		for _, handler := range handlers {
			handler(event)
		}
	}
}

func (e *Engine) rejected(action, gameID, playerID string, err error) {
	e.logger.Debug("action rejected",
		zap.String("action", action),
		zap.String("game_id", gameID),
		zap.String("player_id", playerID),
		zap.Error(err),
	)
}

// refund returns a stake whose game could not be saved
func (e *Engine) refund(playerID string, amount uint64, gameID string) {
	if err := e.wallet.Credit(context.Background(), playerID, amount, refundMemo(gameID)); err != nil {
		e.logger.Error("failed to refund stake",
			zap.String("game_id", gameID),
			zap.String("player_id", playerID),
			zap.Uint64("amount", amount),
			zap.Error(err),
		)
	}
}

// clawBack reverses a payout whose claim could not be saved
func (e *Engine) clawBack(playerID string, amount uint64, gameID string) {
	if amount == 0 {
		return
	}
	if err := e.wallet.Debit(context.Background(), playerID, amount, refundMemo(gameID)); err != nil {
		e.logger.Error("failed to reverse payout",
			zap.String("game_id", gameID),
			zap.String("player_id", playerID),
			zap.Uint64("amount", amount),
			zap.Error(err),
		)
	}
}

func stakeMemo(gameID string) string  { return "stake:" + gameID }
func payoutMemo(gameID string) string { return "payout:" + gameID }
func refundMemo(gameID string) string { return "reversal:" + gameID }
