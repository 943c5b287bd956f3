package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lazharichir/stakecards/config"
	"github.com/lazharichir/stakecards/domain/events"
	"github.com/lazharichir/stakecards/game"
	"github.com/lazharichir/stakecards/server"
	"github.com/lazharichir/stakecards/store"
	"github.com/lazharichir/stakecards/wallet"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger, err := cfg.Logger()
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	w := wallet.NewInMemoryWallet(cfg.StartingBalance)
	engine := game.NewEngine(
		store.NewInMemoryGameStore(),
		w,
		events.NewInMemoryEventStore(),
		game.WithRules(cfg.Rules),
		game.WithLogger(logger.Named("engine")),
	)

	s := server.NewServer(engine, w, server.HeaderAuthenticator{}, logger.Named("server"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown failed", zap.Error(err))
		}
	}()

	logger.Info("starting stakecards",
		zap.Int("port", cfg.Port),
		zap.Uint64("min_stake", cfg.Rules.MinStake),
		zap.Int("hand_size", cfg.Rules.HandSize),
		zap.Int("total_rounds", cfg.Rules.TotalRounds),
	)

	if err := s.Start(cfg.Addr()); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}
