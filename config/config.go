package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/lazharichir/stakecards/domain"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	DefaultPort            = 7777
	DefaultStartingBalance = 100_000_000
	DefaultLogLevel        = "info"
)

type Config struct {
	Port            int
	Rules           domain.Rules
	StartingBalance uint64
	LogLevel        zapcore.Level
}

// Load reads .env files when present, then the environment.
func Load(files ...string) (Config, error) {
	// a missing .env is fine
	_ = godotenv.Load(files...)
	return FromEnv()
}

// FromEnv builds the configuration from STAKECARDS_* variables
func FromEnv() (Config, error) {
	cfg := Config{
		Port:            DefaultPort,
		Rules:           domain.DefaultRules(),
		StartingBalance: DefaultStartingBalance,
	}

	var err error
	if cfg.Port, err = intVar("STAKECARDS_PORT", cfg.Port); err != nil {
		return Config{}, err
	}
	if cfg.Rules.MinStake, err = uintVar("STAKECARDS_MIN_STAKE", cfg.Rules.MinStake); err != nil {
		return Config{}, err
	}
	if cfg.Rules.TotalRounds, err = intVar("STAKECARDS_TOTAL_ROUNDS", cfg.Rules.TotalRounds); err != nil {
		return Config{}, err
	}
	if cfg.Rules.HandSize, err = intVar("STAKECARDS_HAND_SIZE", cfg.Rules.HandSize); err != nil {
		return Config{}, err
	}
	if cfg.StartingBalance, err = uintVar("STAKECARDS_STARTING_BALANCE", cfg.StartingBalance); err != nil {
		return Config{}, err
	}

	level := DefaultLogLevel
	if v := strings.TrimSpace(os.Getenv("STAKECARDS_LOG_LEVEL")); v != "" {
		level = v
	}
	if cfg.LogLevel, err = zapcore.ParseLevel(level); err != nil {
		return Config{}, fmt.Errorf("STAKECARDS_LOG_LEVEL: %w", err)
	}

	if cfg.Port < 1 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("STAKECARDS_PORT out of range: %d", cfg.Port)
	}
	if err := cfg.Rules.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Addr is the listen address for the HTTP server
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Logger builds a production zap logger at the configured level
func (c Config) Logger() (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(c.LogLevel)
	return zc.Build()
}

func intVar(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(strings.ReplaceAll(v, "_", ""))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func uintVar(key string, def uint64) (uint64, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.ParseUint(strings.ReplaceAll(v, "_", ""), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}
