package wallet

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrBalanceOverflow   = errors.New("balance would overflow")
)

// Wallet moves value between players and game pools.
// A game pool never holds value itself: debits leave the player's balance
// when a stake is committed, credits return it on claim.
type Wallet interface {
	// Balance returns the spendable balance of playerID.
	Balance(ctx context.Context, playerID string) (uint64, error)

	// Debit takes amount from playerID, failing with ErrInsufficientFunds.
	Debit(ctx context.Context, playerID string, amount uint64, memo string) error

	// Credit pays amount to playerID.
	Credit(ctx context.Context, playerID string, amount uint64, memo string) error
}

type EntryKind string

const (
	EntryDebit  EntryKind = "debit"
	EntryCredit EntryKind = "credit"
)

// Entry is one movement recorded by the in-memory wallet
type Entry struct {
	PlayerID string    `json:"player_id"`
	Kind     EntryKind `json:"kind"`
	Amount   uint64    `json:"amount"`
	Memo     string    `json:"memo"`
}

// InMemoryWallet hands every unseen player a starting balance.
type InMemoryWallet struct {
	startingBalance uint64
	balances        map[string]uint64
	entries         []Entry
	mutex           sync.RWMutex
}

func NewInMemoryWallet(startingBalance uint64) *InMemoryWallet {
	return &InMemoryWallet{
		startingBalance: startingBalance,
		balances:        make(map[string]uint64),
	}
}

func (w *InMemoryWallet) Balance(ctx context.Context, playerID string) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	w.mutex.RLock()
	defer w.mutex.RUnlock()

	if balance, ok := w.balances[playerID]; ok {
		return balance, nil
	}
	return w.startingBalance, nil
}

func (w *InMemoryWallet) Debit(ctx context.Context, playerID string, amount uint64, memo string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if amount == 0 {
		return ErrInvalidAmount
	}

	w.mutex.Lock()
	defer w.mutex.Unlock()

	balance := w.balanceLocked(playerID)
	if balance < amount {
		return fmt.Errorf("debit %d from %s with balance %d: %w", amount, playerID, balance, ErrInsufficientFunds)
	}

	w.balances[playerID] = balance - amount
	w.entries = append(w.entries, Entry{PlayerID: playerID, Kind: EntryDebit, Amount: amount, Memo: memo})
	return nil
}

func (w *InMemoryWallet) Credit(ctx context.Context, playerID string, amount uint64, memo string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if amount == 0 {
		return ErrInvalidAmount
	}

	w.mutex.Lock()
	defer w.mutex.Unlock()

	balance := w.balanceLocked(playerID)
	if balance > math.MaxUint64-amount {
		return fmt.Errorf("credit %d to %s with balance %d: %w", amount, playerID, balance, ErrBalanceOverflow)
	}

	w.balances[playerID] = balance + amount
	w.entries = append(w.entries, Entry{PlayerID: playerID, Kind: EntryCredit, Amount: amount, Memo: memo})
	return nil
}

// Entries returns every movement booked for playerID, oldest first
func (w *InMemoryWallet) Entries(playerID string) []Entry {
	w.mutex.RLock()
	defer w.mutex.RUnlock()

	out := []Entry{}
	for _, e := range w.entries {
		if e.PlayerID == playerID {
			out = append(out, e)
		}
	}
	return out
}

func (w *InMemoryWallet) balanceLocked(playerID string) uint64 {
	if balance, ok := w.balances[playerID]; ok {
		return balance
	}
	return w.startingBalance
}
