package game

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
)

// SeedSource provides the shuffle seed used when a game fills up.
type SeedSource interface {
	Seed() (uint64, error)
}

// CryptoSeedSource draws seeds from crypto/rand
type CryptoSeedSource struct{}

func (CryptoSeedSource) Seed() (uint64, error) {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("failed to read seed: %w", err)
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

// FixedSeedSource always returns the same seed. Useful for replays and tests.
type FixedSeedSource uint64

func (s FixedSeedSource) Seed() (uint64, error) {
	return uint64(s), nil
}
