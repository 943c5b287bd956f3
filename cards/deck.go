package cards

import (
	"errors"
	"fmt"
)

const (
	// DeckSize is the number of cards in a standard deck
	DeckSize = 52

	lcgMultiplier uint64 = 1103515245
	lcgIncrement  uint64 = 12345
)

var ErrNotEnoughCards = errors.New("not enough cards in deck")

// NewDeck52 creates a standard deck of 52 cards, suit-major with ranks ascending.
func NewDeck52() Stack {
	deck := make(Stack, 0, DeckSize)
	for _, suit := range Suits {
		for rank := Ace; rank <= King; rank++ {
			deck.AddCard(Card{Suit: suit, Rank: rank})
		}
	}
	return deck
}

// Shuffle returns a permutation of deck determined entirely by seed.
// It runs Fisher-Yates from the top index down, drawing each swap
// position from a 64-bit linear congruential generator.
// The input deck is left untouched.
func Shuffle(deck Stack, seed uint64) Stack {
	shuffled := deck.Clone()

	state := seed
	for i := len(shuffled) - 1; i >= 1; i-- {
		state = state*lcgMultiplier + lcgIncrement
		j := int(state % uint64(i+1))
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}

	return shuffled
}

// Deal slices numHands contiguous hands of handSize cards off the top of the deck.
// It returns the hands and the cards left over.
func Deal(deck Stack, handSize, numHands int) ([]Stack, Stack, error) {
	if handSize < 0 || numHands < 0 {
		return nil, deck, fmt.Errorf("invalid deal of %d hands of %d cards", numHands, handSize)
	}

	need := handSize * numHands
	if len(deck) < need {
		return nil, deck, fmt.Errorf("%w: need %d, have %d", ErrNotEnoughCards, need, len(deck))
	}

	hands := make([]Stack, numHands)
	for i := range hands {
		start := i * handSize
		hands[i] = deck[start : start+handSize].Clone()
	}

	return hands, deck[need:].Clone(), nil
}
