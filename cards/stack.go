package cards

import "strings"

// Stack represents an ordered collection of cards
type Stack []Card

// NewStack creates a new stack with the given cards
func NewStack(cards ...Card) Stack {
	return Stack(cards)
}

// AddCard appends a card to the stack
func (s *Stack) AddCard(card Card) {
	*s = append(*s, card)
}

// AddCards appends cards to the stack
func (s *Stack) AddCards(cards ...Card) {
	*s = append(*s, cards...)
}

// IndexOf returns the position of card in the stack, or -1
func (s Stack) IndexOf(card Card) int {
	for i, c := range s {
		if c.Equals(card) {
			return i
		}
	}
	return -1
}

// Contains reports whether the stack holds card
func (s Stack) Contains(card Card) bool {
	return s.IndexOf(card) >= 0
}

// Remove takes the first occurrence of card out of the stack.
// It reports false when the card was not present.
func (s *Stack) Remove(card Card) bool {
	i := s.IndexOf(card)
	if i < 0 {
		return false
	}
	*s = append((*s)[:i], (*s)[i+1:]...)
	return true
}

// Clone returns an independent copy of the stack
func (s Stack) Clone() Stack {
	if s == nil {
		return nil
	}
	out := make(Stack, len(s))
	copy(out, s)
	return out
}

func (s Stack) String() string {
	parts := make([]string, len(s))
	for i, c := range s {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
