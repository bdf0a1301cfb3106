// Package catalog holds the shared flashcard set. The catalog is
// append-only at runtime: imports may add cards, nothing removes them, and
// every card is identified by its question text.
package catalog

import (
	"sync"

	"github.com/recallbox/recall-api/internal/domain"
)

// Catalog is a concurrency-safe, append-only collection of cards keyed by
// question. Appends are serialized against readers so a reader never
// observes a partially applied import.
type Catalog struct {
	mu    sync.RWMutex
	cards []domain.Card
	index map[string]int
}

// New creates a Catalog seeded with the given cards. Malformed entries and
// duplicate questions in the seed are dropped, matching import semantics.
func New(cards []domain.Card) *Catalog {
	c := &Catalog{
		index: make(map[string]int),
	}
	c.AppendIfNew(cards)
	return c
}

// Len returns the number of cards in the catalog.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cards)
}

// Get returns the card for the given question, if present.
func (c *Catalog) Get(question string) (domain.Card, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i, ok := c.index[question]
	if !ok {
		return domain.Card{}, false
	}
	return c.cards[i], true
}

// Snapshot returns a copy of the current card list. Callers may hold the
// slice indefinitely without blocking appends.
func (c *Catalog) Snapshot() []domain.Card {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.Card, len(c.cards))
	copy(out, c.cards)
	return out
}

// SelectNew filters candidates down to well-formed cards whose question is
// not yet in the catalog, preserving order and dropping duplicates within
// the batch itself. It does not modify the catalog.
func (c *Catalog) SelectNew(candidates []domain.Card) []domain.Card {
	c.mu.RLock()
	defer c.mu.RUnlock()

	seen := make(map[string]bool, len(candidates))
	out := make([]domain.Card, 0, len(candidates))
	for _, card := range candidates {
		if card.Validate() != nil {
			continue
		}
		if _, exists := c.index[card.Question]; exists {
			continue
		}
		if seen[card.Question] {
			continue
		}
		seen[card.Question] = true
		out = append(out, card)
	}
	return out
}

// AppendIfNew appends each importable candidate whose question is not
// already present and returns how many were actually added. Candidates
// missing a question or answer are skipped individually; duplicates are
// skipped silently. Existing profiles are never retrofitted with the new
// cards.
func (c *Catalog) AppendIfNew(candidates []domain.Card) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	added := 0
	for _, card := range candidates {
		if card.Validate() != nil {
			continue
		}
		if _, exists := c.index[card.Question]; exists {
			continue
		}
		c.index[card.Question] = len(c.cards)
		c.cards = append(c.cards, card)
		added++
	}
	return added
}
