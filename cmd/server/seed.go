package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/recallbox/recall-api/internal/domain"
	"github.com/recallbox/recall-api/internal/store"
)

// defaultDeck is the starter deck installed on first run, so a fresh
// deployment has something to review before any import happens.
var defaultDeck = []domain.Card{
	{
		Question: "What is the capital of France?",
		Answer:   "Paris",
	},
	{
		Question: "What is 2 + 2?",
		Answer:   "4",
	},
	{
		Question: "What color is the sky?",
		Answer:   "Blue",
	},
}

// seedDeck installs the default deck when the cards table is empty.
// Subsequent starts leave an already-populated deck alone, so removing a
// seed card later does not resurrect it.
func seedDeck(ctx context.Context, cards store.CardStore, logger *slog.Logger) error {
	existing, err := cards.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to check existing cards: %w", err)
	}
	if len(existing) > 0 {
		logger.Debug("deck already populated, skipping seed",
			slog.Int("card_count", len(existing)))
		return nil
	}

	if err := cards.CreateMultiple(ctx, defaultDeck); err != nil {
		return fmt.Errorf("failed to seed default deck: %w", err)
	}
	logger.Info("seeded default deck", slog.Int("card_count", len(defaultDeck)))
	return nil
}
