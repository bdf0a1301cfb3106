package service

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recallbox/recall-api/internal/catalog"
	"github.com/recallbox/recall-api/internal/domain"
)

func newDeckServiceForTest(t *testing.T, seed []domain.Card) (*deckServiceImpl, *fakeCardStore) {
	t.Helper()

	cards := &fakeCardStore{}
	svc := &deckServiceImpl{
		cards:    cards,
		catalog:  catalog.New(seed),
		txRunner: passthroughTxRunner,
		logger:   slog.Default(),
	}
	return svc, cards
}

func TestImportAddsNewCards(t *testing.T) {
	t.Parallel()

	svc, cards := newDeckServiceForTest(t, testDeck)

	result, err := svc.Import(context.Background(), []domain.Card{
		{Question: "What is the largest planet?", Answer: "Jupiter"},
		{Question: "What is H2O?", Answer: "Water", Hint: "you drink it"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Added)
	assert.Equal(t, 0, result.Skipped)
	assert.Equal(t, len(testDeck)+2, result.Total)
	assert.Len(t, cards.persisted, 2)
}

func TestImportSkipsDuplicatesAndMalformed(t *testing.T) {
	t.Parallel()

	svc, cards := newDeckServiceForTest(t, testDeck)

	result, err := svc.Import(context.Background(), []domain.Card{
		{Question: testDeck[0].Question, Answer: "different answer"},
		{Question: "", Answer: "no question"},
		{Question: "no answer", Answer: ""},
		{Question: "What is the largest planet?", Answer: "Jupiter"},
		{Question: "What is the largest planet?", Answer: "Jupiter again"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Added)
	assert.Equal(t, 4, result.Skipped)
	assert.Equal(t, len(testDeck)+1, result.Total)

	// The existing card keeps its original answer.
	card, ok := svc.catalog.Get(testDeck[0].Question)
	require.True(t, ok)
	assert.Equal(t, testDeck[0].Answer, card.Answer)

	// Only the genuinely new card hits persistence.
	require.Len(t, cards.persisted, 1)
	assert.Equal(t, "What is the largest planet?", cards.persisted[0].Question)
}

func TestImportEmptyBatch(t *testing.T) {
	t.Parallel()

	svc, cards := newDeckServiceForTest(t, testDeck)

	result, err := svc.Import(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Added)
	assert.Equal(t, 0, result.Skipped)
	assert.Empty(t, cards.persisted)
}

func TestImportPersistenceFailureLeavesCatalogUntouched(t *testing.T) {
	t.Parallel()

	svc, cards := newDeckServiceForTest(t, testDeck)
	cards.createErr = assert.AnError

	_, err := svc.Import(context.Background(), []domain.Card{
		{Question: "What is the largest planet?", Answer: "Jupiter"},
	})
	require.Error(t, err)
	assert.Equal(t, len(testDeck), svc.catalog.Len())
}

func TestExportReturnsFullDeck(t *testing.T) {
	t.Parallel()

	svc, _ := newDeckServiceForTest(t, testDeck)

	deck, err := svc.Export(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testDeck, deck)
}
