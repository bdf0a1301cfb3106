package catalog

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recallbox/recall-api/internal/domain"
)

func TestAppendIfNewDedup(t *testing.T) {
	t.Parallel()
	c := New([]domain.Card{{Question: "q1", Answer: "a1"}})

	// Duplicate question: nothing appended.
	added := c.AppendIfNew([]domain.Card{{Question: "q1", Answer: "different"}})
	assert.Equal(t, 0, added)
	assert.Equal(t, 1, c.Len())

	// The original card wins.
	card, ok := c.Get("q1")
	require.True(t, ok)
	assert.Equal(t, "a1", card.Answer)

	// Genuinely new card appends.
	added = c.AppendIfNew([]domain.Card{{Question: "q2", Answer: "a2"}})
	assert.Equal(t, 1, added)
	assert.Equal(t, 2, c.Len())
}

func TestAppendIfNewSkipsMalformed(t *testing.T) {
	t.Parallel()
	c := New(nil)

	added := c.AppendIfNew([]domain.Card{
		{Question: "", Answer: "a"},
		{Question: "q", Answer: ""},
		{Question: "ok", Answer: "fine"},
	})

	// Malformed entries are skipped individually, not fatal to the batch.
	assert.Equal(t, 1, added)
	assert.Equal(t, 1, c.Len())
}

func TestAppendIfNewDuplicateWithinBatch(t *testing.T) {
	t.Parallel()
	c := New(nil)

	added := c.AppendIfNew([]domain.Card{
		{Question: "q", Answer: "first"},
		{Question: "q", Answer: "second"},
	})
	assert.Equal(t, 1, added)

	card, _ := c.Get("q")
	assert.Equal(t, "first", card.Answer)
}

func TestSelectNew(t *testing.T) {
	t.Parallel()
	c := New([]domain.Card{{Question: "existing", Answer: "a"}})

	selected := c.SelectNew([]domain.Card{
		{Question: "existing", Answer: "a"},
		{Question: "", Answer: "malformed"},
		{Question: "new", Answer: "b"},
		{Question: "new", Answer: "batch dup"},
	})

	require.Len(t, selected, 1)
	assert.Equal(t, "new", selected[0].Question)
	// SelectNew is read-only.
	assert.Equal(t, 1, c.Len())
}

func TestSnapshotIsIsolated(t *testing.T) {
	t.Parallel()
	c := New([]domain.Card{{Question: "q1", Answer: "a1"}})

	snap := c.Snapshot()
	c.AppendIfNew([]domain.Card{{Question: "q2", Answer: "a2"}})

	assert.Len(t, snap, 1)
	assert.Equal(t, 2, c.Len())
}

func TestConcurrentAppendAndRead(t *testing.T) {
	t.Parallel()
	c := New(nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		card := domain.Card{Question: string(rune('a' + i)), Answer: "x"}
		go func() {
			defer wg.Done()
			c.AppendIfNew([]domain.Card{card})
		}()
		go func() {
			defer wg.Done()
			_ = c.Snapshot()
		}()
	}
	wg.Wait()

	assert.Equal(t, 8, c.Len())
}
