package study

import (
	"fmt"
	"testing"

	"github.com/phrazzld/frequency-api/internal/domain"
	"github.com/phrazzld/frequency-api/internal/progress"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testCatalog builds a frequency-ordered catalog of n words.
func testCatalog(n int) []domain.WordEntry {
	catalog := make([]domain.WordEntry, 0, n)
	for i := 1; i <= n; i++ {
		catalog = append(catalog, domain.WordEntry{
			ID:       i,
			Japanese: fmt.Sprintf("word-%d", i),
			Romaji:   fmt.Sprintf("romaji-%d", i),
			English:  fmt.Sprintf("english-%d", i),
		})
	}
	return catalog
}

func emptyView() progress.View {
	return progress.NewViewForTest(nil, nil, nil)
}

func TestBuildQueueFirstTwentyInCatalogOrder(t *testing.T) {
	t.Parallel()

	selector := NewSelector(100)
	queue := selector.BuildQueue(testCatalog(500), emptyView(), QueueConfig{Count: 20})

	require.Len(t, queue, 20)
	for i, word := range queue {
		assert.Equal(t, i+1, word.ID, "queue must be the first 20 catalog entries in order")
	}
}

func TestBuildQueueExcludesMemorized(t *testing.T) {
	t.Parallel()

	words := map[int]domain.WordProgress{
		2: {Score: 9.0, Attempts: 20, Correct: 19}, // mastered (95%)
		4: {Score: 3.0, Attempts: 20, Correct: 10}, // not mastered
	}
	memorized := map[int]bool{5: true} // manual flag
	view := progress.NewViewForTest(words, memorized, nil)

	selector := NewSelector(100)
	queue := selector.BuildQueue(testCatalog(10), view, QueueConfig{Count: 10, ExcludeMemorized: true})

	ids := make([]int, 0, len(queue))
	for _, w := range queue {
		ids = append(ids, w.ID)
	}
	assert.Equal(t, []int{1, 3, 4, 6, 7, 8, 9, 10}, ids)
}

func TestBuildQueueMemorizedKeptWithoutFlag(t *testing.T) {
	t.Parallel()

	words := map[int]domain.WordProgress{
		1: {Score: 10.0, Attempts: 50, Correct: 50},
	}
	view := progress.NewViewForTest(words, nil, nil)

	selector := NewSelector(100)
	queue := selector.BuildQueue(testCatalog(5), view, QueueConfig{Count: 5})

	require.Len(t, queue, 5)
	assert.Equal(t, 1, queue[0].ID, "without ExcludeMemorized mastered words stay in the queue")
}

func TestBuildQueueSkipsDeleted(t *testing.T) {
	t.Parallel()

	view := progress.NewViewForTest(nil, nil, map[int]bool{7: true})

	selector := NewSelector(100)
	queue := selector.BuildQueue(testCatalog(10), view, QueueConfig{Count: 10})

	for _, w := range queue {
		assert.NotEqual(t, 7, w.ID, "deleted word must never appear in the queue")
	}
	assert.Len(t, queue, 9)
}

func TestBuildQueueCountLargerThanPool(t *testing.T) {
	t.Parallel()

	selector := NewSelector(100)
	queue := selector.BuildQueue(testCatalog(5), emptyView(), QueueConfig{Count: 50})

	assert.Len(t, queue, 5, "an oversized count yields the whole pool without padding")
}

func TestBuildQueueEmptyPool(t *testing.T) {
	t.Parallel()

	selector := NewSelector(100)

	queue := selector.BuildQueue(nil, emptyView(), QueueConfig{Count: 20})
	assert.Empty(t, queue)

	deleted := map[int]bool{1: true, 2: true, 3: true}
	queue = selector.BuildQueue(testCatalog(3), progress.NewViewForTest(nil, nil, deleted), QueueConfig{Count: 20})
	assert.Empty(t, queue, "a fully deleted catalog yields an empty queue")
}

func TestBuildQueueClampsToMaxCount(t *testing.T) {
	t.Parallel()

	selector := NewSelector(25)
	queue := selector.BuildQueue(testCatalog(500), emptyView(), QueueConfig{Count: 400})

	assert.Len(t, queue, 25)
}

func TestBuildQueueShufflePreservesMembership(t *testing.T) {
	t.Parallel()

	selector := NewSelector(100)
	// Deterministic reversal stands in for rand.Shuffle: the contract under
	// test is that only the selected subset is reordered, never replaced.
	selector.shuffle = func(n int, swap func(i, j int)) {
		for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
			swap(i, j)
		}
	}

	queue := selector.BuildQueue(testCatalog(50), emptyView(), QueueConfig{Count: 10, RandomOrder: true})

	require.Len(t, queue, 10)
	seen := make(map[int]bool)
	for _, w := range queue {
		assert.LessOrEqual(t, w.ID, 10, "shuffle must only reorder the selected subset")
		seen[w.ID] = true
	}
	assert.Len(t, seen, 10, "shuffle must not duplicate or drop entries")
	assert.Equal(t, 10, queue[0].ID, "reversal shuffle applied")
}

func TestBuildQueueNonPositiveCount(t *testing.T) {
	t.Parallel()

	selector := NewSelector(100)
	assert.Empty(t, selector.BuildQueue(testCatalog(10), emptyView(), QueueConfig{Count: 0}))
	assert.Empty(t, selector.BuildQueue(testCatalog(10), emptyView(), QueueConfig{Count: -5}))
}
