// Package study builds study queues from the word catalog and a snapshot of
// the user's progress. Selection is rank-prioritized: the catalog is
// frequency-ordered, and the most common words not yet excluded are always
// presented first.
package study

import (
	"math/rand"

	"github.com/phrazzld/frequency-api/internal/domain"
	"github.com/phrazzld/frequency-api/internal/progress"
)

// QueueConfig controls one queue build.
type QueueConfig struct {
	// Count is the number of words requested. Values above MaxCount are
	// clamped; a non-positive value yields an empty queue.
	Count int

	// ExcludeMemorized drops words that are mastered or manually flagged
	// as memorized.
	ExcludeMemorized bool

	// RandomOrder shuffles the selected words. Only the selected subset is
	// shuffled; selection itself stays rank-ordered.
	RandomOrder bool
}

// Selector builds study queues.
type Selector struct {
	maxCount int

	// shuffle is swappable for deterministic tests.
	shuffle func(n int, swap func(i, j int))
}

// NewSelector creates a Selector. maxCount caps the size of any single
// queue; non-positive values disable the cap.
func NewSelector(maxCount int) *Selector {
	return &Selector{
		maxCount: maxCount,
		shuffle:  rand.Shuffle,
	}
}

// BuildQueue selects the next words to study.
//
// The catalog is walked in its stable frequency-rank order. Deleted words
// are always skipped; memorized words are skipped when cfg.ExcludeMemorized
// is set. The first cfg.Count survivors form the queue. A count larger than
// the available pool yields the entire pool, and an empty pool yields an
// empty queue, which callers surface as "nothing to study".
func (s *Selector) BuildQueue(
	catalog []domain.WordEntry,
	view progress.View,
	cfg QueueConfig,
) []domain.WordEntry {
	count := cfg.Count
	if s.maxCount > 0 && count > s.maxCount {
		count = s.maxCount
	}
	if count <= 0 {
		return []domain.WordEntry{}
	}

	queue := make([]domain.WordEntry, 0, count)
	for _, word := range catalog {
		if view.Deleted(word.ID) {
			continue
		}
		if cfg.ExcludeMemorized && view.Memorized(word.ID) {
			continue
		}
		queue = append(queue, word)
		if len(queue) == count {
			break
		}
	}

	if cfg.RandomOrder {
		s.shuffle(len(queue), func(i, j int) {
			queue[i], queue[j] = queue[j], queue[i]
		})
	}

	return queue
}
