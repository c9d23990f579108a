package progress

import (
	"github.com/phrazzld/frequency-api/internal/domain"
	"github.com/phrazzld/frequency-api/internal/domain/scoring"
)

// View is a point-in-time snapshot of a user's progress state, detached
// from the tracker's lock. Queue building and list rendering read from a
// View so a long walk over the catalog never blocks swipe updates.
type View struct {
	words     map[int]domain.WordProgress
	memorized map[int]bool
	deleted   map[int]bool
}

// Progress returns the snapshot's progress for a word, defaulting for
// never-reviewed words.
func (v View) Progress(wordID int) domain.WordProgress {
	if p, ok := v.words[wordID]; ok {
		return p
	}
	return domain.NewWordProgress()
}

// Deleted reports whether the word was hidden at snapshot time.
func (v View) Deleted(wordID int) bool {
	return v.deleted[wordID]
}

// Memorized reports whether the word counted as memorized at snapshot time,
// either via the manual flag or derived mastery.
func (v View) Memorized(wordID int) bool {
	if v.memorized[wordID] {
		return true
	}
	p, ok := v.words[wordID]
	return ok && scoring.IsMastered(p)
}

// NewViewForTest builds a View directly from maps. Exported for use by
// tests in other packages; production code obtains views from a Tracker.
func NewViewForTest(
	words map[int]domain.WordProgress,
	memorized map[int]bool,
	deleted map[int]bool,
) View {
	if words == nil {
		words = map[int]domain.WordProgress{}
	}
	if memorized == nil {
		memorized = map[int]bool{}
	}
	if deleted == nil {
		deleted = map[int]bool{}
	}
	return View{words: words, memorized: memorized, deleted: deleted}
}
