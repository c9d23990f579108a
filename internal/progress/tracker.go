package progress

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/phrazzld/frequency-api/internal/domain"
	"github.com/phrazzld/frequency-api/internal/domain/scoring"
	"github.com/phrazzld/frequency-api/internal/store"
	"github.com/phrazzld/frequency-api/internal/task"
)

// persistTimeout bounds each background durable write. The write is
// best-effort, so a slow backend must not pin a worker indefinitely.
const persistTimeout = 10 * time.Second

// taskTypePersistProgress identifies background progress writes.
const taskTypePersistProgress = "persist_progress"

// Submitter is the slice of the task runner the tracker needs.
type Submitter interface {
	Submit(t task.Task) error
}

// record is the persisted document shape for one user. Word IDs become JSON
// object keys; the sets are stored as sorted arrays so documents are
// deterministic for identical state.
type record struct {
	WordProgress map[int]domain.WordProgress `json:"word_progress"`
	Memorized    []int                       `json:"memorized,omitempty"`
	Deleted      []int                       `json:"deleted,omitempty"`
}

// Stats summarizes a user's visible progress. Deleted words are excluded
// from every field.
type Stats struct {
	Studied  int     `json:"studied"`
	Mastered int     `json:"mastered"`
	Learning int     `json:"learning"`
	AvgScore float64 `json:"avg_score"`
}

// Tracker holds one user's study state. It is the only writer of that
// state: swipe outcomes are applied in memory under the tracker's lock, in
// call order, before the durable write is dispatched, so late persistence
// completions can never reorder scores.
type Tracker struct {
	userID string
	docs   store.DocumentStore
	runner Submitter
	logger *slog.Logger

	// now is the clock; overridable in tests.
	now func() time.Time

	mu        sync.Mutex
	words     map[int]domain.WordProgress
	memorized map[int]bool
	deleted   map[int]bool

	// persistMu serializes durable writes so two background tasks never
	// overlap on the same user document.
	persistMu sync.Mutex
}

// NewTracker creates a Tracker for the given user. Call Load before use.
func NewTracker(
	userID string,
	docs store.DocumentStore,
	runner Submitter,
	logger *slog.Logger,
) *Tracker {
	if docs == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("document store cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Tracker{
		userID:    userID,
		docs:      docs,
		runner:    runner,
		logger:    logger.With(slog.String("component", "progress_tracker"), slog.String("user_id", userID)),
		now:       time.Now,
		words:     make(map[int]domain.WordProgress),
		memorized: make(map[int]bool),
		deleted:   make(map[int]bool),
	}
}

// Load fetches the user's progress document once at session start. An
// absent record yields empty progress, not an error.
func (t *Tracker) Load(ctx context.Context) error {
	doc, err := t.docs.Get(ctx, store.CollectionUsers, t.userID)
	if err != nil {
		if store.IsNotFoundError(err) {
			t.logger.DebugContext(ctx, "no stored progress, starting empty")
			return nil
		}
		return fmt.Errorf("failed to load progress: %w", err)
	}

	var rec record
	if err := json.Unmarshal(doc, &rec); err != nil {
		return fmt.Errorf("failed to decode progress document: %w", err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if rec.WordProgress != nil {
		t.words = rec.WordProgress
	}
	for _, id := range rec.Memorized {
		t.memorized[id] = true
	}
	for _, id := range rec.Deleted {
		t.deleted[id] = true
	}

	t.logger.DebugContext(ctx, "progress loaded",
		slog.Int("words", len(t.words)),
		slog.Int("memorized", len(t.memorized)),
		slog.Int("deleted", len(t.deleted)))
	return nil
}

// RecordOutcome applies one swipe outcome to a word and returns the updated
// progress. The in-memory update is synchronous and immediately visible;
// the durable write happens in the background and a failure there is
// logged, never rolled back.
func (t *Tracker) RecordOutcome(wordID int, correct bool) domain.WordProgress {
	t.mu.Lock()

	p, ok := t.words[wordID]
	if !ok {
		p = domain.NewWordProgress()
	}

	p.Score = scoring.RoundScore(scoring.UpdateScore(p.Score, correct))
	p.Attempts++
	if correct {
		p.Correct++
	}
	if now := t.now().UTC(); now.After(p.LastReviewed) {
		p.LastReviewed = now
	}

	t.words[wordID] = p
	t.mu.Unlock()

	t.schedulePersist()
	return p
}

// Progress returns the stored progress for a word, or the default state for
// a word that has never been reviewed. Deleted words still report their
// retained progress.
func (t *Tracker) Progress(wordID int) domain.WordProgress {
	t.mu.Lock()
	defer t.mu.Unlock()
	if p, ok := t.words[wordID]; ok {
		return p
	}
	return domain.NewWordProgress()
}

// Score returns the word's current score, the default 5.0 when unreviewed.
func (t *Tracker) Score(wordID int) float64 {
	return t.Progress(wordID).Score
}

// MarkMastered sets the manual memorized flag for a word. The flag is
// independent of the score arithmetic.
func (t *Tracker) MarkMastered(wordID int) {
	t.mu.Lock()
	t.memorized[wordID] = true
	t.mu.Unlock()
	t.schedulePersist()
}

// UnmarkMastered clears the manual memorized flag.
func (t *Tracker) UnmarkMastered(wordID int) {
	t.mu.Lock()
	delete(t.memorized, wordID)
	t.mu.Unlock()
	t.schedulePersist()
}

// Delete hides a word from queues, lists, and stats. The word's progress
// data is retained and still readable through Progress and Score.
func (t *Tracker) Delete(wordID int) {
	t.mu.Lock()
	t.deleted[wordID] = true
	t.mu.Unlock()
	t.schedulePersist()
}

// Restore makes a deleted word visible again.
func (t *Tracker) Restore(wordID int) {
	t.mu.Lock()
	delete(t.deleted, wordID)
	t.mu.Unlock()
	t.schedulePersist()
}

// IsDeleted reports whether the word is hidden.
func (t *Tracker) IsDeleted(wordID int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.deleted[wordID]
}

// IsMemorized reports whether the word counts as memorized for display and
// queue purposes: either manually flagged or derived mastery.
func (t *Tracker) IsMemorized(wordID int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.isMemorizedLocked(wordID)
}

func (t *Tracker) isMemorizedLocked(wordID int) bool {
	if t.memorized[wordID] {
		return true
	}
	p, ok := t.words[wordID]
	return ok && scoring.IsMastered(p)
}

// Stats computes the visible progress summary. Deleted words are excluded
// from the denominator entirely; the average score is rounded to one
// decimal.
func (t *Tracker) Stats() Stats {
	t.mu.Lock()
	defer t.mu.Unlock()

	var s Stats
	var sum float64
	for id, p := range t.words {
		if t.deleted[id] {
			continue
		}
		s.Studied++
		sum += p.Score
		if scoring.IsMastered(p) {
			s.Mastered++
		}
	}
	s.Learning = s.Studied - s.Mastered
	if s.Studied > 0 {
		s.AvgScore = scoring.RoundScore(sum / float64(s.Studied))
	}
	return s
}

// View returns an immutable snapshot of the state needed to build a study
// queue or render the word list.
func (t *Tracker) View() View {
	t.mu.Lock()
	defer t.mu.Unlock()

	v := View{
		words:     make(map[int]domain.WordProgress, len(t.words)),
		memorized: make(map[int]bool, len(t.memorized)),
		deleted:   make(map[int]bool, len(t.deleted)),
	}
	for id, p := range t.words {
		v.words[id] = p
	}
	for id := range t.memorized {
		v.memorized[id] = true
	}
	for id := range t.deleted {
		v.deleted[id] = true
	}
	return v
}

// schedulePersist queues a background durable write of the whole document.
// The snapshot is taken when the task executes, so whichever write lands
// last carries the newest state.
func (t *Tracker) schedulePersist() {
	if t.runner == nil {
		return
	}

	persist := task.NewFuncTask(taskTypePersistProgress, func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, persistTimeout)
		defer cancel()
		return t.persist(ctx)
	})

	if err := t.runner.Submit(persist); err != nil {
		// Queue pressure drops this write; the next outcome will persist
		// the same map again.
		t.logger.Warn("failed to queue progress write", slog.String("error", err.Error()))
	}
}

// persist writes the current state to the document store. Writes are
// serialized per tracker so they cannot overlap on the user's document.
func (t *Tracker) persist(ctx context.Context) error {
	t.persistMu.Lock()
	defer t.persistMu.Unlock()

	doc, err := json.Marshal(t.snapshot())
	if err != nil {
		return fmt.Errorf("failed to encode progress document: %w", err)
	}

	if err := t.docs.Put(ctx, store.CollectionUsers, t.userID, doc); err != nil {
		return fmt.Errorf("failed to persist progress: %w", err)
	}
	return nil
}

// snapshot copies the current state into its persisted shape.
func (t *Tracker) snapshot() record {
	t.mu.Lock()
	defer t.mu.Unlock()

	rec := record{WordProgress: make(map[int]domain.WordProgress, len(t.words))}
	for id, p := range t.words {
		rec.WordProgress[id] = p
	}
	rec.Memorized = sortedKeys(t.memorized)
	rec.Deleted = sortedKeys(t.deleted)
	return rec
}

func sortedKeys(set map[int]bool) []int {
	if len(set) == 0 {
		return nil
	}
	keys := make([]int, 0, len(set))
	for id := range set {
		keys = append(keys, id)
	}
	sort.Ints(keys)
	return keys
}
