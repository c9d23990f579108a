package api

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/phrazzld/frequency-api/internal/progress"
	"github.com/phrazzld/frequency-api/internal/store"
)

// Sessions is the per-user progress tracker registry. A user's tracker is
// created and loaded on their first request and reused for every request
// after that, giving the load-once semantics the trackers expect.
type Sessions struct {
	docs   store.DocumentStore
	runner progress.Submitter
	logger *slog.Logger

	mu       sync.Mutex
	trackers map[string]*progress.Tracker
}

// NewSessions creates a Sessions registry. Panics on nil docs. (ALLOW-PANIC)
func NewSessions(docs store.DocumentStore, runner progress.Submitter, logger *slog.Logger) *Sessions {
	if docs == nil {
		panic("api.NewSessions: docs must not be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Sessions{
		docs:     docs,
		runner:   runner,
		logger:   logger.With(slog.String("component", "sessions")),
		trackers: make(map[string]*progress.Tracker),
	}
}

// Tracker returns the loaded progress tracker for userID, creating and
// loading it on first use. A failed load is not cached; the next request
// retries.
func (s *Sessions) Tracker(ctx context.Context, userID string) (*progress.Tracker, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.trackers[userID]; ok {
		return t, nil
	}

	t := progress.NewTracker(userID, s.docs, s.runner, s.logger)
	if err := t.Load(ctx); err != nil {
		return nil, fmt.Errorf("loading progress for user %q: %w", userID, err)
	}
	s.trackers[userID] = t
	s.logger.Info("loaded user session", slog.String("user_id", userID))
	return t, nil
}
