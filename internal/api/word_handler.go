package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/phrazzld/frequency-api/internal/api/shared"
	"github.com/phrazzld/frequency-api/internal/catalog"
	"github.com/phrazzld/frequency-api/internal/progress"
)

// WordHandler serves the catalog merged with per-user progress and the
// word-level flags (memorized, deleted).
type WordHandler struct {
	catalog  *catalog.Catalog
	sessions *Sessions
	logger   *slog.Logger
}

// NewWordHandler creates a WordHandler. Panics on nil dependencies.
// (ALLOW-PANIC)
func NewWordHandler(cat *catalog.Catalog, sessions *Sessions, logger *slog.Logger) *WordHandler {
	if cat == nil {
		panic("api.NewWordHandler: catalog must not be nil")
	}
	if sessions == nil {
		panic("api.NewWordHandler: sessions must not be nil")
	}
	if logger == nil {
		panic("api.NewWordHandler: logger must not be nil")
	}
	return &WordHandler{
		catalog:  cat,
		sessions: sessions,
		logger:   logger.With(slog.String("component", "word_handler")),
	}
}

// ListWords handles GET /api/words. Every catalog entry is returned in rank
// order with the user's score and flags merged in; deleted words are
// included and marked so the client can offer restore.
func (h *WordHandler) ListWords(w http.ResponseWriter, r *http.Request) {
	tracker, ok := h.tracker(w, r)
	if !ok {
		return
	}

	words := h.catalog.Words()
	out := make([]WordResponse, 0, len(words))
	for _, entry := range words {
		p := tracker.Progress(entry.ID)
		out = append(out, WordResponse{
			ID:        entry.ID,
			Japanese:  entry.Japanese,
			Romaji:    entry.Romaji,
			English:   entry.English,
			Score:     p.Score,
			Attempts:  p.Attempts,
			Correct:   p.Correct,
			Memorized: tracker.IsMemorized(entry.ID),
			Deleted:   tracker.IsDeleted(entry.ID),
		})
	}
	shared.RespondWithJSON(w, r, http.StatusOK, out)
}

// Memorize handles POST /api/words/{id}/memorize.
func (h *WordHandler) Memorize(w http.ResponseWriter, r *http.Request) {
	h.applyFlag(w, r, func(t *progress.Tracker, id int) { t.MarkMastered(id) })
}

// Unmemorize handles DELETE /api/words/{id}/memorize.
func (h *WordHandler) Unmemorize(w http.ResponseWriter, r *http.Request) {
	h.applyFlag(w, r, func(t *progress.Tracker, id int) { t.UnmarkMastered(id) })
}

// Delete handles DELETE /api/words/{id}. Deletion only hides the word;
// progress is retained and Restore undoes it.
func (h *WordHandler) Delete(w http.ResponseWriter, r *http.Request) {
	h.applyFlag(w, r, func(t *progress.Tracker, id int) { t.Delete(id) })
}

// Restore handles POST /api/words/{id}/restore.
func (h *WordHandler) Restore(w http.ResponseWriter, r *http.Request) {
	h.applyFlag(w, r, func(t *progress.Tracker, id int) { t.Restore(id) })
}

// applyFlag runs one flag mutation against the user's tracker after
// resolving and validating the word ID.
func (h *WordHandler) applyFlag(w http.ResponseWriter, r *http.Request, apply func(*progress.Tracker, int)) {
	id, ok := h.wordID(w, r)
	if !ok {
		return
	}
	tracker, ok := h.tracker(w, r)
	if !ok {
		return
	}
	apply(tracker, id)
	w.WriteHeader(http.StatusNoContent)
}

// wordID parses the {id} path parameter and verifies the word exists in the
// catalog. Writes the error response itself on failure.
func (h *WordHandler) wordID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid word ID")
		return 0, false
	}
	if _, found := h.catalog.Word(id); !found {
		shared.RespondWithError(w, r, http.StatusNotFound, "Word not found")
		return 0, false
	}
	return id, true
}

// tracker resolves the requesting user's progress tracker. Writes the error
// response itself on failure.
func (h *WordHandler) tracker(w http.ResponseWriter, r *http.Request) (*progress.Tracker, bool) {
	userID := shared.GetUserID(r.Context())
	if userID == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Missing user ID")
		return nil, false
	}
	tracker, err := h.sessions.Tracker(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusServiceUnavailable, "Progress unavailable", err)
		return nil, false
	}
	return tracker, true
}
