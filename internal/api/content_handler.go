package api

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/phrazzld/frequency-api/internal/api/shared"
	"github.com/phrazzld/frequency-api/internal/catalog"
	"github.com/phrazzld/frequency-api/internal/domain"
)

// ExampleGetter serves the cached example sentence for a word.
type ExampleGetter interface {
	Get(ctx context.Context, word domain.WordEntry) (domain.ExampleSentence, error)
}

// PhraseGetter serves the cached phrase list for a word.
type PhraseGetter interface {
	Get(ctx context.Context, word domain.WordEntry) (domain.PhraseList, error)
}

// BreakdownGetter serves the cached breakdown for one phrase of a word.
type BreakdownGetter interface {
	Get(ctx context.Context, word domain.WordEntry, index int) (domain.Breakdown, error)
}

// ContentHandler serves the generated study content endpoints. Responses are
// tri-state: ready with the artifact, or failed with an error status. A
// request that triggers generation blocks until the artifact is ready, and
// concurrent requests for the same artifact share that one generation.
type ContentHandler struct {
	catalog    *catalog.Catalog
	examples   ExampleGetter
	phrases    PhraseGetter
	breakdowns BreakdownGetter
	logger     *slog.Logger
}

// NewContentHandler creates a ContentHandler. Panics on nil dependencies.
// (ALLOW-PANIC)
func NewContentHandler(
	cat *catalog.Catalog,
	examples ExampleGetter,
	phrases PhraseGetter,
	breakdowns BreakdownGetter,
	logger *slog.Logger,
) *ContentHandler {
	if cat == nil {
		panic("api.NewContentHandler: catalog must not be nil")
	}
	if examples == nil || phrases == nil || breakdowns == nil {
		panic("api.NewContentHandler: content services must not be nil")
	}
	if logger == nil {
		panic("api.NewContentHandler: logger must not be nil")
	}
	return &ContentHandler{
		catalog:    cat,
		examples:   examples,
		phrases:    phrases,
		breakdowns: breakdowns,
		logger:     logger.With(slog.String("component", "content_handler")),
	}
}

// GetExample handles GET /api/words/{id}/example.
func (h *ContentHandler) GetExample(w http.ResponseWriter, r *http.Request) {
	word, ok := h.word(w, r)
	if !ok {
		return
	}

	example, err := h.examples.Get(r.Context(), word)
	if err != nil {
		h.respondFailed(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, ExampleResponse{
		Status:  StatusReady,
		Example: &example,
	})
}

// GetPhrases handles GET /api/words/{id}/phrases.
func (h *ContentHandler) GetPhrases(w http.ResponseWriter, r *http.Request) {
	word, ok := h.word(w, r)
	if !ok {
		return
	}

	phrases, err := h.phrases.Get(r.Context(), word)
	if err != nil {
		h.respondFailed(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, PhrasesResponse{
		Status:  StatusReady,
		Phrases: phrases,
	})
}

// GetBreakdown handles GET /api/words/{id}/phrases/{index}/breakdown.
func (h *ContentHandler) GetBreakdown(w http.ResponseWriter, r *http.Request) {
	word, ok := h.word(w, r)
	if !ok {
		return
	}
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || index < 0 || index >= domain.PhraseCount {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid phrase index")
		return
	}

	breakdown, err := h.breakdowns.Get(r.Context(), word, index)
	if err != nil {
		h.respondFailed(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, BreakdownResponse{
		Status:    StatusReady,
		Breakdown: &breakdown,
	})
}

// respondFailed writes a tri-state failed body with the mapped status code.
// Failures are never cached, so the client may simply retry.
func (h *ContentHandler) respondFailed(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	traceID := shared.GetTraceID(r.Context())
	h.logger.LogAttrs(r.Context(), slog.LevelWarn, "content generation failed",
		slog.String("trace_id", traceID),
		slog.String("path", r.URL.Path),
		slog.Int("status_code", status),
		slog.String("error", err.Error()))
	shared.RespondWithJSON(w, r, status, map[string]string{
		"status": StatusFailed,
		"error":  GetSafeErrorMessage(err),
	})
}

// word parses the {id} path parameter and resolves it against the catalog.
func (h *ContentHandler) word(w http.ResponseWriter, r *http.Request) (domain.WordEntry, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid word ID")
		return domain.WordEntry{}, false
	}
	word, found := h.catalog.Word(id)
	if !found {
		shared.RespondWithError(w, r, http.StatusNotFound, "Word not found")
		return domain.WordEntry{}, false
	}
	return word, true
}
