package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/phrazzld/frequency-api/internal/api/shared"
	"github.com/phrazzld/frequency-api/internal/catalog"
	"github.com/phrazzld/frequency-api/internal/domain/scoring"
	"github.com/phrazzld/frequency-api/internal/progress"
	"github.com/phrazzld/frequency-api/internal/study"
)

// StudyHandler serves the drilling endpoints: queue building, swipe
// recording and aggregate stats.
type StudyHandler struct {
	catalog      *catalog.Catalog
	sessions     *Sessions
	selector     *study.Selector
	defaultCount int
	logger       *slog.Logger
}

// NewStudyHandler creates a StudyHandler. Panics on nil dependencies.
// (ALLOW-PANIC)
func NewStudyHandler(
	cat *catalog.Catalog,
	sessions *Sessions,
	selector *study.Selector,
	defaultCount int,
	logger *slog.Logger,
) *StudyHandler {
	if cat == nil {
		panic("api.NewStudyHandler: catalog must not be nil")
	}
	if sessions == nil {
		panic("api.NewStudyHandler: sessions must not be nil")
	}
	if selector == nil {
		panic("api.NewStudyHandler: selector must not be nil")
	}
	if logger == nil {
		panic("api.NewStudyHandler: logger must not be nil")
	}
	return &StudyHandler{
		catalog:      cat,
		sessions:     sessions,
		selector:     selector,
		defaultCount: defaultCount,
		logger:       logger.With(slog.String("component", "study_handler")),
	}
}

// GetQueue handles GET /api/study/queue. Query parameters:
// count (default from config), exclude_memorized (default true),
// random (default true).
func (h *StudyHandler) GetQueue(w http.ResponseWriter, r *http.Request) {
	tracker, ok := h.tracker(w, r)
	if !ok {
		return
	}

	cfg := study.QueueConfig{
		Count:            h.defaultCount,
		ExcludeMemorized: true,
		RandomOrder:      true,
	}
	q := r.URL.Query()
	if raw := q.Get("count"); raw != "" {
		count, err := strconv.Atoi(raw)
		if err != nil || count <= 0 {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid count parameter")
			return
		}
		cfg.Count = count
	}
	if raw := q.Get("exclude_memorized"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid exclude_memorized parameter")
			return
		}
		cfg.ExcludeMemorized = v
	}
	if raw := q.Get("random"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid random parameter")
			return
		}
		cfg.RandomOrder = v
	}

	queue := h.selector.BuildQueue(h.catalog.Words(), tracker.View(), cfg)
	shared.RespondWithJSON(w, r, http.StatusOK, queue)
}

// Swipe handles POST /api/study/swipe. The outcome is applied to the
// in-memory progress synchronously; the durable write happens in the
// background and a storage failure never rolls the response back.
func (h *StudyHandler) Swipe(w http.ResponseWriter, r *http.Request) {
	var req SwipeRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "word_id and correct are required")
		return
	}
	if _, found := h.catalog.Word(req.WordID); !found {
		shared.RespondWithError(w, r, http.StatusNotFound, "Word not found")
		return
	}

	tracker, ok := h.tracker(w, r)
	if !ok {
		return
	}

	p := tracker.RecordOutcome(req.WordID, *req.Correct)
	shared.RespondWithJSON(w, r, http.StatusOK, SwipeResponse{
		WordID:   req.WordID,
		Score:    p.Score,
		Attempts: p.Attempts,
		Correct:  p.Correct,
		Mastered: scoring.IsMastered(p),
	})
}

// GetStats handles GET /api/study/stats.
func (h *StudyHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	tracker, ok := h.tracker(w, r)
	if !ok {
		return
	}

	stats := tracker.Stats()
	shared.RespondWithJSON(w, r, http.StatusOK, StatsResponse{
		Studied:  stats.Studied,
		Mastered: stats.Mastered,
		Learning: stats.Learning,
		AvgScore: stats.AvgScore,
	})
}

func (h *StudyHandler) tracker(w http.ResponseWriter, r *http.Request) (*progress.Tracker, bool) {
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
