package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/phrazzld/frequency-api/internal/api/shared"
)

// SpeechService serves cached speech clips.
type SpeechService interface {
	// Get returns a fetchable URL for a clip of the exact text.
	Get(ctx context.Context, text string) (string, error)
	// Pending reports whether a synthesis for the text is in flight.
	Pending(text string) bool
}

// SpeechHandler serves POST /api/speech.
type SpeechHandler struct {
	speech SpeechService
	logger *slog.Logger
}

// NewSpeechHandler creates a SpeechHandler. Panics on nil dependencies.
// (ALLOW-PANIC)
func NewSpeechHandler(speech SpeechService, logger *slog.Logger) *SpeechHandler {
	if speech == nil {
		panic("api.NewSpeechHandler: speech must not be nil")
	}
	if logger == nil {
		panic("api.NewSpeechHandler: logger must not be nil")
	}
	return &SpeechHandler{
		speech: speech,
		logger: logger.With(slog.String("component", "speech_handler")),
	}
}

// Synthesize handles POST /api/speech. A clip already being synthesized by
// another request reports pending with 202 instead of blocking a second
// caller on the same synthesis; a stored or newly synthesized clip reports
// ready with its URL.
func (h *SpeechHandler) Synthesize(w http.ResponseWriter, r *http.Request) {
	var req SpeechRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "text is required")
		return
	}

	if h.speech.Pending(req.Text) {
		shared.RespondWithJSON(w, r, http.StatusAccepted, SpeechResponse{Status: StatusPending})
		return
	}

	url, err := h.speech.Get(r.Context(), req.Text)
	if err != nil {
		status := MapErrorToStatusCode(err)
		h.logger.LogAttrs(r.Context(), slog.LevelWarn, "speech synthesis failed",
			slog.String("trace_id", shared.GetTraceID(r.Context())),
			slog.Int("status_code", status),
			slog.String("error", err.Error()))
		shared.RespondWithJSON(w, r, status, SpeechResponse{Status: StatusFailed})
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, SpeechResponse{
		Status: StatusReady,
		URL:    url,
	})
}
