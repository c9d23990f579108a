package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/phrazzld/frequency-api/internal/api"
	apimiddleware "github.com/phrazzld/frequency-api/internal/api/middleware"
)

// setupRouter configures the application router with all middleware and
// routes.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(apimiddleware.TraceMiddleware)

	wordHandler := api.NewWordHandler(app.catalog, app.sessions, app.logger)
	studyHandler := api.NewStudyHandler(
		app.catalog,
		app.sessions,
		app.selector,
		app.config.Study.DefaultQueueSize,
		app.logger,
	)
	contentHandler := api.NewContentHandler(
		app.catalog,
		app.examples,
		app.phrases,
		app.breakdowns,
		app.logger,
	)
	speechHandler := api.NewSpeechHandler(app.speech, app.logger)

	r.Route("/api", func(r chi.Router) {
		r.Use(apimiddleware.RequireUserID)

		r.Get("/words", wordHandler.ListWords)
		r.Post("/words/{id}/memorize", wordHandler.Memorize)
		r.Delete("/words/{id}/memorize", wordHandler.Unmemorize)
		r.Delete("/words/{id}", wordHandler.Delete)
		r.Post("/words/{id}/restore", wordHandler.Restore)

		r.Get("/words/{id}/example", contentHandler.GetExample)
		r.Get("/words/{id}/phrases", contentHandler.GetPhrases)
		r.Get("/words/{id}/phrases/{index}/breakdown", contentHandler.GetBreakdown)

		r.Get("/study/queue", studyHandler.GetQueue)
		r.Post("/study/swipe", studyHandler.Swipe)
		r.Get("/study/stats", studyHandler.GetStats)

		r.Post("/speech", speechHandler.Synthesize)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
