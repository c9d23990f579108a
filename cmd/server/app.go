package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/frequency-api/internal/api"
	"github.com/phrazzld/frequency-api/internal/audio"
	"github.com/phrazzld/frequency-api/internal/catalog"
	"github.com/phrazzld/frequency-api/internal/config"
	"github.com/phrazzld/frequency-api/internal/content"
	"github.com/phrazzld/frequency-api/internal/platform/blob"
	"github.com/phrazzld/frequency-api/internal/platform/gemini"
	"github.com/phrazzld/frequency-api/internal/platform/postgres"
	"github.com/phrazzld/frequency-api/internal/study"
	"github.com/phrazzld/frequency-api/internal/task"
)

// application holds the wired dependencies of the running server.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	catalog  *catalog.Catalog
	runner   *task.Runner
	sessions *api.Sessions
	selector *study.Selector

	examples   *content.ExampleService
	phrases    *content.PhraseService
	breakdowns *content.BreakdownService
	speech     *audio.SpeechCache
}

// newApplication connects the storage backends, the generative model and
// the domain services. Migrations run before the first store is used.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	db, err := setupDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	if err := runMigrations(db, logger); err != nil {
		return nil, err
	}

	cat, err := catalog.Load(cfg.Study.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load word catalog: %w", err)
	}
	logger.Info("Word catalog loaded", "words", cat.Len())

	docs := postgres.NewDocumentStore(db, logger)

	blobs, err := blob.NewMinioStore(ctx, cfg.Blob, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to set up blob store: %w", err)
	}

	textGen, err := gemini.NewTextGenerator(ctx, logger, cfg.LLM, cat.Vocabulary())
	if err != nil {
		return nil, fmt.Errorf("failed to set up text generator: %w", err)
	}
	speechGen, err := gemini.NewSpeechGenerator(ctx, logger, cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to set up speech generator: %w", err)
	}

	runner := task.NewRunner(task.DefaultRunnerConfig(), logger)
	runner.Start()

	phrases := content.NewPhraseService(docs, textGen, logger)

	return &application{
		config:     cfg,
		logger:     logger,
		db:         db,
		catalog:    cat,
		runner:     runner,
		sessions:   api.NewSessions(docs, runner, logger),
		selector:   study.NewSelector(cfg.Study.MaxQueueSize),
		examples:   content.NewExampleService(docs, textGen, logger),
		phrases:    phrases,
		breakdowns: content.NewBreakdownService(docs, phrases, textGen, logger),
		speech:     audio.NewSpeechCache(blobs, speechGen, logger),
	}, nil
}

// cleanup flushes pending background work and releases connections. Called
// after the HTTP server has stopped accepting requests, so the runner drain
// covers every persist task a request could have queued.
func (app *application) cleanup() {
	app.runner.Stop()
	if err := app.db.Close(); err != nil {
		app.logger.Error("Failed to close database", "error", err)
	}
}
