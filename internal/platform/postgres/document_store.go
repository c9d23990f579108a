package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/frequency-api/internal/store"
)

// DocumentStore implements the store.DocumentStore interface using a
// PostgreSQL database as the storage backend. Documents live in a single
// `documents` table keyed by (collection, key) with a JSONB payload.
type DocumentStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewDocumentStore creates a new PostgreSQL implementation of the
// DocumentStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, the default logger is used.
func NewDocumentStore(db store.DBTX, logger *slog.Logger) *DocumentStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &DocumentStore{
		db:     db,
		logger: logger.With(slog.String("component", "document_store")),
	}
}

// Ensure DocumentStore implements store.DocumentStore interface
var _ store.DocumentStore = (*DocumentStore)(nil)

// Get implements store.DocumentStore.Get.
// Returns store.ErrNotFound if no document exists under (collection, key).
func (s *DocumentStore) Get(
	ctx context.Context,
	collection, key string,
) (json.RawMessage, error) {
	query := `SELECT doc FROM documents WHERE collection = $1 AND key = $2`

	var doc []byte
	err := s.db.QueryRowContext(ctx, query, collection, key).Scan(&doc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		s.logger.ErrorContext(ctx, "failed to get document",
			slog.String("collection", collection),
			slog.String("key", key),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get document %s/%s: %w", collection, key, err)
	}

	return json.RawMessage(doc), nil
}

// Put implements store.DocumentStore.Put.
// An existing document under the same (collection, key) is replaced
// (last-write-wins).
func (s *DocumentStore) Put(
	ctx context.Context,
	collection, key string,
	doc json.RawMessage,
) error {
	if len(doc) == 0 {
		return fmt.Errorf("%w: document cannot be empty", store.ErrInvalidEntity)
	}
	if !json.Valid(doc) {
		return fmt.Errorf("%w: document must be valid JSON", store.ErrInvalidEntity)
	}

	query := `
		INSERT INTO documents (collection, key, doc, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (collection, key)
		DO UPDATE SET doc = EXCLUDED.doc, updated_at = NOW()`

	if _, err := s.db.ExecContext(ctx, query, collection, key, []byte(doc)); err != nil {
		s.logger.ErrorContext(ctx, "failed to put document",
			slog.String("collection", collection),
			slog.String("key", key),
			slog.String("error", err.Error()))
		return fmt.Errorf("%w: document %s/%s: %v", store.ErrUpdateFailed, collection, key, err)
	}

	return nil
}
