package store

import (
	"context"
	"database/sql"
	"encoding/json"
)

// Well-known document collections. A collection groups documents of one
// artifact kind; keys within a collection are application-assigned strings
// (user ID, word ID, word ID + phrase index).
const (
	CollectionUsers      = "users"
	CollectionExamples   = "examples"
	CollectionPhrases    = "phrases"
	CollectionBreakdowns = "breakdowns"
)

// DocumentStore defines the interface for the durable document store.
// Documents are opaque JSON payloads addressed by (collection, key).
// Version: 1.0
type DocumentStore interface {
	// Get retrieves the document stored under (collection, key).
	// Returns ErrNotFound (via errors.Is) if no document exists; callers
	// must treat that as a valid absent state, not a failure.
	Get(ctx context.Context, collection, key string) (json.RawMessage, error)

	// Put stores the document under (collection, key), replacing any
	// existing document. Writes are last-write-wins; the document store
	// performs no merging or conflict resolution beyond that.
	Put(ctx context.Context, collection, key string, doc json.RawMessage) error
}

// BlobStore defines the interface for the durable binary object store used
// for cached audio assets.
// Version: 1.0
type BlobStore interface {
	// Get returns a fetchable URL for the object at path.
	// Returns ErrNotFound (via errors.Is) if the object does not exist.
	Get(ctx context.Context, path string) (string, error)

	// Put stores the object bytes at path with the given content type and
	// returns a fetchable URL. Storing the same path twice is allowed and
	// idempotent for identical content.
	Put(ctx context.Context, path string, data []byte, contentType string) (string, error)
}

// DBTX abstracts the SQL access layer. It is implemented by both *sql.DB
// and *sql.Tx, allowing store implementations to work with either a
// connection pool or a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
