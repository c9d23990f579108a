package content

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/phrazzld/frequency-api/internal/store"
)

// State describes what the cache knows about a key.
type State string

const (
	// StateAbsent means no artifact exists and no generation is running.
	StateAbsent State = "absent"
	// StatePending means a generation for the key is currently in flight.
	StatePending State = "pending"
	// StateReady means the artifact exists and can be served immediately.
	StateReady State = "ready"
	// StateFailed means the most recent generation attempt failed. The next
	// request for the key retries from scratch.
	StateFailed State = "failed"
)

// flight tracks a single in-progress generation. Followers wait on done and
// then read val/err, which the leader sets before closing the channel.
type flight[V any] struct {
	done chan struct{}
	val  V
	err  error
}

// Cache is a generate-once cache keyed by string within one document
// collection. Values are persisted as JSON documents; the in-memory maps are
// a write-through memo so repeated hits skip the store round trip.
//
// The invariant is at-most-one generation per key: the first caller to miss
// becomes the leader and runs the generator, any concurrent callers for the
// same key block until the leader finishes and then share its result.
type Cache[V any] struct {
	collection string
	docs       store.DocumentStore
	logger     *slog.Logger

	mu       sync.Mutex
	inflight map[string]*flight[V]
	ready    map[string]V
	failed   map[string]error
}

// NewCache creates a Cache backed by the given document store collection.
// It panics on nil dependencies to fail fast during wiring. (ALLOW-PANIC)
func NewCache[V any](collection string, docs store.DocumentStore, logger *slog.Logger) *Cache[V] {
	if collection == "" {
		panic("content.NewCache: collection must not be empty")
	}
	if docs == nil {
		panic("content.NewCache: docs must not be nil")
	}
	if logger == nil {
		panic("content.NewCache: logger must not be nil")
	}
	return &Cache[V]{
		collection: collection,
		docs:       docs,
		logger:     logger.With(slog.String("component", "content_cache"), slog.String("collection", collection)),
		inflight:   make(map[string]*flight[V]),
		ready:      make(map[string]V),
		failed:     make(map[string]error),
	}
}

// GetOrCreate returns the artifact for key, generating it if no artifact
// exists yet. Exactly one generation runs per key at a time; concurrent
// callers wait for the leader's result. A successful generation is persisted
// best effort, so a storage outage degrades durability but never loses the
// response. Failed generations are not recorded as artifacts and the next
// call retries.
func (c *Cache[V]) GetOrCreate(ctx context.Context, key string, generate func(ctx context.Context) (V, error)) (V, error) {
	var zero V
	if key == "" {
		return zero, fmt.Errorf("content cache %q: empty key", c.collection)
	}

	c.mu.Lock()
	if v, ok := c.ready[key]; ok {
		c.mu.Unlock()
		return v, nil
	}
	if f, ok := c.inflight[key]; ok {
		c.mu.Unlock()
		return c.await(ctx, f)
	}
	f := &flight[V]{done: make(chan struct{})}
	c.inflight[key] = f
	delete(c.failed, key)
	c.mu.Unlock()

	val, err := c.produce(ctx, key, generate)

	c.mu.Lock()
	delete(c.inflight, key)
	if err != nil {
		c.failed[key] = err
	} else {
		c.ready[key] = val
	}
	c.mu.Unlock()

	f.val = val
	f.err = err
	close(f.done)
	return val, err
}

// await blocks until the leader's flight completes or the caller's context
// expires. The leader keeps running either way; only this caller gives up.
func (c *Cache[V]) await(ctx context.Context, f *flight[V]) (V, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero V
		return zero, ctx.Err()
	}
}

// produce performs the remote lookup, generation and persistence for the
// leader of a flight.
func (c *Cache[V]) produce(ctx context.Context, key string, generate func(ctx context.Context) (V, error)) (V, error) {
	var zero V

	doc, err := c.docs.Get(ctx, c.collection, key)
	if err == nil {
		var v V
		if uerr := json.Unmarshal(doc, &v); uerr != nil {
			return zero, fmt.Errorf("content cache %q: decoding stored artifact for key %q: %w", c.collection, key, uerr)
		}
		return v, nil
	}
	if !store.IsNotFoundError(err) {
		return zero, fmt.Errorf("content cache %q: loading artifact for key %q: %w", c.collection, key, err)
	}

	val, err := generate(ctx)
	if err != nil {
		return zero, err
	}

	payload, err := json.Marshal(val)
	if err != nil {
		return zero, fmt.Errorf("content cache %q: encoding artifact for key %q: %w", c.collection, key, err)
	}
	if perr := c.docs.Put(ctx, c.collection, key, payload); perr != nil {
		c.logger.Warn("failed to persist generated artifact, serving unpersisted result",
			slog.String("key", key),
			slog.String("error", perr.Error()))
	}
	return val, nil
}

// State reports the key's lifecycle state as seen by this process.
func (c *Cache[V]) State(key string) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.ready[key]; ok {
		return StateReady
	}
	if _, ok := c.inflight[key]; ok {
		return StatePending
	}
	if _, ok := c.failed[key]; ok {
		return StateFailed
	}
	return StateAbsent
}

// Peek returns the cached value without triggering generation or a remote
// lookup. The boolean is true only when the value is ready in memory.
func (c *Cache[V]) Peek(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.ready[key]
	return v, ok
}
