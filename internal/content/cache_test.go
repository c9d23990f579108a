package content

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/frequency-api/internal/store"
)

// fakeDocStore is an in-memory DocumentStore with injectable failures.
type fakeDocStore struct {
	mu     sync.Mutex
	docs   map[string]json.RawMessage
	getErr error
	putErr error
	puts   int
}

func newFakeDocStore() *fakeDocStore {
	return &fakeDocStore{docs: make(map[string]json.RawMessage)}
}

func (f *fakeDocStore) Get(_ context.Context, collection, key string) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	doc, ok := f.docs[collection+"/"+key]
	if !ok {
		return nil, store.ErrNotFound
	}
	return doc, nil
}

func (f *fakeDocStore) Put(_ context.Context, collection, key string, doc json.RawMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.puts++
	if f.putErr != nil {
		return f.putErr
	}
	f.docs[collection+"/"+key] = doc
	return nil
}

var _ store.DocumentStore = (*fakeDocStore)(nil)

type sentence struct {
	Text string `json:"text"`
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestCacheGetOrCreateGeneratesOnce(t *testing.T) {
	t.Parallel()

	docs := newFakeDocStore()
	cache := NewCache[sentence]("examples", docs, testLogger())

	var calls atomic.Int32
	generate := func(_ context.Context) (sentence, error) {
		calls.Add(1)
		return sentence{Text: "generated"}, nil
	}

	got, err := cache.GetOrCreate(context.Background(), "42", generate)
	require.NoError(t, err)
	assert.Equal(t, "generated", got.Text)

	// Second call hits the in-memory memo, not the generator or the store.
	got, err = cache.GetOrCreate(context.Background(), "42", generate)
	require.NoError(t, err)
	assert.Equal(t, "generated", got.Text)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, 1, docs.puts)
	assert.Equal(t, StateReady, cache.State("42"))
}

func TestCacheRemoteHitSkipsGenerator(t *testing.T) {
	t.Parallel()

	docs := newFakeDocStore()
	docs.docs["examples/7"] = json.RawMessage(`{"text":"stored"}`)
	cache := NewCache[sentence]("examples", docs, testLogger())

	got, err := cache.GetOrCreate(context.Background(), "7", func(_ context.Context) (sentence, error) {
		t.Fatal("generator must not run when the artifact is stored")
		return sentence{}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "stored", got.Text)
	assert.Equal(t, 0, docs.puts)
}

func TestCacheConcurrentCallersShareOneGeneration(t *testing.T) {
	t.Parallel()

	docs := newFakeDocStore()
	cache := NewCache[sentence]("examples", docs, testLogger())

	started := make(chan struct{})
	release := make(chan struct{})
	var calls atomic.Int32
	generate := func(_ context.Context) (sentence, error) {
		calls.Add(1)
		close(started)
		<-release
		return sentence{Text: "shared"}, nil
	}

	const followers = 8
	results := make(chan sentence, followers+1)
	errs := make(chan error, followers+1)

	go func() {
		v, err := cache.GetOrCreate(context.Background(), "1", generate)
		results <- v
		errs <- err
	}()
	<-started
	assert.Equal(t, StatePending, cache.State("1"))

	var wg sync.WaitGroup
	for i := 0; i < followers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := cache.GetOrCreate(context.Background(), "1", generate)
			results <- v
			errs <- err
		}()
	}

	// Give the followers time to register against the in-flight entry, then
	// let the leader finish.
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	for i := 0; i < followers+1; i++ {
		require.NoError(t, <-errs)
		assert.Equal(t, "shared", (<-results).Text)
	}
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, 1, docs.puts)
}

func TestCachePersistFailureStillReturnsArtifact(t *testing.T) {
	t.Parallel()

	docs := newFakeDocStore()
	docs.putErr = errors.New("storage offline")
	cache := NewCache[sentence]("examples", docs, testLogger())

	got, err := cache.GetOrCreate(context.Background(), "3", func(_ context.Context) (sentence, error) {
		return sentence{Text: "unpersisted"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "unpersisted", got.Text)
	assert.Equal(t, StateReady, cache.State("3"))
}

func TestCacheFailureIsNeverCached(t *testing.T) {
	t.Parallel()

	docs := newFakeDocStore()
	cache := NewCache[sentence]("examples", docs, testLogger())

	genErr := errors.New("model unavailable")
	var calls atomic.Int32
	flaky := func(_ context.Context) (sentence, error) {
		if calls.Add(1) == 1 {
			return sentence{}, genErr
		}
		return sentence{Text: "recovered"}, nil
	}

	_, err := cache.GetOrCreate(context.Background(), "5", flaky)
	require.ErrorIs(t, err, genErr)
	assert.Equal(t, StateFailed, cache.State("5"))
	assert.Equal(t, 0, docs.puts)

	// The failure left no artifact behind, so the next call retries.
	got, err := cache.GetOrCreate(context.Background(), "5", flaky)
	require.NoError(t, err)
	assert.Equal(t, "recovered", got.Text)
	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, StateReady, cache.State("5"))
}

func TestCacheLookupErrorIsReported(t *testing.T) {
	t.Parallel()

	docs := newFakeDocStore()
	docs.getErr = errors.New("connection refused")
	cache := NewCache[sentence]("examples", docs, testLogger())

	_, err := cache.GetOrCreate(context.Background(), "9", func(_ context.Context) (sentence, error) {
		t.Fatal("generator must not run when the lookup fails")
		return sentence{}, nil
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Equal(t, StateFailed, cache.State("9"))
}

func TestCacheFollowerHonorsContextCancellation(t *testing.T) {
	t.Parallel()

	docs := newFakeDocStore()
	cache := NewCache[sentence]("examples", docs, testLogger())

	started := make(chan struct{})
	release := make(chan struct{})
	go func() {
		_, _ = cache.GetOrCreate(context.Background(), "11", func(_ context.Context) (sentence, error) {
			close(started)
			<-release
			return sentence{Text: "slow"}, nil
		})
	}()
	<-started

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := cache.GetOrCreate(ctx, "11", func(_ context.Context) (sentence, error) {
		return sentence{}, nil
	})
	require.ErrorIs(t, err, context.Canceled)

	close(release)
}

func TestCacheStateAndPeek(t *testing.T) {
	t.Parallel()

	docs := newFakeDocStore()
	cache := NewCache[sentence]("examples", docs, testLogger())

	assert.Equal(t, StateAbsent, cache.State("1"))
	_, ok := cache.Peek("1")
	assert.False(t, ok)

	_, err := cache.GetOrCreate(context.Background(), "1", func(_ context.Context) (sentence, error) {
		return sentence{Text: "ready"}, nil
	})
	require.NoError(t, err)

	v, ok := cache.Peek("1")
	assert.True(t, ok)
	assert.Equal(t, "ready", v.Text)
}

func TestCacheRejectsEmptyKey(t *testing.T) {
	t.Parallel()

	cache := NewCache[sentence]("examples", newFakeDocStore(), testLogger())
	_, err := cache.GetOrCreate(context.Background(), "", func(_ context.Context) (sentence, error) {
		return sentence{}, nil
	})
	require.Error(t, err)
}
