package audio

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/phrazzld/frequency-api/internal/generation"
	"github.com/phrazzld/frequency-api/internal/store"
)

// ErrEmptyText is returned when speech is requested for blank text.
var ErrEmptyText = errors.New("speech text is empty")

const wavContentType = "audio/wav"

// flight tracks one in-progress synthesis; followers wait on done.
type flight struct {
	done chan struct{}
	url  string
	err  error
}

// SpeechCache synthesizes speech for arbitrary text and caches the result in
// the blob store, addressed by the SHA-256 of the exact text. Identical text
// always maps to the same object, so a clip is synthesized at most once
// across the deployment's lifetime.
type SpeechCache struct {
	blobs  store.BlobStore
	speech generation.SpeechGenerator
	logger *slog.Logger

	mu       sync.Mutex
	inflight map[string]*flight
}

// NewSpeechCache creates a SpeechCache. Panics on nil dependencies.
// (ALLOW-PANIC)
func NewSpeechCache(blobs store.BlobStore, speech generation.SpeechGenerator, logger *slog.Logger) *SpeechCache {
	if blobs == nil {
		panic("audio.NewSpeechCache: blobs must not be nil")
	}
	if speech == nil {
		panic("audio.NewSpeechCache: speech must not be nil")
	}
	if logger == nil {
		panic("audio.NewSpeechCache: logger must not be nil")
	}
	return &SpeechCache{
		blobs:    blobs,
		speech:   speech,
		logger:   logger.With(slog.String("component", "speech_cache")),
		inflight: make(map[string]*flight),
	}
}

// Get returns a fetchable URL for a WAV clip pronouncing text, synthesizing
// and storing the clip on first use. Concurrent requests for the same text
// share one synthesis.
func (c *SpeechCache) Get(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyText
	}
	path := ObjectPath(text)

	c.mu.Lock()
	if f, ok := c.inflight[path]; ok {
		c.mu.Unlock()
		select {
		case <-f.done:
			return f.url, f.err
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	f := &flight{done: make(chan struct{})}
	c.inflight[path] = f
	c.mu.Unlock()

	url, err := c.produce(ctx, path, text)

	c.mu.Lock()
	delete(c.inflight, path)
	c.mu.Unlock()

	f.url = url
	f.err = err
	close(f.done)
	return url, err
}

// Pending reports whether a synthesis for the exact text is currently in
// flight in this process.
func (c *SpeechCache) Pending(text string) bool {
	path := ObjectPath(text)
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.inflight[path]
	return ok
}

// ObjectPath computes the blob store path for a clip of the given text.
// The hash covers the exact byte sequence; any change to casing, whitespace
// or punctuation produces a different clip.
func ObjectPath(text string) string {
	sum := sha256.Sum256([]byte(text))
	return "audio/" + hex.EncodeToString(sum[:]) + ".wav"
}

func (c *SpeechCache) produce(ctx context.Context, path, text string) (string, error) {
	url, err := c.blobs.Get(ctx, path)
	if err == nil {
		return url, nil
	}
	if !store.IsNotFoundError(err) {
		return "", fmt.Errorf("speech cache: checking for stored clip: %w", err)
	}

	pcm, err := c.speech.Synthesize(ctx, text)
	if err != nil {
		return "", err
	}
	wav, err := WrapPCM(pcm, DefaultSampleRate, DefaultChannels, DefaultBitsPerSample)
	if err != nil {
		return "", fmt.Errorf("speech cache: %w: %w", generation.ErrInvalidResponse, err)
	}

	url, err = c.blobs.Put(ctx, path, wav, wavContentType)
	if err != nil {
		return "", fmt.Errorf("speech cache: storing clip: %w", err)
	}
	c.logger.Info("synthesized and stored speech clip",
		slog.String("path", path),
		slog.Int("bytes", len(wav)))
	return url, nil
}
