package content

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/phrazzld/frequency-api/internal/domain"
	"github.com/phrazzld/frequency-api/internal/generation"
	"github.com/phrazzld/frequency-api/internal/store"
)

// ExampleService serves the cached example sentence for a word.
type ExampleService struct {
	cache *Cache[domain.ExampleSentence]
	gen   generation.WordGenerator
}

// NewExampleService creates an ExampleService. Panics on nil dependencies.
// (ALLOW-PANIC)
func NewExampleService(docs store.DocumentStore, gen generation.WordGenerator, logger *slog.Logger) *ExampleService {
	if gen == nil {
		panic("content.NewExampleService: gen must not be nil")
	}
	return &ExampleService{
		cache: NewCache[domain.ExampleSentence](store.CollectionExamples, docs, logger),
		gen:   gen,
	}
}

// Get returns the example sentence for the word, generating it on first use.
func (s *ExampleService) Get(ctx context.Context, word domain.WordEntry) (domain.ExampleSentence, error) {
	return s.cache.GetOrCreate(ctx, wordKey(word.ID), func(ctx context.Context) (domain.ExampleSentence, error) {
		ex, err := s.gen.GenerateExample(ctx, word)
		if err != nil {
			return domain.ExampleSentence{}, err
		}
		return *ex, nil
	})
}

// State reports the cache state for the word's example sentence.
func (s *ExampleService) State(wordID int) State {
	return s.cache.State(wordKey(wordID))
}

// PhraseService serves the cached phrase list for a word.
type PhraseService struct {
	cache *Cache[domain.PhraseList]
	gen   generation.WordGenerator
}

// NewPhraseService creates a PhraseService. Panics on nil dependencies.
// (ALLOW-PANIC)
func NewPhraseService(docs store.DocumentStore, gen generation.WordGenerator, logger *slog.Logger) *PhraseService {
	if gen == nil {
		panic("content.NewPhraseService: gen must not be nil")
	}
	return &PhraseService{
		cache: NewCache[domain.PhraseList](store.CollectionPhrases, docs, logger),
		gen:   gen,
	}
}

// Get returns the phrase list for the word, generating it on first use.
func (s *PhraseService) Get(ctx context.Context, word domain.WordEntry) (domain.PhraseList, error) {
	return s.cache.GetOrCreate(ctx, wordKey(word.ID), func(ctx context.Context) (domain.PhraseList, error) {
		return s.gen.GeneratePhrases(ctx, word)
	})
}

// Phrase returns one phrase from the word's list by zero-based index.
func (s *PhraseService) Phrase(ctx context.Context, word domain.WordEntry, index int) (domain.Phrase, error) {
	phrases, err := s.Get(ctx, word)
	if err != nil {
		return domain.Phrase{}, err
	}
	if index < 0 || index >= len(phrases) {
		return domain.Phrase{}, fmt.Errorf("phrase index %d out of range for word %d: %w", index, word.ID, store.ErrArtifactNotFound)
	}
	return phrases[index], nil
}

// State reports the cache state for the word's phrase list.
func (s *PhraseService) State(wordID int) State {
	return s.cache.State(wordKey(wordID))
}

// BreakdownService serves the cached grammatical breakdown for one phrase of
// a word. Keys combine the word ID and the phrase's index within the word's
// phrase list, so every phrase gets an independent artifact.
type BreakdownService struct {
	cache   *Cache[domain.Breakdown]
	phrases *PhraseService
	gen     generation.WordGenerator
}

// NewBreakdownService creates a BreakdownService. Panics on nil dependencies.
// (ALLOW-PANIC)
func NewBreakdownService(docs store.DocumentStore, phrases *PhraseService, gen generation.WordGenerator, logger *slog.Logger) *BreakdownService {
	if phrases == nil {
		panic("content.NewBreakdownService: phrases must not be nil")
	}
	if gen == nil {
		panic("content.NewBreakdownService: gen must not be nil")
	}
	return &BreakdownService{
		cache:   NewCache[domain.Breakdown](store.CollectionBreakdowns, docs, logger),
		phrases: phrases,
		gen:     gen,
	}
}

// Get returns the breakdown for the word's phrase at index, resolving the
// phrase through the phrase cache first and generating the breakdown on
// first use.
func (s *BreakdownService) Get(ctx context.Context, word domain.WordEntry, index int) (domain.Breakdown, error) {
	phrase, err := s.phrases.Phrase(ctx, word, index)
	if err != nil {
		return domain.Breakdown{}, err
	}
	return s.cache.GetOrCreate(ctx, breakdownKey(word.ID, index), func(ctx context.Context) (domain.Breakdown, error) {
		bd, err := s.gen.GenerateBreakdown(ctx, phrase)
		if err != nil {
			return domain.Breakdown{}, err
		}
		return *bd, nil
	})
}

// State reports the cache state for the breakdown of the word's phrase at
// index.
func (s *BreakdownService) State(wordID, index int) State {
	return s.cache.State(breakdownKey(wordID, index))
}

func wordKey(wordID int) string {
	return strconv.Itoa(wordID)
}

func breakdownKey(wordID, index int) string {
	return strconv.Itoa(wordID) + "_" + strconv.Itoa(index)
}
