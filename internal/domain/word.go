package domain

import (
	"errors"
	"time"
)

// Word-specific validation errors
var (
	// ErrWordIDInvalid is returned when a word ID is not a positive integer.
	ErrWordIDInvalid = errors.New("word ID must be a positive integer")

	// ErrWordTextEmpty is returned when a catalog entry has no Japanese text.
	ErrWordTextEmpty = errors.New("word text cannot be empty")
)

// WordEntry is one immutable row of the word catalog. The catalog is ordered
// by frequency: a lower ID means a more common word, and catalog position is
// the word's study priority.
type WordEntry struct {
	ID       int    `json:"id"`
	Japanese string `json:"japanese"`
	Romaji   string `json:"romaji"`
	English  string `json:"english"`
}

// Validate checks if the WordEntry has valid data.
// Returns an error if any field fails validation.
func (w *WordEntry) Validate() error {
	if w.ID <= 0 {
		return ErrWordIDInvalid
	}
	if w.Japanese == "" {
		return ErrWordTextEmpty
	}
	return nil
}

// WordProgress tracks one user's history with a single word. It is created
// lazily on the first swipe; a word with no WordProgress behaves as if it
// had NewWordProgress().
type WordProgress struct {
	Score        float64   `json:"score"`
	Attempts     int       `json:"attempts"`
	Correct      int       `json:"correct"`
	LastReviewed time.Time `json:"last_reviewed"`
}

// DefaultScore is the neutral score assumed for any word that has never
// been reviewed.
const DefaultScore = 5.0

// NewWordProgress returns the progress state of a never-reviewed word.
func NewWordProgress() WordProgress {
	return WordProgress{
		Score:    DefaultScore,
		Attempts: 0,
		Correct:  0,
	}
}
