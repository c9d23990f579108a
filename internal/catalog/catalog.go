// Package catalog provides the ordered, immutable word list the study
// features operate over. The list is loaded once at startup from a JSON
// file; entry order is the frequency rank and is preserved exactly.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/phrazzld/frequency-api/internal/domain"
)

// Catalog errors
var (
	// ErrEmptyCatalog is returned when the catalog file contains no words.
	ErrEmptyCatalog = errors.New("catalog contains no words")

	// ErrDuplicateID is returned when two catalog entries share an ID.
	ErrDuplicateID = errors.New("duplicate word ID in catalog")
)

// Catalog is an immutable ordered collection of word entries. Entry order is
// the study priority order; lookups by ID are O(1).
type Catalog struct {
	words []domain.WordEntry
	byID  map[int]domain.WordEntry
}

// New builds a Catalog from a word list, validating every entry and
// rejecting duplicate IDs. The input slice is copied; later mutation of the
// caller's slice does not affect the catalog.
func New(words []domain.WordEntry) (*Catalog, error) {
	if len(words) == 0 {
		return nil, ErrEmptyCatalog
	}
	c := &Catalog{
		words: make([]domain.WordEntry, len(words)),
		byID:  make(map[int]domain.WordEntry, len(words)),
	}
	copy(c.words, words)
	for i, w := range c.words {
		if err := w.Validate(); err != nil {
			return nil, fmt.Errorf("catalog entry %d (id %d): %w", i, w.ID, err)
		}
		if _, exists := c.byID[w.ID]; exists {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateID, w.ID)
		}
		c.byID[w.ID] = w
	}
	return c, nil
}

// Load reads and parses the catalog JSON file at path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file %q: %w", path, err)
	}
	var words []domain.WordEntry
	if err := json.Unmarshal(data, &words); err != nil {
		return nil, fmt.Errorf("parsing catalog file %q: %w", path, err)
	}
	return New(words)
}

// Words returns the full word list in catalog order. The returned slice is a
// copy; callers may reorder it freely.
func (c *Catalog) Words() []domain.WordEntry {
	out := make([]domain.WordEntry, len(c.words))
	copy(out, c.words)
	return out
}

// Word returns the entry with the given ID.
func (c *Catalog) Word(id int) (domain.WordEntry, bool) {
	w, ok := c.byID[id]
	return w, ok
}

// Len returns the number of catalog entries.
func (c *Catalog) Len() int {
	return len(c.words)
}

// Vocabulary returns the Japanese surface forms of all entries in catalog
// order, used to constrain phrase generation to known words.
func (c *Catalog) Vocabulary() []string {
	out := make([]string, len(c.words))
	for i, w := range c.words {
		out[i] = w.Japanese
	}
	return out
}
