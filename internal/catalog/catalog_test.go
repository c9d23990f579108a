package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/frequency-api/internal/domain"
)

func sampleWords() []domain.WordEntry {
	return []domain.WordEntry{
		{ID: 1, Japanese: "水", Romaji: "mizu", English: "water"},
		{ID: 2, Japanese: "犬", Romaji: "inu", English: "dog"},
		{ID: 3, Japanese: "猫", Romaji: "neko", English: "cat"},
	}
}

func TestNewPreservesOrderAndIndexes(t *testing.T) {
	t.Parallel()

	c, err := New(sampleWords())
	require.NoError(t, err)
	require.Equal(t, 3, c.Len())

	words := c.Words()
	assert.Equal(t, "水", words[0].Japanese)
	assert.Equal(t, "犬", words[1].Japanese)
	assert.Equal(t, "猫", words[2].Japanese)

	w, ok := c.Word(2)
	require.True(t, ok)
	assert.Equal(t, "inu", w.Romaji)

	_, ok = c.Word(99)
	assert.False(t, ok)
}

func TestNewRejectsInvalidInput(t *testing.T) {
	t.Parallel()

	_, err := New(nil)
	assert.ErrorIs(t, err, ErrEmptyCatalog)

	dup := sampleWords()
	dup[2].ID = 1
	_, err = New(dup)
	assert.ErrorIs(t, err, ErrDuplicateID)

	blank := sampleWords()
	blank[1].Japanese = ""
	_, err = New(blank)
	assert.Error(t, err)
}

func TestWordsReturnsCopy(t *testing.T) {
	t.Parallel()

	c, err := New(sampleWords())
	require.NoError(t, err)

	words := c.Words()
	words[0].Japanese = "mutated"

	fresh := c.Words()
	assert.Equal(t, "水", fresh[0].Japanese)
}

func TestLoadFromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "words.json")
	payload := `[
		{"id": 1, "japanese": "水", "romaji": "mizu", "english": "water"},
		{"id": 2, "japanese": "犬", "romaji": "inu", "english": "dog"}
	]`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, []string{"水", "犬"}, c.Vocabulary())
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("not json"), 0o600))
	_, err = Load(bad)
	assert.Error(t, err)
}
