package gemini

import "github.com/phrazzld/frequency-api/internal/domain"

func testWord() domain.WordEntry {
	return domain.WordEntry{
		ID:       1,
		Japanese: "飲む",
		Romaji:   "nomu",
		English:  "to drink",
	}
}

func testPhrase() domain.Phrase {
	return domain.Phrase{
		Japanese: "水を飲む",
		Romaji:   "mizu wo nomu",
		English:  "drink water",
	}
}
