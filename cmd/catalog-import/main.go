// Package main implements catalog-import, a small tool that converts a
// spreadsheet word list into the JSON catalog consumed by the server.
// Row order in the sheet becomes frequency rank; IDs are assigned
// sequentially from 1.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/phrazzld/frequency-api/internal/catalog"
	"github.com/phrazzld/frequency-api/internal/domain"
)

type options struct {
	inPath   string
	outPath  string
	sheet    string
	startRow int

	japaneseCol string
	romajiCol   string
	englishCol  string
}

func main() {
	var opts options
	flag.StringVar(&opts.inPath, "in", "", "path to the .xlsx word list (required)")
	flag.StringVar(&opts.outPath, "out", "data/words.json", "path of the JSON catalog to write")
	flag.StringVar(&opts.sheet, "sheet", "Sheet1", "sheet name to read")
	flag.IntVar(&opts.startRow, "start-row", 2, "first data row, 1-based (default skips a header row)")
	flag.StringVar(&opts.japaneseCol, "japanese-col", "A", "column holding the Japanese word")
	flag.StringVar(&opts.romajiCol, "romaji-col", "B", "column holding the romaji reading")
	flag.StringVar(&opts.englishCol, "english-col", "C", "column holding the English meaning")
	flag.Parse()

	if opts.inPath == "" {
		flag.Usage()
		log.Fatal("missing required -in flag")
	}

	words, skipped, err := readWords(opts)
	if err != nil {
		log.Fatalf("import failed: %v", err)
	}

	// Validating through the catalog catches duplicates and blanks before
	// anything is written.
	if _, err := catalog.New(words); err != nil {
		log.Fatalf("imported word list is not a valid catalog: %v", err)
	}

	if err := writeCatalog(opts.outPath, words); err != nil {
		log.Fatalf("writing catalog: %v", err)
	}
	fmt.Printf("Wrote %d words to %s (%d rows skipped)\n", len(words), opts.outPath, skipped)
}

// readWords extracts word entries from the spreadsheet. Rows with no
// Japanese text are skipped and counted rather than failing the import.
func readWords(opts options) ([]domain.WordEntry, int, error) {
	f, err := excelize.OpenFile(opts.inPath)
	if err != nil {
		return nil, 0, fmt.Errorf("opening %q: %w", opts.inPath, err)
	}
	defer f.Close()

	rows, err := f.GetRows(opts.sheet)
	if err != nil {
		return nil, 0, fmt.Errorf("reading sheet %q: %w", opts.sheet, err)
	}

	japanese := columnToIndex(opts.japaneseCol)
	romaji := columnToIndex(opts.romajiCol)
	english := columnToIndex(opts.englishCol)

	var words []domain.WordEntry
	skipped := 0
	for i, row := range rows {
		if i < opts.startRow-1 {
			continue
		}
		entry := domain.WordEntry{
			ID:       len(words) + 1,
			Japanese: cell(row, japanese),
			Romaji:   cell(row, romaji),
			English:  cell(row, english),
		}
		if entry.Japanese == "" {
			skipped++
			continue
		}
		words = append(words, entry)
	}
	return words, skipped, nil
}

func writeCatalog(path string, words []domain.WordEntry) error {
	data, err := json.MarshalIndent(words, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// cell returns the trimmed value at index, or "" when the row is short.
func cell(row []string, index int) string {
	if index < 0 || index >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[index])
}

// columnToIndex converts an Excel column letter ("A", "AB") to a zero-based
// index.
func columnToIndex(column string) int {
	column = strings.ToUpper(strings.TrimSpace(column))
	index := 0
	for i := 0; i < len(column); i++ {
		index = index*26 + int(column[i]-'A'+1)
	}
	return index - 1
}
