// Package importer turns CSV uploads into stored word/meaning pairs.
//
// The format is UTF-8 text with an optional byte-order mark, one
// "word,meaning" record per line and no header. Extra columns are ignored.
// Quoted fields may contain commas but not line breaks.
// Lines that do not yield a non-empty word and meaning are skipped without
// failing the import.
package importer

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/pavelanni/wordquiz/internal/model"
)

// WordAdder stores validated pairs atomically.
type WordAdder interface {
	AddWords(pairs []model.WordPair) ([]model.WordEntry, error)
}

// Importer parses CSV input and stores the accepted rows.
type Importer struct {
	words WordAdder
}

// New creates an Importer writing through the given store.
func New(words WordAdder) *Importer {
	return &Importer{words: words}
}

// Import parses r and stores every accepted row. It returns the number of
// stored rows. Duplicate words are stored again.
func (im *Importer) Import(r io.Reader) (int, error) {
	pairs, skipped, err := parse(r)
	if err != nil {
		return 0, err
	}
	if len(pairs) == 0 {
		slog.Info("csv import found no usable rows", "skipped", skipped)
		return 0, nil
	}
	entries, err := im.words.AddWords(pairs)
	if err != nil {
		return 0, fmt.Errorf("store imported words: %w", err)
	}
	slog.Info("imported words", "count", len(entries), "skipped", skipped)
	return len(entries), nil
}

// Parse reads CSV input and returns the accepted pairs in input order.
// Invalid UTF-8 and read failures are reported as model.ErrImport.
func Parse(r io.Reader) ([]model.WordPair, error) {
	pairs, _, err := parse(r)
	return pairs, err
}

func parse(r io.Reader) ([]model.WordPair, int, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: read: %v", model.ErrImport, err)
	}
	if !utf8.Valid(raw) {
		return nil, 0, fmt.Errorf("%w: input is not valid UTF-8", model.ErrImport)
	}
	text, _, err := transform.Bytes(unicode.UTF8BOM.NewDecoder(), raw)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: decode: %v", model.ErrImport, err)
	}

	var pairs []model.WordPair
	skipped := 0
	sc := bufio.NewScanner(bytes.NewReader(text))
	sc.Buffer(make([]byte, 0, 64*1024), len(text)+1)
	for lineNo := 1; sc.Scan(); lineNo++ {
		record, ok := parseLine(sc.Text())
		if !ok {
			slog.Debug("skipping malformed csv line", "line", lineNo)
			skipped++
			continue
		}
		p, err := model.NewWordPair(record[0], record[1])
		if err != nil {
			skipped++
			continue
		}
		pairs = append(pairs, p)
	}
	if err := sc.Err(); err != nil {
		return nil, skipped, fmt.Errorf("%w: read line: %v", model.ErrImport, err)
	}
	return pairs, skipped, nil
}

// parseLine reads one line as a CSV record. A line is its own record, so a
// broken line never affects the lines after it.
func parseLine(line string) ([]string, bool) {
	reader := csv.NewReader(strings.NewReader(line))
	reader.FieldsPerRecord = -1 // allow variable column count
	reader.LazyQuotes = true
	record, err := reader.Read()
	if err != nil || len(record) < 2 {
		return nil, false
	}
	return record, true
}
