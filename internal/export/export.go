// Package export writes the word list and result history to files.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/pavelanni/wordquiz/internal/model"
)

// Format is an export file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatCSV, FormatJSON, FormatXLSX:
		return f, nil
	}
	return "", model.NewValidationError("format", fmt.Sprintf("unsupported export format %q", s))
}

// ContentType is the MIME type served for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/json"
	}
}

// Filename is the suggested download name.
func (f Format) Filename() string {
	if f == FormatCSV {
		return "words.csv"
	}
	return "wordquiz." + string(f)
}

// Write encodes snap in format f. CSV output holds only the words.
func Write(w io.Writer, f Format, snap model.Export) error {
	switch f {
	case FormatCSV:
		return WriteWordsCSV(w, snap.Words)
	case FormatJSON:
		return WriteJSON(w, snap)
	case FormatXLSX:
		return WriteWorkbook(w, snap)
	}
	return model.NewValidationError("format", fmt.Sprintf("unsupported export format %q", f))
}

// WriteWordsCSV writes words in the import format, prefixed with a UTF-8 BOM
// so spreadsheet programs detect the encoding.
func WriteWordsCSV(w io.Writer, words []model.WordEntry) error {
	if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return fmt.Errorf("write bom: %w", err)
	}
	cw := csv.NewWriter(w)
	for _, e := range words {
		if err := cw.Write([]string{e.Word, e.Meaning}); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON writes the full snapshot as indented JSON.
func WriteJSON(w io.Writer, snap model.Export) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("encode export: %w", err)
	}
	return nil
}

const (
	wordsSheet   = "Words"
	resultsSheet = "Results"
)

// WriteWorkbook writes a spreadsheet with a Words sheet and a Results sheet.
func WriteWorkbook(w io.Writer, snap model.Export) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", wordsSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(resultsSheet); err != nil {
		return fmt.Errorf("create results sheet: %w", err)
	}

	if err := writeSheet(f, wordsSheet, []any{"ID", "Word", "Meaning", "Added"}, len(snap.Words), func(i int) []any {
		e := snap.Words[i]
		return []any{e.ID, sanitizeCell(e.Word), sanitizeCell(e.Meaning), e.CreatedAt.Format(time.RFC3339)}
	}); err != nil {
		return err
	}

	results := snap.Results
	if err := writeSheet(f, resultsSheet, []any{"Played", "Mode", "Correct", "Total", "Percent"}, len(results)+1, func(i int) []any {
		if i == len(results) {
			return []any{"Average", "", "", snap.Summary.Count, snap.Summary.AveragePercent}
		}
		r := results[i]
		return []any{r.PlayedAt.Format(time.RFC3339), string(r.Mode), r.Correct, r.Total, r.Percent}
	}); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, header []any, n int, row func(int) []any) error {
	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return fmt.Errorf("stream %s sheet: %w", sheet, err)
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("write %s header: %w", sheet, err)
	}
	for i := 0; i < n; i++ {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, row(i)); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+2, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flush %s sheet: %w", sheet, err)
	}
	return nil
}

// sanitizeCell keeps spreadsheet programs from evaluating user text as a
// formula.
func sanitizeCell(s string) string {
	if s == "" {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + s
	}
	return s
}
