package export

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/pavelanni/wordquiz/internal/importer"
	"github.com/pavelanni/wordquiz/internal/model"
)

func testSnapshot() model.Export {
	now := time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC)
	results := []model.ResultRecord{
		{ID: 2, Mode: model.ModeFive, Correct: 4, Total: 5, Percent: 80, PlayedAt: now},
		{ID: 1, Mode: model.ModeSingle, Correct: 0, Total: 1, Percent: 0, PlayedAt: now.Add(-time.Hour)},
	}
	return model.Export{
		ExportedAt: now,
		Words: []model.WordEntry{
			{ID: 1, Word: "apple", Meaning: "リンゴ", CreatedAt: now},
			{ID: 3, Word: "well, well", Meaning: "まあまあ", CreatedAt: now},
			{ID: 4, Word: "=cmd", Meaning: "\"quoted\"", CreatedAt: now},
		},
		Results: results,
		Summary: model.Summarize(results),
	}
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"csv", "json", "xlsx"} {
		f, err := ParseFormat(s)
		require.NoError(t, err)
		assert.Equal(t, Format(s), f)
	}
	_, err := ParseFormat("pdf")
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestWriteWordsCSV_ReimportsUnchanged(t *testing.T) {
	snap := testSnapshot()
	var buf bytes.Buffer
	require.NoError(t, WriteWordsCSV(&buf, snap.Words))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte{0xEF, 0xBB, 0xBF}))

	pairs, err := importer.Parse(&buf)
	require.NoError(t, err)
	require.Len(t, pairs, len(snap.Words))
	for i, e := range snap.Words {
		assert.Equal(t, model.WordPair{Word: e.Word, Meaning: e.Meaning}, pairs[i])
	}
}

func TestWriteJSON(t *testing.T) {
	snap := testSnapshot()
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, snap))

	var got model.Export
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Len(t, got.Words, 3)
	assert.Len(t, got.Results, 2)
	assert.Equal(t, 40.0, got.Summary.AveragePercent)
	assert.Contains(t, buf.String(), `"mode": "five-question"`)
}

func TestWriteWorkbook(t *testing.T) {
	snap := testSnapshot()
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatXLSX, snap))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{wordsSheet, resultsSheet}, f.GetSheetList())

	words, err := f.GetRows(wordsSheet)
	require.NoError(t, err)
	require.Len(t, words, 4)
	assert.Equal(t, []string{"ID", "Word", "Meaning", "Added"}, words[0])
	assert.Equal(t, "apple", words[1][1])
	assert.Equal(t, "リンゴ", words[1][2])
	assert.Equal(t, "'=cmd", words[3][1])

	results, err := f.GetRows(resultsSheet)
	require.NoError(t, err)
	require.Len(t, results, 4)
	assert.Equal(t, "five-question", results[1][1])
	assert.Equal(t, "Average", results[3][0])
	assert.Equal(t, "40", results[3][4])
}

func TestFormatMetadata(t *testing.T) {
	assert.Equal(t, "words.csv", FormatCSV.Filename())
	assert.Equal(t, "wordquiz.xlsx", FormatXLSX.Filename())
	assert.Equal(t, "application/json", FormatJSON.ContentType())
}
