package importer

import (
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pavelanni/wordquiz/internal/model"
	"github.com/pavelanni/wordquiz/internal/store"
)

func newTestImporter(t *testing.T) (*Importer, *store.Store) {
	t.Helper()
	s, err := store.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return New(s), s
}

func TestImport_SkipsMalformedLines(t *testing.T) {
	im, s := newTestImporter(t)

	n, err := im.Import(strings.NewReader("apple,リンゴ\nbanana,バナナ\n,missing\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	words, err := s.ListWords()
	require.NoError(t, err)
	require.Len(t, words, 2)
	assert.Equal(t, "apple", words[0].Word)
	assert.Equal(t, "リンゴ", words[0].Meaning)
	assert.Equal(t, "banana", words[1].Word)
	assert.Equal(t, "バナナ", words[1].Meaning)
}

func TestImport_DuplicatesAreKept(t *testing.T) {
	im, s := newTestImporter(t)

	_, err := s.AddWord("apple", "リンゴ")
	require.NoError(t, err)

	n, err := im.Import(strings.NewReader("apple,リンゴ\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	count, err := s.WordCount()
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestImport_NothingUsable(t *testing.T) {
	im, s := newTestImporter(t)

	n, err := im.Import(strings.NewReader("only-one-field\n , \n"))
	require.NoError(t, err)
	assert.Zero(t, n)

	count, _ := s.WordCount()
	assert.Zero(t, count)
}

func TestImport_InvalidEncodingStoresNothing(t *testing.T) {
	im, s := newTestImporter(t)

	// "apple," followed by Shift_JIS bytes for リンゴ.
	n, err := im.Import(strings.NewReader("apple,\x83\x8a\x83\x93\x83\x53\n"))
	assert.ErrorIs(t, err, model.ErrImport)
	assert.Zero(t, n)

	count, _ := s.WordCount()
	assert.Zero(t, count)
}

func TestImport_ReadFailure(t *testing.T) {
	im, _ := newTestImporter(t)

	_, err := im.Import(iotest.ErrReader(errors.New("disk gone")))
	assert.ErrorIs(t, err, model.ErrImport)
}

type failingAdder struct{}

func (failingAdder) AddWords([]model.WordPair) ([]model.WordEntry, error) {
	return nil, errors.New("database is locked")
}

func TestImport_StorageErrorIsReturned(t *testing.T) {
	_, err := New(failingAdder{}).Import(strings.NewReader("apple,リンゴ\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database is locked")
	assert.NotErrorIs(t, err, model.ErrImport)
}

func TestImport_MalformedLineKeepsFollowingRows(t *testing.T) {
	im, s := newTestImporter(t)

	n, err := im.Import(strings.NewReader("apple,リンゴ\n\"q\"uote,ok\nbanana,バナナ\ncherry,さくらんぼ\n"))
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	words, err := s.ListWords()
	require.NoError(t, err)
	require.Len(t, words, 3)
	assert.Equal(t, "cherry", words[2].Word)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []model.WordPair
	}{
		{
			name:  "byte order mark",
			input: "\ufeffapple,リンゴ\n",
			want:  []model.WordPair{{Word: "apple", Meaning: "リンゴ"}},
		},
		{
			name:  "extra columns ignored",
			input: "apple,リンゴ,fruit,n.\n",
			want:  []model.WordPair{{Word: "apple", Meaning: "リンゴ"}},
		},
		{
			name:  "whitespace trimmed",
			input: "  apple  ,  リンゴ \r\n",
			want:  []model.WordPair{{Word: "apple", Meaning: "リンゴ"}},
		},
		{
			name:  "quoted comma",
			input: "\"well, well\",まあまあ\n",
			want:  []model.WordPair{{Word: "well, well", Meaning: "まあまあ"}},
		},
		{
			name:  "blank and short lines",
			input: "\napple\nbanana,\n,バナナ\ncherry,さくらんぼ",
			want:  []model.WordPair{{Word: "cherry", Meaning: "さくらんぼ"}},
		},
		{
			name:  "stray quote only skips its own line",
			input: "apple,リンゴ\n\"q\"uote,ok\nbanana,バナナ\ncherry,さくらんぼ\n",
			want: []model.WordPair{
				{Word: "apple", Meaning: "リンゴ"},
				{Word: "banana", Meaning: "バナナ"},
				{Word: "cherry", Meaning: "さくらんぼ"},
			},
		},
		{
			name:  "unterminated quote at end of input",
			input: "apple,リンゴ\n\"banana,バナナ",
			want:  []model.WordPair{{Word: "apple", Meaning: "リンゴ"}},
		},
		{
			name:  "bare quote inside field",
			input: "5\" screen,画面\n",
			want:  []model.WordPair{{Word: "5\" screen", Meaning: "画面"}},
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
