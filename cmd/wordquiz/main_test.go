package main

import (
	"bytes"
	"io"
	"math/rand/v2"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appI18n "github.com/pavelanni/wordquiz/internal/i18n"
	"github.com/pavelanni/wordquiz/internal/model"
	"github.com/pavelanni/wordquiz/internal/quiz"
	"github.com/pavelanni/wordquiz/internal/store"
)

// run executes the CLI against db and returns its standard output.
func run(t *testing.T, db, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := rootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--db", db}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestCommands(t *testing.T) {
	db := filepath.Join(t.TempDir(), "words.db")

	out, err := run(t, db, "", "add", "apple, banana", "リンゴ, バナナ")
	require.NoError(t, err)
	assert.Contains(t, out, "added 1: apple = リンゴ")
	assert.Contains(t, out, "added 2: banana = バナナ")

	_, err = run(t, db, "", "add", "cherry, grape", "さくらんぼ")
	assert.ErrorIs(t, err, model.ErrValidation)

	out, err = run(t, db, "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "apple")
	assert.Contains(t, out, "バナナ")
	assert.NotContains(t, out, "cherry")

	out, err = run(t, db, "", "delete", "1")
	require.NoError(t, err)
	assert.Equal(t, "deleted 1\n", out)

	_, err = run(t, db, "", "delete", "1")
	assert.ErrorIs(t, err, model.ErrNotFound)

	out, err = run(t, db, "", "history")
	require.NoError(t, err)
	assert.Equal(t, "no results yet\n", out)

	_, err = run(t, db, "", "quiz", "--mode", "five-question")
	assert.ErrorIs(t, err, model.ErrNotEnoughWords)

	out, err = run(t, db, "\n", "quiz", "--mode", "full-set")
	require.NoError(t, err)
	assert.Contains(t, out, "Question 1 of 1")
	assert.Contains(t, out, "Done: 0 of 1 correct (0.0%).")

	out, err = run(t, db, "", "history", "--limit", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "0/1")
	assert.Contains(t, out, "average over 1 results: 0.0%")

	out, err = run(t, db, "", "export", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"word": "banana"`)
	assert.Contains(t, out, `"mode": "full-set"`)
}

func TestImportCommand(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "words.db")
	csvPath := filepath.Join(dir, "words.csv")

	out, err := run(t, db, "", "export", "--format", "csv", "--output", csvPath)
	require.NoError(t, err)
	assert.Empty(t, out)

	_, err = run(t, db, "", "add", "apple", "リンゴ")
	require.NoError(t, err)
	_, err = run(t, db, "", "export", "--output", csvPath)
	require.NoError(t, err)

	out, err = run(t, db, "", "import", csvPath)
	require.NoError(t, err)
	assert.Contains(t, out, "imported 1 words")

	s, err := store.New(db)
	require.NoError(t, err)
	defer s.Close()
	count, err := s.WordCount()
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	_, err = run(t, db, "", "import", filepath.Join(dir, "missing.csv"))
	assert.Error(t, err)
}

func TestConfigValidation(t *testing.T) {
	db := filepath.Join(t.TempDir(), "words.db")

	_, err := run(t, db, "", "--lang", "fr", "list")
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = run(t, db, "", "export", "--format", "pdf")
	assert.ErrorIs(t, err, model.ErrValidation)
}

func newPlayEngine(t *testing.T) (*quiz.Engine, *store.Store) {
	t.Helper()
	require.NoError(t, appI18n.Init("en"))
	s, err := store.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	for _, p := range [][2]string{{"apple", "リンゴ"}, {"banana", "バナナ"}, {"cherry", "さくらんぼ"}} {
		_, err := s.AddWord(p[0], p[1])
		require.NoError(t, err)
	}
	e := quiz.NewEngine(s,
		quiz.WithRand(rand.New(rand.NewPCG(7, 7))),
		quiz.WithPrompter(appI18n.Prompter(appI18n.Context("en"))),
	)
	return e, s
}

func TestPlayQuiz(t *testing.T) {
	e, s := newPlayEngine(t)
	words, err := s.ListWords()
	require.NoError(t, err)

	var slot quiz.Slot
	sess, err := e.Start(&slot, words, model.ModeFull)
	require.NoError(t, err)

	// Answer the first question wrong and the rest right, in upper case.
	var in strings.Builder
	for i, it := range sess.Items {
		answer := it.Entry.Meaning
		if it.Direction == model.Reverse {
			answer = it.Entry.Word
		}
		if i == 0 {
			answer = "nope"
		}
		in.WriteString(strings.ToUpper(answer) + "\n")
	}

	var out bytes.Buffer
	rec, err := playQuiz(appI18n.Context("en"), strings.NewReader(in.String()), &out, e, sess)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, 2, rec.Correct)
	assert.Equal(t, 3, rec.Total)
	assert.Equal(t, 66.7, rec.Percent)

	text := out.String()
	assert.Contains(t, text, "[Question 3 of 3]")
	assert.Equal(t, 2, strings.Count(text, "Correct!"))
	assert.Contains(t, text, "Wrong. The answer is")
	assert.Contains(t, text, "Done: 2 of 3 correct (66.7%).")

	results, err := s.RecentResults(0)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestPlayQuizEndOfInput(t *testing.T) {
	e, s := newPlayEngine(t)
	words, err := s.ListWords()
	require.NoError(t, err)

	var slot quiz.Slot
	sess, err := e.Start(&slot, words, model.ModeFull)
	require.NoError(t, err)

	rec, err := playQuiz(appI18n.Context("en"), strings.NewReader("first\n"), io.Discard, e, sess)
	require.NoError(t, err)
	assert.Nil(t, rec)
	assert.Equal(t, 1, sess.Index())

	results, err := s.RecentResults(0)
	require.NoError(t, err)
	assert.Empty(t, results)
}
