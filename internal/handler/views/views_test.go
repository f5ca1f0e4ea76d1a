package views

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pavelanni/wordquiz/internal/i18n"
	"github.com/pavelanni/wordquiz/internal/model"
	"github.com/pavelanni/wordquiz/internal/quiz"
)

func renderString(t *testing.T, c templ.Component) string {
	t.Helper()
	require.NoError(t, i18n.Init("en"))
	var sb strings.Builder
	require.NoError(t, c.Render(i18n.Context("en"), &sb))
	return sb.String()
}

func TestLayoutWrapsPage(t *testing.T) {
	out := renderString(t, WordsPage(nil, ""))

	assert.True(t, strings.HasPrefix(out, "<!doctype html>"))
	assert.Contains(t, out, "<title>Words - Word Quiz</title>")
	assert.Contains(t, out, `<a href="/history">`)
	body := out[strings.Index(out, "<main>"):strings.Index(out, "</main>")]
	assert.Contains(t, body, `action="/words"`)
	assert.NotContains(t, out, `role="alert"`)
}

func TestWordsPageEscapesEntries(t *testing.T) {
	words := []model.WordEntry{{ID: 7, Word: `<script>alert("x")</script>`, Meaning: "リンゴ"}}
	out := renderString(t, WordsPage(words, "a & b"))

	assert.Contains(t, out, "&lt;script&gt;")
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, `action="/words/7/delete"`)
	assert.Contains(t, out, `<p class="error" role="alert">a &amp; b</p>`)
}

func TestQuizPageStates(t *testing.T) {
	q := quiz.Question{Number: 5, Total: 5, Prompt: `What does "apple" mean?`}

	asking := renderString(t, QuizPage(QuizView{Mode: model.ModeFive, Question: q}))
	assert.Contains(t, asking, `action="/quiz/five-question/answer"`)
	assert.Contains(t, asking, `name="answer"`)
	assert.Contains(t, asking, "Question 5 of 5")
	assert.Contains(t, asking, `action="/quiz/reset"`)

	answered := renderString(t, QuizPage(QuizView{
		Mode:     model.ModeFive,
		Question: q,
		Feedback: &quiz.Feedback{Correct: true, Expected: "リンゴ"},
	}))
	assert.Contains(t, answered, `action="/quiz/five-question/next"`)
	assert.Contains(t, answered, "Correct!")
	assert.Contains(t, answered, "Finish")
	assert.NotContains(t, answered, `name="answer"`)
}

func TestHistoryPageRows(t *testing.T) {
	played := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	results := []model.ResultRecord{{Mode: model.ModeFull, Correct: 2, Total: 3, Percent: 66.7, PlayedAt: played}}

	out := renderString(t, HistoryPage(results, model.Summarize(results), time.UTC))
	assert.Contains(t, out, "2024-03-01 09:30")
	assert.Contains(t, out, "<td>2 / 3</td><td>66.7%</td>")

	empty := renderString(t, HistoryPage(nil, model.ResultSummary{}, time.UTC))
	assert.NotContains(t, empty, "<table>")
}

func TestRenderStopsOnCanceledContext(t *testing.T) {
	require.NoError(t, i18n.Init("en"))
	ctx, cancel := context.WithCancel(i18n.Context("en"))
	cancel()

	var sb strings.Builder
	err := HomePage(0).Render(ctx, &sb)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, sb.String())
}
