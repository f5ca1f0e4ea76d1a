// Package views renders the HTML pages of the web interface. Pages are
// written as templ components; run templ generate after editing a .templ
// file.
package views

import (
	"context"
	"fmt"

	"github.com/a-h/templ"

	"github.com/pavelanni/wordquiz/internal/i18n"
	"github.com/pavelanni/wordquiz/internal/model"
	"github.com/pavelanni/wordquiz/internal/quiz"
)

const timeLayout = "2006-01-02 15:04"

var historyColumns = []string{"PlayedAt", "Mode", "Score", "Percent"}

// QuizView is the state of the question being shown.
type QuizView struct {
	Mode     model.Mode
	Question quiz.Question
	Feedback *quiz.Feedback
}

func percent(p float64) string {
	return fmt.Sprintf("%.1f", p)
}

func pageTitle(ctx context.Context, titleID string) string {
	app := i18n.T(ctx, "AppTitle")
	if titleID == "" {
		return app
	}
	return i18n.T(ctx, titleID) + " - " + app
}

func quizURL(mode model.Mode, action string) templ.SafeURL {
	return templ.URL("/quiz/" + string(mode) + action)
}

func deleteURL(id int64) templ.SafeURL {
	return templ.SafeURL(fmt.Sprintf("/words/%d/delete", id))
}

func questionLabel(ctx context.Context, q quiz.Question) string {
	return i18n.Td(ctx, "QuestionN", map[string]any{"Number": q.Number, "Total": q.Total})
}

// nextLabel names the button that leaves the feedback screen.
func nextLabel(ctx context.Context, q quiz.Question) string {
	if q.Number == q.Total {
		return i18n.T(ctx, "Finish")
	}
	return i18n.T(ctx, "Next")
}

func incorrectText(ctx context.Context, fb *quiz.Feedback) string {
	return i18n.Td(ctx, "Incorrect", map[string]any{"Expected": fb.Expected})
}

func resultText(ctx context.Context, rec model.ResultRecord) string {
	return i18n.Td(ctx, "QuizComplete", map[string]any{
		"Correct": rec.Correct,
		"Total":   rec.Total,
		"Percent": percent(rec.Percent),
	})
}

func averageText(ctx context.Context, summary model.ResultSummary) string {
	return i18n.Td(ctx, "AveragePercent", map[string]any{
		"Count":   summary.Count,
		"Percent": percent(summary.AveragePercent),
	})
}

func score(r model.ResultRecord) string {
	return fmt.Sprintf("%d / %d", r.Correct, r.Total)
}
