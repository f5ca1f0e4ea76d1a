package main

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	appI18n "github.com/pavelanni/wordquiz/internal/i18n"
	"github.com/pavelanni/wordquiz/internal/model"
	"github.com/pavelanni/wordquiz/internal/quiz"
)

func quizCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quiz",
		Short: "Play a quiz in the terminal",
		Long: "Play a quiz in the terminal. Each question asks either for the meaning of a word\n" +
			"or for the word with a given meaning. End input (Ctrl-D) to quit without saving.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, cfg, db, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer db.Close()

			mode, err := model.ParseMode(v.GetString("mode"))
			if err != nil {
				return err
			}
			words, err := db.ListWords()
			if err != nil {
				return err
			}
			if len(words) == 0 {
				return model.ErrEmptyQuiz
			}
			selected, err := quiz.SelectWords(mode, words)
			if err != nil {
				return err
			}

			engine := newEngine(db, cfg.Lang)
			var slot quiz.Slot
			s, err := engine.Start(&slot, selected, mode)
			if err != nil {
				return err
			}
			_, err = playQuiz(appI18n.Context(cfg.Lang), cmd.InOrStdin(), cmd.OutOrStdout(), engine, s)
			return err
		},
	}
	cmd.Flags().StringP("mode", "m", string(model.ModeSingle), "Quiz mode (single-question, five-question, full-set)")
	return cmd
}

// playQuiz asks every remaining question of s on out, reading one answer
// per line from in. It returns the recorded result, or nil when input ends
// before the last question.
func playQuiz(ctx context.Context, in io.Reader, out io.Writer, engine *quiz.Engine, s *quiz.Session) (*model.ResultRecord, error) {
	sc := bufio.NewScanner(in)
	for !s.IsComplete() {
		q, err := s.CurrentQuestion()
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(out, "[%s]\n%s\n> ", appI18n.Td(ctx, "QuestionN", map[string]any{"Number": q.Number, "Total": q.Total}), q.Prompt)

		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return nil, fmt.Errorf("read answer: %w", err)
			}
			fmt.Fprintln(out)
			return nil, nil
		}

		fb, err := s.Submit(sc.Text())
		if err != nil {
			return nil, err
		}
		if fb.Correct {
			fmt.Fprintln(out, appI18n.T(ctx, "Correct"))
		} else {
			fmt.Fprintln(out, appI18n.Td(ctx, "Incorrect", map[string]any{"Expected": fb.Expected}))
		}

		rec, err := engine.Advance(s)
		if err != nil {
			return nil, err
		}
		if rec != nil {
			fmt.Fprintln(out, appI18n.Td(ctx, "QuizComplete", map[string]any{
				"Correct": rec.Correct,
				"Total":   rec.Total,
				"Percent": fmt.Sprintf("%.1f", rec.Percent),
			}))
			return rec, nil
		}
	}
	return s.Result(), nil
}
