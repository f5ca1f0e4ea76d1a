package quiz

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/pavelanni/wordquiz/internal/model"
)

// State is the phase a quiz session is in.
type State string

const (
	StateInProgress   State = "in_progress"
	StateAwaitingNext State = "awaiting_next"
	StateComplete     State = "complete"
)

// Item is one entry of a session's fixed question order.
type Item struct {
	Entry     model.WordEntry
	Direction model.Direction
}

// Question is what the caller shows for the current item.
type Question struct {
	Number    int // 1-based
	Total     int
	Direction model.Direction
	Cue       string // the side of the pair shown to the user
	Prompt    string
	Expected  string
}

// Feedback is the outcome of the last submitted answer.
type Feedback struct {
	Correct  bool
	Expected string
	Answer   string
}

// Session is a single quiz run. Its question order and directions are fixed
// when it is created. A Session is not safe for concurrent use.
type Session struct {
	ID    string
	Mode  model.Mode
	Items []Item

	index    int
	correct  int
	feedback *Feedback
	recorded *model.ResultRecord
	prompt   PromptFunc
}

// State reports the current phase.
func (s *Session) State() State {
	switch {
	case s.IsComplete():
		return StateComplete
	case s.feedback != nil:
		return StateAwaitingNext
	default:
		return StateInProgress
	}
}

// IsComplete reports whether every question has been passed.
func (s *Session) IsComplete() bool {
	return s.index >= len(s.Items)
}

// Index is the 0-based position of the current question.
func (s *Session) Index() int { return s.index }

// Correct is the number of correct answers so far.
func (s *Session) Correct() int { return s.correct }

// Total is the number of questions in the session.
func (s *Session) Total() int { return len(s.Items) }

// Feedback returns the pending feedback, or nil when nothing was answered
// since the last advance.
func (s *Session) Feedback() *Feedback {
	if s.feedback == nil {
		return nil
	}
	fb := *s.feedback
	return &fb
}

// Result returns the stored result once the session has been recorded.
func (s *Session) Result() *model.ResultRecord {
	if s.recorded == nil {
		return nil
	}
	r := *s.recorded
	return &r
}

// CurrentQuestion describes the question at the cursor.
func (s *Session) CurrentQuestion() (Question, error) {
	if s.IsComplete() {
		return Question{}, model.ErrSessionComplete
	}
	item := s.Items[s.index]
	q := Question{
		Number:    s.index + 1,
		Total:     len(s.Items),
		Direction: item.Direction,
	}
	if item.Direction == model.Forward {
		q.Cue, q.Expected = item.Entry.Word, item.Entry.Meaning
	} else {
		q.Cue, q.Expected = item.Entry.Meaning, item.Entry.Word
	}
	q.Prompt = s.prompt(q.Direction, q.Cue)
	return q, nil
}

// Submit judges an answer to the current question. Matching ignores
// surrounding whitespace and letter case; anything else must match exactly.
// While feedback is pending, Submit returns it again without re-scoring.
func (s *Session) Submit(answer string) (Feedback, error) {
	if s.IsComplete() {
		return Feedback{}, model.ErrSessionComplete
	}
	if s.feedback != nil {
		return *s.feedback, nil
	}
	q, err := s.CurrentQuestion()
	if err != nil {
		return Feedback{}, err
	}
	fb := Feedback{
		Correct:  Matches(answer, q.Expected),
		Expected: q.Expected,
		Answer:   answer,
	}
	if fb.Correct {
		s.correct++
	}
	s.feedback = &fb
	return fb, nil
}

// Matches compares an answer with the expected text after trimming and
// Unicode case folding.
func Matches(answer, expected string) bool {
	fold := cases.Fold()
	return fold.String(strings.TrimSpace(answer)) == fold.String(strings.TrimSpace(expected))
}
