// Package quiz runs vocabulary quiz sessions: it fixes a shuffled question
// order with a random direction per question, judges answers, and records
// the result once the last question has been passed.
package quiz

import (
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/pavelanni/wordquiz/internal/model"
)

// ResultRecorder stores the outcome of a finished session.
type ResultRecorder interface {
	AppendSessionResult(sessionID string, mode model.Mode, correct, total int) (model.ResultRecord, error)
}

// PromptFunc renders the question text for a direction and cue.
type PromptFunc func(dir model.Direction, cue string) string

// Engine creates and drives sessions.
type Engine struct {
	results ResultRecorder
	rng     *rand.Rand
	prompt  PromptFunc
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand sets the random source used for shuffling and directions.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) { e.rng = r }
}

// WithPrompter sets how question prompts are worded.
func WithPrompter(p PromptFunc) Option {
	return func(e *Engine) { e.prompt = p }
}

// NewEngine creates an Engine that records finished sessions in results.
func NewEngine(results ResultRecorder, opts ...Option) *Engine {
	e := &Engine{
		results: results,
		rng:     rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		prompt:  DefaultPrompt,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// DefaultPrompt words questions in English.
func DefaultPrompt(dir model.Direction, cue string) string {
	if dir == model.Forward {
		return fmt.Sprintf("What does %q mean?", cue)
	}
	return fmt.Sprintf("Which word means %q?", cue)
}

// Slot holds the caller's single active session.
type Slot struct {
	session *Session
}

// Session returns the active session, or nil.
func (sl *Slot) Session() *Session { return sl.session }

// Reset discards the active session. The next Start creates a new one.
func (sl *Slot) Reset() { sl.session = nil }

// Resumable reports whether Start would resume the held session for mode
// instead of creating a new one.
func (sl *Slot) Resumable(mode model.Mode) bool {
	cur := sl.session
	return cur != nil && cur.Mode == mode && !cur.IsComplete()
}

// Start returns the session for mode. An unfinished session of the same mode
// in the slot is resumed as is; otherwise a new session over words replaces
// whatever the slot held.
func (e *Engine) Start(slot *Slot, words []model.WordEntry, mode model.Mode) (*Session, error) {
	if slot.Resumable(mode) {
		return slot.session, nil
	}
	if len(words) == 0 {
		return nil, model.ErrEmptyQuiz
	}

	items := make([]Item, len(words))
	for i, w := range words {
		items[i] = Item{Entry: w}
	}
	e.rng.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
	for i := range items {
		items[i].Direction = model.Forward
		if e.rng.IntN(2) == 1 {
			items[i].Direction = model.Reverse
		}
	}

	s := &Session{
		ID:     uuid.New().String(),
		Mode:   mode,
		Items:  items,
		prompt: e.prompt,
	}
	slot.session = s
	slog.Debug("started quiz session", "session_id", s.ID, "mode", mode, "questions", len(items))
	return s, nil
}

// Advance moves past the current question, clearing any pending feedback.
// When the last question is passed the result is recorded and returned. If
// recording fails the error is returned and the next Advance retries it.
// Advancing a recorded session returns model.ErrSessionComplete.
func (e *Engine) Advance(s *Session) (*model.ResultRecord, error) {
	if s.IsComplete() {
		if s.recorded != nil {
			return nil, model.ErrSessionComplete
		}
		return e.record(s)
	}
	s.feedback = nil
	s.index++
	if !s.IsComplete() {
		return nil, nil
	}
	return e.record(s)
}

func (e *Engine) record(s *Session) (*model.ResultRecord, error) {
	rec, err := e.results.AppendSessionResult(s.ID, s.Mode, s.correct, len(s.Items))
	if err != nil {
		slog.Error("failed to record quiz result", "session_id", s.ID, "error", err)
		return nil, fmt.Errorf("record result: %w", err)
	}
	s.recorded = &rec
	return s.Result(), nil
}

// SelectWords picks the words a mode quizzes from the stored list, keeping
// store order: the first word, the first five, or all of them.
func SelectWords(mode model.Mode, words []model.WordEntry) ([]model.WordEntry, error) {
	if len(words) < mode.MinWords() {
		return nil, fmt.Errorf("%w: %s needs %d, have %d", model.ErrNotEnoughWords, mode, mode.MinWords(), len(words))
	}
	switch mode {
	case model.ModeSingle:
		return words[:1], nil
	case model.ModeFive:
		return words[:5], nil
	case model.ModeFull:
		return words, nil
	}
	return nil, fmt.Errorf("%w: %q", model.ErrUnknownMode, mode)
}
