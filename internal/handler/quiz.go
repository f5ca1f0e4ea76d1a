package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pavelanni/wordquiz/internal/handler/views"
	"github.com/pavelanni/wordquiz/internal/model"
	"github.com/pavelanni/wordquiz/internal/quiz"
)

func quizPath(mode model.Mode) string {
	return "/quiz/" + string(mode)
}

// startSession resumes the unfinished session for mode or starts a new one
// over the words the mode selects. Callers hold h.mu.
func (h *Handler) startSession(mode model.Mode) (*quiz.Session, error) {
	var selected []model.WordEntry
	if !h.slot.Resumable(mode) {
		words, err := h.store.ListWords()
		if err != nil {
			return nil, err
		}
		if len(words) == 0 {
			return nil, model.ErrEmptyQuiz
		}
		if selected, err = quiz.SelectWords(mode, words); err != nil {
			return nil, err
		}
	}
	return h.engine.Start(&h.slot, selected, mode)
}

// activeSession returns the held session if it belongs to mode.
func (h *Handler) activeSession(mode model.Mode) *quiz.Session {
	s := h.slot.Session()
	if s == nil || s.Mode != mode {
		return nil
	}
	return s
}

func (h *Handler) renderQuestion(w http.ResponseWriter, r *http.Request, s *quiz.Session) {
	q, err := s.CurrentQuestion()
	if err != nil {
		h.fail(w, r, err)
		return
	}
	render(w, r, http.StatusOK, views.QuizPage(views.QuizView{
		Mode:     s.Mode,
		Question: q,
		Feedback: s.Feedback(),
	}))
}

func (h *Handler) handleQuiz(w http.ResponseWriter, r *http.Request) {
	mode, err := model.ParseMode(chi.URLParam(r, "mode"))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	s, err := h.startSession(mode)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.renderQuestion(w, r, s)
}

func (h *Handler) handleAnswer(w http.ResponseWriter, r *http.Request) {
	mode, err := model.ParseMode(chi.URLParam(r, "mode"))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	s := h.activeSession(mode)
	if s == nil || s.IsComplete() {
		http.Redirect(w, r, quizPath(mode), http.StatusSeeOther)
		return
	}
	if _, err := s.Submit(r.FormValue("answer")); err != nil {
		h.fail(w, r, err)
		return
	}
	h.renderQuestion(w, r, s)
}

func (h *Handler) handleNext(w http.ResponseWriter, r *http.Request) {
	mode, err := model.ParseMode(chi.URLParam(r, "mode"))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	s := h.activeSession(mode)
	if s == nil {
		http.Redirect(w, r, quizPath(mode), http.StatusSeeOther)
		return
	}
	rec, err := h.engine.Advance(s)
	switch {
	case errors.Is(err, model.ErrSessionComplete):
		http.Redirect(w, r, quizPath(mode), http.StatusSeeOther)
	case err != nil:
		h.fail(w, r, err)
	case rec != nil:
		render(w, r, http.StatusOK, views.ResultPage(*rec))
	default:
		http.Redirect(w, r, quizPath(mode), http.StatusSeeOther)
	}
}

func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	h.slot.Reset()
	h.mu.Unlock()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
