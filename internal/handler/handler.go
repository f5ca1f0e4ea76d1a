package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/pavelanni/wordquiz/internal/export"
	"github.com/pavelanni/wordquiz/internal/handler/views"
	"github.com/pavelanni/wordquiz/internal/i18n"
	"github.com/pavelanni/wordquiz/internal/importer"
	"github.com/pavelanni/wordquiz/internal/model"
	"github.com/pavelanni/wordquiz/internal/quiz"
	"github.com/pavelanni/wordquiz/internal/store"
)

// Handler holds shared dependencies for HTTP handlers.
type Handler struct {
	store        *store.Store
	importer     *importer.Importer
	engine       *quiz.Engine
	historyLimit int
	location     *time.Location

	mu   sync.Mutex // guards slot
	slot quiz.Slot
}

// New creates a new Handler. Quiz results are recorded through s.
func New(s *store.Store, engine *quiz.Engine, historyLimit int) *Handler {
	return &Handler{
		store:        s,
		importer:     importer.New(s),
		engine:       engine,
		historyLimit: historyLimit,
		location:     time.Local,
	}
}

// Routes registers all HTTP routes.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.handleIndex)
	r.Get("/words", h.handleWords)
	r.Post("/words", h.handleAddWords)
	r.Post("/words/{id}/delete", h.handleDeleteWord)
	r.Get("/import", h.handleImportPage)
	r.Post("/import", h.handleImport)
	r.Get("/export/{format}", h.handleExport)
	r.Get("/quiz/{mode}", h.handleQuiz)
	r.Post("/quiz/{mode}/answer", h.handleAnswer)
	r.Post("/quiz/{mode}/next", h.handleNext)
	r.Post("/quiz/reset", h.handleReset)
	r.Get("/history", h.handleHistory)
}

func render(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := c.Render(r.Context(), w); err != nil {
		slog.Error("render error", "error", err)
	}
}

// fail maps err to a status code and a localized message. Anything not
// caused by user input is logged and reported as an internal error.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := h.describe(r, err)
	render(w, r, status, views.ErrorPage(msg))
}

func (h *Handler) describe(r *http.Request, err error) (int, string) {
	ctx := r.Context()
	switch {
	case errors.Is(err, model.ErrValidation):
		return http.StatusBadRequest, i18n.T(ctx, "ErrValidation")
	case errors.Is(err, model.ErrImport):
		return http.StatusBadRequest, i18n.T(ctx, "ErrImport")
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound, i18n.T(ctx, "ErrNotFound")
	case errors.Is(err, model.ErrUnknownMode):
		return http.StatusNotFound, i18n.T(ctx, "ErrUnknownMode")
	case errors.Is(err, model.ErrEmptyQuiz):
		return http.StatusConflict, i18n.T(ctx, "ErrEmptyQuiz")
	case errors.Is(err, model.ErrNotEnoughWords):
		return http.StatusConflict, i18n.Td(ctx, "ErrNotEnoughWords", map[string]any{"Count": model.ModeFive.MinWords()})
	}
	slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	return http.StatusInternalServerError, i18n.T(ctx, "ErrInternal")
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	count, err := h.store.WordCount()
	if err != nil {
		h.fail(w, r, err)
		return
	}
	render(w, r, http.StatusOK, views.HomePage(count))
}

func (h *Handler) handleWords(w http.ResponseWriter, r *http.Request) {
	words, err := h.store.ListWords()
	if err != nil {
		h.fail(w, r, err)
		return
	}
	render(w, r, http.StatusOK, views.WordsPage(words, ""))
}

func (h *Handler) handleAddWords(w http.ResponseWriter, r *http.Request) {
	pairs, err := model.ParseBatch(r.FormValue("word"), r.FormValue("meaning"))
	if err == nil {
		_, err = h.store.AddWords(pairs)
	}
	if errors.Is(err, model.ErrValidation) {
		words, listErr := h.store.ListWords()
		if listErr != nil {
			h.fail(w, r, listErr)
			return
		}
		_, msg := h.describe(r, err)
		render(w, r, http.StatusBadRequest, views.WordsPage(words, msg))
		return
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}
	http.Redirect(w, r, "/words", http.StatusSeeOther)
}

func (h *Handler) handleDeleteWord(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.fail(w, r, fmt.Errorf("word id %q: %w", chi.URLParam(r, "id"), model.ErrNotFound))
		return
	}
	if err := h.store.DeleteWord(id); err != nil {
		h.fail(w, r, err)
		return
	}
	http.Redirect(w, r, "/words", http.StatusSeeOther)
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	results, err := h.store.RecentResults(h.historyLimit)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	render(w, r, http.StatusOK, views.HistoryPage(results, model.Summarize(results), h.location))
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(chi.URLParam(r, "format"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	snap, err := h.store.Snapshot(h.historyLimit)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", format.Filename()))
	if err := export.Write(w, format, snap); err != nil {
		slog.Error("export failed", "format", format, "error", err)
	}
}
