package handler

import (
	"log/slog"
	"net/http"

	"github.com/pavelanni/wordquiz/internal/handler/views"
	"github.com/pavelanni/wordquiz/internal/i18n"
)

const maxUploadSize = 10 << 20

func (h *Handler) handleImportPage(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusOK, views.ImportPage(0, false, ""))
}

func (h *Handler) handleImport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		render(w, r, http.StatusBadRequest, views.ImportPage(0, false, i18n.T(r.Context(), "ErrImport")))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		render(w, r, http.StatusBadRequest, views.ImportPage(0, false, i18n.T(r.Context(), "ErrImport")))
		return
	}
	defer file.Close()

	n, err := h.importer.Import(file)
	if err != nil {
		status, msg := h.describe(r, err)
		render(w, r, status, views.ImportPage(0, false, msg))
		return
	}

	slog.Info("uploaded words via web", "filename", header.Filename, "count", n)
	render(w, r, http.StatusOK, views.ImportPage(n, true, ""))
}
