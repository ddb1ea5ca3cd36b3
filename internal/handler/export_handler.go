package handler

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/mehdi559/poe/internal/service"
)

// importBodyLimit caps uploaded backup files at 10 MiB.
const importBodyLimit = 10 << 20

// ExportHandler serves ledger backups and restores.
type ExportHandler struct {
	service *service.ExportService
	now     func() time.Time
}

func NewExportHandler(svc *service.ExportService, now func() time.Time) *ExportHandler {
	return &ExportHandler{service: svc, now: now}
}

// ExportJSON downloads the full ledger as a versioned backup envelope.
func (h *ExportHandler) ExportJSON(w http.ResponseWriter, r *http.Request) {
	filename := fmt.Sprintf("budget_backup_%s.json", h.now().Format("2006-01-02"))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	respondJSON(w, http.StatusOK, h.service.ExportJSON(h.now()))
}

// ExportCSV downloads every expense as a CSV file.
func (h *ExportHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	csvData := []byte(h.service.ExportCSV())

	filename := fmt.Sprintf("expenses_%s.csv", h.now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(csvData)))
	_, _ = w.Write(csvData)
}

// Import replaces the ledger with the uploaded backup envelope. The
// current data is kept untouched when the upload is rejected.
func (h *ExportHandler) Import(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, importBodyLimit))
	if err != nil {
		respondError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	if err := h.service.ImportJSON(r.Context(), raw); err != nil {
		respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Reset wipes the ledger back to its default state.
func (h *ExportHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.service.Reset(r.Context())
	w.WriteHeader(http.StatusNoContent)
}
