package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"

	"rental-backend/internal/cache"
	"rental-backend/internal/importer"
)

type ImportHandler struct {
	Service        *importer.Service
	MaxUploadBytes int64
}

func NewImportHandler(service *importer.Service, maxUploadBytes int64) *ImportHandler {
	return &ImportHandler{Service: service, MaxUploadBytes: maxUploadBytes}
}

// ImportWorkbook accepts a multipart upload ("file" field, .xlsx) and runs
// it through the ledger importer. Row-level problems come back inside the
// result; only an unreadable workbook is answered with a 400.
func (h *ImportHandler) ImportWorkbook(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadBytes)

	if err := r.ParseMultipartForm(h.MaxUploadBytes); err != nil {
		http.Error(w, "Invalid multipart upload", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "Missing \"file\" field", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".xlsx") {
		http.Error(w, "Only .xlsx files are allowed", http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "Failed to read upload", http.StatusBadRequest)
		return
	}

	result, err := h.Service.ImportFromExcel(r.Context(), data)
	if err != nil {
		log.Printf("[Import] workbook %q failed: %v", header.Filename, err)
	} else {
		log.Printf("[Import] workbook %q: %d units, %d payments, %d row errors",
			header.Filename, result.UnitsImported, result.PaymentsImported, len(result.Errors))
	}

	cache.InvalidateDashboard(r.Context())

	w.Header().Set("Content-Type", "application/json")
	if !result.Success {
		w.WriteHeader(http.StatusBadRequest)
	}
	json.NewEncoder(w).Encode(result)
}
