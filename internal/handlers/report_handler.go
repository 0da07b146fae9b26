package handlers

import (
	"fmt"
	"log"
	"net/http"

	"rental-backend/internal/models"
	"rental-backend/internal/services"
	"rental-backend/internal/timeutil"
)

type ReportHandler struct {
	Service *services.ReportService
}

func NewReportHandler(service *services.ReportService) *ReportHandler {
	return &ReportHandler{Service: service}
}

// DownloadPaymentsPDF streams the payments listing as a landscape PDF
// table. building_id and status filters mirror GET /api/payments.
func (h *ReportHandler) DownloadPaymentsPDF(w http.ResponseWriter, r *http.Request) {
	status, ok := statusFilter(w, r)
	if !ok {
		return
	}

	data, err := h.Service.GeneratePaymentsPDF(r.Context(), r.URL.Query().Get("building_id"), status)
	if err != nil {
		log.Printf("[Reports] pdf: %v", err)
		http.Error(w, "Failed to generate report", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=payments_%s.pdf", reportStamp()))
	w.Write(data)
}

// DownloadPaymentsCSV streams the same listing as CSV.
func (h *ReportHandler) DownloadPaymentsCSV(w http.ResponseWriter, r *http.Request) {
	status, ok := statusFilter(w, r)
	if !ok {
		return
	}

	data, err := h.Service.GeneratePaymentsCSV(r.Context(), r.URL.Query().Get("building_id"), status)
	if err != nil {
		log.Printf("[Reports] csv: %v", err)
		http.Error(w, "Failed to generate report", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=payments_%s.csv", reportStamp()))
	w.Write(data)
}

func statusFilter(w http.ResponseWriter, r *http.Request) (models.PaymentStatus, bool) {
	status := models.PaymentStatus(r.URL.Query().Get("status"))
	if status != "" && !models.ValidStatus(status) {
		http.Error(w, "Invalid status filter", http.StatusBadRequest)
		return "", false
	}
	return status, true
}

func reportStamp() string {
	return timeutil.Now().Format("20060102_150405")
}
