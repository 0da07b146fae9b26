package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"rental-backend/internal/cache"
	"rental-backend/internal/models"
	"rental-backend/internal/services"

	"github.com/gorilla/mux"
)

type LedgerHandler struct {
	Service *services.LedgerService
}

func NewLedgerHandler(service *services.LedgerService) *LedgerHandler {
	return &LedgerHandler{Service: service}
}

// GetDashboard serves the portfolio summary, with a short-lived Redis
// cache in front of the derivation.
func (h *LedgerHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	if data, ok := cache.GetCachedDashboard(r.Context()); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Cache", "HIT")
		w.Write(data)
		return
	}

	summary, err := h.Service.GetDashboardSummary(r.Context())
	if err != nil {
		log.Printf("[Ledger] dashboard: %v", err)
		http.Error(w, "Failed to build dashboard", http.StatusInternalServerError)
		return
	}

	data, err := json.Marshal(summary)
	if err != nil {
		http.Error(w, "Failed to encode dashboard", http.StatusInternalServerError)
		return
	}
	cache.CacheDashboard(r.Context(), data)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Cache", "MISS")
	w.Write(data)
}

// GetApartments lists units with tenant, lease and derived payment details.
// An optional building_id query narrows the listing to one building.
func (h *LedgerHandler) GetApartments(w http.ResponseWriter, r *http.Request) {
	apartments, err := h.Service.GetApartmentsWithDetails(r.Context(), r.URL.Query().Get("building_id"))
	if err != nil {
		log.Printf("[Ledger] apartments: %v", err)
		http.Error(w, "Failed to list apartments", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, apartments)
}

// GetPayments lists payments joined with their unit, tenant and building,
// filtered by optional building_id and status query parameters. Status is
// matched against the derived value, so OVERDUE works as a filter even
// though it is never persisted.
func (h *LedgerHandler) GetPayments(w http.ResponseWriter, r *http.Request) {
	status := models.PaymentStatus(r.URL.Query().Get("status"))
	if status != "" && !models.ValidStatus(status) {
		http.Error(w, "Invalid status filter", http.StatusBadRequest)
		return
	}

	payments, err := h.Service.GetPaymentsWithDetails(r.Context(), r.URL.Query().Get("building_id"), status)
	if err != nil {
		log.Printf("[Ledger] payments: %v", err)
		http.Error(w, "Failed to list payments", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, payments)
}

// MarkPaymentPaid transitions one payment to PAID. The body may carry an
// optional {"paid_date": "yyyy-MM-dd"}; when absent, today in AST is used.
func (h *LedgerHandler) MarkPaymentPaid(w http.ResponseWriter, r *http.Request) {
	paymentID := mux.Vars(r)["id"]

	var body struct {
		PaidDate string `json:"paid_date"`
	}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
	}

	payment, err := h.Service.MarkPaymentAsPaid(r.Context(), paymentID, body.PaidDate)
	if err != nil {
		log.Printf("[Ledger] mark paid %s: %v", paymentID, err)
		http.Error(w, "Failed to update payment", http.StatusInternalServerError)
		return
	}
	if payment == nil {
		http.Error(w, "Payment not found", http.StatusNotFound)
		return
	}

	cache.InvalidateDashboard(r.Context())
	writeJSON(w, http.StatusOK, payment)
}

// ClearLedger wipes the whole dataset in dependency order.
func (h *LedgerHandler) ClearLedger(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.ClearLedger(r.Context()); err != nil {
		log.Printf("[Ledger] clear: %v", err)
		http.Error(w, "Failed to clear ledger", http.StatusInternalServerError)
		return
	}
	cache.InvalidateDashboard(r.Context())
	writeJSON(w, http.StatusOK, map[string]string{"message": "Ledger cleared"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
