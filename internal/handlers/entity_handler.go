package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"rental-backend/internal/cache"
	"rental-backend/internal/models"
	"rental-backend/internal/repositories"
	"rental-backend/internal/timeutil"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// EntityHandler exposes plain CRUD over the five ledger entities for
// manual corrections after an import. Writes go through the store lock
// and invalidate the dashboard cache.
type EntityHandler struct {
	Store *repositories.Store
}

func NewEntityHandler(store *repositories.Store) *EntityHandler {
	return &EntityHandler{Store: store}
}

// --- buildings ---

func (h *EntityHandler) ListBuildings(w http.ResponseWriter, r *http.Request) {
	items, err := h.Store.Buildings.List(r.Context())
	if err != nil {
		serverError(w, "buildings", err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *EntityHandler) GetBuilding(w http.ResponseWriter, r *http.Request) {
	item, err := h.Store.Buildings.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		serverError(w, "buildings", err)
		return
	}
	if item == nil {
		http.Error(w, "Building not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *EntityHandler) CreateBuilding(w http.ResponseWriter, r *http.Request) {
	var b models.Building
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if b.Name == "" {
		http.Error(w, "Name is required", http.StatusBadRequest)
		return
	}
	b.ID = uuid.NewString()
	b.CreatedAt = timeutil.Now()
	if err := h.upsertBuilding(r, &b); err != nil {
		serverError(w, "buildings", err)
		return
	}
	writeJSON(w, http.StatusCreated, &b)
}

func (h *EntityHandler) UpdateBuilding(w http.ResponseWriter, r *http.Request) {
	var b models.Building
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	b.ID = mux.Vars(r)["id"]
	existing, err := h.Store.Buildings.Get(r.Context(), b.ID)
	if err != nil {
		serverError(w, "buildings", err)
		return
	}
	if existing == nil {
		http.Error(w, "Building not found", http.StatusNotFound)
		return
	}
	b.CreatedAt = existing.CreatedAt
	if err := h.upsertBuilding(r, &b); err != nil {
		serverError(w, "buildings", err)
		return
	}
	writeJSON(w, http.StatusOK, &b)
}

func (h *EntityHandler) DeleteBuilding(w http.ResponseWriter, r *http.Request) {
	h.deleteEntity(w, r, "Building", func(id string) error {
		return h.Store.Buildings.Delete(r.Context(), id)
	})
}

func (h *EntityHandler) upsertBuilding(r *http.Request, b *models.Building) error {
	h.Store.Lock()
	defer h.Store.Unlock()
	if err := h.Store.Buildings.Upsert(r.Context(), b); err != nil {
		return err
	}
	cache.InvalidateDashboard(r.Context())
	return nil
}

// --- units ---

func (h *EntityHandler) ListUnits(w http.ResponseWriter, r *http.Request) {
	items, err := h.Store.Apartments.List(r.Context())
	if err != nil {
		serverError(w, "units", err)
		return
	}
	buildingID := r.URL.Query().Get("building_id")
	if buildingID != "" {
		filtered := items[:0]
		for _, a := range items {
			if a.BuildingID == buildingID {
				filtered = append(filtered, a)
			}
		}
		items = filtered
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *EntityHandler) GetUnit(w http.ResponseWriter, r *http.Request) {
	item, err := h.Store.Apartments.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		serverError(w, "units", err)
		return
	}
	if item == nil {
		http.Error(w, "Unit not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *EntityHandler) CreateUnit(w http.ResponseWriter, r *http.Request) {
	var a models.Apartment
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if a.BuildingID == "" || a.UnitNumber == "" {
		http.Error(w, "BuildingID and UnitNumber are required", http.StatusBadRequest)
		return
	}
	building, err := h.Store.Buildings.Get(r.Context(), a.BuildingID)
	if err != nil {
		serverError(w, "units", err)
		return
	}
	if building == nil {
		http.Error(w, "Building not found", http.StatusBadRequest)
		return
	}
	a.ID = uuid.NewString()
	if err := h.upsertUnit(r, &a); err != nil {
		serverError(w, "units", err)
		return
	}
	writeJSON(w, http.StatusCreated, &a)
}

func (h *EntityHandler) UpdateUnit(w http.ResponseWriter, r *http.Request) {
	var a models.Apartment
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	a.ID = mux.Vars(r)["id"]
	existing, err := h.Store.Apartments.Get(r.Context(), a.ID)
	if err != nil {
		serverError(w, "units", err)
		return
	}
	if existing == nil {
		http.Error(w, "Unit not found", http.StatusNotFound)
		return
	}
	if a.BuildingID == "" {
		a.BuildingID = existing.BuildingID
	}
	if err := h.upsertUnit(r, &a); err != nil {
		serverError(w, "units", err)
		return
	}
	writeJSON(w, http.StatusOK, &a)
}

func (h *EntityHandler) DeleteUnit(w http.ResponseWriter, r *http.Request) {
	h.deleteEntity(w, r, "Unit", func(id string) error {
		return h.Store.Apartments.Delete(r.Context(), id)
	})
}

func (h *EntityHandler) upsertUnit(r *http.Request, a *models.Apartment) error {
	h.Store.Lock()
	defer h.Store.Unlock()
	if err := h.Store.Apartments.Upsert(r.Context(), a); err != nil {
		return err
	}
	cache.InvalidateDashboard(r.Context())
	return nil
}

// --- tenants ---

func (h *EntityHandler) ListTenants(w http.ResponseWriter, r *http.Request) {
	items, err := h.Store.Tenants.List(r.Context())
	if err != nil {
		serverError(w, "tenants", err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *EntityHandler) GetTenant(w http.ResponseWriter, r *http.Request) {
	item, err := h.Store.Tenants.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		serverError(w, "tenants", err)
		return
	}
	if item == nil {
		http.Error(w, "Tenant not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *EntityHandler) CreateTenant(w http.ResponseWriter, r *http.Request) {
	var t models.Tenant
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if t.Name == "" {
		http.Error(w, "Name is required", http.StatusBadRequest)
		return
	}
	t.ID = uuid.NewString()
	if err := h.upsertTenant(r, &t); err != nil {
		serverError(w, "tenants", err)
		return
	}
	writeJSON(w, http.StatusCreated, &t)
}

func (h *EntityHandler) UpdateTenant(w http.ResponseWriter, r *http.Request) {
	var t models.Tenant
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	t.ID = mux.Vars(r)["id"]
	existing, err := h.Store.Tenants.Get(r.Context(), t.ID)
	if err != nil {
		serverError(w, "tenants", err)
		return
	}
	if existing == nil {
		http.Error(w, "Tenant not found", http.StatusNotFound)
		return
	}
	if err := h.upsertTenant(r, &t); err != nil {
		serverError(w, "tenants", err)
		return
	}
	writeJSON(w, http.StatusOK, &t)
}

func (h *EntityHandler) DeleteTenant(w http.ResponseWriter, r *http.Request) {
	h.deleteEntity(w, r, "Tenant", func(id string) error {
		return h.Store.Tenants.Delete(r.Context(), id)
	})
}

func (h *EntityHandler) upsertTenant(r *http.Request, t *models.Tenant) error {
	h.Store.Lock()
	defer h.Store.Unlock()
	return h.Store.Tenants.Upsert(r.Context(), t)
}

// --- leases ---

func (h *EntityHandler) ListLeases(w http.ResponseWriter, r *http.Request) {
	items, err := h.Store.Leases.List(r.Context())
	if err != nil {
		serverError(w, "leases", err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *EntityHandler) GetLease(w http.ResponseWriter, r *http.Request) {
	item, err := h.Store.Leases.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		serverError(w, "leases", err)
		return
	}
	if item == nil {
		http.Error(w, "Lease not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *EntityHandler) CreateLease(w http.ResponseWriter, r *http.Request) {
	var l models.Lease
	if err := json.NewDecoder(r.Body).Decode(&l); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if l.UnitID == "" || l.TenantID == "" {
		http.Error(w, "UnitID and TenantID are required", http.StatusBadRequest)
		return
	}
	if !validISODate(l.StartDate) || !validISODate(l.EndDate) {
		http.Error(w, "Dates must be yyyy-MM-dd", http.StatusBadRequest)
		return
	}
	l.ID = uuid.NewString()
	if err := h.upsertLease(r, &l); err != nil {
		serverError(w, "leases", err)
		return
	}
	writeJSON(w, http.StatusCreated, &l)
}

func (h *EntityHandler) UpdateLease(w http.ResponseWriter, r *http.Request) {
	var l models.Lease
	if err := json.NewDecoder(r.Body).Decode(&l); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	l.ID = mux.Vars(r)["id"]
	existing, err := h.Store.Leases.Get(r.Context(), l.ID)
	if err != nil {
		serverError(w, "leases", err)
		return
	}
	if existing == nil {
		http.Error(w, "Lease not found", http.StatusNotFound)
		return
	}
	if !validISODate(l.StartDate) || !validISODate(l.EndDate) {
		http.Error(w, "Dates must be yyyy-MM-dd", http.StatusBadRequest)
		return
	}
	if l.UnitID == "" {
		l.UnitID = existing.UnitID
	}
	if l.TenantID == "" {
		l.TenantID = existing.TenantID
	}
	if err := h.upsertLease(r, &l); err != nil {
		serverError(w, "leases", err)
		return
	}
	writeJSON(w, http.StatusOK, &l)
}

func (h *EntityHandler) DeleteLease(w http.ResponseWriter, r *http.Request) {
	h.deleteEntity(w, r, "Lease", func(id string) error {
		return h.Store.Leases.Delete(r.Context(), id)
	})
}

func (h *EntityHandler) upsertLease(r *http.Request, l *models.Lease) error {
	h.Store.Lock()
	defer h.Store.Unlock()
	if err := h.Store.Leases.Upsert(r.Context(), l); err != nil {
		return err
	}
	cache.InvalidateDashboard(r.Context())
	return nil
}

// --- raw payments ---

func (h *EntityHandler) ListRawPayments(w http.ResponseWriter, r *http.Request) {
	items, err := h.Store.Payments.List(r.Context())
	if err != nil {
		serverError(w, "payments", err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *EntityHandler) GetRawPayment(w http.ResponseWriter, r *http.Request) {
	item, err := h.Store.Payments.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		serverError(w, "payments", err)
		return
	}
	if item == nil {
		http.Error(w, "Payment not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *EntityHandler) CreateRawPayment(w http.ResponseWriter, r *http.Request) {
	var p models.Payment
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if p.LeaseID == "" {
		http.Error(w, "LeaseID is required", http.StatusBadRequest)
		return
	}
	if p.Status == "" {
		p.Status = models.PaymentPending
	}
	if !models.ValidStatus(p.Status) || p.Status == models.PaymentOverdue {
		http.Error(w, "Status must be PAID or PENDING", http.StatusBadRequest)
		return
	}
	if !validISODate(p.DueDate) || !validISODate(p.PaidDate) {
		http.Error(w, "Dates must be yyyy-MM-dd", http.StatusBadRequest)
		return
	}
	p.ID = uuid.NewString()
	if err := h.upsertRawPayment(r, &p); err != nil {
		serverError(w, "payments", err)
		return
	}
	writeJSON(w, http.StatusCreated, &p)
}

func (h *EntityHandler) UpdateRawPayment(w http.ResponseWriter, r *http.Request) {
	var p models.Payment
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	p.ID = mux.Vars(r)["id"]
	existing, err := h.Store.Payments.Get(r.Context(), p.ID)
	if err != nil {
		serverError(w, "payments", err)
		return
	}
	if existing == nil {
		http.Error(w, "Payment not found", http.StatusNotFound)
		return
	}
	if p.Status == "" {
		p.Status = existing.Status
	}
	if !models.ValidStatus(p.Status) || p.Status == models.PaymentOverdue {
		http.Error(w, "Status must be PAID or PENDING", http.StatusBadRequest)
		return
	}
	if p.LeaseID == "" {
		p.LeaseID = existing.LeaseID
	}
	if err := h.upsertRawPayment(r, &p); err != nil {
		serverError(w, "payments", err)
		return
	}
	writeJSON(w, http.StatusOK, &p)
}

func (h *EntityHandler) DeleteRawPayment(w http.ResponseWriter, r *http.Request) {
	h.deleteEntity(w, r, "Payment", func(id string) error {
		return h.Store.Payments.Delete(r.Context(), id)
	})
}

func (h *EntityHandler) upsertRawPayment(r *http.Request, p *models.Payment) error {
	h.Store.Lock()
	defer h.Store.Unlock()
	if err := h.Store.Payments.Upsert(r.Context(), p); err != nil {
		return err
	}
	cache.InvalidateDashboard(r.Context())
	return nil
}

// --- shared ---

func (h *EntityHandler) deleteEntity(w http.ResponseWriter, r *http.Request, label string, del func(id string) error) {
	h.Store.Lock()
	err := del(mux.Vars(r)["id"])
	h.Store.Unlock()
	if err != nil {
		serverError(w, label, err)
		return
	}
	cache.InvalidateDashboard(r.Context())
	writeJSON(w, http.StatusOK, map[string]string{"message": label + " deleted"})
}

func serverError(w http.ResponseWriter, scope string, err error) {
	log.Printf("[Entities] %s: %v", scope, err)
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}

func validISODate(s string) bool {
	if s == "" {
		return true
	}
	_, err := timeutil.ParseISODate(s)
	return err == nil
}
