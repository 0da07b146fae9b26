package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"rental-backend/internal/models"
	"rental-backend/internal/repositories"
	"rental-backend/internal/services"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (*mux.Router, *repositories.Store) {
	t.Helper()
	store := repositories.NewMemoryStore()
	ledger := services.NewLedgerService(store)
	lh := NewLedgerHandler(ledger)
	eh := NewEntityHandler(store)

	r := mux.NewRouter()
	r.HandleFunc("/api/dashboard", lh.GetDashboard).Methods("GET")
	r.HandleFunc("/api/payments", lh.GetPayments).Methods("GET")
	r.HandleFunc("/api/payments/{id}/pay", lh.MarkPaymentPaid).Methods("POST")
	r.HandleFunc("/api/ledger", lh.ClearLedger).Methods("DELETE")
	r.HandleFunc("/api/buildings", eh.CreateBuilding).Methods("POST")
	r.HandleFunc("/api/buildings/{id}", eh.GetBuilding).Methods("GET")
	return r, store
}

func seedPayment(t *testing.T, store *repositories.Store) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, store.Buildings.Upsert(ctx, &models.Building{ID: "b1", Name: "حي النسيم"}))
	require.NoError(t, store.Apartments.Upsert(ctx, &models.Apartment{ID: "a1", BuildingID: "b1", UnitNumber: "شقة 1"}))
	require.NoError(t, store.Tenants.Upsert(ctx, &models.Tenant{ID: "t1", Name: "سالم"}))
	require.NoError(t, store.Leases.Upsert(ctx, &models.Lease{
		ID: "l1", UnitID: "a1", TenantID: "t1", AnnualRent: 12000,
		StartDate: "2024-01-01", EndDate: "2099-12-31",
	}))
	require.NoError(t, store.Payments.Upsert(ctx, &models.Payment{
		ID: "p1", LeaseID: "l1", PaymentNumber: 1, Amount: 6000,
		DueDate: "2099-06-30", Status: models.PaymentPending,
	}))
}

func TestMarkPaymentPaidEndpoint(t *testing.T) {
	router, store := newTestRouter(t)
	seedPayment(t, store)

	body := bytes.NewBufferString(`{"paid_date":"2024-06-10"}`)
	req := httptest.NewRequest("POST", "/api/payments/p1/pay", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var payment models.Payment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payment))
	require.Equal(t, models.PaymentPaid, payment.Status)
	require.Equal(t, "2024-06-10", payment.PaidDate)
}

func TestMarkPaymentPaidUnknownID(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest("POST", "/api/payments/missing/pay", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetPaymentsRejectsBadStatusFilter(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest("GET", "/api/payments?status=SETTLED", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestClearLedgerEndpoint(t *testing.T) {
	router, store := newTestRouter(t)
	seedPayment(t, store)

	req := httptest.NewRequest("DELETE", "/api/ledger", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	payments, err := store.Payments.List(context.Background())
	require.NoError(t, err)
	require.Empty(t, payments)
}

func TestCreateBuildingEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	body := bytes.NewBufferString(`{"name":"حي الروضة","address":"الرياض"}`)
	req := httptest.NewRequest("POST", "/api/buildings", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Building
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)

	req = httptest.NewRequest("GET", "/api/buildings/"+created.ID, nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateBuildingRequiresName(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest("POST", "/api/buildings", bytes.NewBufferString(`{}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
