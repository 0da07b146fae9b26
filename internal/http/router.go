package http

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"rental-backend/internal/handlers"
)

func NewRouter(
	importHandler *handlers.ImportHandler,
	ledgerHandler *handlers.LedgerHandler,
	entityHandler *handlers.EntityHandler,
	reportHandler *handlers.ReportHandler,
	healthHandler *handlers.HealthHandler,
) *mux.Router {
	r := mux.NewRouter()

	// Workbook ingestion and derived views
	r.HandleFunc("/api/import", importHandler.ImportWorkbook).Methods("POST")
	r.HandleFunc("/api/dashboard", ledgerHandler.GetDashboard).Methods("GET")
	r.HandleFunc("/api/apartments", ledgerHandler.GetApartments).Methods("GET")
	r.HandleFunc("/api/payments", ledgerHandler.GetPayments).Methods("GET")
	r.HandleFunc("/api/payments/{id}/pay", ledgerHandler.MarkPaymentPaid).Methods("POST")
	r.HandleFunc("/api/ledger", ledgerHandler.ClearLedger).Methods("DELETE")

	// Report downloads
	r.HandleFunc("/api/reports/payments.pdf", reportHandler.DownloadPaymentsPDF).Methods("GET")
	r.HandleFunc("/api/reports/payments.csv", reportHandler.DownloadPaymentsCSV).Methods("GET")

	// Entity CRUD for manual corrections
	r.HandleFunc("/api/buildings", entityHandler.ListBuildings).Methods("GET")
	r.HandleFunc("/api/buildings", entityHandler.CreateBuilding).Methods("POST")
	r.HandleFunc("/api/buildings/{id}", entityHandler.GetBuilding).Methods("GET")
	r.HandleFunc("/api/buildings/{id}", entityHandler.UpdateBuilding).Methods("PUT")
	r.HandleFunc("/api/buildings/{id}", entityHandler.DeleteBuilding).Methods("DELETE")

	r.HandleFunc("/api/units", entityHandler.ListUnits).Methods("GET")
	r.HandleFunc("/api/units", entityHandler.CreateUnit).Methods("POST")
	r.HandleFunc("/api/units/{id}", entityHandler.GetUnit).Methods("GET")
	r.HandleFunc("/api/units/{id}", entityHandler.UpdateUnit).Methods("PUT")
	r.HandleFunc("/api/units/{id}", entityHandler.DeleteUnit).Methods("DELETE")

	r.HandleFunc("/api/tenants", entityHandler.ListTenants).Methods("GET")
	r.HandleFunc("/api/tenants", entityHandler.CreateTenant).Methods("POST")
	r.HandleFunc("/api/tenants/{id}", entityHandler.GetTenant).Methods("GET")
	r.HandleFunc("/api/tenants/{id}", entityHandler.UpdateTenant).Methods("PUT")
	r.HandleFunc("/api/tenants/{id}", entityHandler.DeleteTenant).Methods("DELETE")

	r.HandleFunc("/api/leases", entityHandler.ListLeases).Methods("GET")
	r.HandleFunc("/api/leases", entityHandler.CreateLease).Methods("POST")
	r.HandleFunc("/api/leases/{id}", entityHandler.GetLease).Methods("GET")
	r.HandleFunc("/api/leases/{id}", entityHandler.UpdateLease).Methods("PUT")
	r.HandleFunc("/api/leases/{id}", entityHandler.DeleteLease).Methods("DELETE")

	r.HandleFunc("/api/raw-payments", entityHandler.ListRawPayments).Methods("GET")
	r.HandleFunc("/api/raw-payments", entityHandler.CreateRawPayment).Methods("POST")
	r.HandleFunc("/api/raw-payments/{id}", entityHandler.GetRawPayment).Methods("GET")
	r.HandleFunc("/api/raw-payments/{id}", entityHandler.UpdateRawPayment).Methods("PUT")
	r.HandleFunc("/api/raw-payments/{id}", entityHandler.DeleteRawPayment).Methods("DELETE")

	// Operational endpoints
	r.HandleFunc("/health", healthHandler.Basic).Methods("GET")
	r.HandleFunc("/health/detailed", healthHandler.Detailed).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	return r
}
