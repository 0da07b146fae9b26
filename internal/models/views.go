package models

// Read-only joins assembled on demand by the ledger service. Never persisted.

type DashboardSummary struct {
	TotalBuildings     int                  `json:"total_buildings"`
	TotalApartments    int                  `json:"total_apartments"`
	OccupiedUnits      int                  `json:"occupied_units"`
	VacantUnits        int                  `json:"vacant_units"`
	TotalMonthlyIncome float64              `json:"total_monthly_income"`
	UpcomingPayments   []PaymentWithDetails `json:"upcoming_payments"`
	OverduePayments    []PaymentWithDetails `json:"overdue_payments"`
}

type ApartmentWithDetails struct {
	Apartment Apartment `json:"apartment"`
	Building  *Building `json:"building,omitempty"`
	Lease     *Lease    `json:"lease,omitempty"`
	Tenant    *Tenant   `json:"tenant,omitempty"`
	Payments  []Payment `json:"payments,omitempty"`
}

type PaymentWithDetails struct {
	Payment   Payment    `json:"payment"`
	Lease     *Lease     `json:"lease,omitempty"`
	Apartment *Apartment `json:"apartment,omitempty"`
	Building  *Building  `json:"building,omitempty"`
	Tenant    *Tenant    `json:"tenant,omitempty"`
}
