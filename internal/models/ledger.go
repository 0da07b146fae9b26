package models

import "time"

// PaymentStatus is the lifecycle state of a payment installment.
// OVERDUE is normally derived at read time by the ledger service;
// it is only persisted when the service writes it back explicitly.
type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "PAID"
	PaymentPending PaymentStatus = "PENDING"
	PaymentOverdue PaymentStatus = "OVERDUE"
)

// ValidStatus reports whether s is one of the known payment statuses.
func ValidStatus(s PaymentStatus) bool {
	switch s {
	case PaymentPaid, PaymentPending, PaymentOverdue:
		return true
	}
	return false
}

type Building struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

type Apartment struct {
	ID         string `json:"id"`
	BuildingID string `json:"building_id"`
	UnitNumber string `json:"unit_number"`
	Floor      string `json:"floor,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

type Tenant struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Phone      string `json:"phone,omitempty"`
	Email      string `json:"email,omitempty"`
	NationalID string `json:"national_id,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

// Lease dates are ISO yyyy-MM-dd strings. Imported source data can be
// dirty, so a lease with an unparseable end date is simply never active.
type Lease struct {
	ID         string  `json:"id"`
	UnitID     string  `json:"unit_id"`
	TenantID   string  `json:"tenant_id"`
	AnnualRent float64 `json:"annual_rent"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	Notes      string  `json:"notes,omitempty"`
}

// Payment is one installment under a lease. PaymentNumber is a 1-based
// running counter per lease, assigned during import.
type Payment struct {
	ID            string        `json:"id"`
	LeaseID       string        `json:"lease_id"`
	PaymentNumber int           `json:"payment_number"`
	Amount        float64       `json:"amount"`
	PeriodStart   string        `json:"period_start"`
	PeriodEnd     string        `json:"period_end"`
	DueDate       string        `json:"due_date"`
	PaidDate      string        `json:"paid_date,omitempty"`
	Status        PaymentStatus `json:"status"`
	Notes         string        `json:"notes,omitempty"`
}

// ImportResult is the outcome of one workbook import. Success is false
// only on a workbook-level failure; row-level problems accumulate into
// Errors without failing the run.
type ImportResult struct {
	Success          bool     `json:"success"`
	BuildingName     string   `json:"building_name"`
	UnitsImported    int      `json:"units_imported"`
	PaymentsImported int      `json:"payments_imported"`
	Errors           []string `json:"errors"`
}
