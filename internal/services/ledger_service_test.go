package services

import (
	"context"
	"testing"
	"time"

	"rental-backend/internal/models"
	"rental-backend/internal/repositories"
	"rental-backend/internal/timeutil"

	"github.com/stretchr/testify/require"
)

var testToday = time.Date(2024, 6, 15, 0, 0, 0, 0, timeutil.AST)

func newTestLedger(t *testing.T) (*LedgerService, *repositories.Store) {
	t.Helper()
	store := repositories.NewMemoryStore()
	svc := NewLedgerService(store)
	svc.now = func() time.Time { return testToday }
	return svc, store
}

func seedLedger(t *testing.T, store *repositories.Store) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, store.Buildings.Upsert(ctx, &models.Building{ID: "b1", Name: "حي النسيم"}))
	require.NoError(t, store.Apartments.Upsert(ctx, &models.Apartment{ID: "a1", BuildingID: "b1", UnitNumber: "شقة 1"}))
	require.NoError(t, store.Apartments.Upsert(ctx, &models.Apartment{ID: "a2", BuildingID: "b1", UnitNumber: "شقة 2"}))
	require.NoError(t, store.Tenants.Upsert(ctx, &models.Tenant{ID: "t1", Name: "سالم"}))
	require.NoError(t, store.Leases.Upsert(ctx, &models.Lease{
		ID: "l1", UnitID: "a1", TenantID: "t1",
		AnnualRent: 1200, StartDate: "2024-01-01", EndDate: "2024-12-31",
	}))
	require.NoError(t, store.Payments.Upsert(ctx, &models.Payment{
		ID: "p1", LeaseID: "l1", PaymentNumber: 1, Amount: 600,
		DueDate: "2024-06-20", Status: models.PaymentPending,
	}))
	require.NoError(t, store.Payments.Upsert(ctx, &models.Payment{
		ID: "p2", LeaseID: "l1", PaymentNumber: 2, Amount: 600,
		DueDate: "2024-06-14", Status: models.PaymentPending,
	}))
}

func TestDeriveStatus(t *testing.T) {
	cases := []struct {
		name     string
		payment  models.Payment
		expected models.PaymentStatus
	}{
		{
			name:     "pending past due becomes overdue",
			payment:  models.Payment{Status: models.PaymentPending, DueDate: "2024-06-14"},
			expected: models.PaymentOverdue,
		},
		{
			name:     "pending due today stays pending",
			payment:  models.Payment{Status: models.PaymentPending, DueDate: "2024-06-15"},
			expected: models.PaymentPending,
		},
		{
			name:     "pending future stays pending",
			payment:  models.Payment{Status: models.PaymentPending, DueDate: "2024-07-01"},
			expected: models.PaymentPending,
		},
		{
			name:     "paid is terminal even past due",
			payment:  models.Payment{Status: models.PaymentPaid, DueDate: "2020-01-01"},
			expected: models.PaymentPaid,
		},
		{
			name:     "malformed due date degrades to pending",
			payment:  models.Payment{Status: models.PaymentPending, DueDate: "soon"},
			expected: models.PaymentPending,
		},
	}
	for _, tc := range cases {
		if got := DeriveStatus(&tc.payment, testToday); got != tc.expected {
			t.Fatalf("%s: expected %s, got %s", tc.name, tc.expected, got)
		}
	}
}

func TestLeaseActive(t *testing.T) {
	cases := []struct {
		name     string
		lease    models.Lease
		expected bool
	}{
		{"ends today", models.Lease{EndDate: "2024-06-15"}, true},
		{"ends in the future", models.Lease{EndDate: "2025-01-01"}, true},
		{"ended yesterday", models.Lease{EndDate: "2024-06-14"}, false},
		{"blank end date", models.Lease{}, false},
		{"malformed end date", models.Lease{EndDate: "later"}, false},
	}
	for _, tc := range cases {
		if got := LeaseActive(&tc.lease, testToday); got != tc.expected {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.expected, got)
		}
	}
}

func TestGetDashboardSummary(t *testing.T) {
	svc, store := newTestLedger(t)
	seedLedger(t, store)

	summary, err := svc.GetDashboardSummary(context.Background())
	require.NoError(t, err)

	require.Equal(t, 1, summary.TotalBuildings)
	require.Equal(t, 2, summary.TotalApartments)
	require.Equal(t, 1, summary.OccupiedUnits)
	require.Equal(t, 1, summary.VacantUnits)
	require.InDelta(t, 100.0, summary.TotalMonthlyIncome, 0.001)

	require.Len(t, summary.UpcomingPayments, 1)
	require.Equal(t, "p1", summary.UpcomingPayments[0].Payment.ID)

	require.Len(t, summary.OverduePayments, 1)
	require.Equal(t, "p2", summary.OverduePayments[0].Payment.ID)
	require.Equal(t, models.PaymentOverdue, summary.OverduePayments[0].Payment.Status)
}

func TestDerivedStatusIsNeverPersisted(t *testing.T) {
	svc, store := newTestLedger(t)
	seedLedger(t, store)
	ctx := context.Background()

	views, err := svc.GetPaymentsWithDetails(ctx, "", models.PaymentOverdue)
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.Equal(t, "p2", views[0].Payment.ID)

	stored, err := store.Payments.Get(ctx, "p2")
	require.NoError(t, err)
	require.Equal(t, models.PaymentPending, stored.Status, "reads must not write the derived status back")
}

func TestGetApartmentsWithDetails(t *testing.T) {
	svc, store := newTestLedger(t)
	seedLedger(t, store)
	ctx := context.Background()

	// A second, expired lease on the same unit must not displace the
	// current one.
	require.NoError(t, store.Leases.Upsert(ctx, &models.Lease{
		ID: "l0", UnitID: "a1", TenantID: "t1",
		AnnualRent: 900, StartDate: "2023-01-01", EndDate: "2023-12-31",
	}))

	views, err := svc.GetApartmentsWithDetails(ctx, "b1")
	require.NoError(t, err)
	require.Len(t, views, 2)

	var withLease *models.ApartmentWithDetails
	for i := range views {
		if views[i].Apartment.ID == "a1" {
			withLease = &views[i]
		}
	}
	require.NotNil(t, withLease)
	require.NotNil(t, withLease.Lease)
	require.Equal(t, "l1", withLease.Lease.ID)
	require.Len(t, withLease.Payments, 2)
	require.Equal(t, 1, withLease.Payments[0].PaymentNumber)
	require.Equal(t, models.PaymentOverdue, withLease.Payments[1].Status)
}

func TestMarkPaymentAsPaid(t *testing.T) {
	svc, store := newTestLedger(t)
	seedLedger(t, store)
	ctx := context.Background()

	paid, err := svc.MarkPaymentAsPaid(ctx, "p2", "")
	require.NoError(t, err)
	require.NotNil(t, paid)
	require.Equal(t, models.PaymentPaid, paid.Status)
	require.Equal(t, "2024-06-15", paid.PaidDate, "blank paid date defaults to today")

	stored, err := store.Payments.Get(ctx, "p2")
	require.NoError(t, err)
	require.Equal(t, models.PaymentPaid, stored.Status)

	// Unknown ids are a no-op, not an error.
	missing, err := svc.MarkPaymentAsPaid(ctx, "nope", "")
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestMarkPaymentAsPaidExplicitDate(t *testing.T) {
	svc, _ := newTestLedger(t)
	ctx := context.Background()
	require.NoError(t, svc.Store.Payments.Upsert(ctx, &models.Payment{
		ID: "p9", LeaseID: "l1", Status: models.PaymentPending, DueDate: "2024-06-01",
	}))

	paid, err := svc.MarkPaymentAsPaid(ctx, "p9", "2024-06-10")
	require.NoError(t, err)
	require.Equal(t, "2024-06-10", paid.PaidDate)
}

func TestClearLedger(t *testing.T) {
	svc, store := newTestLedger(t)
	seedLedger(t, store)
	ctx := context.Background()

	require.NoError(t, svc.ClearLedger(ctx))

	buildings, err := store.Buildings.List(ctx)
	require.NoError(t, err)
	require.Empty(t, buildings)
	payments, err := store.Payments.List(ctx)
	require.NoError(t, err)
	require.Empty(t, payments)
}
