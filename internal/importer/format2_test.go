package importer

import (
	"context"
	"testing"

	"rental-backend/internal/models"

	"github.com/stretchr/testify/require"
)

func TestImportFormat2ReconcilesRepeatedUnits(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	// Three rows for the same unit: the lease keeps the maximum rent and
	// the first non-blank dates, never regressing on later rows.
	rows := [][]string{
		{"إيرادات حي الروضة"},
		{"م", "كشف الشقق", "من", "إلى", "المبلغ", "تاريخ التحويل", "طريقة الدفع", "الاستحقاق"},
		{},
		{"1", "شقة 5", "2024-01-01", "", "500", "", "", ""},
		{"2", "شقة 5", "", "2025-01-01", "1200", "2024-02-01", "تم التحويل", ""},
		{"3", "شقة 5", "", "2024-06-01", "900", "", "", "مستحق في 2024/06/15"},
	}

	res := &models.ImportResult{Errors: []string{}}
	svc.importFormat2(ctx, rows, "bld-1", res)
	require.Empty(t, res.Errors)

	require.Equal(t, 1, res.UnitsImported, "repeated unit labels collapse to one unit")
	require.Equal(t, 3, res.PaymentsImported)

	leases, err := store.Leases.List(ctx)
	require.NoError(t, err)
	require.Len(t, leases, 1)
	require.Equal(t, 1200.0, leases[0].AnnualRent, "rent only moves up")
	require.Equal(t, "2024-01-01", leases[0].StartDate)
	require.Equal(t, "2025-01-01", leases[0].EndDate, "a filled end date is never overwritten")

	payments, err := store.Payments.List(ctx)
	require.NoError(t, err)
	require.Len(t, payments, 3)

	require.Equal(t, models.PaymentPending, payments[0].Status)
	require.Equal(t, models.PaymentPaid, payments[1].Status)
	require.Equal(t, "2024-02-01", payments[1].PaidDate)

	// The free-text due date in the notes wins over the period-end column.
	require.Equal(t, models.PaymentPending, payments[2].Status)
	require.Equal(t, "2024-06-15", payments[2].DueDate)
}

func TestImportFormat2SkipsNonUnitRows(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	rows := [][]string{
		{}, {}, {},
		{"1", "الإجمالي", "", "", "15000", "", "", ""},
		{"", "", "", "", "", "", "", ""},
	}

	res := &models.ImportResult{Errors: []string{}}
	svc.importFormat2(ctx, rows, "bld-1", res)

	require.Equal(t, 0, res.UnitsImported)
	require.Equal(t, 0, res.PaymentsImported)
	require.Empty(t, res.Errors)

	units, err := store.Apartments.List(ctx)
	require.NoError(t, err)
	require.Empty(t, units)
}

func TestImportFormat2RowErrorDoesNotStopSheet(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	rows := [][]string{
		{}, {}, {},
		{"1", "شقة 1", "2024-01-01", "2024-12-31", "مبلغ؟", "", "", ""},
		{"2", "شقة 2", "2024-01-01", "2024-12-31", "7000", "", "", ""},
	}

	res := &models.ImportResult{Errors: []string{}}
	svc.importFormat2(ctx, rows, "bld-1", res)

	require.Len(t, res.Errors, 1)
	require.Contains(t, res.Errors[0], "row 4:")
	require.Equal(t, 1, res.UnitsImported)
	require.Equal(t, 1, res.PaymentsImported)

	units, err := store.Apartments.List(ctx)
	require.NoError(t, err)
	require.Len(t, units, 1)
	require.Equal(t, "شقة 2", units[0].UnitNumber)
}
