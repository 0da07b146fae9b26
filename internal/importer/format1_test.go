package importer

import (
	"context"
	"strings"
	"testing"

	"rental-backend/internal/models"
	"rental-backend/internal/repositories"

	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*Service, *repositories.Store) {
	t.Helper()
	store := repositories.NewMemoryStore()
	return NewService(store), store
}

func TestImportFormat1(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	rows := [][]string{
		{"عمارة حي النسيم"},
		{"الشقة", "المستأجر", "الإيجار", "من", "إلى", "المبلغ", "تاريخ الدفع", "ملاحظات"},
		{},
		// Unit row with lease data and a first installment.
		{"شقة 1", "سالم العتيبي", "12000", "2024-01-01", "2024-12-31", "6000", "2024-01-10", "مدفوع"},
		// Continuation row: second installment for the same lease.
		{"", "", "", "2024-01-01", "2024-12-31", "6000", "", "غير مدفوع"},
		// Separator.
		{},
		// Garbage amount: row error, import continues.
		{"", "ملاحظة", "", "", "", "غير رقم", "", ""},
		// Unit without lease data: payments cannot attach.
		{"شقة 2", "ماجد", "", "", "", "3000", "", ""},
	}

	res := &models.ImportResult{Errors: []string{}}
	svc.importFormat1(ctx, rows, "bld-1", res)

	require.Equal(t, 2, res.UnitsImported)
	require.Equal(t, 2, res.PaymentsImported)
	require.Len(t, res.Errors, 1)
	require.True(t, strings.HasPrefix(res.Errors[0], "row 7:"), "error should name the failing row: %q", res.Errors[0])

	leases, err := store.Leases.List(ctx)
	require.NoError(t, err)
	require.Len(t, leases, 1)
	require.Equal(t, 12000.0, leases[0].AnnualRent)

	payments, err := store.Payments.List(ctx)
	require.NoError(t, err)
	require.Len(t, payments, 2)

	require.Equal(t, 1, payments[0].PaymentNumber)
	require.Equal(t, models.PaymentPaid, payments[0].Status)
	require.Equal(t, "2024-01-10", payments[0].PaidDate)

	require.Equal(t, 2, payments[1].PaymentNumber)
	require.Equal(t, models.PaymentPending, payments[1].Status)
	require.Empty(t, payments[1].PaidDate, "pending installments carry no paid date")
	require.Equal(t, "2024-12-31", payments[1].DueDate, "due date defaults to the period end")
}

func TestImportFormat1PlaceholderTenant(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	rows := [][]string{
		{}, {}, {},
		{"شقة 7", "", "9000", "2024-01-01", "2024-12-31", "", "", ""},
	}

	res := &models.ImportResult{Errors: []string{}}
	svc.importFormat1(ctx, rows, "bld-1", res)
	require.Empty(t, res.Errors)

	tenants, err := store.Tenants.List(ctx)
	require.NoError(t, err)
	require.Len(t, tenants, 1)
	require.Equal(t, "مستأجر شقة 7", tenants[0].Name)
}

func TestImportFormat1SkipsNonUnitLabels(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	// A label without the unit keyword never opens a unit, and payments
	// before any lease are dropped.
	rows := [][]string{
		{}, {}, {},
		{"محل 1", "تاجر", "8000", "2024-01-01", "2024-12-31", "4000", "", ""},
	}

	res := &models.ImportResult{Errors: []string{}}
	svc.importFormat1(ctx, rows, "bld-1", res)

	require.Equal(t, 0, res.UnitsImported)
	require.Equal(t, 0, res.PaymentsImported)
	require.Empty(t, res.Errors)

	units, err := store.Apartments.List(ctx)
	require.NoError(t, err)
	require.Empty(t, units)
}
