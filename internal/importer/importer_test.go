package importer

import (
	"context"
	"testing"

	"rental-backend/internal/models"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, sheet string, rows [][]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName("Sheet1", sheet))
	for r, row := range rows {
		for c, val := range row {
			cellName, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cellName, val))
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestImportFromExcel(t *testing.T) {
	svc, store := newTestService(t)

	data := buildWorkbook(t, "النرجس", [][]interface{}{
		{"عمارة حي النرجس"},
		{"الشقة", "المستأجر", "الإيجار", "من", "إلى", "المبلغ", "تاريخ الدفع", "ملاحظات"},
		{},
		{"شقة 1", "سالم", 12000, "2024-01-01", "2024-12-31", 6000, "2024-01-10", "مدفوع"},
		{"", "", "", "2024-01-01", "2024-12-31", 6000, "", ""},
	})

	res, err := svc.ImportFromExcel(context.Background(), data)
	require.NoError(t, err)
	require.True(t, res.Success)
	require.Equal(t, "حي النرجس", res.BuildingName)
	require.Equal(t, 1, res.UnitsImported)
	require.Equal(t, 2, res.PaymentsImported)
	require.Empty(t, res.Errors)

	ctx := context.Background()
	buildings, err := store.Buildings.List(ctx)
	require.NoError(t, err)
	require.Len(t, buildings, 1)
	require.Equal(t, "حي النرجس", buildings[0].Name)

	payments, err := store.Payments.List(ctx)
	require.NoError(t, err)
	require.Len(t, payments, 2)
	require.Equal(t, models.PaymentPaid, payments[0].Status)
	require.Equal(t, models.PaymentPending, payments[1].Status)
}

func TestImportFromExcelStatementLayout(t *testing.T) {
	svc, _ := newTestService(t)

	data := buildWorkbook(t, "الروضة", [][]interface{}{
		{"إيرادات حي الروضة"},
		{"م", "كشف الشقق", "من", "إلى", "المبلغ", "تاريخ التحويل", "طريقة الدفع", "الاستحقاق"},
		{},
		{1, "شقة 5", "2024-01-01", "2024-12-31", 12000, "2024-02-01", "تم التحويل", ""},
		{2, "شقة 5", "2024-01-01", "2024-12-31", 12000, "", "", "مستحق"},
	})

	res, err := svc.ImportFromExcel(context.Background(), data)
	require.NoError(t, err)
	require.True(t, res.Success)
	require.Equal(t, 1, res.UnitsImported)
	require.Equal(t, 2, res.PaymentsImported)
}

func TestImportFromExcelUnreadableWorkbook(t *testing.T) {
	svc, _ := newTestService(t)

	res, err := svc.ImportFromExcel(context.Background(), []byte("not an xlsx"))
	require.Error(t, err)
	require.False(t, res.Success)
	require.NotEmpty(t, res.Errors)
}
