package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"

	"rental-backend/internal/models"
	"rental-backend/internal/timeutil"

	"github.com/jung-kurt/gofpdf/v2"
)

// ReportService renders payment listings as downloadable PDF and CSV
// exports for the back office.
type ReportService struct {
	Ledger *LedgerService
}

func NewReportService(ledger *LedgerService) *ReportService {
	return &ReportService{Ledger: ledger}
}

// GeneratePaymentsPDF renders the (optionally filtered) payments view as a
// landscape A4 table with a totals row.
func (s *ReportService) GeneratePaymentsPDF(ctx context.Context, buildingID string, status models.PaymentStatus) ([]byte, error) {
	payments, err := s.Ledger.GetPaymentsWithDetails(ctx, buildingID, status)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("L", "mm", "A4", "") // Landscape for more columns
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(277, 10, "Rental Ledger - Payments Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(277, 6, fmt.Sprintf("Generated: %s", timeutil.Now().Format(timeutil.DisplayLayout)), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// Table header
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(50, 7, "Building", "1", 0, "C", true, 0, "")
	pdf.CellFormat(40, 7, "Unit", "1", 0, "C", true, 0, "")
	pdf.CellFormat(15, 7, "No.", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 7, "Amount (SAR)", "1", 0, "C", true, 0, "")
	pdf.CellFormat(32, 7, "Due Date", "1", 0, "C", true, 0, "")
	pdf.CellFormat(32, 7, "Paid Date", "1", 0, "C", true, 0, "")
	pdf.CellFormat(28, 7, "Status", "1", 0, "C", true, 0, "")
	pdf.CellFormat(45, 7, "Period", "1", 1, "C", true, 0, "")

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFont("Arial", "", 9)

	var total, collected float64
	for _, p := range payments {
		building, unit := "-", "-"
		if p.Building != nil {
			building = p.Building.Name
		}
		if p.Apartment != nil {
			unit = p.Apartment.UnitNumber
		}
		period := fmt.Sprintf("%s - %s", orDash(p.Payment.PeriodStart), orDash(p.Payment.PeriodEnd))

		pdf.CellFormat(50, 6, tr(building), "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, tr(unit), "1", 0, "L", false, 0, "")
		pdf.CellFormat(15, 6, fmt.Sprintf("%d", p.Payment.PaymentNumber), "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 6, fmt.Sprintf("%.2f", p.Payment.Amount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(32, 6, orDash(p.Payment.DueDate), "1", 0, "C", false, 0, "")
		pdf.CellFormat(32, 6, orDash(p.Payment.PaidDate), "1", 0, "C", false, 0, "")
		pdf.CellFormat(28, 6, string(p.Payment.Status), "1", 0, "C", false, 0, "")
		pdf.CellFormat(45, 6, period, "1", 1, "C", false, 0, "")

		total += p.Payment.Amount
		if p.Payment.Status == models.PaymentPaid {
			collected += p.Payment.Amount
		}
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(92, 8, fmt.Sprintf("Payments: %d", len(payments)), "1", 0, "C", false, 0, "")
	pdf.CellFormat(92, 8, fmt.Sprintf("Total: %.2f SAR", total), "1", 0, "C", false, 0, "")
	pdf.CellFormat(93, 8, fmt.Sprintf("Collected: %.2f SAR", collected), "1", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render payments PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// GeneratePaymentsCSV renders the same view as a CSV body.
func (s *ReportService) GeneratePaymentsCSV(ctx context.Context, buildingID string, status models.PaymentStatus) ([]byte, error) {
	payments, err := s.Ledger.GetPaymentsWithDetails(ctx, buildingID, status)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"building", "unit", "tenant", "payment_number", "amount", "period_start", "period_end", "due_date", "paid_date", "status", "notes"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, p := range payments {
		building, unit, tenant := "", "", ""
		if p.Building != nil {
			building = p.Building.Name
		}
		if p.Apartment != nil {
			unit = p.Apartment.UnitNumber
		}
		if p.Tenant != nil {
			tenant = p.Tenant.Name
		}
		record := []string{
			building,
			unit,
			tenant,
			fmt.Sprintf("%d", p.Payment.PaymentNumber),
			fmt.Sprintf("%.2f", p.Payment.Amount),
			p.Payment.PeriodStart,
			p.Payment.PeriodEnd,
			p.Payment.DueDate,
			p.Payment.PaidDate,
			string(p.Payment.Status),
			p.Payment.Notes,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
