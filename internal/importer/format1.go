package importer

import (
	"context"
	"fmt"
	"strings"

	"rental-backend/internal/metrics"
	"rental-backend/internal/models"

	"github.com/google/uuid"
)

// Format 1: multi-row-per-unit. A row whose unit-label column mentions the
// unit keyword opens a new unit; the rows after it are continuation rows
// carrying further installments for that unit's lease. The importer is an
// explicit fold over the rows with this accumulator as the fold state.
type format1Cursor struct {
	unitID        string
	leaseID       string
	tenantID      string
	paymentNumber int
}

// Expected columns of the multi-row layout.
const (
	f1ColUnit = iota
	f1ColTenant
	f1ColAnnualRent
	f1ColPeriodStart
	f1ColPeriodEnd
	f1ColAmount
	f1ColPaymentDate
	f1ColNotes
)

func (s *Service) importFormat1(ctx context.Context, rows [][]string, buildingID string, res *models.ImportResult) {
	var cur format1Cursor
	for i := dataStartRow; i < len(rows); i++ {
		if err := s.format1Row(ctx, rows[i], buildingID, &cur, res); err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("row %d: %v", i+1, err))
			metrics.ImportRowErrors.Inc()
			continue
		}
		metrics.ImportRowsTotal.Inc()
	}
}

// format1Row applies one row to the cursor state. Errors are row-local:
// the caller records them and moves on to the next row.
func (s *Service) format1Row(ctx context.Context, row []string, buildingID string, cur *format1Cursor, res *models.ImportResult) error {
	unitLabel := StringValue(cell(row, f1ColUnit))
	tenantText := StringValue(cell(row, f1ColTenant))
	rawAmount := cell(row, f1ColAmount)

	// Entirely blank rows are separators, not data.
	if unitLabel == "" && tenantText == "" && strings.TrimSpace(rawAmount) == "" {
		return nil
	}

	annualRent := NumericValue(cell(row, f1ColAnnualRent))
	periodStart := DateValue(cell(row, f1ColPeriodStart))
	periodEnd := DateValue(cell(row, f1ColPeriodEnd))
	paymentDate := DateValue(cell(row, f1ColPaymentDate))
	notes := StringValue(cell(row, f1ColNotes))

	amount, err := parseNumber(rawAmount)
	if err != nil {
		return fmt.Errorf("payment amount: %w", err)
	}

	s.store.Lock()
	defer s.store.Unlock()

	if unitLabel != "" && strings.Contains(unitLabel, unitKeyword) {
		apartment := &models.Apartment{
			ID:         uuid.NewString(),
			BuildingID: buildingID,
			UnitNumber: unitLabel,
		}
		if err := s.store.Apartments.Upsert(ctx, apartment); err != nil {
			return fmt.Errorf("create unit %q: %w", unitLabel, err)
		}
		res.UnitsImported++

		tenantName := tenantText
		if tenantName == "" {
			tenantName = "مستأجر " + unitLabel
		}
		tenant := &models.Tenant{ID: uuid.NewString(), Name: tenantName}
		if err := s.store.Tenants.Upsert(ctx, tenant); err != nil {
			return fmt.Errorf("create tenant for %q: %w", unitLabel, err)
		}

		cur.unitID = apartment.ID
		cur.tenantID = tenant.ID
		cur.leaseID = ""
		cur.paymentNumber = 0

		if annualRent > 0 && periodStart != "" && periodEnd != "" {
			lease := &models.Lease{
				ID:         uuid.NewString(),
				UnitID:     apartment.ID,
				TenantID:   tenant.ID,
				AnnualRent: annualRent,
				StartDate:  periodStart,
				EndDate:    periodEnd,
			}
			if err := s.store.Leases.Upsert(ctx, lease); err != nil {
				return fmt.Errorf("create lease for %q: %w", unitLabel, err)
			}
			cur.leaseID = lease.ID
		}
	}

	if amount > 0 && cur.leaseID != "" {
		cur.paymentNumber++
		status := inferStatus(notes)
		payment := &models.Payment{
			ID:            uuid.NewString(),
			LeaseID:       cur.leaseID,
			PaymentNumber: cur.paymentNumber,
			Amount:        amount,
			PeriodStart:   periodStart,
			PeriodEnd:     periodEnd,
			DueDate:       periodEnd,
			Status:        status,
			Notes:         notes,
		}
		if status == models.PaymentPaid {
			payment.PaidDate = paymentDate
		}
		if err := s.store.Payments.Upsert(ctx, payment); err != nil {
			cur.paymentNumber--
			return fmt.Errorf("create payment: %w", err)
		}
		res.PaymentsImported++
	}

	return nil
}
