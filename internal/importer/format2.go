package importer

import (
	"context"
	"fmt"
	"strings"

	"rental-backend/internal/metrics"
	"rental-backend/internal/models"

	"github.com/google/uuid"
)

// Format 2: one-row-per-unit statement layout. The same unit label can
// still show up on several rows (renewals, split installments), so the
// sheet keeps lookup maps and reconciles each later row into the lease
// created by the first one.
type format2State struct {
	unitIDs   map[string]string // unit label -> unit id
	tenantIDs map[string]string // unit id -> tenant id
	leaseIDs  map[string]string // unit id -> lease id
	payCounts map[string]int    // lease id -> payments emitted so far
}

func newFormat2State() *format2State {
	return &format2State{
		unitIDs:   make(map[string]string),
		tenantIDs: make(map[string]string),
		leaseIDs:  make(map[string]string),
		payCounts: make(map[string]int),
	}
}

// Expected columns of the statement layout.
const (
	f2ColIndex = iota
	f2ColUnit
	f2ColPeriodStart
	f2ColPeriodEnd
	f2ColAmount
	f2ColPaymentDate
	f2ColMethodNotes
	f2ColDueNotes
)

func (s *Service) importFormat2(ctx context.Context, rows [][]string, buildingID string, res *models.ImportResult) {
	st := newFormat2State()
	for i := dataStartRow; i < len(rows); i++ {
		if err := s.format2Row(ctx, rows[i], buildingID, st, res); err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("row %d: %v", i+1, err))
			metrics.ImportRowErrors.Inc()
			continue
		}
		metrics.ImportRowsTotal.Inc()
	}
}

func (s *Service) format2Row(ctx context.Context, row []string, buildingID string, st *format2State, res *models.ImportResult) error {
	unitLabel := StringValue(cell(row, f2ColUnit))
	if unitLabel == "" || !strings.Contains(unitLabel, unitKeyword) {
		return nil
	}

	periodStart := DateValue(cell(row, f2ColPeriodStart))
	periodEnd := DateValue(cell(row, f2ColPeriodEnd))
	paymentDate := DateValue(cell(row, f2ColPaymentDate))
	methodNotes := StringValue(cell(row, f2ColMethodNotes))
	dueNotes := StringValue(cell(row, f2ColDueNotes))

	amount, err := parseNumber(cell(row, f2ColAmount))
	if err != nil {
		return fmt.Errorf("payment amount: %w", err)
	}

	s.store.Lock()
	defer s.store.Unlock()

	unitID, seen := st.unitIDs[unitLabel]
	if !seen {
		apartment := &models.Apartment{
			ID:         uuid.NewString(),
			BuildingID: buildingID,
			UnitNumber: unitLabel,
		}
		if err := s.store.Apartments.Upsert(ctx, apartment); err != nil {
			return fmt.Errorf("create unit %q: %w", unitLabel, err)
		}
		tenant := &models.Tenant{ID: uuid.NewString(), Name: "مستأجر " + unitLabel}
		if err := s.store.Tenants.Upsert(ctx, tenant); err != nil {
			return fmt.Errorf("create tenant for %q: %w", unitLabel, err)
		}
		unitID = apartment.ID
		st.unitIDs[unitLabel] = unitID
		st.tenantIDs[unitID] = tenant.ID
		res.UnitsImported++
	}

	// A row carries valid lease data when it has money or a full period.
	if amount > 0 || (periodStart != "" && periodEnd != "") {
		leaseID := st.leaseIDs[unitID]
		if leaseID == "" {
			lease := &models.Lease{
				ID:         uuid.NewString(),
				UnitID:     unitID,
				TenantID:   st.tenantIDs[unitID],
				AnnualRent: amount,
				StartDate:  periodStart,
				EndDate:    periodEnd,
			}
			if err := s.store.Leases.Upsert(ctx, lease); err != nil {
				return fmt.Errorf("create lease for %q: %w", unitLabel, err)
			}
			st.leaseIDs[unitID] = lease.ID
		} else {
			lease, err := s.store.Leases.Get(ctx, leaseID)
			if err != nil {
				return fmt.Errorf("load lease for %q: %w", unitLabel, err)
			}
			if lease != nil && reconcileLease(lease, amount, periodStart, periodEnd) {
				if err := s.store.Leases.Upsert(ctx, lease); err != nil {
					return fmt.Errorf("update lease for %q: %w", unitLabel, err)
				}
			}
		}
	}

	leaseID := st.leaseIDs[unitID]
	if amount > 0 && leaseID != "" {
		st.payCounts[leaseID]++

		// Free-text due dates in the notes win over the period-end column.
		dueDate := DateFromText(dueNotes)
		if dueDate == "" {
			dueDate = periodEnd
		}

		status := inferStatusFromRow(methodNotes, dueNotes, paymentDate)
		payment := &models.Payment{
			ID:            uuid.NewString(),
			LeaseID:       leaseID,
			PaymentNumber: st.payCounts[leaseID],
			Amount:        amount,
			PeriodStart:   periodStart,
			PeriodEnd:     periodEnd,
			DueDate:       dueDate,
			Status:        status,
			Notes:         strings.TrimSpace(methodNotes + " " + dueNotes),
		}
		if status == models.PaymentPaid {
			payment.PaidDate = paymentDate
		}
		if err := s.store.Payments.Upsert(ctx, payment); err != nil {
			st.payCounts[leaseID]--
			return fmt.Errorf("create payment: %w", err)
		}
		res.PaymentsImported++
	}

	return nil
}

// reconcileLease merges one row's figures into an existing lease and
// reports whether anything improved. The lease accumulates the maximum
// rent and the most complete date range seen across all rows for the unit:
// a blank end date is filled in, an existing one is never overwritten, and
// rent only ever moves up.
func reconcileLease(lease *models.Lease, rent float64, start, end string) bool {
	changed := false
	if lease.EndDate == "" && end != "" {
		lease.EndDate = end
		changed = true
	}
	if lease.StartDate == "" && start != "" {
		lease.StartDate = start
		changed = true
	}
	if rent > lease.AnnualRent {
		lease.AnnualRent = rent
		changed = true
	}
	return changed
}
