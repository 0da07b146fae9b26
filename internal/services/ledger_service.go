package services

import (
	"context"
	"sort"
	"time"

	"rental-backend/internal/models"
	"rental-backend/internal/repositories"
	"rental-backend/internal/timeutil"
)

// LedgerService is the stateless aggregation layer over the ledger store.
// It reads full listings per call, recomputes payment status against
// "today" and assembles view models. Read paths never persist the derived
// status; MarkPaymentAsPaid is the only persisted status mutation.
type LedgerService struct {
	Store *repositories.Store
	now   func() time.Time
}

func NewLedgerService(store *repositories.Store) *LedgerService {
	return &LedgerService{Store: store, now: timeutil.Now}
}

// upcomingWindow is how far ahead the dashboard looks for pending payments.
const upcomingWindow = 30 * 24 * time.Hour

// DeriveStatus recomputes a payment's effective status for a view: a stored
// PENDING payment whose due date parses and lies strictly before today is
// OVERDUE. A malformed due date degrades to "not overdue" so the ledger
// stays renderable with dirty historical data.
func DeriveStatus(p *models.Payment, today time.Time) models.PaymentStatus {
	if p.Status != models.PaymentPending {
		return p.Status
	}
	due, err := timeutil.ParseISODate(p.DueDate)
	if err != nil {
		return p.Status
	}
	if due.Before(timeutil.StartOfDay(today)) {
		return models.PaymentOverdue
	}
	return p.Status
}

// LeaseActive reports whether the lease's end date parses and is not before
// today. Unparseable end dates mean "not active".
func LeaseActive(l *models.Lease, today time.Time) bool {
	end, err := timeutil.ParseISODate(l.EndDate)
	if err != nil {
		return false
	}
	return !end.Before(timeutil.StartOfDay(today))
}

// ledgerSnapshot is one full read of the store plus id indexes for joins.
type ledgerSnapshot struct {
	buildings  []*models.Building
	apartments []*models.Apartment
	tenants    []*models.Tenant
	leases     []*models.Lease
	payments   []*models.Payment

	buildingByID  map[string]*models.Building
	apartmentByID map[string]*models.Apartment
	tenantByID    map[string]*models.Tenant
	leaseByID     map[string]*models.Lease
}

func (s *LedgerService) snapshot(ctx context.Context) (*ledgerSnapshot, error) {
	var (
		snap ledgerSnapshot
		err  error
	)
	if snap.buildings, err = s.Store.Buildings.List(ctx); err != nil {
		return nil, err
	}
	if snap.apartments, err = s.Store.Apartments.List(ctx); err != nil {
		return nil, err
	}
	if snap.tenants, err = s.Store.Tenants.List(ctx); err != nil {
		return nil, err
	}
	if snap.leases, err = s.Store.Leases.List(ctx); err != nil {
		return nil, err
	}
	if snap.payments, err = s.Store.Payments.List(ctx); err != nil {
		return nil, err
	}

	snap.buildingByID = make(map[string]*models.Building, len(snap.buildings))
	for _, b := range snap.buildings {
		snap.buildingByID[b.ID] = b
	}
	snap.apartmentByID = make(map[string]*models.Apartment, len(snap.apartments))
	for _, a := range snap.apartments {
		snap.apartmentByID[a.ID] = a
	}
	snap.tenantByID = make(map[string]*models.Tenant, len(snap.tenants))
	for _, t := range snap.tenants {
		snap.tenantByID[t.ID] = t
	}
	snap.leaseByID = make(map[string]*models.Lease, len(snap.leases))
	for _, l := range snap.leases {
		snap.leaseByID[l.ID] = l
	}
	return &snap, nil
}

// paymentDetails joins one payment with its lease, apartment, building and
// tenant, with the status recomputed for the view.
func (snap *ledgerSnapshot) paymentDetails(p *models.Payment, today time.Time) models.PaymentWithDetails {
	view := models.PaymentWithDetails{Payment: *p}
	view.Payment.Status = DeriveStatus(p, today)

	lease := snap.leaseByID[p.LeaseID]
	if lease == nil {
		return view
	}
	view.Lease = lease
	view.Tenant = snap.tenantByID[lease.TenantID]
	if apt := snap.apartmentByID[lease.UnitID]; apt != nil {
		view.Apartment = apt
		view.Building = snap.buildingByID[apt.BuildingID]
	}
	return view
}

func sortByDueDate(payments []models.PaymentWithDetails) {
	sort.SliceStable(payments, func(i, j int) bool {
		return payments[i].Payment.DueDate < payments[j].Payment.DueDate
	})
}

// GetDashboardSummary builds the landing-page aggregate: entity counts,
// occupancy from active leases, the active monthly income, and the pending
// payments due in the next 30 days alongside everything already overdue.
func (s *LedgerService) GetDashboardSummary(ctx context.Context) (*models.DashboardSummary, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	today := timeutil.StartOfDay(s.now())
	summary := &models.DashboardSummary{
		TotalBuildings:   len(snap.buildings),
		TotalApartments:  len(snap.apartments),
		UpcomingPayments: []models.PaymentWithDetails{},
		OverduePayments:  []models.PaymentWithDetails{},
	}

	occupied := make(map[string]bool)
	for _, l := range snap.leases {
		if LeaseActive(l, today) {
			occupied[l.UnitID] = true
			summary.TotalMonthlyIncome += l.AnnualRent / 12
		}
	}
	for _, a := range snap.apartments {
		if occupied[a.ID] {
			summary.OccupiedUnits++
		} else {
			summary.VacantUnits++
		}
	}

	horizon := today.Add(upcomingWindow)
	for _, p := range snap.payments {
		switch DeriveStatus(p, today) {
		case models.PaymentOverdue:
			summary.OverduePayments = append(summary.OverduePayments, snap.paymentDetails(p, today))
		case models.PaymentPending:
			due, err := timeutil.ParseISODate(p.DueDate)
			if err != nil {
				continue
			}
			if !due.Before(today) && due.Before(horizon) {
				summary.UpcomingPayments = append(summary.UpcomingPayments, snap.paymentDetails(p, today))
			}
		}
	}
	sortByDueDate(summary.UpcomingPayments)
	sortByDueDate(summary.OverduePayments)

	return summary, nil
}

// GetApartmentsWithDetails returns every apartment (optionally one
// building's) joined with its building and its single current lease, which
// is the active lease with the latest end date. The view carries that
// lease's tenant and its payments ordered by payment number. Historical
// leases are kept in storage but not surfaced here.
func (s *LedgerService) GetApartmentsWithDetails(ctx context.Context, buildingID string) ([]models.ApartmentWithDetails, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	today := timeutil.StartOfDay(s.now())

	leasesByUnit := make(map[string][]*models.Lease)
	for _, l := range snap.leases {
		leasesByUnit[l.UnitID] = append(leasesByUnit[l.UnitID], l)
	}
	paymentsByLease := make(map[string][]models.Payment)
	for _, p := range snap.payments {
		cp := *p
		cp.Status = DeriveStatus(p, today)
		paymentsByLease[p.LeaseID] = append(paymentsByLease[p.LeaseID], cp)
	}

	views := []models.ApartmentWithDetails{}
	for _, a := range snap.apartments {
		if buildingID != "" && a.BuildingID != buildingID {
			continue
		}
		view := models.ApartmentWithDetails{
			Apartment: *a,
			Building:  snap.buildingByID[a.BuildingID],
		}
		if current := currentLease(leasesByUnit[a.ID], today); current != nil {
			view.Lease = current
			view.Tenant = snap.tenantByID[current.TenantID]
			payments := paymentsByLease[current.ID]
			sort.SliceStable(payments, func(i, j int) bool {
				return payments[i].PaymentNumber < payments[j].PaymentNumber
			})
			view.Payments = payments
		}
		views = append(views, view)
	}
	return views, nil
}

// currentLease picks the active lease with the latest end date; earlier
// entries win ties, matching insertion order.
func currentLease(leases []*models.Lease, today time.Time) *models.Lease {
	var best *models.Lease
	for _, l := range leases {
		if !LeaseActive(l, today) {
			continue
		}
		if best == nil || l.EndDate > best.EndDate {
			best = l
		}
	}
	return best
}

// GetPaymentsWithDetails returns every payment joined with its lease,
// apartment, building and tenant, status recomputed, optionally filtered
// by building id and/or (derived) status.
func (s *LedgerService) GetPaymentsWithDetails(ctx context.Context, buildingID string, status models.PaymentStatus) ([]models.PaymentWithDetails, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	today := timeutil.StartOfDay(s.now())

	views := []models.PaymentWithDetails{}
	for _, p := range snap.payments {
		view := snap.paymentDetails(p, today)
		if buildingID != "" && (view.Building == nil || view.Building.ID != buildingID) {
			continue
		}
		if status != "" && view.Payment.Status != status {
			continue
		}
		views = append(views, view)
	}
	return views, nil
}

// MarkPaymentAsPaid is the single explicit status transition: it persists
// status=PAID and the paid date, leaving every other field untouched.
// PAID is terminal. An unknown payment id is a no-op returning nil.
func (s *LedgerService) MarkPaymentAsPaid(ctx context.Context, paymentID, paidDate string) (*models.Payment, error) {
	s.Store.Lock()
	defer s.Store.Unlock()

	payment, err := s.Store.Payments.Get(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, nil
	}

	if paidDate == "" {
		paidDate = timeutil.FormatISODate(s.now())
	}
	payment.Status = models.PaymentPaid
	payment.PaidDate = paidDate

	if err := s.Store.Payments.Upsert(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// ClearLedger wipes all five collections in dependency order.
func (s *LedgerService) ClearLedger(ctx context.Context) error {
	return s.Store.ClearAll(ctx)
}
