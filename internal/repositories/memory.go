package repositories

import (
	"context"
	"sort"
	"sync"

	"rental-backend/internal/models"
)

// In-memory implementation of the ledger store. Used by tests and as the
// fallback when no database is reachable (data lives for the process only).
// The inner RWMutex protects individual operations; multi-operation
// sequences are serialized by the Store-level lock.

type memoryLedger struct {
	mu         sync.RWMutex
	buildings  map[string]models.Building
	apartments map[string]models.Apartment
	tenants    map[string]models.Tenant
	leases     map[string]models.Lease
	payments   map[string]models.Payment
	seq        int
	inserted   map[string]int // id -> insertion order, for stable listings
}

// NewMemoryStore returns a Store backed entirely by process memory.
func NewMemoryStore() *Store {
	m := &memoryLedger{
		buildings:  make(map[string]models.Building),
		apartments: make(map[string]models.Apartment),
		tenants:    make(map[string]models.Tenant),
		leases:     make(map[string]models.Lease),
		payments:   make(map[string]models.Payment),
		inserted:   make(map[string]int),
	}
	return &Store{
		Buildings:  &memoryBuildings{m},
		Apartments: &memoryApartments{m},
		Tenants:    &memoryTenants{m},
		Leases:     &memoryLeases{m},
		Payments:   &memoryPayments{m},
	}
}

func (m *memoryLedger) track(id string) {
	if _, ok := m.inserted[id]; !ok {
		m.seq++
		m.inserted[id] = m.seq
	}
}

func (m *memoryLedger) order(id string) int {
	return m.inserted[id]
}

type memoryBuildings struct{ m *memoryLedger }

func (r *memoryBuildings) List(ctx context.Context) ([]*models.Building, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	out := make([]*models.Building, 0, len(r.m.buildings))
	for _, b := range r.m.buildings {
		cp := b
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return r.m.order(out[i].ID) < r.m.order(out[j].ID) })
	return out, nil
}

func (r *memoryBuildings) Get(ctx context.Context, id string) (*models.Building, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	if b, ok := r.m.buildings[id]; ok {
		cp := b
		return &cp, nil
	}
	return nil, nil
}

func (r *memoryBuildings) Upsert(ctx context.Context, b *models.Building) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.buildings[b.ID] = *b
	r.m.track(b.ID)
	return nil
}

func (r *memoryBuildings) Delete(ctx context.Context, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	delete(r.m.buildings, id)
	return nil
}

func (r *memoryBuildings) DeleteAll(ctx context.Context) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.buildings = make(map[string]models.Building)
	return nil
}

type memoryApartments struct{ m *memoryLedger }

func (r *memoryApartments) List(ctx context.Context) ([]*models.Apartment, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	out := make([]*models.Apartment, 0, len(r.m.apartments))
	for _, a := range r.m.apartments {
		cp := a
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return r.m.order(out[i].ID) < r.m.order(out[j].ID) })
	return out, nil
}

func (r *memoryApartments) Get(ctx context.Context, id string) (*models.Apartment, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	if a, ok := r.m.apartments[id]; ok {
		cp := a
		return &cp, nil
	}
	return nil, nil
}

func (r *memoryApartments) Upsert(ctx context.Context, a *models.Apartment) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.apartments[a.ID] = *a
	r.m.track(a.ID)
	return nil
}

func (r *memoryApartments) Delete(ctx context.Context, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	delete(r.m.apartments, id)
	return nil
}

func (r *memoryApartments) DeleteAll(ctx context.Context) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.apartments = make(map[string]models.Apartment)
	return nil
}

type memoryTenants struct{ m *memoryLedger }

func (r *memoryTenants) List(ctx context.Context) ([]*models.Tenant, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	out := make([]*models.Tenant, 0, len(r.m.tenants))
	for _, t := range r.m.tenants {
		cp := t
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return r.m.order(out[i].ID) < r.m.order(out[j].ID) })
	return out, nil
}

func (r *memoryTenants) Get(ctx context.Context, id string) (*models.Tenant, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	if t, ok := r.m.tenants[id]; ok {
		cp := t
		return &cp, nil
	}
	return nil, nil
}

func (r *memoryTenants) Upsert(ctx context.Context, t *models.Tenant) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.tenants[t.ID] = *t
	r.m.track(t.ID)
	return nil
}

func (r *memoryTenants) Delete(ctx context.Context, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	delete(r.m.tenants, id)
	return nil
}

func (r *memoryTenants) DeleteAll(ctx context.Context) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.tenants = make(map[string]models.Tenant)
	return nil
}

type memoryLeases struct{ m *memoryLedger }

func (r *memoryLeases) List(ctx context.Context) ([]*models.Lease, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	out := make([]*models.Lease, 0, len(r.m.leases))
	for _, l := range r.m.leases {
		cp := l
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return r.m.order(out[i].ID) < r.m.order(out[j].ID) })
	return out, nil
}

func (r *memoryLeases) Get(ctx context.Context, id string) (*models.Lease, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	if l, ok := r.m.leases[id]; ok {
		cp := l
		return &cp, nil
	}
	return nil, nil
}

func (r *memoryLeases) Upsert(ctx context.Context, l *models.Lease) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.leases[l.ID] = *l
	r.m.track(l.ID)
	return nil
}

func (r *memoryLeases) Delete(ctx context.Context, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	delete(r.m.leases, id)
	return nil
}

func (r *memoryLeases) DeleteAll(ctx context.Context) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.leases = make(map[string]models.Lease)
	return nil
}

type memoryPayments struct{ m *memoryLedger }

func (r *memoryPayments) List(ctx context.Context) ([]*models.Payment, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	out := make([]*models.Payment, 0, len(r.m.payments))
	for _, p := range r.m.payments {
		cp := p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return r.m.order(out[i].ID) < r.m.order(out[j].ID) })
	return out, nil
}

func (r *memoryPayments) Get(ctx context.Context, id string) (*models.Payment, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	if p, ok := r.m.payments[id]; ok {
		cp := p
		return &cp, nil
	}
	return nil, nil
}

func (r *memoryPayments) Upsert(ctx context.Context, p *models.Payment) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.payments[p.ID] = *p
	r.m.track(p.ID)
	return nil
}

func (r *memoryPayments) Delete(ctx context.Context, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	delete(r.m.payments, id)
	return nil
}

func (r *memoryPayments) DeleteAll(ctx context.Context) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.payments = make(map[string]models.Payment)
	return nil
}
