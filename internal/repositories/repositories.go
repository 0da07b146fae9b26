package repositories

import (
	"context"
	"sync"

	"rental-backend/internal/models"
)

// The ledger persistence boundary. Each entity gets list/get/upsert/delete
// plus a bulk delete; there is no query language, filtering happens in the
// service layer over full listings. Get returns (nil, nil) when the id is
// unknown.

type BuildingRepository interface {
	List(ctx context.Context) ([]*models.Building, error)
	Get(ctx context.Context, id string) (*models.Building, error)
	Upsert(ctx context.Context, b *models.Building) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
}

type ApartmentRepository interface {
	List(ctx context.Context) ([]*models.Apartment, error)
	Get(ctx context.Context, id string) (*models.Apartment, error)
	Upsert(ctx context.Context, a *models.Apartment) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
}

type TenantRepository interface {
	List(ctx context.Context) ([]*models.Tenant, error)
	Get(ctx context.Context, id string) (*models.Tenant, error)
	Upsert(ctx context.Context, t *models.Tenant) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
}

type LeaseRepository interface {
	List(ctx context.Context) ([]*models.Lease, error)
	Get(ctx context.Context, id string) (*models.Lease, error)
	Upsert(ctx context.Context, l *models.Lease) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
}

type PaymentRepository interface {
	List(ctx context.Context) ([]*models.Payment, error)
	Get(ctx context.Context, id string) (*models.Payment, error)
	Upsert(ctx context.Context, p *models.Payment) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
}

// Store bundles the five entity repositories behind a single write lock.
// Mutating read-then-decide-write sequences (import reconciliation, mark
// paid) take the lock for the duration of the sequence so two concurrent
// jobs cannot race on the same unit label.
type Store struct {
	mu sync.Mutex

	Buildings  BuildingRepository
	Apartments ApartmentRepository
	Tenants    TenantRepository
	Leases     LeaseRepository
	Payments   PaymentRepository
}

func (s *Store) Lock()   { s.mu.Lock() }
func (s *Store) Unlock() { s.mu.Unlock() }

// ClearAll wipes the entire ledger in dependency order:
// payments -> leases -> tenants -> units -> buildings.
func (s *Store) ClearAll(ctx context.Context) error {
	s.Lock()
	defer s.Unlock()

	if err := s.Payments.DeleteAll(ctx); err != nil {
		return err
	}
	if err := s.Leases.DeleteAll(ctx); err != nil {
		return err
	}
	if err := s.Tenants.DeleteAll(ctx); err != nil {
		return err
	}
	if err := s.Apartments.DeleteAll(ctx); err != nil {
		return err
	}
	return s.Buildings.DeleteAll(ctx)
}
