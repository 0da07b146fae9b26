package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewPostgresStore wires the five pgx-backed repositories into a Store.
func NewPostgresStore(pool *pgxpool.Pool) *Store {
	return &Store{
		Buildings:  NewPostgresBuildingRepository(pool),
		Apartments: NewPostgresApartmentRepository(pool),
		Tenants:    NewPostgresTenantRepository(pool),
		Leases:     NewPostgresLeaseRepository(pool),
		Payments:   NewPostgresPaymentRepository(pool),
	}
}
