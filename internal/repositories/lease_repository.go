package repositories

import (
	"context"
	"errors"
	"fmt"

	"rental-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresLeaseRepository struct {
	DB *pgxpool.Pool
}

func NewPostgresLeaseRepository(db *pgxpool.Pool) *PostgresLeaseRepository {
	return &PostgresLeaseRepository{DB: db}
}

func (r *PostgresLeaseRepository) List(ctx context.Context) ([]*models.Lease, error) {
	query := `
		SELECT id, unit_id, tenant_id, annual_rent,
		       COALESCE(start_date, ''), COALESCE(end_date, ''), COALESCE(notes, '')
		FROM leases
		ORDER BY unit_id, end_date
	`

	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leases []*models.Lease
	for rows.Next() {
		l := &models.Lease{}
		if err := rows.Scan(&l.ID, &l.UnitID, &l.TenantID, &l.AnnualRent, &l.StartDate, &l.EndDate, &l.Notes); err != nil {
			return nil, err
		}
		leases = append(leases, l)
	}

	return leases, rows.Err()
}

func (r *PostgresLeaseRepository) Get(ctx context.Context, id string) (*models.Lease, error) {
	query := `
		SELECT id, unit_id, tenant_id, annual_rent,
		       COALESCE(start_date, ''), COALESCE(end_date, ''), COALESCE(notes, '')
		FROM leases
		WHERE id = $1
	`

	l := &models.Lease{}
	err := r.DB.QueryRow(ctx, query, id).Scan(&l.ID, &l.UnitID, &l.TenantID, &l.AnnualRent, &l.StartDate, &l.EndDate, &l.Notes)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (r *PostgresLeaseRepository) Upsert(ctx context.Context, l *models.Lease) error {
	query := `
		INSERT INTO leases (id, unit_id, tenant_id, annual_rent, start_date, end_date, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			unit_id = EXCLUDED.unit_id,
			tenant_id = EXCLUDED.tenant_id,
			annual_rent = EXCLUDED.annual_rent,
			start_date = EXCLUDED.start_date,
			end_date = EXCLUDED.end_date,
			notes = EXCLUDED.notes
	`

	_, err := r.DB.Exec(ctx, query, l.ID, l.UnitID, l.TenantID, l.AnnualRent, l.StartDate, l.EndDate, l.Notes)
	if err != nil {
		return fmt.Errorf("failed to upsert lease: %w", err)
	}
	return nil
}

func (r *PostgresLeaseRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.Exec(ctx, "DELETE FROM leases WHERE id = $1", id)
	return err
}

func (r *PostgresLeaseRepository) DeleteAll(ctx context.Context) error {
	_, err := r.DB.Exec(ctx, "DELETE FROM leases")
	return err
}
