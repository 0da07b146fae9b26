package repositories

import (
	"context"
	"errors"
	"fmt"

	"rental-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresTenantRepository struct {
	DB *pgxpool.Pool
}

func NewPostgresTenantRepository(db *pgxpool.Pool) *PostgresTenantRepository {
	return &PostgresTenantRepository{DB: db}
}

func (r *PostgresTenantRepository) List(ctx context.Context) ([]*models.Tenant, error) {
	query := `
		SELECT id, name, COALESCE(phone, ''), COALESCE(email, ''),
		       COALESCE(national_id, ''), COALESCE(notes, '')
		FROM tenants
		ORDER BY name
	`

	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tenants []*models.Tenant
	for rows.Next() {
		t := &models.Tenant{}
		if err := rows.Scan(&t.ID, &t.Name, &t.Phone, &t.Email, &t.NationalID, &t.Notes); err != nil {
			return nil, err
		}
		tenants = append(tenants, t)
	}

	return tenants, rows.Err()
}

func (r *PostgresTenantRepository) Get(ctx context.Context, id string) (*models.Tenant, error) {
	query := `
		SELECT id, name, COALESCE(phone, ''), COALESCE(email, ''),
		       COALESCE(national_id, ''), COALESCE(notes, '')
		FROM tenants
		WHERE id = $1
	`

	t := &models.Tenant{}
	err := r.DB.QueryRow(ctx, query, id).Scan(&t.ID, &t.Name, &t.Phone, &t.Email, &t.NationalID, &t.Notes)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *PostgresTenantRepository) Upsert(ctx context.Context, t *models.Tenant) error {
	query := `
		INSERT INTO tenants (id, name, phone, email, national_id, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			phone = EXCLUDED.phone,
			email = EXCLUDED.email,
			national_id = EXCLUDED.national_id,
			notes = EXCLUDED.notes
	`

	_, err := r.DB.Exec(ctx, query, t.ID, t.Name, t.Phone, t.Email, t.NationalID, t.Notes)
	if err != nil {
		return fmt.Errorf("failed to upsert tenant: %w", err)
	}
	return nil
}

func (r *PostgresTenantRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.Exec(ctx, "DELETE FROM tenants WHERE id = $1", id)
	return err
}

func (r *PostgresTenantRepository) DeleteAll(ctx context.Context) error {
	_, err := r.DB.Exec(ctx, "DELETE FROM tenants")
	return err
}
