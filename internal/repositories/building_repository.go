package repositories

import (
	"context"
	"errors"
	"fmt"

	"rental-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresBuildingRepository struct {
	DB *pgxpool.Pool
}

func NewPostgresBuildingRepository(db *pgxpool.Pool) *PostgresBuildingRepository {
	return &PostgresBuildingRepository{DB: db}
}

func (r *PostgresBuildingRepository) List(ctx context.Context) ([]*models.Building, error) {
	query := `
		SELECT id, name, COALESCE(address, ''), created_at
		FROM buildings
		ORDER BY created_at, name
	`

	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var buildings []*models.Building
	for rows.Next() {
		b := &models.Building{}
		if err := rows.Scan(&b.ID, &b.Name, &b.Address, &b.CreatedAt); err != nil {
			return nil, err
		}
		buildings = append(buildings, b)
	}

	return buildings, rows.Err()
}

func (r *PostgresBuildingRepository) Get(ctx context.Context, id string) (*models.Building, error) {
	query := `
		SELECT id, name, COALESCE(address, ''), created_at
		FROM buildings
		WHERE id = $1
	`

	b := &models.Building{}
	err := r.DB.QueryRow(ctx, query, id).Scan(&b.ID, &b.Name, &b.Address, &b.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *PostgresBuildingRepository) Upsert(ctx context.Context, b *models.Building) error {
	query := `
		INSERT INTO buildings (id, name, address, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			address = EXCLUDED.address,
			created_at = EXCLUDED.created_at
	`

	_, err := r.DB.Exec(ctx, query, b.ID, b.Name, b.Address, b.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert building: %w", err)
	}
	return nil
}

func (r *PostgresBuildingRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.Exec(ctx, "DELETE FROM buildings WHERE id = $1", id)
	return err
}

func (r *PostgresBuildingRepository) DeleteAll(ctx context.Context) error {
	_, err := r.DB.Exec(ctx, "DELETE FROM buildings")
	return err
}
