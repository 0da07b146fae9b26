package repositories

import (
	"context"
	"errors"
	"fmt"

	"rental-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresApartmentRepository struct {
	DB *pgxpool.Pool
}

func NewPostgresApartmentRepository(db *pgxpool.Pool) *PostgresApartmentRepository {
	return &PostgresApartmentRepository{DB: db}
}

func (r *PostgresApartmentRepository) List(ctx context.Context) ([]*models.Apartment, error) {
	query := `
		SELECT id, building_id, unit_number, COALESCE(floor, ''), COALESCE(notes, '')
		FROM apartments
		ORDER BY building_id, unit_number
	`

	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apartments []*models.Apartment
	for rows.Next() {
		a := &models.Apartment{}
		if err := rows.Scan(&a.ID, &a.BuildingID, &a.UnitNumber, &a.Floor, &a.Notes); err != nil {
			return nil, err
		}
		apartments = append(apartments, a)
	}

	return apartments, rows.Err()
}

func (r *PostgresApartmentRepository) Get(ctx context.Context, id string) (*models.Apartment, error) {
	query := `
		SELECT id, building_id, unit_number, COALESCE(floor, ''), COALESCE(notes, '')
		FROM apartments
		WHERE id = $1
	`

	a := &models.Apartment{}
	err := r.DB.QueryRow(ctx, query, id).Scan(&a.ID, &a.BuildingID, &a.UnitNumber, &a.Floor, &a.Notes)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *PostgresApartmentRepository) Upsert(ctx context.Context, a *models.Apartment) error {
	query := `
		INSERT INTO apartments (id, building_id, unit_number, floor, notes)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			building_id = EXCLUDED.building_id,
			unit_number = EXCLUDED.unit_number,
			floor = EXCLUDED.floor,
			notes = EXCLUDED.notes
	`

	_, err := r.DB.Exec(ctx, query, a.ID, a.BuildingID, a.UnitNumber, a.Floor, a.Notes)
	if err != nil {
		return fmt.Errorf("failed to upsert apartment: %w", err)
	}
	return nil
}

func (r *PostgresApartmentRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.Exec(ctx, "DELETE FROM apartments WHERE id = $1", id)
	return err
}

func (r *PostgresApartmentRepository) DeleteAll(ctx context.Context) error {
	_, err := r.DB.Exec(ctx, "DELETE FROM apartments")
	return err
}
