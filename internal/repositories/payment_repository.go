package repositories

import (
	"context"
	"errors"
	"fmt"

	"rental-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresPaymentRepository struct {
	DB *pgxpool.Pool
}

func NewPostgresPaymentRepository(db *pgxpool.Pool) *PostgresPaymentRepository {
	return &PostgresPaymentRepository{DB: db}
}

func (r *PostgresPaymentRepository) List(ctx context.Context) ([]*models.Payment, error) {
	query := `
		SELECT id, lease_id, payment_number, amount,
		       COALESCE(period_start, ''), COALESCE(period_end, ''),
		       COALESCE(due_date, ''), COALESCE(paid_date, ''),
		       status, COALESCE(notes, '')
		FROM payments
		ORDER BY lease_id, payment_number
	`

	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*models.Payment
	for rows.Next() {
		p := &models.Payment{}
		if err := rows.Scan(
			&p.ID,
			&p.LeaseID,
			&p.PaymentNumber,
			&p.Amount,
			&p.PeriodStart,
			&p.PeriodEnd,
			&p.DueDate,
			&p.PaidDate,
			&p.Status,
			&p.Notes,
		); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}

	return payments, rows.Err()
}

func (r *PostgresPaymentRepository) Get(ctx context.Context, id string) (*models.Payment, error) {
	query := `
		SELECT id, lease_id, payment_number, amount,
		       COALESCE(period_start, ''), COALESCE(period_end, ''),
		       COALESCE(due_date, ''), COALESCE(paid_date, ''),
		       status, COALESCE(notes, '')
		FROM payments
		WHERE id = $1
	`

	p := &models.Payment{}
	err := r.DB.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.LeaseID,
		&p.PaymentNumber,
		&p.Amount,
		&p.PeriodStart,
		&p.PeriodEnd,
		&p.DueDate,
		&p.PaidDate,
		&p.Status,
		&p.Notes,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PostgresPaymentRepository) Upsert(ctx context.Context, p *models.Payment) error {
	query := `
		INSERT INTO payments (id, lease_id, payment_number, amount, period_start, period_end,
		                      due_date, paid_date, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			lease_id = EXCLUDED.lease_id,
			payment_number = EXCLUDED.payment_number,
			amount = EXCLUDED.amount,
			period_start = EXCLUDED.period_start,
			period_end = EXCLUDED.period_end,
			due_date = EXCLUDED.due_date,
			paid_date = EXCLUDED.paid_date,
			status = EXCLUDED.status,
			notes = EXCLUDED.notes
	`

	_, err := r.DB.Exec(ctx, query,
		p.ID,
		p.LeaseID,
		p.PaymentNumber,
		p.Amount,
		p.PeriodStart,
		p.PeriodEnd,
		p.DueDate,
		p.PaidDate,
		p.Status,
		p.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert payment: %w", err)
	}
	return nil
}

func (r *PostgresPaymentRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.Exec(ctx, "DELETE FROM payments WHERE id = $1", id)
	return err
}

func (r *PostgresPaymentRepository) DeleteAll(ctx context.Context) error {
	_, err := r.DB.Exec(ctx, "DELETE FROM payments")
	return err
}
