package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/shopspring/decimal"

	"printshop/internal/model"
	"printshop/internal/repository"
)

// PaymentPostgres is a PostgreSQL implementation of repository.PaymentRepository.
type PaymentPostgres struct {
	db *sql.DB
}

func NewPaymentPostgres(db *sql.DB) *PaymentPostgres {
	return &PaymentPostgres{db: db}
}

var _ repository.PaymentRepository = (*PaymentPostgres)(nil)

const paymentColumns = `id, user_id, print_job_id, amount, currency, external_id, status, created_at, updated_at`

func scanPayment(row rowScanner) (*model.Payment, error) {
	var p model.Payment
	if err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.PrintJobID,
		&p.Amount,
		&p.Currency,
		&p.ExternalID,
		&p.Status,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *PaymentPostgres) Create(ctx context.Context, p *model.Payment) (*model.Payment, error) {
	const q = `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + paymentColumns
	row := r.db.QueryRowContext(ctx, q,
		p.ID, p.UserID, p.PrintJobID, p.Amount, p.Currency, p.ExternalID, p.Status, p.CreatedAt, p.UpdatedAt)
	return scanPayment(row)
}

func (r *PaymentPostgres) FindByID(ctx context.Context, id string) (*model.Payment, error) {
	const q = `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`
	return scanPayment(r.db.QueryRowContext(ctx, q, id))
}

func (r *PaymentPostgres) ListByUser(ctx context.Context, userID string) ([]model.Payment, error) {
	const q = `SELECT ` + paymentColumns + ` FROM payments WHERE user_id = $1 ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := make([]model.Payment, 0)
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return payments, nil
}

// UpdateStatus settles the payment only while it still has status from.
func (r *PaymentPostgres) UpdateStatus(ctx context.Context, p *model.Payment, from model.PaymentStatus) (*model.Payment, error) {
	const q = `
		UPDATE payments
		SET external_id = $2, status = $3, updated_at = $4
		WHERE id = $1 AND status = $5
		RETURNING ` + paymentColumns
	updated, err := scanPayment(r.db.QueryRowContext(ctx, q, p.ID, p.ExternalID, p.Status, p.UpdatedAt, from))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, staleOrMissing(ctx, r.db, "payments", p.ID)
	}
	return updated, err
}

// SumCompleted totals completed payments in NUMERIC and rounds to cents.
func (r *PaymentPostgres) SumCompleted(ctx context.Context) (float64, error) {
	var total decimal.Decimal
	const q = `SELECT COALESCE(SUM(amount), 0) FROM payments WHERE status = $1`
	if err := r.db.QueryRowContext(ctx, q, model.PaymentCompleted).Scan(&total); err != nil {
		return 0, err
	}
	return total.Round(2).InexactFloat64(), nil
}
