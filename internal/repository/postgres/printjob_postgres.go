package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"printshop/internal/model"
	"printshop/internal/repository"
)

// PrintJobPostgres is a PostgreSQL implementation of repository.PrintJobRepository.
type PrintJobPostgres struct {
	db *sql.DB
}

func NewPrintJobPostgres(db *sql.DB) *PrintJobPostgres {
	return &PrintJobPostgres{db: db}
}

var _ repository.PrintJobRepository = (*PrintJobPostgres)(nil)

const printJobColumns = `id, user_id, document_id, printer_id, token_type, status,
	copies, color_mode, paper_size, orientation, sides, quality,
	print_cost, token_fee, cost, payment_id, payment_status,
	created_at, updated_at, completed_at`

func scanPrintJob(row rowScanner) (*model.PrintJob, error) {
	var j model.PrintJob
	if err := row.Scan(
		&j.ID,
		&j.UserID,
		&j.DocumentID,
		&j.PrinterID,
		&j.TokenType,
		&j.Status,
		&j.Settings.Copies,
		&j.Settings.ColorMode,
		&j.Settings.PaperSize,
		&j.Settings.Orientation,
		&j.Settings.Sides,
		&j.Settings.Quality,
		&j.PrintCost,
		&j.TokenFee,
		&j.Cost,
		&j.PaymentID,
		&j.PaymentStatus,
		&j.CreatedAt,
		&j.UpdatedAt,
		&j.CompletedAt,
	); err != nil {
		return nil, translate(err)
	}
	return &j, nil
}

func (r *PrintJobPostgres) Create(ctx context.Context, job *model.PrintJob) (*model.PrintJob, error) {
	const q = `
		INSERT INTO print_jobs (` + printJobColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		RETURNING ` + printJobColumns
	row := r.db.QueryRowContext(ctx, q,
		job.ID,
		job.UserID,
		job.DocumentID,
		job.PrinterID,
		job.TokenType,
		job.Status,
		job.Settings.Copies,
		job.Settings.ColorMode,
		job.Settings.PaperSize,
		job.Settings.Orientation,
		job.Settings.Sides,
		job.Settings.Quality,
		job.PrintCost,
		job.TokenFee,
		job.Cost,
		job.PaymentID,
		job.PaymentStatus,
		job.CreatedAt,
		job.UpdatedAt,
		job.CompletedAt,
	)
	return scanPrintJob(row)
}

func (r *PrintJobPostgres) FindByID(ctx context.Context, id string) (*model.PrintJob, error) {
	const q = `SELECT ` + printJobColumns + ` FROM print_jobs WHERE id = $1`
	return scanPrintJob(r.db.QueryRowContext(ctx, q, id))
}

func (r *PrintJobPostgres) ListByUser(ctx context.Context, userID string) ([]model.PrintJob, error) {
	const q = `SELECT ` + printJobColumns + ` FROM print_jobs WHERE user_id = $1 ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := make([]model.PrintJob, 0)
	for rows.Next() {
		j, err := scanPrintJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return jobs, nil
}

// UpdateStatus moves the job only if no other writer changed its status
// since it was read.
func (r *PrintJobPostgres) UpdateStatus(ctx context.Context, job *model.PrintJob, from model.JobStatus) (*model.PrintJob, error) {
	const q = `
		UPDATE print_jobs
		SET status = $2, updated_at = $3, completed_at = $4
		WHERE id = $1 AND status = $5
		RETURNING ` + printJobColumns
	row := r.db.QueryRowContext(ctx, q, job.ID, job.Status, job.UpdatedAt, job.CompletedAt, from)
	updated, err := scanPrintJob(row)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, staleOrMissing(ctx, r.db, "print_jobs", job.ID)
	}
	return updated, err
}

func (r *PrintJobPostgres) SetPayment(ctx context.Context, id, paymentID string, status model.PaymentStatus, at time.Time) (*model.PrintJob, error) {
	const q = `
		UPDATE print_jobs
		SET payment_id = $2, payment_status = $3, updated_at = $4
		WHERE id = $1
		RETURNING ` + printJobColumns
	return scanPrintJob(r.db.QueryRowContext(ctx, q, id, paymentID, status, at))
}

func (r *PrintJobPostgres) Delete(ctx context.Context, id string, from model.JobStatus) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM print_jobs WHERE id = $1 AND status = $2`, id, from)
	if err != nil {
		return err
	}
	err = requireAffected(res)
	if errors.Is(err, repository.ErrNotFound) {
		return staleOrMissing(ctx, r.db, "print_jobs", id)
	}
	return err
}

func (r *PrintJobPostgres) CountByStatus(ctx context.Context) (map[model.JobStatus]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM print_jobs GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[model.JobStatus]int)
	for rows.Next() {
		var (
			status model.JobStatus
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}
