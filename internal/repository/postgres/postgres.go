package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"printshop/internal/repository"
)

// uniqueViolation is the SQLSTATE for unique constraint violations.
const uniqueViolation = "23505"

// NewStore returns a repository.Store whose repositories share db.
func NewStore(db *sql.DB) *repository.Store {
	return &repository.Store{
		Users:     NewUserPostgres(db),
		Documents: NewDocumentPostgres(db),
		PrintJobs: NewPrintJobPostgres(db),
		Printers:  NewPrinterPostgres(db),
		Payments:  NewPaymentPostgres(db),
		Contacts:  NewContactPostgres(db),
		Pinger:    db,
	}
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// translate maps driver errors onto repository sentinel errors.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return repository.ErrDuplicate
	}
	return err
}

// requireAffected returns ErrNotFound when an UPDATE or DELETE touched no rows.
func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// staleOrMissing explains a status-guarded write that matched no row.
func staleOrMissing(ctx context.Context, db *sql.DB, table, id string) error {
	var exists bool
	q := `SELECT EXISTS (SELECT 1 FROM ` + table + ` WHERE id = $1)`
	if err := db.QueryRowContext(ctx, q, id).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return repository.ErrStale
	}
	return repository.ErrNotFound
}
