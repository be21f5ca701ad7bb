package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"printshop/internal/model"
	"printshop/internal/repository"
)

// PrinterPostgres is a PostgreSQL implementation of repository.PrinterRepository.
// Features are stored as a JSONB document.
type PrinterPostgres struct {
	db *sql.DB
}

func NewPrinterPostgres(db *sql.DB) *PrinterPostgres {
	return &PrinterPostgres{db: db}
}

var _ repository.PrinterRepository = (*PrinterPostgres)(nil)

const printerColumns = `id, name, address, latitude, longitude, is_open, features, created_at`

func scanPrinter(row rowScanner) (*model.Printer, error) {
	var (
		p        model.Printer
		features []byte
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Address, &p.Latitude, &p.Longitude, &p.IsOpen, &features, &p.CreatedAt); err != nil {
		return nil, translate(err)
	}
	if len(features) > 0 {
		if err := json.Unmarshal(features, &p.Features); err != nil {
			return nil, fmt.Errorf("decode printer features: %w", err)
		}
	}
	return &p, nil
}

func (r *PrinterPostgres) Create(ctx context.Context, p *model.Printer) (*model.Printer, error) {
	features, err := json.Marshal(p.Features)
	if err != nil {
		return nil, fmt.Errorf("encode printer features: %w", err)
	}
	const q = `
		INSERT INTO printers (` + printerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + printerColumns
	return scanPrinter(r.db.QueryRowContext(ctx, q, p.ID, p.Name, p.Address, p.Latitude, p.Longitude, p.IsOpen, features, p.CreatedAt))
}

func (r *PrinterPostgres) FindByID(ctx context.Context, id string) (*model.Printer, error) {
	const q = `SELECT ` + printerColumns + ` FROM printers WHERE id = $1`
	return scanPrinter(r.db.QueryRowContext(ctx, q, id))
}

func (r *PrinterPostgres) List(ctx context.Context) ([]model.Printer, error) {
	const q = `SELECT ` + printerColumns + ` FROM printers ORDER BY created_at ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	printers := make([]model.Printer, 0)
	for rows.Next() {
		p, err := scanPrinter(rows)
		if err != nil {
			return nil, err
		}
		printers = append(printers, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return printers, nil
}

func (r *PrinterPostgres) Update(ctx context.Context, p *model.Printer) (*model.Printer, error) {
	features, err := json.Marshal(p.Features)
	if err != nil {
		return nil, fmt.Errorf("encode printer features: %w", err)
	}
	const q = `
		UPDATE printers
		SET name = $2, address = $3, latitude = $4, longitude = $5, is_open = $6, features = $7
		WHERE id = $1
		RETURNING ` + printerColumns
	return scanPrinter(r.db.QueryRowContext(ctx, q, p.ID, p.Name, p.Address, p.Latitude, p.Longitude, p.IsOpen, features))
}
