package postgres

import (
	"context"
	"database/sql"

	"printshop/internal/model"
	"printshop/internal/repository"
)

type ContactPostgres struct {
	db *sql.DB
}

func NewContactPostgres(db *sql.DB) *ContactPostgres {
	return &ContactPostgres{db: db}
}

var _ repository.ContactRepository = (*ContactPostgres)(nil)

func (r *ContactPostgres) Create(ctx context.Context, f *model.ContactForm) (*model.ContactForm, error) {
	const q = `
		INSERT INTO contact_forms (id, name, email, subject, message, resolved, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, name, email, subject, message, resolved, created_at`
	var out model.ContactForm
	err := r.db.QueryRowContext(ctx, q, f.ID, f.Name, f.Email, f.Subject, f.Message, f.Resolved, f.CreatedAt).
		Scan(&out.ID, &out.Name, &out.Email, &out.Subject, &out.Message, &out.Resolved, &out.CreatedAt)
	if err != nil {
		return nil, translate(err)
	}
	return &out, nil
}
