package repository

import (
	"context"
	"errors"
	"time"

	"printshop/internal/model"
)

// Package repository contains data access layer abstractions.
// Implementations live in subpackages (memory, postgres) inside this directory
// and must translate their own "no rows" and unique-violation errors into
// ErrNotFound and ErrDuplicate.

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
	// ErrStale is returned by conditional writes when the record exists but
	// no longer has the expected status.
	ErrStale = errors.New("record changed concurrently")
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Store groups every repository backed by the same storage engine.
type Store struct {
	Users     UserRepository
	Documents DocumentRepository
	PrintJobs PrintJobRepository
	Printers  PrinterRepository
	Payments  PaymentRepository
	Contacts  ContactRepository
	Pinger    Pinger
}

// UserRepository persists user accounts.
type UserRepository interface {
	// Create inserts a user. It returns ErrDuplicate if the username or email is taken.
	Create(ctx context.Context, u *model.User) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	Update(ctx context.Context, u *model.User) (*model.User, error)
	Count(ctx context.Context) (int, error)
}

// PrintJobRepository persists print jobs. Status-guarded writes return
// ErrNotFound when the job is gone and ErrStale when its status moved on.
type PrintJobRepository interface {
	Create(ctx context.Context, job *model.PrintJob) (*model.PrintJob, error)
	FindByID(ctx context.Context, id string) (*model.PrintJob, error)
	// ListByUser returns the user's jobs, newest first.
	ListByUser(ctx context.Context, userID string) ([]model.PrintJob, error)
	// UpdateStatus writes the job's status, updated_at and completed_at, but
	// only while the stored status is still from.
	UpdateStatus(ctx context.Context, job *model.PrintJob, from model.JobStatus) (*model.PrintJob, error)
	// SetPayment writes only the payment columns.
	SetPayment(ctx context.Context, id, paymentID string, status model.PaymentStatus, at time.Time) (*model.PrintJob, error)
	// Delete removes a job whose stored status is still from.
	Delete(ctx context.Context, id string, from model.JobStatus) error
	CountByStatus(ctx context.Context) (map[model.JobStatus]int, error)
}

// PrinterRepository persists print locations.
type PrinterRepository interface {
	Create(ctx context.Context, p *model.Printer) (*model.Printer, error)
	FindByID(ctx context.Context, id string) (*model.Printer, error)
	List(ctx context.Context) ([]model.Printer, error)
	Update(ctx context.Context, p *model.Printer) (*model.Printer, error)
}

// PaymentRepository persists payments.
type PaymentRepository interface {
	Create(ctx context.Context, p *model.Payment) (*model.Payment, error)
	FindByID(ctx context.Context, id string) (*model.Payment, error)
	// ListByUser returns the user's payments, newest first.
	ListByUser(ctx context.Context, userID string) ([]model.Payment, error)
	// UpdateStatus writes the external id, status and updated_at while the
	// stored status is still from.
	UpdateStatus(ctx context.Context, p *model.Payment, from model.PaymentStatus) (*model.Payment, error)
	// SumCompleted returns the total amount of completed payments.
	SumCompleted(ctx context.Context) (float64, error)
}

// ContactRepository persists support requests.
type ContactRepository interface {
	Create(ctx context.Context, f *model.ContactForm) (*model.ContactForm, error)
}
