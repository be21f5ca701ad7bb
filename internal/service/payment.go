package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"printshop/internal/model"
	"printshop/internal/repository"
)

type CreatePaymentInput struct {
	UserID     string
	PrintJobID *string
	Amount     float64
	Currency   string
	ExternalID string
}

// PaymentService records gateway transactions. The gateway itself is never
// called; it reports outcomes through HandleCallback.
type PaymentService interface {
	Create(ctx context.Context, in CreatePaymentInput) (*model.Payment, error)
	ListByUser(ctx context.Context, userID string) ([]model.Payment, error)
	// HandleCallback settles a pending payment once. Repeating the same
	// outcome is a no-op; reporting a different outcome is a conflict.
	HandleCallback(ctx context.Context, id, externalID string, status model.PaymentStatus) (*model.Payment, error)
}

type paymentService struct {
	payments repository.PaymentRepository
	jobs     repository.PrintJobRepository
	jobSvc   PrintJobService
	now      func() time.Time
}

func NewPaymentService(payments repository.PaymentRepository, jobs repository.PrintJobRepository, jobSvc PrintJobService) PaymentService {
	return &paymentService{payments: payments, jobs: jobs, jobSvc: jobSvc, now: time.Now}
}

func (s *paymentService) Create(ctx context.Context, in CreatePaymentInput) (*model.Payment, error) {
	if strings.TrimSpace(in.UserID) == "" {
		return nil, validationf("userId is required")
	}
	if in.Amount <= 0 {
		return nil, validationf("amount must be positive")
	}
	if in.Currency == "" {
		in.Currency = model.DefaultCurrency
	}
	in.Currency = strings.ToUpper(in.Currency)

	if in.PrintJobID != nil {
		job, err := s.jobs.FindByID(ctx, *in.PrintJobID)
		if err != nil {
			return nil, notFound(err, "print job")
		}
		if job.UserID != in.UserID {
			return nil, validationf("print job does not belong to the user")
		}
	}

	now := s.now().UTC()
	p, err := s.payments.Create(ctx, &model.Payment{
		ID:         uuid.NewString(),
		UserID:     in.UserID,
		PrintJobID: in.PrintJobID,
		Amount:     in.Amount,
		Currency:   in.Currency,
		ExternalID: in.ExternalID,
		Status:     model.PaymentPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		return nil, err
	}
	if p.PrintJobID != nil {
		if _, err := s.jobSvc.MarkPayment(ctx, *p.PrintJobID, p.ID, p.Status); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (s *paymentService) ListByUser(ctx context.Context, userID string) ([]model.Payment, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, validationf("userId is required")
	}
	return s.payments.ListByUser(ctx, userID)
}

func (s *paymentService) HandleCallback(ctx context.Context, id, externalID string, status model.PaymentStatus) (*model.Payment, error) {
	if !status.Terminal() {
		return nil, validationf("status must be completed or cancelled")
	}

	for attempt := 0; attempt < maxGuardedAttempts; attempt++ {
		p, err := s.payments.FindByID(ctx, id)
		if err != nil {
			return nil, notFound(err, "payment")
		}
		if p.Status == status {
			return p, nil
		}
		if p.Status.Terminal() {
			return nil, fmt.Errorf("%w: payment already %s", ErrConflict, p.Status)
		}

		previous := p.Status
		if externalID != "" {
			p.ExternalID = externalID
		}
		p.Status = status
		p.UpdatedAt = s.now().UTC()

		updated, err := s.payments.UpdateStatus(ctx, p, previous)
		if errors.Is(err, repository.ErrStale) {
			continue
		}
		if err != nil {
			return nil, notFound(err, "payment")
		}
		if updated.PrintJobID != nil {
			// the job may have been cancelled while the payment was open
			_, err := s.jobSvc.MarkPayment(ctx, *updated.PrintJobID, updated.ID, updated.Status)
			if err != nil && !errors.Is(err, ErrNotFound) {
				return nil, fmt.Errorf("update job payment: %w", err)
			}
		}
		return updated, nil
	}
	return nil, fmt.Errorf("%w: payment %s changed concurrently", ErrConflict, id)
}
