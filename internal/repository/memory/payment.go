package memory

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"printshop/internal/model"
	"printshop/internal/repository"
)

// PaymentRepository is an in-memory repository.PaymentRepository.
type PaymentRepository struct {
	mu       sync.RWMutex
	seq      int64
	payments map[string]entry[model.Payment]
}

func NewPaymentRepository() *PaymentRepository {
	return &PaymentRepository{payments: make(map[string]entry[model.Payment])}
}

var _ repository.PaymentRepository = (*PaymentRepository)(nil)

func (r *PaymentRepository) Create(_ context.Context, p *model.Payment) (*model.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.payments[p.ID]; ok {
		return nil, repository.ErrDuplicate
	}
	r.seq++
	r.payments[p.ID] = entry[model.Payment]{v: *p, seq: r.seq}
	out := *p
	return &out, nil
}

func (r *PaymentRepository) FindByID(_ context.Context, id string) (*model.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.payments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := e.v
	return &out, nil
}

func (r *PaymentRepository) ListByUser(_ context.Context, userID string) ([]model.Payment, error) {
	r.mu.RLock()
	var owned []entry[model.Payment]
	for _, e := range r.payments {
		if e.v.UserID == userID {
			owned = append(owned, e)
		}
	}
	r.mu.RUnlock()

	return newestFirst(owned, func(p model.Payment) time.Time { return p.CreatedAt }), nil
}

func (r *PaymentRepository) UpdateStatus(_ context.Context, p *model.Payment, from model.PaymentStatus) (*model.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.payments[p.ID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if e.v.Status != from {
		return nil, repository.ErrStale
	}
	e.v.ExternalID = p.ExternalID
	e.v.Status = p.Status
	e.v.UpdatedAt = p.UpdatedAt
	r.payments[p.ID] = e
	out := e.v
	return &out, nil
}

func (r *PaymentRepository) SumCompleted(_ context.Context) (float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sum := decimal.Zero
	for _, e := range r.payments {
		if e.v.Status == model.PaymentCompleted {
			sum = sum.Add(decimal.NewFromFloat(e.v.Amount))
		}
	}
	return sum.Round(2).InexactFloat64(), nil
}
