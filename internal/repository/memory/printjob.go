package memory

import (
	"context"
	"sync"
	"time"

	"printshop/internal/model"
	"printshop/internal/repository"
)

// PrintJobRepository is an in-memory repository.PrintJobRepository.
type PrintJobRepository struct {
	mu   sync.RWMutex
	seq  int64
	jobs map[string]entry[model.PrintJob]
}

func NewPrintJobRepository() *PrintJobRepository {
	return &PrintJobRepository{jobs: make(map[string]entry[model.PrintJob])}
}

var _ repository.PrintJobRepository = (*PrintJobRepository)(nil)

func (r *PrintJobRepository) Create(_ context.Context, job *model.PrintJob) (*model.PrintJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.jobs[job.ID]; ok {
		return nil, repository.ErrDuplicate
	}
	r.seq++
	r.jobs[job.ID] = entry[model.PrintJob]{v: *job, seq: r.seq}
	out := *job
	return &out, nil
}

func (r *PrintJobRepository) FindByID(_ context.Context, id string) (*model.PrintJob, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.jobs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := e.v
	return &out, nil
}

func (r *PrintJobRepository) ListByUser(_ context.Context, userID string) ([]model.PrintJob, error) {
	r.mu.RLock()
	var owned []entry[model.PrintJob]
	for _, e := range r.jobs {
		if e.v.UserID == userID {
			owned = append(owned, e)
		}
	}
	r.mu.RUnlock()

	return newestFirst(owned, func(j model.PrintJob) time.Time { return j.CreatedAt }), nil
}

func (r *PrintJobRepository) UpdateStatus(_ context.Context, job *model.PrintJob, from model.JobStatus) (*model.PrintJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.jobs[job.ID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if e.v.Status != from {
		return nil, repository.ErrStale
	}
	e.v.Status = job.Status
	e.v.UpdatedAt = job.UpdatedAt
	e.v.CompletedAt = job.CompletedAt
	r.jobs[job.ID] = e
	out := e.v
	return &out, nil
}

func (r *PrintJobRepository) SetPayment(_ context.Context, id, paymentID string, status model.PaymentStatus, at time.Time) (*model.PrintJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.jobs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	e.v.PaymentID = &paymentID
	e.v.PaymentStatus = &status
	e.v.UpdatedAt = at
	r.jobs[id] = e
	out := e.v
	return &out, nil
}

func (r *PrintJobRepository) Delete(_ context.Context, id string, from model.JobStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.jobs[id]
	if !ok {
		return repository.ErrNotFound
	}
	if e.v.Status != from {
		return repository.ErrStale
	}
	delete(r.jobs, id)
	return nil
}

func (r *PrintJobRepository) CountByStatus(_ context.Context) (map[model.JobStatus]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[model.JobStatus]int)
	for _, e := range r.jobs {
		counts[e.v.Status]++
	}
	return counts, nil
}
