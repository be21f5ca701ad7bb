package memory

import (
	"context"
	"sync"

	"printshop/internal/model"
	"printshop/internal/repository"
)

// PrinterRepository is an in-memory repository.PrinterRepository.
// List returns printers in insertion order.
type PrinterRepository struct {
	mu       sync.RWMutex
	order    []string
	printers map[string]model.Printer
}

func NewPrinterRepository() *PrinterRepository {
	return &PrinterRepository{printers: make(map[string]model.Printer)}
}

var _ repository.PrinterRepository = (*PrinterRepository)(nil)

func (r *PrinterRepository) Create(_ context.Context, p *model.Printer) (*model.Printer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.printers[p.ID]; ok {
		return nil, repository.ErrDuplicate
	}
	r.printers[p.ID] = *p
	r.order = append(r.order, p.ID)
	out := *p
	return &out, nil
}

func (r *PrinterRepository) FindByID(_ context.Context, id string) (*model.Printer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.printers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (r *PrinterRepository) List(_ context.Context) ([]model.Printer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Printer, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.printers[id])
	}
	return out, nil
}

func (r *PrinterRepository) Update(_ context.Context, p *model.Printer) (*model.Printer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.printers[p.ID]; !ok {
		return nil, repository.ErrNotFound
	}
	r.printers[p.ID] = *p
	out := *p
	return &out, nil
}
