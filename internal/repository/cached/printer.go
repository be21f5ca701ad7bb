// Package cached decorates repositories with a short-lived in-process cache.
package cached

import (
	"context"
	"slices"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"printshop/internal/model"
	"printshop/internal/repository"
)

const catalogueKey = "printers:all"

// PrinterRepository caches the printer catalogue read by List and FindByID.
// Writes go straight to the wrapped repository and flush the cache, so a
// reader sees its own changes immediately.
type PrinterRepository struct {
	next  repository.PrinterRepository
	cache *gocache.Cache
}

func NewPrinterRepository(next repository.PrinterRepository, ttl time.Duration) *PrinterRepository {
	return &PrinterRepository{
		next:  next,
		cache: gocache.New(ttl, 2*ttl),
	}
}

var _ repository.PrinterRepository = (*PrinterRepository)(nil)

func (r *PrinterRepository) List(ctx context.Context) ([]model.Printer, error) {
	if v, ok := r.cache.Get(catalogueKey); ok {
		return slices.Clone(v.([]model.Printer)), nil
	}
	printers, err := r.next.List(ctx)
	if err != nil {
		return nil, err
	}
	r.cache.SetDefault(catalogueKey, slices.Clone(printers))
	return printers, nil
}

func (r *PrinterRepository) FindByID(ctx context.Context, id string) (*model.Printer, error) {
	key := "printer:" + id
	if v, ok := r.cache.Get(key); ok {
		p := v.(model.Printer)
		return &p, nil
	}
	p, err := r.next.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.cache.SetDefault(key, *p)
	return p, nil
}

func (r *PrinterRepository) Create(ctx context.Context, p *model.Printer) (*model.Printer, error) {
	out, err := r.next.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	r.cache.Flush()
	return out, nil
}

func (r *PrinterRepository) Update(ctx context.Context, p *model.Printer) (*model.Printer, error) {
	out, err := r.next.Update(ctx, p)
	if err != nil {
		return nil, err
	}
	r.cache.Flush()
	return out, nil
}
