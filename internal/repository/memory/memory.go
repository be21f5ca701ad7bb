// Package memory provides map-backed repositories for single-process
// deployments and tests. Every repository is safe for concurrent use; each
// guards its map with its own RWMutex so writes are serialized per store.
package memory

import (
	"context"
	"sort"
	"time"

	"printshop/internal/repository"
)

// NewStore returns a repository.Store whose repositories keep data in memory.
func NewStore() *repository.Store {
	return &repository.Store{
		Users:     NewUserRepository(),
		Documents: NewDocumentRepository(),
		PrintJobs: NewPrintJobRepository(),
		Printers:  NewPrinterRepository(),
		Payments:  NewPaymentRepository(),
		Contacts:  NewContactRepository(),
		Pinger:    pinger{},
	}
}

type pinger struct{}

func (pinger) PingContext(context.Context) error { return nil }

// entry wraps a stored value with its insertion sequence, used to break ties
// between records created within the same clock tick.
type entry[T any] struct {
	v   T
	seq int64
}

// newestFirst sorts entries by created time descending, then by insertion order descending.
func newestFirst[T any](items []entry[T], createdAt func(T) time.Time) []T {
	sort.Slice(items, func(i, j int) bool {
		ti, tj := createdAt(items[i].v), createdAt(items[j].v)
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return items[i].seq > items[j].seq
	})
	out := make([]T, 0, len(items))
	for _, it := range items {
		out = append(out, it.v)
	}
	return out
}
