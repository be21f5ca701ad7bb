package memory

import (
	"context"
	"sync"
	"time"

	"printshop/internal/model"
	"printshop/internal/repository"
)

// DocumentRepository is an in-memory repository.DocumentRepository.
type DocumentRepository struct {
	mu   sync.RWMutex
	seq  int64
	docs map[string]entry[model.Document]
}

func NewDocumentRepository() *DocumentRepository {
	return &DocumentRepository{docs: make(map[string]entry[model.Document])}
}

var _ repository.DocumentRepository = (*DocumentRepository)(nil)

func (r *DocumentRepository) Create(_ context.Context, doc *model.Document) (*model.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.docs[doc.ID]; ok {
		return nil, repository.ErrDuplicate
	}
	r.seq++
	r.docs[doc.ID] = entry[model.Document]{v: *doc, seq: r.seq}
	out := *doc
	return &out, nil
}

func (r *DocumentRepository) FindByID(_ context.Context, id string) (*model.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.docs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &e.v, nil
}

func (r *DocumentRepository) List(_ context.Context, pq repository.PageQuery) (*repository.PageResult[model.Document], error) {
	r.mu.RLock()
	all := make([]entry[model.Document], 0, len(r.docs))
	for _, e := range r.docs {
		all = append(all, e)
	}
	r.mu.RUnlock()

	sorted := newestFirst(all, documentCreatedAt)
	total := len(sorted)

	start := min(max(pq.Offset, 0), total)
	end := total
	if pq.Limit > 0 {
		end = min(start+pq.Limit, total)
	}

	return &repository.PageResult[model.Document]{
		Items: sorted[start:end],
		Total: total,
	}, nil
}

func (r *DocumentRepository) ListByUser(_ context.Context, userID string) ([]model.Document, error) {
	r.mu.RLock()
	var owned []entry[model.Document]
	for _, e := range r.docs {
		if e.v.UserID == userID {
			owned = append(owned, e)
		}
	}
	r.mu.RUnlock()

	return newestFirst(owned, documentCreatedAt), nil
}

func (r *DocumentRepository) Update(_ context.Context, doc *model.Document) (*model.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.docs[doc.ID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	e.v = *doc
	r.docs[doc.ID] = e
	out := *doc
	return &out, nil
}

func (r *DocumentRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.docs, id)
	return nil
}

func documentCreatedAt(d model.Document) time.Time { return d.CreatedAt }
