package memory

import (
	"context"
	"sync"

	"printshop/internal/model"
	"printshop/internal/repository"
)

// ContactRepository is an in-memory repository.ContactRepository.
type ContactRepository struct {
	mu    sync.Mutex
	forms map[string]model.ContactForm
}

func NewContactRepository() *ContactRepository {
	return &ContactRepository{forms: make(map[string]model.ContactForm)}
}

var _ repository.ContactRepository = (*ContactRepository)(nil)

func (r *ContactRepository) Create(_ context.Context, f *model.ContactForm) (*model.ContactForm, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.forms[f.ID] = *f
	out := *f
	return &out, nil
}
