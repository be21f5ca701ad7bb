package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"printshop/internal/model"
	"printshop/internal/repository"
)

type ContactInput struct {
	Name    string
	Email   string
	Subject string
	Message string
}

type ContactService interface {
	Submit(ctx context.Context, in ContactInput) (*model.ContactForm, error)
}

type contactService struct {
	repo     repository.ContactRepository
	validate *validator.Validate
	now      func() time.Time
}

func NewContactService(repo repository.ContactRepository) ContactService {
	return &contactService{repo: repo, validate: validator.New(), now: time.Now}
}

func (s *contactService) Submit(ctx context.Context, in ContactInput) (*model.ContactForm, error) {
	f := &model.ContactForm{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(in.Name),
		Email:     strings.TrimSpace(in.Email),
		Subject:   strings.TrimSpace(in.Subject),
		Message:   strings.TrimSpace(in.Message),
		CreatedAt: s.now().UTC(),
	}
	if f.Name == "" || f.Subject == "" || f.Message == "" {
		return nil, validationf("name, subject and message are required")
	}
	if err := s.validate.Var(f.Email, "required,email"); err != nil {
		return nil, validationf("invalid email address")
	}
	return s.repo.Create(ctx, f)
}
