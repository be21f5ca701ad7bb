package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"printshop/internal/model"
	"printshop/internal/repository"
)

// RegisterInput is the data accepted on sign-up.
type RegisterInput struct {
	Username string
	Email    string
	Name     string
	Password string
	Plan     model.Plan
}

// UpdateUserInput carries the mutable profile fields. Nil means unchanged.
type UpdateUserInput struct {
	Name *string
	Plan *model.Plan
}

type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*model.User, error)
	Get(ctx context.Context, id string) (*model.User, error)
	Update(ctx context.Context, id string, in UpdateUserInput) (*model.User, error)
}

type userService struct {
	repo repository.UserRepository
	now  func() time.Time
}

func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo, now: time.Now}
}

func (s *userService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if in.Username == "" || in.Email == "" {
		return nil, validationf("username and email are required")
	}
	if len(in.Password) < 8 {
		return nil, validationf("password must be at least 8 characters")
	}
	if in.Plan == "" {
		in.Plan = model.PlanFree
	}
	if !in.Plan.Valid() {
		return nil, validationf("unknown plan %q", in.Plan)
	}

	if _, err := s.repo.FindByEmail(ctx, in.Email); err == nil {
		return nil, fmt.Errorf("%w: email already registered", ErrConflict)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if _, err := s.repo.FindByUsername(ctx, in.Username); err == nil {
		return nil, fmt.Errorf("%w: username already taken", ErrConflict)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u, err := s.repo.Create(ctx, &model.User{
		ID:           uuid.NewString(),
		Username:     in.Username,
		Email:        in.Email,
		Name:         strings.TrimSpace(in.Name),
		Plan:         in.Plan,
		PasswordHash: string(hash),
		CreatedAt:    s.now().UTC(),
	})
	if errors.Is(err, repository.ErrDuplicate) {
		// lost a race with a concurrent registration
		return nil, fmt.Errorf("%w: user already exists", ErrConflict)
	}
	return u, err
}

func (s *userService) Get(ctx context.Context, id string) (*model.User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "user")
	}
	return u, nil
}

func (s *userService) Update(ctx context.Context, id string, in UpdateUserInput) (*model.User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "user")
	}
	if in.Name != nil {
		u.Name = strings.TrimSpace(*in.Name)
	}
	if in.Plan != nil {
		if !in.Plan.Valid() {
			return nil, validationf("unknown plan %q", *in.Plan)
		}
		u.Plan = *in.Plan
	}
	out, err := s.repo.Update(ctx, u)
	if err != nil {
		return nil, notFound(err, "user")
	}
	return out, nil
}

// CheckPassword reports whether password matches the user's stored hash.
func CheckPassword(u *model.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}
