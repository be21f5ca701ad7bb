package service

import (
	"errors"
	"fmt"

	"printshop/internal/repository"
)

// Error kinds. Services wrap them with context; the HTTP layer maps each
// kind onto a status code with errors.Is.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrUpstream   = errors.New("upstream unavailable")

	// ErrInvalidTransition is a conflict raised by the job lifecycle.
	ErrInvalidTransition = fmt.Errorf("%w: invalid status transition", ErrConflict)
)

func validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// notFound maps repository.ErrNotFound onto ErrNotFound with the entity
// name; other errors pass through.
func notFound(err error, entity string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%s %w", entity, ErrNotFound)
	}
	return err
}
