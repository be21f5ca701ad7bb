package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"printshop/internal/events"
	"printshop/internal/model"
	"printshop/internal/pricing"
	"printshop/internal/repository"
)

// MaxCopies bounds the copies requested for a single job.
const MaxCopies = 100

// maxGuardedAttempts bounds how often a status-guarded write is retried when
// another process changes the record between the read and the write.
const maxGuardedAttempts = 3

// CreatePrintJobInput is a request to print one of the user's documents.
type CreatePrintJobInput struct {
	UserID     string
	DocumentID string
	PrinterID  *string
	TokenType  model.TokenType
	Settings   model.PrintSettings
}

// PrintJobService tracks print jobs through their lifecycle:
// pending -> printing|processing -> ready -> completed, with error reachable
// from any state that is not terminal.
type PrintJobService interface {
	Create(ctx context.Context, in CreatePrintJobInput) (*model.PrintJob, error)
	ListByUser(ctx context.Context, userID string) ([]model.PrintJob, error)
	Get(ctx context.Context, id string) (*model.PrintJob, error)
	// UpdateStatus moves a job forward. Setting the current status again is a
	// no-op; moving backwards or out of a terminal state is ErrInvalidTransition.
	UpdateStatus(ctx context.Context, id string, status model.JobStatus) (*model.PrintJob, error)
	// Delete cancels a job that has not reached ready yet by removing it.
	Delete(ctx context.Context, id string) error
	// MarkPayment records the payment attached to a job.
	MarkPayment(ctx context.Context, id, paymentID string, status model.PaymentStatus) (*model.PrintJob, error)
}

type printJobService struct {
	jobs      repository.PrintJobRepository
	documents repository.DocumentRepository
	printers  repository.PrinterRepository
	publisher events.Publisher
	log       *slog.Logger
	now       func() time.Time
}

func NewPrintJobService(
	jobs repository.PrintJobRepository,
	documents repository.DocumentRepository,
	printers repository.PrinterRepository,
	publisher events.Publisher,
	log *slog.Logger,
) PrintJobService {
	if publisher == nil {
		publisher = events.Noop{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &printJobService{
		jobs:      jobs,
		documents: documents,
		printers:  printers,
		publisher: publisher,
		log:       log,
		now:       time.Now,
	}
}

// ValidateSettings checks every print option against its allowed values.
func ValidateSettings(s model.PrintSettings) error {
	switch {
	case s.Copies < 1 || s.Copies > MaxCopies:
		return validationf("copies must be between 1 and %d", MaxCopies)
	case !s.ColorMode.Valid():
		return validationf("unknown color mode %q", s.ColorMode)
	case !s.PaperSize.Valid():
		return validationf("unknown paper size %q", s.PaperSize)
	case !s.Orientation.Valid():
		return validationf("unknown orientation %q", s.Orientation)
	case !s.Sides.Valid():
		return validationf("unknown sides %q", s.Sides)
	case !s.Quality.Valid():
		return validationf("unknown quality %q", s.Quality)
	}
	return nil
}

func (s *printJobService) Create(ctx context.Context, in CreatePrintJobInput) (*model.PrintJob, error) {
	if strings.TrimSpace(in.UserID) == "" {
		return nil, validationf("userId is required")
	}
	if in.TokenType == "" {
		in.TokenType = model.TokenNormal
	}
	if !in.TokenType.Valid() {
		return nil, validationf("unknown token type %q", in.TokenType)
	}
	if err := ValidateSettings(in.Settings); err != nil {
		return nil, err
	}

	doc, err := s.documents.FindByID(ctx, in.DocumentID)
	if err != nil {
		return nil, notFound(err, "document")
	}
	if doc.UserID != in.UserID {
		return nil, validationf("document does not belong to the user")
	}
	if in.PrinterID != nil {
		if _, err := s.printers.FindByID(ctx, *in.PrinterID); err != nil {
			return nil, notFound(err, "printer")
		}
	}
	if err := pricing.CheckTokenLimit(doc.EstimatedPages, in.TokenType); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	quote := pricing.Quote(doc.EstimatedPages, in.Settings, in.TokenType)
	now := s.now().UTC()
	job, err := s.jobs.Create(ctx, &model.PrintJob{
		ID:         uuid.NewString(),
		UserID:     in.UserID,
		DocumentID: doc.ID,
		PrinterID:  in.PrinterID,
		TokenType:  in.TokenType,
		Status:     model.JobPending,
		Settings:   in.Settings,
		PrintCost:  quote.PrintCost,
		TokenFee:   quote.TokenFee,
		Cost:       quote.Total,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, job, "")
	return job, nil
}

func (s *printJobService) ListByUser(ctx context.Context, userID string) ([]model.PrintJob, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, validationf("userId is required")
	}
	return s.jobs.ListByUser(ctx, userID)
}

func (s *printJobService) Get(ctx context.Context, id string) (*model.PrintJob, error) {
	job, err := s.jobs.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "print job")
	}
	return job, nil
}

func (s *printJobService) UpdateStatus(ctx context.Context, id string, status model.JobStatus) (*model.PrintJob, error) {
	if !status.Valid() {
		return nil, validationf("unknown status %q", status)
	}

	for attempt := 0; attempt < maxGuardedAttempts; attempt++ {
		job, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if job.Status == status {
			return job, nil
		}
		if !job.Status.CanTransition(status) {
			return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, job.Status, status)
		}

		previous := job.Status
		now := s.now().UTC()
		job.Status = status
		job.UpdatedAt = now
		if status == model.JobCompleted {
			job.CompletedAt = &now
		}

		updated, err := s.jobs.UpdateStatus(ctx, job, previous)
		if errors.Is(err, repository.ErrStale) {
			continue
		}
		if err != nil {
			return nil, notFound(err, "print job")
		}

		if status == model.JobCompleted {
			if err := s.markPrinted(ctx, updated.DocumentID, now); err != nil {
				s.log.WarnContext(ctx, "document_print_stamp_failed", "job_id", id, "document_id", updated.DocumentID, "error", err)
			}
		}
		s.publish(ctx, updated, previous)
		return updated, nil
	}
	return nil, fmt.Errorf("%w: print job %s changed concurrently", ErrConflict, id)
}

// markPrinted stamps the document's last print time. A document deleted
// since the job was booked is skipped.
func (s *printJobService) markPrinted(ctx context.Context, documentID string, at time.Time) error {
	doc, err := s.documents.FindByID(ctx, documentID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	doc.LastPrintedAt = &at
	if _, err := s.documents.Update(ctx, doc); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	return nil
}

func (s *printJobService) Delete(ctx context.Context, id string) error {
	for attempt := 0; attempt < maxGuardedAttempts; attempt++ {
		job, err := s.Get(ctx, id)
		if err != nil {
			return err
		}
		if !job.Status.Cancellable() {
			return fmt.Errorf("%w: a %s job can no longer be cancelled", ErrConflict, job.Status)
		}
		err = s.jobs.Delete(ctx, id, job.Status)
		if errors.Is(err, repository.ErrStale) {
			continue
		}
		if err != nil {
			return notFound(err, "print job")
		}
		s.log.InfoContext(ctx, "print_job_cancelled", "job_id", id, "status", job.Status)
		return nil
	}
	return fmt.Errorf("%w: print job %s changed concurrently", ErrConflict, id)
}

// MarkPayment writes only the payment columns, so it cannot undo a status
// change made by another writer.
func (s *printJobService) MarkPayment(ctx context.Context, id, paymentID string, status model.PaymentStatus) (*model.PrintJob, error) {
	updated, err := s.jobs.SetPayment(ctx, id, paymentID, status, s.now().UTC())
	if err != nil {
		return nil, notFound(err, "print job")
	}
	return updated, nil
}

// publish announces a status change. The change is already stored, so a
// failed publish is logged rather than returned.
func (s *printJobService) publish(ctx context.Context, job *model.PrintJob, previous model.JobStatus) {
	err := s.publisher.PublishJobStatus(ctx, events.JobStatusEvent{
		JobID:          job.ID,
		UserID:         job.UserID,
		PrinterID:      job.PrinterID,
		Status:         job.Status,
		PreviousStatus: previous,
		OccurredAt:     job.UpdatedAt,
	})
	if err != nil {
		s.log.WarnContext(ctx, "job_status_publish_failed", "job_id", job.ID, "status", job.Status, "error", err)
	}
}
