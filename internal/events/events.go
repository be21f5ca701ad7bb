// Package events carries print job status changes over NATS. The API
// publishes every transition; the worker consumes printer events and feeds
// them back into the job lifecycle.
package events

import (
	"context"
	"time"

	"printshop/internal/model"
)

// JobStatusEvent is published after a job is created or changes status.
type JobStatusEvent struct {
	JobID          string          `json:"job_id"`
	UserID         string          `json:"user_id"`
	PrinterID      *string         `json:"printer_id,omitempty"`
	Status         model.JobStatus `json:"status"`
	PreviousStatus model.JobStatus `json:"previous_status,omitempty"`
	OccurredAt     time.Time       `json:"occurred_at"`
}

// PrinterEvent is reported by printer drivers or shop operators.
type PrinterEvent struct {
	JobID     string          `json:"job_id"`
	Status    model.JobStatus `json:"status"`
	PrinterID string          `json:"printer_id,omitempty"`
}

// Publisher announces job status changes.
type Publisher interface {
	PublishJobStatus(ctx context.Context, ev JobStatusEvent) error
}

// Noop discards events. It is used when NATS is not configured.
type Noop struct{}

func (Noop) PublishJobStatus(context.Context, JobStatusEvent) error { return nil }
