// Package worker applies printer events to print jobs. Drivers and shop
// operators report progress over NATS; each event becomes an UpdateStatus
// call on the print job service.
package worker

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"printshop/internal/events"
	"printshop/internal/metrics"
	"printshop/internal/service"
)

// DefaultEventTimeout bounds a single status update.
const DefaultEventTimeout = 30 * time.Second

// Subscriber delivers printer events until ctx is cancelled.
type Subscriber interface {
	SubscribePrinterEvents(ctx context.Context, handler func(context.Context, events.PrinterEvent) error) error
}

type Processor struct {
	jobs    service.PrintJobService
	metrics *metrics.WorkerMetrics
	log     *slog.Logger
	timeout time.Duration
}

func NewProcessor(jobs service.PrintJobService, m *metrics.WorkerMetrics, log *slog.Logger) *Processor {
	if log == nil {
		log = slog.Default()
	}
	return &Processor{jobs: jobs, metrics: m, log: log, timeout: DefaultEventTimeout}
}

// Run consumes events from sub until ctx is cancelled.
func (p *Processor) Run(ctx context.Context, sub Subscriber) error {
	return sub.SubscribePrinterEvents(ctx, p.Handle)
}

// Handle applies one event. Events for unknown jobs and transitions the
// lifecycle refuses are logged and dropped; redelivering them cannot
// succeed. Other failures are returned.
func (p *Processor) Handle(ctx context.Context, ev events.PrinterEvent) error {
	start := time.Now()
	if p.metrics != nil {
		p.metrics.StartEvent()
	}

	ctx, span := otel.Tracer("printshop/worker").Start(ctx, "printer_event",
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			attribute.String("printshop.job_id", ev.JobID),
			attribute.String("printshop.status", string(ev.Status)),
		),
	)
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	job, err := p.jobs.UpdateStatus(ctx, ev.JobID, ev.Status)
	outcome := metrics.OutcomeApplied
	switch {
	case err == nil:
		p.log.InfoContext(ctx, "printer_event_applied",
			"job_id", job.ID, "status", job.Status, "printer_id", ev.PrinterID)
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrConflict), errors.Is(err, service.ErrValidation):
		outcome = metrics.OutcomeRejected
		p.log.WarnContext(ctx, "printer_event_rejected",
			"job_id", ev.JobID, "status", ev.Status, "printer_id", ev.PrinterID, "error", err)
		err = nil
	default:
		outcome = metrics.OutcomeError
		span.RecordError(err)
		span.SetStatus(codes.Error, "status update failed")
	}
	span.SetAttributes(attribute.String("printshop.outcome", outcome))

	if p.metrics != nil {
		p.metrics.FinishEvent(string(ev.Status), outcome, time.Since(start))
	}
	return err
}
