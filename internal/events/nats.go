package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"printshop/internal/resilience"
)

type Options struct {
	Name          string
	StatusSubject string
	EventsSubject string
	QueueGroup    string
	Executor      *resilience.Executor
	Logger        *slog.Logger
}

// Bus publishes job status events and consumes printer events over NATS.
type Bus struct {
	conn *nats.Conn
	opts Options
}

var _ Publisher = (*Bus)(nil)

// Connect dials the NATS server at url. Reconnects are retried in the
// background so a temporarily absent server does not block startup.
func Connect(url string, opts Options) (*Bus, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Name == "" {
		opts.Name = "printshop"
	}
	log := opts.Logger

	conn, err := nats.Connect(
		url,
		nats.Name(opts.Name),
		nats.Timeout(2*time.Second),
		nats.ReconnectWait(2*time.Second),
		nats.MaxReconnects(60),
		nats.RetryOnFailedConnect(true),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Warn("nats_disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info("nats_reconnected", "url", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}
	return &Bus{conn: conn, opts: opts}, nil
}

func (b *Bus) Close() {
	if b.conn != nil {
		b.conn.Close()
	}
}

// PublishJobStatus sends ev on the status subject.
func (b *Bus) PublishJobStatus(ctx context.Context, ev JobStatusEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode job status event: %w", err)
	}

	call := func(context.Context) error {
		if err := b.conn.Publish(b.opts.StatusSubject, data); err != nil {
			return fmt.Errorf("nats publish: %w", err)
		}
		return nil
	}
	if b.opts.Executor == nil {
		return call(ctx)
	}
	return b.opts.Executor.Execute(ctx, "nats.publish", call, classifyNATSError)
}

// SubscribePrinterEvents delivers printer events to handler until ctx is
// cancelled, then drains the subscription. Malformed payloads are logged and
// dropped.
func (b *Bus) SubscribePrinterEvents(ctx context.Context, handler func(context.Context, PrinterEvent) error) error {
	log := b.opts.Logger
	sub, err := b.conn.QueueSubscribe(b.opts.EventsSubject, b.opts.QueueGroup, func(msg *nats.Msg) {
		if ctx.Err() != nil {
			return
		}
		ev, err := DecodePrinterEvent(msg.Data)
		if err != nil {
			log.Warn("printer_event_invalid", "error", err, "subject", msg.Subject)
			return
		}
		if err := handler(ctx, ev); err != nil {
			log.Error("printer_event_failed", "job_id", ev.JobID, "status", ev.Status, "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("nats subscribe: %w", err)
	}

	if err := b.conn.Flush(); err != nil {
		return fmt.Errorf("nats flush: %w", err)
	}

	<-ctx.Done()
	if err := sub.Drain(); err != nil {
		return fmt.Errorf("nats drain subscription: %w", err)
	}
	if err := b.conn.FlushTimeout(5 * time.Second); err != nil {
		return fmt.Errorf("nats flush after drain: %w", err)
	}
	return nil
}

// DecodePrinterEvent parses and checks a printer event payload.
func DecodePrinterEvent(data []byte) (PrinterEvent, error) {
	var ev PrinterEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return PrinterEvent{}, fmt.Errorf("decode printer event: %w", err)
	}
	if ev.JobID == "" {
		return PrinterEvent{}, errors.New("printer event without job_id")
	}
	if !ev.Status.Valid() {
		return PrinterEvent{}, fmt.Errorf("printer event with unknown status %q", ev.Status)
	}
	return ev, nil
}

func classifyNATSError(err error) resilience.ErrorClassification {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return resilience.ErrorClassification{Retryable: false, RecordFailure: false}
	}
	if errors.Is(err, nats.ErrNoServers) ||
		errors.Is(err, nats.ErrTimeout) ||
		errors.Is(err, nats.ErrConnectionClosed) ||
		errors.Is(err, nats.ErrDisconnected) ||
		errors.Is(err, nats.ErrConnectionReconnecting) {
		return resilience.ErrorClassification{Retryable: true, RecordFailure: true}
	}
	return resilience.ErrorClassification{Retryable: false, RecordFailure: true}
}
