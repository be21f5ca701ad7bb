package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"printshop/internal/events"
	"printshop/internal/logger"
	"printshop/internal/model"
	"printshop/internal/repository"
	"printshop/internal/repository/memory"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.JobStatusEvent
	err    error
}

func (p *recordingPublisher) PublishJobStatus(_ context.Context, ev events.JobStatusEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

func (p *recordingPublisher) statuses() []model.JobStatus {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]model.JobStatus, 0, len(p.events))
	for _, ev := range p.events {
		out = append(out, ev.Status)
	}
	return out
}

type fixture struct {
	store     *repository.Store
	publisher *recordingPublisher
	jobs      PrintJobService
	payments  PaymentService
	stats     StatsService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	pub := &recordingPublisher{}
	jobs := NewPrintJobService(store.PrintJobs, store.Documents, store.Printers, pub, logger.Discard())
	return &fixture{
		store:     store,
		publisher: pub,
		jobs:      jobs,
		payments:  NewPaymentService(store.Payments, store.PrintJobs, jobs),
		stats:     NewStatsService(store),
	}
}

// addDocument stores a document owned by userID with the given page estimate.
func (f *fixture) addDocument(t *testing.T, userID string, pages int) *model.Document {
	t.Helper()
	doc, err := f.store.Documents.Create(context.Background(), &model.Document{
		ID:             uuid.NewString(),
		UserID:         userID,
		Name:           "report.pdf",
		FileType:       "pdf",
		EstimatedPages: pages,
		CreatedAt:      time.Now().UTC(),
	})
	require.NoError(t, err)
	return doc
}

func (f *fixture) addJob(t *testing.T, userID string, pages int) *model.PrintJob {
	t.Helper()
	doc := f.addDocument(t, userID, pages)
	job, err := f.jobs.Create(context.Background(), CreatePrintJobInput{
		UserID:     userID,
		DocumentID: doc.ID,
		Settings:   defaultSettings(),
	})
	require.NoError(t, err)
	return job
}

func defaultSettings() model.PrintSettings {
	return model.PrintSettings{
		Copies:      1,
		ColorMode:   model.ColorModeBlackWhite,
		PaperSize:   model.PaperA4,
		Orientation: model.OrientationPortrait,
		Sides:       model.SidesOne,
		Quality:     model.QualityStandard,
	}
}
