package service

import (
	"context"
	"strings"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"printshop/internal/model"
	"printshop/internal/repository"
)

// StatsService aggregates dashboard figures from the store.
type StatsService interface {
	UserStats(ctx context.Context, userID string) (*model.DashboardStats, error)
	AdminMetrics(ctx context.Context) (*model.AdminMetrics, error)
}

type statsService struct {
	store *repository.Store
}

func NewStatsService(store *repository.Store) StatsService {
	return &statsService{store: store}
}

// UserStats counts the user's jobs, the pages they cover (estimated pages
// times copies, for jobs whose document still exists) and the sum of the
// user's completed payments.
func (s *statsService) UserStats(ctx context.Context, userID string) (*model.DashboardStats, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, validationf("userId is required")
	}

	jobs, err := s.store.PrintJobs.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	docs, err := s.store.Documents.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	payments, err := s.store.Payments.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	pagesByDoc := lo.SliceToMap(docs, func(d model.Document) (string, int) {
		return d.ID, d.EstimatedPages
	})
	pages := lo.SumBy(jobs, func(j model.PrintJob) int {
		return pagesByDoc[j.DocumentID] * j.Settings.Copies
	})

	completed := lo.Filter(payments, func(p model.Payment, _ int) bool {
		return p.Status == model.PaymentCompleted
	})
	balance := lo.Reduce(completed, func(acc decimal.Decimal, p model.Payment, _ int) decimal.Decimal {
		return acc.Add(decimal.NewFromFloat(p.Amount))
	}, decimal.Zero)

	return &model.DashboardStats{
		PrintJobs:    len(jobs),
		PagesPrinted: pages,
		Balance:      balance.Round(2).InexactFloat64(),
	}, nil
}

func (s *statsService) AdminMetrics(ctx context.Context) (*model.AdminMetrics, error) {
	users, err := s.store.Users.Count(ctx)
	if err != nil {
		return nil, err
	}
	docs, err := s.store.Documents.List(ctx, repository.PageQuery{Limit: 1})
	if err != nil {
		return nil, err
	}
	printers, err := s.store.Printers.List(ctx)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.store.PrintJobs.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	revenue, err := s.store.Payments.SumCompleted(ctx)
	if err != nil {
		return nil, err
	}

	jobsByStatus := make(map[model.JobStatus]int, len(model.AllJobStatuses))
	for _, st := range model.AllJobStatuses {
		jobsByStatus[st] = byStatus[st]
	}

	return &model.AdminMetrics{
		Users:        users,
		Documents:    docs.Total,
		Printers:     len(printers),
		OpenPrinters: lo.CountBy(printers, func(p model.Printer) bool { return p.IsOpen }),
		JobsByStatus: jobsByStatus,
		Revenue:      revenue,
	}, nil
}
