package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"printshop/internal/model"
)

type MockPrintJobRepository struct {
	mock.Mock
}

func (m *MockPrintJobRepository) Create(ctx context.Context, job *model.PrintJob) (*model.PrintJob, error) {
	args := m.Called(ctx, job)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PrintJob), args.Error(1)
}

func (m *MockPrintJobRepository) FindByID(ctx context.Context, id string) (*model.PrintJob, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PrintJob), args.Error(1)
}

func (m *MockPrintJobRepository) ListByUser(ctx context.Context, userID string) ([]model.PrintJob, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PrintJob), args.Error(1)
}

func (m *MockPrintJobRepository) UpdateStatus(ctx context.Context, job *model.PrintJob, from model.JobStatus) (*model.PrintJob, error) {
	args := m.Called(ctx, job, from)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PrintJob), args.Error(1)
}

func (m *MockPrintJobRepository) SetPayment(ctx context.Context, id, paymentID string, status model.PaymentStatus, at time.Time) (*model.PrintJob, error) {
	args := m.Called(ctx, id, paymentID, status, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PrintJob), args.Error(1)
}

func (m *MockPrintJobRepository) Delete(ctx context.Context, id string, from model.JobStatus) error {
	args := m.Called(ctx, id, from)
	return args.Error(0)
}

func (m *MockPrintJobRepository) CountByStatus(ctx context.Context) (map[model.JobStatus]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[model.JobStatus]int), args.Error(1)
}
