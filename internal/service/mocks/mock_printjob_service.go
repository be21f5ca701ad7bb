package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"printshop/internal/model"
	"printshop/internal/service"
)

type MockPrintJobService struct {
	mock.Mock
}

func (m *MockPrintJobService) Create(ctx context.Context, in service.CreatePrintJobInput) (*model.PrintJob, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PrintJob), args.Error(1)
}

func (m *MockPrintJobService) ListByUser(ctx context.Context, userID string) ([]model.PrintJob, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PrintJob), args.Error(1)
}

func (m *MockPrintJobService) Get(ctx context.Context, id string) (*model.PrintJob, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PrintJob), args.Error(1)
}

func (m *MockPrintJobService) UpdateStatus(ctx context.Context, id string, status model.JobStatus) (*model.PrintJob, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PrintJob), args.Error(1)
}

func (m *MockPrintJobService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPrintJobService) MarkPayment(ctx context.Context, id, paymentID string, status model.PaymentStatus) (*model.PrintJob, error) {
	args := m.Called(ctx, id, paymentID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PrintJob), args.Error(1)
}

var _ service.PrintJobService = (*MockPrintJobService)(nil)
