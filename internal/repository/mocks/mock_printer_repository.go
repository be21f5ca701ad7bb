package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"printshop/internal/model"
)

type MockPrinterRepository struct {
	mock.Mock
}

func (m *MockPrinterRepository) Create(ctx context.Context, p *model.Printer) (*model.Printer, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Printer), args.Error(1)
}

func (m *MockPrinterRepository) FindByID(ctx context.Context, id string) (*model.Printer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Printer), args.Error(1)
}

func (m *MockPrinterRepository) List(ctx context.Context) ([]model.Printer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Printer), args.Error(1)
}

func (m *MockPrinterRepository) Update(ctx context.Context, p *model.Printer) (*model.Printer, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Printer), args.Error(1)
}
