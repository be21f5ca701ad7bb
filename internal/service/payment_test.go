package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"printshop/internal/model"
	"printshop/internal/repository"
	repoMocks "printshop/internal/repository/mocks"
)

func TestPaymentService_CreateLinksJob(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	job := f.addJob(t, "user-1", 4)

	p, err := f.payments.Create(ctx, CreatePaymentInput{UserID: "user-1", PrintJobID: &job.ID, Amount: job.Cost, Currency: "inr"})
	require.NoError(t, err)
	assert.Equal(t, model.PaymentPending, p.Status)
	assert.Equal(t, "INR", p.Currency)

	got, err := f.jobs.Get(ctx, job.ID)
	require.NoError(t, err)
	require.NotNil(t, got.PaymentID)
	assert.Equal(t, p.ID, *got.PaymentID)
	assert.Equal(t, model.PaymentPending, *got.PaymentStatus)

	settled, err := f.payments.HandleCallback(ctx, p.ID, "pay_123", model.PaymentCompleted)
	require.NoError(t, err)
	assert.Equal(t, "pay_123", settled.ExternalID)

	got, err = f.jobs.Get(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentCompleted, *got.PaymentStatus)
}

func TestPaymentService_Create(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	job := f.addJob(t, "user-1", 1)
	missing := "missing"

	tests := []struct {
		name    string
		in      CreatePaymentInput
		wantErr error
	}{
		{name: "standalone payment", in: CreatePaymentInput{UserID: "user-1", Amount: 9.99}},
		{name: "missing user", in: CreatePaymentInput{Amount: 1}, wantErr: ErrValidation},
		{name: "zero amount", in: CreatePaymentInput{UserID: "user-1"}, wantErr: ErrValidation},
		{name: "unknown job", in: CreatePaymentInput{UserID: "user-1", Amount: 1, PrintJobID: &missing}, wantErr: ErrNotFound},
		{name: "someone else's job", in: CreatePaymentInput{UserID: "user-2", Amount: 1, PrintJobID: &job.ID}, wantErr: ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := f.payments.Create(ctx, tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, model.DefaultCurrency, p.Currency)
		})
	}
}

func TestPaymentService_HandleCallback(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		stored     model.PaymentStatus
		status     model.PaymentStatus
		setupMocks func(m *repoMocks.MockPaymentRepository)
		wantErr    error
	}{
		{
			name:   "pending to completed",
			stored: model.PaymentPending,
			status: model.PaymentCompleted,
			setupMocks: func(m *repoMocks.MockPaymentRepository) {
				m.On("UpdateStatus", ctx, mock.MatchedBy(func(p *model.Payment) bool {
					return p.Status == model.PaymentCompleted && p.ExternalID == "ext-1"
				}), model.PaymentPending).Return(&model.Payment{ID: "p-1", Status: model.PaymentCompleted}, nil)
			},
		},
		{
			name:       "repeated outcome is a no-op",
			stored:     model.PaymentCancelled,
			status:     model.PaymentCancelled,
			setupMocks: func(m *repoMocks.MockPaymentRepository) {},
		},
		{
			name:       "switching outcome conflicts",
			stored:     model.PaymentCompleted,
			status:     model.PaymentCancelled,
			setupMocks: func(m *repoMocks.MockPaymentRepository) {},
			wantErr:    ErrConflict,
		},
		{
			name:       "pending is not an outcome",
			stored:     model.PaymentPending,
			status:     model.PaymentPending,
			setupMocks: func(m *repoMocks.MockPaymentRepository) {},
			wantErr:    ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := new(repoMocks.MockPaymentRepository)
			m.On("FindByID", ctx, "p-1").Return(&model.Payment{ID: "p-1", Status: tt.stored}, nil).Maybe()
			tt.setupMocks(m)
			svc := NewPaymentService(m, nil, nil)

			got, err := svc.HandleCallback(ctx, "p-1", "ext-1", tt.status)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.status, got.Status)
			m.AssertExpectations(t)
		})
	}

	t.Run("unknown payment", func(t *testing.T) {
		m := new(repoMocks.MockPaymentRepository)
		m.On("FindByID", ctx, "p-9").Return(nil, repository.ErrNotFound)
		svc := NewPaymentService(m, nil, nil)

		_, err := svc.HandleCallback(ctx, "p-9", "", model.PaymentCompleted)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("racing callback settled first", func(t *testing.T) {
		m := new(repoMocks.MockPaymentRepository)
		m.On("FindByID", ctx, "p-1").Return(&model.Payment{ID: "p-1", Status: model.PaymentPending}, nil).Once()
		m.On("UpdateStatus", ctx, mock.Anything, model.PaymentPending).Return(nil, repository.ErrStale).Once()
		m.On("FindByID", ctx, "p-1").Return(&model.Payment{ID: "p-1", Status: model.PaymentCompleted}, nil).Once()
		svc := NewPaymentService(m, nil, nil)

		_, err := svc.HandleCallback(ctx, "p-1", "", model.PaymentCancelled)

		assert.ErrorIs(t, err, ErrConflict)
		m.AssertExpectations(t)
	})
}

func TestPaymentService_ConcurrentCallbacksSettleOnce(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p, err := f.payments.Create(ctx, CreatePaymentInput{UserID: "user-1", Amount: 4.5})
	require.NoError(t, err)

	outcomes := []model.PaymentStatus{model.PaymentCompleted, model.PaymentCancelled}
	errs := make([]error, 8)
	var wg sync.WaitGroup
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.payments.HandleCallback(ctx, p.ID, "", outcomes[i%2])
		}(i)
	}
	wg.Wait()

	stored, err := f.store.Payments.FindByID(ctx, p.ID)
	require.NoError(t, err)
	for i, err := range errs {
		if outcomes[i%2] == stored.Status {
			assert.NoError(t, err)
		} else {
			assert.ErrorIs(t, err, ErrConflict)
		}
	}
}
