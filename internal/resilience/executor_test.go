package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"printshop/internal/config"
	"printshop/internal/logger"
)

func fastConfig() Config {
	return Config{
		RetryMaxAttempts:    3,
		RetryInitialBackoff: time.Millisecond,
		RetryMaxBackoff:     2 * time.Millisecond,
		RetryMultiplier:     2,
		BreakerEnabled:      false,
	}
}

func TestExecuteRetriesTemporaryFailure(t *testing.T) {
	exec := NewExecutor(fastConfig(), logger.Discard())

	attempts := 0
	errTemp := errors.New("temporary")
	err := exec.Execute(context.Background(), "storage.put", func(context.Context) error {
		attempts++
		if attempts < 3 {
			return errTemp
		}
		return nil
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestExecuteWrapsExhaustedRetries(t *testing.T) {
	exec := NewExecutor(fastConfig(), logger.Discard())

	attempts := 0
	errTemp := errors.New("connection reset")
	err := exec.Execute(context.Background(), "storage.put", func(context.Context) error {
		attempts++
		return errTemp
	}, nil)

	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, err, errTemp)
	assert.Equal(t, 3, attempts)
}

func TestExecuteDoesNotRetryPermanentFailure(t *testing.T) {
	exec := NewExecutor(fastConfig(), logger.Discard())

	attempts := 0
	errPermanent := errors.New("object key invalid")
	err := exec.Execute(context.Background(), "storage.put", func(context.Context) error {
		attempts++
		return errPermanent
	}, func(error) ErrorClassification {
		return ErrorClassification{Retryable: false, RecordFailure: false}
	})

	assert.ErrorIs(t, err, errPermanent)
	assert.NotErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, 1, attempts)
}

func TestExecuteStopsOnCancelledContext(t *testing.T) {
	exec := NewExecutor(fastConfig(), logger.Discard())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := exec.Execute(ctx, "nats.publish", func(context.Context) error {
		called = true
		return nil
	}, nil)

	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestExecuteOpensCircuitAfterFailures(t *testing.T) {
	exec := NewExecutor(Config{
		RetryMaxAttempts:        1,
		RetryInitialBackoff:     time.Millisecond,
		RetryMaxBackoff:         time.Millisecond,
		RetryMultiplier:         2,
		BreakerEnabled:          true,
		BreakerMinRequests:      2,
		BreakerFailureRatio:     0.5,
		BreakerOpenTimeout:      time.Minute,
		BreakerHalfOpenMaxCalls: 1,
	}, logger.Discard())

	errTemp := errors.New("temporary")
	for i := 0; i < 2; i++ {
		_ = exec.Execute(context.Background(), "storage.put", func(context.Context) error {
			return errTemp
		}, nil)
	}

	err := exec.Execute(context.Background(), "storage.put", func(context.Context) error {
		t.Fatalf("circuit should be open and must not call operation")
		return nil
	}, nil)

	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.True(t, IsCircuitOpen(err))
}

func TestFromAppConfig(t *testing.T) {
	cfg := FromAppConfig(config.ResilienceConfig{
		MaxRetries:       4,
		BaseDelay:        50 * time.Millisecond,
		MaxDelay:         10 * time.Millisecond,
		FailureThreshold: 7,
	})

	assert.Equal(t, 4, cfg.RetryMaxAttempts)
	assert.Equal(t, 50*time.Millisecond, cfg.RetryMaxBackoff)
	assert.Equal(t, uint32(7), cfg.BreakerMinRequests)
	assert.Equal(t, 30*time.Second, cfg.BreakerOpenTimeout)
	assert.True(t, cfg.BreakerEnabled)
}
