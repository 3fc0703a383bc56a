package sheets

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"

	"github.com/devenkhatri/billing-monk-sub000/internal/apperrors"
)

// recordingExec returns an executor whose sleeps are captured instead of slept.
func recordingExec(cfg RetryConfig) (*RetryExecutor, *[]time.Duration) {
	exec := NewRetryExecutor(cfg, testLogger())
	var sleeps []time.Duration
	exec.sleep = func(_ context.Context, d time.Duration) error {
		sleeps = append(sleeps, d)
		return nil
	}
	return exec, &sleeps
}

func TestRetryExecutor_RetriesTransientFailures(t *testing.T) {
	exec, sleeps := recordingExec(RetryConfig{
		MaxAttempts: 4,
		BaseDelay:   10 * time.Millisecond,
		Multiplier:  2,
		MinInterval: time.Nanosecond,
	})

	calls := 0
	err := exec.Do(context.Background(), "test.op", func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return &googleapi.Error{Code: 503, Message: "backend error"}
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	// Server errors carry no jitter, so the backoff sequence is exact.
	assert.Equal(t, []time.Duration{10 * time.Millisecond, 20 * time.Millisecond}, *sleeps)
}

func TestRetryExecutor_GivesUpAfterMaxAttempts(t *testing.T) {
	exec, sleeps := recordingExec(RetryConfig{
		MaxAttempts: 3,
		BaseDelay:   time.Millisecond,
		Multiplier:  2,
		MinInterval: time.Nanosecond,
	})

	calls := 0
	err := exec.Do(context.Background(), "test.op", func(ctx context.Context) error {
		calls++
		return &googleapi.Error{Code: 500, Message: "internal error"}
	})

	require.Error(t, err)
	assert.Equal(t, 3, calls)
	assert.Len(t, *sleeps, 2)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeNetwork, appErr.Code)
	assert.True(t, appErr.Retryable)
	assert.Equal(t, "test.op", appErr.Op)
}

func TestRetryExecutor_DoesNotRetryValidationErrors(t *testing.T) {
	exec, sleeps := recordingExec(RetryConfig{MinInterval: time.Nanosecond})

	calls := 0
	err := exec.Do(context.Background(), "test.op", func(ctx context.Context) error {
		calls++
		return &googleapi.Error{Code: 400, Message: "unable to parse range"}
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.Empty(t, *sleeps)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeValidation, appErr.Code)
}

func TestRetryExecutor_DoesNotRetryAuthErrors(t *testing.T) {
	exec, _ := recordingExec(RetryConfig{MinInterval: time.Nanosecond})

	calls := 0
	err := exec.Do(context.Background(), "test.op", func(ctx context.Context) error {
		calls++
		return &googleapi.Error{Code: 403, Message: "forbidden"}
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeAuth, appErr.Code)
	assert.False(t, appErr.Retryable)
}

func TestRetryExecutor_BackoffNeverExceedsCap(t *testing.T) {
	exec, sleeps := recordingExec(RetryConfig{
		MaxAttempts: 6,
		BaseDelay:   10 * time.Millisecond,
		MaxDelay:    25 * time.Millisecond,
		Multiplier:  2,
		MinInterval: time.Nanosecond,
	})

	err := exec.Do(context.Background(), "test.op", func(ctx context.Context) error {
		return &googleapi.Error{Code: 502, Message: "bad gateway"}
	})

	require.Error(t, err)
	require.Len(t, *sleeps, 5)
	var prev time.Duration
	for _, d := range *sleeps {
		assert.LessOrEqual(t, d, 25*time.Millisecond)
		assert.GreaterOrEqual(t, d, prev)
		prev = d
	}
}

func TestRetryExecutor_RateLimitBackoffIsBoostedAndJittered(t *testing.T) {
	base := 10 * time.Millisecond
	exec, sleeps := recordingExec(RetryConfig{
		MaxAttempts:    2,
		BaseDelay:      base,
		Multiplier:     2,
		RateLimitBoost: 2,
		MinInterval:    time.Nanosecond,
	})

	err := exec.Do(context.Background(), "test.op", func(ctx context.Context) error {
		return &googleapi.Error{Code: 429, Message: "rate limit exceeded"}
	})

	require.Error(t, err)
	assert.True(t, apperrors.IsRateLimit(err))
	assert.True(t, apperrors.IsRetryable(err))

	// Jitter spans [0.5, 1.5) of the boosted delay.
	require.Len(t, *sleeps, 1)
	got := (*sleeps)[0]
	assert.GreaterOrEqual(t, got, base)
	assert.Less(t, got, 3*base)
}

func TestRetryExecutor_StopsWhenContextCancelled(t *testing.T) {
	exec := NewRetryExecutor(RetryConfig{MinInterval: time.Nanosecond}, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := exec.Do(ctx, "test.op", func(ctx context.Context) error {
		calls++
		return nil
	})

	require.Error(t, err)
	assert.Equal(t, 0, calls)
	assert.True(t, errors.Is(err, context.Canceled))
}
