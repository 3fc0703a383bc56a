package sheets

import (
	"context"
	"log/slog"
	"math"
	"math/rand/v2"
	"time"

	"github.com/devenkhatri/billing-monk-sub000/internal/apperrors"
	"golang.org/x/time/rate"
)

// RetryConfig tunes the retry executor. Zero values fall back to defaults.
type RetryConfig struct {
	MaxAttempts    int           // total attempts, including the first
	BaseDelay      time.Duration // first backoff delay
	MaxDelay       time.Duration // backoff cap
	Multiplier     float64       // exponential growth factor
	RateLimitBoost float64       // extra delay multiplier for quota errors
	MinInterval    time.Duration // minimum spacing between remote calls
	CallTimeout    time.Duration // per-attempt timeout
}

func (c RetryConfig) withDefaults() RetryConfig {
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 4
	}
	if c.BaseDelay <= 0 {
		c.BaseDelay = 500 * time.Millisecond
	}
	if c.MaxDelay <= 0 {
		c.MaxDelay = 30 * time.Second
	}
	if c.Multiplier <= 1 {
		c.Multiplier = 2
	}
	if c.RateLimitBoost <= 1 {
		c.RateLimitBoost = 1.75
	}
	if c.MinInterval <= 0 {
		c.MinInterval = 100 * time.Millisecond
	}
	if c.CallTimeout <= 0 {
		c.CallTimeout = 30 * time.Second
	}
	return c
}

// RetryExecutor wraps every remote spreadsheet call with a minimum
// inter-request spacing and bounded exponential backoff. The spacing limiter
// is process-local state; multiple server instances can still collide on the
// remote quota.
type RetryExecutor struct {
	cfg     RetryConfig
	limiter *rate.Limiter
	logger  *slog.Logger

	// sleep is injectable so tests can record delays instead of waiting.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewRetryExecutor builds an executor from cfg, applying defaults to zero
// values.
func NewRetryExecutor(cfg RetryConfig, logger *slog.Logger) *RetryExecutor {
	cfg = cfg.withDefaults()
	if logger == nil {
		logger = slog.Default()
	}
	return &RetryExecutor{
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Every(cfg.MinInterval), 1),
		logger:  logger,
		sleep:   sleepCtx,
	}
}

// Do runs fn under the rate limiter, classifying failures and retrying the
// retryable ones with exponential backoff. The returned error, if any, is
// always a classified *apperrors.AppError.
func (e *RetryExecutor) Do(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	for attempt := 1; ; attempt++ {
		if err := e.limiter.Wait(ctx); err != nil {
			return apperrors.Classify(op, err)
		}

		callCtx, cancel := context.WithTimeout(ctx, e.cfg.CallTimeout)
		err := fn(callCtx)
		cancel()
		if err == nil {
			return nil
		}

		appErr := apperrors.Classify(op, err)
		if !appErr.Retryable || attempt >= e.cfg.MaxAttempts {
			return appErr
		}

		delay := e.backoff(attempt, appErr)
		e.logger.Warn("retrying sheet operation",
			slog.String("op", op),
			slog.Int("attempt", attempt),
			slog.String("code", string(appErr.Code)),
			slog.Duration("delay", delay),
		)
		if err := e.sleep(ctx, delay); err != nil {
			return apperrors.Classify(op, err)
		}
	}
}

// backoff computes min(maxDelay, base * multiplier^(attempt-1)). Rate-limit
// errors additionally get an extra multiplier and +/-50% jitter so colliding
// retries spread out.
func (e *RetryExecutor) backoff(attempt int, appErr *apperrors.AppError) time.Duration {
	delay := time.Duration(float64(e.cfg.BaseDelay) * math.Pow(e.cfg.Multiplier, float64(attempt-1)))
	if delay > e.cfg.MaxDelay {
		delay = e.cfg.MaxDelay
	}
	if appErr.Code == apperrors.CodeRateLimit {
		delay = time.Duration(float64(delay) * e.cfg.RateLimitBoost * (0.5 + rand.Float64()))
		if delay > e.cfg.MaxDelay {
			delay = e.cfg.MaxDelay
		}
	}
	return delay
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
