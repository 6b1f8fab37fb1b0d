// Package scheduler drives recurring scans on a fixed interval with a
// bounded retry policy per trigger.
package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Scheduler triggers a job immediately and then on every interval tick.
// A failing trigger is retried up to Retries additional times, waiting
// RetryDelay between attempts. A trigger that exhausts its retries is
// logged and skipped; the schedule keeps going.
type Scheduler struct {
	interval   time.Duration
	retries    int
	retryDelay time.Duration
	logger     *zap.Logger
}

// New creates a Scheduler.
func New(interval, retryDelay time.Duration, retries int, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		interval:   interval,
		retries:    retries,
		retryDelay: retryDelay,
		logger:     logger,
	}
}

// Run blocks until ctx is canceled, invoking fn once right away and
// again after every interval. It returns ctx.Err() on cancellation.
func (s *Scheduler) Run(ctx context.Context, fn func(context.Context) error) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.trigger(ctx, fn)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.trigger(ctx, fn)
		}
	}
}

func (s *Scheduler) trigger(ctx context.Context, fn func(context.Context) error) {
	var err error
	for attempt := 0; attempt <= s.retries; attempt++ {
		if attempt > 0 {
			s.logger.Warn("retrying scan",
				zap.Int("attempt", attempt),
				zap.Duration("delay", s.retryDelay),
				zap.Error(err))
			if !sleep(ctx, s.retryDelay) {
				return
			}
		}
		if err = fn(ctx); err == nil {
			return
		}
		if ctx.Err() != nil {
			return
		}
	}
	s.logger.Error("scan failed after retries",
		zap.Int("retries", s.retries),
		zap.Error(err))
}

// sleep waits for d, returning false if ctx is canceled first.
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
