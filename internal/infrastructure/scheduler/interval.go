package scheduler

import (
	"context"
	"time"

	"NewsDigest/internal/ports"
)

// IntervalScheduler triggers the digest job on a fixed period using
// time.Ticker. The job also runs once at startup.
type IntervalScheduler struct {
	period time.Duration
	stop   chan struct{}
}

var _ ports.Scheduler = (*IntervalScheduler)(nil)

// NewIntervalScheduler builds a scheduler firing every minutes minutes.
func NewIntervalScheduler(minutes int) *IntervalScheduler {
	if minutes <= 0 {
		minutes = 10
	}
	return &IntervalScheduler{period: time.Duration(minutes) * time.Minute}
}

// Start begins ticking. Calling Start twice is a no-op.
func (s *IntervalScheduler) Start(ctx context.Context, job func(time.Time)) error {
	if job == nil {
		return nil
	}
	if s.stop != nil {
		return nil
	}

	s.stop = make(chan struct{})
	go func() {
		ticker := time.NewTicker(s.period)
		defer ticker.Stop()
		job(time.Now())
		for {
			select {
			case t := <-ticker.C:
				job(t)
			case <-ctx.Done():
				return
			case <-s.stop:
				return
			}
		}
	}()

	return nil
}

// Stop halts the ticker goroutine.
func (s *IntervalScheduler) Stop(ctx context.Context) error {
	if s.stop == nil {
		return nil
	}
	close(s.stop)
	s.stop = nil
	return nil
}
