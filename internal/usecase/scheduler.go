package usecase

import (
	"context"
	"time"

	"NewsDigest/internal/ports"
)

// Scheduler wires the interval driver with a recurring digest job.
type Scheduler struct {
	driver ports.Scheduler
	job    func(context.Context, time.Time)
}

// NewScheduler returns a helper to start/stop recurring digest runs.
func NewScheduler(driver ports.Scheduler, job func(context.Context, time.Time)) *Scheduler {
	return &Scheduler{driver: driver, job: job}
}

// Start registers the job with the provided scheduler driver.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.driver == nil || s.job == nil {
		return nil
	}

	return s.driver.Start(ctx, func(trigger time.Time) {
		s.job(ctx, trigger)
	})
}

// Stop gracefully tears down the underlying driver.
func (s *Scheduler) Stop(ctx context.Context) error {
	if s.driver == nil {
		return nil
	}

	return s.driver.Stop(ctx)
}
