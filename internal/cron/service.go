package cron

import (
	"context"
	"errors"
	"time"

	"github.com/prakashthakuri/Happy-Hours/pkg/logger"
)

const defaultInterval = time.Hour

type jobObserver interface {
	ObserveDuration(job string, duration time.Duration)
	IncSuccess(job string)
	IncFailure(job string)
}

// ServiceParams configure the maintenance loop.
type ServiceParams struct {
	Logger   *logger.Logger
	Registry *Registry
	Lock     Lock
	Metrics  jobObserver
	Interval time.Duration
}

// Service runs registered maintenance jobs on a fixed cadence. Only one
// replica runs a cycle at a time.
type Service struct {
	logg     *logger.Logger
	registry *Registry
	lock     Lock
	metrics  jobObserver
	interval time.Duration
}

func NewService(params ServiceParams) (*Service, error) {
	if params.Logger == nil {
		return nil, errors.New("logger required")
	}
	if params.Lock == nil {
		return nil, errors.New("lock required")
	}
	registry := params.Registry
	if registry == nil {
		registry = NewRegistry()
	}
	interval := params.Interval
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Service{
		logg:     params.Logger,
		registry: registry,
		lock:     params.Lock,
		metrics:  params.Metrics,
		interval: interval,
	}, nil
}

// Run executes a cycle immediately and then once per interval until ctx ends.
func (s *Service) Run(ctx context.Context) error {
	s.tick(ctx)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logg.Info(ctx, "cron.stopped")
			return ctx.Err()
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Service) tick(ctx context.Context) {
	if err := s.runCycle(ctx); err != nil {
		s.logg.Error(ctx, "cron.cycle_failed", err)
	}
}

// runCycle returns the number of jobs executed.
func (s *Service) runCycle(ctx context.Context) (int, error) {
	locked, err := s.lock.Acquire(ctx)
	if err != nil {
		return 0, err
	}
	if !locked {
		s.logg.Info(ctx, "cron.cycle_skipped")
		return 0, nil
	}
	defer func() {
		if relErr := s.lock.Release(ctx); relErr != nil {
			s.logg.Error(ctx, "cron.lock_release_failed", relErr)
		}
	}()

	jobs := s.registry.Jobs()
	for _, job := range jobs {
		s.runJob(ctx, job)
	}
	return len(jobs), nil
}

func (s *Service) runJob(ctx context.Context, job Job) {
	jobCtx := s.logg.WithField(ctx, "job", job.Name())
	start := time.Now()
	err := job.Run(jobCtx)
	elapsed := time.Since(start)
	jobCtx = s.logg.WithField(jobCtx, "duration_ms", elapsed.Milliseconds())

	if s.metrics != nil {
		s.metrics.ObserveDuration(job.Name(), elapsed)
	}
	if err != nil {
		s.logg.Error(jobCtx, "cron.job_failed", err)
		if s.metrics != nil {
			s.metrics.IncFailure(job.Name())
		}
		return
	}
	s.logg.Info(jobCtx, "cron.job_completed")
	if s.metrics != nil {
		s.metrics.IncSuccess(job.Name())
	}
}
