package cron

import (
	"context"
	"errors"
	"fmt"

	"github.com/prakashthakuri/Happy-Hours/pkg/logger"
)

type parkedCounter interface {
	CountParked(ctx context.Context, maxAttempts int) (int64, error)
}

type parkedGauge interface {
	SetParked(count int64)
}

type OutboxParkedJobParams struct {
	Logger      *logger.Logger
	Repository  parkedCounter
	Gauge       parkedGauge
	MaxAttempts int
}

// NewOutboxParkedJob reports events the publisher gave up on. Those rows need
// an operator to replay or discard them.
func NewOutboxParkedJob(params OutboxParkedJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, errors.New("logger required")
	}
	if params.Repository == nil {
		return nil, errors.New("outbox repository required")
	}
	if params.MaxAttempts <= 0 {
		return nil, errors.New("max attempts must be positive")
	}
	return &outboxParkedJob{
		logg:        params.Logger,
		repo:        params.Repository,
		gauge:       params.Gauge,
		maxAttempts: params.MaxAttempts,
	}, nil
}

type outboxParkedJob struct {
	logg        *logger.Logger
	repo        parkedCounter
	gauge       parkedGauge
	maxAttempts int
}

func (j *outboxParkedJob) Name() string { return "outbox-parked-report" }

func (j *outboxParkedJob) Run(ctx context.Context) error {
	count, err := j.repo.CountParked(ctx, j.maxAttempts)
	if err != nil {
		return fmt.Errorf("count parked outbox rows: %w", err)
	}
	if j.gauge != nil {
		j.gauge.SetParked(count)
	}
	if count > 0 {
		j.logg.Warn(j.logg.WithField(ctx, "parked", count), "outbox.parked_events")
	}
	return nil
}
