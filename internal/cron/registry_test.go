package cron

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

type stubJob struct {
	name string
}

func (s *stubJob) Name() string              { return s.name }
func (s *stubJob) Run(context.Context) error { return nil }

func TestRegistryKeepsOrderAndCopies(t *testing.T) {
	registry := NewRegistry()
	jobA := &stubJob{name: "outbox-retention"}
	jobB := &stubJob{name: "outbox-parked-report"}
	require.NoError(t, registry.Register(jobA))
	require.NoError(t, registry.Register(jobB))
	require.NoError(t, registry.Register(nil))

	jobs := registry.Jobs()
	require.Equal(t, []Job{jobA, jobB}, jobs)

	jobs[0] = nil
	require.NotNil(t, registry.Jobs()[0])
}

func TestRegistryRejectsDuplicateNames(t *testing.T) {
	registry := NewRegistry(&stubJob{name: "outbox-retention"})
	require.Error(t, registry.Register(&stubJob{name: "outbox-retention"}))
	require.Len(t, registry.Jobs(), 1)
}
