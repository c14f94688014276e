package app

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vault-harvester/internal/harvest"
)

type countingRunner struct {
	runs atomic.Int32
}

func (r *countingRunner) Run(ctx context.Context) []harvest.StageReport {
	r.runs.Add(1)
	return nil
}

func TestRunFlow_OnceWithoutSchedule(t *testing.T) {
	r := &countingRunner{}
	cfg := DefaultConfig()

	require.NoError(t, runFlow(context.Background(), cfg, r))
	assert.Equal(t, int32(1), r.runs.Load())
}

func TestRunFlow_CancelledBeforeSchedule(t *testing.T) {
	r := &countingRunner{}
	cfg := DefaultConfig()
	cfg.RunSchedule = "@every 1h"

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, runFlow(ctx, cfg, r))
	assert.Equal(t, int32(1), r.runs.Load())
}

func TestRunFlow_ScheduledRunsUntilCancelled(t *testing.T) {
	r := &countingRunner{}
	cfg := DefaultConfig()
	cfg.Timezone = "UTC"
	cfg.RunSchedule = "@every 1s"

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- runFlow(ctx, cfg, r) }()

	assert.Eventually(t, func() bool { return r.runs.Load() >= 2 }, 5*time.Second, 50*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("runFlow did not return after cancel")
	}
}
