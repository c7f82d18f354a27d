package tasks

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryRunsScheduledTask(t *testing.T) {
	r := NewRegistry()

	done := make(chan struct{})
	r.Go("probe", func(ctx context.Context) error {
		close(done)
		return nil
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("task never ran")
	}
	require.NoError(t, r.Shutdown(context.Background()))
}

func TestRegistryContainsTaskError(t *testing.T) {
	r := NewRegistry()

	r.Go("failing", func(ctx context.Context) error {
		return errors.New("boom")
	})

	// A failing task must not take anything down with it; shutdown still drains
	require.NoError(t, r.Shutdown(context.Background()))
}

func TestRegistryRecoversPanic(t *testing.T) {
	r := NewRegistry()

	r.Go("panicking", func(ctx context.Context) error {
		panic("lost it")
	})

	require.NoError(t, r.Shutdown(context.Background()))
}

func TestShutdownWaitsForInFlightTasks(t *testing.T) {
	r := NewRegistry()

	var finished atomic.Bool
	started := make(chan struct{})
	r.Go("slow", func(ctx context.Context) error {
		close(started)
		time.Sleep(50 * time.Millisecond)
		finished.Store(true)
		return nil
	})

	<-started
	require.NoError(t, r.Shutdown(context.Background()))
	assert.True(t, finished.Load(), "shutdown returned before the task finished")
}

func TestShutdownDeadlineCancelsTaskContext(t *testing.T) {
	r := NewRegistry()

	canceled := make(chan struct{})
	started := make(chan struct{})
	r.Go("stuck", func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		close(canceled)
		return ctx.Err()
	})

	<-started
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := r.Shutdown(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	select {
	case <-canceled:
	case <-time.After(2 * time.Second):
		t.Fatal("task context was never canceled")
	}
}

func TestGoAfterShutdownIsRejected(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Shutdown(context.Background()))

	ran := make(chan struct{})
	r.Go("late", func(ctx context.Context) error {
		close(ran)
		return nil
	})

	select {
	case <-ran:
		t.Fatal("task ran after shutdown")
	case <-time.After(50 * time.Millisecond):
	}
}
