package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestValidateSchedule(t *testing.T) {
	assert.NoError(t, ValidateSchedule("0 3 * * *"))
	assert.NoError(t, ValidateSchedule("*/15 * * * *"))
	assert.Error(t, ValidateSchedule("not a schedule"))
	assert.Error(t, ValidateSchedule("0 0 3 * * *"), "seconds field is not accepted")
}

func TestCleanupScheduler_StartStop(t *testing.T) {
	s := NewCleanupScheduler("0 3 * * *", func(context.Context) error { return nil }, testLogger())

	require.NoError(t, s.Start(context.Background()))
	assert.True(t, s.IsRunning())
	require.NotNil(t, s.NextRun())
	assert.Equal(t, 3, s.NextRun().Hour())

	// Starting twice is a no-op.
	require.NoError(t, s.Start(context.Background()))

	s.Stop()
	assert.False(t, s.IsRunning())
	assert.Nil(t, s.NextRun())
}

func TestCleanupScheduler_StopsWithContext(t *testing.T) {
	s := NewCleanupScheduler("0 3 * * *", func(context.Context) error { return nil }, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, s.Start(ctx))
	cancel()

	assert.Eventually(t, func() bool { return !s.IsRunning() }, time.Second, 10*time.Millisecond)
}

func TestCleanupScheduler_InvalidSchedule(t *testing.T) {
	s := NewCleanupScheduler("nope", func(context.Context) error { return nil }, testLogger())
	assert.Error(t, s.Start(context.Background()))
	assert.False(t, s.IsRunning())
}

func TestCleanupScheduler_RunNow(t *testing.T) {
	var calls atomic.Int32
	s := NewCleanupScheduler("0 3 * * *", func(context.Context) error {
		calls.Add(1)
		return nil
	}, testLogger())

	require.NoError(t, s.RunNow(context.Background()))
	assert.Equal(t, int32(1), calls.Load())

	failing := NewCleanupScheduler("0 3 * * *", func(context.Context) error {
		return errors.New("sweep failed")
	}, testLogger())
	assert.Error(t, failing.RunNow(context.Background()))
}

func TestCleanupScheduler_RunLogsFailure(t *testing.T) {
	var calls atomic.Int32
	s := NewCleanupScheduler("0 3 * * *", func(context.Context) error {
		calls.Add(1)
		return errors.New("boom")
	}, testLogger())

	s.run()
	assert.Equal(t, int32(1), calls.Load())
}
