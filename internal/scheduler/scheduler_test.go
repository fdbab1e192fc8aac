package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEveryRejectsInvalidSpec(t *testing.T) {
	s := New(time.UTC)
	err := s.Every("every tuesday", "refresh", func(context.Context) error { return nil })
	require.Error(t, err)
	assert.Contains(t, err.Error(), `scheduler: refresh: invalid schedule "every tuesday"`)
	assert.Equal(t, 0, s.Len())

	require.NoError(t, s.Every("*/15 * * * *", "refresh", func(context.Context) error { return nil }))
	assert.Equal(t, 1, s.Len())
}

func TestJobsRunAndStopCancelsContext(t *testing.T) {
	s := New(time.UTC)

	var runs atomic.Int32
	var sawCancel atomic.Bool
	require.NoError(t, s.Every("@every 1s", "tick", func(ctx context.Context) error {
		runs.Add(1)
		<-ctx.Done()
		sawCancel.Store(true)
		return errors.New("cancelled")
	}))

	s.Start()
	assert.Eventually(t, func() bool { return runs.Load() >= 1 }, 3*time.Second, 20*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	s.Stop(ctx)
	assert.True(t, sawCancel.Load())
	// A tick may still land between the cancelled run returning and Stop.
	assert.GreaterOrEqual(t, runs.Load(), int32(1))
}
