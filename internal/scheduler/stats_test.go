package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ztacole/BacaDong/internal/entities"
	"github.com/ztacole/BacaDong/internal/metrics"
)

type stubStats struct {
	stats entities.CatalogStats
	err   error
	calls atomic.Int32
}

func (s *stubStats) Stats(context.Context) (entities.CatalogStats, error) {
	s.calls.Add(1)
	return s.stats, s.err
}

func TestStatsScheduler_RunNow(t *testing.T) {
	source := &stubStats{stats: entities.CatalogStats{Books: 12, Categories: 3, Views: 40}}
	s := NewStatsScheduler(source, "*/5 * * * *")

	require.NoError(t, s.RunNow(context.Background()))

	assert.Equal(t, 12.0, testutil.ToFloat64(metrics.CatalogBooks))
	assert.Equal(t, 3.0, testutil.ToFloat64(metrics.CatalogCategories))
	assert.Equal(t, 40.0, testutil.ToFloat64(metrics.CatalogViews))
}

func TestStatsScheduler_RunNowError(t *testing.T) {
	boom := errors.New("database is locked")
	s := NewStatsScheduler(&stubStats{err: boom}, "*/5 * * * *")

	assert.ErrorIs(t, s.RunNow(context.Background()), boom)
}

func TestStatsScheduler_StartStop(t *testing.T) {
	source := &stubStats{}
	s := NewStatsScheduler(source, "*/5 * * * *")

	require.NoError(t, s.Start(context.Background()))
	assert.True(t, s.IsRunning())
	assert.Equal(t, int32(1), source.calls.Load(), "Start refreshes once immediately")

	next := s.NextRun()
	require.NotNil(t, next)
	assert.True(t, next.After(time.Now()))

	require.NoError(t, s.Start(context.Background()), "second Start is a no-op")

	s.Stop()
	assert.False(t, s.IsRunning())
	assert.Nil(t, s.NextRun())
	s.Stop()
}

func TestStatsScheduler_StopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := NewStatsScheduler(&stubStats{}, "*/5 * * * *")

	require.NoError(t, s.Start(ctx))
	cancel()

	assert.Eventually(t, func() bool { return !s.IsRunning() }, time.Second, 10*time.Millisecond)
}

func TestStatsScheduler_InvalidSchedule(t *testing.T) {
	s := NewStatsScheduler(&stubStats{}, "every five minutes")

	err := s.Start(context.Background())

	assert.Error(t, err)
	assert.False(t, s.IsRunning())
}
