package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/ztacole/BacaDong/internal/entities"
	"github.com/ztacole/BacaDong/internal/logging"
	"github.com/ztacole/BacaDong/internal/metrics"
)

// StatsSource reports catalog totals. Satisfied by *books.Repository.
type StatsSource interface {
	Stats(ctx context.Context) (entities.CatalogStats, error)
}

// StatsScheduler refreshes the catalog size gauges on a cron schedule.
type StatsScheduler struct {
	source   StatsSource
	schedule string
	timeout  time.Duration
	log      zerolog.Logger

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewStatsScheduler creates a scheduler that refreshes the gauges on schedule,
// given in standard five-field cron format.
func NewStatsScheduler(source StatsSource, schedule string) *StatsScheduler {
	return &StatsScheduler{
		source:   source,
		schedule: schedule,
		timeout:  30 * time.Second,
		log:      logging.Component("scheduler"),
		cron:     cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start refreshes the gauges once and then on every tick until ctx is done
// or Stop is called.
func (s *StatsScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		if err := s.RunNow(ctx); err != nil {
			s.log.Warn().Err(err).Msg("Catalog stats refresh failed")
		}
	})
	if err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.schedule, err)
	}
	s.entryID = entryID

	if err := s.RunNow(ctx); err != nil {
		s.log.Warn().Err(err).Msg("Initial catalog stats refresh failed")
	}

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	s.log.Info().
		Str("schedule", s.schedule).
		Time("next_run", s.cron.Entry(entryID).Next).
		Msg("Catalog stats scheduler started")

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop waits for a running refresh to finish and stops the scheduler.
func (s *StatsScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()
	s.cron.Remove(s.entryID)

	if s.cancelFunc != nil {
		s.cancelFunc()
		s.cancelFunc = nil
	}
	s.isRunning = false

	s.log.Info().Msg("Catalog stats scheduler stopped")
}

// RunNow refreshes the gauges synchronously.
func (s *StatsScheduler) RunNow(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	stats, err := s.source.Stats(ctx)
	if err != nil {
		return err
	}
	metrics.SetCatalogTotals(stats.Books, stats.Categories, stats.Views)
	s.log.Debug().
		Int64("books", stats.Books).
		Int64("categories", stats.Categories).
		Int64("views", stats.Views).
		Msg("Catalog stats refreshed")
	return nil
}

// IsRunning returns whether the scheduler is active.
func (s *StatsScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRun returns when the next refresh will occur, or nil when stopped.
func (s *StatsScheduler) NextRun() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}
	next := s.cron.Entry(s.entryID).Next
	return &next
}
