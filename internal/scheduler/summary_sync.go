package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/homebranch/server/internal/usecases"
)

// SummaryEnqueuer queues summary fetches for books.
type SummaryEnqueuer interface {
	EnqueueSummaryFetch(ctx context.Context, bookIDs ...string) ([]string, error)
}

// SummarySyncScheduler periodically queues a summary fetch for books that
// have no summary yet, at most batchSize per run.
type SummarySyncScheduler struct {
	books     usecases.BookRepository
	queue     SummaryEnqueuer
	schedule  string
	batchSize int

	cron      *cron.Cron
	entryID   cron.EntryID
	mu        sync.RWMutex
	isRunning bool
	isSyncing bool
	lastRunAt *time.Time
	lastCount int
}

// NewSummarySyncScheduler creates a new scheduler instance.
func NewSummarySyncScheduler(books usecases.BookRepository, queue SummaryEnqueuer, schedule string, batchSize int) *SummarySyncScheduler {
	if batchSize <= 0 {
		batchSize = 50
	}
	return &SummarySyncScheduler{
		books:     books,
		queue:     queue,
		schedule:  schedule,
		batchSize: batchSize,
		cron:      newCron(),
	}
}

// Start schedules the backfill job. It stops when ctx is cancelled.
func (s *SummarySyncScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if err := ValidateCronSchedule(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.schedule, err)
	}

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		if _, err := s.RunNow(context.Background()); err != nil {
			log.Printf("Summary sync: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule summary sync job: %w", err)
	}
	s.entryID = entryID

	s.cron.Start()
	s.isRunning = true

	nextRun, _ := NextRunTime(s.schedule, time.Now())
	log.Printf("Summary sync scheduler: started with schedule '%s' (%s). Next run: %v",
		s.schedule, DescribeSchedule(s.schedule), nextRun)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *SummarySyncScheduler) Stop() {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = false
	s.cron.Remove(s.entryID)
	s.mu.Unlock()

	<-s.cron.Stop().Done()
	log.Printf("Summary sync scheduler: stopped")
}

// RunNow queues summary fetches immediately and returns how many were queued.
// A run that overlaps another one is skipped.
func (s *SummarySyncScheduler) RunNow(ctx context.Context) (int, error) {
	s.mu.Lock()
	if s.isSyncing {
		s.mu.Unlock()
		log.Printf("Summary sync: skipped (already syncing)")
		return 0, nil
	}
	s.isSyncing = true
	s.mu.Unlock()

	queued, err := s.sync(ctx)

	now := time.Now()
	s.mu.Lock()
	s.isSyncing = false
	s.lastRunAt = &now
	s.lastCount = queued
	s.mu.Unlock()

	return queued, err
}

func (s *SummarySyncScheduler) sync(ctx context.Context) (int, error) {
	found := s.books.FindWithoutSummary(ctx, s.batchSize)
	if found.IsFailure() {
		return 0, fmt.Errorf("list books without summary: %w", found.Failure())
	}

	books := found.Value()
	if len(books) == 0 {
		log.Printf("Summary sync: every book has a summary")
		return 0, nil
	}

	ids := make([]string, 0, len(books))
	for _, b := range books {
		ids = append(ids, b.ID)
	}
	if _, err := s.queue.EnqueueSummaryFetch(ctx, ids...); err != nil {
		return 0, err
	}

	log.Printf("Summary sync: queued %d books", len(ids))
	return len(ids), nil
}

// IsRunning returns whether the scheduler is active.
func (s *SummarySyncScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// LastRun returns when the last run finished and how many books it queued.
func (s *SummarySyncScheduler) LastRun() (*time.Time, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastRunAt, s.lastCount
}

// GetNextRunTime returns when the next run will occur.
func (s *SummarySyncScheduler) GetNextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}
	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}
