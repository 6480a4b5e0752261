package scheduler

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"
)

// AuditCleanupSchedule runs the audit retention job daily at 04:00.
const AuditCleanupSchedule = "0 4 * * *"

// AuditCleanupEnqueuer queues an audit retention cleanup.
type AuditCleanupEnqueuer interface {
	EnqueueAuditCleanup(ctx context.Context, retentionDays int) (string, error)
}

// AuditCleanupScheduler queues the removal of expired audit events once a day.
type AuditCleanupScheduler struct {
	queue         AuditCleanupEnqueuer
	retentionDays int
	cron          *cron.Cron
}

func NewAuditCleanupScheduler(queue AuditCleanupEnqueuer, retentionDays int) *AuditCleanupScheduler {
	return &AuditCleanupScheduler{
		queue:         queue,
		retentionDays: retentionDays,
		cron:          newCron(),
	}
}

// Start schedules the job. It stops when ctx is cancelled.
func (s *AuditCleanupScheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(AuditCleanupSchedule, func() { s.enqueue(context.Background()) }); err != nil {
		return fmt.Errorf("failed to schedule audit cleanup: %w", err)
	}
	s.cron.Start()
	log.Printf("Audit cleanup scheduler: started (%s, keeping %d days)", DescribeSchedule(AuditCleanupSchedule), s.retentionDays)

	go func() {
		<-ctx.Done()
		<-s.cron.Stop().Done()
	}()
	return nil
}

func (s *AuditCleanupScheduler) enqueue(ctx context.Context) {
	if _, err := s.queue.EnqueueAuditCleanup(ctx, s.retentionDays); err != nil {
		log.Printf("Audit cleanup: %v", err)
	}
}
