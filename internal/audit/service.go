// Package audit records privileged mutations in the background.
package audit

import (
	"context"
	"log"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/homebranch/server/internal/database/audit"
	"github.com/homebranch/server/internal/entities"
	"github.com/homebranch/server/internal/result"
)

const maxErrorMsgLen = 500

// Service provides high-level audit logging functionality.
type Service struct {
	repo *audit.Repository
	wg   sync.WaitGroup
}

// NewService creates a new audit service.
func NewService(repo *audit.Repository) *Service {
	return &Service{repo: repo}
}

// Log records an audit event synchronously.
func (s *Service) Log(ctx context.Context, event *entities.AuditEvent) error {
	event.ErrorMsg = truncate(event.ErrorMsg, maxErrorMsgLen)
	return s.repo.LogEvent(ctx, event)
}

// LogAsync records an audit event in the background (non-blocking).
// Write failures are logged and dropped.
func (s *Service) LogAsync(event *entities.AuditEvent) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.Log(context.Background(), event); err != nil {
			log.Printf("Failed to log audit event %s: %v", event.Action, err)
		}
	}()
}

// LogAuth records an authentication event such as a first sign-in.
func (s *Service) LogAuth(userID, action, description, ipAddr string) {
	s.LogAsync(&entities.AuditEvent{
		UserID:      userID,
		EventType:   entities.AuditEventAuth,
		Action:      action,
		Description: description,
		EntityType:  "user",
		EntityID:    &userID,
		IPAddress:   ipAddr,
		Status:      entities.AuditStatusSuccess,
	})
}

// GetEvents retrieves paginated audit events.
func (s *Service) GetEvents(ctx context.Context, userID string, eventType entities.AuditEventType, p result.Pagination) result.Result[result.Page[entities.AuditEvent]] {
	return s.repo.GetEvents(ctx, userID, eventType, p)
}

// DeleteOldEvents removes events older than the retention period.
func (s *Service) DeleteOldEvents(ctx context.Context, retention time.Duration) (int64, error) {
	return s.repo.DeleteOldEvents(ctx, time.Now().Add(-retention))
}

// Wait blocks until every pending asynchronous write has finished.
func (s *Service) Wait() {
	s.wg.Wait()
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen - 3
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
