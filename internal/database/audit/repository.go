package audit

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/homebranch/server/internal/database"
	"github.com/homebranch/server/internal/entities"
	"github.com/homebranch/server/internal/result"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// LogEvent saves an audit event to the database.
func (r *Repository) LogEvent(ctx context.Context, event *entities.AuditEvent) error {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	return r.db.WithContext(ctx).Create(event).Error
}

// GetEvents retrieves audit events, most recent first. An empty userID
// returns events of every user; an empty eventType returns every type.
func (r *Repository) GetEvents(ctx context.Context, userID string, eventType entities.AuditEventType, p result.Pagination) result.Result[result.Page[entities.AuditEvent]] {
	query := r.db.WithContext(ctx).Model(&entities.AuditEvent{})
	if userID != "" {
		query = query.Where("user_id = ?", userID)
	}
	if eventType != "" {
		query = query.Where("event_type = ?", eventType)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return result.Fail[result.Page[entities.AuditEvent]](result.Unexpected(err))
	}

	var events []entities.AuditEvent
	if err := database.Paginate(query.Order("created_at DESC, id DESC"), p).Find(&events).Error; err != nil {
		return result.Fail[result.Page[entities.AuditEvent]](result.Unexpected(err))
	}
	return result.Success(result.NewPage(events, p, total))
}

// DeleteOldEvents removes audit events older than the specified time.
// Returns the number of deleted events.
func (r *Repository) DeleteOldEvents(ctx context.Context, olderThan time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("created_at < ?", olderThan).Delete(&entities.AuditEvent{})
	return res.RowsAffected, res.Error
}
