package audit

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	auditRepo "github.com/homebranch/server/internal/database/audit"
	"github.com/homebranch/server/internal/entities"
	"github.com/homebranch/server/internal/result"
)

func setupTestService(t *testing.T) (*Service, *gorm.DB) {
	dbPath := "./test_audit_service_" + t.Name() + ".db"
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.AuditEvent{})
	require.NoError(t, err)

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	})

	return NewService(auditRepo.NewRepository(db)), db
}

func TestService_Log(t *testing.T) {
	svc, db := setupTestService(t)

	event := &entities.AuditEvent{
		UserID:    "u1",
		EventType: entities.AuditEventRole,
		Action:    "role_create",
		Status:    entities.AuditStatusFailed,
		ErrorMsg:  strings.Repeat("x", 600),
	}

	require.NoError(t, svc.Log(context.Background(), event))

	var saved entities.AuditEvent
	require.NoError(t, db.First(&saved, event.ID).Error)
	assert.Equal(t, "role_create", saved.Action)
	assert.Len(t, saved.ErrorMsg, maxErrorMsgLen)
	assert.True(t, strings.HasSuffix(saved.ErrorMsg, "..."))
}

func TestService_LogAsync(t *testing.T) {
	svc, db := setupTestService(t)

	for i := 0; i < 3; i++ {
		svc.LogAsync(&entities.AuditEvent{
			UserID:    "u1",
			EventType: entities.AuditEventBook,
			Action:    "book_delete",
			Status:    entities.AuditStatusSuccess,
		})
	}
	svc.Wait()

	var count int64
	require.NoError(t, db.Model(&entities.AuditEvent{}).Where("action = ?", "book_delete").Count(&count).Error)
	assert.Equal(t, int64(3), count)
}

func TestService_LogAuth(t *testing.T) {
	svc, _ := setupTestService(t)

	svc.LogAuth("sub-1", "user_provision", "Provisioned alice@example.com", "10.0.0.1")
	svc.Wait()

	res := svc.GetEvents(context.Background(), "sub-1", entities.AuditEventAuth, result.Pagination{})
	require.True(t, res.IsSuccess())
	require.Len(t, res.Value().Data, 1)
	event := res.Value().Data[0]
	assert.Equal(t, "user_provision", event.Action)
	assert.Equal(t, "10.0.0.1", event.IPAddress)
	require.NotNil(t, event.EntityID)
	assert.Equal(t, "sub-1", *event.EntityID)
}

func TestService_DeleteOldEvents(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Log(ctx, &entities.AuditEvent{
		UserID: "u1", EventType: entities.AuditEventUser, Action: "user_restrict",
		CreatedAt: time.Now().Add(-100 * 24 * time.Hour),
	}))
	require.NoError(t, svc.Log(ctx, &entities.AuditEvent{
		UserID: "u1", EventType: entities.AuditEventUser, Action: "user_unrestrict",
	}))

	deleted, err := svc.DeleteOldEvents(ctx, 90*24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))

	cut := truncate("abcdéééé", 10)
	assert.Equal(t, "abcdé...", cut)
	assert.True(t, utf8.ValidString(cut))
}
