package http

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"

	"github.com/homebranch/server/internal/entities"
	"github.com/homebranch/server/internal/result"
	"github.com/homebranch/server/internal/storage"
	"github.com/homebranch/server/internal/usecases"
)

// Authenticator guards routes. *auth.Middleware implements it.
type Authenticator interface {
	Handler() gin.HandlerFunc
	RequirePermissions(perms ...entities.Permission) gin.HandlerFunc
}

// TaskQueue enqueues background work. *tasks.Client implements it.
type TaskQueue interface {
	EnqueueSummaryFetch(ctx context.Context, bookIDs ...string) ([]string, error)
	Status(ctx context.Context, taskID string) (backlite.TaskStatus, error)
}

// AuditEventReader lists recorded audit events. *audit.Service implements it.
type AuditEventReader interface {
	GetEvents(ctx context.Context, userID string, eventType entities.AuditEventType, p result.Pagination) result.Result[result.Page[entities.AuditEvent]]
}

// Pinger reports database connectivity. *database.Database implements it.
type Pinger interface {
	Ping() error
}

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Persistence
	Books       usecases.BookRepository
	BookShelves usecases.BookShelfRepository
	Authors     usecases.AuthorRepository
	Roles       usecases.RoleRepository
	Users       usecases.UserRepository
	Positions   usecases.SavedPositionRepository

	// Enrichment and audit trail
	Metadata    usecases.MetadataGateway
	Auditor     usecases.AuditLogger // Optional
	AuditEvents AuditEventReader     // Optional, enables GET /audit-events

	// Uploaded files
	Storage        storage.Client
	MaxUploadBytes int64  // 0 means unlimited
	PublicBaseURL  string // Derived from the request when empty

	// Task queue (optional)
	Tasks TaskQueue

	// Authentication
	Auth          Authenticator
	CSRFSecret    []byte // CSRF protection is disabled when empty
	SecureCookies bool
	HSTSMaxAge    int // Seconds; HSTS is disabled when zero

	// Application info
	Database Pinger
	Version  string
}
