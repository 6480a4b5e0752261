package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/homebranch/server/internal/audit"
	"github.com/homebranch/server/internal/auth"
	"github.com/homebranch/server/internal/database"
	"github.com/homebranch/server/internal/database/authors"
	"github.com/homebranch/server/internal/database/books"
	"github.com/homebranch/server/internal/database/bookshelves"
	"github.com/homebranch/server/internal/database/positions"
	"github.com/homebranch/server/internal/database/roles"
	"github.com/homebranch/server/internal/database/users"
	"github.com/homebranch/server/internal/http"
	"github.com/homebranch/server/internal/metadata"
	"github.com/homebranch/server/internal/scheduler"
	"github.com/homebranch/server/internal/storage"
	"github.com/homebranch/server/internal/storage/providers/local"
	"github.com/homebranch/server/internal/storage/providers/minio"
	"github.com/homebranch/server/internal/tasks"
	"github.com/homebranch/server/internal/usecases"
	bookcases "github.com/homebranch/server/internal/usecases/books"
)

// =============================================================================
// Data Access Layer
// =============================================================================

var _ usecases.BookRepository = (*books.Repository)(nil)
var _ usecases.BookShelfRepository = (*bookshelves.Repository)(nil)
var _ usecases.AuthorRepository = (*authors.Repository)(nil)
var _ usecases.RoleRepository = (*roles.Repository)(nil)
var _ usecases.UserRepository = (*users.Repository)(nil)
var _ usecases.SavedPositionRepository = (*positions.Repository)(nil)

var _ http.Pinger = (*database.Database)(nil)

// =============================================================================
// File Storage
// =============================================================================

var _ storage.Client = (*local.Client)(nil)
var _ storage.Client = (*minio.Client)(nil)

// =============================================================================
// External Services
// =============================================================================

var _ usecases.MetadataGateway = (*metadata.Gateway)(nil)

// =============================================================================
// Audit Trail
// =============================================================================

var _ usecases.AuditLogger = (*audit.Service)(nil)
var _ auth.ProvisionAuditor = (*audit.Service)(nil)
var _ http.AuditEventReader = (*audit.Service)(nil)
var _ tasks.AuditEventCleaner = (*audit.Service)(nil)

// =============================================================================
// Authentication
// =============================================================================

var _ http.Authenticator = (*auth.Middleware)(nil)

// =============================================================================
// Background Tasks
// =============================================================================

var _ http.TaskQueue = (*tasks.Client)(nil)
var _ scheduler.SummaryEnqueuer = (*tasks.Client)(nil)
var _ scheduler.AuditCleanupEnqueuer = (*tasks.Client)(nil)
var _ tasks.SummaryFetcher = (*bookcases.FetchBookSummary)(nil)
