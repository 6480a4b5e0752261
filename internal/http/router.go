package http

import (
	"github.com/gin-gonic/gin"

	"github.com/homebranch/server/internal/auth"
	"github.com/homebranch/server/internal/entities"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Apply security headers to all responses
	router.Use(auth.SecurityHeadersMiddleware())
	if cfg.HSTSMaxAge > 0 {
		router.Use(auth.StrictTransportSecurityMiddleware(cfg.HSTSMaxAge))
	}

	// CSRF protection for cookie-authenticated requests
	if len(cfg.CSRFSecret) > 0 {
		router.Use(auth.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
		router.GET("/csrf-token", auth.CSRFTokenHandler)
	}

	// Public endpoints
	health := NewHealthController(cfg.Database, cfg.Storage, cfg.Version)
	router.GET("/health", health.Status)
	if cfg.Storage != nil {
		router.GET("/uploads/*filepath", NewUploadsController(cfg.Storage).Serve)
	}

	api := router.Group("/")
	api.Use(cfg.Auth.Handler())
	perm := cfg.Auth.RequirePermissions

	books := NewBooksController(cfg.Books, cfg.Metadata, cfg.Auditor, cfg.Storage, cfg.Tasks, cfg.MaxUploadBytes)
	api.GET("/books", books.List)
	api.GET("/books/favorite", books.ListFavorites)
	api.GET("/books/:id", books.Get)
	api.POST("/books", books.Create)
	api.PUT("/books/:id", books.Update)
	api.DELETE("/books/:id", books.Delete)
	api.POST("/books/:id/fetch-summary", books.FetchSummary)
	api.GET("/books/:id/download", books.Download)

	authors := NewAuthorsController(cfg.Authors, cfg.Books, cfg.Metadata, cfg.Storage, cfg.PublicBaseURL, cfg.MaxUploadBytes)
	api.GET("/authors", authors.List)
	api.GET("/authors/:name", authors.Get)
	api.GET("/authors/:name/books", authors.Books)
	api.PATCH("/authors/:name", authors.Update)
	api.POST("/authors/:name/profile-picture", authors.UploadProfilePicture)

	shelves := NewBookShelvesController(cfg.BookShelves, cfg.Books)
	api.GET("/book-shelves", shelves.List)
	api.GET("/book-shelves/by-book/:bookId", shelves.ListByBook)
	api.GET("/book-shelves/:id", shelves.Get)
	api.GET("/book-shelves/:id/books", shelves.Books)
	api.POST("/book-shelves", shelves.Create)
	api.PUT("/book-shelves/:id", shelves.Update)
	api.DELETE("/book-shelves/:id", shelves.Delete)
	api.PUT("/book-shelves/:id/add-book", shelves.AddBook)
	api.PUT("/book-shelves/:id/remove-book", shelves.RemoveBook)

	manageRoles := perm(entities.PermissionManageRoles)
	roles := NewRolesController(cfg.Roles, cfg.Users, cfg.Auditor)
	api.GET("/roles", manageRoles, roles.List)
	api.POST("/roles", manageRoles, roles.Create)
	api.PUT("/roles/:id", manageRoles, roles.Update)
	api.DELETE("/roles/:id", manageRoles, roles.Delete)

	manageUsers := perm(entities.PermissionManageUsers)
	users := NewUsersController(cfg.Users, cfg.Roles, cfg.Auditor)
	api.GET("/users", manageUsers, users.List)
	api.GET("/users/:id", manageUsers, users.Get)
	api.PATCH("/users/:id/restrict", manageUsers, users.Restrict)
	api.PATCH("/users/:id/unrestrict", manageUsers, users.Unrestrict)
	api.PATCH("/users/:id/role", manageUsers, users.AssignRole)

	// Saved positions always belong to the caller.
	positions := NewPositionsController(cfg.Positions)
	api.GET("/users/:id/saved-positions", positions.List)
	api.GET("/users/:id/saved-positions/:bookId", positions.Get)
	api.PUT("/users/:id/saved-positions/:bookId", positions.Save)
	api.DELETE("/users/:id/saved-positions/:bookId", positions.Delete)

	if cfg.AuditEvents != nil {
		api.GET("/audit-events", manageUsers, NewAuditController(cfg.AuditEvents).List)
	}

	if cfg.Tasks != nil {
		api.GET("/tasks/:id", NewTasksController(cfg.Tasks).GetTaskStatus)
	}

	return router
}
