// Package entrypoint wires configuration, persistence, storage, background
// workers and the HTTP router together and runs the server until it receives
// SIGINT or SIGTERM.
package entrypoint

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/homebranch/server/internal/audit"
	"github.com/homebranch/server/internal/auth"
	"github.com/homebranch/server/internal/config"
	"github.com/homebranch/server/internal/database"
	dbaudit "github.com/homebranch/server/internal/database/audit"
	"github.com/homebranch/server/internal/database/authors"
	"github.com/homebranch/server/internal/database/books"
	"github.com/homebranch/server/internal/database/bookshelves"
	"github.com/homebranch/server/internal/database/positions"
	"github.com/homebranch/server/internal/database/roles"
	"github.com/homebranch/server/internal/database/users"
	http_controllers "github.com/homebranch/server/internal/http"
	"github.com/homebranch/server/internal/metadata"
	"github.com/homebranch/server/internal/scheduler"
	"github.com/homebranch/server/internal/storage"
	"github.com/homebranch/server/internal/storage/providers/local"
	"github.com/homebranch/server/internal/storage/providers/minio"
	"github.com/homebranch/server/internal/tasks"
	bookcases "github.com/homebranch/server/internal/usecases/books"
)

// hstsMaxAge is sent when cookies are marked secure, i.e. the server is
// expected to sit behind TLS.
const hstsMaxAge = 63072000

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Serve runs router until ctx is cancelled, then drains in-flight requests
// and calls onShutdown within the configured shutdown timeout.
func Serve(ctx context.Context, router http.Handler, cfg *config.Config, onShutdown ShutdownFunc) error {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("Starting server at %s", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Printf("Shutdown Server, waiting %v before killing", timeout)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if onShutdown != nil {
			onShutdown(shutdownCtx)
		}
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		log.Println("Server exiting")
		return nil
	})
	return g.Wait()
}

// Run builds every component from cfg and serves until interrupted.
func Run(cfg *config.Config, version string) error {
	log.Printf("Starting Homebranch v%s", version)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewDatabase(cfg.Database.Path, cfg.Database.LogLevel)
	if err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	userRepo := users.NewRepository(db.DB)
	roleRepo := roles.NewRepository(db.DB)
	bookRepo := books.NewRepository(db.DB)
	shelfRepo := bookshelves.NewRepository(db.DB)
	authorRepo := authors.NewRepository(db.DB)
	positionRepo := positions.NewRepository(db.DB)

	store, err := newStorage(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialize storage: %w", err)
	}

	gateway := metadata.NewGateway(metadata.NewOpenLibraryClient(metadata.Options{
		BaseURL:           cfg.Metadata.OpenLibraryBaseURL,
		CoversURL:         cfg.Metadata.OpenLibraryCoversURL,
		Timeout:           cfg.Metadata.Timeout,
		RequestsPerSecond: cfg.Metadata.RequestsPerSecond,
	}))

	var auditService *audit.Service
	if cfg.Audit.Enabled {
		auditService = audit.NewService(dbaudit.NewRepository(db.DB))
		defer auditService.Wait()
	} else {
		log.Printf("Audit logging disabled")
	}

	verifier := auth.NewTokenVerifier(cfg.Auth.JWTAccessSecret, cfg.Auth.JWTIssuer)
	authService := auth.NewService(userRepo, roleRepo, verifier, cfg.Auth.AdminRole)
	if auditService != nil {
		authService.SetAuditor(auditService)
	}
	limiter := auth.NewRateLimiter(auth.RateLimitConfig{
		MaxAttempts:     cfg.Auth.MaxFailedAttempts,
		WindowDuration:  cfg.Auth.RateLimitWindow,
		LockoutDuration: cfg.Auth.LockoutDuration,
	})
	defer limiter.Stop()
	authMiddleware := auth.NewMiddleware(authService, limiter, cfg.Auth.CookieName)

	routerCfg := http_controllers.RouterConfig{
		Books:          bookRepo,
		BookShelves:    shelfRepo,
		Authors:        authorRepo,
		Roles:          roleRepo,
		Users:          userRepo,
		Positions:      positionRepo,
		Metadata:       gateway,
		Storage:        store,
		MaxUploadBytes: cfg.MaxUploadBytes(),
		PublicBaseURL:  cfg.HTTP.PublicBaseURL,
		Auth:           authMiddleware,
		SecureCookies:  cfg.Auth.SecureCookies,
		Database:       db,
		Version:        version,
	}
	if auditService != nil {
		routerCfg.Auditor = auditService
		routerCfg.AuditEvents = auditService
	}
	if cfg.Auth.CSRFSecret != "" {
		routerCfg.CSRFSecret = []byte(cfg.Auth.CSRFSecret)
	}
	if cfg.Auth.SecureCookies {
		routerCfg.HSTSMaxAge = hstsMaxAge
	}

	var onShutdown []ShutdownFunc

	if cfg.Tasks.Enabled {
		taskCtx, taskCancel := context.WithCancel(context.Background())
		defer taskCancel()

		taskClient, err := startTasks(taskCtx, cfg, bookRepo, gateway, auditService)
		if err != nil {
			return err
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()
		routerCfg.Tasks = taskClient
		onShutdown = append(onShutdown, func(ctx context.Context) {
			if !taskClient.Stop(ctx) {
				log.Printf("Task workers did not stop before the shutdown deadline")
			}
			taskCancel()
		})

		if cfg.SummarySync.Enabled {
			summarySync := scheduler.NewSummarySyncScheduler(bookRepo, taskClient, cfg.SummarySync.Schedule, cfg.SummarySync.BatchSize)
			if err := summarySync.Start(ctx); err != nil {
				return fmt.Errorf("start summary sync: %w", err)
			}
			onShutdown = append(onShutdown, func(context.Context) { summarySync.Stop() })
			log.Printf("Summary sync scheduled: %s", scheduler.DescribeSchedule(cfg.SummarySync.Schedule))
		}

		if auditService != nil && cfg.Audit.RetentionDays > 0 {
			cleanup := scheduler.NewAuditCleanupScheduler(taskClient, cfg.Audit.RetentionDays)
			if err := cleanup.Start(ctx); err != nil {
				return fmt.Errorf("start audit cleanup: %w", err)
			}
		}
	} else {
		log.Printf("Task queue disabled, summary fetches run inline")
	}

	router := http_controllers.NewRouter(routerCfg)

	return Serve(ctx, router, cfg, func(ctx context.Context) {
		for _, fn := range onShutdown {
			fn(ctx)
		}
	})
}

func newStorage(ctx context.Context, cfg *config.Config) (storage.Client, error) {
	switch cfg.Uploads.Provider {
	case config.StorageProviderMinio:
		log.Printf("Storing uploads in MinIO bucket %s at %s", cfg.Uploads.MinioBucket, cfg.Uploads.MinioEndpoint)
		return minio.NewClient(ctx, minio.Config{
			Endpoint:  cfg.Uploads.MinioEndpoint,
			AccessKey: cfg.Uploads.MinioAccessKey,
			SecretKey: cfg.Uploads.MinioSecretKey,
			Bucket:    cfg.Uploads.MinioBucket,
			UseSSL:    cfg.Uploads.MinioUseSSL,
		})
	default:
		client, err := local.NewClient(cfg.Uploads.Directory)
		if err != nil {
			return nil, err
		}
		log.Printf("Storing uploads in %s", client.Root())
		return client, nil
	}
}

func startTasks(ctx context.Context, cfg *config.Config, bookRepo *books.Repository, gateway *metadata.Gateway, auditService *audit.Service) (*tasks.Client, error) {
	taskClient, err := tasks.NewClient(cfg.Database.Path, tasks.Config{
		Workers:           cfg.Tasks.Workers,
		MaxRetries:        cfg.Tasks.MaxRetries,
		RetryDelay:        cfg.Tasks.RetryDelay,
		TaskTimeout:       cfg.Tasks.TaskTimeout,
		ReleaseAfter:      cfg.Tasks.ReleaseAfter,
		CleanupInterval:   cfg.Tasks.CleanupInterval,
		RetentionDuration: cfg.Tasks.RetentionDuration,
	})
	if err != nil {
		return nil, fmt.Errorf("initialize task queue: %w", err)
	}

	taskClient.Register(tasks.NewFetchSummaryQueue(bookcases.NewFetchBookSummary(bookRepo, gateway)))
	if auditService != nil {
		taskClient.Register(tasks.NewCleanupAuditEventsQueue(auditService))
	}

	go taskClient.Start(ctx)
	return taskClient, nil
}

// IssueToken signs a development access token for subject with the
// configured secret.
func IssueToken(cfg *config.Config, subject, email string, ttl time.Duration) (string, error) {
	if cfg.Auth.JWTAccessSecret == "" {
		return "", errors.New("JWT_ACCESS_SECRET is required")
	}
	verifier := auth.NewTokenVerifier(cfg.Auth.JWTAccessSecret, cfg.Auth.JWTIssuer)
	return verifier.Issue(subject, email, nil, ttl)
}

// Exit logs err and terminates the process with a non-zero status.
func Exit(err error) {
	log.Printf("Error: %v", err)
	os.Exit(1)
}
