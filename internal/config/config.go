package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Uploads
		Auth
		Metadata
		Tasks
		SummarySync
		Audit
	}

	HTTP struct {
		Port          int32
		Host          string
		PublicBaseURL string // Used to build absolute upload URLs; derived from the request when empty
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path     string
		LogLevel string // silent, error, warn or info
	}
	Uploads struct {
		Directory       string
		Provider        StorageProvider
		MaxUploadSizeMB int64
		MinioEndpoint   string
		MinioAccessKey  string
		MinioSecretKey  string
		MinioBucket     string
		MinioUseSSL     bool
	}
	Auth struct {
		JWTAccessSecret string
		JWTIssuer       string
		CookieName      string
		AdminRole       string
		SecureCookies   bool // Set to false for local dev without HTTPS
		CSRFSecret      string

		// Throttling of clients presenting invalid tokens
		MaxFailedAttempts int           // Failures before lockout (default: 10)
		RateLimitWindow   time.Duration // Time window for counting failures (default: 15m)
		LockoutDuration   time.Duration // How long to lock out (default: 30m)
	}
	Metadata struct {
		OpenLibraryBaseURL   string
		OpenLibraryCoversURL string
		Timeout              time.Duration
		RequestsPerSecond    float64
	}
	Tasks struct {
		Enabled           bool
		Workers           int
		MaxRetries        int
		RetryDelay        time.Duration
		TaskTimeout       time.Duration
		ReleaseAfter      time.Duration
		CleanupInterval   time.Duration
		RetentionDuration time.Duration
	}
	SummarySync struct {
		Enabled   bool
		Schedule  string // Cron format: "0 3 * * *" = daily at 03:00
		BatchSize int
	}
	Audit struct {
		Enabled       bool
		RetentionDays int // Days to keep audit events (default: 90)
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 3000)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("public_base_url", "")
	v.SetDefault("shutdown_timeout_in_seconds", 5)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("database_log_level", "warn")

	// Upload storage defaults
	v.SetDefault("uploads_directory", DefaultUploadsDirectory)
	v.SetDefault("storage_provider", string(StorageProviderLocal))
	v.SetDefault("max_upload_size_mb", 200)
	v.SetDefault("minio_bucket", "homebranch")
	v.SetDefault("minio_use_ssl", false)

	// Auth defaults
	v.SetDefault("jwt_issuer", "")
	v.SetDefault("auth_cookie_name", "access_token")
	v.SetDefault("auth_admin_role", "admin")
	v.SetDefault("auth_secure_cookies", true)
	v.SetDefault("csrf_secret", "")
	v.SetDefault("auth_max_failed_attempts", 10)
	v.SetDefault("auth_rate_limit_window", "15m")
	v.SetDefault("auth_lockout_duration", "30m")

	// OpenLibrary defaults
	v.SetDefault("openlibrary_base_url", "https://openlibrary.org")
	v.SetDefault("openlibrary_covers_url", "https://covers.openlibrary.org")
	v.SetDefault("openlibrary_timeout", "8s")
	v.SetDefault("openlibrary_rate_limit", 1.0)

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 2)
	v.SetDefault("task_max_retries", 3)
	v.SetDefault("task_retry_delay", "30s")
	v.SetDefault("task_timeout", "2m")
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")
	v.SetDefault("task_retention_duration", "24h")

	v.SetDefault("summary_sync_enabled", false)
	v.SetDefault("summary_sync_schedule", "0 3 * * *")
	v.SetDefault("summary_sync_batch", 50)

	v.SetDefault("audit_enabled", true)
	v.SetDefault("audit_retention_days", 90)

	return &Config{
		HTTP: HTTP{
			Port:          v.GetInt32("PORT"),
			Host:          v.GetString("HOST"),
			PublicBaseURL: v.GetString("PUBLIC_BASE_URL"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path:     v.GetString("DATABASE_PATH"),
			LogLevel: v.GetString("DATABASE_LOG_LEVEL"),
		},
		Uploads: Uploads{
			Directory:       v.GetString("UPLOADS_DIRECTORY"),
			Provider:        StorageProvider(v.GetString("STORAGE_PROVIDER")),
			MaxUploadSizeMB: v.GetInt64("MAX_UPLOAD_SIZE_MB"),
			MinioEndpoint:   v.GetString("MINIO_ENDPOINT"),
			MinioAccessKey:  v.GetString("MINIO_ACCESS_KEY"),
			MinioSecretKey:  v.GetString("MINIO_SECRET_KEY"),
			MinioBucket:     v.GetString("MINIO_BUCKET"),
			MinioUseSSL:     v.GetBool("MINIO_USE_SSL"),
		},
		Auth: Auth{
			JWTAccessSecret:   v.GetString("JWT_ACCESS_SECRET"),
			JWTIssuer:         v.GetString("JWT_ISSUER"),
			CookieName:        v.GetString("AUTH_COOKIE_NAME"),
			AdminRole:         v.GetString("AUTH_ADMIN_ROLE"),
			SecureCookies:     v.GetBool("AUTH_SECURE_COOKIES"),
			CSRFSecret:        v.GetString("CSRF_SECRET"),
			MaxFailedAttempts: v.GetInt("AUTH_MAX_FAILED_ATTEMPTS"),
			RateLimitWindow:   v.GetDuration("AUTH_RATE_LIMIT_WINDOW"),
			LockoutDuration:   v.GetDuration("AUTH_LOCKOUT_DURATION"),
		},
		Metadata: Metadata{
			OpenLibraryBaseURL:   v.GetString("OPENLIBRARY_BASE_URL"),
			OpenLibraryCoversURL: v.GetString("OPENLIBRARY_COVERS_URL"),
			Timeout:              v.GetDuration("OPENLIBRARY_TIMEOUT"),
			RequestsPerSecond:    v.GetFloat64("OPENLIBRARY_RATE_LIMIT"),
		},
		Tasks: Tasks{
			Enabled:           v.GetBool("TASKS_ENABLED"),
			Workers:           v.GetInt("TASK_WORKERS"),
			MaxRetries:        v.GetInt("TASK_MAX_RETRIES"),
			RetryDelay:        v.GetDuration("TASK_RETRY_DELAY"),
			TaskTimeout:       v.GetDuration("TASK_TIMEOUT"),
			ReleaseAfter:      v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval:   v.GetDuration("TASK_CLEANUP_INTERVAL"),
			RetentionDuration: v.GetDuration("TASK_RETENTION_DURATION"),
		},
		SummarySync: SummarySync{
			Enabled:   v.GetBool("SUMMARY_SYNC_ENABLED"),
			Schedule:  v.GetString("SUMMARY_SYNC_SCHEDULE"),
			BatchSize: v.GetInt("SUMMARY_SYNC_BATCH"),
		},
		Audit: Audit{
			Enabled:       v.GetBool("AUDIT_ENABLED"),
			RetentionDays: v.GetInt("AUDIT_RETENTION_DAYS"),
		},
	}
}

// Validate reports configuration that would prevent the server from starting.
func (c *Config) Validate() error {
	var errs []error
	if c.Auth.JWTAccessSecret == "" {
		errs = append(errs, errors.New("JWT_ACCESS_SECRET is required"))
	}
	switch c.Uploads.Provider {
	case StorageProviderLocal:
	case StorageProviderMinio:
		if c.Uploads.MinioEndpoint == "" {
			errs = append(errs, errors.New("MINIO_ENDPOINT is required when STORAGE_PROVIDER=minio"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORAGE_PROVIDER %q", c.Uploads.Provider))
	}
	if c.CSRFSecret != "" && len(c.CSRFSecret) != 32 {
		errs = append(errs, errors.New("CSRF_SECRET must be exactly 32 bytes"))
	}
	return errors.Join(errs...)
}

// Addr returns the address the HTTP server listens on.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.HTTP.Host, c.HTTP.Port)
}

// MaxUploadBytes returns the maximum accepted upload size in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return c.Uploads.MaxUploadSizeMB << 20
}
