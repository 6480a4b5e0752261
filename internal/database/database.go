package database

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/homebranch/server/internal/entities"
	"github.com/homebranch/server/internal/result"
)

type Database struct {
	DB *gorm.DB
}

// NewDatabase opens the sqlite file at dbPath, migrates every entity and
// seeds the admin role. logLevel is one of silent, error, warn or info.
func NewDatabase(dbPath, logLevel string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(withForeignKeys(dbPath)), &gorm.Config{
		Logger: logger.Default.LogMode(parseLogLevel(logLevel)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = db.AutoMigrate(
		&entities.Role{},
		&entities.User{},
		&entities.Book{},
		&entities.BookShelf{},
		&entities.Author{},
		&entities.SavedPosition{},
		&entities.AuditEvent{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	database := &Database{DB: db}

	if err := database.seedAdminRole(); err != nil {
		return nil, fmt.Errorf("failed to seed admin role: %w", err)
	}

	log.Printf("Database initialized successfully at %s", dbPath)

	return database, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping reports whether the underlying connection is usable.
func (d *Database) Ping() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func (d *Database) seedAdminRole() error {
	var existing entities.Role
	err := d.DB.Where("name = ?", entities.AdminRoleName).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	role := entities.NewRole(uuid.NewString(), entities.AdminRoleName, entities.AllPermissions)
	if err := d.DB.Create(role).Error; err != nil {
		return fmt.Errorf("failed to create role %s: %w", role.Name, err)
	}
	log.Printf("Created role: %s", role.Name)
	return nil
}

func withForeignKeys(dbPath string) string {
	if strings.Contains(dbPath, "?") {
		return dbPath + "&_foreign_keys=on"
	}
	return dbPath + "?_foreign_keys=on"
}

func parseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

// Paginate applies limit and offset. A non-positive limit means no limit.
func Paginate(q *gorm.DB, p result.Pagination) *gorm.DB {
	if p.Offset > 0 {
		q = q.Offset(p.Offset)
	}
	if p.Limit > 0 {
		q = q.Limit(p.Limit)
	}
	return q
}

// Failure converts a gorm error into a Result failure. Missing rows
// become notFound, anything else is unexpected.
func Failure(err error, notFound *result.Failure) *result.Failure {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return result.Unexpected(err)
}

// EscapeLike escapes the LIKE wildcards in s for use with ESCAPE '\'.
func EscapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
