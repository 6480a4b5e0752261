// Package usecases declares the persistence and enrichment capabilities the
// orchestration layer depends on. Concrete implementations live in
// internal/database/... and internal/metadata; the use cases themselves live
// in one sub-package per domain area.
//
// Every repository operation returns a result.Result. Absent rows surface as
// domain failures (for example entities.ErrBookNotFound) and infrastructure
// errors as result.Unexpected failures.
package usecases

import (
	"context"

	"github.com/homebranch/server/internal/entities"
	"github.com/homebranch/server/internal/result"
)

// Repository is the contract shared by every entity repository.
type Repository[T any] interface {
	FindAll(ctx context.Context, p result.Pagination) result.Result[result.Page[T]]
	FindByID(ctx context.Context, id string) result.Result[*T]
	Create(ctx context.Context, entity *T) result.Result[*T]
	Update(ctx context.Context, id string, entity *T) result.Result[*T]
	Delete(ctx context.Context, id string) result.Result[*T]
}

// BookRepository adds book queries. A non-empty userID restricts listings
// to books uploaded by that user.
type BookRepository interface {
	FindByID(ctx context.Context, id string) result.Result[*entities.Book]
	Create(ctx context.Context, book *entities.Book) result.Result[*entities.Book]
	Update(ctx context.Context, id string, book *entities.Book) result.Result[*entities.Book]
	Delete(ctx context.Context, id string) result.Result[*entities.Book]

	FindAll(ctx context.Context, p result.Pagination, userID string) result.Result[result.Page[entities.Book]]
	FindByAuthor(ctx context.Context, author string, p result.Pagination, userID string) result.Result[result.Page[entities.Book]]
	FindFavorites(ctx context.Context, p result.Pagination, userID string) result.Result[result.Page[entities.Book]]
	FindByTitle(ctx context.Context, title string) result.Result[*entities.Book]
	FindByBookShelfID(ctx context.Context, shelfID string, p result.Pagination) result.Result[result.Page[entities.Book]]
	FindWithoutSummary(ctx context.Context, limit int) result.Result[[]entities.Book]
	SearchByTitle(ctx context.Context, query string, p result.Pagination, userID string) result.Result[result.Page[entities.Book]]
	SearchFavoritesByTitle(ctx context.Context, query string, p result.Pagination, userID string) result.Result[result.Page[entities.Book]]
	SearchByAuthorAndTitle(ctx context.Context, author, query string, p result.Pagination, userID string) result.Result[result.Page[entities.Book]]
}

// BookShelfRepository adds membership management. A non-empty userID
// restricts FindAll to shelves created by that user or with no creator.
type BookShelfRepository interface {
	FindByID(ctx context.Context, id string) result.Result[*entities.BookShelf]
	Create(ctx context.Context, shelf *entities.BookShelf) result.Result[*entities.BookShelf]
	Update(ctx context.Context, id string, shelf *entities.BookShelf) result.Result[*entities.BookShelf]
	Delete(ctx context.Context, id string) result.Result[*entities.BookShelf]

	FindAll(ctx context.Context, p result.Pagination, userID string) result.Result[result.Page[entities.BookShelf]]
	FindByTitle(ctx context.Context, title string) result.Result[*entities.BookShelf]
	FindByBookID(ctx context.Context, bookID string) result.Result[[]entities.BookShelf]
	AddBook(ctx context.Context, shelfID, bookID string) result.Result[*entities.BookShelf]
	RemoveBook(ctx context.Context, shelfID, bookID string) result.Result[*entities.BookShelf]
}

// AuthorRepository stores enrichment records keyed by case-insensitive name.
// FindAll lists the distinct authors of stored books with their book count.
type AuthorRepository interface {
	FindAll(ctx context.Context, query string, p result.Pagination, userID string) result.Result[result.Page[entities.Author]]
	FindByName(ctx context.Context, name string) result.Result[*entities.Author]
	Create(ctx context.Context, author *entities.Author) result.Result[*entities.Author]
	UpdateByName(ctx context.Context, name string, author *entities.Author) result.Result[*entities.Author]
}

type RoleRepository interface {
	Repository[entities.Role]
	FindByName(ctx context.Context, name string) result.Result[*entities.Role]
}

type UserRepository interface {
	FindAll(ctx context.Context, p result.Pagination) result.Result[result.Page[entities.User]]
	FindByID(ctx context.Context, id string) result.Result[*entities.User]
	Create(ctx context.Context, user *entities.User) result.Result[*entities.User]
	Update(ctx context.Context, id string, user *entities.User) result.Result[*entities.User]
	Count(ctx context.Context) result.Result[int64]
	CountByRoleID(ctx context.Context, roleID string) result.Result[int64]
}

// SavedPositionRepository is keyed by the (bookID, userID) pair.
type SavedPositionRepository interface {
	FindByBookAndUser(ctx context.Context, bookID, userID string) result.Result[*entities.SavedPosition]
	FindAllByUser(ctx context.Context, userID string) result.Result[[]entities.SavedPosition]
	Upsert(ctx context.Context, position *entities.SavedPosition) result.Result[*entities.SavedPosition]
	Delete(ctx context.Context, bookID, userID string) result.Result[*entities.SavedPosition]
}

// AuthorEnrichment is the best-effort data found for an author. Either
// field may be nil.
type AuthorEnrichment struct {
	Biography *string
	PhotoURL  *string
}

// IsEmpty reports whether nothing was found.
func (e AuthorEnrichment) IsEmpty() bool {
	return e.Biography == nil && e.PhotoURL == nil
}

// MetadataGateway looks up enrichment data from an external bibliographic
// source. Implementations never fail: any error degrades to nil fields.
type MetadataGateway interface {
	FindBookSummary(ctx context.Context, title, author string) *string
	FindAuthorEnrichment(ctx context.Context, name string) AuthorEnrichment
}

// AuditLogger records privileged mutations. Implementations must not block.
type AuditLogger interface {
	LogAsync(event *entities.AuditEvent)
}

// Audit forwards event to logger when one is configured.
func Audit(logger AuditLogger, event *entities.AuditEvent) {
	if logger == nil || event == nil {
		return
	}
	logger.LogAsync(event)
}
