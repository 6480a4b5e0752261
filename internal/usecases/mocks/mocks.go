// Package mocks provides testify mocks for the use-case dependencies.
//
// Write methods (Create, Update, UpdateByName, Upsert) also accept a
// function as their return value, which receives the entity being written.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/homebranch/server/internal/entities"
	"github.com/homebranch/server/internal/result"
	"github.com/homebranch/server/internal/usecases"
)

// ===========================
// Books
// ===========================

type BookRepository struct {
	mock.Mock
}

func (m *BookRepository) FindByID(ctx context.Context, id string) result.Result[*entities.Book] {
	args := m.Called(ctx, id)
	return args.Get(0).(result.Result[*entities.Book])
}

func (m *BookRepository) Create(ctx context.Context, book *entities.Book) result.Result[*entities.Book] {
	args := m.Called(ctx, book)
	if fn, ok := args.Get(0).(func(*entities.Book) result.Result[*entities.Book]); ok {
		return fn(book)
	}
	return args.Get(0).(result.Result[*entities.Book])
}

func (m *BookRepository) Update(ctx context.Context, id string, book *entities.Book) result.Result[*entities.Book] {
	args := m.Called(ctx, id, book)
	if fn, ok := args.Get(0).(func(*entities.Book) result.Result[*entities.Book]); ok {
		return fn(book)
	}
	return args.Get(0).(result.Result[*entities.Book])
}

func (m *BookRepository) Delete(ctx context.Context, id string) result.Result[*entities.Book] {
	args := m.Called(ctx, id)
	return args.Get(0).(result.Result[*entities.Book])
}

func (m *BookRepository) FindAll(ctx context.Context, p result.Pagination, userID string) result.Result[result.Page[entities.Book]] {
	args := m.Called(ctx, p, userID)
	return args.Get(0).(result.Result[result.Page[entities.Book]])
}

func (m *BookRepository) FindByAuthor(ctx context.Context, author string, p result.Pagination, userID string) result.Result[result.Page[entities.Book]] {
	args := m.Called(ctx, author, p, userID)
	return args.Get(0).(result.Result[result.Page[entities.Book]])
}

func (m *BookRepository) FindFavorites(ctx context.Context, p result.Pagination, userID string) result.Result[result.Page[entities.Book]] {
	args := m.Called(ctx, p, userID)
	return args.Get(0).(result.Result[result.Page[entities.Book]])
}

func (m *BookRepository) FindByTitle(ctx context.Context, title string) result.Result[*entities.Book] {
	args := m.Called(ctx, title)
	return args.Get(0).(result.Result[*entities.Book])
}

func (m *BookRepository) FindByBookShelfID(ctx context.Context, shelfID string, p result.Pagination) result.Result[result.Page[entities.Book]] {
	args := m.Called(ctx, shelfID, p)
	return args.Get(0).(result.Result[result.Page[entities.Book]])
}

func (m *BookRepository) FindWithoutSummary(ctx context.Context, limit int) result.Result[[]entities.Book] {
	args := m.Called(ctx, limit)
	return args.Get(0).(result.Result[[]entities.Book])
}

func (m *BookRepository) SearchByTitle(ctx context.Context, query string, p result.Pagination, userID string) result.Result[result.Page[entities.Book]] {
	args := m.Called(ctx, query, p, userID)
	return args.Get(0).(result.Result[result.Page[entities.Book]])
}

func (m *BookRepository) SearchFavoritesByTitle(ctx context.Context, query string, p result.Pagination, userID string) result.Result[result.Page[entities.Book]] {
	args := m.Called(ctx, query, p, userID)
	return args.Get(0).(result.Result[result.Page[entities.Book]])
}

func (m *BookRepository) SearchByAuthorAndTitle(ctx context.Context, author, query string, p result.Pagination, userID string) result.Result[result.Page[entities.Book]] {
	args := m.Called(ctx, author, query, p, userID)
	return args.Get(0).(result.Result[result.Page[entities.Book]])
}

// ===========================
// Bookshelves
// ===========================

type BookShelfRepository struct {
	mock.Mock
}

func (m *BookShelfRepository) FindByID(ctx context.Context, id string) result.Result[*entities.BookShelf] {
	args := m.Called(ctx, id)
	return args.Get(0).(result.Result[*entities.BookShelf])
}

func (m *BookShelfRepository) Create(ctx context.Context, shelf *entities.BookShelf) result.Result[*entities.BookShelf] {
	args := m.Called(ctx, shelf)
	if fn, ok := args.Get(0).(func(*entities.BookShelf) result.Result[*entities.BookShelf]); ok {
		return fn(shelf)
	}
	return args.Get(0).(result.Result[*entities.BookShelf])
}

func (m *BookShelfRepository) Update(ctx context.Context, id string, shelf *entities.BookShelf) result.Result[*entities.BookShelf] {
	args := m.Called(ctx, id, shelf)
	if fn, ok := args.Get(0).(func(*entities.BookShelf) result.Result[*entities.BookShelf]); ok {
		return fn(shelf)
	}
	return args.Get(0).(result.Result[*entities.BookShelf])
}

func (m *BookShelfRepository) Delete(ctx context.Context, id string) result.Result[*entities.BookShelf] {
	args := m.Called(ctx, id)
	return args.Get(0).(result.Result[*entities.BookShelf])
}

func (m *BookShelfRepository) FindAll(ctx context.Context, p result.Pagination, userID string) result.Result[result.Page[entities.BookShelf]] {
	args := m.Called(ctx, p, userID)
	return args.Get(0).(result.Result[result.Page[entities.BookShelf]])
}

func (m *BookShelfRepository) FindByTitle(ctx context.Context, title string) result.Result[*entities.BookShelf] {
	args := m.Called(ctx, title)
	return args.Get(0).(result.Result[*entities.BookShelf])
}

func (m *BookShelfRepository) FindByBookID(ctx context.Context, bookID string) result.Result[[]entities.BookShelf] {
	args := m.Called(ctx, bookID)
	return args.Get(0).(result.Result[[]entities.BookShelf])
}

func (m *BookShelfRepository) AddBook(ctx context.Context, shelfID, bookID string) result.Result[*entities.BookShelf] {
	args := m.Called(ctx, shelfID, bookID)
	return args.Get(0).(result.Result[*entities.BookShelf])
}

func (m *BookShelfRepository) RemoveBook(ctx context.Context, shelfID, bookID string) result.Result[*entities.BookShelf] {
	args := m.Called(ctx, shelfID, bookID)
	return args.Get(0).(result.Result[*entities.BookShelf])
}

// ===========================
// Authors
// ===========================

type AuthorRepository struct {
	mock.Mock
}

func (m *AuthorRepository) FindAll(ctx context.Context, query string, p result.Pagination, userID string) result.Result[result.Page[entities.Author]] {
	args := m.Called(ctx, query, p, userID)
	return args.Get(0).(result.Result[result.Page[entities.Author]])
}

func (m *AuthorRepository) FindByName(ctx context.Context, name string) result.Result[*entities.Author] {
	args := m.Called(ctx, name)
	return args.Get(0).(result.Result[*entities.Author])
}

func (m *AuthorRepository) Create(ctx context.Context, author *entities.Author) result.Result[*entities.Author] {
	args := m.Called(ctx, author)
	if fn, ok := args.Get(0).(func(*entities.Author) result.Result[*entities.Author]); ok {
		return fn(author)
	}
	return args.Get(0).(result.Result[*entities.Author])
}

func (m *AuthorRepository) UpdateByName(ctx context.Context, name string, author *entities.Author) result.Result[*entities.Author] {
	args := m.Called(ctx, name, author)
	if fn, ok := args.Get(0).(func(*entities.Author) result.Result[*entities.Author]); ok {
		return fn(author)
	}
	return args.Get(0).(result.Result[*entities.Author])
}

// ===========================
// Roles
// ===========================

type RoleRepository struct {
	mock.Mock
}

func (m *RoleRepository) FindAll(ctx context.Context, p result.Pagination) result.Result[result.Page[entities.Role]] {
	args := m.Called(ctx, p)
	return args.Get(0).(result.Result[result.Page[entities.Role]])
}

func (m *RoleRepository) FindByID(ctx context.Context, id string) result.Result[*entities.Role] {
	args := m.Called(ctx, id)
	return args.Get(0).(result.Result[*entities.Role])
}

func (m *RoleRepository) FindByName(ctx context.Context, name string) result.Result[*entities.Role] {
	args := m.Called(ctx, name)
	return args.Get(0).(result.Result[*entities.Role])
}

func (m *RoleRepository) Create(ctx context.Context, role *entities.Role) result.Result[*entities.Role] {
	args := m.Called(ctx, role)
	if fn, ok := args.Get(0).(func(*entities.Role) result.Result[*entities.Role]); ok {
		return fn(role)
	}
	return args.Get(0).(result.Result[*entities.Role])
}

func (m *RoleRepository) Update(ctx context.Context, id string, role *entities.Role) result.Result[*entities.Role] {
	args := m.Called(ctx, id, role)
	if fn, ok := args.Get(0).(func(*entities.Role) result.Result[*entities.Role]); ok {
		return fn(role)
	}
	return args.Get(0).(result.Result[*entities.Role])
}

func (m *RoleRepository) Delete(ctx context.Context, id string) result.Result[*entities.Role] {
	args := m.Called(ctx, id)
	return args.Get(0).(result.Result[*entities.Role])
}

// ===========================
// Users
// ===========================

type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) FindAll(ctx context.Context, p result.Pagination) result.Result[result.Page[entities.User]] {
	args := m.Called(ctx, p)
	return args.Get(0).(result.Result[result.Page[entities.User]])
}

func (m *UserRepository) FindByID(ctx context.Context, id string) result.Result[*entities.User] {
	args := m.Called(ctx, id)
	return args.Get(0).(result.Result[*entities.User])
}

func (m *UserRepository) Create(ctx context.Context, user *entities.User) result.Result[*entities.User] {
	args := m.Called(ctx, user)
	if fn, ok := args.Get(0).(func(*entities.User) result.Result[*entities.User]); ok {
		return fn(user)
	}
	return args.Get(0).(result.Result[*entities.User])
}

func (m *UserRepository) Update(ctx context.Context, id string, user *entities.User) result.Result[*entities.User] {
	args := m.Called(ctx, id, user)
	if fn, ok := args.Get(0).(func(*entities.User) result.Result[*entities.User]); ok {
		return fn(user)
	}
	return args.Get(0).(result.Result[*entities.User])
}

func (m *UserRepository) Count(ctx context.Context) result.Result[int64] {
	args := m.Called(ctx)
	return args.Get(0).(result.Result[int64])
}

func (m *UserRepository) CountByRoleID(ctx context.Context, roleID string) result.Result[int64] {
	args := m.Called(ctx, roleID)
	return args.Get(0).(result.Result[int64])
}

// ===========================
// Saved positions
// ===========================

type SavedPositionRepository struct {
	mock.Mock
}

func (m *SavedPositionRepository) FindByBookAndUser(ctx context.Context, bookID, userID string) result.Result[*entities.SavedPosition] {
	args := m.Called(ctx, bookID, userID)
	return args.Get(0).(result.Result[*entities.SavedPosition])
}

func (m *SavedPositionRepository) FindAllByUser(ctx context.Context, userID string) result.Result[[]entities.SavedPosition] {
	args := m.Called(ctx, userID)
	return args.Get(0).(result.Result[[]entities.SavedPosition])
}

func (m *SavedPositionRepository) Upsert(ctx context.Context, position *entities.SavedPosition) result.Result[*entities.SavedPosition] {
	args := m.Called(ctx, position)
	if fn, ok := args.Get(0).(func(*entities.SavedPosition) result.Result[*entities.SavedPosition]); ok {
		return fn(position)
	}
	return args.Get(0).(result.Result[*entities.SavedPosition])
}

func (m *SavedPositionRepository) Delete(ctx context.Context, bookID, userID string) result.Result[*entities.SavedPosition] {
	args := m.Called(ctx, bookID, userID)
	return args.Get(0).(result.Result[*entities.SavedPosition])
}

// ===========================
// External services
// ===========================

type MetadataGateway struct {
	mock.Mock
}

func (m *MetadataGateway) FindBookSummary(ctx context.Context, title, author string) *string {
	args := m.Called(ctx, title, author)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*string)
}

func (m *MetadataGateway) FindAuthorEnrichment(ctx context.Context, name string) usecases.AuthorEnrichment {
	args := m.Called(ctx, name)
	return args.Get(0).(usecases.AuthorEnrichment)
}

type AuditLogger struct {
	mock.Mock
}

func (m *AuditLogger) LogAsync(event *entities.AuditEvent) {
	m.Called(event)
}

var (
	_ usecases.BookRepository          = (*BookRepository)(nil)
	_ usecases.BookShelfRepository     = (*BookShelfRepository)(nil)
	_ usecases.AuthorRepository        = (*AuthorRepository)(nil)
	_ usecases.RoleRepository          = (*RoleRepository)(nil)
	_ usecases.UserRepository          = (*UserRepository)(nil)
	_ usecases.SavedPositionRepository = (*SavedPositionRepository)(nil)
	_ usecases.MetadataGateway         = (*MetadataGateway)(nil)
	_ usecases.AuditLogger             = (*AuditLogger)(nil)
)

// Echo returns a successful result holding the written entity. Pass an
// instantiation such as Echo[*entities.Book] to Return on a write method.
func Echo[T any](v T) result.Result[T] {
	return result.Success(v)
}
