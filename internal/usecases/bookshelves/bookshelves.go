// Package bookshelves holds the shelf use cases. Membership changes are
// idempotent: adding a present book or removing an absent one returns the
// shelf without writing.
package bookshelves

import (
	"context"

	"github.com/google/uuid"

	"github.com/homebranch/server/internal/entities"
	"github.com/homebranch/server/internal/result"
	"github.com/homebranch/server/internal/usecases"
)

type CreateBookShelfRequest struct {
	Title           string
	CreatedByUserID *string
}

type CreateBookShelf struct {
	shelves usecases.BookShelfRepository
}

func NewCreateBookShelf(shelves usecases.BookShelfRepository) *CreateBookShelf {
	return &CreateBookShelf{shelves: shelves}
}

func (uc *CreateBookShelf) Execute(ctx context.Context, req CreateBookShelfRequest) result.Result[*entities.BookShelf] {
	shelf := entities.NewBookShelf(uuid.NewString(), req.Title, nil, req.CreatedByUserID)
	return uc.shelves.Create(ctx, shelf)
}

type BookShelfIDRequest struct {
	ID string
}

type DeleteBookShelf struct {
	shelves usecases.BookShelfRepository
}

func NewDeleteBookShelf(shelves usecases.BookShelfRepository) *DeleteBookShelf {
	return &DeleteBookShelf{shelves: shelves}
}

func (uc *DeleteBookShelf) Execute(ctx context.Context, req BookShelfIDRequest) result.Result[*entities.BookShelf] {
	return uc.shelves.Delete(ctx, req.ID)
}

type GetBookShelfByID struct {
	shelves usecases.BookShelfRepository
}

func NewGetBookShelfByID(shelves usecases.BookShelfRepository) *GetBookShelfByID {
	return &GetBookShelfByID{shelves: shelves}
}

func (uc *GetBookShelfByID) Execute(ctx context.Context, req BookShelfIDRequest) result.Result[*entities.BookShelf] {
	return uc.shelves.FindByID(ctx, req.ID)
}

type GetBookShelvesRequest struct {
	Pagination result.Pagination
	UserID     string
}

type GetBookShelves struct {
	shelves usecases.BookShelfRepository
}

func NewGetBookShelves(shelves usecases.BookShelfRepository) *GetBookShelves {
	return &GetBookShelves{shelves: shelves}
}

func (uc *GetBookShelves) Execute(ctx context.Context, req GetBookShelvesRequest) result.Result[result.Page[entities.BookShelf]] {
	return uc.shelves.FindAll(ctx, req.Pagination, req.UserID)
}

type GetBookShelvesByBookRequest struct {
	BookID string
}

type GetBookShelvesByBook struct {
	shelves usecases.BookShelfRepository
}

func NewGetBookShelvesByBook(shelves usecases.BookShelfRepository) *GetBookShelvesByBook {
	return &GetBookShelvesByBook{shelves: shelves}
}

func (uc *GetBookShelvesByBook) Execute(ctx context.Context, req GetBookShelvesByBookRequest) result.Result[[]entities.BookShelf] {
	return uc.shelves.FindByBookID(ctx, req.BookID)
}

type GetBookShelfBooksRequest struct {
	ID         string
	Pagination result.Pagination
}

// GetBookShelfBooks pages through a shelf's books. An unknown shelf is
// reported as such rather than as an empty page.
type GetBookShelfBooks struct {
	shelves usecases.BookShelfRepository
	books   usecases.BookRepository
}

func NewGetBookShelfBooks(shelves usecases.BookShelfRepository, books usecases.BookRepository) *GetBookShelfBooks {
	return &GetBookShelfBooks{shelves: shelves, books: books}
}

func (uc *GetBookShelfBooks) Execute(ctx context.Context, req GetBookShelfBooksRequest) result.Result[result.Page[entities.Book]] {
	found := uc.shelves.FindByID(ctx, req.ID)
	if found.IsFailure() {
		return result.Forward[result.Page[entities.Book]](found)
	}
	return uc.books.FindByBookShelfID(ctx, req.ID, req.Pagination)
}

type UpdateBookShelfRequest struct {
	ID    string
	Title *string
}

type UpdateBookShelf struct {
	shelves usecases.BookShelfRepository
}

func NewUpdateBookShelf(shelves usecases.BookShelfRepository) *UpdateBookShelf {
	return &UpdateBookShelf{shelves: shelves}
}

func (uc *UpdateBookShelf) Execute(ctx context.Context, req UpdateBookShelfRequest) result.Result[*entities.BookShelf] {
	found := uc.shelves.FindByID(ctx, req.ID)
	if found.IsFailure() {
		return found
	}

	shelf := found.Value()
	if req.Title != nil {
		shelf.Title = *req.Title
	}
	return uc.shelves.Update(ctx, req.ID, shelf)
}
