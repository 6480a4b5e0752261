package books

import (
	"context"

	"github.com/homebranch/server/internal/entities"
	"github.com/homebranch/server/internal/result"
	"github.com/homebranch/server/internal/usecases"
)

// UpdateBookRequest carries a partial update; nil fields keep their value.
type UpdateBookRequest struct {
	ID            string
	Title         *string
	Author        *string
	IsFavorite    *bool
	PublishedYear *int
}

type UpdateBook struct {
	books usecases.BookRepository
}

func NewUpdateBook(books usecases.BookRepository) *UpdateBook {
	return &UpdateBook{books: books}
}

func (uc *UpdateBook) Execute(ctx context.Context, req UpdateBookRequest) result.Result[*entities.Book] {
	found := uc.books.FindByID(ctx, req.ID)
	if found.IsFailure() {
		return found
	}

	book := found.Value()
	if req.Title != nil {
		book.Title = *req.Title
	}
	if req.Author != nil {
		book.Author = *req.Author
	}
	if req.IsFavorite != nil {
		book.IsFavorite = *req.IsFavorite
	}
	if req.PublishedYear != nil {
		book.PublishedYear = req.PublishedYear
	}

	return uc.books.Update(ctx, req.ID, book)
}

// FetchBookSummary refreshes a book's summary from the metadata gateway.
// A missing summary leaves the book untouched and is not a failure.
type FetchBookSummary struct {
	books   usecases.BookRepository
	gateway usecases.MetadataGateway
}

func NewFetchBookSummary(books usecases.BookRepository, gateway usecases.MetadataGateway) *FetchBookSummary {
	return &FetchBookSummary{books: books, gateway: gateway}
}

func (uc *FetchBookSummary) Execute(ctx context.Context, req GetBookByIDRequest) result.Result[*entities.Book] {
	found := uc.books.FindByID(ctx, req.ID)
	if found.IsFailure() {
		return found
	}

	book := found.Value()
	summary := uc.gateway.FindBookSummary(ctx, book.Title, book.Author)
	if summary == nil {
		return found
	}

	book.Summary = summary
	return uc.books.Update(ctx, book.ID, book)
}
