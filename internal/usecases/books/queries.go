package books

import (
	"context"

	"github.com/homebranch/server/internal/entities"
	"github.com/homebranch/server/internal/result"
	"github.com/homebranch/server/internal/usecases"
)

type GetBookByIDRequest struct {
	ID string
}

type GetBookByID struct {
	books usecases.BookRepository
}

func NewGetBookByID(books usecases.BookRepository) *GetBookByID {
	return &GetBookByID{books: books}
}

func (uc *GetBookByID) Execute(ctx context.Context, req GetBookByIDRequest) result.Result[*entities.Book] {
	return uc.books.FindByID(ctx, req.ID)
}

// DownloadBook resolves the book whose file the caller is about to stream.
type DownloadBook struct {
	books usecases.BookRepository
}

func NewDownloadBook(books usecases.BookRepository) *DownloadBook {
	return &DownloadBook{books: books}
}

func (uc *DownloadBook) Execute(ctx context.Context, req GetBookByIDRequest) result.Result[*entities.Book] {
	return uc.books.FindByID(ctx, req.ID)
}

// ListBooksRequest is shared by the listing use cases. A blank Query lists,
// anything else searches. A blank UserID means every uploader.
type ListBooksRequest struct {
	Query      string
	Pagination result.Pagination
	UserID     string
}

type GetBooks struct {
	books usecases.BookRepository
}

func NewGetBooks(books usecases.BookRepository) *GetBooks {
	return &GetBooks{books: books}
}

func (uc *GetBooks) Execute(ctx context.Context, req ListBooksRequest) result.Result[result.Page[entities.Book]] {
	if req.Query != "" {
		return uc.books.SearchByTitle(ctx, req.Query, req.Pagination, req.UserID)
	}
	return uc.books.FindAll(ctx, req.Pagination, req.UserID)
}

type GetFavoriteBooks struct {
	books usecases.BookRepository
}

func NewGetFavoriteBooks(books usecases.BookRepository) *GetFavoriteBooks {
	return &GetFavoriteBooks{books: books}
}

func (uc *GetFavoriteBooks) Execute(ctx context.Context, req ListBooksRequest) result.Result[result.Page[entities.Book]] {
	if req.Query != "" {
		return uc.books.SearchFavoritesByTitle(ctx, req.Query, req.Pagination, req.UserID)
	}
	return uc.books.FindFavorites(ctx, req.Pagination, req.UserID)
}
