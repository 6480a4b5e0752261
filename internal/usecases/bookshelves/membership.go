package bookshelves

import (
	"context"

	"github.com/homebranch/server/internal/entities"
	"github.com/homebranch/server/internal/result"
	"github.com/homebranch/server/internal/usecases"
)

type MembershipRequest struct {
	BookShelfID string
	BookID      string
}

type AddBookToBookShelf struct {
	shelves usecases.BookShelfRepository
	books   usecases.BookRepository
}

func NewAddBookToBookShelf(shelves usecases.BookShelfRepository, books usecases.BookRepository) *AddBookToBookShelf {
	return &AddBookToBookShelf{shelves: shelves, books: books}
}

func (uc *AddBookToBookShelf) Execute(ctx context.Context, req MembershipRequest) result.Result[*entities.BookShelf] {
	found := uc.shelves.FindByID(ctx, req.BookShelfID)
	if found.IsFailure() {
		return found
	}
	if found.Value().Contains(req.BookID) {
		return found
	}

	book := uc.books.FindByID(ctx, req.BookID)
	if book.IsFailure() {
		if book.Failure().IsUnexpected() {
			return result.Forward[*entities.BookShelf](book)
		}
		return result.Fail[*entities.BookShelf](entities.ErrBookNotFound)
	}

	return uc.shelves.AddBook(ctx, req.BookShelfID, req.BookID)
}

type RemoveBookFromBookShelf struct {
	shelves usecases.BookShelfRepository
}

func NewRemoveBookFromBookShelf(shelves usecases.BookShelfRepository) *RemoveBookFromBookShelf {
	return &RemoveBookFromBookShelf{shelves: shelves}
}

func (uc *RemoveBookFromBookShelf) Execute(ctx context.Context, req MembershipRequest) result.Result[*entities.BookShelf] {
	found := uc.shelves.FindByID(ctx, req.BookShelfID)
	if found.IsFailure() {
		return found
	}
	if !found.Value().Contains(req.BookID) {
		return found
	}

	return uc.shelves.RemoveBook(ctx, req.BookShelfID, req.BookID)
}
