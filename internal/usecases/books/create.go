// Package books holds the book use cases: creation with best-effort summary
// enrichment, listing and search, partial updates, summary refresh and
// ownership-checked deletion.
package books

import (
	"context"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/homebranch/server/internal/entities"
	"github.com/homebranch/server/internal/result"
	"github.com/homebranch/server/internal/usecases"
)

type CreateBookRequest struct {
	Title              string
	Author             string
	FileName           string
	IsFavorite         bool
	PublishedYear      string
	CoverImageFileName *string
	UploadedByUserID   *string
}

// CreateBook stores a new book under a freshly generated identity.
type CreateBook struct {
	books   usecases.BookRepository
	gateway usecases.MetadataGateway
}

func NewCreateBook(books usecases.BookRepository, gateway usecases.MetadataGateway) *CreateBook {
	return &CreateBook{books: books, gateway: gateway}
}

func (uc *CreateBook) Execute(ctx context.Context, req CreateBookRequest) result.Result[*entities.Book] {
	book := entities.NewBook(uuid.NewString(), req.Title, req.Author, req.FileName, req.IsFavorite)
	book.PublishedYear = ParseYear(req.PublishedYear)
	book.CoverImageFileName = req.CoverImageFileName
	book.UploadedByUserID = req.UploadedByUserID

	if uc.gateway != nil {
		book.Summary = uc.gateway.FindBookSummary(ctx, req.Title, req.Author)
	}

	return uc.books.Create(ctx, book)
}

// ParseYear reads the leading integer of s, ignoring surrounding
// whitespace and any trailing text ("1965 (1st ed.)" is 1965). It returns
// nil when s does not start with a number.
func ParseYear(s string) *int {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return nil
	}
	year, err := strconv.Atoi(s[:end])
	if err != nil {
		return nil
	}
	return &year
}
