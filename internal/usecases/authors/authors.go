// Package authors holds the author use cases. Authors are derived from the
// distinct book author names; the stored Author record only caches the
// enrichment found for a name.
package authors

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/homebranch/server/internal/entities"
	"github.com/homebranch/server/internal/result"
	"github.com/homebranch/server/internal/usecases"
)

type GetAuthorRequest struct {
	Name string
}

// GetAuthor returns the enrichment record for a name, creating it on first
// read. Enrichment is retried on every read until it yields something; once
// a biography or photo is stored the gateway is no longer consulted.
type GetAuthor struct {
	authors usecases.AuthorRepository
	gateway usecases.MetadataGateway
}

func NewGetAuthor(authors usecases.AuthorRepository, gateway usecases.MetadataGateway) *GetAuthor {
	return &GetAuthor{authors: authors, gateway: gateway}
}

func (uc *GetAuthor) Execute(ctx context.Context, req GetAuthorRequest) result.Result[*entities.Author] {
	existing := uc.authors.FindByName(ctx, req.Name)
	if existing.IsSuccess() {
		author := existing.Value()
		if author.IsEnriched() {
			return existing
		}

		enrichment := uc.gateway.FindAuthorEnrichment(ctx, req.Name)
		if enrichment.IsEmpty() {
			return existing
		}

		updated := entities.NewAuthor(author.ID, author.Name, enrichment.Biography, enrichment.PhotoURL)
		return uc.authors.UpdateByName(ctx, req.Name, updated)
	}

	if !errors.Is(existing.Failure(), entities.ErrAuthorNotFound) {
		return existing
	}

	enrichment := uc.gateway.FindAuthorEnrichment(ctx, req.Name)
	author := entities.NewAuthor(uuid.NewString(), req.Name, enrichment.Biography, enrichment.PhotoURL)
	created := uc.authors.Create(ctx, author)
	if created.IsFailure() {
		// A concurrent lookup may have stored the same name first.
		if again := uc.authors.FindByName(ctx, req.Name); again.IsSuccess() {
			return again
		}
	}
	return created
}

type GetAuthorsRequest struct {
	Query      string
	Pagination result.Pagination
	UserID     string
}

type GetAuthors struct {
	authors usecases.AuthorRepository
}

func NewGetAuthors(authors usecases.AuthorRepository) *GetAuthors {
	return &GetAuthors{authors: authors}
}

func (uc *GetAuthors) Execute(ctx context.Context, req GetAuthorsRequest) result.Result[result.Page[entities.Author]] {
	return uc.authors.FindAll(ctx, req.Query, req.Pagination, req.UserID)
}

type GetBooksByAuthorRequest struct {
	Name       string
	Query      string
	Pagination result.Pagination
	UserID     string
}

type GetBooksByAuthor struct {
	books usecases.BookRepository
}

func NewGetBooksByAuthor(books usecases.BookRepository) *GetBooksByAuthor {
	return &GetBooksByAuthor{books: books}
}

func (uc *GetBooksByAuthor) Execute(ctx context.Context, req GetBooksByAuthorRequest) result.Result[result.Page[entities.Book]] {
	if req.Query != "" {
		return uc.books.SearchByAuthorAndTitle(ctx, req.Name, req.Query, req.Pagination, req.UserID)
	}
	return uc.books.FindByAuthor(ctx, req.Name, req.Pagination, req.UserID)
}
