package metadata

import (
	"context"
	"errors"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/homebranch/server/internal/usecases"
)

// Gateway adapts OpenLibraryClient to the best-effort enrichment contract:
// lookups never fail, and every error is logged and degrades to nil.
type Gateway struct {
	client *OpenLibraryClient
}

// NewGateway creates an enrichment gateway backed by client.
func NewGateway(client *OpenLibraryClient) *Gateway {
	return &Gateway{client: client}
}

// FindBookSummary returns the description of the first work matching title
// and author, or nil.
func (g *Gateway) FindBookSummary(ctx context.Context, title, author string) *string {
	key, err := g.client.SearchWork(ctx, title, author)
	if err != nil {
		warn(err, "Failed to find work for %q by %q", title, author)
		return nil
	}

	description, err := g.client.WorkDescription(ctx, key)
	if err != nil {
		warn(err, "Failed to fetch description of %s", key)
		return nil
	}
	return &description
}

// FindAuthorEnrichment looks up the author's biography and photo. The two
// lookups run concurrently once the author is identified.
func (g *Gateway) FindAuthorEnrichment(ctx context.Context, name string) usecases.AuthorEnrichment {
	var enrichment usecases.AuthorEnrichment

	olid, err := g.client.SearchAuthor(ctx, name)
	if err != nil {
		warn(err, "Failed to enrich author %q", name)
		return enrichment
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		bio, err := g.client.AuthorBiography(egCtx, olid)
		if err != nil {
			warn(err, "No biography for author %q (%s)", name, olid)
			return nil
		}
		enrichment.Biography = &bio
		return nil
	})
	eg.Go(func() error {
		photoURL, err := g.client.AuthorPhotoURL(egCtx, olid)
		if err != nil {
			warn(err, "No photo for author %q (%s)", name, olid)
			return nil
		}
		enrichment.PhotoURL = &photoURL
		return nil
	})
	_ = eg.Wait()

	return enrichment
}

// warn logs lookup failures. Missing records are expected and not logged.
func warn(err error, format string, args ...any) {
	if errors.Is(err, errNotFound) {
		return
	}
	args = append(args, err)
	log.Printf("[OPENLIBRARY] Warning: "+format+": %v", args...)
}
