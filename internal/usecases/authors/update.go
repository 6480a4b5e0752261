package authors

import (
	"context"

	"github.com/homebranch/server/internal/entities"
	"github.com/homebranch/server/internal/result"
	"github.com/homebranch/server/internal/usecases"
)

// UpdateAuthorRequest changes the biography only. A nil Biography keeps
// the stored one.
type UpdateAuthorRequest struct {
	Name      string
	Biography *string
}

type UpdateAuthor struct {
	authors usecases.AuthorRepository
}

func NewUpdateAuthor(authors usecases.AuthorRepository) *UpdateAuthor {
	return &UpdateAuthor{authors: authors}
}

func (uc *UpdateAuthor) Execute(ctx context.Context, req UpdateAuthorRequest) result.Result[*entities.Author] {
	existing := uc.authors.FindByName(ctx, req.Name)
	if existing.IsFailure() {
		return existing
	}

	author := existing.Value()
	biography := author.Biography
	if req.Biography != nil {
		biography = req.Biography
	}

	updated := entities.NewAuthor(author.ID, author.Name, biography, author.ProfilePictureURL)
	return uc.authors.UpdateByName(ctx, req.Name, updated)
}

type UploadAuthorProfilePictureRequest struct {
	Name              string
	ProfilePictureURL string
}

type UploadAuthorProfilePicture struct {
	authors usecases.AuthorRepository
}

func NewUploadAuthorProfilePicture(authors usecases.AuthorRepository) *UploadAuthorProfilePicture {
	return &UploadAuthorProfilePicture{authors: authors}
}

func (uc *UploadAuthorProfilePicture) Execute(ctx context.Context, req UploadAuthorProfilePictureRequest) result.Result[*entities.Author] {
	existing := uc.authors.FindByName(ctx, req.Name)
	if existing.IsFailure() {
		return existing
	}

	author := existing.Value()
	url := req.ProfilePictureURL
	updated := entities.NewAuthor(author.ID, author.Name, author.Biography, &url)
	return uc.authors.UpdateByName(ctx, req.Name, updated)
}
