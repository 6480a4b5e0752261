package http

import (
	"github.com/gin-gonic/gin"

	"github.com/homebranch/server/internal/http/respond"
	"github.com/homebranch/server/internal/storage"
	"github.com/homebranch/server/internal/usecases"
	"github.com/homebranch/server/internal/usecases/authors"
)

// AuthorsController handles author listing, enrichment and profile pictures.
type AuthorsController struct {
	getAuthors     *authors.GetAuthors
	getAuthor      *authors.GetAuthor
	getBooks       *authors.GetBooksByAuthor
	update         *authors.UpdateAuthor
	uploadPicture  *authors.UploadAuthorProfilePicture
	store          storage.Client
	publicBaseURL  string
	maxUploadBytes int64
}

func NewAuthorsController(repo usecases.AuthorRepository, books usecases.BookRepository, gateway usecases.MetadataGateway, store storage.Client, publicBaseURL string, maxUploadBytes int64) *AuthorsController {
	return &AuthorsController{
		getAuthors:     authors.NewGetAuthors(repo),
		getAuthor:      authors.NewGetAuthor(repo, gateway),
		getBooks:       authors.NewGetBooksByAuthor(books),
		update:         authors.NewUpdateAuthor(repo),
		uploadPicture:  authors.NewUploadAuthorProfilePicture(repo),
		store:          store,
		publicBaseURL:  publicBaseURL,
		maxUploadBytes: maxUploadBytes,
	}
}

// List handles GET /authors
func (ac *AuthorsController) List(c *gin.Context) {
	q, ok := parseListQuery(c)
	if !ok {
		return
	}
	respond.Result(c, ac.getAuthors.Execute(c.Request.Context(), authors.GetAuthorsRequest(q)))
}

// Get handles GET /authors/:name
func (ac *AuthorsController) Get(c *gin.Context) {
	respond.Result(c, ac.getAuthor.Execute(c.Request.Context(), authors.GetAuthorRequest{Name: c.Param("name")}))
}

// Books handles GET /authors/:name/books
func (ac *AuthorsController) Books(c *gin.Context) {
	q, ok := parseListQuery(c)
	if !ok {
		return
	}
	respond.Result(c, ac.getBooks.Execute(c.Request.Context(), authors.GetBooksByAuthorRequest{
		Name:       c.Param("name"),
		Query:      q.Query,
		Pagination: q.Pagination,
		UserID:     q.UserID,
	}))
}

type updateAuthorBody struct {
	Biography *string `json:"biography"`
}

// Update handles PATCH /authors/:name
func (ac *AuthorsController) Update(c *gin.Context) {
	var body updateAuthorBody
	if !bindJSON(c, &body) {
		return
	}
	respond.Result(c, ac.update.Execute(c.Request.Context(), authors.UpdateAuthorRequest{
		Name:      c.Param("name"),
		Biography: body.Biography,
	}))
}

// UploadProfilePicture handles POST /authors/:name/profile-picture
func (ac *AuthorsController) UploadProfilePicture(c *gin.Context) {
	if !parseMultipart(c, ac.maxUploadBytes) {
		return
	}
	if _, err := c.FormFile("file"); err != nil {
		respond.Failure(c, errFileRequired)
		return
	}

	fileName, err := saveImage(c, ac.store, "file", storage.AuthorImagesPrefix)
	if err != nil {
		respond.Failure(c, uploadFailure(err))
		return
	}
	key := storage.Key(storage.AuthorImagesPrefix, fileName)

	updated := ac.uploadPicture.Execute(c.Request.Context(), authors.UploadAuthorProfilePictureRequest{
		Name:              c.Param("name"),
		ProfilePictureURL: baseURL(c, ac.publicBaseURL) + "/uploads/" + key,
	})
	if updated.IsFailure() {
		discard(c, ac.store, key)
	}
	respond.Result(c, updated)
}
