package http

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/homebranch/server/internal/auth"
	"github.com/homebranch/server/internal/entities"
	"github.com/homebranch/server/internal/http/respond"
	"github.com/homebranch/server/internal/result"
	"github.com/homebranch/server/internal/storage"
	"github.com/homebranch/server/internal/usecases"
	"github.com/homebranch/server/internal/usecases/books"
	"github.com/homebranch/server/internal/utils"
)

// BooksController handles the book catalogue endpoints.
type BooksController struct {
	getBooks     *books.GetBooks
	getFavorites *books.GetFavoriteBooks
	getByID      *books.GetBookByID
	create       *books.CreateBook
	update       *books.UpdateBook
	delete       *books.DeleteBook
	fetchSummary *books.FetchBookSummary
	download     *books.DownloadBook

	store          storage.Client
	queue          TaskQueue
	maxUploadBytes int64
}

// NewBooksController creates a new BooksController. queue may be nil, in
// which case summaries are always fetched synchronously.
func NewBooksController(repo usecases.BookRepository, gateway usecases.MetadataGateway, auditor usecases.AuditLogger, store storage.Client, queue TaskQueue, maxUploadBytes int64) *BooksController {
	return &BooksController{
		getBooks:       books.NewGetBooks(repo),
		getFavorites:   books.NewGetFavoriteBooks(repo),
		getByID:        books.NewGetBookByID(repo),
		create:         books.NewCreateBook(repo, gateway),
		update:         books.NewUpdateBook(repo),
		delete:         books.NewDeleteBook(repo, auditor),
		fetchSummary:   books.NewFetchBookSummary(repo, gateway),
		download:       books.NewDownloadBook(repo),
		store:          store,
		queue:          queue,
		maxUploadBytes: maxUploadBytes,
	}
}

// List handles GET /books
func (bc *BooksController) List(c *gin.Context) {
	q, ok := parseListQuery(c)
	if !ok {
		return
	}
	respond.Result(c, bc.getBooks.Execute(c.Request.Context(), books.ListBooksRequest(q)))
}

// ListFavorites handles GET /books/favorite
func (bc *BooksController) ListFavorites(c *gin.Context) {
	q, ok := parseListQuery(c)
	if !ok {
		return
	}
	respond.Result(c, bc.getFavorites.Execute(c.Request.Context(), books.ListBooksRequest(q)))
}

// Get handles GET /books/:id
func (bc *BooksController) Get(c *gin.Context) {
	respond.Result(c, bc.getByID.Execute(c.Request.Context(), books.GetBookByIDRequest{ID: c.Param("id")}))
}

// Create handles POST /books
//
// Multipart fields: file (required), coverImage, title, author, isFavorite,
// publishedYear. The caller is recorded as the uploader.
func (bc *BooksController) Create(c *gin.Context) {
	if !parseMultipart(c, bc.maxUploadBytes) {
		return
	}

	title := strings.TrimSpace(c.PostForm("title"))
	author := strings.TrimSpace(c.PostForm("author"))
	if title == "" || author == "" {
		respond.BadRequest(c, "title and author are required")
		return
	}
	if _, err := c.FormFile("file"); err != nil {
		respond.Failure(c, errFileRequired)
		return
	}

	fileName, err := saveFormFile(c, bc.store, "file", storage.BooksPrefix, ".epub")
	if err != nil {
		respond.Failure(c, result.Unexpected(err))
		return
	}
	stored := []string{storage.Key(storage.BooksPrefix, fileName)}

	req := books.CreateBookRequest{
		Title:         title,
		Author:        author,
		FileName:      fileName,
		IsFavorite:    parseFormBool(c.PostForm("isFavorite")),
		PublishedYear: c.PostForm("publishedYear"),
	}
	if userID := auth.GetUserID(c); userID != "" {
		req.UploadedByUserID = &userID
	}

	coverName, err := saveImage(c, bc.store, "coverImage", storage.CoverImagesPrefix)
	if err != nil {
		discard(c, bc.store, stored...)
		respond.Failure(c, uploadFailure(err))
		return
	}
	if coverName != "" {
		req.CoverImageFileName = &coverName
		stored = append(stored, storage.Key(storage.CoverImagesPrefix, coverName))
	}

	created := bc.create.Execute(c.Request.Context(), req)
	if created.IsFailure() {
		discard(c, bc.store, stored...)
	}
	respond.Result(c, created)
}

// updateBookBody is the JSON body of PUT /books/:id. Absent fields are
// left unchanged.
type updateBookBody struct {
	Title         *string `json:"title"`
	Author        *string `json:"author"`
	IsFavorite    *bool   `json:"isFavorite"`
	PublishedYear *int    `json:"publishedYear"`
}

// Update handles PUT /books/:id
func (bc *BooksController) Update(c *gin.Context) {
	var body updateBookBody
	if !bindJSON(c, &body) {
		return
	}
	respond.Result(c, bc.update.Execute(c.Request.Context(), books.UpdateBookRequest{
		ID:            c.Param("id"),
		Title:         body.Title,
		Author:        body.Author,
		IsFavorite:    body.IsFavorite,
		PublishedYear: body.PublishedYear,
	}))
}

// Delete handles DELETE /books/:id
//
// Only the uploader or an admin may delete a book that has an uploader.
// The stored book and cover files are removed once the record is gone.
func (bc *BooksController) Delete(c *gin.Context) {
	deleted := bc.delete.Execute(c.Request.Context(), books.DeleteBookRequest{
		ID:                 c.Param("id"),
		RequestingUserID:   auth.GetUserID(c),
		RequestingUserRole: auth.GetRoleName(c),
		IPAddress:          c.ClientIP(),
	})
	if deleted.IsSuccess() {
		bc.removeFiles(c.Request.Context(), deleted.Value())
	}
	respond.Result(c, deleted)
}

func (bc *BooksController) removeFiles(ctx context.Context, book *entities.Book) {
	keys := []string{storage.Key(storage.BooksPrefix, book.FileName)}
	if book.CoverImageFileName != nil && *book.CoverImageFileName != "" {
		keys = append(keys, storage.Key(storage.CoverImagesPrefix, *book.CoverImageFileName))
	}
	if err := storage.DeleteAll(ctx, bc.store, keys...); err != nil {
		log.Printf("Failed to remove files of book %s: %v", book.ID, err)
	}
}

// FetchSummary handles POST /books/:id/fetch-summary
//
// With ?async=true the lookup is queued and 202 is returned with the task ID.
func (bc *BooksController) FetchSummary(c *gin.Context) {
	id := c.Param("id")

	if parseFormBool(c.Query("async")) && bc.queue != nil {
		found := bc.getByID.Execute(c.Request.Context(), books.GetBookByIDRequest{ID: id})
		if found.IsFailure() {
			respond.Failure(c, found.Failure())
			return
		}
		ids, err := bc.queue.EnqueueSummaryFetch(c.Request.Context(), id)
		if err != nil {
			respond.Failure(c, result.Unexpected(fmt.Errorf("enqueue summary fetch: %w", err)))
			return
		}
		respondAccepted(c, gin.H{"taskId": ids[0], "bookId": id})
		return
	}

	respond.Result(c, bc.fetchSummary.Execute(c.Request.Context(), books.GetBookByIDRequest{ID: id}))
}

// downloadFileName turns a book title into a safe attachment name.
func downloadFileName(title string) string {
	return utils.SanitizeFilename(title, "book") + ".epub"
}

// Download handles GET /books/:id/download
func (bc *BooksController) Download(c *gin.Context) {
	found := bc.download.Execute(c.Request.Context(), books.GetBookByIDRequest{ID: c.Param("id")})
	if found.IsFailure() {
		respond.Failure(c, found.Failure())
		return
	}
	book := found.Value()

	file, err := bc.store.Download(c.Request.Context(), storage.Key(storage.BooksPrefix, book.FileName))
	if errors.Is(err, storage.ErrNotFound) {
		respond.Failure(c, entities.ErrBookFileNotFound)
		return
	}
	if err != nil {
		respond.Failure(c, result.Unexpected(err))
		return
	}
	defer file.Close()

	c.DataFromReader(http.StatusOK, -1, "application/epub+zip", file, map[string]string{
		"Content-Disposition": fmt.Sprintf(`attachment; filename="%s"`, downloadFileName(book.Title)),
	})
}

func parseFormBool(v string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	return err == nil && b
}
