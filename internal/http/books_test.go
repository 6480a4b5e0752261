package http

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/homebranch/server/internal/entities"
	"github.com/homebranch/server/internal/result"
	"github.com/homebranch/server/internal/storage"
	"github.com/homebranch/server/internal/usecases/mocks"
)

func strPtr(s string) *string { return &s }

func storedBook(t *testing.T, f *apiFixture, id, uploader string) *entities.Book {
	t.Helper()
	book := entities.NewBook(id, "Dune: Part One!", "Frank Herbert", id+".epub", false)
	book.CoverImageFileName = strPtr(id + ".jpg")
	if uploader != "" {
		book.UploadedByUserID = strPtr(uploader)
	}

	ctx := context.Background()
	require.NoError(t, f.store.Upload(ctx, storage.Key(storage.BooksPrefix, book.FileName), strings.NewReader("epub-bytes"), -1, ""))
	require.NoError(t, f.store.Upload(ctx, storage.Key(storage.CoverImagesPrefix, *book.CoverImageFileName), strings.NewReader("jpg-bytes"), -1, ""))
	return book
}

func bookPage(books ...entities.Book) result.Result[result.Page[entities.Book]] {
	return result.Success(result.NewPage(books, result.Pagination{}, int64(len(books))))
}

func TestBooksController_List(t *testing.T) {
	t.Run("passes filters to the search", func(t *testing.T) {
		f := setupAPI(t, readerUser())
		p := result.Pagination{Limit: 10, Offset: 5}
		f.books.On("SearchByTitle", mock.Anything, "dune", p, "u9").
			Return(bookPage(*entities.NewBook("b1", "Dune", "Frank Herbert", "b1.epub", false)))

		rr := f.get("/books?limit=10&offset=5&query=dune&userId=u9")

		assert.Equal(t, http.StatusOK, rr.Code)
		var page result.Page[entities.Book]
		decodeValue(t, rr, &page)
		require.Len(t, page.Data, 1)
		assert.Equal(t, "Dune", page.Data[0].Title)
		f.books.AssertExpectations(t)
	})

	t.Run("favorites without pagination", func(t *testing.T) {
		f := setupAPI(t, readerUser())
		f.books.On("FindFavorites", mock.Anything, result.Pagination{}, "").Return(bookPage())

		rr := f.get("/books/favorite")

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"success":true,"value":{"data":[],"offset":0,"total":0,"nextCursor":null}}`, rr.Body.String())
	})

	t.Run("rejects invalid pagination", func(t *testing.T) {
		f := setupAPI(t, readerUser())

		for _, query := range []string{"limit=0", "limit=-3", "limit=abc", "offset=-1", "offset=x"} {
			rr := f.get("/books?" + query)
			assert.Equal(t, http.StatusBadRequest, rr.Code, query)
			assert.Equal(t, result.CodeBadRequest, decode(t, rr).Error, query)
		}
	})
}

func TestBooksController_Get(t *testing.T) {
	f := setupAPI(t, readerUser())
	f.books.On("FindByID", mock.Anything, "missing").Return(result.Fail[*entities.Book](entities.ErrBookNotFound))

	rr := f.get("/books/missing")

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"success":false,"error":"BOOK_NOT_FOUND","message":"Book not found"}`, rr.Body.String())
}

func TestBooksController_Create(t *testing.T) {
	t.Run("stores files and records uploader", func(t *testing.T) {
		f := setupAPI(t, readerUser())
		f.gateway.On("FindBookSummary", mock.Anything, "Dune", "Frank Herbert").Return(strPtr("Spice."))
		f.books.On("Create", mock.Anything, mock.AnythingOfType("*entities.Book")).Return(mocks.Echo[*entities.Book])

		rr := f.do(multipartRequest(t, "/books",
			map[string]string{"title": "Dune", "author": "Frank Herbert", "isFavorite": "true", "publishedYear": "1965"},
			map[string][]byte{"file": []byte("epub-bytes"), "coverImage": pngImage(t)},
		))

		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		var book entities.Book
		decodeValue(t, rr, &book)
		assert.True(t, strings.HasSuffix(book.FileName, ".epub"))
		assert.True(t, book.IsFavorite)
		require.NotNil(t, book.PublishedYear)
		assert.Equal(t, 1965, *book.PublishedYear)
		require.NotNil(t, book.UploadedByUserID)
		assert.Equal(t, "u1", *book.UploadedByUserID)
		assert.Equal(t, "Spice.", *book.Summary)

		assert.Equal(t, "epub-bytes", f.readStored(t, storage.Key(storage.BooksPrefix, book.FileName)))
		require.NotNil(t, book.CoverImageFileName)
		assert.True(t, strings.HasSuffix(*book.CoverImageFileName, ".jpg"))
		assertJPEG(t, f.readStored(t, storage.Key(storage.CoverImagesPrefix, *book.CoverImageFileName)))
	})

	t.Run("undecodable cover is rejected", func(t *testing.T) {
		f := setupAPI(t, readerUser())

		rr := f.do(multipartRequest(t, "/books",
			map[string]string{"title": "Dune", "author": "Frank Herbert"},
			map[string][]byte{"file": []byte("epub-bytes"), "coverImage": []byte("not a picture")},
		))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "Image could not be decoded", decode(t, rr).Message)
		entries, err := filepathGlob(f, "books/*.epub")
		require.NoError(t, err)
		assert.Empty(t, entries)
		f.books.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("file is required", func(t *testing.T) {
		f := setupAPI(t, readerUser())

		rr := f.do(multipartRequest(t, "/books", map[string]string{"title": "Dune", "author": "Frank Herbert"}, nil))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "A file must be provided", decode(t, rr).Message)
	})

	t.Run("title and author are required", func(t *testing.T) {
		f := setupAPI(t, readerUser())

		rr := f.do(multipartRequest(t, "/books", map[string]string{"title": "Dune"}, map[string][]byte{"file": []byte("x")}))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("rejects non multipart bodies", func(t *testing.T) {
		f := setupAPI(t, readerUser())

		rr := f.sendJSON(http.MethodPost, "/books", `{"title":"Dune"}`)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("rejects oversized uploads", func(t *testing.T) {
		f := setupAPI(t, readerUser(), func(cfg *RouterConfig) { cfg.MaxUploadBytes = 64 })

		rr := f.do(multipartRequest(t, "/books",
			map[string]string{"title": "Dune", "author": "Frank Herbert"},
			map[string][]byte{"file": []byte(strings.Repeat("x", 1024))},
		))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		f.books.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("failed save removes stored files", func(t *testing.T) {
		f := setupAPI(t, readerUser())
		var attempted *entities.Book
		f.gateway.On("FindBookSummary", mock.Anything, mock.Anything, mock.Anything).Return(nil)
		f.books.On("Create", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { attempted = args.Get(1).(*entities.Book) }).
			Return(result.Fail[*entities.Book](result.Unexpected(errors.New("db down"))))

		rr := f.do(multipartRequest(t, "/books",
			map[string]string{"title": "Dune", "author": "Frank Herbert"},
			map[string][]byte{"file": []byte("epub-bytes"), "coverImage": pngImage(t)},
		))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		require.NotNil(t, attempted)
		assert.False(t, f.exists(t, storage.Key(storage.BooksPrefix, attempted.FileName)))
		assert.False(t, f.exists(t, storage.Key(storage.CoverImagesPrefix, *attempted.CoverImageFileName)))
	})
}

func TestBooksController_Update(t *testing.T) {
	f := setupAPI(t, readerUser())
	f.books.On("FindByID", mock.Anything, "b1").Return(result.Success(entities.NewBook("b1", "Dune", "Frank Herbert", "b1.epub", false)))
	f.books.On("Update", mock.Anything, "b1", mock.Anything).Return(mocks.Echo[*entities.Book])

	rr := f.sendJSON(http.MethodPut, "/books/b1", `{"isFavorite":true,"publishedYear":1965}`)

	require.Equal(t, http.StatusOK, rr.Code)
	var book entities.Book
	decodeValue(t, rr, &book)
	assert.True(t, book.IsFavorite)
	assert.Equal(t, "Dune", book.Title)
	assert.Equal(t, 1965, *book.PublishedYear)

	rr = f.sendJSON(http.MethodPut, "/books/b1", `{"isFavorite":"yes"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestBooksController_Delete(t *testing.T) {
	t.Run("uploader deletes book and files", func(t *testing.T) {
		f := setupAPI(t, readerUser())
		book := storedBook(t, f, "b1", "u1")
		f.books.On("FindByID", mock.Anything, "b1").Return(result.Success(book))
		f.books.On("Delete", mock.Anything, "b1").Return(result.Success(book))

		rr := f.do(httptestRequest(http.MethodDelete, "/books/b1"))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.False(t, f.exists(t, storage.Key(storage.BooksPrefix, "b1.epub")))
		assert.False(t, f.exists(t, storage.Key(storage.CoverImagesPrefix, "b1.jpg")))
	})

	t.Run("other users are forbidden", func(t *testing.T) {
		f := setupAPI(t, readerUser())
		book := storedBook(t, f, "b1", "someone-else")
		f.books.On("FindByID", mock.Anything, "b1").Return(result.Success(book))

		rr := f.do(httptestRequest(http.MethodDelete, "/books/b1"))

		assert.Equal(t, http.StatusForbidden, rr.Code)
		assert.Equal(t, entities.ErrDeleteBookForbidden.Message(), decode(t, rr).Message)
		assert.True(t, f.exists(t, storage.Key(storage.BooksPrefix, "b1.epub")))
		f.books.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("admin deletes any book", func(t *testing.T) {
		f := setupAPI(t, adminUser())
		book := storedBook(t, f, "b1", "someone-else")
		f.books.On("FindByID", mock.Anything, "b1").Return(result.Success(book))
		f.books.On("Delete", mock.Anything, "b1").Return(result.Success(book))

		rr := f.do(httptestRequest(http.MethodDelete, "/books/b1"))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.False(t, f.exists(t, storage.Key(storage.BooksPrefix, "b1.epub")))
	})
}

func TestBooksController_FetchSummary(t *testing.T) {
	t.Run("synchronous", func(t *testing.T) {
		f := setupAPI(t, readerUser())
		f.books.On("FindByID", mock.Anything, "b1").Return(result.Success(entities.NewBook("b1", "Dune", "Frank Herbert", "b1.epub", false)))
		f.gateway.On("FindBookSummary", mock.Anything, "Dune", "Frank Herbert").Return(strPtr("Spice."))
		f.books.On("Update", mock.Anything, "b1", mock.Anything).Return(mocks.Echo[*entities.Book])

		rr := f.do(httptestRequest(http.MethodPost, "/books/b1/fetch-summary"))

		require.Equal(t, http.StatusOK, rr.Code)
		var book entities.Book
		decodeValue(t, rr, &book)
		assert.Equal(t, "Spice.", *book.Summary)
		assert.Empty(t, f.queue.enqueued)
	})

	t.Run("asynchronous", func(t *testing.T) {
		f := setupAPI(t, readerUser())
		f.books.On("FindByID", mock.Anything, "b1").Return(result.Success(entities.NewBook("b1", "Dune", "Frank Herbert", "b1.epub", false)))

		rr := f.do(httptestRequest(http.MethodPost, "/books/b1/fetch-summary?async=true"))

		assert.Equal(t, http.StatusAccepted, rr.Code)
		assert.JSONEq(t, `{"success":true,"value":{"taskId":"task-b1","bookId":"b1"}}`, rr.Body.String())
		assert.Equal(t, []string{"b1"}, f.queue.enqueued)
		f.gateway.AssertNotCalled(t, "FindBookSummary", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("asynchronous unknown book", func(t *testing.T) {
		f := setupAPI(t, readerUser())
		f.books.On("FindByID", mock.Anything, "nope").Return(result.Fail[*entities.Book](entities.ErrBookNotFound))

		rr := f.do(httptestRequest(http.MethodPost, "/books/nope/fetch-summary?async=true"))

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Empty(t, f.queue.enqueued)
	})

	t.Run("queue failure", func(t *testing.T) {
		f := setupAPI(t, readerUser())
		f.queue.err = errors.New("queue closed")
		f.books.On("FindByID", mock.Anything, "b1").Return(result.Success(entities.NewBook("b1", "Dune", "Frank Herbert", "b1.epub", false)))

		rr := f.do(httptestRequest(http.MethodPost, "/books/b1/fetch-summary?async=true"))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Equal(t, result.CodeUnexpected, decode(t, rr).Error)
	})
}

func TestBooksController_Download(t *testing.T) {
	t.Run("streams the file as an attachment", func(t *testing.T) {
		f := setupAPI(t, readerUser())
		book := storedBook(t, f, "b1", "")
		f.books.On("FindByID", mock.Anything, "b1").Return(result.Success(book))

		rr := f.get("/books/b1/download")

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "application/epub+zip", rr.Header().Get("Content-Type"))
		assert.Equal(t, `attachment; filename="Dune Part One.epub"`, rr.Header().Get("Content-Disposition"))
		assert.Equal(t, "epub-bytes", rr.Body.String())
	})

	t.Run("missing file", func(t *testing.T) {
		f := setupAPI(t, readerUser())
		f.books.On("FindByID", mock.Anything, "b2").Return(result.Success(entities.NewBook("b2", "Dune", "Frank Herbert", "gone.epub", false)))

		rr := f.get("/books/b2/download")

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.JSONEq(t, `{"success":false,"error":"BOOK_FILE_NOT_FOUND","message":"Book file not found on server"}`, rr.Body.String())
	})

	t.Run("missing book", func(t *testing.T) {
		f := setupAPI(t, readerUser())
		f.books.On("FindByID", mock.Anything, "b3").Return(result.Fail[*entities.Book](entities.ErrBookNotFound))

		rr := f.get("/books/b3/download")

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestDownloadFileName(t *testing.T) {
	tests := map[string]string{
		"Dune":                  "Dune.epub",
		"Dune: Part One!":       "Dune Part One.epub",
		"  The Left-Hand Way  ": "The Left-Hand Way.epub",
		"../../etc/passwd":      "etcpasswd.epub",
		"???":                   "book.epub",
		"":                      "book.epub",
	}
	for title, want := range tests {
		assert.Equal(t, want, downloadFileName(title), title)
	}
}
