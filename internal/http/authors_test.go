package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/homebranch/server/internal/entities"
	"github.com/homebranch/server/internal/result"
	"github.com/homebranch/server/internal/usecases/mocks"
)

func TestAuthorsController_List(t *testing.T) {
	f := setupAPI(t, readerUser())
	count := int64(2)
	author := entities.Author{Name: "Frank Herbert", BookCount: &count}
	f.authors.On("FindAll", mock.Anything, "frank", result.Pagination{Limit: 5}, "").
		Return(result.Success(result.NewPage([]entities.Author{author}, result.Pagination{Limit: 5}, 1)))

	rr := f.get("/authors?query=frank&limit=5")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"success":true,"value":{
		"data":[{"id":null,"name":"Frank Herbert","biography":null,"profilePictureUrl":null,"bookCount":2}],
		"limit":5,"offset":0,"total":1,"nextCursor":null}}`, rr.Body.String())
}

func TestAuthorsController_Get(t *testing.T) {
	f := setupAPI(t, readerUser())
	bio := "Wrote Dune."
	f.authors.On("FindByName", mock.Anything, "Frank Herbert").
		Return(result.Success(entities.NewAuthor("a1", "Frank Herbert", &bio, nil)))

	rr := f.get("/authors/Frank%20Herbert")

	require.Equal(t, http.StatusOK, rr.Code)
	var author entities.Author
	decodeValue(t, rr, &author)
	assert.Equal(t, "Wrote Dune.", *author.Biography)
	f.gateway.AssertNotCalled(t, "FindAuthorEnrichment", mock.Anything, mock.Anything)
}

func TestAuthorsController_Books(t *testing.T) {
	f := setupAPI(t, readerUser())
	f.books.On("FindByAuthor", mock.Anything, "Frank Herbert", result.Pagination{Offset: 2}, "u7").Return(bookPage())

	rr := f.get("/authors/Frank%20Herbert/books?offset=2&userId=u7")

	assert.Equal(t, http.StatusOK, rr.Code)
	f.books.AssertExpectations(t)
}

func TestAuthorsController_Update(t *testing.T) {
	f := setupAPI(t, readerUser())
	f.authors.On("FindByName", mock.Anything, "Frank Herbert").
		Return(result.Success(entities.NewAuthor("a1", "Frank Herbert", nil, nil)))
	f.authors.On("UpdateByName", mock.Anything, "Frank Herbert", mock.Anything).Return(mocks.Echo[*entities.Author])

	rr := f.sendJSON(http.MethodPatch, "/authors/Frank%20Herbert", `{"biography":"New bio"}`)

	require.Equal(t, http.StatusOK, rr.Code)
	var author entities.Author
	decodeValue(t, rr, &author)
	assert.Equal(t, "New bio", *author.Biography)
}

func TestAuthorsController_UploadProfilePicture(t *testing.T) {
	t.Run("stores picture under the public base URL", func(t *testing.T) {
		f := setupAPI(t, readerUser(), func(cfg *RouterConfig) { cfg.PublicBaseURL = "https://books.example.com/" })
		f.authors.On("FindByName", mock.Anything, "Frank Herbert").
			Return(result.Success(entities.NewAuthor("a1", "Frank Herbert", nil, nil)))
		f.authors.On("UpdateByName", mock.Anything, "Frank Herbert", mock.Anything).Return(mocks.Echo[*entities.Author])

		rr := f.do(multipartRequest(t, "/authors/Frank%20Herbert/profile-picture", nil, map[string][]byte{"file": pngImage(t)}))

		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		var author entities.Author
		decodeValue(t, rr, &author)
		require.NotNil(t, author.ProfilePictureURL)
		url := *author.ProfilePictureURL
		require.True(t, strings.HasPrefix(url, "https://books.example.com/uploads/author-images/"), url)
		assert.True(t, strings.HasSuffix(url, ".jpg"))

		served := f.get(strings.TrimPrefix(url, "https://books.example.com"))
		assert.Equal(t, http.StatusOK, served.Code)
		assertJPEG(t, served.Body.String())
		assert.Equal(t, "image/jpeg", served.Header().Get("Content-Type"))
	})

	t.Run("file is required", func(t *testing.T) {
		f := setupAPI(t, readerUser())

		rr := f.do(multipartRequest(t, "/authors/Frank%20Herbert/profile-picture", map[string]string{"note": "x"}, nil))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "A file must be provided", decode(t, rr).Message)
	})

	t.Run("unknown author discards the upload", func(t *testing.T) {
		f := setupAPI(t, readerUser())
		f.authors.On("FindByName", mock.Anything, "Nobody").Return(result.Fail[*entities.Author](entities.ErrAuthorNotFound))

		rr := f.do(multipartRequest(t, "/authors/Nobody/profile-picture", nil, map[string][]byte{"file": pngImage(t)}))

		assert.Equal(t, http.StatusNotFound, rr.Code)
		entries, err := filepathGlob(f, "author-images/*.jpg")
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}

func TestBaseURL(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		forwarded  string
		want       string
	}{
		{"configured wins", "https://books.example.com/", "", "https://books.example.com"},
		{"plain http", "", "", "http://library.local:3000"},
		{"behind TLS proxy", "", "https", "https://library.local:3000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "http://library.local:3000/authors", nil)
			if tt.forwarded != "" {
				c.Request.Header.Set("X-Forwarded-Proto", tt.forwarded)
			}
			assert.Equal(t, tt.want, baseURL(c, tt.configured))
		})
	}
}
