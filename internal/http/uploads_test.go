package http

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadsController_Serve(t *testing.T) {
	f := setupAPI(t, nil)
	ctx := context.Background()
	require.NoError(t, f.store.Upload(ctx, "cover-images/c1.jpg", strings.NewReader("cover"), -1, ""))
	require.NoError(t, f.store.Upload(ctx, "books/b1.epub", strings.NewReader("secret"), -1, ""))

	tests := []struct {
		name   string
		path   string
		status int
		body   string
	}{
		{"cover image", "/uploads/cover-images/c1.jpg", http.StatusOK, "cover"},
		{"books are not public", "/uploads/books/b1.epub", http.StatusNotFound, ""},
		{"missing image", "/uploads/author-images/none.jpg", http.StatusNotFound, ""},
		{"prefix only", "/uploads/cover-images/", http.StatusNotFound, ""},
		{"traversal is cleaned", "/uploads/cover-images/../books/b1.epub", http.StatusNotFound, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := f.get(tt.path)
			assert.Equal(t, tt.status, rr.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, rr.Body.String())
				assert.Equal(t, "public, max-age=86400", rr.Header().Get("Cache-Control"))
			}
		})
	}
}

func TestIsPublicKey(t *testing.T) {
	assert.True(t, isPublicKey("author-images/a.jpg"))
	assert.True(t, isPublicKey("cover-images/c.jpg"))
	assert.False(t, isPublicKey("cover-images/"))
	assert.False(t, isPublicKey("cover-images-evil/c.jpg"))
	assert.False(t, isPublicKey("books/b.epub"))
	assert.False(t, isPublicKey(""))
}
