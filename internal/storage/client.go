// Package storage stores uploaded e-book files and images under slash
// separated keys such as "books/<uuid>.epub".
package storage

import (
	"context"
	"errors"
	"io"
	"mime"
	"path"
	"strings"

	"github.com/google/uuid"
)

// Key prefixes for the kinds of files the library stores.
const (
	BooksPrefix        = "books"
	CoverImagesPrefix  = "cover-images"
	AuthorImagesPrefix = "author-images"
)

// ErrNotFound is returned when no object is stored under a key.
var ErrNotFound = errors.New("storage: object not found")

// Client defines the interface for file storage operations
type Client interface {
	// Upload writes content under key, replacing any existing object.
	// size may be -1 when unknown.
	Upload(ctx context.Context, key string, content io.Reader, size int64, contentType string) error

	// Download retrieves the contents of an object
	Download(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes an object. Deleting a missing object is not an error.
	Delete(ctx context.Context, key string) error

	// Exists checks if an object exists
	Exists(ctx context.Context, key string) (bool, error)
}

// NewFileName returns a random file name with the given extension,
// e.g. "3f0c...e1.epub".
func NewFileName(ext string) string {
	return uuid.NewString() + "." + strings.TrimPrefix(ext, ".")
}

// Key joins a prefix and a file name into a storage key.
func Key(prefix, fileName string) string {
	return path.Join(prefix, path.Base("/"+fileName))
}

// CleanKey normalises a key and strips any attempt to escape the storage
// root. It returns "" for keys that resolve to the root itself.
func CleanKey(key string) string {
	return strings.TrimPrefix(path.Clean("/"+key), "/")
}

// ContentType guesses the MIME type of a key from its extension.
func ContentType(key string) string {
	if strings.EqualFold(path.Ext(key), ".epub") {
		return "application/epub+zip"
	}
	if ct := mime.TypeByExtension(path.Ext(key)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// DeleteAll removes every key, ignoring empty ones, and returns the
// first error encountered.
func DeleteAll(ctx context.Context, client Client, keys ...string) error {
	var firstErr error
	for _, key := range keys {
		if key == "" {
			continue
		}
		if err := client.Delete(ctx, key); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
