package http

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/homebranch/server/internal/http/respond"
	"github.com/homebranch/server/internal/images"
	"github.com/homebranch/server/internal/result"
	"github.com/homebranch/server/internal/storage"
)

const multipartMemory = 32 << 20

var (
	errFileRequired   = result.NewFailure(result.CodeBadRequest, "A file must be provided")
	errUploadNotFound = result.NewFailure(result.CodeNotFound, "File not found")
	errInvalidImage   = result.NewFailure(result.CodeBadRequest, "Image could not be decoded")
)

// parseMultipart limits the request body to maxBytes (when positive) and
// parses the multipart form. On failure it responds with 400 and returns false.
func parseMultipart(c *gin.Context, maxBytes int64) bool {
	if maxBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
	}
	if err := c.Request.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.BadRequest(c, fmt.Sprintf("upload exceeds %d bytes", tooLarge.Limit))
			return false
		}
		respond.BadRequest(c, "invalid multipart form: "+err.Error())
		return false
	}
	return true
}

// saveFormFile stores the uploaded file in field under prefix with a
// random name and returns that name. It returns "" when the field is absent.
func saveFormFile(c *gin.Context, store storage.Client, field, prefix, ext string) (string, error) {
	return storeFormFile(c, field, func(f multipart.File, size int64) (string, error) {
		name := storage.NewFileName(ext)
		key := storage.Key(prefix, name)
		if err := store.Upload(c.Request.Context(), key, f, size, storage.ContentType(key)); err != nil {
			return "", fmt.Errorf("store %s: %w", field, err)
		}
		return name, nil
	})
}

// saveImage is saveFormFile for pictures: the upload is converted to a
// scaled JPEG before it is stored. Undecodable uploads yield an error
// wrapping images.ErrInvalidImage.
func saveImage(c *gin.Context, store storage.Client, field, prefix string) (string, error) {
	return storeFormFile(c, field, func(f multipart.File, _ int64) (string, error) {
		converted, err := images.ToJPEG(f, images.DefaultMaxWidth)
		if err != nil {
			return "", fmt.Errorf("convert %s: %w", field, err)
		}
		name := storage.NewFileName(".jpg")
		key := storage.Key(prefix, name)
		if err := store.Upload(c.Request.Context(), key, bytes.NewReader(converted), int64(len(converted)), "image/jpeg"); err != nil {
			return "", fmt.Errorf("store %s: %w", field, err)
		}
		return name, nil
	})
}

func storeFormFile(c *gin.Context, field string, save func(f multipart.File, size int64) (string, error)) (string, error) {
	fh, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", field, err)
	}

	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open %s: %w", field, err)
	}
	defer f.Close()

	return save(f, fh.Size)
}

// uploadFailure maps an error from saveFormFile or saveImage.
func uploadFailure(err error) *result.Failure {
	if errors.Is(err, images.ErrInvalidImage) {
		return errInvalidImage
	}
	return result.Unexpected(err)
}

// discard removes stored files after a failed request.
func discard(c *gin.Context, store storage.Client, keys ...string) {
	if err := storage.DeleteAll(c.Request.Context(), store, keys...); err != nil {
		log.Printf("Failed to remove uploaded files %v: %v", keys, err)
	}
}

// UploadsController serves stored cover and author images.
type UploadsController struct {
	store storage.Client
}

func NewUploadsController(store storage.Client) *UploadsController {
	return &UploadsController{store: store}
}

var publicPrefixes = []string{storage.CoverImagesPrefix + "/", storage.AuthorImagesPrefix + "/"}

// Serve handles GET /uploads/*filepath
func (uc *UploadsController) Serve(c *gin.Context) {
	key := storage.CleanKey(c.Param("filepath"))
	if !isPublicKey(key) {
		respond.Failure(c, errUploadNotFound)
		return
	}

	body, err := uc.store.Download(c.Request.Context(), key)
	if errors.Is(err, storage.ErrNotFound) {
		respond.Failure(c, errUploadNotFound)
		return
	}
	if err != nil {
		respond.Failure(c, result.Unexpected(err))
		return
	}
	defer body.Close()

	c.DataFromReader(http.StatusOK, -1, storage.ContentType(key), body, map[string]string{
		"Cache-Control": "public, max-age=86400",
	})
}

func isPublicKey(key string) bool {
	for _, prefix := range publicPrefixes {
		if strings.HasPrefix(key, prefix) && len(key) > len(prefix) {
			return true
		}
	}
	return false
}
