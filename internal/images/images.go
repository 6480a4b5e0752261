// Package images normalizes uploaded cover and author pictures to JPEG.
package images

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/disintegration/imaging"
)

const (
	// DefaultMaxWidth is the widest picture that is stored unscaled.
	DefaultMaxWidth = 1200

	jpegQuality = 85
)

// ErrInvalidImage is returned when the upload is not a decodable image.
var ErrInvalidImage = errors.New("invalid image")

// ToJPEG decodes r, applies EXIF orientation, scales the picture down to
// maxWidth keeping its aspect ratio and encodes it as JPEG. A non-positive
// maxWidth means DefaultMaxWidth.
func ToJPEG(r io.Reader, maxWidth int) ([]byte, error) {
	if maxWidth <= 0 {
		maxWidth = DefaultMaxWidth
	}

	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	if img.Bounds().Dx() > maxWidth {
		img = imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}
