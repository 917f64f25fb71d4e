// Package blob stores uploaded club banners and hands back opaque references.
package blob

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/teris-io/shortid"
)

var (
	ErrNotFound   = errors.New("blob not found")
	ErrInvalidRef = errors.New("invalid blob reference")
)

const defaultContentType = "application/octet-stream"

var refPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+(\.[A-Za-z0-9]+)?$`)

// imageTypes are the raster formats accepted as banners, keyed by content
// type. The extension is the only type information a stored ref carries.
var imageTypes = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
	"image/bmp":  ".bmp",
}

// IsImageType reports whether contentType is an accepted banner format.
func IsImageType(contentType string) bool {
	_, ok := imageTypes[contentType]
	return ok
}

type Metadata struct {
	Name        string
	ContentType string
	Size        int64
}

// Store persists blobs by reference. References are file names without any
// directory component.
type Store interface {
	Store(ctx context.Context, r io.Reader, meta Metadata) (string, error)
	Open(ctx context.Context, ref string) (io.ReadCloser, Metadata, error)
	Delete(ctx context.Context, ref string) error
}

// ValidRef reports whether ref could have been produced by a Store.
func ValidRef(ref string) bool {
	return refPattern.MatchString(ref)
}

func newRef(meta Metadata) (string, error) {
	id, err := shortid.Generate()
	if err != nil {
		return "", err
	}

	return id + extension(meta), nil
}

func extension(meta Metadata) string {
	return imageTypes[strings.ToLower(meta.ContentType)]
}

func contentTypeOf(ref string) string {
	ext := strings.ToLower(filepath.Ext(ref))
	if ext == "" {
		return defaultContentType
	}
	for ct, e := range imageTypes {
		if e == ext {
			return ct
		}
	}
	return defaultContentType
}
