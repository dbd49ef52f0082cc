package assets

import (
	"fmt"
	"strings"

	"github.com/mcoot/catan-leaderboard/internal/model"
)

// MaxUploadSize is the largest profile media file accepted, in bytes
const MaxUploadSize = 50 * 1024 * 1024

// extensions maps every accepted media type to the extension of its object key
var extensions = map[string]string{
	"image/jpeg":      "jpg",
	"image/jpg":       "jpg",
	"image/png":       "png",
	"image/webp":      "webp",
	"image/gif":       "gif",
	"video/mp4":       "mp4",
	"video/mov":       "mov",
	"video/avi":       "avi",
	"video/webm":      "webm",
	"video/quicktime": "mov",
}

// ValidateMedia checks a profile upload's declared type and size
func ValidateMedia(contentType string, size int64) error {
	if _, ok := extensions[normalizeType(contentType)]; !ok {
		return fmt.Errorf("%w: %s", model.ErrUnsupportedMedia, contentType)
	}
	if size <= 0 {
		return fmt.Errorf("%w: file size must be positive", model.ErrValidation)
	}
	if size > MaxUploadSize {
		return model.ErrMediaTooLarge
	}
	return nil
}

// ObjectKey names the object a board's profile upload is stored under.
// Player names are user input, so only the generated id goes into the key.
func ObjectKey(slug, id, contentType string) string {
	ext := extensions[normalizeType(contentType)]
	return fmt.Sprintf("profiles/%s/%s.%s", slug, id, ext)
}

func normalizeType(contentType string) string {
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}
	return strings.ToLower(strings.TrimSpace(contentType))
}
