package domain

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

const (
	// MaxImages is the number of attachments accepted per listing.
	MaxImages = 5
	// MaxImageBytes is the upper bound for a single attachment.
	MaxImageBytes int64 = 5 * 1024 * 1024
)

var (
	ErrTooManyImages    = fmt.Errorf("at most %d images are allowed", MaxImages)
	ErrInvalidImageType = errors.New("only JPEG and PNG images are allowed")
	ErrImageTooLarge    = fmt.Errorf("images must not exceed %d bytes", MaxImageBytes)
	ErrEmptyImageName   = errors.New("image file name is required")
)

var allowedExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
}

var allowedMediaTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/jpg":  {},
	"image/png":  {},
}

// ImageMeta describes an attachment as declared by the client.
type ImageMeta struct {
	Filename    string
	ContentType string
	Size        int64
}

// ValidateImage checks both the file extension and the declared media type, then the size.
func ValidateImage(meta ImageMeta) error {
	name := filepath.Base(strings.TrimSpace(meta.Filename))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return ErrEmptyImageName
	}
	ext := strings.ToLower(filepath.Ext(name))
	if _, ok := allowedExtensions[ext]; !ok {
		return fmt.Errorf("%w: %q", ErrInvalidImageType, name)
	}
	if _, ok := allowedMediaTypes[normalizeMediaType(meta.ContentType)]; !ok {
		return fmt.Errorf("%w: %q declared as %q", ErrInvalidImageType, name, meta.ContentType)
	}
	if meta.Size > MaxImageBytes {
		return fmt.Errorf("%w: %q is %d bytes", ErrImageTooLarge, name, meta.Size)
	}
	return nil
}

// ValidateImages applies the per-request count limit and the per-file rules.
func ValidateImages(metas []ImageMeta) error {
	if len(metas) > MaxImages {
		return ErrTooManyImages
	}
	for _, meta := range metas {
		if err := ValidateImage(meta); err != nil {
			return err
		}
	}
	return nil
}

// StoredImageName builds the time-prefixed name an accepted file is persisted under.
func StoredImageName(epochMillis int64, original string) string {
	name := filepath.Base(strings.TrimSpace(original))
	return fmt.Sprintf("%d-%s", epochMillis, name)
}

func normalizeMediaType(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	if idx := strings.Index(value, ";"); idx >= 0 {
		value = strings.TrimSpace(value[:idx])
	}
	return value
}
