package ports

import (
	"context"
	"errors"
	"io"
)

// ErrImageNotFound is returned when a stored image name is unknown to the storage.
var ErrImageNotFound = errors.New("image not found")

// StoredImage is an open handle to a persisted image.
type StoredImage struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.ReadCloser
}

// ImageStorage persists uploaded image files under their stored name.
type ImageStorage interface {
	Save(ctx context.Context, name string, body io.Reader) error
	Open(ctx context.Context, name string) (*StoredImage, error)
	Delete(ctx context.Context, name string) error
}
