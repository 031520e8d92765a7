package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"os"
	"path/filepath"

	"github.com/Apurer/marketplace-api/internal/domains/listings/ports"
)

var _ ports.ImageStorage = (*Storage)(nil)

// Storage writes images into a directory on the local filesystem.
type Storage struct {
	dir string
}

// New creates the upload directory when missing.
func New(dir string) (*Storage, error) {
	if dir == "" {
		return nil, errors.New("upload directory is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	return &Storage{dir: dir}, nil
}

// Save writes the body to a temporary file and renames it into place.
func (s *Storage) Save(ctx context.Context, name string, body io.Reader) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.path(name)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return err
	}
	if _, err := io.Copy(tmp, body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func (s *Storage) Open(_ context.Context, name string) (*ports.StoredImage, error) {
	path, err := s.path(name)
	if err != nil {
		return nil, ports.ErrImageNotFound
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ports.ErrImageNotFound
		}
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if info.IsDir() {
		f.Close()
		return nil, ports.ErrImageNotFound
	}
	return &ports.StoredImage{
		Name:        name,
		ContentType: mime.TypeByExtension(filepath.Ext(name)),
		Size:        info.Size(),
		Body:        f,
	}, nil
}

func (s *Storage) Delete(_ context.Context, name string) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (s *Storage) path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return "", fmt.Errorf("invalid image name %q", name)
	}
	return filepath.Join(s.dir, name), nil
}
