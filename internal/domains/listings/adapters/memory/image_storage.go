package memory

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"sync"

	"github.com/Apurer/marketplace-api/internal/domains/listings/ports"
)

var _ ports.ImageStorage = (*ImageStorage)(nil)

// ImageStorage keeps uploaded images in memory.
type ImageStorage struct {
	mu    sync.RWMutex
	files map[string][]byte
}

// NewImageStorage constructs an empty in-memory image storage.
func NewImageStorage() *ImageStorage {
	return &ImageStorage{files: map[string][]byte{}}
}

func (s *ImageStorage) Save(_ context.Context, name string, body io.Reader) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[name] = data
	return nil
}

func (s *ImageStorage) Open(_ context.Context, name string) (*ports.StoredImage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.files[name]
	if !ok {
		return nil, ports.ErrImageNotFound
	}
	return &ports.StoredImage{
		Name:        name,
		ContentType: http.DetectContentType(data),
		Size:        int64(len(data)),
		Body:        io.NopCloser(bytes.NewReader(data)),
	}, nil
}

func (s *ImageStorage) Delete(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, name)
	return nil
}

// Names reports the stored image names.
func (s *ImageStorage) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.files))
	for name := range s.files {
		names = append(names, name)
	}
	return names
}
