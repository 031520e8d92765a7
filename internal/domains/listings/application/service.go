package application

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	listingtypes "github.com/Apurer/marketplace-api/internal/domains/listings/application/types"
	"github.com/Apurer/marketplace-api/internal/domains/listings/domain"
	"github.com/Apurer/marketplace-api/internal/domains/listings/ports"
	"github.com/Apurer/marketplace-api/internal/shared/events"
)

// DefaultImageURLPrefix is the path stored images are served under.
const DefaultImageURLPrefix = "/uploads"

// Service orchestrates the listings bounded context use cases.
type Service struct {
	repo      ports.Repository
	images    ports.ImageStorage
	publisher events.Publisher
	urlPrefix string
	now       func() time.Time
}

// Option configures optional collaborators of the service.
type Option func(*Service)

// WithPublisher publishes ListingCreated events after persistence.
func WithPublisher(p events.Publisher) Option {
	return func(s *Service) {
		if p != nil {
			s.publisher = p
		}
	}
}

// WithImageURLPrefix overrides the path prefix used for stored image URLs.
func WithImageURLPrefix(prefix string) Option {
	return func(s *Service) {
		prefix = strings.TrimRight(strings.TrimSpace(prefix), "/")
		if prefix != "" {
			s.urlPrefix = prefix
		}
	}
}

// WithClock overrides the time source for deterministic testing.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService wires the listings service with its dependencies.
func NewService(repo ports.Repository, images ports.ImageStorage, opts ...Option) *Service {
	s := &Service{
		repo:      repo,
		images:    images,
		publisher: events.NoopPublisher,
		urlPrefix: DefaultImageURLPrefix,
		now:       time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// List returns every listing in storage order.
func (s *Service) List(ctx context.Context) ([]*domain.Listing, error) {
	listings, err := s.repo.List(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	if listings == nil {
		listings = []*domain.Listing{}
	}
	return listings, nil
}

// CreateListing validates and stores the attachments, then persists the listing.
func (s *Service) CreateListing(ctx context.Context, input listingtypes.CreateListingInput) (*domain.Listing, error) {
	urls, err := s.StoreImages(ctx, input.Images)
	if err != nil {
		return nil, err
	}
	return s.PersistListing(ctx, listingtypes.PersistListingInput{Fields: input.Fields, ImageURLs: urls})
}

// StoreImages validates every attachment before writing any of them. When a write fails the
// files already written for this request are removed again.
func (s *Service) StoreImages(ctx context.Context, uploads []listingtypes.ImageUpload) ([]string, error) {
	metas := make([]domain.ImageMeta, 0, len(uploads))
	for _, upload := range uploads {
		metas = append(metas, upload.Meta())
	}
	if err := domain.ValidateImages(metas); err != nil {
		return nil, mapError(err)
	}
	if len(uploads) == 0 {
		return []string{}, nil
	}
	if s.images == nil {
		return nil, errors.New("image storage not configured")
	}

	stored := make([]string, 0, len(uploads))
	urls := make([]string, 0, len(uploads))
	taken := make(map[string]struct{}, len(uploads))
	for _, upload := range uploads {
		name := uniqueImageName(s.now().UnixMilli(), upload.Filename, taken)
		if err := s.saveImage(ctx, name, upload); err != nil {
			s.discard(ctx, stored)
			return nil, fmt.Errorf("store image %q: %w", upload.Filename, err)
		}
		stored = append(stored, name)
		urls = append(urls, s.imageURL(name))
	}
	return urls, nil
}

// PersistListing appends a new active listing built from the submitted fields.
func (s *Service) PersistListing(ctx context.Context, input listingtypes.PersistListingInput) (*domain.Listing, error) {
	listing := domain.NewListing(draftFromFields(input.Fields, input.ImageURLs), s.now())
	saved, err := s.repo.Append(ctx, listing)
	if err != nil {
		return nil, mapError(err)
	}
	if err := s.publisher.Publish(ctx, domain.NewListingCreated(saved)); err != nil {
		return nil, fmt.Errorf("publish listing created: %w", err)
	}
	return saved, nil
}

// OpenImage returns a stored image by name for serving.
func (s *Service) OpenImage(ctx context.Context, name string) (*ports.StoredImage, error) {
	if s.images == nil {
		return nil, ports.ErrImageNotFound
	}
	name = strings.TrimSpace(name)
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return nil, ports.ErrImageNotFound
	}
	return s.images.Open(ctx, name)
}

// uniqueImageName advances the timestamp until the name is unused within the request, so two
// attachments with the same file name never overwrite each other.
func uniqueImageName(millis int64, filename string, taken map[string]struct{}) string {
	name := domain.StoredImageName(millis, filename)
	for {
		if _, ok := taken[name]; !ok {
			taken[name] = struct{}{}
			return name
		}
		millis++
		name = domain.StoredImageName(millis, filename)
	}
}

// DiscardImages deletes the files behind the given image URLs. Missing files are not an error.
func (s *Service) DiscardImages(ctx context.Context, imageURLs []string) error {
	if s.images == nil || len(imageURLs) == 0 {
		return nil
	}
	var errs []error
	for _, raw := range imageURLs {
		name, err := url.PathUnescape(path.Base(raw))
		if err != nil {
			errs = append(errs, fmt.Errorf("parse image url %q: %w", raw, err))
			continue
		}
		if err := s.images.Delete(ctx, name); err != nil && !errors.Is(err, ports.ErrImageNotFound) {
			errs = append(errs, fmt.Errorf("delete image %q: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

func (s *Service) saveImage(ctx context.Context, name string, upload listingtypes.ImageUpload) error {
	if upload.Open == nil {
		return errors.New("upload has no content")
	}
	body, err := upload.Open()
	if err != nil {
		return err
	}
	defer body.Close()
	return s.images.Save(ctx, name, body)
}

func (s *Service) discard(ctx context.Context, names []string) {
	for _, name := range names {
		_ = s.images.Delete(ctx, name)
	}
}

func (s *Service) imageURL(name string) string {
	return s.urlPrefix + "/" + url.PathEscape(name)
}

var _ ports.Service = (*Service)(nil)
