package types

import (
	"io"

	"github.com/Apurer/marketplace-api/internal/domains/listings/domain"
)

// ListingFields are the raw form values submitted with a listing.
// Numeric fields stay textual until the application parses them.
type ListingFields struct {
	Title       string
	Type        string
	Breed       string
	Age         string
	Weight      string
	Price       string
	Location    string
	Description string
	ForEid      string
}

// ImageUpload describes one attachment and how to read its bytes.
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// Meta returns the declared attributes used for validation.
func (u ImageUpload) Meta() domain.ImageMeta {
	return domain.ImageMeta{Filename: u.Filename, ContentType: u.ContentType, Size: u.Size}
}

// CreateListingInput is the full create request: fields plus attachments.
type CreateListingInput struct {
	Fields ListingFields
	Images []ImageUpload
}

// PersistListingInput is the serialisable half of a create request once images are stored.
// It crosses the workflow boundary, so it only carries plain data.
type PersistListingInput struct {
	Fields    ListingFields
	ImageURLs []string
}
