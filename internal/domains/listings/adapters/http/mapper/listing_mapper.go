package mapper

import (
	"io"
	"mime/multipart"
	"time"

	listingtypes "github.com/Apurer/marketplace-api/internal/domains/listings/application/types"
	"github.com/Apurer/marketplace-api/internal/domains/listings/domain"
)

// ImagesField is the multipart field carrying listing attachments.
const ImagesField = "images"

// Listing is the HTTP representation of a listing.
type Listing struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Type        string    `json:"type"`
	Breed       string    `json:"breed"`
	Age         *int      `json:"age"`
	Weight      *int      `json:"weight"`
	Price       *int      `json:"price"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	Images      []string  `json:"images"`
	Status      string    `json:"status"`
	ListedAt    time.Time `json:"listedAt"`
	Rating      float64   `json:"rating"`
	ForEid      bool      `json:"forEid"`
}

// FromDomainListing converts a domain listing to the transport representation.
func FromDomainListing(l *domain.Listing) Listing {
	if l == nil {
		return Listing{Images: []string{}}
	}
	images := l.Images
	if images == nil {
		images = []string{}
	}
	return Listing{
		ID:          l.ID,
		Title:       l.Title,
		Type:        l.Type,
		Breed:       l.Breed,
		Age:         l.Age,
		Weight:      l.Weight,
		Price:       l.Price,
		Location:    l.Location,
		Description: l.Description,
		Images:      images,
		Status:      string(l.Status),
		ListedAt:    l.ListedAt,
		Rating:      l.Rating,
		ForEid:      l.ForEid,
	}
}

// FromDomainListings converts a slice, never returning nil.
func FromDomainListings(listings []*domain.Listing) []Listing {
	out := make([]Listing, 0, len(listings))
	for _, l := range listings {
		out = append(out, FromDomainListing(l))
	}
	return out
}

// ToCreateListingInput reads the listing form fields and attachments from a parsed multipart form.
func ToCreateListingInput(form *multipart.Form) listingtypes.CreateListingInput {
	if form == nil {
		return listingtypes.CreateListingInput{}
	}
	value := func(key string) string {
		if values := form.Value[key]; len(values) > 0 {
			return values[0]
		}
		return ""
	}
	input := listingtypes.CreateListingInput{
		Fields: listingtypes.ListingFields{
			Title:       value("title"),
			Type:        value("type"),
			Breed:       value("breed"),
			Age:         value("age"),
			Weight:      value("weight"),
			Price:       value("price"),
			Location:    value("location"),
			Description: value("description"),
			ForEid:      value("forEid"),
		},
	}
	for _, header := range form.File[ImagesField] {
		input.Images = append(input.Images, toImageUpload(header))
	}
	return input
}

func toImageUpload(header *multipart.FileHeader) listingtypes.ImageUpload {
	return listingtypes.ImageUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Open: func() (io.ReadCloser, error) {
			return header.Open()
		},
	}
}
