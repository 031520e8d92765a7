package domain

import (
	"strings"
	"time"
)

// Status represents the lifecycle state of a listing.
type Status string

const (
	StatusActive Status = "active"
)

// DefaultRating is assigned to every freshly created listing.
const DefaultRating = 0.0

// Listing is a sellable item record with attached images.
type Listing struct {
	ID          int64
	Title       string
	Type        string
	Breed       string
	Age         *int
	Weight      *int
	Price       *int
	Location    string
	Description string
	Images      []string
	Status      Status
	ListedAt    time.Time
	Rating      float64
	ForEid      bool
}

// Draft carries the caller supplied attributes of a listing before the store assigns an identity.
type Draft struct {
	Title       string
	Type        string
	Breed       string
	Age         *int
	Weight      *int
	Price       *int
	Location    string
	Description string
	Images      []string
	ForEid      bool
}

// NewListing materializes a draft into an active listing listed at the supplied instant.
// The identifier stays zero until a store assigns one.
func NewListing(draft Draft, listedAt time.Time) *Listing {
	return &Listing{
		Title:       strings.TrimSpace(draft.Title),
		Type:        strings.TrimSpace(draft.Type),
		Breed:       strings.TrimSpace(draft.Breed),
		Age:         cloneInt(draft.Age),
		Weight:      cloneInt(draft.Weight),
		Price:       cloneInt(draft.Price),
		Location:    strings.TrimSpace(draft.Location),
		Description: draft.Description,
		Images:      append([]string{}, draft.Images...),
		Status:      StatusActive,
		ListedAt:    listedAt.UTC(),
		Rating:      DefaultRating,
		ForEid:      draft.ForEid,
	}
}

// Clone returns a deep copy so stores never share mutable state with callers.
func (l *Listing) Clone() *Listing {
	if l == nil {
		return nil
	}
	copy := *l
	copy.Age = cloneInt(l.Age)
	copy.Weight = cloneInt(l.Weight)
	copy.Price = cloneInt(l.Price)
	copy.Images = append([]string{}, l.Images...)
	return &copy
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	copy := *v
	return &copy
}
