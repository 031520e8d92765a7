package domain

import "github.com/Apurer/marketplace-api/internal/shared/events"

// ListingCreated is raised once a listing has been persisted.
type ListingCreated struct {
	events.Base
	ListingID int64    `json:"listingId"`
	Title     string   `json:"title"`
	Type      string   `json:"type"`
	Price     *int     `json:"price,omitempty"`
	Images    []string `json:"images"`
	ForEid    bool     `json:"forEid"`
}

// EventName returns the event type identifier.
func (e ListingCreated) EventName() string {
	return "listings.listing.created"
}

// NewListingCreated builds the creation event from a persisted listing.
func NewListingCreated(l *Listing) ListingCreated {
	return ListingCreated{
		Base:      events.Base{Timestamp: l.ListedAt},
		ListingID: l.ID,
		Title:     l.Title,
		Type:      l.Type,
		Price:     cloneInt(l.Price),
		Images:    append([]string{}, l.Images...),
		ForEid:    l.ForEid,
	}
}
