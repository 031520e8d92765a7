package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/Apurer/marketplace-api/internal/domains/listings/domain"
	"github.com/Apurer/marketplace-api/internal/domains/listings/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists listings in PostgreSQL using GORM. Identifiers come from a bigserial column.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle and migrations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// listingRecord maps the listing aggregate to a relational table.
type listingRecord struct {
	ID          int64          `gorm:"primaryKey;autoIncrement;column:id"`
	Title       string         `gorm:"column:title"`
	Type        string         `gorm:"column:type;index"`
	Breed       string         `gorm:"column:breed"`
	Age         *int           `gorm:"column:age"`
	Weight      *int           `gorm:"column:weight"`
	Price       *int           `gorm:"column:price"`
	Location    string         `gorm:"column:location"`
	Description string         `gorm:"column:description"`
	Images      pq.StringArray `gorm:"column:images;type:text[]"`
	Status      string         `gorm:"column:status;type:varchar(32);index"`
	ListedAt    time.Time      `gorm:"column:listed_at;index"`
	Rating      float64        `gorm:"column:rating"`
	ForEid      bool           `gorm:"column:for_eid"`
}

func (listingRecord) TableName() string { return "listings" }

// List returns every listing ordered by identifier.
func (r *Repository) List(ctx context.Context) ([]*domain.Listing, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []listingRecord
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	listings := make([]*domain.Listing, 0, len(records))
	for i := range records {
		listings = append(listings, records[i].toDomain())
	}
	return listings, nil
}

// Append inserts the listing and lets the database assign its identifier.
func (r *Repository) Append(ctx context.Context, listing *domain.Listing) (*domain.Listing, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, errors.New("listing is nil")
	}
	record := toRecord(listing)
	record.ID = 0
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres listing repository not configured")
	}
	return nil
}

func toRecord(l *domain.Listing) listingRecord {
	return listingRecord{
		ID:          l.ID,
		Title:       l.Title,
		Type:        l.Type,
		Breed:       l.Breed,
		Age:         l.Age,
		Weight:      l.Weight,
		Price:       l.Price,
		Location:    l.Location,
		Description: l.Description,
		Images:      pq.StringArray(append([]string{}, l.Images...)),
		Status:      string(l.Status),
		ListedAt:    l.ListedAt,
		Rating:      l.Rating,
		ForEid:      l.ForEid,
	}
}

func (r listingRecord) toDomain() *domain.Listing {
	l := &domain.Listing{
		ID:          r.ID,
		Title:       r.Title,
		Type:        r.Type,
		Breed:       r.Breed,
		Age:         r.Age,
		Weight:      r.Weight,
		Price:       r.Price,
		Location:    r.Location,
		Description: r.Description,
		Images:      append([]string{}, r.Images...),
		Status:      domain.Status(r.Status),
		ListedAt:    r.ListedAt.UTC(),
		Rating:      r.Rating,
		ForEid:      r.ForEid,
	}
	return l.Clone()
}
