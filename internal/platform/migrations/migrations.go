package migrations

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts. Adapters never migrate on their own.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&listingRecord{},
		&orderRecord{},
		&accountRecord{},
		&resetTokenRecord{},
	)
}

// Listing schema mirrors the listings Postgres adapter.
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

// Order schema mirrors the payments Postgres adapter.
type orderRecord struct {
	ID              int64           `gorm:"primaryKey;autoIncrement;column:id"`
	OrderRef        *string         `gorm:"column:order_ref;uniqueIndex"`
	BuyerID         *int64          `gorm:"column:buyer_id;index"`
	Buyer           *string         `gorm:"column:buyer"`
	Seller          *string         `gorm:"column:seller"`
	Items           []orderItem     `gorm:"column:items;type:jsonb;serializer:json"`
	Subtotal        decimal.Decimal `gorm:"column:subtotal;type:numeric(14,2)"`
	Tax             decimal.Decimal `gorm:"column:tax;type:numeric(14,2)"`
	Total           decimal.Decimal `gorm:"column:total;type:numeric(14,2)"`
	PaymentMethod   string          `gorm:"column:payment_method;type:varchar(64)"`
	BankName        *string         `gorm:"column:bank_name"`
	AccountNumber   *string         `gorm:"column:account_number"`
	PaymentIntentID *string         `gorm:"column:payment_intent_id"`
	Status          string          `gorm:"column:status;type:varchar(32);index"`
	PlacedAt        *time.Time      `gorm:"column:placed_at;index"`
	CreatedAt       time.Time       `gorm:"column:created_at"`
	UpdatedAt       time.Time       `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

type orderItem struct {
	ID    int64           `json:"id"`
	Title string          `json:"title"`
	Price decimal.Decimal `json:"price"`
}

// Account schema mirrors the accounts Postgres adapter.
type accountRecord struct {
	ID           int64     `gorm:"primaryKey;autoIncrement;column:id"`
	Email        string    `gorm:"column:email;uniqueIndex"`
	PasswordHash string    `gorm:"column:password_hash"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (accountRecord) TableName() string { return "accounts" }

// Reset token schema mirrors the accounts token store. Only token hashes are stored.
type resetTokenRecord struct {
	TokenHash  string     `gorm:"primaryKey;column:token_hash;size:64"`
	UserID     int64      `gorm:"column:user_id;index"`
	ExpiresAt  time.Time  `gorm:"column:expires_at;index"`
	ConsumedAt *time.Time `gorm:"column:consumed_at;index"`
	CreatedAt  time.Time  `gorm:"column:created_at"`
}

func (resetTokenRecord) TableName() string { return "password_reset_tokens" }
