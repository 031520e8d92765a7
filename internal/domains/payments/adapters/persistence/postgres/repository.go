package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Apurer/marketplace-api/internal/domains/payments/domain"
	"github.com/Apurer/marketplace-api/internal/domains/payments/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists orders in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// orderRecord maps the order aggregate to a relational table. Line items are stored as JSON.
type orderRecord struct {
	ID              int64           `gorm:"primaryKey;autoIncrement;column:id"`
	OrderRef        *string         `gorm:"column:order_ref;uniqueIndex"`
	BuyerID         *int64          `gorm:"column:buyer_id;index"`
	Buyer           *string         `gorm:"column:buyer"`
	Seller          *string         `gorm:"column:seller"`
	Items           []itemRecord    `gorm:"column:items;type:jsonb;serializer:json"`
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

type itemRecord struct {
	ID    int64           `json:"id"`
	Title string          `json:"title"`
	Price decimal.Decimal `json:"price"`
}

// Append inserts the order and stamps its public reference from the generated identifier.
func (r *Repository) Append(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	record := toRecord(order)
	record.ID = 0
	record.OrderRef = nil
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		ref := domain.OrderReference(record.ID)
		record.OrderRef = &ref
		return tx.Model(&orderRecord{}).Where("id = ?", record.ID).Update("order_ref", ref).Error
	})
	if err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) GetByOrderID(ctx context.Context, orderID string) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	if err := r.db.WithContext(ctx).First(&record, "order_ref = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// List returns all orders.
func (r *Repository) List(ctx context.Context) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []orderRecord
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		orders = append(orders, records[i].toDomain())
	}
	return orders, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func toRecord(order *domain.Order) orderRecord {
	rec := orderRecord{
		ID:            order.ID,
		BuyerID:       order.BuyerID,
		Buyer:         order.Buyer,
		Seller:        order.Seller,
		Subtotal:      order.Subtotal,
		Tax:           order.Tax,
		Total:         order.Total,
		PaymentMethod: order.PaymentMethod,
		Status:        string(order.Status),
		PlacedAt:      order.Date,
	}
	if order.OrderID != "" {
		ref := order.OrderID
		rec.OrderRef = &ref
	}
	for _, item := range order.Items {
		rec.Items = append(rec.Items, itemRecord{ID: item.ID, Title: item.Title, Price: item.Price})
	}
	if d := order.PaymentDetails; d != nil {
		rec.BankName = nonEmpty(d.BankName)
		rec.AccountNumber = nonEmpty(d.AccountNumber)
		rec.PaymentIntentID = nonEmpty(d.PaymentIntentID)
	}
	return rec
}

func (r orderRecord) toDomain() *domain.Order {
	order := &domain.Order{
		ID:            r.ID,
		BuyerID:       r.BuyerID,
		Buyer:         r.Buyer,
		Seller:        r.Seller,
		Items:         make([]domain.Item, 0, len(r.Items)),
		Subtotal:      r.Subtotal,
		Tax:           r.Tax,
		Total:         r.Total,
		PaymentMethod: r.PaymentMethod,
		Status:        domain.Status(r.Status),
	}
	if r.OrderRef != nil {
		order.OrderID = *r.OrderRef
	}
	for _, item := range r.Items {
		order.Items = append(order.Items, domain.Item{ID: item.ID, Title: item.Title, Price: item.Price})
	}
	if r.BankName != nil || r.AccountNumber != nil || r.PaymentIntentID != nil {
		order.PaymentDetails = &domain.PaymentDetails{
			BankName:        deref(r.BankName),
			AccountNumber:   deref(r.AccountNumber),
			PaymentIntentID: deref(r.PaymentIntentID),
		}
	}
	if r.PlacedAt != nil {
		placed := r.PlacedAt.UTC()
		order.Date = &placed
	}
	return order
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
