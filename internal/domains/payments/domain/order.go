package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Status is the payment state reported for an order. Values outside the known set are kept as is.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusPending   Status = "pending"
	StatusCancelled Status = "cancelled"
)

const (
	MethodStripe       = "stripe"
	MethodBankTransfer = "bank_transfer"
)

// orderReferenceOffset keeps public order references away from raw row identifiers.
const orderReferenceOffset = 1000

var (
	ErrNoItems              = errors.New("order must contain at least one item")
	ErrEmptyItemTitle       = errors.New("item title is required")
	ErrNegativePrice        = errors.New("item price must not be negative")
	ErrNegativeTax          = errors.New("tax must not be negative")
	ErrMissingPaymentMethod = errors.New("payment method is required")
	ErrMissingBankDetails   = errors.New("bank transfers require bank name and account number")
	ErrMissingPaymentIntent = errors.New("stripe payments require a payment intent id")
)

// Item is a purchased line.
type Item struct {
	ID    int64
	Title string
	Price decimal.Decimal
}

// PaymentDetails carries either bank transfer coordinates or a card payment intent.
type PaymentDetails struct {
	BankName        string
	AccountNumber   string
	PaymentIntentID string
}

// Order is the payments aggregate listed by the admin API.
type Order struct {
	ID             int64
	OrderID        string
	BuyerID        *int64
	Buyer          *string
	Seller         *string
	Items          []Item
	Subtotal       decimal.Decimal
	Tax            decimal.Decimal
	Total          decimal.Decimal
	PaymentMethod  string
	PaymentDetails *PaymentDetails
	Status         Status
	Date           *time.Time
}

// Draft is an order before the store assigns its identity.
type Draft struct {
	BuyerID        *int64
	Buyer          *string
	Seller         *string
	Items          []Item
	Tax            decimal.Decimal
	PaymentMethod  string
	PaymentDetails *PaymentDetails
	Status         Status
}

// NewOrder validates a draft and computes its totals. Status defaults to pending.
func NewOrder(draft Draft, placedAt time.Time) (*Order, error) {
	if len(draft.Items) == 0 {
		return nil, ErrNoItems
	}
	if draft.Tax.IsNegative() {
		return nil, ErrNegativeTax
	}
	method := NormalizeMethod(draft.PaymentMethod)
	if method == "" {
		return nil, ErrMissingPaymentMethod
	}
	details := cloneDetails(draft.PaymentDetails)
	switch method {
	case MethodBankTransfer:
		if details == nil || strings.TrimSpace(details.BankName) == "" || strings.TrimSpace(details.AccountNumber) == "" {
			return nil, ErrMissingBankDetails
		}
	case MethodStripe:
		if details == nil || strings.TrimSpace(details.PaymentIntentID) == "" {
			return nil, ErrMissingPaymentIntent
		}
	}

	items := make([]Item, 0, len(draft.Items))
	subtotal := decimal.Zero
	for i, item := range draft.Items {
		title := strings.TrimSpace(item.Title)
		if title == "" {
			return nil, fmt.Errorf("item %d: %w", i+1, ErrEmptyItemTitle)
		}
		if item.Price.IsNegative() {
			return nil, fmt.Errorf("item %d: %w", i+1, ErrNegativePrice)
		}
		id := item.ID
		if id == 0 {
			id = int64(i + 1)
		}
		items = append(items, Item{ID: id, Title: title, Price: item.Price})
		subtotal = subtotal.Add(item.Price)
	}

	status := Status(strings.ToLower(strings.TrimSpace(string(draft.Status))))
	if status == "" {
		status = StatusPending
	}
	date := placedAt.UTC()
	return &Order{
		BuyerID:        cloneInt64(draft.BuyerID),
		Buyer:          trimmedOrNil(draft.Buyer),
		Seller:         trimmedOrNil(draft.Seller),
		Items:          items,
		Subtotal:       subtotal,
		Tax:            draft.Tax,
		Total:          subtotal.Add(draft.Tax),
		PaymentMethod:  method,
		PaymentDetails: details,
		Status:         status,
		Date:           &date,
	}, nil
}

// AssignID sets the store identifier and the derived public reference.
func (o *Order) AssignID(id int64) {
	o.ID = id
	o.OrderID = OrderReference(id)
}

// OrderReference renders the public order reference for a store identifier.
func OrderReference(id int64) string {
	return fmt.Sprintf("ORD-%d", id+orderReferenceOffset)
}

// NormalizeMethod lowercases the method and folds spaces and dashes into underscores.
func NormalizeMethod(method string) string {
	method = strings.ToLower(strings.TrimSpace(method))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(method)
}

// Clone returns a deep copy.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	copy := *o
	copy.BuyerID = cloneInt64(o.BuyerID)
	copy.Buyer = cloneString(o.Buyer)
	copy.Seller = cloneString(o.Seller)
	copy.Items = append([]Item{}, o.Items...)
	copy.PaymentDetails = cloneDetails(o.PaymentDetails)
	if o.Date != nil {
		d := *o.Date
		copy.Date = &d
	}
	return &copy
}

func trimmedOrNil(v *string) *string {
	if v == nil {
		return nil
	}
	s := strings.TrimSpace(*v)
	if s == "" {
		return nil
	}
	return &s
}

func cloneString(v *string) *string {
	if v == nil {
		return nil
	}
	s := *v
	return &s
}

func cloneInt64(v *int64) *int64 {
	if v == nil {
		return nil
	}
	n := *v
	return &n
}

func cloneDetails(d *PaymentDetails) *PaymentDetails {
	if d == nil {
		return nil
	}
	copy := *d
	return &copy
}
