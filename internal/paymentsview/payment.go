package paymentsview

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Item is a purchased line of a payment.
type Item struct {
	ID    int64
	Title string
	Price float64
}

// PaymentDetails holds bank transfer coordinates or a card payment intent.
type PaymentDetails struct {
	BankName        string
	AccountNumber   string
	PaymentIntentID string
}

// Payment is the read-only display projection of an order record.
type Payment struct {
	ID             int64
	OrderID        string
	Buyer          *string
	Seller         *string
	BuyerID        *int64
	Amount         float64
	Total          float64
	Subtotal       float64
	Tax            float64
	PaymentMethod  string
	PaymentDetails *PaymentDetails
	Status         string
	Date           *string
	Items          []Item
}

// BuyerDisplay falls back to the buyer id, then to "Unknown".
func (p Payment) BuyerDisplay() string {
	if p.Buyer != nil && *p.Buyer != "" {
		return *p.Buyer
	}
	if p.BuyerID != nil {
		return fmt.Sprintf("Buyer ID: %d", *p.BuyerID)
	}
	return "Unknown"
}

// SellerDisplay falls back to "Unknown Seller".
func (p Payment) SellerDisplay() string {
	if p.Seller != nil && *p.Seller != "" {
		return *p.Seller
	}
	return "Unknown Seller"
}

func (p Payment) clone() Payment {
	out := p
	out.Buyer = cloneString(p.Buyer)
	out.Seller = cloneString(p.Seller)
	out.Date = cloneString(p.Date)
	if p.BuyerID != nil {
		id := *p.BuyerID
		out.BuyerID = &id
	}
	if p.PaymentDetails != nil {
		d := *p.PaymentDetails
		out.PaymentDetails = &d
	}
	out.Items = append([]Item(nil), p.Items...)
	return out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// rawPayment is the wire schema of one admin record. Pointers distinguish absent from zero.
type rawPayment struct {
	ID             *int64             `json:"id" validate:"required"`
	OrderID        *string            `json:"orderId" validate:"required,min=1"`
	Buyer          *string            `json:"buyer"`
	Seller         *string            `json:"seller"`
	BuyerID        *int64             `json:"buyerId"`
	Total          *float64           `json:"total" validate:"required"`
	Subtotal       *float64           `json:"subtotal" validate:"required"`
	Tax            *float64           `json:"tax" validate:"required"`
	PaymentMethod  *string            `json:"paymentMethod" validate:"required"`
	PaymentDetails *rawPaymentDetails `json:"paymentDetails"`
	Status         *string            `json:"status" validate:"required"`
	Date           *string            `json:"date"`
	Items          []*rawItem         `json:"items" validate:"required,dive,required"`
}

type rawPaymentDetails struct {
	BankName        *string `json:"bankName"`
	AccountNumber   *string `json:"accountNumber"`
	PaymentIntentID *string `json:"paymentIntentId"`
}

type rawItem struct {
	ID    *int64   `json:"id" validate:"required"`
	Title *string  `json:"title" validate:"required"`
	Price *float64 `json:"price" validate:"required"`
}

var recordValidator = validator.New()

var dateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

// DecodePayments parses an admin response body into payments. Any record that does not match the
// schema rejects the whole response with a MalformedResponseError.
func DecodePayments(body []byte) ([]Payment, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, &MalformedResponseError{Index: -1, Err: errors.New("expected a JSON array of payment records")}
	}
	var docs []json.RawMessage
	if err := json.Unmarshal(trimmed, &docs); err != nil {
		return nil, &MalformedResponseError{Index: -1, Err: err}
	}
	payments := make([]Payment, 0, len(docs))
	for i, doc := range docs {
		payment, err := decodeRecord(i, doc)
		if err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}
	return payments, nil
}

func decodeRecord(index int, doc json.RawMessage) (Payment, error) {
	if bytes.Equal(bytes.TrimSpace(doc), []byte("null")) {
		return Payment{}, &MalformedResponseError{Index: index, Err: errors.New("record is null")}
	}
	var raw rawPayment
	if err := json.Unmarshal(doc, &raw); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return Payment{}, &MalformedResponseError{Index: index, Field: typeErr.Field, Err: err}
		}
		return Payment{}, &MalformedResponseError{Index: index, Err: err}
	}
	if err := recordValidator.Struct(raw); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return Payment{}, &MalformedResponseError{Index: index, Field: fieldErrs[0].Namespace(), Err: fmt.Errorf("failed %q check", fieldErrs[0].Tag())}
		}
		return Payment{}, &MalformedResponseError{Index: index, Err: err}
	}
	if raw.Date != nil && *raw.Date != "" {
		if _, ok := parseDate(*raw.Date); !ok {
			return Payment{}, &MalformedResponseError{Index: index, Field: "date", Err: fmt.Errorf("unparseable date %q", *raw.Date)}
		}
	}
	return raw.toPayment(), nil
}

func (r rawPayment) toPayment() Payment {
	p := Payment{
		ID:            *r.ID,
		OrderID:       *r.OrderID,
		Buyer:         r.Buyer,
		Seller:        r.Seller,
		BuyerID:       r.BuyerID,
		Amount:        *r.Total,
		Total:         *r.Total,
		Subtotal:      *r.Subtotal,
		Tax:           *r.Tax,
		PaymentMethod: *r.PaymentMethod,
		Status:        *r.Status,
		Items:         make([]Item, 0, len(r.Items)),
	}
	if r.Date != nil && *r.Date != "" {
		p.Date = r.Date
	}
	if d := r.PaymentDetails; d != nil {
		p.PaymentDetails = &PaymentDetails{
			BankName:        deref(d.BankName),
			AccountNumber:   deref(d.AccountNumber),
			PaymentIntentID: deref(d.PaymentIntentID),
		}
	}
	for _, item := range r.Items {
		p.Items = append(p.Items, Item{ID: *item.ID, Title: *item.Title, Price: *item.Price})
	}
	return p
}

func parseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
