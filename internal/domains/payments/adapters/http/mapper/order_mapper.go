package mapper

import (
	"time"

	"github.com/shopspring/decimal"

	paymenttypes "github.com/Apurer/marketplace-api/internal/domains/payments/application/types"
	"github.com/Apurer/marketplace-api/internal/domains/payments/domain"
)

// Item is the transport representation of an order line.
type Item struct {
	ID    int64   `json:"id"`
	Title string  `json:"title"`
	Price float64 `json:"price"`
}

// PaymentDetails mirrors the optional payment coordinates.
type PaymentDetails struct {
	BankName        string `json:"bankName,omitempty"`
	AccountNumber   string `json:"accountNumber,omitempty"`
	PaymentIntentID string `json:"paymentIntentId,omitempty"`
}

// Order is the record shape returned by the admin listing endpoint.
type Order struct {
	ID             int64           `json:"id"`
	OrderID        string          `json:"orderId"`
	Buyer          *string         `json:"buyer"`
	Seller         *string         `json:"seller"`
	BuyerID        *int64          `json:"buyerId"`
	Total          float64         `json:"total"`
	Subtotal       float64         `json:"subtotal"`
	Tax            float64         `json:"tax"`
	PaymentMethod  string          `json:"paymentMethod"`
	PaymentDetails *PaymentDetails `json:"paymentDetails"`
	Status         string          `json:"status"`
	Date           *string         `json:"date"`
	Items          []Item          `json:"items"`
}

// PlaceOrderRequest is the JSON body of POST /payment/orders. Prices accept numbers or strings.
type PlaceOrderRequest struct {
	BuyerID        *int64          `json:"buyerId"`
	Buyer          *string         `json:"buyer"`
	Seller         *string         `json:"seller"`
	Items          []ItemRequest   `json:"items"`
	Tax            decimal.Decimal `json:"tax"`
	PaymentMethod  string          `json:"paymentMethod"`
	PaymentDetails *PaymentDetails `json:"paymentDetails"`
	Status         string          `json:"status"`
}

// ItemRequest is a requested order line.
type ItemRequest struct {
	Title string          `json:"title"`
	Price decimal.Decimal `json:"price"`
}

// FromDomainOrder converts a domain order to the transport representation.
func FromDomainOrder(order *domain.Order) Order {
	if order == nil {
		return Order{Items: []Item{}}
	}
	out := Order{
		ID:            order.ID,
		OrderID:       order.OrderID,
		Buyer:         order.Buyer,
		Seller:        order.Seller,
		BuyerID:       order.BuyerID,
		Total:         order.Total.InexactFloat64(),
		Subtotal:      order.Subtotal.InexactFloat64(),
		Tax:           order.Tax.InexactFloat64(),
		PaymentMethod: order.PaymentMethod,
		Status:        string(order.Status),
		Items:         make([]Item, 0, len(order.Items)),
	}
	for _, item := range order.Items {
		out.Items = append(out.Items, Item{ID: item.ID, Title: item.Title, Price: item.Price.InexactFloat64()})
	}
	if d := order.PaymentDetails; d != nil {
		out.PaymentDetails = &PaymentDetails{
			BankName:        d.BankName,
			AccountNumber:   d.AccountNumber,
			PaymentIntentID: d.PaymentIntentID,
		}
	}
	if order.Date != nil {
		date := order.Date.UTC().Format(time.RFC3339)
		out.Date = &date
	}
	return out
}

// FromDomainOrders converts a slice, never returning nil.
func FromDomainOrders(orders []*domain.Order) []Order {
	out := make([]Order, 0, len(orders))
	for _, order := range orders {
		out = append(out, FromDomainOrder(order))
	}
	return out
}

// ToPlaceOrderInput converts the request body into the application command.
func ToPlaceOrderInput(req PlaceOrderRequest) paymenttypes.PlaceOrderInput {
	input := paymenttypes.PlaceOrderInput{
		BuyerID:       req.BuyerID,
		Buyer:         req.Buyer,
		Seller:        req.Seller,
		Tax:           req.Tax,
		PaymentMethod: req.PaymentMethod,
		Status:        req.Status,
	}
	for _, item := range req.Items {
		input.Items = append(input.Items, paymenttypes.ItemInput{Title: item.Title, Price: item.Price})
	}
	if d := req.PaymentDetails; d != nil {
		input.PaymentDetails = &paymenttypes.PaymentDetailsInput{
			BankName:        d.BankName,
			AccountNumber:   d.AccountNumber,
			PaymentIntentID: d.PaymentIntentID,
		}
	}
	return input
}
