package types

import "github.com/shopspring/decimal"

// ItemInput is a requested order line.
type ItemInput struct {
	Title string
	Price decimal.Decimal
}

// PaymentDetailsInput carries bank transfer coordinates or a payment intent id.
type PaymentDetailsInput struct {
	BankName        string
	AccountNumber   string
	PaymentIntentID string
}

// PlaceOrderInput is the command for recording an order and its payment.
type PlaceOrderInput struct {
	BuyerID        *int64
	Buyer          *string
	Seller         *string
	Items          []ItemInput
	Tax            decimal.Decimal
	PaymentMethod  string
	PaymentDetails *PaymentDetailsInput
	Status         string
}
