package paymentsview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validRecord = `{
  "id": 1,
  "orderId": "ORD-1001",
  "buyer": "Alice",
  "seller": null,
  "buyerId": 7,
  "total": 118,
  "subtotal": 100,
  "tax": 18,
  "paymentMethod": "bank_transfer",
  "paymentDetails": {"bankName": "HDFC", "accountNumber": "001122"},
  "status": "completed",
  "date": "2024-03-05T10:00:00Z",
  "items": [{"id": 1, "title": "Labrador", "price": 100}]
}`

func TestDecodePayments(t *testing.T) {
	payments, err := DecodePayments([]byte("[" + validRecord + "]"))
	require.NoError(t, err)
	require.Len(t, payments, 1)

	p := payments[0]
	assert.Equal(t, "ORD-1001", p.OrderID)
	assert.Equal(t, 118.0, p.Amount)
	assert.Equal(t, p.Total, p.Amount)
	assert.Equal(t, "Alice", p.BuyerDisplay())
	assert.Equal(t, "Unknown Seller", p.SellerDisplay())
	assert.Equal(t, "HDFC - 001122", FormatDetails(p.PaymentDetails))
	assert.Equal(t, []Item{{ID: 1, Title: "Labrador", Price: 100}}, p.Items)
}

func TestDecodePaymentsAllowsNullableFields(t *testing.T) {
	body := `[{"id":2,"orderId":"ORD-1002","buyer":null,"seller":null,"buyerId":null,"total":50,"subtotal":50,"tax":0,
	"paymentMethod":"stripe","paymentDetails":null,"status":"pending","date":null,"items":[]}]`

	payments, err := DecodePayments([]byte(body))
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Nil(t, payments[0].Date)
	assert.Equal(t, NotAvailable, FormatDate(payments[0].Date, nil))
	assert.Equal(t, NotAvailable, FormatDetails(payments[0].PaymentDetails))
	assert.Equal(t, "Unknown", payments[0].BuyerDisplay())
}

func TestDecodePaymentsRejectsMalformed(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		index int
		field string
	}{
		{"object instead of array", `{"payments": []}`, -1, ""},
		{"not json", `<html>`, -1, ""},
		{"null record", `[null]`, 0, ""},
		{"missing order id", `[{"id":1,"total":1,"subtotal":1,"tax":0,"paymentMethod":"stripe","status":"pending","items":[]}]`, 0, "rawPayment.OrderID"},
		{"string total", `[{"id":1,"orderId":"ORD-1","total":"1","subtotal":1,"tax":0,"paymentMethod":"stripe","status":"pending","items":[]}]`, 0, "total"},
		{"bad date", `[{"id":1,"orderId":"ORD-1","total":1,"subtotal":1,"tax":0,"paymentMethod":"stripe","status":"pending","date":"tomorrow","items":[]}]`, 0, "date"},
		{"second record bad", "[" + validRecord + `,{"id":2}]`, 1, "rawPayment.OrderID"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodePayments([]byte(tc.body))
			var malformed *MalformedResponseError
			require.ErrorAs(t, err, &malformed)
			assert.Equal(t, tc.index, malformed.Index)
			if tc.field != "" {
				assert.Equal(t, tc.field, malformed.Field)
			}
		})
	}
}
