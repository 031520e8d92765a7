package paymentsview

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "Rs. 100", FormatCurrency(100))
	assert.Equal(t, "Rs. 1,234.5", FormatCurrency(1234.5))
	assert.Equal(t, "Rs. 1,000,000.13", FormatCurrency(1000000.129))
	assert.Equal(t, "Rs. 0", FormatCurrency(0))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, NotAvailable, FormatDate(nil, time.UTC))
	assert.Equal(t, NotAvailable, FormatDate(str("yesterday"), time.UTC))
	assert.Equal(t, "05/03/2024", FormatDate(str("2024-03-05T10:00:00Z"), time.UTC))
	assert.Equal(t, "05/03/2024", FormatDate(str("2024-03-05"), nil))

	kolkata := time.FixedZone("IST", 5*3600+1800)
	assert.Equal(t, "06/03/2024", FormatDate(str("2024-03-05T20:00:00Z"), kolkata))
}

func TestCapitalizeMethod(t *testing.T) {
	assert.Equal(t, "Stripe", CapitalizeMethod("stripe"))
	assert.Equal(t, "Bank_transfer", CapitalizeMethod("bank_transfer"))
	assert.Equal(t, "Éclair", CapitalizeMethod("éclair"))
	assert.Equal(t, "", CapitalizeMethod(""))
}

func TestFormatDetails(t *testing.T) {
	assert.Equal(t, NotAvailable, FormatDetails(nil))
	assert.Equal(t, "HDFC - 001122", FormatDetails(&PaymentDetails{BankName: "HDFC", AccountNumber: "001122"}))
	assert.Equal(t, "Stripe Payment", FormatDetails(&PaymentDetails{PaymentIntentID: "pi_1"}))
	assert.Equal(t, NotAvailable, FormatDetails(&PaymentDetails{BankName: "HDFC"}))
}

func TestStatusColor(t *testing.T) {
	assert.Equal(t, ColorGreen, StatusColor("completed"))
	assert.Equal(t, ColorOrange, StatusColor("Pending"))
	assert.Equal(t, ColorRed, StatusColor("CANCELLED"))
	assert.Equal(t, ColorGray, StatusColor("refunded"))
	assert.Equal(t, ColorGray, StatusColor(""))
}
