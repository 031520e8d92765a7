package paymentsview

import (
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// CurrencyPrefix precedes every formatted amount.
const CurrencyPrefix = "Rs. "

// NotAvailable is shown for missing dates and payment details.
const NotAvailable = "N/A"

// Color is the indicator shown next to a status.
type Color string

const (
	ColorGreen  Color = "green"
	ColorOrange Color = "orange"
	ColorRed    Color = "red"
	ColorGray   Color = "gray"
)

var statusColors = map[string]Color{
	"completed": ColorGreen,
	"pending":   ColorOrange,
	"cancelled": ColorRed,
}

// FormatCurrency renders an amount with English digit grouping and at most two fraction digits.
func FormatCurrency(amount float64) string {
	p := message.NewPrinter(language.English)
	return CurrencyPrefix + p.Sprint(number.Decimal(amount, number.MaxFractionDigits(2)))
}

// FormatDate renders an ISO date as dd/mm/yyyy in loc, or N/A when missing or unparseable.
func FormatDate(date *string, loc *time.Location) string {
	if date == nil {
		return NotAvailable
	}
	t, ok := parseDate(*date)
	if !ok {
		return NotAvailable
	}
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format("02/01/2006")
}

// CapitalizeMethod upper-cases the first letter of the payment method.
func CapitalizeMethod(method string) string {
	if method == "" {
		return method
	}
	first, size := utf8.DecodeRuneInString(method)
	return cases.Upper(language.English).String(string(first)) + method[size:]
}

// FormatDetails renders bank coordinates, a card payment marker, or N/A.
func FormatDetails(details *PaymentDetails) string {
	if details == nil {
		return NotAvailable
	}
	if details.BankName != "" && details.AccountNumber != "" {
		return details.BankName + " - " + details.AccountNumber
	}
	if details.PaymentIntentID != "" {
		return "Stripe Payment"
	}
	return NotAvailable
}

// StatusColor maps a status to its indicator; unknown statuses are gray.
func StatusColor(status string) Color {
	if c, ok := statusColors[strings.ToLower(strings.TrimSpace(status))]; ok {
		return c
	}
	return ColorGray
}
