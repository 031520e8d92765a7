package paymentsview

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortField names a sortable column.
type SortField string

const (
	SortBuyer  SortField = "buyer"
	SortSeller SortField = "seller"
	SortAmount SortField = "amount"
	SortStatus SortField = "status"
	SortDate   SortField = "date"
)

// Direction is the sort order of the active column.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// SortState is the active column and its direction.
type SortState struct {
	Field     SortField
	Direction Direction
}

// DefaultSort shows the newest payments first.
var DefaultSort = SortState{Field: SortDate, Direction: Descending}

// ParseSortField validates a column name.
func ParseSortField(value string) (SortField, bool) {
	switch f := SortField(strings.ToLower(strings.TrimSpace(value))); f {
	case SortBuyer, SortSeller, SortAmount, SortStatus, SortDate:
		return f, true
	default:
		return "", false
	}
}

// Toggle returns the state after clicking field: the active column flips direction, any other
// column becomes active in ascending order.
func (s SortState) Toggle(field SortField) SortState {
	if s.Field == field {
		if s.Direction == Ascending {
			return SortState{Field: field, Direction: Descending}
		}
		return SortState{Field: field, Direction: Ascending}
	}
	return SortState{Field: field, Direction: Ascending}
}

// Search keeps payments whose displayed buyer, displayed seller, order id or payment method contains term,
// ignoring case. An empty term keeps everything. The input is never modified.
func Search(payments []Payment, term string) []Payment {
	needle := strings.ToLower(strings.TrimSpace(term))
	out := make([]Payment, 0, len(payments))
	for _, p := range payments {
		if needle == "" || matches(p, needle) {
			out = append(out, p)
		}
	}
	return out
}

func matches(p Payment, needle string) bool {
	for _, field := range []string{p.BuyerDisplay(), p.SellerDisplay(), p.OrderID, p.PaymentMethod} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// Sort returns a sorted copy. Dates compare by instant with missing dates at epoch zero, amounts
// numerically, and strings with English collation. Buyer and seller sort by their displayed names.
func Sort(payments []Payment, state SortState) []Payment {
	out := append([]Payment(nil), payments...)
	if out == nil {
		out = []Payment{}
	}
	collator := collate.New(language.English)
	less := func(a, b Payment) int {
		switch state.Field {
		case SortAmount:
			return compareFloat(a.Amount, b.Amount)
		case SortDate:
			return compareInt64(dateMillis(a.Date), dateMillis(b.Date))
		case SortBuyer:
			return collator.CompareString(a.BuyerDisplay(), b.BuyerDisplay())
		case SortSeller:
			return collator.CompareString(a.SellerDisplay(), b.SellerDisplay())
		case SortStatus:
			return collator.CompareString(a.Status, b.Status)
		default:
			return 0
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		c := less(out[i], out[j])
		if state.Direction == Descending {
			return c > 0
		}
		return c < 0
	})
	return out
}

// FilterByTab keeps payments whose status equals the tab, ignoring case. The all tab keeps everything.
func FilterByTab(payments []Payment, tab Tab) []Payment {
	tab = NormalizeTab(tab)
	out := make([]Payment, 0, len(payments))
	for _, p := range payments {
		if tab == TabAll || strings.EqualFold(p.Status, string(tab)) {
			out = append(out, p)
		}
	}
	return out
}

// CountTabs counts the collection per standard tab.
func CountTabs(payments []Payment) []TabCount {
	counts := make([]TabCount, 0, len(StandardTabs))
	for _, tab := range StandardTabs {
		counts = append(counts, TabCount{Tab: tab, Label: tab.Label(), Count: len(FilterByTab(payments, tab))})
	}
	return counts
}

func dateMillis(date *string) int64 {
	if date == nil {
		return 0
	}
	t, ok := parseDate(*date)
	if !ok {
		return 0
	}
	return t.UnixMilli()
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
