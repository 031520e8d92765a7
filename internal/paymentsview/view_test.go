package paymentsview

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	payments []Payment
	err      error
	calls    atomic.Int32
}

func (s *stubFetcher) FetchPayments(context.Context) ([]Payment, error) {
	s.calls.Add(1)
	return s.payments, s.err
}

type blockingFetcher struct {
	started chan struct{}
	release chan struct{}
	result  []Payment
}

func (b *blockingFetcher) FetchPayments(ctx context.Context) ([]Payment, error) {
	close(b.started)
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-b.release:
		return b.result, nil
	}
}

type countingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *countingNotifier) Error(_ context.Context, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, message)
}

func (n *countingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.messages)
}

func str(s string) *string { return &s }

func samplePayments() []Payment {
	return []Payment{
		{ID: 1, OrderID: "ORD-1001", Buyer: str("A"), Seller: str("S1"), Amount: 100, PaymentMethod: "stripe", Status: "pending", Date: str("2024-03-01T10:00:00Z")},
		{ID: 2, OrderID: "ORD-1002", Buyer: str("B"), Seller: str("S2"), Amount: 50, PaymentMethod: "bank_transfer", Status: "completed", Date: str("2024-03-02T10:00:00Z")},
	}
}

func orderIDs(payments []Payment) []string {
	ids := make([]string, 0, len(payments))
	for _, p := range payments {
		ids = append(ids, p.OrderID)
	}
	return ids
}

func TestViewLoadPopulatesPayments(t *testing.T) {
	fetcher := &stubFetcher{payments: samplePayments()}
	view := New(fetcher)

	require.NoError(t, view.Load(context.Background()))
	assert.False(t, view.Loading())
	assert.Len(t, view.Payments(), 2)
	assert.Equal(t, []string{"ORD-1002", "ORD-1001"}, orderIDs(view.Visible()), "initial sort is newest first")
}

func TestViewLoadFailureNotifiesOnceAndEmpties(t *testing.T) {
	fetcher := &stubFetcher{payments: samplePayments()}
	notifier := &countingNotifier{}
	view := New(fetcher, WithNotifier(notifier))
	require.NoError(t, view.Load(context.Background()))

	fetcher.payments = nil
	fetcher.err = &NetworkError{URL: "http://api/payment/admin/all", Err: errors.New("connection refused")}

	err := view.Load(context.Background())
	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.False(t, view.Loading())
	assert.Empty(t, view.Payments())
	assert.Empty(t, view.Rows())
	assert.Equal(t, 1, notifier.count())
	assert.Equal(t, FetchErrorMessage, notifier.messages[0])
}

func TestViewAmountSortToggle(t *testing.T) {
	view := New(&stubFetcher{payments: samplePayments()})
	require.NoError(t, view.Load(context.Background()))

	state, err := view.ToggleSort(SortAmount)
	require.NoError(t, err)
	assert.Equal(t, SortState{Field: SortAmount, Direction: Ascending}, state)
	assert.Equal(t, []string{"ORD-1002", "ORD-1001"}, orderIDs(view.Visible()))

	state, err = view.ToggleSort(SortAmount)
	require.NoError(t, err)
	assert.Equal(t, Descending, state.Direction)
	assert.Equal(t, []string{"ORD-1001", "ORD-1002"}, orderIDs(view.Visible()))
}

func TestViewToggleSortRejectsUnknownField(t *testing.T) {
	view := New(&stubFetcher{})
	_, err := view.ToggleSort("rating")
	require.ErrorIs(t, err, ErrUnknownSortField)
	assert.Equal(t, DefaultSort, view.SortState())
}

func TestViewTabs(t *testing.T) {
	view := New(&stubFetcher{payments: samplePayments()})
	require.NoError(t, view.Load(context.Background()))

	view.SelectTab(TabCompleted)
	assert.Equal(t, []string{"ORD-1002"}, orderIDs(view.Visible()))

	view.SelectTab("all")
	assert.Equal(t, TabAll, view.ActiveTab())
	assert.Len(t, view.Visible(), 2)

	view.SelectTab("COMPLETED")
	assert.Len(t, view.Visible(), 1)
}

func TestViewTabCountsIgnoreSearch(t *testing.T) {
	view := New(&stubFetcher{payments: samplePayments()})
	require.NoError(t, view.Load(context.Background()))
	view.SetSearch("zzz")

	assert.Empty(t, view.Visible())
	assert.Equal(t, []TabCount{
		{Tab: TabAll, Label: "All Payments", Count: 2},
		{Tab: TabCompleted, Label: "Completed", Count: 1},
		{Tab: TabPending, Label: "Pending", Count: 1},
		{Tab: TabCancelled, Label: "Cancelled", Count: 0},
	}, view.TabCounts())
}

func TestViewCloseCancelsInFlightFetch(t *testing.T) {
	fetcher := &blockingFetcher{started: make(chan struct{}), release: make(chan struct{}), result: samplePayments()}
	notifier := &countingNotifier{}
	view := New(fetcher, WithNotifier(notifier))

	done := make(chan error, 1)
	go func() { done <- view.Load(context.Background()) }()

	<-fetcher.started
	assert.True(t, view.Loading())
	require.ErrorIs(t, view.Load(context.Background()), ErrLoadInProgress)

	view.Close()

	select {
	case err := <-done:
		assert.True(t, IsCanceled(err))
	case <-time.After(time.Second):
		t.Fatal("load did not return after close")
	}
	assert.False(t, view.Loading())
	assert.Empty(t, view.Payments())
	assert.Zero(t, notifier.count())
	require.ErrorIs(t, view.Load(context.Background()), ErrClosed)
}

func TestViewRowsFormatting(t *testing.T) {
	payments := []Payment{{
		ID:             3,
		OrderID:        "ORD-1003",
		BuyerID:        func() *int64 { id := int64(42); return &id }(),
		Amount:         1234.5,
		PaymentMethod:  "stripe",
		PaymentDetails: &PaymentDetails{PaymentIntentID: "pi_123"},
		Status:         "cancelled",
	}}
	view := New(&stubFetcher{payments: payments})
	require.NoError(t, view.Load(context.Background()))

	rows := view.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, Row{
		OrderID:     "ORD-1003",
		Buyer:       "Buyer ID: 42",
		Seller:      "Unknown Seller",
		Amount:      "Rs. 1,234.5",
		Method:      "Stripe",
		Details:     "Stripe Payment",
		Status:      "cancelled",
		StatusColor: ColorRed,
		Date:        NotAvailable,
	}, rows[0])
}
