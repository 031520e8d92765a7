package paymentsview

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"
)

// FetchErrorMessage is the notification shown when payments cannot be loaded.
const FetchErrorMessage = "Failed to fetch payments"

// Fetcher loads the full payment collection.
type Fetcher interface {
	FetchPayments(ctx context.Context) ([]Payment, error)
}

// Option configures a View.
type Option func(*View)

// WithNotifier sets the destination of error notifications.
func WithNotifier(n Notifier) Option {
	return func(v *View) {
		if n != nil {
			v.notifier = n
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(v *View) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// WithLocation sets the time zone used to render dates.
func WithLocation(loc *time.Location) Option {
	return func(v *View) {
		if loc != nil {
			v.location = loc
		}
	}
}

// Row is a rendered table line.
type Row struct {
	OrderID     string
	Buyer       string
	Seller      string
	Amount      string
	Method      string
	Details     string
	Status      string
	StatusColor Color
	Date        string
}

// View holds the admin payments screen state. It is safe for concurrent use.
type View struct {
	fetcher  Fetcher
	notifier Notifier
	logger   *slog.Logger
	location *time.Location

	mu       sync.Mutex
	payments []Payment
	loading  bool
	closed   bool
	cancel   context.CancelFunc
	search   string
	sort     SortState
	tab      Tab
}

// New builds a View around fetcher.
func New(fetcher Fetcher, opts ...Option) *View {
	v := &View{
		fetcher:  fetcher,
		logger:   slog.New(slog.NewJSONHandler(io.Discard, nil)),
		location: time.UTC,
		payments: []Payment{},
		sort:     DefaultSort,
		tab:      TabAll,
	}
	v.notifier = LogNotifier{Logger: v.logger}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Load fetches the payments once. On failure the collection is emptied, a single notification
// is sent and the error is returned. A response arriving after Close is discarded.
func (v *View) Load(ctx context.Context) error {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return ErrClosed
	}
	if v.loading {
		v.mu.Unlock()
		return ErrLoadInProgress
	}
	ctx, cancel := context.WithCancel(ctx)
	v.loading = true
	v.cancel = cancel
	v.mu.Unlock()

	payments, err := v.fetcher.FetchPayments(ctx)
	cancel()

	v.mu.Lock()
	v.loading = false
	v.cancel = nil
	if v.closed {
		v.mu.Unlock()
		if err == nil {
			err = ErrClosed
		}
		return err
	}
	if err != nil {
		v.payments = []Payment{}
		v.mu.Unlock()
		v.logger.ErrorContext(ctx, "fetch payments failed", slog.String("error", err.Error()))
		v.notifier.Error(ctx, FetchErrorMessage)
		return err
	}
	v.payments = clonePayments(payments)
	count := len(v.payments)
	v.mu.Unlock()
	v.logger.InfoContext(ctx, "payments loaded", slog.Int("count", count))
	return nil
}

// Close cancels an in-flight fetch and freezes the state.
func (v *View) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.closed = true
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
}

// Loading reports whether a fetch is running.
func (v *View) Loading() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loading
}

// Payments returns a copy of the loaded collection.
func (v *View) Payments() []Payment {
	v.mu.Lock()
	defer v.mu.Unlock()
	return clonePayments(v.payments)
}

// SetSearch replaces the search term.
func (v *View) SetSearch(term string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.search = term
}

// Search returns the current search term.
func (v *View) Search() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.search
}

// ToggleSort applies a column header click and returns the new state.
func (v *View) ToggleSort(field SortField) (SortState, error) {
	f, ok := ParseSortField(string(field))
	if !ok {
		return SortState{}, ErrUnknownSortField
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.sort = v.sort.Toggle(f)
	return v.sort, nil
}

// SortState returns the active sort.
func (v *View) SortState() SortState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.sort
}

// SelectTab switches the active tab.
func (v *View) SelectTab(tab Tab) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.tab = NormalizeTab(tab)
}

// ActiveTab returns the selected tab.
func (v *View) ActiveTab() Tab {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.tab
}

// Visible returns the payments after search, sort and the active tab.
func (v *View) Visible() []Payment {
	v.mu.Lock()
	payments, search, state, tab := v.payments, v.search, v.sort, v.tab
	v.mu.Unlock()
	return FilterByTab(Sort(Search(payments, search), state), tab)
}

// TabCounts counts the loaded collection per tab, ignoring the search term.
func (v *View) TabCounts() []TabCount {
	v.mu.Lock()
	defer v.mu.Unlock()
	return CountTabs(v.payments)
}

// Rows formats the visible payments for display.
func (v *View) Rows() []Row {
	visible := v.Visible()
	rows := make([]Row, 0, len(visible))
	for _, p := range visible {
		rows = append(rows, Row{
			OrderID:     p.OrderID,
			Buyer:       p.BuyerDisplay(),
			Seller:      p.SellerDisplay(),
			Amount:      FormatCurrency(p.Amount),
			Method:      CapitalizeMethod(p.PaymentMethod),
			Details:     FormatDetails(p.PaymentDetails),
			Status:      p.Status,
			StatusColor: StatusColor(p.Status),
			Date:        FormatDate(p.Date, v.location),
		})
	}
	return rows
}

// IsCanceled reports whether err came from a canceled fetch.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, ErrClosed)
}

func clonePayments(in []Payment) []Payment {
	out := make([]Payment, 0, len(in))
	for _, p := range in {
		out = append(out, p.clone())
	}
	return out
}
