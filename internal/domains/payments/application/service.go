package application

import (
	"context"
	"sort"
	"strings"
	"time"

	paymenttypes "github.com/Apurer/marketplace-api/internal/domains/payments/application/types"
	"github.com/Apurer/marketplace-api/internal/domains/payments/domain"
	"github.com/Apurer/marketplace-api/internal/domains/payments/ports"
)

// Service orchestrates order and payment use cases.
type Service struct {
	repo ports.Repository
	now  func() time.Time
}

// Option configures optional collaborators of the service.
type Option func(*Service)

// WithClock overrides the time source for deterministic testing.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{repo: repo, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// ListAll returns every order, newest first. Orders without a date sort last.
func (s *Service) ListAll(ctx context.Context) ([]*domain.Order, error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []*domain.Order{}
	}
	sort.SliceStable(orders, func(i, j int) bool {
		a, b := orders[i], orders[j]
		switch {
		case a.Date == nil && b.Date == nil:
			return a.ID > b.ID
		case a.Date == nil:
			return false
		case b.Date == nil:
			return true
		case a.Date.Equal(*b.Date):
			return a.ID > b.ID
		default:
			return a.Date.After(*b.Date)
		}
	})
	return orders, nil
}

func (s *Service) PlaceOrder(ctx context.Context, input paymenttypes.PlaceOrderInput) (*domain.Order, error) {
	draft := domain.Draft{
		BuyerID:       input.BuyerID,
		Buyer:         input.Buyer,
		Seller:        input.Seller,
		Tax:           input.Tax,
		PaymentMethod: input.PaymentMethod,
		Status:        domain.Status(input.Status),
	}
	for _, item := range input.Items {
		draft.Items = append(draft.Items, domain.Item{Title: item.Title, Price: item.Price})
	}
	if input.PaymentDetails != nil {
		draft.PaymentDetails = &domain.PaymentDetails{
			BankName:        input.PaymentDetails.BankName,
			AccountNumber:   input.PaymentDetails.AccountNumber,
			PaymentIntentID: input.PaymentDetails.PaymentIntentID,
		}
	}
	order, err := domain.NewOrder(draft, s.now())
	if err != nil {
		return nil, mapError(err)
	}
	return s.repo.Append(ctx, order)
}

func (s *Service) GetByOrderID(ctx context.Context, orderID string) (*domain.Order, error) {
	orderID = strings.ToUpper(strings.TrimSpace(orderID))
	if orderID == "" {
		return nil, ports.ErrNotFound
	}
	return s.repo.GetByOrderID(ctx, orderID)
}

var _ ports.Service = (*Service)(nil)
