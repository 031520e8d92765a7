package application

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	paymentmemory "github.com/Apurer/marketplace-api/internal/domains/payments/adapters/memory"
	paymenttypes "github.com/Apurer/marketplace-api/internal/domains/payments/application/types"
	"github.com/Apurer/marketplace-api/internal/domains/payments/domain"
	"github.com/Apurer/marketplace-api/internal/domains/payments/ports"
)

func placeInput(buyer string, price string) paymenttypes.PlaceOrderInput {
	return paymenttypes.PlaceOrderInput{
		Buyer:         &buyer,
		Items:         []paymenttypes.ItemInput{{Title: "Goat", Price: decimal.RequireFromString(price)}},
		PaymentMethod: "cash",
	}
}

func TestPlaceOrder_ValidatesAndPersists(t *testing.T) {
	svc := NewService(paymentmemory.NewRepository())

	order, err := svc.PlaceOrder(context.Background(), placeInput("Alice", "100"))
	require.NoError(t, err)
	require.Equal(t, int64(1), order.ID)
	require.Equal(t, "ORD-1001", order.OrderID)
	require.Equal(t, domain.StatusPending, order.Status)

	fetched, err := svc.GetByOrderID(context.Background(), " ord-1001 ")
	require.NoError(t, err)
	require.Equal(t, order.ID, fetched.ID)
}

func TestPlaceOrder_InvalidInput(t *testing.T) {
	svc := NewService(paymentmemory.NewRepository())

	_, err := svc.PlaceOrder(context.Background(), paymenttypes.PlaceOrderInput{PaymentMethod: "cash"})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrNoItems)
}

func TestGetByOrderID_NotFound(t *testing.T) {
	svc := NewService(paymentmemory.NewRepository())
	_, err := svc.GetByOrderID(context.Background(), "ORD-9999")
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestListAll_NewestFirst(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	svc := NewService(paymentmemory.NewRepository(), WithClock(func() time.Time { return now }))
	ctx := context.Background()

	_, err := svc.PlaceOrder(ctx, placeInput("first", "1"))
	require.NoError(t, err)
	now = now.Add(time.Hour)
	_, err = svc.PlaceOrder(ctx, placeInput("second", "2"))
	require.NoError(t, err)
	_, err = svc.PlaceOrder(ctx, placeInput("third", "3"))
	require.NoError(t, err)

	orders, err := svc.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 3)
	require.Equal(t, "third", *orders[0].Buyer)
	require.Equal(t, "second", *orders[1].Buyer)
	require.Equal(t, "first", *orders[2].Buyer)
}

func TestListAll_EmptyIsNotNil(t *testing.T) {
	svc := NewService(paymentmemory.NewRepository())
	orders, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	require.NotNil(t, orders)
	require.Empty(t, orders)
}
