package marketplaceserver

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	orderhttpmapper "github.com/Apurer/marketplace-api/internal/domains/payments/adapters/http/mapper"
	"github.com/Apurer/marketplace-api/internal/paymentsview"
	"github.com/Apurer/marketplace-api/internal/platform/auth"
	apierrors "github.com/Apurer/marketplace-api/internal/shared/errors"
)

const adminSecret = "admin-secret"

func placeOrder(t *testing.T, srv *testServer, body map[string]any) orderhttpmapper.Order {
	t.Helper()
	w := srv.do(jsonRequest(t, http.MethodPost, "/payment/orders", body))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeBody[orderhttpmapper.Order](t, w)
}

func bankOrder(buyer string, price float64) map[string]any {
	return map[string]any{
		"buyer":         buyer,
		"seller":        "Farm Co",
		"items":         []map[string]any{{"title": "Goat", "price": price}},
		"tax":           "10.50",
		"paymentMethod": "bank_transfer",
		"paymentDetails": map[string]any{
			"bankName":      "HDFC",
			"accountNumber": "001122",
		},
	}
}

func TestPlaceOrderComputesTotals(t *testing.T) {
	srv := newTestServer(t, nil)
	order := placeOrder(t, srv, bankOrder("Alice", 100))

	assert.Equal(t, "ORD-1001", order.OrderID)
	assert.Equal(t, 100.0, order.Subtotal)
	assert.Equal(t, 10.5, order.Tax)
	assert.Equal(t, 110.5, order.Total)
	assert.Equal(t, "pending", order.Status)
	require.NotNil(t, order.Date)

	w := srv.do(httptest.NewRequest(http.MethodGet, "/payment/orders/ord-1001", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, order.ID, decodeBody[orderhttpmapper.Order](t, w).ID)
}

func TestPlaceOrderValidation(t *testing.T) {
	srv := newTestServer(t, nil)
	body := bankOrder("Alice", 100)
	body["paymentDetails"] = nil

	w := srv.do(jsonRequest(t, http.MethodPost, "/payment/orders", body))
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apierrors.TypeValidation, decodeBody[apierrors.ProblemDetail](t, w).Type)
}

func TestGetOrderNotFound(t *testing.T) {
	srv := newTestServer(t, nil)
	w := srv.do(httptest.NewRequest(http.MethodGet, "/payment/orders/ORD-4242", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListAllPaymentsMatchesViewSchema(t *testing.T) {
	srv := newTestServer(t, nil)
	placeOrder(t, srv, bankOrder("Alice", 100))
	placeOrder(t, srv, map[string]any{
		"buyerId":        7,
		"items":          []map[string]any{{"title": "Cow", "price": 50}},
		"paymentMethod":  "stripe",
		"paymentDetails": map[string]any{"paymentIntentId": "pi_123"},
		"status":         "completed",
	})

	w := srv.do(httptest.NewRequest(http.MethodGet, "/payment/admin/all", nil))
	require.Equal(t, http.StatusOK, w.Code)

	payments, err := paymentsview.DecodePayments(w.Body.Bytes())
	require.NoError(t, err)
	require.Len(t, payments, 2)
	assert.Equal(t, "Buyer ID: 7", payments[0].BuyerDisplay())
	assert.Equal(t, "Stripe Payment", paymentsview.FormatDetails(payments[0].PaymentDetails))
	assert.Equal(t, "Alice", payments[1].BuyerDisplay())
}

func TestListAllPaymentsRequiresAdmin(t *testing.T) {
	srv := newTestServer(t, auth.NewVerifier(adminSecret))

	anonymous := srv.do(httptest.NewRequest(http.MethodGet, "/payment/admin/all", nil))
	assert.Equal(t, http.StatusUnauthorized, anonymous.Code)

	userToken, err := auth.IssueToken(adminSecret, "5", "USER", time.Hour)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/payment/admin/all", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	assert.Equal(t, http.StatusForbidden, srv.do(req).Code)

	adminToken, err := auth.IssueToken(adminSecret, "1", auth.RoleAdmin, time.Hour)
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/payment/admin/all", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	w := srv.do(req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, nil)
	w := srv.do(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
