//go:build pact
// +build pact

package provider_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	marketplaceserver "github.com/Apurer/marketplace-api/go"
	accountcrypto "github.com/Apurer/marketplace-api/internal/domains/accounts/adapters/crypto"
	accountmemory "github.com/Apurer/marketplace-api/internal/domains/accounts/adapters/memory"
	accountsapp "github.com/Apurer/marketplace-api/internal/domains/accounts/application"
	listingmemory "github.com/Apurer/marketplace-api/internal/domains/listings/adapters/memory"
	listingworkflows "github.com/Apurer/marketplace-api/internal/domains/listings/adapters/workflows"
	listingsapp "github.com/Apurer/marketplace-api/internal/domains/listings/application"
	paymentmemory "github.com/Apurer/marketplace-api/internal/domains/payments/adapters/memory"
	paymentsapp "github.com/Apurer/marketplace-api/internal/domains/payments/application"
	paymenttypes "github.com/Apurer/marketplace-api/internal/domains/payments/application/types"
	"github.com/Apurer/marketplace-api/internal/domains/payments/domain"
	paymentsports "github.com/Apurer/marketplace-api/internal/domains/payments/ports"
	pacttest "github.com/Apurer/marketplace-api/test/pact"
)

func TestMarketplaceProviderPact(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app := newContractProviderApp(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	verifier := pactprovider.NewVerifier()
	stateHandlers := models.StateHandlers{
		pacttest.StateOrdersExist: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.payments.reset()
			if setup {
				return nil, app.payments.seed(context.Background())
			}
			return nil, nil
		},
		pacttest.StateUnknownToken: func(bool, models.ProviderState) (models.ProviderStateResponse, error) {
			return nil, nil
		},
	}

	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers:   stateHandlers,
		BeforeEach: func() error {
			app.payments.reset()
			return nil
		},
	})
	require.NoError(t, err)
}

type contractProviderApp struct {
	server   *httptest.Server
	payments *resettablePayments
}

func newContractProviderApp(t *testing.T) *contractProviderApp {
	t.Helper()

	listingService := listingsapp.NewService(listingmemory.NewRepository(), listingmemory.NewImageStorage())
	accountService := accountsapp.NewService(
		accountmemory.NewAccountRepository(),
		accountmemory.NewTokenStore(),
		accountcrypto.NewBcryptHasher(bcrypt.MinCost),
	)
	payments := &resettablePayments{}
	payments.reset()

	engine := gin.New()
	engine.Use(gin.Recovery())
	router := marketplaceserver.NewRouterWithGinEngine(engine, marketplaceserver.ApiHandleFunctions{
		ListingsAPI: marketplaceserver.NewListingsAPI(listingService, listingworkflows.NewInlineListingWorkflows(listingService), ""),
		AuthAPI:     marketplaceserver.NewAuthAPI(accountService),
		PaymentsAPI: marketplaceserver.NewPaymentsAPI(payments),
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return &contractProviderApp{server: server, payments: payments}
}

// resettablePayments swaps its backing store so provider states start from a clean order log.
type resettablePayments struct {
	mu      sync.RWMutex
	service *paymentsapp.Service
}

var _ paymentsports.Service = (*resettablePayments)(nil)

func (p *resettablePayments) reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	clock := func() time.Time { return time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC) }
	p.service = paymentsapp.NewService(paymentmemory.NewRepository(), paymentsapp.WithClock(clock))
}

func (p *resettablePayments) current() *paymentsapp.Service {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.service
}

func (p *resettablePayments) seed(ctx context.Context) error {
	buyer, seller, buyerID := pacttest.ExampleBuyer, pacttest.ExampleSeller, pacttest.ExampleBuyerID
	_, err := p.current().PlaceOrder(ctx, paymenttypes.PlaceOrderInput{
		BuyerID: &buyerID,
		Buyer:   &buyer,
		Seller:  &seller,
		Items: []paymenttypes.ItemInput{
			{Title: pacttest.ExampleItemTitle, Price: decimal.RequireFromString("100.25")},
		},
		Tax:           decimal.RequireFromString("10.25"),
		PaymentMethod: "bank_transfer",
		PaymentDetails: &paymenttypes.PaymentDetailsInput{
			BankName:      pacttest.ExampleBankName,
			AccountNumber: pacttest.ExampleAccountNumber,
		},
	})
	return err
}

func (p *resettablePayments) ListAll(ctx context.Context) ([]*domain.Order, error) {
	return p.current().ListAll(ctx)
}

func (p *resettablePayments) PlaceOrder(ctx context.Context, input paymenttypes.PlaceOrderInput) (*domain.Order, error) {
	return p.current().PlaceOrder(ctx, input)
}

func (p *resettablePayments) GetByOrderID(ctx context.Context, orderID string) (*domain.Order, error) {
	return p.current().GetByOrderID(ctx, orderID)
}
