package marketplaceserver

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	accountcrypto "github.com/Apurer/marketplace-api/internal/domains/accounts/adapters/crypto"
	accountmemory "github.com/Apurer/marketplace-api/internal/domains/accounts/adapters/memory"
	accountsapp "github.com/Apurer/marketplace-api/internal/domains/accounts/application"
	listingmemory "github.com/Apurer/marketplace-api/internal/domains/listings/adapters/memory"
	listingsobs "github.com/Apurer/marketplace-api/internal/domains/listings/adapters/observability"
	listingworkflows "github.com/Apurer/marketplace-api/internal/domains/listings/adapters/workflows"
	listingsapp "github.com/Apurer/marketplace-api/internal/domains/listings/application"
	paymentmemory "github.com/Apurer/marketplace-api/internal/domains/payments/adapters/memory"
	paymentsapp "github.com/Apurer/marketplace-api/internal/domains/payments/application"
	"github.com/Apurer/marketplace-api/internal/platform/auth"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

type testServer struct {
	router   *gin.Engine
	listings *listingmemory.Repository
	images   *listingmemory.ImageStorage
	accounts *accountsapp.Service
	tokens   *accountmemory.TokenStore
	payments *paymentsapp.Service
}

func newTestServer(t *testing.T, verifier *auth.Verifier) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	listingRepo := listingmemory.NewRepository()
	images := listingmemory.NewImageStorage()
	listingService := listingsobs.New(listingsapp.NewService(listingRepo, images))

	tokens := accountmemory.NewTokenStore()
	accountService := accountsapp.NewService(accountmemory.NewAccountRepository(), tokens, accountcrypto.NewBcryptHasher(bcrypt.MinCost))

	paymentService := paymentsapp.NewService(paymentmemory.NewRepository())

	handlers := ApiHandleFunctions{
		ListingsAPI: NewListingsAPI(listingService, listingworkflows.NewInlineListingWorkflows(listingService), ""),
		AuthAPI:     NewAuthAPI(accountService),
		PaymentsAPI: NewPaymentsAPI(paymentService),
	}
	if verifier != nil {
		handlers.AdminGuard = auth.RequireAdmin(verifier)
	}
	return &testServer{
		router:   NewRouterWithGinEngine(gin.New(), handlers),
		listings: listingRepo,
		images:   images,
		accounts: accountService,
		tokens:   tokens,
		payments: paymentService,
	}
}

func (s *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) listingCount(t *testing.T) int {
	t.Helper()
	all, err := s.listings.List(context.Background())
	require.NoError(t, err)
	return len(all)
}

type upload struct {
	name        string
	contentType string
	body        []byte
}

func multipartRequest(t *testing.T, fields map[string]string, files []upload) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="images"; filename="`+f.name+`"`)
		h.Set("Content-Type", f.contentType)
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(f.body)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, "/listings", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, target, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
