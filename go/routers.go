package marketplaceserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
	// Middleware runs before HandlerFunc.
	Middleware []gin.HandlerFunc
}

// ApiHandleFunctions groups the handlers of every API surface.
type ApiHandleFunctions struct {
	// Routes for the listings part of the API
	ListingsAPI ListingsAPI
	// Routes for the auth part of the API
	AuthAPI AuthAPI
	// Routes for the payment part of the API
	PaymentsAPI PaymentsAPI
	// AdminGuard protects the admin payment routes. Nil leaves them open.
	AdminGuard gin.HandlerFunc
}

// NewRouter returns a new router.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewRouterWithGinEngine adds the API routes to an existing gin engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	router.MaxMultipartMemory = MaxMultipartMemory
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		handlers := append(append([]gin.HandlerFunc{}, route.Middleware...), route.HandlerFunc)
		router.Handle(route.Method, route.Pattern, handlers...)
	}
	return router
}

// DefaultHandleFunc is the default handler for routes that are not wired.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

// Healthz reports process liveness.
func Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	var admin []gin.HandlerFunc
	if handleFunctions.AdminGuard != nil {
		admin = append(admin, handleFunctions.AdminGuard)
	}
	uploadsPattern := handleFunctions.ListingsAPI.uploadsPrefix() + "/:name"
	return []Route{
		{
			Name:        "Healthz",
			Method:      http.MethodGet,
			Pattern:     "/healthz",
			HandlerFunc: Healthz,
		},
		{
			Name:        "ListListings",
			Method:      http.MethodGet,
			Pattern:     "/listings",
			HandlerFunc: handleFunctions.ListingsAPI.ListListings,
		},
		{
			Name:        "CreateListing",
			Method:      http.MethodPost,
			Pattern:     "/listings",
			HandlerFunc: handleFunctions.ListingsAPI.CreateListing,
		},
		{
			Name:        "GetUpload",
			Method:      http.MethodGet,
			Pattern:     uploadsPattern,
			HandlerFunc: handleFunctions.ListingsAPI.GetUpload,
		},
		{
			Name:        "ResetPassword",
			Method:      http.MethodPost,
			Pattern:     "/auth/reset-password",
			HandlerFunc: handleFunctions.AuthAPI.ResetPassword,
		},
		{
			Name:        "ListAllPayments",
			Method:      http.MethodGet,
			Pattern:     "/payment/admin/all",
			HandlerFunc: handleFunctions.PaymentsAPI.ListAllPayments,
			Middleware:  admin,
		},
		{
			Name:        "PlaceOrder",
			Method:      http.MethodPost,
			Pattern:     "/payment/orders",
			HandlerFunc: handleFunctions.PaymentsAPI.PlaceOrder,
		},
		{
			Name:        "GetOrder",
			Method:      http.MethodGet,
			Pattern:     "/payment/orders/:orderId",
			HandlerFunc: handleFunctions.PaymentsAPI.GetOrder,
		},
	}
}
