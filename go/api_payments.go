package marketplaceserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	orderhttpmapper "github.com/Apurer/marketplace-api/internal/domains/payments/adapters/http/mapper"
	paymentsports "github.com/Apurer/marketplace-api/internal/domains/payments/ports"
	apierrors "github.com/Apurer/marketplace-api/internal/shared/errors"
)

// PaymentsAPI wires HTTP transport with the payments bounded context service.
type PaymentsAPI struct {
	service paymentsports.Service
}

// NewPaymentsAPI creates a PaymentsAPI backed by the provided service.
func NewPaymentsAPI(service paymentsports.Service) PaymentsAPI {
	return PaymentsAPI{service: service}
}

// Get /payment/admin/all
// Lists every order, newest first
func (api *PaymentsAPI) ListAllPayments(c *gin.Context) {
	orders, err := api.service.ListAll(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromDomainOrders(orders))
}

// Post /payment/orders
// Places an order
func (api *PaymentsAPI) PlaceOrder(c *gin.Context) {
	var payload orderhttpmapper.PlaceOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	order, err := api.service.PlaceOrder(c.Request.Context(), orderhttpmapper.ToPlaceOrderInput(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, orderhttpmapper.FromDomainOrder(order))
}

// Get /payment/orders/:orderId
// Returns a single order by its public reference
func (api *PaymentsAPI) GetOrder(c *gin.Context) {
	order, err := api.service.GetByOrderID(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromDomainOrder(order))
}
