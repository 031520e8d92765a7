package marketplaceserver

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	accounthttpmapper "github.com/Apurer/marketplace-api/internal/domains/accounts/adapters/http/mapper"
	accountsports "github.com/Apurer/marketplace-api/internal/domains/accounts/ports"
	apierrors "github.com/Apurer/marketplace-api/internal/shared/errors"
)

// AuthAPI wires HTTP transport with the accounts bounded context service.
type AuthAPI struct {
	service accountsports.Service
}

// NewAuthAPI creates an AuthAPI backed by the provided service.
func NewAuthAPI(service accountsports.Service) AuthAPI {
	return AuthAPI{service: service}
}

// Post /auth/reset-password
// Replaces the password of the account that owns the reset token
func (api *AuthAPI) ResetPassword(c *gin.Context) {
	var payload accounthttpmapper.ResetPasswordRequest
	if err := c.ShouldBindJSON(&payload); err != nil && !errors.Is(err, io.EOF) {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	input := accounthttpmapper.ToResetPasswordInput(c.Query("token"), payload)
	if err := api.service.ResetPassword(c.Request.Context(), input); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, accounthttpmapper.MessageResponse{Message: accounthttpmapper.ResetPasswordSuccessMessage})
}
