package marketplaceserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	accountsapp "github.com/Apurer/marketplace-api/internal/domains/accounts/application"
	listingsapp "github.com/Apurer/marketplace-api/internal/domains/listings/application"
	listingsports "github.com/Apurer/marketplace-api/internal/domains/listings/ports"
	paymentsapp "github.com/Apurer/marketplace-api/internal/domains/payments/application"
	paymentsports "github.com/Apurer/marketplace-api/internal/domains/payments/ports"
	apierrors "github.com/Apurer/marketplace-api/internal/shared/errors"
)

var errorMappers = []apierrors.ErrorMapper{
	mapValidationError,
	mapInvalidTokenError,
	mapNotFoundError,
	mapPayloadTooLarge,
}

// responder maps application errors of every context to RFC 7807 responses.
var responder = apierrors.NewChainedResponder("", errorMappers...)

func mapValidationError(err error) (apierrors.ProblemDetail, bool) {
	if errors.Is(err, listingsapp.ErrValidation) ||
		errors.Is(err, accountsapp.ErrValidation) ||
		errors.Is(err, paymentsapp.ErrInvalidInput) {
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func mapInvalidTokenError(err error) (apierrors.ProblemDetail, bool) {
	if errors.Is(err, accountsapp.ErrInvalidToken) {
		return apierrors.ErrInvalidToken.WithDetail(accountsapp.ErrInvalidToken.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func mapNotFoundError(err error) (apierrors.ProblemDetail, bool) {
	if errors.Is(err, listingsports.ErrImageNotFound) || errors.Is(err, paymentsports.ErrNotFound) {
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func mapPayloadTooLarge(err error) (apierrors.ProblemDetail, bool) {
	var maxBytes *http.MaxBytesError
	if errors.As(err, &maxBytes) {
		return apierrors.ErrPayloadTooLarge.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

// respondProblem sends a ProblemDetail through the shared responder.
func respondProblem(c *gin.Context, problem apierrors.ProblemDetail) {
	responder.Respond(c, problem)
}

// respondServiceError maps a service error. Unmapped errors are answered with a bare 500.
func respondServiceError(c *gin.Context, err error) {
	responder.RespondError(c, err)
}
