package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/marketplace-api/internal/domains/payments/domain"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid order input")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrNoItems) ||
		errors.Is(err, domain.ErrEmptyItemTitle) ||
		errors.Is(err, domain.ErrNegativePrice) ||
		errors.Is(err, domain.ErrNegativeTax) ||
		errors.Is(err, domain.ErrMissingPaymentMethod) ||
		errors.Is(err, domain.ErrMissingBankDetails) ||
		errors.Is(err, domain.ErrMissingPaymentIntent) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
