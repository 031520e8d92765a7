package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/marketplace-api/internal/domains/listings/domain"
)

// ErrValidation signals the request violated an upload or listing rule.
var ErrValidation = errors.New("invalid listing input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrTooManyImages) ||
		errors.Is(err, domain.ErrInvalidImageType) ||
		errors.Is(err, domain.ErrImageTooLarge) ||
		errors.Is(err, domain.ErrEmptyImageName) {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return err
}
