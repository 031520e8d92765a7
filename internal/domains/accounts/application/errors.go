package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/marketplace-api/internal/domains/accounts/domain"
	"github.com/Apurer/marketplace-api/internal/domains/accounts/ports"
)

var (
	// ErrValidation signals the new-password payload violated a shape or strength rule.
	ErrValidation = errors.New("invalid reset payload")
	// ErrInvalidToken wraps missing, unknown, expired and already used tokens.
	ErrInvalidToken = errors.New("invalid or expired reset token")
)

var errMissingToken = errors.New("reset token is required")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrPasswordRequired) ||
		errors.Is(err, domain.ErrPasswordTooShort) ||
		errors.Is(err, domain.ErrPasswordTooLong) ||
		errors.Is(err, domain.ErrWeakPassword) ||
		errors.Is(err, domain.ErrPasswordMismatch) {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	if errors.Is(err, errMissingToken) ||
		errors.Is(err, ports.ErrTokenNotFound) ||
		errors.Is(err, ports.ErrTokenExpired) ||
		errors.Is(err, ports.ErrTokenConsumed) ||
		errors.Is(err, ports.ErrAccountNotFound) {
		return fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	return err
}
