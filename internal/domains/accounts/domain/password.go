package domain

import (
	"errors"
	"unicode"
	"unicode/utf8"
)

const (
	MinPasswordLength = 8
	// MaxPasswordLength is the bcrypt input limit in bytes.
	MaxPasswordLength = 72
)

var (
	ErrPasswordRequired = errors.New("newPassword is required")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
	ErrPasswordTooLong  = errors.New("password must not exceed 72 bytes")
	ErrWeakPassword     = errors.New("password must contain at least one letter and one digit")
	ErrPasswordMismatch = errors.New("confirmPassword does not match newPassword")
)

// ValidateNewPassword applies the shape and strength rules of a replacement password.
// confirm is optional; when present it must equal password.
func ValidateNewPassword(password string, confirm *string) error {
	if password == "" {
		return ErrPasswordRequired
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if len(password) > MaxPasswordLength {
		return ErrPasswordTooLong
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return ErrWeakPassword
	}
	if confirm != nil && *confirm != password {
		return ErrPasswordMismatch
	}
	return nil
}
