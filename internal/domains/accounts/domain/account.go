package domain

import (
	"strings"
	"time"
)

// Account is the credential holder a reset token belongs to.
type Account struct {
	ID           int64
	Email        string
	PasswordHash string
	UpdatedAt    time.Time
}

// NewAccount builds an account with a normalised email.
func NewAccount(id int64, email, passwordHash string) *Account {
	return &Account{
		ID:           id,
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: passwordHash,
	}
}

// ChangePassword replaces the stored credential hash.
func (a *Account) ChangePassword(hash string, at time.Time) {
	a.PasswordHash = hash
	a.UpdatedAt = at.UTC()
}
