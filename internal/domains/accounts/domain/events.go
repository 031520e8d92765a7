package domain

import (
	"time"

	"github.com/Apurer/marketplace-api/internal/shared/events"
)

// PasswordReset is raised after an account credential was replaced through a reset token.
type PasswordReset struct {
	events.Base
	AccountID int64 `json:"accountId"`
}

// EventName returns the event type identifier.
func (PasswordReset) EventName() string {
	return "accounts.password.reset"
}

// NewPasswordReset builds the event for the given account.
func NewPasswordReset(accountID int64, at time.Time) PasswordReset {
	return PasswordReset{Base: events.Base{Timestamp: at.UTC()}, AccountID: accountID}
}
