package types

import "time"

// ResetPasswordInput carries the token from the query string and the new-password payload.
type ResetPasswordInput struct {
	Token           string
	NewPassword     string
	ConfirmPassword *string
}

// IssueResetTokenInput requests a fresh reset token for an account.
type IssueResetTokenInput struct {
	AccountID int64
	TTL       time.Duration
}
