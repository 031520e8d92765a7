package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// ResetToken is a single-use password reset grant. Only the hash of the opaque token is kept.
type ResetToken struct {
	Hash       string
	UserID     int64
	ExpiresAt  time.Time
	ConsumedAt *time.Time
}

// HashToken derives the lookup key for an opaque token.
func HashToken(raw string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(raw)))
	return hex.EncodeToString(sum[:])
}

// NewResetToken builds an unconsumed token for the given account.
func NewResetToken(raw string, userID int64, expiresAt time.Time) ResetToken {
	return ResetToken{Hash: HashToken(raw), UserID: userID, ExpiresAt: expiresAt.UTC()}
}

// Expired reports whether the token can no longer be used at now.
func (t ResetToken) Expired(now time.Time) bool {
	return !t.ExpiresAt.After(now)
}

// Consumed reports whether the token was already used.
func (t ResetToken) Consumed() bool {
	return t.ConsumedAt != nil
}
