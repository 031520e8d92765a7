package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateNewPassword(t *testing.T) {
	match := "abcd1234"
	mismatch := "abcd12345"
	cases := []struct {
		name     string
		password string
		confirm  *string
		want     error
	}{
		{name: "valid without confirm", password: "abcd1234"},
		{name: "valid with confirm", password: "abcd1234", confirm: &match},
		{name: "empty", password: "", want: ErrPasswordRequired},
		{name: "short", password: "ab12", want: ErrPasswordTooShort},
		{name: "too long", password: strings.Repeat("a1", 37), want: ErrPasswordTooLong},
		{name: "letters only", password: "abcdefgh", want: ErrWeakPassword},
		{name: "digits only", password: "12345678", want: ErrWeakPassword},
		{name: "mismatch", password: "abcd1234", confirm: &mismatch, want: ErrPasswordMismatch},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateNewPassword(tc.password, tc.confirm)
			if tc.want == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestResetToken_State(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	token := NewResetToken("opaque", 4, now.Add(time.Hour))

	assert.Equal(t, HashToken(" opaque "), token.Hash)
	assert.Len(t, token.Hash, 64)
	assert.False(t, token.Expired(now))
	assert.True(t, token.Expired(now.Add(time.Hour)))
	assert.False(t, token.Consumed())
}
