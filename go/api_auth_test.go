package marketplaceserver

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	accounthttpmapper "github.com/Apurer/marketplace-api/internal/domains/accounts/adapters/http/mapper"
	accounttypes "github.com/Apurer/marketplace-api/internal/domains/accounts/application/types"
	"github.com/Apurer/marketplace-api/internal/domains/accounts/domain"
	apierrors "github.com/Apurer/marketplace-api/internal/shared/errors"
)

func issueResetToken(t *testing.T, srv *testServer) string {
	t.Helper()
	account, err := srv.accounts.RegisterAccount(context.Background(), domain.NewAccount(0, "owner@example.com", ""), "original1")
	require.NoError(t, err)
	token, err := srv.accounts.IssueResetToken(context.Background(), accounttypes.IssueResetTokenInput{AccountID: account.ID, TTL: time.Hour})
	require.NoError(t, err)
	return token
}

func TestResetPasswordSuccess(t *testing.T) {
	srv := newTestServer(t, nil)
	token := issueResetToken(t, srv)

	w := srv.do(jsonRequest(t, http.MethodPost, "/auth/reset-password?token="+token, map[string]string{
		"newPassword":     "freshpass9",
		"confirmPassword": "freshpass9",
	}))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decodeBody[accounthttpmapper.MessageResponse](t, w)
	assert.Equal(t, accounthttpmapper.ResetPasswordSuccessMessage, body.Message)

	again := srv.do(jsonRequest(t, http.MethodPost, "/auth/reset-password?token="+token, map[string]string{
		"newPassword": "anotherpass9",
	}))
	require.Equal(t, http.StatusBadRequest, again.Code)
	assert.Equal(t, apierrors.TypeInvalidToken, decodeBody[apierrors.ProblemDetail](t, again).Type)
}

func TestResetPasswordErrors(t *testing.T) {
	tests := []struct {
		name        string
		token       string
		body        map[string]string
		problemType string
	}{
		{"missing token", "", map[string]string{"newPassword": "freshpass9"}, apierrors.TypeInvalidToken},
		{"unknown token", "does-not-exist", map[string]string{"newPassword": "freshpass9"}, apierrors.TypeInvalidToken},
		{"weak password", "does-not-exist", map[string]string{"newPassword": "password"}, apierrors.TypeValidation},
		{"short password", "does-not-exist", map[string]string{"newPassword": "ab1"}, apierrors.TypeValidation},
		{"mismatch", "does-not-exist", map[string]string{"newPassword": "freshpass9", "confirmPassword": "freshpass8"}, apierrors.TypeValidation},
		{"empty body", "does-not-exist", map[string]string{}, apierrors.TypeValidation},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := newTestServer(t, nil)
			target := "/auth/reset-password"
			if tc.token != "" {
				target += "?token=" + tc.token
			}
			w := srv.do(jsonRequest(t, http.MethodPost, target, tc.body))
			require.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tc.problemType, decodeBody[apierrors.ProblemDetail](t, w).Type)
		})
	}
}

func TestResetPasswordValidatesPayloadBeforeConsumingToken(t *testing.T) {
	srv := newTestServer(t, nil)
	token := issueResetToken(t, srv)

	weak := srv.do(jsonRequest(t, http.MethodPost, "/auth/reset-password?token="+token, map[string]string{"newPassword": "short"}))
	require.Equal(t, http.StatusBadRequest, weak.Code)

	ok := srv.do(jsonRequest(t, http.MethodPost, "/auth/reset-password?token="+token, map[string]string{"newPassword": "freshpass9"}))
	assert.Equal(t, http.StatusOK, ok.Code)
}
