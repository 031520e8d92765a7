package mapper

import (
	accounttypes "github.com/Apurer/marketplace-api/internal/domains/accounts/application/types"
)

// ResetPasswordSuccessMessage is returned once a credential was replaced.
const ResetPasswordSuccessMessage = "Password has been reset successfully"

// ResetPasswordRequest is the JSON body of POST /auth/reset-password.
type ResetPasswordRequest struct {
	NewPassword     string  `json:"newPassword"`
	ConfirmPassword *string `json:"confirmPassword,omitempty"`
}

// MessageResponse is a plain acknowledgement body.
type MessageResponse struct {
	Message string `json:"message"`
}

// ToResetPasswordInput pairs the query token with the decoded body.
func ToResetPasswordInput(token string, req ResetPasswordRequest) accounttypes.ResetPasswordInput {
	return accounttypes.ResetPasswordInput{
		Token:           token,
		NewPassword:     req.NewPassword,
		ConfirmPassword: req.ConfirmPassword,
	}
}
