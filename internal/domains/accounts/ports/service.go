package ports

import (
	"context"

	accounttypes "github.com/Apurer/marketplace-api/internal/domains/accounts/application/types"
)

// Service exposes accounts bounded context use cases to adapters.
type Service interface {
	ResetPassword(ctx context.Context, input accounttypes.ResetPasswordInput) error
	IssueResetToken(ctx context.Context, input accounttypes.IssueResetTokenInput) (string, error)
}
