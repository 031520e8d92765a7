package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Apurer/marketplace-api/internal/domains/accounts/domain"
	"github.com/Apurer/marketplace-api/internal/domains/accounts/ports"
)

var _ ports.AccountRepository = (*AccountRepository)(nil)

// AccountRepository is an in-memory account store.
type AccountRepository struct {
	mu       sync.RWMutex
	accounts map[int64]domain.Account
	nextID   int64
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{accounts: map[int64]domain.Account{}, nextID: 1}
}

// Save inserts or replaces an account, assigning an identifier when it has none.
func (r *AccountRepository) Save(_ context.Context, account *domain.Account) (*domain.Account, error) {
	if account == nil {
		return nil, errors.New("cannot save nil account")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *account
	if stored.ID == 0 {
		stored.ID = r.nextID
	}
	if stored.ID >= r.nextID {
		r.nextID = stored.ID + 1
	}
	r.accounts[stored.ID] = stored
	out := stored
	return &out, nil
}

func (r *AccountRepository) GetByID(_ context.Context, id int64) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	account, ok := r.accounts[id]
	if !ok {
		return nil, ports.ErrAccountNotFound
	}
	return &account, nil
}

func (r *AccountRepository) UpdatePassword(_ context.Context, id int64, hash string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	account, ok := r.accounts[id]
	if !ok {
		return ports.ErrAccountNotFound
	}
	account.ChangePassword(hash, at)
	r.accounts[id] = account
	return nil
}
