package inmemory

import (
	"context"
	"sync"

	"github.com/mishabunte/walletcore/internal/core/domain"
	"github.com/mishabunte/walletcore/internal/core/ports"
)

type accountRepository struct {
	accounts map[string]domain.Account
	// ids keeps accounts in insertion order.
	ids []string

	lock *sync.RWMutex
}

func NewAccountRepository() ports.AccountRepository {
	return &accountRepository{
		accounts: make(map[string]domain.Account),
		ids:      make([]string, 0),
		lock:     &sync.RWMutex{},
	}
}

func (r *accountRepository) GetAll(_ context.Context) ([]domain.Account, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	return r.find(func(domain.Account) bool { return true }), nil
}

func (r *accountRepository) GetByLevel(
	_ context.Context, level int,
) ([]domain.Account, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	return r.find(func(a domain.Account) bool { return a.Level == level }), nil
}

func (r *accountRepository) GetByID(
	_ context.Context, id string,
) (*domain.Account, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	account, ok := r.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return &account, nil
}

func (r *accountRepository) Save(_ context.Context, account domain.Account) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.accounts[account.ID]; !ok {
		r.ids = append(r.ids, account.ID)
	}
	r.accounts[account.ID] = account
	return nil
}

func (r *accountRepository) Delete(_ context.Context, id string) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.accounts[id]; !ok {
		return nil
	}
	delete(r.accounts, id)
	for i, v := range r.ids {
		if v == id {
			r.ids = append(r.ids[:i], r.ids[i+1:]...)
			break
		}
	}
	return nil
}

func (r *accountRepository) find(filter func(domain.Account) bool) []domain.Account {
	accounts := make([]domain.Account, 0, len(r.ids))
	for _, id := range r.ids {
		if account := r.accounts[id]; filter(account) {
			accounts = append(accounts, account)
		}
	}
	return accounts
}
