package application

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/mishabunte/walletcore/internal/core/domain"
	"github.com/mishabunte/walletcore/internal/core/ports"
	log "github.com/sirupsen/logrus"
)

const accountRepository = "account"

// AccountManager serves the accounts of the current level. Every successful
// change is published on ports.TopicAccounts with the account id as payload.
type AccountManager struct {
	repo   ports.AccountRepository
	pubsub ports.PubSub

	level int
	lock  *sync.RWMutex
}

func NewAccountManager(
	repo ports.AccountRepository, pubsub ports.PubSub,
) (*AccountManager, error) {
	if repo == nil {
		return nil, fmt.Errorf("missing account repository")
	}
	if pubsub == nil {
		return nil, fmt.Errorf("missing pubsub service")
	}
	return &AccountManager{
		repo:   repo,
		pubsub: pubsub,
		lock:   &sync.RWMutex{},
	}, nil
}

// Accounts returns the accounts of the current level. Storage failures are
// logged and reported as an empty set.
func (m *AccountManager) Accounts(ctx context.Context) ([]domain.Account, error) {
	accounts, err := m.repo.GetByLevel(ctx, m.CurrentLevel())
	if err != nil {
		log.WithError(err).Warn("failed to read accounts")
		return []domain.Account{}, nil
	}
	return accounts, nil
}

func (m *AccountManager) Account(
	ctx context.Context, id string,
) (*domain.Account, error) {
	return m.repo.GetByID(ctx, id)
}

func (m *AccountManager) CurrentLevel() int {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.level
}

func (m *AccountManager) SetLevel(level int) {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.level = level
}

func (m *AccountManager) Save(ctx context.Context, account domain.Account) error {
	if account.Type == nil {
		return ErrInvalidAccountType
	}
	if strings.TrimSpace(account.Name) == "" {
		return domain.ErrInvalidAccountName
	}

	if err := m.repo.Save(ctx, account); err != nil {
		return persistenceError(accountRepository, err)
	}

	log.Debugf("saved account %s", account.ID)
	m.pubsub.Publish(ports.TopicAccounts, account.ID)
	return nil
}

func (m *AccountManager) Delete(ctx context.Context, id string) error {
	if err := m.repo.Delete(ctx, id); err != nil {
		return persistenceError(accountRepository, err)
	}

	log.Debugf("deleted account %s", id)
	m.pubsub.Publish(ports.TopicAccounts, id)
	return nil
}

func (m *AccountManager) Subscribe() ports.Subscription {
	return m.pubsub.Subscribe(ports.TopicAccounts)
}
