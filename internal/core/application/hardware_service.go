package application

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/mishabunte/walletcore/internal/core/domain"
)

// HardwareService keeps the name of the hardware account being created and
// stores it once its account type is resolved.
type HardwareService struct {
	factory  *AccountFactory
	accounts *AccountManager

	name *string
	lock *sync.RWMutex
}

func NewHardwareService(
	factory *AccountFactory, accounts *AccountManager,
) (*HardwareService, error) {
	if factory == nil {
		return nil, fmt.Errorf("missing account factory")
	}
	if accounts == nil {
		return nil, fmt.Errorf("missing account manager")
	}
	return &HardwareService{
		factory:  factory,
		accounts: accounts,
		lock:     &sync.RWMutex{},
	}, nil
}

func (s *HardwareService) DefaultAccountName(ctx context.Context) string {
	return s.factory.NextHardwareAccountName(ctx)
}

// SetName sets the account name, a blank name restores the default one.
func (s *HardwareService) SetName(name string) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if strings.TrimSpace(name) == "" {
		s.name = nil
		return
	}
	s.name = &name
}

// SyncDomain uses the name service domain of the address as account name
// unless the user already chose one.
func (s *HardwareService) SyncDomain(domainName string) {
	if domainName == "" || s.Name() != nil {
		return
	}
	s.SetName(domainName)
}

func (s *HardwareService) Name() *string {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.name
}

func (s *HardwareService) ResolvedName(ctx context.Context) string {
	if name := s.Name(); name != nil {
		return strings.TrimSpace(*name)
	}
	return strings.TrimSpace(s.DefaultAccountName(ctx))
}

// EnableHardware creates and saves the hardware account.
func (s *HardwareService) EnableHardware(
	ctx context.Context, accountType domain.AccountType, name string,
) (*domain.Account, error) {
	account := domain.Account{Type: accountType}
	if !account.HardwareAccount() {
		return nil, ErrInvalidAccountType
	}

	account = s.factory.HardwareAccount(accountType, name)
	if err := s.accounts.Save(ctx, account); err != nil {
		return nil, err
	}
	return &account, nil
}
