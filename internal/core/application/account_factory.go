package application

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mishabunte/walletcore/internal/core/domain"
	"github.com/mishabunte/walletcore/internal/core/ports"
	log "github.com/sirupsen/logrus"
)

// AccountFactory builds new accounts for the current level and suggests
// their names. Names are computed from the live account set on every call.
type AccountFactory struct {
	provider ports.AccountProvider
}

func NewAccountFactory(provider ports.AccountProvider) (*AccountFactory, error) {
	if provider == nil {
		return nil, fmt.Errorf("missing account provider")
	}
	return &AccountFactory{provider}, nil
}

func (f *AccountFactory) NextAccountName(ctx context.Context) string {
	count := f.count(ctx, func(a domain.Account) bool {
		return !a.WatchAccount() && !a.HardwareAccount()
	})
	return fmt.Sprintf("Wallet %d", count+1)
}

func (f *AccountFactory) NextWatchAccountName(ctx context.Context) string {
	count := f.count(ctx, domain.Account.WatchAccount)
	return fmt.Sprintf("Watch Wallet %d", count+1)
}

func (f *AccountFactory) NextHardwareAccountName(ctx context.Context) string {
	count := f.count(ctx, domain.Account.HardwareAccount)
	return fmt.Sprintf("Hardware Wallet %d", count+1)
}

// NextCexAccountName omits the number for the first account of the
// exchange, ie. "Binance", "Binance 2".
func (f *AccountFactory) NextCexAccountName(
	ctx context.Context, exchange domain.Exchange,
) string {
	count := f.count(ctx, func(a domain.Account) bool {
		e, ok := a.Exchange()
		return ok && e == exchange
	})
	if count == 0 {
		return exchange.Title()
	}
	return fmt.Sprintf("%s %d", exchange.Title(), count+1)
}

func (f *AccountFactory) Account(
	accountType domain.AccountType, origin domain.AccountOrigin,
	backedUp, fileBackedUp bool, name string,
) domain.Account {
	return domain.Account{
		ID:           uuid.New().String(),
		Level:        f.provider.CurrentLevel(),
		Name:         name,
		Type:         accountType,
		Origin:       origin,
		BackedUp:     backedUp,
		FileBackedUp: fileBackedUp,
	}
}

// WatchAccount returns a restored account already marked as backed up.
func (f *AccountFactory) WatchAccount(
	accountType domain.AccountType, name string,
) domain.Account {
	return f.Account(accountType, domain.AccountOriginRestored, true, false, name)
}

func (f *AccountFactory) HardwareAccount(
	accountType domain.AccountType, name string,
) domain.Account {
	return f.Account(accountType, domain.AccountOriginRestored, true, false, name)
}

func (f *AccountFactory) count(
	ctx context.Context, filter func(domain.Account) bool,
) int {
	accounts, err := f.provider.Accounts(ctx)
	if err != nil {
		log.WithError(err).Warn("failed to read accounts")
		return 0
	}

	count := 0
	for _, a := range accounts {
		if filter(a) {
			count++
		}
	}
	return count
}
