package ports

import (
	"context"

	"github.com/mishabunte/walletcore/internal/core/domain"
)

// TestNetManager tells whether the wallet runs against test networks.
type TestNetManager interface {
	TestNetEnabled() bool
}

// AccountProvider gives read access to the accounts of the current level.
type AccountProvider interface {
	Accounts(ctx context.Context) ([]domain.Account, error)
	CurrentLevel() int
}
