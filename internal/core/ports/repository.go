package ports

import (
	"context"

	"github.com/mishabunte/walletcore/internal/core/domain"
)

// EvmSyncSourceRepository persists the rpc endpoints added by the user.
// Records are identified by blockchain type uid and url, saving an existing
// record overwrites it.
type EvmSyncSourceRepository interface {
	GetByBlockchainType(
		ctx context.Context, blockchainTypeUID string,
	) ([]domain.EvmSyncSourceRecord, error)
	GetAll(ctx context.Context) ([]domain.EvmSyncSourceRecord, error)
	Save(ctx context.Context, record domain.EvmSyncSourceRecord) error
	// Delete is a no-op if the record does not exist.
	Delete(ctx context.Context, blockchainTypeUID, url string) error
}

// BlockchainSettingsRepository persists per-chain user settings.
type BlockchainSettingsRepository interface {
	// GetEvmSyncSourceURL returns the url of the selected sync source, or an
	// empty string if none was ever selected.
	GetEvmSyncSourceURL(
		ctx context.Context, blockchainType domain.BlockchainType,
	) (string, error)
	SaveEvmSyncSourceURL(
		ctx context.Context, blockchainType domain.BlockchainType, url string,
	) error
}

// AccountRepository persists wallet accounts.
type AccountRepository interface {
	GetAll(ctx context.Context) ([]domain.Account, error)
	GetByLevel(ctx context.Context, level int) ([]domain.Account, error)
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	Save(ctx context.Context, account domain.Account) error
	Delete(ctx context.Context, id string) error
}

// RepoManager holds all the repositories of the storage backend.
type RepoManager interface {
	EvmSyncSourceRepository() EvmSyncSourceRepository
	BlockchainSettingsRepository() BlockchainSettingsRepository
	AccountRepository() AccountRepository
	Close()
}
