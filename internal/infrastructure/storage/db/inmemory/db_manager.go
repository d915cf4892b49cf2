package inmemory

import (
	"github.com/mishabunte/walletcore/internal/core/ports"
)

type repoManager struct {
	syncSourceRepo ports.EvmSyncSourceRepository
	settingsRepo   ports.BlockchainSettingsRepository
	accountRepo    ports.AccountRepository
}

func NewRepoManager() ports.RepoManager {
	return &repoManager{
		syncSourceRepo: NewEvmSyncSourceRepository(),
		settingsRepo:   NewBlockchainSettingsRepository(),
		accountRepo:    NewAccountRepository(),
	}
}

func (r *repoManager) EvmSyncSourceRepository() ports.EvmSyncSourceRepository {
	return r.syncSourceRepo
}

func (r *repoManager) BlockchainSettingsRepository() ports.BlockchainSettingsRepository {
	return r.settingsRepo
}

func (r *repoManager) AccountRepository() ports.AccountRepository {
	return r.accountRepo
}

func (r *repoManager) Close() {}
