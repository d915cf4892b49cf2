package inmemory

import (
	"context"
	"sync"

	"github.com/mishabunte/walletcore/internal/core/domain"
	"github.com/mishabunte/walletcore/internal/core/ports"
)

type blockchainSettingsRepository struct {
	syncSourceURLs map[domain.BlockchainType]string

	lock *sync.RWMutex
}

func NewBlockchainSettingsRepository() ports.BlockchainSettingsRepository {
	return &blockchainSettingsRepository{
		syncSourceURLs: make(map[domain.BlockchainType]string),
		lock:           &sync.RWMutex{},
	}
}

func (r *blockchainSettingsRepository) GetEvmSyncSourceURL(
	_ context.Context, blockchainType domain.BlockchainType,
) (string, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	return r.syncSourceURLs[blockchainType], nil
}

func (r *blockchainSettingsRepository) SaveEvmSyncSourceURL(
	_ context.Context, blockchainType domain.BlockchainType, url string,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.syncSourceURLs[blockchainType] = url
	return nil
}
