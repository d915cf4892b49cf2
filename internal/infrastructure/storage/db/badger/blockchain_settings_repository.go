package dbbadger

import (
	"context"
	"fmt"

	"github.com/mishabunte/walletcore/internal/core/domain"
	"github.com/mishabunte/walletcore/internal/core/ports"
	"github.com/timshannon/badgerhold/v4"
)

const evmSyncSourceSettingKey = "evm_sync_source_url"

type blockchainSetting struct {
	BlockchainTypeUID string
	Key               string
	Value             string
}

type blockchainSettingsRepository struct {
	store *badgerhold.Store
}

func NewBlockchainSettingsRepository(
	store *badgerhold.Store,
) ports.BlockchainSettingsRepository {
	return &blockchainSettingsRepository{store}
}

func (r *blockchainSettingsRepository) GetEvmSyncSourceURL(
	ctx context.Context, blockchainType domain.BlockchainType,
) (string, error) {
	var setting blockchainSetting
	key := settingKey(blockchainType, evmSyncSourceSettingKey)
	if err := r.store.Get(key, &setting); err != nil {
		if err == badgerhold.ErrNotFound {
			return "", nil
		}
		return "", err
	}
	return setting.Value, nil
}

func (r *blockchainSettingsRepository) SaveEvmSyncSourceURL(
	ctx context.Context, blockchainType domain.BlockchainType, url string,
) error {
	key := settingKey(blockchainType, evmSyncSourceSettingKey)
	return r.store.Upsert(key, blockchainSetting{
		BlockchainTypeUID: blockchainType.UID(),
		Key:               evmSyncSourceSettingKey,
		Value:             url,
	})
}

func settingKey(blockchainType domain.BlockchainType, key string) string {
	return fmt.Sprintf("%s|%s", blockchainType.UID(), key)
}
