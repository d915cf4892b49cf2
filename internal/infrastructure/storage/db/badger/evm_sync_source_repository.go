package dbbadger

import (
	"context"
	"fmt"
	"time"

	"github.com/mishabunte/walletcore/internal/core/domain"
	"github.com/mishabunte/walletcore/internal/core/ports"
	"github.com/timshannon/badgerhold/v4"
)

type evmSyncSource struct {
	BlockchainTypeUID string
	URL               string
	Auth              *string
	AddedAt           int64
}

type evmSyncSourceRepository struct {
	store *badgerhold.Store
}

func NewEvmSyncSourceRepository(
	store *badgerhold.Store,
) ports.EvmSyncSourceRepository {
	return &evmSyncSourceRepository{store}
}

func (r *evmSyncSourceRepository) GetByBlockchainType(
	ctx context.Context, blockchainTypeUID string,
) ([]domain.EvmSyncSourceRecord, error) {
	query := badgerhold.Where("BlockchainTypeUID").Eq(blockchainTypeUID).
		SortBy("AddedAt")
	return r.findSyncSources(ctx, query)
}

func (r *evmSyncSourceRepository) GetAll(
	ctx context.Context,
) ([]domain.EvmSyncSourceRecord, error) {
	query := (&badgerhold.Query{}).SortBy("AddedAt")
	return r.findSyncSources(ctx, query)
}

func (r *evmSyncSourceRepository) Save(
	ctx context.Context, record domain.EvmSyncSourceRecord,
) error {
	key := syncSourceKey(record.BlockchainTypeUID, record.URL)

	// Overwriting a record keeps its position in the list.
	addedAt := time.Now().UnixNano()
	var prev evmSyncSource
	if err := r.store.Get(key, &prev); err == nil {
		addedAt = prev.AddedAt
	} else if err != badgerhold.ErrNotFound {
		return err
	}

	return r.store.Upsert(key, evmSyncSource{
		BlockchainTypeUID: record.BlockchainTypeUID,
		URL:               record.URL,
		Auth:              record.Auth,
		AddedAt:           addedAt,
	})
}

func (r *evmSyncSourceRepository) Delete(
	ctx context.Context, blockchainTypeUID, url string,
) error {
	key := syncSourceKey(blockchainTypeUID, url)
	if err := r.store.Delete(key, evmSyncSource{}); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil
		}
		return err
	}
	return nil
}

func (r *evmSyncSourceRepository) findSyncSources(
	_ context.Context, query *badgerhold.Query,
) ([]domain.EvmSyncSourceRecord, error) {
	var syncSources []evmSyncSource
	if err := r.store.Find(&syncSources, query); err != nil {
		return nil, err
	}

	records := make([]domain.EvmSyncSourceRecord, 0, len(syncSources))
	for _, s := range syncSources {
		records = append(records, domain.EvmSyncSourceRecord{
			BlockchainTypeUID: s.BlockchainTypeUID,
			URL:               s.URL,
			Auth:              s.Auth,
		})
	}
	return records, nil
}

func syncSourceKey(blockchainTypeUID, url string) string {
	return fmt.Sprintf("%s|%s", blockchainTypeUID, url)
}
