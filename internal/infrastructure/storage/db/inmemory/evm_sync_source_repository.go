package inmemory

import (
	"context"
	"sync"

	"github.com/mishabunte/walletcore/internal/core/domain"
	"github.com/mishabunte/walletcore/internal/core/ports"
)

type evmSyncSourceRepository struct {
	records []domain.EvmSyncSourceRecord

	lock *sync.RWMutex
}

// NewEvmSyncSourceRepository returns an empty repository keeping records in
// insertion order.
func NewEvmSyncSourceRepository() ports.EvmSyncSourceRepository {
	return &evmSyncSourceRepository{
		records: make([]domain.EvmSyncSourceRecord, 0),
		lock:    &sync.RWMutex{},
	}
}

func (r *evmSyncSourceRepository) GetByBlockchainType(
	_ context.Context, blockchainTypeUID string,
) ([]domain.EvmSyncSourceRecord, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	records := make([]domain.EvmSyncSourceRecord, 0)
	for _, record := range r.records {
		if record.BlockchainTypeUID == blockchainTypeUID {
			records = append(records, copyRecord(record))
		}
	}
	return records, nil
}

func (r *evmSyncSourceRepository) GetAll(
	_ context.Context,
) ([]domain.EvmSyncSourceRecord, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	records := make([]domain.EvmSyncSourceRecord, 0, len(r.records))
	for _, record := range r.records {
		records = append(records, copyRecord(record))
	}
	return records, nil
}

func (r *evmSyncSourceRepository) Save(
	_ context.Context, record domain.EvmSyncSourceRecord,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if i := r.indexOf(record.BlockchainTypeUID, record.URL); i >= 0 {
		r.records[i] = copyRecord(record)
		return nil
	}
	r.records = append(r.records, copyRecord(record))
	return nil
}

func (r *evmSyncSourceRepository) Delete(
	_ context.Context, blockchainTypeUID, url string,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if i := r.indexOf(blockchainTypeUID, url); i >= 0 {
		r.records = append(r.records[:i], r.records[i+1:]...)
	}
	return nil
}

func (r *evmSyncSourceRepository) indexOf(blockchainTypeUID, url string) int {
	for i, record := range r.records {
		if record.BlockchainTypeUID == blockchainTypeUID && record.URL == url {
			return i
		}
	}
	return -1
}

func copyRecord(record domain.EvmSyncSourceRecord) domain.EvmSyncSourceRecord {
	if record.Auth != nil {
		auth := *record.Auth
		record.Auth = &auth
	}
	return record
}
