package dbbadger

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/dgraph-io/badger/v3/options"
	"github.com/mishabunte/walletcore/internal/core/ports"
	log "github.com/sirupsen/logrus"
	"github.com/timshannon/badgerhold/v4"
)

const (
	settingsDir = "settings"
	accountsDir = "accounts"
)

type repoManager struct {
	settingsDb *badgerhold.Store
	accountsDb *badgerhold.Store

	syncSourceRepo ports.EvmSyncSourceRepository
	settingsRepo   ports.BlockchainSettingsRepository
	accountRepo    ports.AccountRepository
}

// NewRepoManager opens (or creates if not exists) the badger stores under
// baseDbDir, one for chain settings and custom sync sources, and one for
// accounts. An empty baseDbDir keeps everything in memory.
func NewRepoManager(
	baseDbDir string, logger badger.Logger,
) (ports.RepoManager, error) {
	var settingsDbDir, accountsDbDir string
	if len(baseDbDir) > 0 {
		settingsDbDir = filepath.Join(baseDbDir, settingsDir)
		accountsDbDir = filepath.Join(baseDbDir, accountsDir)
	}

	settingsDb, err := createDb(settingsDbDir, logger)
	if err != nil {
		return nil, fmt.Errorf("opening settings db: %w", err)
	}

	accountsDb, err := createDb(accountsDbDir, logger)
	if err != nil {
		settingsDb.Close()
		return nil, fmt.Errorf("opening accounts db: %w", err)
	}

	return &repoManager{
		settingsDb:     settingsDb,
		accountsDb:     accountsDb,
		syncSourceRepo: NewEvmSyncSourceRepository(settingsDb),
		settingsRepo:   NewBlockchainSettingsRepository(settingsDb),
		accountRepo:    NewAccountRepository(accountsDb),
	}, nil
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

func (r *repoManager) Close() {
	if err := r.settingsDb.Close(); err != nil {
		log.WithError(err).Warn("failed to close settings db")
	}
	if err := r.accountsDb.Close(); err != nil {
		log.WithError(err).Warn("failed to close accounts db")
	}
}

func createDb(dbDir string, logger badger.Logger) (*badgerhold.Store, error) {
	isInMemory := len(dbDir) <= 0

	opts := badger.DefaultOptions(dbDir)
	opts.Logger = logger

	if isInMemory {
		opts.InMemory = true
	} else {
		opts.Compression = options.ZSTD
	}

	db, err := badgerhold.Open(badgerhold.Options{
		Encoder:          badgerhold.DefaultEncode,
		Decoder:          badgerhold.DefaultDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})
	if err != nil {
		return nil, err
	}

	if !isInMemory {
		ticker := time.NewTicker(30 * time.Minute)

		go func() {
			for {
				<-ticker.C
				if err := db.Badger().RunValueLogGC(0.5); err != nil &&
					err != badger.ErrNoRewrite {
					log.Error(err)
				}
			}
		}()
	}

	return db, nil
}
