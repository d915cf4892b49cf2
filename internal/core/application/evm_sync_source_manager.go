package application

import (
	"context"
	"fmt"
	"net/url"
	"unicode/utf8"

	"github.com/mishabunte/walletcore/internal/core/domain"
	"github.com/mishabunte/walletcore/internal/core/ports"
	"github.com/mishabunte/walletcore/pkg/stats"
	"github.com/mishabunte/walletcore/pkg/wallet"
	log "github.com/sirupsen/logrus"
)

const (
	syncSourceRepository = "evm_sync_source"
	settingsRepository   = "blockchain_settings"
)

// EvmSyncSourceManager keeps track of the rpc endpoints available for every
// evm chain and of the one currently selected.
//
// Selection changes are published on ports.TopicSyncSource and catalog
// changes on ports.TopicSyncSourcesUpdated, both with the affected
// domain.BlockchainType as payload. Callers are expected to serialize
// mutations of the same chain.
type EvmSyncSourceManager struct {
	catalog        *SyncSourceCatalog
	syncSourceRepo ports.EvmSyncSourceRepository
	settingsRepo   ports.BlockchainSettingsRepository
	pubsub         ports.PubSub
}

func NewEvmSyncSourceManager(
	catalog *SyncSourceCatalog, repoManager ports.RepoManager,
	pubsub ports.PubSub,
) (*EvmSyncSourceManager, error) {
	if catalog == nil {
		return nil, fmt.Errorf("missing sync source catalog")
	}
	if repoManager == nil {
		return nil, fmt.Errorf("missing repo manager")
	}
	if pubsub == nil {
		return nil, fmt.Errorf("missing pubsub service")
	}

	return &EvmSyncSourceManager{
		catalog:        catalog,
		syncSourceRepo: repoManager.EvmSyncSourceRepository(),
		settingsRepo:   repoManager.BlockchainSettingsRepository(),
		pubsub:         pubsub,
	}, nil
}

func (m *EvmSyncSourceManager) SubscribeSyncSource() ports.Subscription {
	return m.pubsub.Subscribe(ports.TopicSyncSource)
}

func (m *EvmSyncSourceManager) SubscribeSyncSourcesUpdated() ports.Subscription {
	return m.pubsub.Subscribe(ports.TopicSyncSourcesUpdated)
}

func (m *EvmSyncSourceManager) Unsubscribe(id string) {
	m.pubsub.Unsubscribe(id)
}

func (m *EvmSyncSourceManager) DefaultSyncSources(
	blockchainType domain.BlockchainType,
) []domain.EvmSyncSource {
	return m.catalog.DefaultSyncSources(blockchainType)
}

// CustomSyncSources returns the sources added by the user for the given
// chain, or for every chain if blockchainType is nil. Records with an
// unparsable url or an unknown scheme are skipped, and storage failures
// result in an empty list.
func (m *EvmSyncSourceManager) CustomSyncSources(
	ctx context.Context, blockchainType *domain.BlockchainType,
) []domain.EvmSyncSource {
	var (
		records []domain.EvmSyncSourceRecord
		err     error
	)
	if blockchainType != nil {
		records, err = m.syncSourceRepo.GetByBlockchainType(ctx, blockchainType.UID())
	} else {
		records, err = m.syncSourceRepo.GetAll(ctx)
	}
	if err != nil {
		log.WithError(err).Warn("failed to read custom sync sources")
		return []domain.EvmSyncSource{}
	}

	sources := make([]domain.EvmSyncSource, 0, len(records))
	for _, record := range records {
		source, err := m.customSyncSource(record)
		if err != nil {
			log.WithError(err).Debugf(
				"skipping custom sync source %s for %s",
				record.URL, record.BlockchainTypeUID,
			)
			continue
		}
		sources = append(sources, source)
	}
	return sources
}

func (m *EvmSyncSourceManager) customSyncSource(
	record domain.EvmSyncSourceRecord,
) (domain.EvmSyncSource, error) {
	blockchainType := domain.BlockchainTypeFromUID(record.BlockchainTypeUID)
	txSource, err := m.catalog.DefaultTransactionSource(blockchainType)
	if err != nil {
		return domain.EvmSyncSource{}, err
	}

	u, kind, err := domain.ParseSyncSourceURL(record.URL)
	if err != nil {
		return domain.EvmSyncSource{}, err
	}

	rpcSource := domain.NewHttpRpcSource(record.Auth, u)
	if kind == domain.RpcSourceWebSocket {
		rpcSource = domain.NewWebSocketRpcSource(u, record.Auth)
	}

	name := u.Host
	if name == "" {
		name = u.String()
	}

	return domain.EvmSyncSource{
		Name:              name,
		RpcSource:         rpcSource,
		TransactionSource: txSource,
	}, nil
}

// AllSyncSources returns the default sources followed by the custom ones.
func (m *EvmSyncSourceManager) AllSyncSources(
	ctx context.Context, blockchainType domain.BlockchainType,
) []domain.EvmSyncSource {
	defaults := m.DefaultSyncSources(blockchainType)
	customs := m.CustomSyncSources(ctx, &blockchainType)
	return append(defaults, customs...)
}

// SyncSource returns the selected source of the chain, falling back to the
// first one when nothing was selected or the selected url is gone.
func (m *EvmSyncSourceManager) SyncSource(
	ctx context.Context, blockchainType domain.BlockchainType,
) (domain.EvmSyncSource, error) {
	sources := m.AllSyncSources(ctx, blockchainType)
	if len(sources) <= 0 {
		return domain.EvmSyncSource{}, domain.ErrUnsupportedEvmBlockchain
	}

	if source, ok := findByURL(sources, m.selectedURL(ctx, blockchainType)); ok {
		return source, nil
	}
	return sources[0], nil
}

// HttpSyncSource is like SyncSource but only considers http sources. The
// boolean is false if the chain has none.
func (m *EvmSyncSourceManager) HttpSyncSource(
	ctx context.Context, blockchainType domain.BlockchainType,
) (domain.EvmSyncSource, bool) {
	sources := m.AllSyncSources(ctx, blockchainType)

	source, ok := findByURL(sources, m.selectedURL(ctx, blockchainType))
	if ok && source.IsHttp() {
		return source, true
	}

	for _, s := range sources {
		if s.IsHttp() {
			return s, true
		}
	}
	return domain.EvmSyncSource{}, false
}

func (m *EvmSyncSourceManager) SaveCurrent(
	ctx context.Context, syncSource domain.EvmSyncSource,
	blockchainType domain.BlockchainType,
) error {
	if !blockchainType.IsEvm() {
		return domain.ErrUnsupportedEvmBlockchain
	}

	url := syncSource.RpcSource.URLString()
	if err := m.settingsRepo.SaveEvmSyncSourceURL(
		ctx, blockchainType, url,
	); err != nil {
		return persistenceError(settingsRepository, err)
	}

	log.Debugf("selected sync source %s for %s", url, blockchainType)
	stats.SyncSourceChanges.WithLabelValues(blockchainType.UID()).Inc()
	m.pubsub.Publish(ports.TopicSyncSource, blockchainType)
	return nil
}

// SaveSyncSource adds (or overwrites) a custom source and selects it.
func (m *EvmSyncSourceManager) SaveSyncSource(
	ctx context.Context, blockchainType domain.BlockchainType,
	u *url.URL, auth *string,
) error {
	if !blockchainType.IsEvm() {
		return domain.ErrUnsupportedEvmBlockchain
	}
	if u == nil {
		return domain.ErrInvalidSyncSourceURL
	}
	if _, _, err := domain.ParseSyncSourceURL(u.String()); err != nil {
		return err
	}

	record := domain.EvmSyncSourceRecord{
		BlockchainTypeUID: blockchainType.UID(),
		URL:               u.String(),
		Auth:              auth,
	}
	if err := m.syncSourceRepo.Save(ctx, record); err != nil {
		return persistenceError(syncSourceRepository, err)
	}

	customs := m.CustomSyncSources(ctx, &blockchainType)
	if source, ok := findByURL(customs, record.URL); ok {
		if err := m.SaveCurrent(ctx, source, blockchainType); err != nil {
			return err
		}
	}

	m.pubsub.Publish(ports.TopicSyncSourcesUpdated, blockchainType)
	return nil
}

// Delete removes a custom source. If it was the selected one, a selection
// change is published so that subscribers re-resolve the current source.
func (m *EvmSyncSourceManager) Delete(
	ctx context.Context, syncSource domain.EvmSyncSource,
	blockchainType domain.BlockchainType,
) error {
	current, err := m.SyncSource(ctx, blockchainType)
	if err != nil {
		return err
	}
	isCurrent := current.Equal(syncSource)

	if err := m.syncSourceRepo.Delete(
		ctx, blockchainType.UID(), syncSource.RpcSource.URLString(),
	); err != nil {
		return persistenceError(syncSourceRepository, err)
	}

	if isCurrent {
		m.pubsub.Publish(ports.TopicSyncSource, blockchainType)
	}
	m.pubsub.Publish(ports.TopicSyncSourcesUpdated, blockchainType)
	return nil
}

// CustomSources returns the raw custom records of every chain.
func (m *EvmSyncSourceManager) CustomSources(
	ctx context.Context,
) []domain.EvmSyncSourceRecord {
	records, err := m.syncSourceRepo.GetAll(ctx)
	if err != nil {
		log.WithError(err).Warn("failed to read custom sync sources")
		return []domain.EvmSyncSourceRecord{}
	}
	return records
}

// SelectedSources returns the current source url of every evm chain.
func (m *EvmSyncSourceManager) SelectedSources(
	ctx context.Context,
) []domain.SelectedSource {
	selected := make([]domain.SelectedSource, 0, len(domain.EvmBlockchainTypes))
	for _, blockchainType := range domain.EvmBlockchainTypes {
		source, err := m.SyncSource(ctx, blockchainType)
		if err != nil {
			continue
		}
		selected = append(selected, domain.SelectedSource{
			BlockchainTypeUID: blockchainType.UID(),
			URL:               source.RpcSource.URLString(),
		})
	}
	return selected
}

// Encrypt prepares custom records for a backup. Empty auth strings are
// treated as missing.
func (m *EvmSyncSourceManager) Encrypt(
	sources []domain.EvmSyncSourceRecord, passphrase string,
) ([]domain.CustomSyncSource, error) {
	customs := make([]domain.CustomSyncSource, 0, len(sources))
	for _, source := range sources {
		custom := domain.CustomSyncSource{
			BlockchainTypeUID: source.BlockchainTypeUID,
			URL:               source.URL,
		}
		if source.Auth != nil && len(*source.Auth) > 0 {
			crypto, err := wallet.Encrypt(wallet.EncryptOpts{
				PlainText:  []byte(*source.Auth),
				Passphrase: passphrase,
			})
			if err != nil {
				return nil, fmt.Errorf(
					"failed to encrypt auth of %s: %w", source.URL, err,
				)
			}
			custom.Auth = crypto
		}
		customs = append(customs, custom)
	}
	return customs, nil
}

// Decrypt reverses Encrypt. It fails as a whole if any record cannot be
// decrypted.
func (m *EvmSyncSourceManager) Decrypt(
	sources []domain.CustomSyncSource, passphrase string,
) ([]domain.EvmSyncSourceRecord, error) {
	records := make([]domain.EvmSyncSourceRecord, 0, len(sources))
	for _, source := range sources {
		record := domain.EvmSyncSourceRecord{
			BlockchainTypeUID: source.BlockchainTypeUID,
			URL:               source.URL,
		}
		if source.Auth != nil {
			data, err := wallet.Decrypt(wallet.DecryptOpts{
				Crypto:     *source.Auth,
				Passphrase: passphrase,
			})
			if err != nil {
				return nil, fmt.Errorf(
					"failed to decrypt auth of %s: %w", source.URL, err,
				)
			}
			if utf8.Valid(data) {
				auth := string(data)
				record.Auth = &auth
			}
		}
		records = append(records, record)
	}
	return records, nil
}

// Restore stores the custom records, then re-applies every selection whose
// url is part of the restored catalog. Catalog changes are published once
// per chain of the custom records.
func (m *EvmSyncSourceManager) Restore(
	ctx context.Context, selected []domain.SelectedSource,
	custom []domain.EvmSyncSourceRecord,
) error {
	updated := make([]domain.BlockchainType, 0)
	seen := make(map[domain.BlockchainType]struct{})

	for _, record := range custom {
		blockchainType := domain.BlockchainTypeFromUID(record.BlockchainTypeUID)
		if !blockchainType.IsEvm() {
			log.Warnf(
				"skipping custom sync source %s for unsupported chain %s",
				record.URL, record.BlockchainTypeUID,
			)
			continue
		}
		if err := m.syncSourceRepo.Save(ctx, record); err != nil {
			return persistenceError(syncSourceRepository, err)
		}
		if _, ok := seen[blockchainType]; !ok {
			seen[blockchainType] = struct{}{}
			updated = append(updated, blockchainType)
		}
	}

	for _, s := range selected {
		blockchainType := domain.BlockchainTypeFromUID(s.BlockchainTypeUID)
		source, ok := findByURL(m.AllSyncSources(ctx, blockchainType), s.URL)
		if !ok {
			continue
		}
		if err := m.SaveCurrent(ctx, source, blockchainType); err != nil {
			return err
		}
	}

	for _, blockchainType := range updated {
		m.pubsub.Publish(ports.TopicSyncSourcesUpdated, blockchainType)
	}
	return nil
}

// Backup returns the selected and custom sources, custom auth being
// encrypted with the given passphrase.
func (m *EvmSyncSourceManager) Backup(
	ctx context.Context, passphrase string,
) (*domain.SyncSourceBackup, error) {
	custom, err := m.Encrypt(m.CustomSources(ctx), passphrase)
	if err != nil {
		return nil, err
	}
	return &domain.SyncSourceBackup{
		Selected: m.SelectedSources(ctx),
		Custom:   custom,
	}, nil
}

func (m *EvmSyncSourceManager) RestoreBackup(
	ctx context.Context, backup domain.SyncSourceBackup, passphrase string,
) error {
	custom, err := m.Decrypt(backup.Custom, passphrase)
	if err != nil {
		return err
	}
	return m.Restore(ctx, backup.Selected, custom)
}

func (m *EvmSyncSourceManager) selectedURL(
	ctx context.Context, blockchainType domain.BlockchainType,
) string {
	url, err := m.settingsRepo.GetEvmSyncSourceURL(ctx, blockchainType)
	if err != nil {
		log.WithError(err).Warnf("failed to read selected sync source of %s", blockchainType)
		return ""
	}
	return url
}

func findByURL(
	sources []domain.EvmSyncSource, url string,
) (domain.EvmSyncSource, bool) {
	if url == "" {
		return domain.EvmSyncSource{}, false
	}
	for _, s := range sources {
		if s.RpcSource.URLString() == url {
			return s, true
		}
	}
	return domain.EvmSyncSource{}, false
}
