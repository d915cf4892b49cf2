package application_test

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/mishabunte/walletcore/internal/core/application"
	"github.com/mishabunte/walletcore/internal/core/domain"
	"github.com/mishabunte/walletcore/internal/core/ports"
	"github.com/mishabunte/walletcore/internal/infrastructure/pubsub"
	"github.com/mishabunte/walletcore/internal/infrastructure/storage/db/inmemory"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	marketApiURL  = "https://api.example.com"
	ethMainnetURL = marketApiURL + "/v1/ethereum-rpc/mainnet"
)

var ctx = context.Background()

type testNetManager bool

func (m testNetManager) TestNetEnabled() bool {
	return bool(m)
}

func newCatalog(t *testing.T, testNet bool) *application.SyncSourceCatalog {
	t.Helper()
	catalog, err := application.NewSyncSourceCatalog(
		application.SyncSourceCatalogConfig{
			MarketApiURL: marketApiURL,
			ExplorerApiKeys: map[domain.BlockchainType][]string{
				domain.Ethereum: {"eth-key-1", "eth-key-2"},
			},
		},
		testNetManager(testNet),
	)
	require.NoError(t, err)
	return catalog
}

func newSyncSourceManager(
	t *testing.T, repoManager ports.RepoManager,
) (*application.EvmSyncSourceManager, ports.PubSub) {
	t.Helper()
	if repoManager == nil {
		repoManager = inmemory.NewRepoManager()
	}
	ps := pubsub.NewService(0)
	t.Cleanup(ps.Close)

	manager, err := application.NewEvmSyncSourceManager(
		newCatalog(t, false), repoManager, ps,
	)
	require.NoError(t, err)
	return manager, ps
}

func receive(t *testing.T, sub ports.Subscription) ports.Event {
	t.Helper()
	select {
	case event := <-sub.Events():
		return event
	case <-time.After(time.Second):
		t.Fatalf("no event received on topic %s", sub.Topic())
		return ports.Event{}
	}
}

func requireNoEvent(t *testing.T, sub ports.Subscription) {
	t.Helper()
	select {
	case event := <-sub.Events():
		t.Fatalf("unexpected event %v on topic %s", event.Payload, sub.Topic())
	case <-time.After(50 * time.Millisecond):
	}
}

func mustParseURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func strPtr(s string) *string {
	return &s
}

type mockSyncSourceRepository struct {
	mock.Mock
}

func (m *mockSyncSourceRepository) GetByBlockchainType(
	ctx context.Context, blockchainTypeUID string,
) ([]domain.EvmSyncSourceRecord, error) {
	args := m.Called(ctx, blockchainTypeUID)
	var res []domain.EvmSyncSourceRecord
	if a := args.Get(0); a != nil {
		res = a.([]domain.EvmSyncSourceRecord)
	}
	return res, args.Error(1)
}

func (m *mockSyncSourceRepository) GetAll(
	ctx context.Context,
) ([]domain.EvmSyncSourceRecord, error) {
	args := m.Called(ctx)
	var res []domain.EvmSyncSourceRecord
	if a := args.Get(0); a != nil {
		res = a.([]domain.EvmSyncSourceRecord)
	}
	return res, args.Error(1)
}

func (m *mockSyncSourceRepository) Save(
	ctx context.Context, record domain.EvmSyncSourceRecord,
) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *mockSyncSourceRepository) Delete(
	ctx context.Context, blockchainTypeUID, url string,
) error {
	args := m.Called(ctx, blockchainTypeUID, url)
	return args.Error(0)
}

type mockAccountRepository struct {
	mock.Mock
}

func (m *mockAccountRepository) GetAll(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	var res []domain.Account
	if a := args.Get(0); a != nil {
		res = a.([]domain.Account)
	}
	return res, args.Error(1)
}

func (m *mockAccountRepository) GetByLevel(
	ctx context.Context, level int,
) ([]domain.Account, error) {
	args := m.Called(ctx, level)
	var res []domain.Account
	if a := args.Get(0); a != nil {
		res = a.([]domain.Account)
	}
	return res, args.Error(1)
}

func (m *mockAccountRepository) GetByID(
	ctx context.Context, id string,
) (*domain.Account, error) {
	args := m.Called(ctx, id)
	var res *domain.Account
	if a := args.Get(0); a != nil {
		res = a.(*domain.Account)
	}
	return res, args.Error(1)
}

func (m *mockAccountRepository) Save(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *mockAccountRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// repoManager mixes in-memory repositories with mocked ones.
type repoManager struct {
	ports.RepoManager
	syncSourceRepo ports.EvmSyncSourceRepository
}

func (r repoManager) EvmSyncSourceRepository() ports.EvmSyncSourceRepository {
	return r.syncSourceRepo
}
