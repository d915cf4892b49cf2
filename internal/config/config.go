package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/mishabunte/walletcore/internal/core/application"
	"github.com/mishabunte/walletcore/internal/core/domain"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	// DatadirKey is the local data directory to store the wallet state
	DatadirKey = "DATADIR"
	// LogLevelKey are the different logging levels. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// DBTypeKey is used to switch database type between those supported
	DBTypeKey = "DB_TYPE"
	// TestNetKey makes the evm sync source catalog use test networks where
	// available
	TestNetKey = "TESTNET"
	// MarketApiURLKey is the base url of the market api proxying ethereum rpc
	MarketApiURLKey = "MARKET_API_URL"
	// PubSubBufferSizeKey is the number of events buffered for every
	// subscriber before dropping
	PubSubBufferSizeKey = "PUBSUB_BUFFER_SIZE"

	// Block explorer api keys, comma separated
	EtherscanKeysKey         = "ETHERSCAN_KEYS"
	BscscanKeysKey           = "BSCSCAN_KEYS"
	PolygonscanKeysKey       = "POLYGONSCAN_KEYS"
	SnowtraceKeysKey         = "SNOWTRACE_KEYS"
	OptimismEtherscanKeysKey = "OPTIMISM_ETHERSCAN_KEYS"
	ArbiscanKeysKey          = "ARBISCAN_KEYS"
	GnosisscanKeysKey        = "GNOSISSCAN_KEYS"
	FtmscanKeysKey           = "FTMSCAN_KEYS"
	BasescanKeysKey          = "BASESCAN_KEYS"
	EraZkSyncKeysKey         = "ERA_ZKSYNC_KEYS"

	DBBadger   = "badger"
	DBInMemory = "inmemory"

	DbLocation = "db"

	defaultMarketApiURL = "https://api.blocksdecoded.com"
)

var (
	vip            *viper.Viper
	defaultDatadir = btcutil.AppDataDir("walletcore", false)

	explorerKeys = map[domain.BlockchainType]string{
		domain.Ethereum:          EtherscanKeysKey,
		domain.BinanceSmartChain: BscscanKeysKey,
		domain.Polygon:           PolygonscanKeysKey,
		domain.Avalanche:         SnowtraceKeysKey,
		domain.Optimism:          OptimismEtherscanKeysKey,
		domain.ArbitrumOne:       ArbiscanKeysKey,
		domain.Gnosis:            GnosisscanKeysKey,
		domain.Fantom:            FtmscanKeysKey,
		domain.Base:              BasescanKeysKey,
		domain.ZkSync:            EraZkSyncKeysKey,
	}
)

func InitConfig() error {
	vip = viper.New()
	vip.SetEnvPrefix("WALLETCORE")
	vip.AutomaticEnv()

	vip.SetDefault(DatadirKey, defaultDatadir)
	vip.SetDefault(LogLevelKey, int(log.InfoLevel))
	vip.SetDefault(DBTypeKey, DBBadger)
	vip.SetDefault(TestNetKey, false)
	vip.SetDefault(MarketApiURLKey, defaultMarketApiURL)
	vip.SetDefault(PubSubBufferSizeKey, 32)

	if err := validate(); err != nil {
		return fmt.Errorf("error while validating config: %s", err)
	}

	if err := initDatadir(); err != nil {
		return fmt.Errorf("error while creating datadir: %s", err)
	}

	return nil
}

func GetString(key string) string {
	return vip.GetString(key)
}

func GetInt(key string) int {
	return vip.GetInt(key)
}

func GetStringSlice(key string) []string {
	return vip.GetStringSlice(key)
}

func GetBool(key string) bool {
	return vip.GetBool(key)
}

func GetDatadir() string {
	return GetString(DatadirKey)
}

// GetDbDir returns the directory of the badger stores, empty when the
// in-memory database is configured.
func GetDbDir() string {
	if GetString(DBTypeKey) == DBInMemory {
		return ""
	}
	return filepath.Join(GetDatadir(), DbLocation)
}

func GetLogLevel() log.Level {
	return log.Level(GetInt(LogLevelKey))
}

// GetSyncSourceCatalogConfig returns the deployment values of the default
// evm sync sources.
func GetSyncSourceCatalogConfig() application.SyncSourceCatalogConfig {
	keys := make(map[domain.BlockchainType][]string)
	for blockchainType, key := range explorerKeys {
		if v := splitKeys(GetStringSlice(key)); len(v) > 0 {
			keys[blockchainType] = v
		}
	}
	return application.SyncSourceCatalogConfig{
		MarketApiURL:    GetString(MarketApiURLKey),
		ExplorerApiKeys: keys,
	}
}

// TestNetManager reads the test network flag from the configuration.
type TestNetManager struct{}

func (TestNetManager) TestNetEnabled() bool {
	return GetBool(TestNetKey)
}

func validate() error {
	datadir := GetString(DatadirKey)
	if len(datadir) <= 0 {
		return fmt.Errorf("missing datadir")
	}

	dbType := GetString(DBTypeKey)
	if dbType != DBBadger && dbType != DBInMemory {
		return fmt.Errorf(
			"%s must be either %s or %s", DBTypeKey, DBBadger, DBInMemory,
		)
	}

	level := GetInt(LogLevelKey)
	if level < int(log.PanicLevel) || level > int(log.TraceLevel) {
		return fmt.Errorf("%s must be in range [%d, %d]",
			LogLevelKey, log.PanicLevel, log.TraceLevel)
	}

	u, err := url.Parse(GetString(MarketApiURLKey))
	if err != nil || u.Host == "" {
		return fmt.Errorf("invalid %s", MarketApiURLKey)
	}

	if GetInt(PubSubBufferSizeKey) <= 0 {
		return fmt.Errorf("%s must be greater than zero", PubSubBufferSizeKey)
	}

	return nil
}

func initDatadir() error {
	if GetString(DBTypeKey) == DBInMemory {
		return nil
	}
	return makeDirectoryIfNotExists(filepath.Join(GetDatadir(), DbLocation))
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0755)
	}
	return nil
}

// splitKeys accepts both space and comma separated lists, since viper only
// splits env values on spaces.
func splitKeys(values []string) []string {
	keys := make([]string, 0, len(values))
	for _, v := range values {
		for _, k := range strings.Split(v, ",") {
			if k = strings.TrimSpace(k); k != "" {
				keys = append(keys, k)
			}
		}
	}
	return keys
}
