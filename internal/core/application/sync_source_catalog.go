package application

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/mishabunte/walletcore/internal/core/domain"
	"github.com/mishabunte/walletcore/internal/core/ports"
)

// SyncSourceCatalogConfig holds the deployment specific values of the
// default sync sources.
type SyncSourceCatalogConfig struct {
	// MarketApiURL is the base url of the proxied ethereum rpc.
	MarketApiURL string
	// ExplorerApiKeys are the block explorer api keys by chain.
	ExplorerApiKeys map[domain.BlockchainType][]string
}

func (c SyncSourceCatalogConfig) validate() error {
	u, err := url.Parse(c.MarketApiURL)
	if err != nil || u.Host == "" {
		return fmt.Errorf("invalid market api url %q", c.MarketApiURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("market api url must be http or https")
	}
	return nil
}

type explorer struct {
	name       string
	apiBaseURL string
	txBaseURL  string
}

var explorers = map[domain.BlockchainType]explorer{
	domain.Ethereum:          {"etherscan.io", "https://api.etherscan.io", "https://etherscan.io"},
	domain.BinanceSmartChain: {"bscscan.com", "https://api.bscscan.com", "https://bscscan.com"},
	domain.Polygon:           {"polygonscan.com", "https://api.polygonscan.com", "https://polygonscan.com"},
	domain.Avalanche:         {"snowtrace.io", "https://api.snowtrace.io", "https://snowtrace.io"},
	domain.Optimism:          {"optimistic.etherscan.io", "https://api-optimistic.etherscan.io", "https://optimistic.etherscan.io"},
	domain.ArbitrumOne:       {"arbiscan.io", "https://api.arbiscan.io", "https://arbiscan.io"},
	domain.Gnosis:            {"gnosisscan.io", "https://api.gnosisscan.io", "https://gnosisscan.io"},
	domain.Fantom:            {"ftmscan.com", "https://api.ftmscan.com", "https://ftmscan.com"},
	domain.Base:              {"basescan.org", "https://api.basescan.org", "https://basescan.org"},
	domain.ZkSync:            {"explorer.zksync.io", "https://block-explorer-api.mainnet.zksync.io", "https://explorer.zksync.io"},
}

type endpoint struct {
	name string
	url  string
}

var mainNetEndpoints = map[domain.BlockchainType][]endpoint{
	domain.BinanceSmartChain: {
		{"Binance", "https://bsc-dataseed.binance.org"},
		{"BlockRazor", "https://unstoppable.bsc.blockrazor.xyz"},
		{"48club", "https://unstoppable.rpc.48.club"},
		{"BSC RPC", "https://bscrpc.com"},
		{"Omnia", "https://endpoints.omniatech.io/v1/bsc/mainnet/public"},
	},
	domain.Polygon: {
		{"Polygon RPC", "https://polygon-rpc.com"},
		{"LlamaNodes", "https://polygon.llamarpc.com"},
	},
	domain.Avalanche: {
		{"Avax Network", "https://api.avax.network/ext/bc/C/rpc"},
		{"PublicNode", "https://avalanche-evm.publicnode.com"},
	},
	domain.Optimism: {
		{"Optimism", "https://mainnet.optimism.io"},
		{"Omnia", "https://endpoints.omniatech.io/v1/op/mainnet/public"},
	},
	domain.ArbitrumOne: {
		{"Arbitrum", "https://arb1.arbitrum.io/rpc"},
		{"Omnia", "https://endpoints.omniatech.io/v1/arbitrum/one/public"},
	},
	domain.Gnosis: {
		{"Gnosis Chain", "https://rpc.gnosischain.com"},
		{"Ankr", "https://rpc.ankr.com/gnosis"},
	},
	domain.Fantom: {
		{"Fantom Chain", "https://rpc.fantom.network"},
		{"Fantom Chain (Mirror)", "https://rpcapi.fantom.network/"},
		{"Ankr", "https://rpc.ankr.com/fantom"},
	},
	domain.Base: {
		{"Base", "https://mainnet.base.org"},
		{"dRPC", "https://base.drpc.org"},
		{"Public node", "https://base-rpc.publicnode.com"},
	},
	domain.ZkSync: {
		{"ZKsync", "https://mainnet.era.zksync.io"},
	},
}

// SyncSourceCatalog is the static table of default sync sources. The test
// network set is used for the chains that have one when the TestNetManager
// says so.
type SyncSourceCatalog struct {
	cfg     SyncSourceCatalogConfig
	testNet ports.TestNetManager
}

func NewSyncSourceCatalog(
	cfg SyncSourceCatalogConfig, testNet ports.TestNetManager,
) (*SyncSourceCatalog, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if testNet == nil {
		return nil, fmt.Errorf("missing test net manager")
	}
	cfg.MarketApiURL = strings.TrimSuffix(cfg.MarketApiURL, "/")
	return &SyncSourceCatalog{cfg, testNet}, nil
}

// DefaultTransactionSource returns the block explorer of the given chain, or
// ErrUnsupportedEvmBlockchain for chains that have none.
func (c *SyncSourceCatalog) DefaultTransactionSource(
	blockchainType domain.BlockchainType,
) (domain.TransactionSource, error) {
	e, ok := explorers[blockchainType]
	if !ok {
		return domain.TransactionSource{}, domain.ErrUnsupportedEvmBlockchain
	}
	return domain.TransactionSource{
		Name:       e.name,
		ApiBaseURL: e.apiBaseURL,
		TxBaseURL:  e.txBaseURL,
		ApiKeys:    c.apiKeys(blockchainType),
	}, nil
}

// DefaultSyncSources returns the ordered default sources of the chain, an
// empty list for non evm chains.
func (c *SyncSourceCatalog) DefaultSyncSources(
	blockchainType domain.BlockchainType,
) []domain.EvmSyncSource {
	if c.testNet.TestNetEnabled() {
		switch blockchainType {
		case domain.Ethereum:
			return []domain.EvmSyncSource{
				c.syncSource(
					"BlocksDecoded Sepolia", c.cfg.MarketApiURL+"/v1/ethereum-rpc/sepolia",
					domain.TransactionSource{
						Name:       "sepolia.etherscan.io",
						ApiBaseURL: "https://api-sepolia.etherscan.io",
						TxBaseURL:  "https://sepiloa.etherscan.io",
						ApiKeys:    c.apiKeys(domain.Ethereum),
					},
				),
			}
		case domain.BinanceSmartChain:
			return []domain.EvmSyncSource{
				c.syncSource(
					"Binance TestNet", "https://data-seed-prebsc-1-s1.binance.org:8545",
					domain.TransactionSource{
						Name:       "testnet.bscscan.com",
						ApiBaseURL: "https://api-testnet.bscscan.com",
						TxBaseURL:  "https://testnet.bscscan.com",
						ApiKeys:    c.apiKeys(domain.BinanceSmartChain),
					},
				),
			}
		}
	}

	txSource, err := c.DefaultTransactionSource(blockchainType)
	if err != nil {
		return []domain.EvmSyncSource{}
	}

	endpoints := mainNetEndpoints[blockchainType]
	if blockchainType == domain.Ethereum {
		endpoints = []endpoint{
			{"BlocksDecoded", c.cfg.MarketApiURL + "/v1/ethereum-rpc/mainnet"},
			{"LlamaNodes", "https://eth.llamarpc.com"},
		}
	}

	sources := make([]domain.EvmSyncSource, 0, len(endpoints))
	for _, e := range endpoints {
		sources = append(sources, c.syncSource(e.name, e.url, txSource))
	}
	return sources
}

func (c *SyncSourceCatalog) syncSource(
	name, rawURL string, txSource domain.TransactionSource,
) domain.EvmSyncSource {
	// Catalog urls are constants or built from the validated market api url.
	u, _ := url.Parse(rawURL)
	return domain.EvmSyncSource{
		Name:              name,
		RpcSource:         domain.NewHttpRpcSource(nil, u),
		TransactionSource: txSource,
	}
}

func (c *SyncSourceCatalog) apiKeys(blockchainType domain.BlockchainType) []string {
	keys := c.cfg.ExplorerApiKeys[blockchainType]
	return append([]string{}, keys...)
}
