package domain

import (
	"net/url"

	"github.com/mishabunte/walletcore/pkg/wallet"
)

type RpcSourceKind string

const (
	RpcSourceHttp      RpcSourceKind = "http"
	RpcSourceWebSocket RpcSourceKind = "websocket"
)

// RpcSource is the json-rpc endpoint of a sync source. Http sources may list
// several mirrors, websocket sources always have exactly one url.
type RpcSource struct {
	Kind RpcSourceKind
	URLs []*url.URL
	Auth *string
}

func NewHttpRpcSource(auth *string, urls ...*url.URL) RpcSource {
	return RpcSource{Kind: RpcSourceHttp, URLs: urls, Auth: auth}
}

func NewWebSocketRpcSource(u *url.URL, auth *string) RpcSource {
	return RpcSource{Kind: RpcSourceWebSocket, URLs: []*url.URL{u}, Auth: auth}
}

// URL returns the primary endpoint, the one identifying the source.
func (s RpcSource) URL() *url.URL {
	if len(s.URLs) <= 0 {
		return nil
	}
	return s.URLs[0]
}

// URLString returns the string form of the primary endpoint as stored in
// settings.
func (s RpcSource) URLString() string {
	if u := s.URL(); u != nil {
		return u.String()
	}
	return ""
}

// TransactionSource is the block explorer api used to fetch the transaction
// history of an evm chain.
type TransactionSource struct {
	Name       string
	ApiBaseURL string
	TxBaseURL  string
	ApiKeys    []string
}

// TxURL returns the explorer page of the given transaction.
func (s TransactionSource) TxURL(hash string) string {
	return s.TxBaseURL + "/tx/" + hash
}

type EvmSyncSource struct {
	Name              string
	RpcSource         RpcSource
	TransactionSource TransactionSource
}

func (s EvmSyncSource) IsHttp() bool {
	return s.RpcSource.Kind == RpcSourceHttp
}

// Equal tells whether both sources point to the same rpc url.
func (s EvmSyncSource) Equal(other EvmSyncSource) bool {
	return s.RpcSource.URLString() == other.RpcSource.URLString()
}

// EvmSyncSourceRecord is a user added rpc endpoint. BlockchainTypeUID and
// URL form its identity.
type EvmSyncSourceRecord struct {
	BlockchainTypeUID string
	URL               string
	Auth              *string
}

// ParseSyncSourceURL accepts any parsable url with an http(s) or ws(s) scheme
// and returns the rpc kind the scheme maps to.
func ParseSyncSourceURL(rawURL string) (*url.URL, RpcSourceKind, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, "", ErrInvalidSyncSourceURL
	}
	switch u.Scheme {
	case "http", "https":
		return u, RpcSourceHttp, nil
	case "ws", "wss":
		return u, RpcSourceWebSocket, nil
	default:
		return nil, "", ErrInvalidSyncSourceURL
	}
}

// SelectedSource is the backup form of the current sync source of a chain.
type SelectedSource struct {
	BlockchainTypeUID string `json:"blockchain_type_id"`
	URL               string `json:"url"`
}

// CustomSyncSource is the backup form of an EvmSyncSourceRecord, its auth
// being encrypted with the backup passphrase.
type CustomSyncSource struct {
	BlockchainTypeUID string               `json:"blockchain_type_id"`
	URL               string               `json:"url"`
	Auth              *wallet.BackupCrypto `json:"auth,omitempty"`
}

type SyncSourceBackup struct {
	Selected []SelectedSource   `json:"selected"`
	Custom   []CustomSyncSource `json:"custom"`
}
