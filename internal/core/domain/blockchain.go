package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// BlockchainType identifies a chain by its uid. Any uid not listed below is
// treated as unsupported.
type BlockchainType string

const (
	Bitcoin           BlockchainType = "bitcoin"
	BitcoinCash       BlockchainType = "bitcoin-cash"
	ECash             BlockchainType = "ecash"
	Litecoin          BlockchainType = "litecoin"
	Dash              BlockchainType = "dash"
	Zcash             BlockchainType = "zcash"
	Ethereum          BlockchainType = "ethereum"
	BinanceSmartChain BlockchainType = "binance-smart-chain"
	BinanceChain      BlockchainType = "binancecoin"
	Polygon           BlockchainType = "polygon-pos"
	Avalanche         BlockchainType = "avalanche"
	Optimism          BlockchainType = "optimistic-ethereum"
	ArbitrumOne       BlockchainType = "arbitrum-one"
	Gnosis            BlockchainType = "gnosis"
	Fantom            BlockchainType = "fantom"
	Base              BlockchainType = "base"
	ZkSync            BlockchainType = "zksync"
	Tron              BlockchainType = "tron"
	Ton               BlockchainType = "the-open-network"
	Stellar           BlockchainType = "stellar"
)

var (
	// SupportedBlockchainTypes are the chains the wallet can hold.
	SupportedBlockchainTypes = []BlockchainType{
		Bitcoin, BitcoinCash, ECash, Litecoin, Dash, Zcash,
		Ethereum, Polygon, Avalanche, Optimism, ArbitrumOne, Gnosis, Fantom,
		Base, ZkSync, BinanceSmartChain,
		Tron, Ton, Stellar,
	}

	// EvmBlockchainTypes are the chains served by EvmKit-like sync sources.
	EvmBlockchainTypes = []BlockchainType{
		Ethereum, BinanceSmartChain, Polygon, Avalanche, Optimism,
		ArbitrumOne, Gnosis, Fantom, Base, ZkSync,
	}

	// SwappableBlockchainTypes ...
	SwappableBlockchainTypes = []BlockchainType{
		Ethereum, BinanceSmartChain, Polygon, Avalanche, Optimism,
		ArbitrumOne, Gnosis, Fantom, Base, ZkSync,
		Bitcoin, BitcoinCash, Litecoin,
	}

	displayOrder = []BlockchainType{
		Bitcoin, Ethereum, BinanceSmartChain, Tron, Ton, Stellar, Polygon,
		ArbitrumOne, Optimism, Base, Avalanche, Gnosis, ZkSync, Zcash,
		BitcoinCash, Litecoin, Dash, ECash, Fantom,
	}

	knownBlockchainTypes = func() map[BlockchainType]struct{} {
		m := make(map[BlockchainType]struct{})
		for _, t := range SupportedBlockchainTypes {
			m[t] = struct{}{}
		}
		m[BinanceChain] = struct{}{}
		return m
	}()
)

const rollupFeeContract = "0x420000000000000000000000000000000000000F"

// BlockchainTypeFromUID never fails: unknown uids produce an unsupported
// blockchain type carrying the raw uid.
func BlockchainTypeFromUID(uid string) BlockchainType {
	return BlockchainType(uid)
}

func (b BlockchainType) UID() string {
	return string(b)
}

func (b BlockchainType) String() string {
	return string(b)
}

func (b BlockchainType) IsUnsupported() bool {
	_, ok := knownBlockchainTypes[b]
	return !ok
}

func (b BlockchainType) IsEvm() bool {
	return contains(EvmBlockchainTypes, b)
}

// Order is the display priority of the chain, unknown chains sort last.
func (b BlockchainType) Order() int {
	for i, t := range displayOrder {
		if t == b {
			return i
		}
	}
	return int(^uint(0) >> 1)
}

// Less sorts blockchain types by display order.
func (b BlockchainType) Less(other BlockchainType) bool {
	return b.Order() < other.Order()
}

// Resendable tells whether a pending evm transaction can be sped up or
// cancelled on this chain.
func (b BlockchainType) Resendable() bool {
	switch b {
	case Optimism, ArbitrumOne, Base:
		return false
	default:
		return true
	}
}

// RollupFeeContractAddress returns the L1 fee oracle of OP-stack rollups.
func (b BlockchainType) RollupFeeContractAddress() (*EvmAddr, bool) {
	switch b {
	case Optimism, Base:
		addr, err := ParseEvmAddress(rollupFeeContract)
		if err != nil {
			return nil, false
		}
		return &addr, true
	default:
		return nil, false
	}
}

// FeePriceScale is meaningful for evm and bitcoin-like chains only.
func (b BlockchainType) FeePriceScale() FeePriceScale {
	switch b {
	case Bitcoin, BitcoinCash, Dash, Litecoin, ECash:
		return FeePriceScaleSatoshi
	case Avalanche:
		return FeePriceScaleNAvax
	default:
		return FeePriceScaleGwei
	}
}

func (b BlockchainType) RestoreSettingTypes() []RestoreSettingType {
	if b == Zcash {
		return []RestoreSettingType{RestoreSettingBirthdayHeight}
	}
	return nil
}

func (b BlockchainType) Description() string {
	switch b {
	case Bitcoin:
		return "BTC (BIP44, BIP49, BIP84, BIP86)"
	case Ethereum:
		return "ETH, ERC20 tokens"
	case BinanceSmartChain:
		return "BNB, BEP20 tokens"
	case Polygon:
		return "MATIC, ERC20 tokens"
	case Avalanche:
		return "AVAX, ERC20 tokens"
	case Gnosis:
		return "xDAI, ERC20 tokens"
	case Fantom:
		return "FTM, ERC20 tokens"
	case Optimism, Base, ZkSync, ArbitrumOne:
		return "L2 chain"
	case Zcash:
		return "ZEC"
	case Dash:
		return "DASH"
	case BitcoinCash:
		return "BCH (Legacy, CashAddress)"
	case ECash:
		return "XEC"
	case Litecoin:
		return "LTC (BIP44, BIP49, BIP84, BIP86)"
	case Tron:
		return "TRX, TRC20 tokens"
	case Ton:
		return "TON"
	case Stellar:
		return "Stellar"
	default:
		return ""
	}
}

// DefaultTokenQuery is the token enabled by default when the chain is added
// to a wallet.
func (b BlockchainType) DefaultTokenQuery() TokenQuery {
	switch b {
	case Bitcoin, Litecoin:
		return TokenQuery{b, DerivedTokenType(DefaultMnemonicDerivation)}
	case BitcoinCash:
		return TokenQuery{b, AddressTypeTokenType(DefaultBitcoinCashAddressType)}
	default:
		return TokenQuery{b, NativeTokenType()}
	}
}

func (b BlockchainType) NativeTokenQueries() []TokenQuery {
	switch b {
	case Bitcoin, Litecoin:
		queries := make([]TokenQuery, 0, len(AllMnemonicDerivations))
		for _, d := range AllMnemonicDerivations {
			queries = append(queries, TokenQuery{b, DerivedTokenType(d)})
		}
		return queries
	case BitcoinCash:
		queries := make([]TokenQuery, 0, len(AllBitcoinCashAddressTypes))
		for _, t := range AllBitcoinCashAddressTypes {
			queries = append(queries, TokenQuery{b, AddressTypeTokenType(t)})
		}
		return queries
	default:
		return []TokenQuery{{b, NativeTokenType()}}
	}
}

// SupportsAccountType tells whether a wallet for this chain can be created
// from the given account type. Combinations not listed are unsupported.
func (b BlockchainType) SupportsAccountType(accountType AccountType) bool {
	switch t := accountType.(type) {
	case Mnemonic:
		return true
	case HDExtendedKey:
		return b.supportsExtendedKey(t.Key)
	case HDExtendedKeyHardware:
		return b.supportsExtendedKey(t.Key)
	case EvmPrivateKey, EvmAddress, EvmAddressHardware:
		return b.IsEvm()
	case TronAddress, TronAddressHardware:
		return b == Tron
	default:
		return false
	}
}

func (b BlockchainType) supportsExtendedKey(key *ExtendedKey) bool {
	if key == nil {
		return false
	}
	switch b {
	case Bitcoin:
		return key.HasCoinType(CoinTypeBitcoin)
	case Litecoin:
		return key.HasCoinType(CoinTypeLitecoin)
	case BitcoinCash, ECash, Dash:
		return key.HasCoinType(CoinTypeBitcoin) && key.HasPurpose(PurposeBip44)
	default:
		return false
	}
}

type RestoreSettingType string

const RestoreSettingBirthdayHeight RestoreSettingType = "birthday_height"

// FeePriceScale describes the unit fee rates are expressed in.
type FeePriceScale struct {
	Unit string
	// Exponent is the power of ten between the base unit and the display
	// unit, ie. 9 for wei -> gwei.
	Exponent int32
}

var (
	FeePriceScaleSatoshi = FeePriceScale{"sat/byte", 0}
	FeePriceScaleGwei    = FeePriceScale{"gwei", 9}
	FeePriceScaleNAvax   = FeePriceScale{"nAVAX", 9}
)

// Scale converts a fee rate in base units into the display unit.
func (s FeePriceScale) Scale(value decimal.Decimal) decimal.Decimal {
	return value.Shift(-s.Exponent)
}

// Unscale converts a fee rate in display unit into base units, truncating
// any fraction below one base unit.
func (s FeePriceScale) Unscale(value decimal.Decimal) decimal.Decimal {
	return value.Shift(s.Exponent).Truncate(0)
}

// Format renders a fee rate given in base units, ie. "1.5 gwei".
func (s FeePriceScale) Format(value decimal.Decimal) string {
	return fmt.Sprintf("%s %s", s.Scale(value).String(), s.Unit)
}

func contains(list []BlockchainType, b BlockchainType) bool {
	for _, t := range list {
		if t == b {
			return true
		}
	}
	return false
}
