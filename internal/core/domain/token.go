package domain

import "fmt"

// MnemonicDerivation is the BIP purpose used to derive bitcoin-like wallets
// from a seed.
type MnemonicDerivation string

const (
	MnemonicDerivationBip44 MnemonicDerivation = "bip44"
	MnemonicDerivationBip49 MnemonicDerivation = "bip49"
	MnemonicDerivationBip84 MnemonicDerivation = "bip84"
	MnemonicDerivationBip86 MnemonicDerivation = "bip86"

	DefaultMnemonicDerivation = MnemonicDerivationBip84
)

var AllMnemonicDerivations = []MnemonicDerivation{
	MnemonicDerivationBip44,
	MnemonicDerivationBip49,
	MnemonicDerivationBip84,
	MnemonicDerivationBip86,
}

type BitcoinCashAddressType string

const (
	BitcoinCashAddressTypeType0   BitcoinCashAddressType = "type0"
	BitcoinCashAddressTypeType145 BitcoinCashAddressType = "type145"

	DefaultBitcoinCashAddressType = BitcoinCashAddressTypeType145
)

var AllBitcoinCashAddressTypes = []BitcoinCashAddressType{
	BitcoinCashAddressTypeType0,
	BitcoinCashAddressTypeType145,
}

type TokenTypeKind string

const (
	TokenKindNative      TokenTypeKind = "native"
	TokenKindEip20       TokenTypeKind = "eip20"
	TokenKindBep2        TokenTypeKind = "bep2"
	TokenKindSpl         TokenTypeKind = "spl"
	TokenKindDerived     TokenTypeKind = "derived"
	TokenKindAddressType TokenTypeKind = "address_type"
	TokenKindJetton      TokenTypeKind = "jetton"
	TokenKindUnsupported TokenTypeKind = "unsupported"
)

// TokenType identifies a token within its blockchain. Only the field that
// matches Kind is meaningful.
type TokenType struct {
	Kind        TokenTypeKind
	Reference   string
	Derivation  MnemonicDerivation
	AddressType BitcoinCashAddressType
}

func NativeTokenType() TokenType {
	return TokenType{Kind: TokenKindNative}
}

func Eip20TokenType(contractAddress string) TokenType {
	return TokenType{Kind: TokenKindEip20, Reference: contractAddress}
}

func Bep2TokenType(symbol string) TokenType {
	return TokenType{Kind: TokenKindBep2, Reference: symbol}
}

func DerivedTokenType(derivation MnemonicDerivation) TokenType {
	return TokenType{Kind: TokenKindDerived, Derivation: derivation}
}

func AddressTypeTokenType(addressType BitcoinCashAddressType) TokenType {
	return TokenType{Kind: TokenKindAddressType, AddressType: addressType}
}

// MnemonicDerivation returns the derivation of a derived token type.
func (t TokenType) MnemonicDerivation() (MnemonicDerivation, bool) {
	if t.Kind != TokenKindDerived {
		return "", false
	}
	return t.Derivation, true
}

func (t TokenType) String() string {
	switch t.Kind {
	case TokenKindEip20, TokenKindBep2, TokenKindSpl, TokenKindJetton:
		return fmt.Sprintf("%s:%s", t.Kind, t.Reference)
	case TokenKindDerived:
		return fmt.Sprintf("%s:%s", t.Kind, t.Derivation)
	case TokenKindAddressType:
		return fmt.Sprintf("%s:%s", t.Kind, t.AddressType)
	default:
		return string(t.Kind)
	}
}

type TokenQuery struct {
	BlockchainType BlockchainType
	TokenType      TokenType
}

func (q TokenQuery) ID() string {
	return fmt.Sprintf("%s|%s", q.BlockchainType, q.TokenType)
}

type Token struct {
	Code           string
	Decimals       int
	BlockchainType BlockchainType
	Type           TokenType
}

func (t Token) Query() TokenQuery {
	return TokenQuery{t.BlockchainType, t.Type}
}
