package domain

import (
	"bytes"
	"encoding/binary"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
)

// serialized extended key length: 78 bytes payload + 4 bytes checksum.
const extendedKeySerializedLen = 82

type Purpose int

const (
	PurposeBip44 Purpose = 44
	PurposeBip49 Purpose = 49
	PurposeBip84 Purpose = 84
	PurposeBip86 Purpose = 86
)

func (p Purpose) MnemonicDerivation() MnemonicDerivation {
	switch p {
	case PurposeBip49:
		return MnemonicDerivationBip49
	case PurposeBip84:
		return MnemonicDerivationBip84
	case PurposeBip86:
		return MnemonicDerivationBip86
	default:
		return MnemonicDerivationBip44
	}
}

type ExtendedKeyCoinType string

const (
	CoinTypeBitcoin  ExtendedKeyCoinType = "bitcoin"
	CoinTypeLitecoin ExtendedKeyCoinType = "litecoin"
)

type DerivedType string

const (
	DerivedTypeMaster  DerivedType = "master"
	DerivedTypeAccount DerivedType = "account"
	DerivedTypeBip32   DerivedType = "bip32"
)

type extendedKeyVersion struct {
	name      string
	private   bool
	purposes  []Purpose
	coinTypes []ExtendedKeyCoinType
}

var (
	bitcoinLike = []ExtendedKeyCoinType{CoinTypeBitcoin, CoinTypeLitecoin}
	litecoin    = []ExtendedKeyCoinType{CoinTypeLitecoin}

	extendedKeyVersions = map[uint32]extendedKeyVersion{
		0x0488ade4: {"xprv", true, []Purpose{PurposeBip44, PurposeBip86}, bitcoinLike},
		0x0488b21e: {"xpub", false, []Purpose{PurposeBip44, PurposeBip86}, bitcoinLike},
		0x049d7878: {"yprv", true, []Purpose{PurposeBip49}, bitcoinLike},
		0x049d7cb2: {"ypub", false, []Purpose{PurposeBip49}, bitcoinLike},
		0x04b2430c: {"zprv", true, []Purpose{PurposeBip84}, bitcoinLike},
		0x04b24746: {"zpub", false, []Purpose{PurposeBip84}, bitcoinLike},
		0x019d9cfe: {"Ltpv", true, []Purpose{PurposeBip44}, litecoin},
		0x019da462: {"Ltub", false, []Purpose{PurposeBip44}, litecoin},
		0x01b26792: {"Mtpv", true, []Purpose{PurposeBip49}, litecoin},
		0x01b26ef6: {"Mtub", false, []Purpose{PurposeBip49}, litecoin},
	}
)

// ExtendedKey is a BIP32 extended key whose version bytes carry the purpose
// and coin type it was exported for.
type ExtendedKey struct {
	serialized []byte
	key        *hdkeychain.ExtendedKey
	version    extendedKeyVersion
}

// ParseExtendedKey parses the base58 representation of an extended key.
func ParseExtendedKey(s string) (*ExtendedKey, error) {
	return NewExtendedKeyFromSerialized(base58.Decode(s))
}

// NewExtendedKeyFromSerialized parses the 82 byte serialization (payload and
// checksum) of an extended key.
func NewExtendedKeyFromSerialized(data []byte) (*ExtendedKey, error) {
	if len(data) != extendedKeySerializedLen {
		return nil, ErrInvalidExtendedKey
	}

	version, ok := extendedKeyVersions[binary.BigEndian.Uint32(data[:4])]
	if !ok {
		return nil, ErrUnsupportedExtendedKeyVersion
	}

	key, err := hdkeychain.NewKeyFromString(base58.Encode(data))
	if err != nil {
		return nil, ErrInvalidExtendedKey
	}
	if key.IsPrivate() != version.private {
		return nil, ErrInvalidExtendedKey
	}

	return &ExtendedKey{
		serialized: append([]byte{}, data...),
		key:        key,
		version:    version,
	}, nil
}

// Serialized returns the canonical 82 byte form of the key.
func (k *ExtendedKey) Serialized() []byte {
	return append([]byte{}, k.serialized...)
}

func (k *ExtendedKey) String() string {
	return base58.Encode(k.serialized)
}

func (k *ExtendedKey) IsPrivate() bool {
	return k.version.private
}

func (k *ExtendedKey) VersionName() string {
	return k.version.name
}

func (k *ExtendedKey) Depth() uint8 {
	return k.key.Depth()
}

func (k *ExtendedKey) DerivedType() DerivedType {
	switch k.key.Depth() {
	case 0:
		return DerivedTypeMaster
	case 3:
		return DerivedTypeAccount
	default:
		return DerivedTypeBip32
	}
}

func (k *ExtendedKey) Purposes() []Purpose {
	return append([]Purpose{}, k.version.purposes...)
}

func (k *ExtendedKey) CoinTypes() []ExtendedKeyCoinType {
	return append([]ExtendedKeyCoinType{}, k.version.coinTypes...)
}

func (k *ExtendedKey) HasPurpose(purpose Purpose) bool {
	for _, p := range k.version.purposes {
		if p == purpose {
			return true
		}
	}
	return false
}

func (k *ExtendedKey) HasDerivation(derivation MnemonicDerivation) bool {
	for _, p := range k.version.purposes {
		if p.MnemonicDerivation() == derivation {
			return true
		}
	}
	return false
}

func (k *ExtendedKey) HasCoinType(coinType ExtendedKeyCoinType) bool {
	for _, c := range k.version.coinTypes {
		if c == coinType {
			return true
		}
	}
	return false
}

// HDKey exposes the underlying bip32 key for derivation.
func (k *ExtendedKey) HDKey() *hdkeychain.ExtendedKey {
	return k.key
}

func (k *ExtendedKey) Equal(other *ExtendedKey) bool {
	if k == nil || other == nil {
		return k == other
	}
	return bytes.Equal(k.serialized, other.serialized)
}
