package domain

import (
	"bytes"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mishabunte/walletcore/pkg/wallet"
)

const (
	nonBip39CompliantMarker = "&nonBip39Compliant"
	mnemonicSaltSeparator   = "@"
	mnemonicWordSeparator   = " "
)

// AccountTypeAbstract is the discriminator stored next to the canonical
// bytes of an account type, since those alone cannot tell variants apart.
type AccountTypeAbstract string

const (
	AbstractMnemonic              AccountTypeAbstract = "mnemonic"
	AbstractEvmPrivateKey         AccountTypeAbstract = "private_key"
	AbstractEvmAddress            AccountTypeAbstract = "evm_address"
	AbstractEvmAddressHardware    AccountTypeAbstract = "evm_address_hardware"
	AbstractTronAddress           AccountTypeAbstract = "tron_address"
	AbstractTronAddressHardware   AccountTypeAbstract = "tron_address_hardware"
	AbstractHDExtendedKey         AccountTypeAbstract = "hd_extended_key"
	AbstractHDExtendedKeyHardware AccountTypeAbstract = "hd_extended_key_hardware"
	AbstractCex                   AccountTypeAbstract = "cex"
)

var AllAccountTypeAbstracts = []AccountTypeAbstract{
	AbstractMnemonic,
	AbstractEvmPrivateKey,
	AbstractEvmAddress,
	AbstractEvmAddressHardware,
	AbstractTronAddress,
	AbstractTronAddressHardware,
	AbstractHDExtendedKey,
	AbstractHDExtendedKeyHardware,
	AbstractCex,
}

func ParseAccountTypeAbstract(s string) (AccountTypeAbstract, error) {
	for _, a := range AllAccountTypeAbstracts {
		if string(a) == s {
			return a, nil
		}
	}
	return "", ErrUnknownAccountTypeAbstract
}

// IsWatch tells whether accounts of this kind only observe an address.
func (a AccountTypeAbstract) IsWatch() bool {
	return a == AbstractEvmAddress || a == AbstractTronAddress
}

// AccountType is the credential backing a wallet account. It is implemented
// only by the variant types of this package.
type AccountType interface {
	Abstract() AccountTypeAbstract
	// UniqueID returns the canonical bytes of the credential, or their
	// SHA-512 digest when hashed is true.
	UniqueID(hashed bool) []byte
	Description() string

	privateData() []byte
}

// Mnemonic is a seed phrase with an optional passphrase (Salt). Phrases
// failing the bip39 word list or checksum are kept with Bip39Compliant
// unset.
type Mnemonic struct {
	Words          []string
	Salt           string
	Bip39Compliant bool
}

type EvmPrivateKey struct {
	Data []byte
}

// EvmAddress watches a single evm address.
type EvmAddress struct {
	Address EvmAddr
}

// EvmAddressHardware is an evm address whose key lives on a hardware
// device.
type EvmAddressHardware struct {
	Address EvmAddr
}

type TronAddress struct {
	Address TronAddr
}

type TronAddressHardware struct {
	Address TronAddr
}

type HDExtendedKey struct {
	Key *ExtendedKey
}

type HDExtendedKeyHardware struct {
	Key *ExtendedKey
}

type Cex struct {
	Account CexAccount
}

func (Mnemonic) Abstract() AccountTypeAbstract              { return AbstractMnemonic }
func (EvmPrivateKey) Abstract() AccountTypeAbstract         { return AbstractEvmPrivateKey }
func (EvmAddress) Abstract() AccountTypeAbstract            { return AbstractEvmAddress }
func (EvmAddressHardware) Abstract() AccountTypeAbstract    { return AbstractEvmAddressHardware }
func (TronAddress) Abstract() AccountTypeAbstract           { return AbstractTronAddress }
func (TronAddressHardware) Abstract() AccountTypeAbstract   { return AbstractTronAddressHardware }
func (HDExtendedKey) Abstract() AccountTypeAbstract         { return AbstractHDExtendedKey }
func (HDExtendedKeyHardware) Abstract() AccountTypeAbstract { return AbstractHDExtendedKeyHardware }
func (Cex) Abstract() AccountTypeAbstract                   { return AbstractCex }

// The mnemonic layout (words, compliance marker, salt) is shared with
// existing backups and must not change.
func (t Mnemonic) privateData() []byte {
	description := strings.Join(t.Words, mnemonicWordSeparator)
	if !t.Bip39Compliant {
		description += nonBip39CompliantMarker
	}
	if t.Salt != "" {
		description += mnemonicSaltSeparator + t.Salt
	}
	return []byte(description)
}

func (t EvmPrivateKey) privateData() []byte         { return append([]byte{}, t.Data...) }
func (t EvmAddress) privateData() []byte            { return []byte(t.Address.LowerHex()) }
func (t EvmAddressHardware) privateData() []byte    { return []byte(t.Address.LowerHex()) }
func (t TronAddress) privateData() []byte           { return []byte(t.Address.Hex()) }
func (t TronAddressHardware) privateData() []byte   { return []byte(t.Address.Hex()) }
func (t HDExtendedKey) privateData() []byte         { return serializedKey(t.Key) }
func (t HDExtendedKeyHardware) privateData() []byte { return serializedKey(t.Key) }
func (t Cex) privateData() []byte                   { return []byte(t.Account.UniqueID()) }

func (t Mnemonic) UniqueID(hashed bool) []byte              { return uniqueID(t, hashed) }
func (t EvmPrivateKey) UniqueID(hashed bool) []byte         { return uniqueID(t, hashed) }
func (t EvmAddress) UniqueID(hashed bool) []byte            { return uniqueID(t, hashed) }
func (t EvmAddressHardware) UniqueID(hashed bool) []byte    { return uniqueID(t, hashed) }
func (t TronAddress) UniqueID(hashed bool) []byte           { return uniqueID(t, hashed) }
func (t TronAddressHardware) UniqueID(hashed bool) []byte   { return uniqueID(t, hashed) }
func (t HDExtendedKey) UniqueID(hashed bool) []byte         { return uniqueID(t, hashed) }
func (t HDExtendedKeyHardware) UniqueID(hashed bool) []byte { return uniqueID(t, hashed) }
func (t Cex) UniqueID(hashed bool) []byte                   { return uniqueID(t, hashed) }

func uniqueID(t AccountType, hashed bool) []byte {
	data := t.privateData()
	if !hashed {
		return data
	}
	digest := sha512.Sum512(data)
	return digest[:]
}

func serializedKey(key *ExtendedKey) []byte {
	if key == nil {
		return nil
	}
	return key.Serialized()
}

// HashKey returns a string usable as map key for the given account type.
// The variant tag is part of the key so that variants sharing the same
// canonical bytes (ie. an address and its hardware counterpart) never
// collide.
func HashKey(t AccountType) string {
	if t == nil {
		return ""
	}
	return fmt.Sprintf("%s:%s", t.Abstract(), hex.EncodeToString(t.UniqueID(true)))
}

// EqualAccountTypes compares two account types variant by variant.
func EqualAccountTypes(a, b AccountType) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	switch l := a.(type) {
	case Mnemonic:
		r, ok := b.(Mnemonic)
		return ok && l.Salt == r.Salt && l.Bip39Compliant == r.Bip39Compliant &&
			equalWords(l.Words, r.Words)
	case EvmPrivateKey:
		r, ok := b.(EvmPrivateKey)
		return ok && bytes.Equal(l.Data, r.Data)
	case EvmAddress:
		r, ok := b.(EvmAddress)
		return ok && l.Address.Equal(r.Address)
	case EvmAddressHardware:
		r, ok := b.(EvmAddressHardware)
		return ok && l.Address.Equal(r.Address)
	case TronAddress:
		r, ok := b.(TronAddress)
		return ok && l.Address.Equal(r.Address)
	case TronAddressHardware:
		r, ok := b.(TronAddressHardware)
		return ok && l.Address.Equal(r.Address)
	case HDExtendedKey:
		r, ok := b.(HDExtendedKey)
		return ok && l.Key.Equal(r.Key)
	case HDExtendedKeyHardware:
		r, ok := b.(HDExtendedKeyHardware)
		return ok && l.Key.Equal(r.Key)
	case Cex:
		r, ok := b.(Cex)
		return ok && l.Account == r.Account
	default:
		return false
	}
}

func equalWords(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// DecodeAccountType is the inverse of UniqueID(false) for the given variant.
func DecodeAccountType(
	uniqueID []byte, abstract AccountTypeAbstract,
) (AccountType, error) {
	if abstract != AbstractEvmPrivateKey &&
		abstract != AbstractHDExtendedKey &&
		abstract != AbstractHDExtendedKeyHardware &&
		!utf8.Valid(uniqueID) {
		return nil, ErrInvalidUniqueID
	}
	str := string(uniqueID)

	switch abstract {
	case AbstractMnemonic:
		return decodeMnemonic(str)
	case AbstractEvmPrivateKey:
		if err := wallet.ValidateEvmPrivateKey(uniqueID); err != nil {
			return nil, ErrInvalidPrivateKey
		}
		return EvmPrivateKey{Data: append([]byte{}, uniqueID...)}, nil
	case AbstractEvmAddress, AbstractEvmAddressHardware:
		addr, err := ParseEvmAddress(str)
		if err != nil {
			return nil, err
		}
		if abstract == AbstractEvmAddressHardware {
			return EvmAddressHardware{addr}, nil
		}
		return EvmAddress{addr}, nil
	case AbstractTronAddress, AbstractTronAddressHardware:
		addr, err := ParseTronAddress(str)
		if err != nil {
			return nil, err
		}
		if abstract == AbstractTronAddressHardware {
			return TronAddressHardware{addr}, nil
		}
		return TronAddress{addr}, nil
	case AbstractHDExtendedKey, AbstractHDExtendedKeyHardware:
		key, err := NewExtendedKeyFromSerialized(uniqueID)
		if err != nil {
			return nil, err
		}
		if abstract == AbstractHDExtendedKeyHardware {
			return HDExtendedKeyHardware{key}, nil
		}
		return HDExtendedKey{key}, nil
	case AbstractCex:
		account, err := DecodeCexAccount(str)
		if err != nil {
			return nil, err
		}
		return Cex{account}, nil
	default:
		return nil, ErrUnknownAccountTypeAbstract
	}
}

func decodeMnemonic(str string) (AccountType, error) {
	wordsWithCompliant, salt := split(str, mnemonicSaltSeparator)
	wordList, marker := split(wordsWithCompliant, nonBip39CompliantMarker[:1])
	if marker != "" && marker != nonBip39CompliantMarker[1:] {
		return nil, ErrInvalidUniqueID
	}

	words := strings.FieldsFunc(wordList, func(r rune) bool { return r == ' ' })
	if len(words) == 0 {
		return nil, ErrInvalidUniqueID
	}

	return Mnemonic{
		Words:          words,
		Salt:           salt,
		Bip39Compliant: marker == "",
	}, nil
}

// split cuts s around the first occurrence of sep.
func split(s, sep string) (string, string) {
	left, right, _ := strings.Cut(s, sep)
	return left, right
}
