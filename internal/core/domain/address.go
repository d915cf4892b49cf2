package domain

import (
	"bytes"
	"encoding/hex"
	"strings"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/ethereum/go-ethereum/common"
)

const (
	tronAddressPrefix byte = 0x41
	tronAddressLen         = 21
)

// EvmAddr is a 20 byte account address of an evm chain.
type EvmAddr struct {
	common.Address
}

// ParseEvmAddress accepts a 0x prefixed hex string. All-lower and all-upper
// case strings are accepted as is, mixed case strings must match their
// EIP-55 checksum.
func ParseEvmAddress(s string) (EvmAddr, error) {
	if !common.IsHexAddress(s) || !strings.HasPrefix(strings.ToLower(s), "0x") {
		return EvmAddr{}, ErrInvalidEvmAddress
	}

	addr := common.HexToAddress(s)
	body := s[2:]
	if body != strings.ToLower(body) && body != strings.ToUpper(body) {
		if addr.Hex() != s {
			return EvmAddr{}, ErrInvalidEvmAddressChecksum
		}
	}
	return EvmAddr{addr}, nil
}

// NewEvmAddressFromBytes takes the rightmost 20 bytes of b.
func NewEvmAddressFromBytes(b []byte) EvmAddr {
	return EvmAddr{common.BytesToAddress(b)}
}

// LowerHex is the canonical form, ie. lowercase and 0x prefixed.
func (a EvmAddr) LowerHex() string {
	return "0x" + hex.EncodeToString(a.Address.Bytes())
}

// Eip55 is the checksummed representation.
func (a EvmAddr) Eip55() string {
	return a.Address.Hex()
}

func (a EvmAddr) Equal(other EvmAddr) bool {
	return a.Address == other.Address
}

// TronAddr holds the 21 byte raw address (0x41 prefix + 20 byte hash).
type TronAddr struct {
	raw [tronAddressLen]byte
}

// ParseTronAddress accepts either the base58check form (T...) or the hex form
// of the raw address (41...).
func ParseTronAddress(s string) (TronAddr, error) {
	if len(s) == tronAddressLen*2 {
		raw, err := hex.DecodeString(s)
		if err != nil {
			return TronAddr{}, ErrInvalidTronAddress
		}
		return NewTronAddressFromRaw(raw)
	}

	payload, version, err := base58.CheckDecode(s)
	if err != nil || version != tronAddressPrefix {
		return TronAddr{}, ErrInvalidTronAddress
	}
	return NewTronAddressFromRaw(append([]byte{version}, payload...))
}

func NewTronAddressFromRaw(raw []byte) (TronAddr, error) {
	if len(raw) != tronAddressLen || raw[0] != tronAddressPrefix {
		return TronAddr{}, ErrInvalidTronAddress
	}
	var a TronAddr
	copy(a.raw[:], raw)
	return a, nil
}

func (a TronAddr) Raw() []byte {
	return append([]byte{}, a.raw[:]...)
}

// Hex is the canonical form used for identity.
func (a TronAddr) Hex() string {
	return hex.EncodeToString(a.raw[:])
}

func (a TronAddr) Base58() string {
	return base58.CheckEncode(a.raw[1:], a.raw[0])
}

func (a TronAddr) String() string {
	return a.Base58()
}

func (a TronAddr) Equal(other TronAddr) bool {
	return bytes.Equal(a.raw[:], other.raw[:])
}

// shortened keeps the first and last characters of an address for display.
func shortened(s string) string {
	if len(s) <= 14 {
		return s
	}
	return s[:7] + "..." + s[len(s)-4:]
}
