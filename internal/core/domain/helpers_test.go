package domain_test

import (
	"crypto/sha256"
	"encoding/binary"
	"testing"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/mishabunte/walletcore/internal/core/domain"
	"github.com/stretchr/testify/require"
)

const (
	masterXprv = "xprv9s21ZrQH143K3QTDL4LXw2F7HEK3wJUD2nW2nRk4stbPy6cq3jPPqjiChkVvvNKmPGJxWUtg6LnF5kejMRNNU3TGtRBeJgk33yuGBxrMPHi"
	masterXpub = "xpub661MyMwAqRbcFtXgS5sYJABqqG9YLmC4Q1Rdap9gSE8NqtwybGhePY2gZ29ESFjqJoCu1Rupje8YtGqsefD265TMg7usUDFdp6W1EGMcet8"

	evmAddressEip55 = "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"
	evmAddressLower = "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed"

	tronAddressBase58 = "TJRyWwFs9wTFGZg3JbrVriFbNfCug5tDeC"
	tronAddressHex    = "415cd0fb0ab3ce40f3051414c604b27756e69e43db"

	zpubVersion = 0x04b24746
	zprvVersion = 0x04b2430c
	ltubVersion = 0x019da462
)

var testWords = []string{
	"abandon", "abandon", "abandon", "abandon", "abandon", "abandon",
	"abandon", "abandon", "abandon", "abandon", "abandon", "about",
}

func mustParseExtendedKey(t *testing.T, s string) *domain.ExtendedKey {
	t.Helper()
	key, err := domain.ParseExtendedKey(s)
	require.NoError(t, err)
	return key
}

// accountKey derives m/44'/0'/0' from the test master key, neutered if
// public is true.
func accountKey(t *testing.T, public bool) string {
	t.Helper()
	key, err := hdkeychain.NewKeyFromString(masterXprv)
	require.NoError(t, err)
	for _, i := range []uint32{44, 0, 0} {
		key, err = key.Derive(hdkeychain.HardenedKeyStart + i)
		require.NoError(t, err)
	}
	if public {
		key, err = key.Neuter()
		require.NoError(t, err)
	}
	return key.String()
}

// withVersion re-encodes an extended key with other version bytes.
func withVersion(t *testing.T, s string, version uint32) string {
	t.Helper()
	data := base58.Decode(s)
	require.Len(t, data, 82)

	payload := append([]byte{}, data[:78]...)
	binary.BigEndian.PutUint32(payload[:4], version)
	first := sha256.Sum256(payload)
	second := sha256.Sum256(first[:])
	return base58.Encode(append(payload, second[:4]...))
}

func mustEvmAddress(t *testing.T, s string) domain.EvmAddr {
	t.Helper()
	addr, err := domain.ParseEvmAddress(s)
	require.NoError(t, err)
	return addr
}

func mustTronAddress(t *testing.T, s string) domain.TronAddr {
	t.Helper()
	addr, err := domain.ParseTronAddress(s)
	require.NoError(t, err)
	return addr
}
