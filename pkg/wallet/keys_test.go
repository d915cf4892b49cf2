package wallet_test

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/mishabunte/walletcore/pkg/wallet"
	"github.com/stretchr/testify/require"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon " +
	"abandon abandon abandon abandon abandon about"

func TestMnemonicSeed(t *testing.T) {
	words := strings.Split(testMnemonic, " ")

	seed, err := wallet.MnemonicSeed(wallet.MnemonicSeedOpts{
		Mnemonic:       words,
		Passphrase:     "TREZOR",
		Bip39Compliant: true,
	})
	require.NoError(t, err)
	require.Equal(
		t,
		"c55257c360c07c72029aebc1b53c05ed0362ada38ead3e3e9efa3708e5349553"+
			"1f09a6987599d18264c1e1c92f2cf141630c7a3c4ab7c81b2f001698e7463b04",
		hex.EncodeToString(seed),
	)

	t.Run("non compliant", func(t *testing.T) {
		words := []string{"not", "a", "valid", "phrase"}

		_, err := wallet.MnemonicSeed(wallet.MnemonicSeedOpts{
			Mnemonic:       words,
			Bip39Compliant: true,
		})
		require.ErrorIs(t, err, wallet.ErrInvalidMnemonic)

		seed, err := wallet.MnemonicSeed(wallet.MnemonicSeedOpts{Mnemonic: words})
		require.NoError(t, err)
		require.Len(t, seed, 64)
	})

	t.Run("null mnemonic", func(t *testing.T) {
		_, err := wallet.MnemonicSeed(wallet.MnemonicSeedOpts{})
		require.ErrorIs(t, err, wallet.ErrNullMnemonic)
	})
}

func TestNewMnemonic(t *testing.T) {
	words, err := wallet.NewMnemonic(wallet.NewMnemonicOpts{})
	require.NoError(t, err)
	require.Len(t, words, 12)
	require.True(t, wallet.IsMnemonicValid(words))

	words, err = wallet.NewMnemonic(wallet.NewMnemonicOpts{EntropySize: 256})
	require.NoError(t, err)
	require.Len(t, words, 24)

	_, err = wallet.NewMnemonic(wallet.NewMnemonicOpts{EntropySize: 100})
	require.ErrorIs(t, err, wallet.ErrInvalidEntropySize)
}

func TestEvmAddress(t *testing.T) {
	t.Run("from private key", func(t *testing.T) {
		key, _ := hex.DecodeString(
			"4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318",
		)
		addr, err := wallet.EvmAddressFromPrivateKey(key)
		require.NoError(t, err)
		require.Equal(t, "2c7536e3605d9c16a7a3d7b1898e529396a65c23", hex.EncodeToString(addr))
	})

	t.Run("from seed", func(t *testing.T) {
		seed, err := wallet.MnemonicSeed(wallet.MnemonicSeedOpts{
			Mnemonic:       strings.Split(testMnemonic, " "),
			Bip39Compliant: true,
		})
		require.NoError(t, err)

		secondAccountPath, err := wallet.ParseDerivationPath("m/44'/60'/0'/0/1")
		require.NoError(t, err)

		tests := []struct {
			path    wallet.DerivationPath
			address string
		}{
			{nil, "9858effd232b4033e47d90003d41ec34ecaeda94"},
			{wallet.DefaultEvmDerivationPath, "9858effd232b4033e47d90003d41ec34ecaeda94"},
			{secondAccountPath, "6fac4d18c912343bf86fa7049364dd4e424ab9c0"},
		}
		for _, tt := range tests {
			key, err := wallet.EvmPrivateKeyFromSeed(wallet.EvmPrivateKeyOpts{
				Seed: seed,
				Path: tt.path,
			})
			require.NoError(t, err)

			addr, err := wallet.EvmAddressFromPrivateKey(key)
			require.NoError(t, err)
			require.Equal(t, tt.address, hex.EncodeToString(addr))
		}
	})

	t.Run("invalid private key", func(t *testing.T) {
		zero := make([]byte, 32)
		overflow, _ := hex.DecodeString(
			"fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141",
		)

		for _, key := range [][]byte{nil, {1, 2, 3}, zero, overflow} {
			_, err := wallet.EvmAddressFromPrivateKey(key)
			require.ErrorIs(t, err, wallet.ErrInvalidPrivateKey)
		}
	})

	t.Run("null seed", func(t *testing.T) {
		_, err := wallet.EvmPrivateKeyFromSeed(wallet.EvmPrivateKeyOpts{})
		require.ErrorIs(t, err, wallet.ErrNullSeed)
	})
}
