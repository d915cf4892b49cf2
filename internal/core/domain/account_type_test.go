package domain_test

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/mishabunte/walletcore/internal/core/domain"
	"github.com/mishabunte/walletcore/pkg/wallet"
	"github.com/stretchr/testify/require"
)

func testAccountTypes(t *testing.T) []domain.AccountType {
	privateKey, _ := hex.DecodeString(
		"4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318",
	)
	cexAccount, err := domain.NewCexAccount(domain.ExchangeBinance, "apikey", "apisecret")
	require.NoError(t, err)
	accountXpub := mustParseExtendedKey(t, withVersion(t, accountKey(t, true), zpubVersion))

	return []domain.AccountType{
		domain.Mnemonic{Words: testWords, Bip39Compliant: true},
		domain.Mnemonic{Words: testWords, Salt: "pass@word&", Bip39Compliant: true},
		domain.Mnemonic{Words: []string{"foo", "bar"}, Salt: "salt"},
		domain.Mnemonic{Words: []string{"foo", "bar"}},
		domain.EvmPrivateKey{Data: privateKey},
		domain.EvmAddress{Address: mustEvmAddress(t, evmAddressEip55)},
		domain.EvmAddressHardware{Address: mustEvmAddress(t, evmAddressEip55)},
		domain.TronAddress{Address: mustTronAddress(t, tronAddressBase58)},
		domain.TronAddressHardware{Address: mustTronAddress(t, tronAddressBase58)},
		domain.HDExtendedKey{Key: mustParseExtendedKey(t, masterXprv)},
		domain.HDExtendedKey{Key: accountXpub},
		domain.HDExtendedKeyHardware{Key: accountXpub},
		domain.Cex{Account: cexAccount},
	}
}

func TestAccountTypeUniqueIDRoundTrip(t *testing.T) {
	t.Parallel()

	for _, accountType := range testAccountTypes(t) {
		accountType := accountType
		t.Run(string(accountType.Abstract()), func(t *testing.T) {
			uniqueID := accountType.UniqueID(false)
			require.NotEmpty(t, uniqueID)
			require.Len(t, accountType.UniqueID(true), 64)

			decoded, err := domain.DecodeAccountType(uniqueID, accountType.Abstract())
			require.NoError(t, err)
			require.True(t, domain.EqualAccountTypes(accountType, decoded))
			require.Equal(t, domain.HashKey(accountType), domain.HashKey(decoded))
			require.Equal(t, uniqueID, decoded.UniqueID(false))
		})
	}
}

func TestMnemonicUniqueID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		mnemonic domain.Mnemonic
		expected string
	}{
		{
			name:     "compliant",
			mnemonic: domain.Mnemonic{Words: []string{"a", "b"}, Bip39Compliant: true},
			expected: "a b",
		},
		{
			name:     "compliant_with_salt",
			mnemonic: domain.Mnemonic{Words: []string{"a", "b"}, Salt: "s", Bip39Compliant: true},
			expected: "a b@s",
		},
		{
			name:     "non_compliant",
			mnemonic: domain.Mnemonic{Words: []string{"a", "b"}},
			expected: "a b&nonBip39Compliant",
		},
		{
			name:     "non_compliant_with_salt",
			mnemonic: domain.Mnemonic{Words: []string{"a", "b"}, Salt: "s"},
			expected: "a b&nonBip39Compliant@s",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, string(tt.mnemonic.UniqueID(false)))
		})
	}
}

func TestMnemonicDigestChangesWithEachField(t *testing.T) {
	t.Parallel()

	base := domain.Mnemonic{Words: testWords, Salt: "salt", Bip39Compliant: true}
	otherWords := append([]string{}, testWords...)
	otherWords[len(otherWords)-1] = "abandon"

	tests := []struct {
		name    string
		changed domain.Mnemonic
	}{
		{"words", domain.Mnemonic{Words: otherWords, Salt: "salt", Bip39Compliant: true}},
		{"salt", domain.Mnemonic{Words: testWords, Salt: "other", Bip39Compliant: true}},
		{"no salt", domain.Mnemonic{Words: testWords, Bip39Compliant: true}},
		{"compliance", domain.Mnemonic{Words: testWords, Salt: "salt"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			require.Len(t, tt.changed.UniqueID(true), 64)
			require.NotEqual(t, base.UniqueID(true), tt.changed.UniqueID(true))
			require.NotEqual(t, domain.HashKey(base), domain.HashKey(tt.changed))
			require.False(t, domain.EqualAccountTypes(base, tt.changed))
		})
	}

	same := domain.Mnemonic{
		Words: append([]string{}, testWords...), Salt: "salt", Bip39Compliant: true,
	}
	require.Equal(t, base.UniqueID(true), same.UniqueID(true))
}

func TestAccountTypeCanonicalForms(t *testing.T) {
	t.Parallel()

	evm := domain.EvmAddress{Address: mustEvmAddress(t, evmAddressEip55)}
	require.Equal(t, evmAddressLower, string(evm.UniqueID(false)))

	tron := domain.TronAddress{Address: mustTronAddress(t, tronAddressBase58)}
	require.Equal(t, tronAddressHex, string(tron.UniqueID(false)))

	cexAccount, err := domain.NewCexAccount(domain.ExchangeCoinzix, "token", "secret")
	require.NoError(t, err)
	require.Equal(t, "coinzix@token@secret", string(domain.Cex{Account: cexAccount}.UniqueID(false)))

	// tron addresses are also decoded from their base58 form
	decoded, err := domain.DecodeAccountType(
		[]byte(tronAddressBase58), domain.AbstractTronAddressHardware,
	)
	require.NoError(t, err)
	require.True(t, domain.EqualAccountTypes(
		domain.TronAddressHardware{Address: tron.Address}, decoded,
	))
}

func TestFailingDecodeAccountType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		uniqueID      []byte
		abstract      domain.AccountTypeAbstract
		expectedError error
	}{
		{"invalid_utf8_mnemonic", []byte{0xff, 0xfe, 0x20}, domain.AbstractMnemonic, domain.ErrInvalidUniqueID},
		{"empty_mnemonic", []byte(""), domain.AbstractMnemonic, domain.ErrInvalidUniqueID},
		{"unknown_marker", []byte("a b&other"), domain.AbstractMnemonic, domain.ErrInvalidUniqueID},
		{"short_private_key", []byte{1, 2, 3}, domain.AbstractEvmPrivateKey, domain.ErrInvalidPrivateKey},
		{"invalid_evm_address", []byte("0x1234"), domain.AbstractEvmAddress, domain.ErrInvalidEvmAddress},
		{"bad_evm_checksum", []byte("0x5AAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"), domain.AbstractEvmAddressHardware, domain.ErrInvalidEvmAddressChecksum},
		{"invalid_utf8_evm_address", []byte{0xc3, 0x28}, domain.AbstractEvmAddress, domain.ErrInvalidUniqueID},
		{"invalid_tron_address", []byte("Tinvalid"), domain.AbstractTronAddress, domain.ErrInvalidTronAddress},
		{"invalid_extended_key", []byte{0x04, 0x88}, domain.AbstractHDExtendedKey, domain.ErrInvalidExtendedKey},
		{"invalid_cex", []byte("binance@key"), domain.AbstractCex, domain.ErrInvalidCexAccount},
		{"unknown_cex", []byte("kraken@key@secret"), domain.AbstractCex, domain.ErrUnknownCex},
		{"unknown_abstract", []byte("whatever"), domain.AccountTypeAbstract("foo"), domain.ErrUnknownAccountTypeAbstract},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			accountType, err := domain.DecodeAccountType(tt.uniqueID, tt.abstract)
			require.ErrorIs(t, err, tt.expectedError)
			require.Nil(t, accountType)
		})
	}
}

func TestEqualAccountTypes(t *testing.T) {
	t.Parallel()

	accountTypes := testAccountTypes(t)
	for i, a := range accountTypes {
		for j, b := range accountTypes {
			require.Equal(t, i == j, domain.EqualAccountTypes(a, b), "%d-%d", i, j)
			require.Equal(t, i == j, domain.HashKey(a) == domain.HashKey(b), "%d-%d", i, j)
		}
	}

	require.True(t, domain.EqualAccountTypes(nil, nil))
	require.False(t, domain.EqualAccountTypes(accountTypes[0], nil))
}

func TestSupportsToken(t *testing.T) {
	t.Parallel()

	mnemonic := domain.Mnemonic{Words: testWords, Bip39Compliant: true}
	evmAddress := domain.EvmAddress{Address: mustEvmAddress(t, evmAddressEip55)}
	tronAddress := domain.TronAddressHardware{Address: mustTronAddress(t, tronAddressHex)}
	zpub := domain.HDExtendedKey{
		Key: mustParseExtendedKey(t, withVersion(t, accountKey(t, true), zpubVersion)),
	}
	ltub := domain.HDExtendedKeyHardware{
		Key: mustParseExtendedKey(t, withVersion(t, accountKey(t, true), ltubVersion)),
	}
	cexAccount, err := domain.NewCexAccount(domain.ExchangeBinance, "k", "s")
	require.NoError(t, err)
	cex := domain.Cex{Account: cexAccount}

	token := func(chain domain.BlockchainType, tokenType domain.TokenType) domain.Token {
		return domain.Token{BlockchainType: chain, Type: tokenType}
	}
	bip84 := domain.DerivedTokenType(domain.MnemonicDerivationBip84)
	bip44 := domain.DerivedTokenType(domain.MnemonicDerivationBip44)
	usdt := domain.Eip20TokenType("0xdac17f958d2ee523a2206206994597c13d831ec7")

	tests := []struct {
		name        string
		accountType domain.AccountType
		token       domain.Token
		expected    bool
	}{
		{"mnemonic_bitcoin_native", mnemonic, token(domain.Bitcoin, domain.NativeTokenType()), false},
		{"mnemonic_bitcoin_derived", mnemonic, token(domain.Bitcoin, bip84), true},
		{"mnemonic_bitcoin_cash", mnemonic, token(domain.BitcoinCash, domain.AddressTypeTokenType(domain.DefaultBitcoinCashAddressType)), true},
		{"mnemonic_zcash", mnemonic, token(domain.Zcash, domain.NativeTokenType()), true},
		{"mnemonic_bep2", mnemonic, token(domain.BinanceChain, domain.Bep2TokenType("BUSD")), true},
		{"mnemonic_ethereum_eip20", mnemonic, token(domain.Ethereum, usdt), true},
		{"mnemonic_tron_native", mnemonic, token(domain.Tron, domain.NativeTokenType()), true},
		{"mnemonic_ton", mnemonic, token(domain.Ton, domain.NativeTokenType()), false},
		{"mnemonic_unsupported_chain", mnemonic, token(domain.BlockchainTypeFromUID("foo"), domain.NativeTokenType()), false},
		{"evm_address_polygon", evmAddress, token(domain.Polygon, domain.NativeTokenType()), true},
		{"evm_address_bitcoin", evmAddress, token(domain.Bitcoin, bip84), false},
		{"mnemonic_base", mnemonic, token(domain.Base, domain.NativeTokenType()), false},
		{"mnemonic_zksync_eip20", mnemonic, token(domain.ZkSync, usdt), false},
		{"evm_address_optimism_eip20", evmAddress, token(domain.Optimism, usdt), true},
		{"evm_address_base", evmAddress, token(domain.Base, domain.NativeTokenType()), false},
		{"evm_address_tron", evmAddress, token(domain.Tron, domain.NativeTokenType()), false},
		{"tron_hardware_tron", tronAddress, token(domain.Tron, usdt), true},
		{"tron_hardware_ethereum", tronAddress, token(domain.Ethereum, domain.NativeTokenType()), false},
		{"zpub_bitcoin_bip84", zpub, token(domain.Bitcoin, bip84), true},
		{"zpub_bitcoin_bip44", zpub, token(domain.Bitcoin, bip44), false},
		{"zpub_litecoin_bip84", zpub, token(domain.Litecoin, bip84), true},
		{"zpub_dash", zpub, token(domain.Dash, domain.NativeTokenType()), false},
		{"ltub_bitcoin_bip44", ltub, token(domain.Bitcoin, bip44), false},
		{"ltub_litecoin_bip44", ltub, token(domain.Litecoin, bip44), true},
		{"ltub_dash", ltub, token(domain.Dash, domain.NativeTokenType()), true},
		{"ltub_ethereum", ltub, token(domain.Ethereum, domain.NativeTokenType()), false},
		{"cex_ethereum", cex, token(domain.Ethereum, domain.NativeTokenType()), false},
		{"nil", nil, token(domain.Ethereum, domain.NativeTokenType()), false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, domain.SupportsToken(tt.accountType, tt.token))
		})
	}
}

func TestAccountTypeCapabilities(t *testing.T) {
	t.Parallel()

	accountTypes := testAccountTypes(t)
	tests := []struct {
		accountType     domain.AccountType
		description     string
		canAddTokens    bool
		supportsNft     bool
		withdrawAllowed bool
	}{
		{accountTypes[0], "12 words", true, true, true},
		{accountTypes[1], "12 words with passphrase", true, true, true},
		{accountTypes[4], "EVM Private Key", true, true, true},
		{accountTypes[5], "EVM Address", false, true, true},
		{accountTypes[6], "EVM Address Hardware", true, true, true},
		{accountTypes[7], "TRON Address", false, true, true},
		{accountTypes[8], "TRON Address Hardware", false, true, true},
		{accountTypes[9], "BIP32 Root Key", false, true, true},
		{accountTypes[10], "Account xPubKey", false, true, true},
		{accountTypes[11], "Account xPubKey Hardware", false, true, true},
		{accountTypes[12], "Binance", false, false, true},
	}

	for _, tt := range tests {
		require.Equal(t, tt.description, tt.accountType.Description())
		require.Equal(t, tt.canAddTokens, domain.CanAddTokens(tt.accountType), tt.description)
		require.Equal(t, tt.canAddTokens, domain.SupportsWalletConnect(tt.accountType), tt.description)
		require.Equal(t, tt.supportsNft, domain.SupportsNft(tt.accountType), tt.description)
		require.Equal(t, tt.withdrawAllowed, domain.WithdrawalAllowed(tt.accountType), tt.description)
	}

	require.Equal(t, "0x5aAeb...eAed", domain.DetailedDescription(accountTypes[5]))
	require.Equal(t, "TJRyWwF...tDeC", domain.DetailedDescription(accountTypes[7]))
	require.Equal(t, "12 words", domain.DetailedDescription(accountTypes[0]))
}

func TestEvmAddressOf(t *testing.T) {
	t.Parallel()

	accountTypes := testAccountTypes(t)

	addr, err := domain.EvmAddressOf(accountTypes[0])
	require.NoError(t, err)
	require.Equal(t, "0x9858EfFD232B4033E47d90003D41EC34EcaEda94", addr.Eip55())

	addr, err = domain.EvmAddressOf(accountTypes[4])
	require.NoError(t, err)
	require.Equal(t, "0x2c7536E3605D9C16a7a3D7b1898e529396a65c23", addr.Eip55())

	addr, err = domain.EvmAddressOf(accountTypes[6])
	require.NoError(t, err)
	require.Equal(t, evmAddressEip55, addr.Eip55())

	_, err = domain.EvmAddressOf(accountTypes[7])
	require.ErrorIs(t, err, domain.ErrNoEvmAddress)
}

func TestEncryptDecryptAccountType(t *testing.T) {
	t.Parallel()

	passphrase := "backup passphrase"
	for _, accountType := range testAccountTypes(t)[:6] {
		crypto, err := domain.EncryptAccountType(accountType, passphrase)
		require.NoError(t, err)

		decrypted, err := domain.DecryptAccountType(*crypto, accountType.Abstract(), passphrase)
		require.NoError(t, err)
		require.True(t, domain.EqualAccountTypes(accountType, decrypted))
	}

	t.Run("wrong passphrase", func(t *testing.T) {
		mnemonic := domain.Mnemonic{Words: testWords, Bip39Compliant: true}
		crypto, err := domain.EncryptAccountType(mnemonic, passphrase)
		require.NoError(t, err)

		_, err = domain.DecryptAccountType(*crypto, domain.AbstractMnemonic, "wrong")
		require.ErrorIs(t, err, wallet.ErrInvalidMac)
	})

	t.Run("invalid content", func(t *testing.T) {
		crypto, err := wallet.Encrypt(wallet.EncryptOpts{
			PlainText:  []byte(strings.Repeat("z", 10)),
			Passphrase: passphrase,
		})
		require.NoError(t, err)

		_, err = domain.DecryptAccountType(*crypto, domain.AbstractEvmAddress, passphrase)
		require.ErrorIs(t, err, domain.ErrInvalidBackup)
	})
}
