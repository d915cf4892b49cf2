package domain_test

import (
	"testing"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/mishabunte/walletcore/internal/core/domain"
	"github.com/stretchr/testify/require"
)

func TestParseExtendedKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		key         string
		private     bool
		derivedType domain.DerivedType
		purposes    []domain.Purpose
		coinTypes   []domain.ExtendedKeyCoinType
	}{
		{
			name:        "master_xprv",
			key:         masterXprv,
			private:     true,
			derivedType: domain.DerivedTypeMaster,
			purposes:    []domain.Purpose{domain.PurposeBip44, domain.PurposeBip86},
			coinTypes:   []domain.ExtendedKeyCoinType{domain.CoinTypeBitcoin, domain.CoinTypeLitecoin},
		},
		{
			name:        "master_xpub",
			key:         masterXpub,
			derivedType: domain.DerivedTypeMaster,
			purposes:    []domain.Purpose{domain.PurposeBip44, domain.PurposeBip86},
			coinTypes:   []domain.ExtendedKeyCoinType{domain.CoinTypeBitcoin, domain.CoinTypeLitecoin},
		},
		{
			name:        "account_zpub",
			key:         withVersion(t, accountKey(t, true), zpubVersion),
			derivedType: domain.DerivedTypeAccount,
			purposes:    []domain.Purpose{domain.PurposeBip84},
			coinTypes:   []domain.ExtendedKeyCoinType{domain.CoinTypeBitcoin, domain.CoinTypeLitecoin},
		},
		{
			name:        "account_zprv",
			key:         withVersion(t, accountKey(t, false), zprvVersion),
			private:     true,
			derivedType: domain.DerivedTypeAccount,
			purposes:    []domain.Purpose{domain.PurposeBip84},
			coinTypes:   []domain.ExtendedKeyCoinType{domain.CoinTypeBitcoin, domain.CoinTypeLitecoin},
		},
		{
			name:        "account_ltub",
			key:         withVersion(t, accountKey(t, true), ltubVersion),
			derivedType: domain.DerivedTypeAccount,
			purposes:    []domain.Purpose{domain.PurposeBip44},
			coinTypes:   []domain.ExtendedKeyCoinType{domain.CoinTypeLitecoin},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			key, err := domain.ParseExtendedKey(tt.key)
			require.NoError(t, err)
			require.Equal(t, tt.private, key.IsPrivate())
			require.Equal(t, tt.derivedType, key.DerivedType())
			require.Equal(t, tt.purposes, key.Purposes())
			require.Equal(t, tt.coinTypes, key.CoinTypes())
			require.Equal(t, tt.key, key.String())
			require.Len(t, key.Serialized(), 82)
			require.Equal(t, base58.Decode(tt.key), key.Serialized())
		})
	}
}

func TestFailingParseExtendedKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		key           string
		expectedError error
	}{
		{"empty", "", domain.ErrInvalidExtendedKey},
		{"truncated", masterXpub[:100], domain.ErrInvalidExtendedKey},
		{"unknown_version", withVersion(t, masterXpub, 0x0123abcd), domain.ErrUnsupportedExtendedKeyVersion},
		{"private_version_public_data", withVersion(t, masterXpub, zprvVersion), domain.ErrInvalidExtendedKey},
		{"public_version_private_data", withVersion(t, masterXprv, zpubVersion), domain.ErrInvalidExtendedKey},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.ParseExtendedKey(tt.key)
			require.ErrorIs(t, err, tt.expectedError)
		})
	}
}
