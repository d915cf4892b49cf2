package domain

import (
	"fmt"

	"github.com/mishabunte/walletcore/pkg/wallet"
)

func (t Mnemonic) Description() string {
	if t.Salt == "" {
		return fmt.Sprintf("%d words", len(t.Words))
	}
	return fmt.Sprintf("%d words with passphrase", len(t.Words))
}

func (EvmPrivateKey) Description() string      { return "EVM Private Key" }
func (EvmAddress) Description() string         { return "EVM Address" }
func (EvmAddressHardware) Description() string { return "EVM Address Hardware" }
func (TronAddress) Description() string        { return "TRON Address" }
func (TronAddressHardware) Description() string {
	return "TRON Address Hardware"
}

func (t HDExtendedKey) Description() string {
	if t.Key == nil {
		return ""
	}
	switch {
	case t.Key.IsPrivate() && t.Key.DerivedType() == DerivedTypeMaster:
		return "BIP32 Root Key"
	case t.Key.IsPrivate() && t.Key.DerivedType() == DerivedTypeAccount:
		return "Account xPrivKey"
	case !t.Key.IsPrivate() && t.Key.DerivedType() == DerivedTypeAccount:
		return "Account xPubKey"
	default:
		return ""
	}
}

func (t HDExtendedKeyHardware) Description() string {
	if t.Key == nil || t.Key.IsPrivate() ||
		t.Key.DerivedType() != DerivedTypeAccount {
		return ""
	}
	return "Account xPubKey Hardware"
}

func (t Cex) Description() string {
	return t.Account.Exchange.Title()
}

// DetailedDescription shows the shortened address for address based types
// and falls back to Description otherwise.
func DetailedDescription(t AccountType) string {
	switch v := t.(type) {
	case EvmAddress:
		return shortened(v.Address.Eip55())
	case EvmAddressHardware:
		return shortened(v.Address.Eip55())
	case TronAddress:
		return shortened(v.Address.Base58())
	case TronAddressHardware:
		return shortened(v.Address.Base58())
	case nil:
		return ""
	default:
		return t.Description()
	}
}

func CanAddTokens(t AccountType) bool {
	switch t.(type) {
	case Mnemonic, EvmPrivateKey, EvmAddressHardware:
		return true
	default:
		return false
	}
}

func SupportsWalletConnect(t AccountType) bool {
	return CanAddTokens(t)
}

func SupportsNft(t AccountType) bool {
	switch t.(type) {
	case Cex, nil:
		return false
	default:
		return true
	}
}

func WithdrawalAllowed(t AccountType) bool {
	if cex, ok := t.(Cex); ok {
		return cex.Account.Exchange.WithdrawalAllowed()
	}
	return t != nil
}

// evmTokenBlockchainTypes are the evm chains whose native and eip20 tokens
// mnemonic and evm key accounts can hold. Base and zkSync are not part of it.
var evmTokenBlockchainTypes = []BlockchainType{
	Ethereum, BinanceSmartChain, Polygon, Avalanche, Gnosis, Fantom,
	ArbitrumOne, Optimism,
}

// SupportsToken tells whether the account type can hold the given token.
func SupportsToken(t AccountType, token Token) bool {
	chain, kind := token.BlockchainType, token.Type.Kind

	switch v := t.(type) {
	case Mnemonic:
		switch chain {
		case Bitcoin, Litecoin:
			return kind == TokenKindDerived
		case BitcoinCash:
			return kind == TokenKindAddressType
		case ECash, Dash, Zcash:
			return kind == TokenKindNative
		case BinanceChain:
			return kind == TokenKindNative || kind == TokenKindBep2
		case Tron:
			return kind == TokenKindNative || kind == TokenKindEip20
		default:
			return contains(evmTokenBlockchainTypes, chain) &&
				(kind == TokenKindNative || kind == TokenKindEip20)
		}
	case HDExtendedKey:
		return extendedKeySupportsToken(v.Key, token)
	case HDExtendedKeyHardware:
		return extendedKeySupportsToken(v.Key, token)
	case EvmPrivateKey, EvmAddress, EvmAddressHardware:
		return contains(evmTokenBlockchainTypes, chain) &&
			(kind == TokenKindNative || kind == TokenKindEip20)
	case TronAddress, TronAddressHardware:
		return chain == Tron && (kind == TokenKindNative || kind == TokenKindEip20)
	default:
		return false
	}
}

func extendedKeySupportsToken(key *ExtendedKey, token Token) bool {
	if key == nil {
		return false
	}

	switch token.BlockchainType {
	case Bitcoin, Litecoin:
		derivation, ok := token.Type.MnemonicDerivation()
		if !ok || !key.HasDerivation(derivation) {
			return false
		}
		if token.BlockchainType == Bitcoin {
			return key.HasCoinType(CoinTypeBitcoin)
		}
		return key.HasCoinType(CoinTypeLitecoin)
	case BitcoinCash, ECash, Dash:
		return key.HasPurpose(PurposeBip44)
	default:
		return false
	}
}

// MnemonicSeed returns the bip39 seed of the phrase. Non compliant phrases
// skip word list and checksum validation.
func (t Mnemonic) MnemonicSeed() ([]byte, error) {
	return wallet.MnemonicSeed(wallet.MnemonicSeedOpts{
		Mnemonic:       t.Words,
		Passphrase:     t.Salt,
		Bip39Compliant: t.Bip39Compliant,
	})
}

// EvmAddressOf returns the evm address controlled or watched by the account
// type. Mnemonics derive it at m/44'/60'/0'/0/0.
func EvmAddressOf(t AccountType) (EvmAddr, error) {
	return EvmAddressAt(t, nil)
}

// EvmAddressAt is like EvmAddressOf but lets mnemonics derive the address at
// the given path. Other account types ignore it.
func EvmAddressAt(t AccountType, path wallet.DerivationPath) (EvmAddr, error) {
	switch v := t.(type) {
	case Mnemonic, EvmPrivateKey:
		key, err := EvmPrivateKeyOf(v, path)
		if err != nil {
			return EvmAddr{}, err
		}
		addr, err := wallet.EvmAddressFromPrivateKey(key)
		if err != nil {
			return EvmAddr{}, err
		}
		return NewEvmAddressFromBytes(addr), nil
	case EvmAddress:
		return v.Address, nil
	case EvmAddressHardware:
		return v.Address, nil
	default:
		return EvmAddr{}, ErrNoEvmAddress
	}
}

// EvmPrivateKeyOf returns the evm signing key of mnemonic and private key
// account types. Mnemonics derive it at path, or m/44'/60'/0'/0/0 if empty.
func EvmPrivateKeyOf(t AccountType, path wallet.DerivationPath) ([]byte, error) {
	switch v := t.(type) {
	case Mnemonic:
		seed, err := v.MnemonicSeed()
		if err != nil {
			return nil, err
		}
		return wallet.EvmPrivateKeyFromSeed(wallet.EvmPrivateKeyOpts{
			Seed: seed,
			Path: path,
		})
	case EvmPrivateKey:
		if err := wallet.ValidateEvmPrivateKey(v.Data); err != nil {
			return nil, ErrInvalidPrivateKey
		}
		return append([]byte{}, v.Data...), nil
	default:
		return nil, ErrSigningNotSupported
	}
}

// SignMessage signs the message with the evm key of the account type, see
// EvmPrivateKeyOf. Legacy signatures skip the EIP-191 prefix.
func SignMessage(t AccountType, message []byte, legacy bool) ([]byte, error) {
	return SignMessageAt(t, nil, message, legacy)
}

func SignMessageAt(
	t AccountType, path wallet.DerivationPath, message []byte, legacy bool,
) ([]byte, error) {
	key, err := EvmPrivateKeyOf(t, path)
	if err != nil {
		return nil, err
	}
	return wallet.SignMessage(wallet.SignMessageOpts{
		PrivateKey: key,
		Message:    message,
		Legacy:     legacy,
	})
}

// EncryptAccountType encrypts the canonical bytes of the account type.
func EncryptAccountType(
	t AccountType, passphrase string,
) (*wallet.BackupCrypto, error) {
	if t == nil {
		return nil, ErrUnknownAccountTypeAbstract
	}
	return wallet.Encrypt(wallet.EncryptOpts{
		PlainText:  t.UniqueID(false),
		Passphrase: passphrase,
	})
}

// DecryptAccountType reverses EncryptAccountType. Decryption errors are
// returned as is, while undecodable plaintext is reported as ErrInvalidBackup.
func DecryptAccountType(
	crypto wallet.BackupCrypto, abstract AccountTypeAbstract, passphrase string,
) (AccountType, error) {
	data, err := wallet.Decrypt(wallet.DecryptOpts{
		Crypto:     crypto,
		Passphrase: passphrase,
	})
	if err != nil {
		return nil, err
	}

	accountType, err := DecodeAccountType(data, abstract)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}
	return accountType, nil
}
