package wallet

import (
	"github.com/btcsuite/btcd/btcec/v2"
)

const evmPrivateKeyLen = 32

// ValidateEvmPrivateKey checks that key is a valid secp256k1 scalar.
func ValidateEvmPrivateKey(key []byte) error {
	if len(key) != evmPrivateKeyLen {
		return ErrInvalidPrivateKey
	}
	var scalar btcec.ModNScalar
	if overflow := scalar.SetByteSlice(key); overflow || scalar.IsZero() {
		return ErrInvalidPrivateKey
	}
	return nil
}

// EvmPrivateKeyOpts is the struct given to EvmPrivateKeyFromSeed method
type EvmPrivateKeyOpts struct {
	Seed []byte
	// Path defaults to DefaultEvmDerivationPath.
	Path DerivationPath
}

func (o EvmPrivateKeyOpts) validate() error {
	if len(o.Seed) <= 0 {
		return ErrNullSeed
	}
	return nil
}

// EvmPrivateKeyFromSeed derives the 32 byte evm private key at the given path.
func EvmPrivateKeyFromSeed(opts EvmPrivateKeyOpts) ([]byte, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	path := opts.Path
	if len(path) <= 0 {
		path = DefaultEvmDerivationPath
	}

	key, err := deriveHDKey(opts.Seed, path)
	if err != nil {
		return nil, err
	}
	privKey, err := key.ECPrivKey()
	if err != nil {
		return nil, err
	}
	return privKey.Serialize(), nil
}

// EvmAddressFromPrivateKey returns the 20 byte address of the given key, ie.
// the last 20 bytes of the keccak256 of the uncompressed public key.
func EvmAddressFromPrivateKey(key []byte) ([]byte, error) {
	if err := ValidateEvmPrivateKey(key); err != nil {
		return nil, err
	}
	_, pubKey := btcec.PrivKeyFromBytes(key)
	// strip the 0x04 prefix
	hash := keccak256(pubKey.SerializeUncompressed()[1:])
	return hash[12:], nil
}
