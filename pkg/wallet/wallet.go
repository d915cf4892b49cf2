// Package wallet holds the key material primitives of the wallet: backup
// encryption, bip39 seeds and evm key derivation.
package wallet

import (
	"errors"
)

var (
	// ErrNullPassphrase ...
	ErrNullPassphrase = errors.New("passphrase must not be null")
	// ErrNullPlainText ...
	ErrNullPlainText = errors.New("text to encrypt must not be null")
	// ErrNullCypherText ...
	ErrNullCypherText = errors.New("cypher to decrypt must not be null")
	// ErrNullMnemonic ...
	ErrNullMnemonic = errors.New("mnemonic must not be null")
	// ErrNullSeed ...
	ErrNullSeed = errors.New("seed must not be null")
	// ErrNullMessage ...
	ErrNullMessage = errors.New("message to sign must not be null")
	// ErrNullDerivationPath ...
	ErrNullDerivationPath = errors.New("derivation path must not be null")

	// ErrInvalidMnemonic ...
	ErrInvalidMnemonic = errors.New("mnemonic is invalid")
	// ErrInvalidEntropySize ...
	ErrInvalidEntropySize = errors.New(
		"entropy size must be a multiple of 32 in the range [128,256]",
	)
	// ErrInvalidCypherText ...
	ErrInvalidCypherText = errors.New("cypher must be in hex format")
	// ErrInvalidDerivationPath ...
	ErrInvalidDerivationPath = errors.New("invalid derivation path")
	// ErrMalformedDerivationPath ...
	ErrMalformedDerivationPath = errors.New(
		"path must not start or end with a '/' and " +
			"can optionally start with 'm/' for absolute paths",
	)
	// ErrInvalidPrivateKey ...
	ErrInvalidPrivateKey = errors.New(
		"private key must be a 32 byte non-zero scalar lower than the curve order",
	)

	// ErrUnsupportedCipher is returned when decrypting a backup made with a
	// cipher other than aes-128-ctr.
	ErrUnsupportedCipher = errors.New("unsupported cipher")
	// ErrUnsupportedKdf is returned when decrypting a backup whose key was
	// derived with anything but scrypt.
	ErrUnsupportedKdf = errors.New("unsupported kdf")
	// ErrInvalidKdfParams ...
	ErrInvalidKdfParams = errors.New("invalid kdf params")
	// ErrInvalidMac is returned when the passphrase is wrong or the backup
	// has been tampered with.
	ErrInvalidMac = errors.New("could not decrypt backup with given passphrase")
)
