package wallet

import "strings"

type NewMnemonicOpts struct {
	EntropySize int
}

func (o NewMnemonicOpts) validate() error {
	if o.EntropySize > 0 {
		if o.EntropySize < 128 || o.EntropySize > 256 || o.EntropySize%32 != 0 {
			return ErrInvalidEntropySize
		}
	}
	if o.EntropySize < 0 {
		return ErrInvalidEntropySize
	}
	return nil
}

// NewMnemonic returns a new mnemonic as a list of words
func NewMnemonic(opts NewMnemonicOpts) ([]string, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if opts.EntropySize == 0 {
		opts.EntropySize = 128
	}

	return generateMnemonic(opts.EntropySize)
}

// MnemonicSeedOpts is the struct given to MnemonicSeed method
type MnemonicSeedOpts struct {
	Mnemonic   []string
	Passphrase string
	// Bip39Compliant phrases are checked against the word list and checksum
	// before deriving the seed.
	Bip39Compliant bool
}

func (o MnemonicSeedOpts) validate() error {
	if len(o.Mnemonic) <= 0 {
		return ErrNullMnemonic
	}
	if o.Bip39Compliant && !isMnemonicValid(o.Mnemonic) {
		return ErrInvalidMnemonic
	}
	return nil
}

// MnemonicSeed returns the 64 byte bip39 seed of the given mnemonic.
func MnemonicSeed(opts MnemonicSeedOpts) ([]byte, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	return generateSeedFromMnemonic(opts.Mnemonic, opts.Passphrase), nil
}

// IsMnemonicValid tells whether the words form a bip39 compliant phrase.
func IsMnemonicValid(mnemonic []string) bool {
	return isMnemonicValid(mnemonic)
}

func normalizeMnemonic(mnemonic []string) string {
	return strings.Join(mnemonic, " ")
}
