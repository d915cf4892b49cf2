package wallet

import (
	"math"
	"strings"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/vulpemventures/go-bip39"
	"golang.org/x/crypto/sha3"
)

const (
	// MaxHardenedValue is the max value for hardened indexes of BIP32
	// derivation paths
	MaxHardenedValue = math.MaxUint32 - hdkeychain.HardenedKeyStart
)

func generateMnemonic(entropySize int) ([]string, error) {
	entropy, err := bip39.NewEntropy(entropySize)
	if err != nil {
		return nil, err
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return nil, err
	}
	return strings.Split(mnemonic, " "), nil
}

// The bip39 seed is a plain PBKDF2 of the phrase, hence it can be computed
// for non compliant phrases too.
func generateSeedFromMnemonic(mnemonic []string, passphrase string) []byte {
	return bip39.NewSeed(normalizeMnemonic(mnemonic), passphrase)
}

func isMnemonicValid(mnemonic []string) bool {
	return bip39.IsMnemonicValid(normalizeMnemonic(mnemonic))
}

func deriveHDKey(seed []byte, path DerivationPath) (*hdkeychain.ExtendedKey, error) {
	hdNode, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, err
	}
	for _, step := range path {
		hdNode, err = hdNode.Derive(step)
		if err != nil {
			return nil, err
		}
	}
	return hdNode, nil
}

func keccak256(data ...[]byte) []byte {
	hash := sha3.NewLegacyKeccak256()
	for _, d := range data {
		hash.Write(d)
	}
	return hash.Sum(nil)
}
