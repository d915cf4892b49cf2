package wallet

import (
	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/crypto"
)

// SignMessageOpts is the struct given to SignMessage method
type SignMessageOpts struct {
	PrivateKey []byte
	Message    []byte
	// Legacy signs the keccak256 of the bare message instead of the EIP-191
	// personal message hash.
	Legacy bool
}

func (o SignMessageOpts) validate() error {
	if err := ValidateEvmPrivateKey(o.PrivateKey); err != nil {
		return err
	}
	if o.Message == nil {
		return ErrNullMessage
	}
	return nil
}

// SignMessage returns the 65 bytes [R || S || V] signature of the message,
// with V being 27 or 28.
func SignMessage(opts SignMessageOpts) ([]byte, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	key, err := crypto.ToECDSA(opts.PrivateKey)
	if err != nil {
		return nil, ErrInvalidPrivateKey
	}

	hash := accounts.TextHash(opts.Message)
	if opts.Legacy {
		hash = crypto.Keccak256(opts.Message)
	}

	sig, err := crypto.Sign(hash, key)
	if err != nil {
		return nil, err
	}
	sig[crypto.RecoveryIDOffset] += 27
	return sig, nil
}
