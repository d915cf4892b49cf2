package wallet

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/scrypt"
)

const (
	CipherAes128Ctr = "aes-128-ctr"
	KdfScrypt       = "scrypt"

	// scrypt parameters, same as the "light" keystore profile
	DefaultScryptN = 1 << 14
	DefaultScryptR = 8
	DefaultScryptP = 1
	scryptDkLen    = 32
	saltLen        = 32
)

type CipherParams struct {
	IV string `json:"iv"`
}

type KdfParams struct {
	DkLen int    `json:"dklen"`
	N     int    `json:"n"`
	P     int    `json:"p"`
	R     int    `json:"r"`
	Salt  string `json:"salt"`
}

func (p KdfParams) validate() error {
	if p.DkLen != scryptDkLen || p.N <= 1 || p.N&(p.N-1) != 0 ||
		p.R <= 0 || p.P <= 0 {
		return ErrInvalidKdfParams
	}
	if _, err := hex.DecodeString(p.Salt); err != nil {
		return ErrInvalidKdfParams
	}
	return nil
}

// BackupCrypto is the keystore-like envelope of an encrypted secret, stored
// in backup files as JSON.
type BackupCrypto struct {
	Cipher       string       `json:"cipher"`
	CipherParams CipherParams `json:"cipherparams"`
	CipherText   string       `json:"ciphertext"`
	Kdf          string       `json:"kdf"`
	KdfParams    KdfParams    `json:"kdfparams"`
	Mac          string       `json:"mac"`
}

// EncryptOpts is the struct given to Encrypt method
type EncryptOpts struct {
	PlainText  []byte
	Passphrase string
	// ScryptN defaults to DefaultScryptN.
	ScryptN int
}

func (o EncryptOpts) validate() error {
	if len(o.PlainText) <= 0 {
		return ErrNullPlainText
	}
	if len(o.Passphrase) <= 0 {
		return ErrNullPassphrase
	}
	if o.ScryptN < 0 || (o.ScryptN > 0 && o.ScryptN&(o.ScryptN-1) != 0) {
		return ErrInvalidKdfParams
	}
	return nil
}

// Encrypt encrypts (with AES-128-CTR) a plaintext with a key derived from the
// passphrase with scrypt, and authenticates the result with a keccak256 MAC.
func Encrypt(opts EncryptOpts) (*BackupCrypto, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	n := opts.ScryptN
	if n == 0 {
		n = DefaultScryptN
	}

	salt, err := randomBytes(saltLen)
	if err != nil {
		return nil, err
	}
	iv, err := randomBytes(aes.BlockSize)
	if err != nil {
		return nil, err
	}

	kdfParams := KdfParams{
		DkLen: scryptDkLen,
		N:     n,
		P:     DefaultScryptP,
		R:     DefaultScryptR,
		Salt:  hex.EncodeToString(salt),
	}
	derivedKey, err := deriveKey([]byte(opts.Passphrase), salt, kdfParams)
	if err != nil {
		return nil, err
	}

	cipherText, err := aesCTRXOR(derivedKey[:16], opts.PlainText, iv)
	if err != nil {
		return nil, err
	}

	return &BackupCrypto{
		Cipher:       CipherAes128Ctr,
		CipherParams: CipherParams{IV: hex.EncodeToString(iv)},
		CipherText:   hex.EncodeToString(cipherText),
		Kdf:          KdfScrypt,
		KdfParams:    kdfParams,
		Mac:          hex.EncodeToString(mac(derivedKey, cipherText)),
	}, nil
}

// DecryptOpts is the struct given to Decrypt method
type DecryptOpts struct {
	Crypto     BackupCrypto
	Passphrase string
}

func (o DecryptOpts) validate() error {
	if len(o.Crypto.CipherText) <= 0 {
		return ErrNullCypherText
	}
	if _, err := hex.DecodeString(o.Crypto.CipherText); err != nil {
		return ErrInvalidCypherText
	}
	if len(o.Passphrase) <= 0 {
		return ErrNullPassphrase
	}
	if o.Crypto.Cipher != CipherAes128Ctr {
		return ErrUnsupportedCipher
	}
	if o.Crypto.Kdf != KdfScrypt {
		return ErrUnsupportedKdf
	}
	return o.Crypto.KdfParams.validate()
}

// Decrypt verifies the MAC of the given crypto and returns the decrypted
// plaintext.
func Decrypt(opts DecryptOpts) ([]byte, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	c := opts.Crypto

	cipherText, _ := hex.DecodeString(c.CipherText)
	salt, _ := hex.DecodeString(c.KdfParams.Salt)
	iv, err := hex.DecodeString(c.CipherParams.IV)
	if err != nil || len(iv) != aes.BlockSize {
		return nil, fmt.Errorf("%w: iv", ErrInvalidCypherText)
	}
	expectedMac, err := hex.DecodeString(c.Mac)
	if err != nil {
		return nil, ErrInvalidMac
	}

	derivedKey, err := deriveKey([]byte(opts.Passphrase), salt, c.KdfParams)
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(mac(derivedKey, cipherText), expectedMac) {
		return nil, ErrInvalidMac
	}

	return aesCTRXOR(derivedKey[:16], cipherText, iv)
}

func deriveKey(passphrase, salt []byte, params KdfParams) ([]byte, error) {
	return scrypt.Key(passphrase, salt, params.N, params.R, params.P, params.DkLen)
}

func mac(derivedKey, cipherText []byte) []byte {
	return keccak256(derivedKey[16:32], cipherText)
}

func aesCTRXOR(key, in, iv []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(in))
	cipher.NewCTR(block, iv).XORKeyStream(out, in)
	return out, nil
}

func randomBytes(size int) ([]byte, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	return b, nil
}
