package domain

import "errors"

var (
	// ErrInvalidUniqueID is returned when the canonical bytes of an account
	// type cannot be decoded for the given variant.
	ErrInvalidUniqueID = errors.New("invalid account type unique id")
	// ErrUnknownAccountTypeAbstract ...
	ErrUnknownAccountTypeAbstract = errors.New("unknown account type abstract")
	// ErrInvalidBackup is returned when a backup decrypts successfully but its
	// content is not a valid account type.
	ErrInvalidBackup = errors.New("invalid backup")

	// ErrInvalidEvmAddress ...
	ErrInvalidEvmAddress = errors.New("invalid evm address")
	// ErrInvalidEvmAddressChecksum is returned for mixed-case addresses not
	// matching their EIP-55 checksum
	ErrInvalidEvmAddressChecksum = errors.New("invalid evm address checksum")
	// ErrInvalidTronAddress ...
	ErrInvalidTronAddress = errors.New("invalid tron address")
	// ErrInvalidPrivateKey ...
	ErrInvalidPrivateKey = errors.New("invalid private key")
	// ErrNoEvmAddress is returned for account types that neither control nor
	// watch an evm address.
	ErrNoEvmAddress = errors.New("account type has no evm address")
	// ErrSigningNotSupported is returned for account types that do not hold
	// an evm signing key.
	ErrSigningNotSupported = errors.New("account type cannot sign messages")

	// ErrInvalidExtendedKey ...
	ErrInvalidExtendedKey = errors.New("invalid extended key")
	// ErrUnsupportedExtendedKeyVersion ...
	ErrUnsupportedExtendedKeyVersion = errors.New("unsupported extended key version")

	// ErrUnknownCex ...
	ErrUnknownCex = errors.New("unknown cex")
	// ErrInvalidCexAccount ...
	ErrInvalidCexAccount = errors.New("invalid cex account")

	// ErrUnsupportedEvmBlockchain is returned when an operation that requires
	// an EVM blockchain is invoked with any other blockchain type.
	ErrUnsupportedEvmBlockchain = errors.New("non-supported evm blockchain")
	// ErrInvalidSyncSourceURL is returned for urls that cannot be parsed or
	// whose scheme is not one of http, https, ws, wss.
	ErrInvalidSyncSourceURL = errors.New("invalid sync source url")
	// ErrInvalidAccountOrigin ...
	ErrInvalidAccountOrigin = errors.New("invalid account origin")
	// ErrAccountNotFound ...
	ErrAccountNotFound = errors.New("account not found")
	// ErrInvalidAccountName ...
	ErrInvalidAccountName = errors.New("account name must not be empty")
)
