package application

import (
	"errors"
	"fmt"

	"github.com/mishabunte/walletcore/pkg/stats"
)

var (
	// ErrPersistence is returned when a storage write fails. Change
	// notifications are not sent in this case.
	ErrPersistence = errors.New("failed to persist changes")
	// ErrHardwareNotReady is returned when resolving a hardware account type
	// before a valid address or key was provided.
	ErrHardwareNotReady = errors.New("hardware account is not ready")
	// ErrInvalidHardwarePublicKey is returned when the extended key given for a
	// hardware account is private or not derived at account level.
	ErrInvalidHardwarePublicKey = errors.New(
		"hardware public key must be an account level extended public key",
	)
	// ErrInvalidAccountType ...
	ErrInvalidAccountType = errors.New("invalid account type")
)

func persistenceError(repository string, err error) error {
	stats.PersistenceFailures.WithLabelValues(repository).Inc()
	return fmt.Errorf("%w: %w", ErrPersistence, err)
}
