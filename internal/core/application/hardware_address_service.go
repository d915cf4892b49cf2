package application

import (
	"strings"
	"sync"

	"github.com/mishabunte/walletcore/internal/core/domain"
	"github.com/mishabunte/walletcore/internal/core/ports"
)

// AddressState is the outcome of resolving the address typed by the user.
// Raw is the address itself, Domain the name service entry it was resolved
// from, if any.
type AddressState struct {
	Raw    string
	Domain string
	Err    error
}

func (s AddressState) resolved() bool {
	return s.Err == nil && strings.TrimSpace(s.Raw) != ""
}

// HardwareAddressState is either not ready or ready with the account type to
// be created.
type HardwareAddressState struct {
	Ready       bool
	AccountType domain.AccountType
	Domain      string
}

// HardwareEnabled tells whether an account can be created from the state.
func (s HardwareAddressState) HardwareEnabled() bool {
	return s.Ready
}

// HardwareAddressService turns a resolved address into a hardware account
// type. Every state change is published on ports.TopicHardwareState with
// the new HardwareAddressState as payload.
type HardwareAddressService struct {
	parse  func(raw string) (domain.AccountType, error)
	pubsub ports.PubSub

	state HardwareAddressState
	lock  *sync.RWMutex
}

func NewHardwareEvmAddressService(pubsub ports.PubSub) *HardwareAddressService {
	return newHardwareAddressService(pubsub, func(raw string) (domain.AccountType, error) {
		addr, err := domain.ParseEvmAddress(raw)
		if err != nil {
			return nil, err
		}
		return domain.EvmAddressHardware{Address: addr}, nil
	})
}

// NewHardwareTronAddressService resolves to TronAddressHardware so that the
// created account reports HardwareAccount() like its evm counterpart.
func NewHardwareTronAddressService(pubsub ports.PubSub) *HardwareAddressService {
	return newHardwareAddressService(pubsub, func(raw string) (domain.AccountType, error) {
		addr, err := domain.ParseTronAddress(raw)
		if err != nil {
			return nil, err
		}
		return domain.TronAddressHardware{Address: addr}, nil
	})
}

func newHardwareAddressService(
	pubsub ports.PubSub, parse func(string) (domain.AccountType, error),
) *HardwareAddressService {
	return &HardwareAddressService{
		parse:  parse,
		pubsub: pubsub,
		lock:   &sync.RWMutex{},
	}
}

func (s *HardwareAddressService) State() HardwareAddressState {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.state
}

// Sync updates the state from the given address resolution. Unresolved or
// unparsable addresses lead to the not ready state.
func (s *HardwareAddressService) Sync(addressState AddressState) {
	state := HardwareAddressState{}
	if addressState.resolved() {
		if accountType, err := s.parse(strings.TrimSpace(addressState.Raw)); err == nil {
			state = HardwareAddressState{
				Ready:       true,
				AccountType: accountType,
				Domain:      addressState.Domain,
			}
		}
	}

	s.lock.Lock()
	s.state = state
	s.lock.Unlock()

	if s.pubsub != nil {
		s.pubsub.Publish(ports.TopicHardwareState, state)
	}
}

func (s *HardwareAddressService) Resolve() (domain.AccountType, error) {
	state := s.State()
	if !state.Ready {
		return nil, ErrHardwareNotReady
	}
	return state.AccountType, nil
}

// HardwarePublicKeyService turns the extended public key typed by the user
// into a hardware account type.
type HardwarePublicKeyService struct {
	text string
	lock *sync.RWMutex
}

func NewHardwarePublicKeyService() *HardwarePublicKeyService {
	return &HardwarePublicKeyService{lock: &sync.RWMutex{}}
}

func (s *HardwarePublicKeyService) SetText(text string) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.text = strings.TrimSpace(text)
}

// HardwareEnabled is true as soon as some text was given, the key itself is
// validated by Resolve.
func (s *HardwarePublicKeyService) HardwareEnabled() bool {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.text != ""
}

func (s *HardwarePublicKeyService) Resolve() (domain.AccountType, error) {
	s.lock.RLock()
	text := s.text
	s.lock.RUnlock()

	if text == "" {
		return nil, ErrHardwareNotReady
	}

	key, err := domain.ParseExtendedKey(text)
	if err != nil {
		return nil, err
	}
	if key.IsPrivate() || key.DerivedType() != domain.DerivedTypeAccount {
		return nil, ErrInvalidHardwarePublicKey
	}
	return domain.HDExtendedKeyHardware{Key: key}, nil
}
