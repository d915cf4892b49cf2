package domain

type AccountOrigin string

const (
	AccountOriginCreated  AccountOrigin = "created"
	AccountOriginRestored AccountOrigin = "restored"
)

func ParseAccountOrigin(s string) (AccountOrigin, error) {
	switch AccountOrigin(s) {
	case AccountOriginCreated, AccountOriginRestored:
		return AccountOrigin(s), nil
	default:
		return "", ErrInvalidAccountOrigin
	}
}

// Account is a wallet account as shown to the user. Level scopes accounts
// to the passcode they were created under.
type Account struct {
	ID           string
	Level        int
	Name         string
	Type         AccountType
	Origin       AccountOrigin
	BackedUp     bool
	FileBackedUp bool
}

// WatchAccount is true for accounts that can only observe balances.
func (a Account) WatchAccount() bool {
	switch t := a.Type.(type) {
	case EvmAddress, TronAddress:
		return true
	case HDExtendedKey:
		return t.Key != nil && !t.Key.IsPrivate()
	default:
		return false
	}
}

// HardwareAccount is true for accounts whose keys live on a hardware device.
func (a Account) HardwareAccount() bool {
	switch a.Type.(type) {
	case EvmAddressHardware, TronAddressHardware, HDExtendedKeyHardware:
		return true
	default:
		return false
	}
}

// IsCexAccount is true for accounts linked to a centralized exchange.
func (a Account) IsCexAccount() bool {
	_, ok := a.Type.(Cex)
	return ok
}

// Exchange returns the exchange of a cex account.
func (a Account) Exchange() (Exchange, bool) {
	if t, ok := a.Type.(Cex); ok {
		return t.Account.Exchange, true
	}
	return "", false
}

func (a Account) Equal(other Account) bool {
	return a.ID == other.ID
}
