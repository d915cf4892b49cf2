package domain

import "strings"

const cexSeparator = "@"

// Exchange is a centralized exchange an account can be linked to.
type Exchange string

const (
	ExchangeBinance Exchange = "binance"
	ExchangeCoinzix Exchange = "coinzix"
)

var AllExchanges = []Exchange{ExchangeBinance, ExchangeCoinzix}

func ParseExchange(s string) (Exchange, error) {
	for _, e := range AllExchanges {
		if string(e) == s {
			return e, nil
		}
	}
	return "", ErrUnknownCex
}

func (e Exchange) Title() string {
	switch e {
	case ExchangeBinance:
		return "Binance"
	case ExchangeCoinzix:
		return "Coinzix"
	default:
		return string(e)
	}
}

func (e Exchange) WithdrawalAllowed() bool {
	switch e {
	case ExchangeBinance, ExchangeCoinzix:
		return true
	default:
		return false
	}
}

// CexAccount holds the api credentials of an exchange account. For binance
// Key is the api key, for coinzix it is the auth token.
type CexAccount struct {
	Exchange Exchange
	Key      string
	Secret   string
}

func NewCexAccount(exchange Exchange, key, secret string) (CexAccount, error) {
	if _, err := ParseExchange(string(exchange)); err != nil {
		return CexAccount{}, err
	}
	if key == "" || secret == "" ||
		strings.Contains(key, cexSeparator) || strings.Contains(secret, cexSeparator) {
		return CexAccount{}, ErrInvalidCexAccount
	}
	return CexAccount{exchange, key, secret}, nil
}

// UniqueID is the canonical <exchange>@<key>@<secret> string.
func (a CexAccount) UniqueID() string {
	return strings.Join([]string{string(a.Exchange), a.Key, a.Secret}, cexSeparator)
}

func DecodeCexAccount(uniqueID string) (CexAccount, error) {
	parts := strings.Split(uniqueID, cexSeparator)
	if len(parts) != 3 {
		return CexAccount{}, ErrInvalidCexAccount
	}
	exchange, err := ParseExchange(parts[0])
	if err != nil {
		return CexAccount{}, err
	}
	return NewCexAccount(exchange, parts[1], parts[2])
}
