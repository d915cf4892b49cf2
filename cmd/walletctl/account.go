package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/mishabunte/walletcore/internal/core/application"
	"github.com/mishabunte/walletcore/internal/core/domain"
	"github.com/mishabunte/walletcore/pkg/wallet"
	"github.com/urfave/cli/v2"
)

var (
	idFlag = &cli.StringFlag{
		Name:     "id",
		Usage:    "the account id",
		Required: true,
	}
	pathFlag = &cli.StringFlag{
		Name:  "path",
		Usage: "the bip32 derivation path of mnemonic accounts, ie. m/44'/60'/0'/0/1",
	}
	nameFlag = &cli.StringFlag{
		Name:  "name",
		Usage: "the account name, a default one is generated if not set",
	}

	account = cli.Command{
		Name:  "account",
		Usage: "manage the wallet accounts of the current level",
		Subcommands: []*cli.Command{
			accountListCmd, accountAddMnemonicCmd, accountAddWatchCmd,
			accountAddHardwareCmd, accountAddCexCmd, accountRemoveCmd,
			accountExportCmd, accountAddressCmd, accountSignCmd,
		},
	}

	accountListCmd = &cli.Command{
		Name:   "list",
		Usage:  "list all accounts",
		Action: accountListAction,
	}
	accountAddMnemonicCmd = &cli.Command{
		Name:  "add-mnemonic",
		Usage: "create a new mnemonic account or restore an existing one",
		Flags: []cli.Flag{
			nameFlag,
			&cli.StringFlag{
				Name:  "words",
				Usage: "the space separated words to restore, a new mnemonic is generated if not set",
			},
			&cli.StringFlag{
				Name:  "passphrase",
				Usage: "optional bip39 passphrase",
			},
			&cli.IntFlag{
				Name:  "entropy",
				Usage: "the entropy size in bits of a generated mnemonic",
				Value: 128,
			},
		},
		Action: accountAddMnemonicAction,
	}
	accountAddWatchCmd = &cli.Command{
		Name:  "add-watch",
		Usage: "watch an evm or tron address",
		Flags: []cli.Flag{
			nameFlag,
			&cli.StringFlag{
				Name:     "address",
				Usage:    "the evm (0x...) or tron (T...) address",
				Required: true,
			},
		},
		Action: accountAddWatchAction,
	}
	accountAddHardwareCmd = &cli.Command{
		Name:  "add-hardware",
		Usage: "add an account whose keys live on a hardware device",
		Flags: []cli.Flag{
			nameFlag,
			&cli.StringFlag{
				Name:  "evm-address",
				Usage: "the evm address exported by the device",
			},
			&cli.StringFlag{
				Name:  "tron-address",
				Usage: "the tron address exported by the device",
			},
			&cli.StringFlag{
				Name:  "xpub",
				Usage: "the account extended public key exported by the device",
			},
			&cli.StringFlag{
				Name:  "domain",
				Usage: "the name service domain the address was resolved from",
			},
		},
		Action: accountAddHardwareAction,
	}
	accountAddCexCmd = &cli.Command{
		Name:  "add-cex",
		Usage: "link a centralized exchange account",
		Flags: []cli.Flag{
			nameFlag,
			&cli.StringFlag{
				Name:     "exchange",
				Usage:    "either binance or coinzix",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "key",
				Usage:    "the api key or auth token",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "secret",
				Usage:    "the api secret",
				Required: true,
			},
		},
		Action: accountAddCexAction,
	}
	accountRemoveCmd = &cli.Command{
		Name:   "remove",
		Usage:  "remove an account",
		Flags:  []cli.Flag{idFlag},
		Action: accountRemoveAction,
	}
	accountExportCmd = &cli.Command{
		Name:   "export",
		Usage:  "export the encrypted credential of an account",
		Flags:  []cli.Flag{idFlag, passphraseFlag},
		Action: accountExportAction,
	}
	accountAddressCmd = &cli.Command{
		Name:   "address",
		Usage:  "show the evm address of an account",
		Flags:  []cli.Flag{idFlag, pathFlag},
		Action: accountAddressAction,
	}
	accountSignCmd = &cli.Command{
		Name:  "sign",
		Usage: "sign a message with the evm key of a mnemonic or private key account",
		Flags: []cli.Flag{
			idFlag, pathFlag,
			&cli.StringFlag{
				Name:     "message",
				Usage:    "the message to sign",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "hex",
				Usage: "the message is hex encoded",
			},
			&cli.BoolFlag{
				Name:  "legacy",
				Usage: "sign the bare keccak256 of the message, without the EIP-191 prefix",
			},
		},
		Action: accountSignAction,
	}
)

type accountInfo struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Description string   `json:"description"`
	Origin      string   `json:"origin"`
	BackedUp    bool     `json:"backed_up"`
	Watch       bool     `json:"watch"`
	Hardware    bool     `json:"hardware"`
	EvmAddress  string   `json:"evm_address,omitempty"`
	Chains      []string `json:"chains"`
}

type accountExport struct {
	ID     string               `json:"id"`
	Type   string               `json:"type"`
	Crypto *wallet.BackupCrypto `json:"crypto"`
}

func accountListAction(ctx *cli.Context) error {
	svc, err := getServices(ctx)
	if err != nil {
		return err
	}

	accounts, err := svc.accounts.Accounts(ctx.Context)
	if err != nil {
		return err
	}

	list := make([]accountInfo, 0, len(accounts))
	for _, a := range accounts {
		list = append(list, newAccountInfo(a))
	}
	return printJSON(ctx, list)
}

func accountAddMnemonicAction(ctx *cli.Context) error {
	svc, err := getServices(ctx)
	if err != nil {
		return err
	}

	origin := domain.AccountOriginRestored
	words := strings.Fields(ctx.String("words"))
	if len(words) <= 0 {
		words, err = wallet.NewMnemonic(wallet.NewMnemonicOpts{
			EntropySize: ctx.Int("entropy"),
		})
		if err != nil {
			return err
		}
		origin = domain.AccountOriginCreated
	}

	accountType := domain.Mnemonic{
		Words:          words,
		Salt:           ctx.String("passphrase"),
		Bip39Compliant: wallet.IsMnemonicValid(words),
	}
	name := accountName(ctx, svc.factory.NextAccountName(ctx.Context))
	a := svc.factory.Account(
		accountType, origin, origin == domain.AccountOriginRestored, false, name,
	)
	if err := svc.accounts.Save(ctx.Context, a); err != nil {
		return err
	}

	info := newAccountInfo(a)
	if origin == domain.AccountOriginCreated {
		return printJSON(ctx, map[string]interface{}{
			"account":  info,
			"mnemonic": strings.Join(words, " "),
		})
	}
	return printJSON(ctx, info)
}

func accountAddWatchAction(ctx *cli.Context) error {
	svc, err := getServices(ctx)
	if err != nil {
		return err
	}

	address := strings.TrimSpace(ctx.String("address"))
	var accountType domain.AccountType
	if evmAddr, err := domain.ParseEvmAddress(address); err == nil {
		accountType = domain.EvmAddress{Address: evmAddr}
	} else if tronAddr, err := domain.ParseTronAddress(address); err == nil {
		accountType = domain.TronAddress{Address: tronAddr}
	} else {
		return fmt.Errorf("%s is neither an evm nor a tron address", address)
	}

	name := accountName(ctx, svc.factory.NextWatchAccountName(ctx.Context))
	a := svc.factory.WatchAccount(accountType, name)
	if err := svc.accounts.Save(ctx.Context, a); err != nil {
		return err
	}
	return printJSON(ctx, newAccountInfo(a))
}

func accountAddHardwareAction(ctx *cli.Context) error {
	svc, err := getServices(ctx)
	if err != nil {
		return err
	}

	var resolver interface {
		Resolve() (domain.AccountType, error)
	}
	switch {
	case ctx.IsSet("evm-address"):
		service := application.NewHardwareEvmAddressService(svc.pubsub)
		service.Sync(application.AddressState{
			Raw:    ctx.String("evm-address"),
			Domain: ctx.String("domain"),
		})
		svc.hardware.SyncDomain(service.State().Domain)
		resolver = service
	case ctx.IsSet("tron-address"):
		service := application.NewHardwareTronAddressService(svc.pubsub)
		service.Sync(application.AddressState{
			Raw:    ctx.String("tron-address"),
			Domain: ctx.String("domain"),
		})
		svc.hardware.SyncDomain(service.State().Domain)
		resolver = service
	case ctx.IsSet("xpub"):
		service := application.NewHardwarePublicKeyService()
		service.SetText(ctx.String("xpub"))
		resolver = service
	default:
		return &invalidUsageError{ctx, ctx.Command.Name}
	}

	accountType, err := resolver.Resolve()
	if err != nil {
		return err
	}

	if ctx.IsSet("name") {
		svc.hardware.SetName(ctx.String("name"))
	}
	a, err := svc.hardware.EnableHardware(
		ctx.Context, accountType, svc.hardware.ResolvedName(ctx.Context),
	)
	if err != nil {
		return err
	}
	return printJSON(ctx, newAccountInfo(*a))
}

func accountAddCexAction(ctx *cli.Context) error {
	svc, err := getServices(ctx)
	if err != nil {
		return err
	}

	exchange, err := domain.ParseExchange(ctx.String("exchange"))
	if err != nil {
		return err
	}
	cexAccount, err := domain.NewCexAccount(
		exchange, ctx.String("key"), ctx.String("secret"),
	)
	if err != nil {
		return err
	}

	name := accountName(ctx, svc.factory.NextCexAccountName(ctx.Context, exchange))
	a := svc.factory.Account(
		domain.Cex{Account: cexAccount}, domain.AccountOriginRestored, true, false, name,
	)
	if err := svc.accounts.Save(ctx.Context, a); err != nil {
		return err
	}
	return printJSON(ctx, newAccountInfo(a))
}

func accountRemoveAction(ctx *cli.Context) error {
	svc, err := getServices(ctx)
	if err != nil {
		return err
	}

	id := ctx.String("id")
	if _, err := svc.accounts.Account(ctx.Context, id); err != nil {
		return err
	}
	if err := svc.accounts.Delete(ctx.Context, id); err != nil {
		return err
	}
	return printJSON(ctx, map[string]string{"removed": id})
}

func accountExportAction(ctx *cli.Context) error {
	svc, err := getServices(ctx)
	if err != nil {
		return err
	}

	a, err := svc.accounts.Account(ctx.Context, ctx.String("id"))
	if err != nil {
		return err
	}
	crypto, err := domain.EncryptAccountType(a.Type, ctx.String("passphrase"))
	if err != nil {
		return err
	}
	return printJSON(ctx, accountExport{
		ID:     a.ID,
		Type:   string(a.Type.Abstract()),
		Crypto: crypto,
	})
}

func accountAddressAction(ctx *cli.Context) error {
	svc, err := getServices(ctx)
	if err != nil {
		return err
	}

	a, err := svc.accounts.Account(ctx.Context, ctx.String("id"))
	if err != nil {
		return err
	}
	path, err := derivationPath(ctx)
	if err != nil {
		return err
	}

	addr, err := domain.EvmAddressAt(a.Type, path)
	if err != nil {
		return err
	}
	return printJSON(ctx, map[string]string{
		"id":      a.ID,
		"path":    path.String(),
		"address": addr.Eip55(),
	})
}

func accountSignAction(ctx *cli.Context) error {
	svc, err := getServices(ctx)
	if err != nil {
		return err
	}

	a, err := svc.accounts.Account(ctx.Context, ctx.String("id"))
	if err != nil {
		return err
	}
	path, err := derivationPath(ctx)
	if err != nil {
		return err
	}

	message := []byte(ctx.String("message"))
	if ctx.Bool("hex") {
		message, err = hex.DecodeString(strings.TrimPrefix(ctx.String("message"), "0x"))
		if err != nil {
			return fmt.Errorf("invalid hex message: %w", err)
		}
	}

	sig, err := domain.SignMessageAt(a.Type, path, message, ctx.Bool("legacy"))
	if err != nil {
		return err
	}
	return printJSON(ctx, map[string]string{
		"id":        a.ID,
		"signature": "0x" + hex.EncodeToString(sig),
	})
}

// derivationPath returns nil when no path is given, leaving the default evm
// path to the domain.
func derivationPath(ctx *cli.Context) (wallet.DerivationPath, error) {
	if !ctx.IsSet("path") {
		return nil, nil
	}
	return wallet.ParseDerivationPath(ctx.String("path"))
}

func accountName(ctx *cli.Context, defaultName string) string {
	if name := strings.TrimSpace(ctx.String("name")); name != "" {
		return name
	}
	return defaultName
}

func newAccountInfo(a domain.Account) accountInfo {
	info := accountInfo{
		ID:       a.ID,
		Name:     a.Name,
		Origin:   string(a.Origin),
		BackedUp: a.BackedUp,
		Watch:    a.WatchAccount(),
		Hardware: a.HardwareAccount(),
		Chains:   make([]string, 0),
	}
	if a.Type == nil {
		return info
	}

	info.Type = string(a.Type.Abstract())
	info.Description = domain.DetailedDescription(a.Type)
	if addr, err := domain.EvmAddressOf(a.Type); err == nil {
		info.EvmAddress = addr.Eip55()
	}
	for _, b := range domain.SupportedBlockchainTypes {
		if b.SupportsAccountType(a.Type) {
			info.Chains = append(info.Chains, b.UID())
		}
	}
	return info
}
