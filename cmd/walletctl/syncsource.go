package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mishabunte/walletcore/internal/core/domain"
	"github.com/urfave/cli/v2"
)

var (
	chainFlag = &cli.StringFlag{
		Name:     "chain",
		Usage:    "the uid of the evm blockchain, ie. ethereum",
		Required: true,
	}
	urlFlag = &cli.StringFlag{
		Name:     "url",
		Usage:    "the rpc url of the sync source",
		Required: true,
	}
	passphraseFlag = &cli.StringFlag{
		Name:     "passphrase",
		Usage:    "the passphrase used to encrypt or decrypt the backup",
		Required: true,
	}

	syncsource = cli.Command{
		Name:  "syncsource",
		Usage: "manage the rpc endpoints of evm blockchains",
		Subcommands: []*cli.Command{
			syncSourceListCmd, syncSourceAddCmd, syncSourceSelectCmd,
			syncSourceDeleteCmd, syncSourceExportCmd, syncSourceImportCmd,
		},
	}

	syncSourceListCmd = &cli.Command{
		Name:   "list",
		Usage:  "list the default and custom sync sources of a chain",
		Flags:  []cli.Flag{chainFlag},
		Action: syncSourceListAction,
	}
	syncSourceAddCmd = &cli.Command{
		Name:  "add",
		Usage: "add a custom sync source and select it",
		Flags: []cli.Flag{
			chainFlag, urlFlag,
			&cli.StringFlag{
				Name:  "auth",
				Usage: "optional auth token of the endpoint",
			},
		},
		Action: syncSourceAddAction,
	}
	syncSourceSelectCmd = &cli.Command{
		Name:   "select",
		Usage:  "select the sync source of a chain by url",
		Flags:  []cli.Flag{chainFlag, urlFlag},
		Action: syncSourceSelectAction,
	}
	syncSourceDeleteCmd = &cli.Command{
		Name:   "delete",
		Usage:  "delete a custom sync source",
		Flags:  []cli.Flag{chainFlag, urlFlag},
		Action: syncSourceDeleteAction,
	}
	syncSourceExportCmd = &cli.Command{
		Name:  "export",
		Usage: "export selected and custom sync sources as json",
		Flags: []cli.Flag{
			passphraseFlag,
			&cli.StringFlag{
				Name:  "out",
				Usage: "the file to write the backup to, stdout if not set",
			},
		},
		Action: syncSourceExportAction,
	}
	syncSourceImportCmd = &cli.Command{
		Name:  "import",
		Usage: "restore sync sources from a json backup",
		Flags: []cli.Flag{
			passphraseFlag,
			&cli.StringFlag{
				Name:     "in",
				Usage:    "the backup file",
				Required: true,
			},
		},
		Action: syncSourceImportAction,
	}
)

type syncSourceInfo struct {
	Name     string `json:"name"`
	URL      string `json:"url"`
	Kind     string `json:"kind"`
	HasAuth  bool   `json:"has_auth"`
	Explorer string `json:"explorer"`
	Custom   bool   `json:"custom"`
	Selected bool   `json:"selected"`
}

func syncSourceListAction(ctx *cli.Context) error {
	svc, err := getServices(ctx)
	if err != nil {
		return err
	}
	blockchainType := domain.BlockchainTypeFromUID(ctx.String("chain"))

	current, err := svc.syncSources.SyncSource(ctx.Context, blockchainType)
	if err != nil {
		return err
	}

	defaults := svc.syncSources.DefaultSyncSources(blockchainType)
	all := svc.syncSources.AllSyncSources(ctx.Context, blockchainType)
	list := make([]syncSourceInfo, 0, len(all))
	for i, s := range all {
		list = append(list, syncSourceInfo{
			Name:     s.Name,
			URL:      s.RpcSource.URLString(),
			Kind:     string(s.RpcSource.Kind),
			HasAuth:  s.RpcSource.Auth != nil,
			Explorer: s.TransactionSource.Name,
			Custom:   i >= len(defaults),
			Selected: s.Equal(current),
		})
	}
	return printJSON(ctx, list)
}

func syncSourceAddAction(ctx *cli.Context) error {
	svc, err := getServices(ctx)
	if err != nil {
		return err
	}
	blockchainType := domain.BlockchainTypeFromUID(ctx.String("chain"))

	u, _, err := domain.ParseSyncSourceURL(ctx.String("url"))
	if err != nil {
		return err
	}
	var auth *string
	if ctx.IsSet("auth") {
		a := ctx.String("auth")
		auth = &a
	}

	if err := svc.syncSources.SaveSyncSource(
		ctx.Context, blockchainType, u, auth,
	); err != nil {
		return err
	}
	return printSelected(ctx, blockchainType)
}

func syncSourceSelectAction(ctx *cli.Context) error {
	svc, err := getServices(ctx)
	if err != nil {
		return err
	}
	blockchainType := domain.BlockchainTypeFromUID(ctx.String("chain"))

	source, err := findSyncSource(ctx, blockchainType, ctx.String("url"))
	if err != nil {
		return err
	}
	if err := svc.syncSources.SaveCurrent(ctx.Context, source, blockchainType); err != nil {
		return err
	}
	return printSelected(ctx, blockchainType)
}

func syncSourceDeleteAction(ctx *cli.Context) error {
	svc, err := getServices(ctx)
	if err != nil {
		return err
	}
	blockchainType := domain.BlockchainTypeFromUID(ctx.String("chain"))

	url := ctx.String("url")
	var source *domain.EvmSyncSource
	for _, s := range svc.syncSources.CustomSyncSources(ctx.Context, &blockchainType) {
		if s.RpcSource.URLString() == url {
			s := s
			source = &s
			break
		}
	}
	if source == nil {
		return fmt.Errorf("custom sync source %s not found for %s", url, blockchainType)
	}

	if err := svc.syncSources.Delete(ctx.Context, *source, blockchainType); err != nil {
		return err
	}
	return printSelected(ctx, blockchainType)
}

func syncSourceExportAction(ctx *cli.Context) error {
	svc, err := getServices(ctx)
	if err != nil {
		return err
	}

	backup, err := svc.syncSources.Backup(ctx.Context, ctx.String("passphrase"))
	if err != nil {
		return err
	}

	out := ctx.String("out")
	if out == "" {
		return printJSON(ctx, backup)
	}

	buf, err := json.Marshal(backup)
	if err != nil {
		return err
	}
	return os.WriteFile(out, buf, 0600)
}

func syncSourceImportAction(ctx *cli.Context) error {
	svc, err := getServices(ctx)
	if err != nil {
		return err
	}

	buf, err := os.ReadFile(ctx.String("in"))
	if err != nil {
		return err
	}
	var backup domain.SyncSourceBackup
	if err := json.Unmarshal(buf, &backup); err != nil {
		return fmt.Errorf("invalid backup file: %w", err)
	}

	if err := svc.syncSources.RestoreBackup(
		ctx.Context, backup, ctx.String("passphrase"),
	); err != nil {
		return err
	}
	return printJSON(ctx, svc.syncSources.SelectedSources(ctx.Context))
}

func findSyncSource(
	ctx *cli.Context, blockchainType domain.BlockchainType, url string,
) (domain.EvmSyncSource, error) {
	svc, err := getServices(ctx)
	if err != nil {
		return domain.EvmSyncSource{}, err
	}
	for _, s := range svc.syncSources.AllSyncSources(ctx.Context, blockchainType) {
		if s.RpcSource.URLString() == url {
			return s, nil
		}
	}
	return domain.EvmSyncSource{}, fmt.Errorf(
		"sync source %s not found for %s", url, blockchainType,
	)
}

func printSelected(ctx *cli.Context, blockchainType domain.BlockchainType) error {
	svc, err := getServices(ctx)
	if err != nil {
		return err
	}
	current, err := svc.syncSources.SyncSource(ctx.Context, blockchainType)
	if err != nil {
		return err
	}
	return printJSON(ctx, domain.SelectedSource{
		BlockchainTypeUID: blockchainType.UID(),
		URL:               current.RpcSource.URLString(),
	})
}
