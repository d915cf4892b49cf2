package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mishabunte/walletcore/internal/config"
	"github.com/mishabunte/walletcore/internal/core/application"
	"github.com/mishabunte/walletcore/internal/core/ports"
	"github.com/mishabunte/walletcore/internal/infrastructure/pubsub"
	dbbadger "github.com/mishabunte/walletcore/internal/infrastructure/storage/db/badger"
	"github.com/mishabunte/walletcore/internal/infrastructure/storage/db/inmemory"
	walletstats "github.com/mishabunte/walletcore/pkg/stats"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

// walletServices are the services shared by all commands for the duration
// of a single invocation.
type walletServices struct {
	repoManager ports.RepoManager
	pubsub      ports.PubSub

	syncSources *application.EvmSyncSourceManager
	accounts    *application.AccountManager
	factory     *application.AccountFactory
	hardware    *application.HardwareService
}

var flagEnvs = map[string]string{
	"datadir": "WALLETCORE_" + config.DatadirKey,
	"db":      "WALLETCORE_" + config.DBTypeKey,
	"testnet": "WALLETCORE_" + config.TestNetKey,
}

func initWallet(ctx *cli.Context) error {
	for flag, env := range flagEnvs {
		if ctx.IsSet(flag) {
			if err := os.Setenv(env, fmt.Sprint(ctx.Value(flag))); err != nil {
				return err
			}
		}
	}

	if err := config.InitConfig(); err != nil {
		return err
	}
	log.SetLevel(config.GetLogLevel())

	var repoManager ports.RepoManager
	switch config.GetString(config.DBTypeKey) {
	case config.DBInMemory:
		repoManager = inmemory.NewRepoManager()
	default:
		rm, err := dbbadger.NewRepoManager(config.GetDbDir(), nil)
		if err != nil {
			return err
		}
		repoManager = rm
	}

	ps := pubsub.NewService(config.GetInt(config.PubSubBufferSizeKey))

	catalog, err := application.NewSyncSourceCatalog(
		config.GetSyncSourceCatalogConfig(), config.TestNetManager{},
	)
	if err != nil {
		return err
	}
	syncSources, err := application.NewEvmSyncSourceManager(catalog, repoManager, ps)
	if err != nil {
		return err
	}
	accounts, err := application.NewAccountManager(repoManager.AccountRepository(), ps)
	if err != nil {
		return err
	}
	accounts.SetLevel(ctx.Int("level"))

	factory, err := application.NewAccountFactory(accounts)
	if err != nil {
		return err
	}
	hardware, err := application.NewHardwareService(factory, accounts)
	if err != nil {
		return err
	}

	ctx.App.Metadata = map[string]interface{}{
		"services": &walletServices{
			repoManager: repoManager,
			pubsub:      ps,
			syncSources: syncSources,
			accounts:    accounts,
			factory:     factory,
			hardware:    hardware,
		},
	}
	return nil
}

func closeWallet(ctx *cli.Context) error {
	if svc, ok := ctx.App.Metadata["services"].(*walletServices); ok {
		svc.pubsub.Close()
		svc.repoManager.Close()
	}
	walletstats.PrintNumOfRoutines()
	return nil
}

func getServices(ctx *cli.Context) (*walletServices, error) {
	svc, ok := ctx.App.Metadata["services"].(*walletServices)
	if !ok {
		return nil, fmt.Errorf("wallet services not initialized")
	}
	return svc, nil
}

func printJSON(ctx *cli.Context, resp interface{}) error {
	buf, err := json.MarshalIndent(resp, "", "\t")
	if err != nil {
		return fmt.Errorf("unable to encode response: %w", err)
	}
	_, err = fmt.Fprintln(ctx.App.Writer, string(buf))
	return err
}
