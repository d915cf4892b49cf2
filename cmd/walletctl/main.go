package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	app := newApp()

	if err := app.Run(os.Args); err != nil {
		fatal(err)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()

	app.Version = "0.0.1"
	app.Name = "walletctl"
	app.Usage = "Command line interface to manage wallet accounts and evm sync sources"
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:  "datadir",
			Usage: "the directory where the wallet state is stored",
		},
		&cli.StringFlag{
			Name:  "db",
			Usage: "the database type, either badger or inmemory",
		},
		&cli.BoolFlag{
			Name:  "testnet",
			Usage: "use test networks for the default sync sources",
		},
		&cli.IntFlag{
			Name:  "level",
			Usage: "the passcode level of the accounts to manage",
		},
	}
	app.Before = initWallet
	app.After = closeWallet
	app.Commands = append(
		app.Commands,
		&syncsource,
		&account,
		&chain,
		&stats,
	)

	return app
}

type invalidUsageError struct {
	ctx     *cli.Context
	command string
}

func (e *invalidUsageError) Error() string {
	return fmt.Sprintf("invalid usage of command %s", e.command)
}

func fatal(err error) {
	var e *invalidUsageError
	if errors.As(err, &e) {
		_ = cli.ShowCommandHelp(e.ctx, e.command)
	} else {
		_, _ = fmt.Fprintf(os.Stderr, "[walletctl] %v\n", err)
	}
	os.Exit(1)
}
