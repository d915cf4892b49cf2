package main

import (
	walletstats "github.com/mishabunte/walletcore/pkg/stats"
	"github.com/urfave/cli/v2"
)

var stats = cli.Command{
	Name:  "stats",
	Usage: "dump the counters collected during the invocation",
	Action: func(ctx *cli.Context) error {
		return walletstats.DumpPrometheusDefaults(ctx.App.Writer)
	},
}
