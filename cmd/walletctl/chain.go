package main

import (
	"sort"

	"github.com/mishabunte/walletcore/internal/core/domain"
	"github.com/urfave/cli/v2"
)

var chain = cli.Command{
	Name:  "chain",
	Usage: "show the capabilities of the supported blockchains",
	Subcommands: []*cli.Command{
		{
			Name:   "list",
			Usage:  "list the supported blockchains in display order",
			Action: chainListAction,
		},
	},
}

type chainInfo struct {
	UID             string   `json:"uid"`
	Description     string   `json:"description"`
	Evm             bool     `json:"evm"`
	Resendable      bool     `json:"resendable"`
	FeeUnit         string   `json:"fee_unit"`
	RollupFeeOracle string   `json:"rollup_fee_oracle,omitempty"`
	DefaultToken    string   `json:"default_token"`
	RestoreSettings []string `json:"restore_settings,omitempty"`
}

func chainListAction(ctx *cli.Context) error {
	chains := append([]domain.BlockchainType{}, domain.SupportedBlockchainTypes...)
	sort.SliceStable(chains, func(i, j int) bool {
		return chains[i].Less(chains[j])
	})

	list := make([]chainInfo, 0, len(chains))
	for _, b := range chains {
		info := chainInfo{
			UID:          b.UID(),
			Description:  b.Description(),
			Evm:          b.IsEvm(),
			Resendable:   b.Resendable(),
			FeeUnit:      b.FeePriceScale().Unit,
			DefaultToken: b.DefaultTokenQuery().ID(),
		}
		if addr, ok := b.RollupFeeContractAddress(); ok {
			info.RollupFeeOracle = addr.Eip55()
		}
		for _, s := range b.RestoreSettingTypes() {
			info.RestoreSettings = append(info.RestoreSettings, string(s))
		}
		list = append(list, info)
	}
	return printJSON(ctx, list)
}
