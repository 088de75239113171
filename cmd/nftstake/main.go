// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"

	cli "gopkg.in/urfave/cli.v1"
)

var (
	version   string
	gitCommit string
	gitTag    string
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Version = fullVersion()
	app.Name = "nftstake"
	app.Usage = "NFT staking on a standalone ledger"
	app.Copyright = "2025 VeChain Foundation <https://vechain.org/>"
	app.Commands = []cli.Command{
		{
			Name:  "solo",
			Usage: "run a standalone ledger node serving the API",
			Flags: []cli.Flag{
				dataDirFlag,
				persistFlag,
				configFlag,
				apiAddrFlag,
				apiCorsFlag,
				enableAPILogsFlag,
				rateLimitFlag,
				rewardRateFlag,
				slotIntervalFlag,
				verbosityFlag,
				jsonLogsFlag,
				logFileFlag,
				enableMetricsFlag,
				metricsAddrFlag,
				skipNTPFlag,
			},
			Action: soloAction,
		},
		{
			Name:  "scenario",
			Usage: "run the staking life cycle of a fresh NFT and report every transaction",
			Flags: []cli.Flag{
				apiURLFlag,
				keypairFlag,
				configFlag,
				rewardRateFlag,
				waitFlag,
				orderFlag,
				clusterFlag,
				probesFlag,
				nameFlag,
				symbolFlag,
				uriFlag,
				verbosityFlag,
				jsonLogsFlag,
				logFileFlag,
			},
			Action: scenarioAction,
		},
		{
			Name:      "derive",
			Usage:     "print the addresses derived for an owner and a pair of mints",
			ArgsUsage: "<owner> <reward-mint> <nft-mint>",
			Action:    deriveAction,
		},
		{
			Name:      "inspect",
			Usage:     "dump an account and its decoded content",
			ArgsUsage: "<address>",
			Flags: []cli.Flag{
				apiURLFlag,
				dataDirFlag,
			},
			Action: inspectAction,
		},
		{
			Name:  "keygen",
			Usage: "generate a keypair file",
			Flags: []cli.Flag{
				outFlag,
			},
			Action: keygenAction,
		},
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
