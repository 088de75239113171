// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"time"

	cli "gopkg.in/urfave/cli.v1"
)

var (
	dataDirFlag = cli.StringFlag{
		Name:  "data-dir",
		Value: defaultDataDir(),
		Usage: "directory for the ledger database",
	}
	persistFlag = cli.BoolFlag{
		Name:  "persist",
		Usage: "keep the ledger in --data-dir instead of memory",
	}
	configFlag = cli.StringFlag{
		Name:  "config",
		Usage: "path to a YAML or TOML config file",
	}
	apiAddrFlag = cli.StringFlag{
		Name:  "api-addr",
		Value: "localhost:8899",
		Usage: "API service listening address",
	}
	apiCorsFlag = cli.StringFlag{
		Name:  "api-cors",
		Value: "",
		Usage: "comma separated list of domains from which to accept cross origin requests to API",
	}
	enableAPILogsFlag = cli.BoolFlag{
		Name:  "enable-api-logs",
		Usage: "enables API requests logging",
	}
	rateLimitFlag = cli.IntFlag{
		Name:  "rate-limit",
		Usage: "limit the transactions accepted per second by the API, 0 for no limit",
	}
	rewardRateFlag = cli.Uint64Flag{
		Name:  "reward-rate",
		Value: 1,
		Usage: "reward tokens minted per second of staking",
	}
	slotIntervalFlag = cli.DurationFlag{
		Name:  "slot-interval",
		Usage: "advance an empty slot at this interval, 0 to advance on transactions only",
	}
	verbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Value: 3,
		Usage: "log verbosity (0-5)",
	}
	jsonLogsFlag = cli.BoolFlag{
		Name:  "json-logs",
		Usage: "output logs in JSON format",
	}
	logFileFlag = cli.StringFlag{
		Name:  "log-file",
		Usage: "also write logs to a rotated file",
	}
	enableMetricsFlag = cli.BoolFlag{
		Name:  "enable-metrics",
		Usage: "enables metrics collection",
	}
	metricsAddrFlag = cli.StringFlag{
		Name:  "metrics-addr",
		Usage: "serve metrics on a separate address instead of the API",
	}
	skipNTPFlag = cli.BoolFlag{
		Name:  "skip-ntp",
		Usage: "skip the clock offset check",
	}

	keypairFlag = cli.StringFlag{
		Name:  "keypair",
		Usage: "path to a JSON keypair file paying for the transactions, a fresh key when empty",
	}
	apiURLFlag = cli.StringFlag{
		Name:  "api-url",
		Usage: "API of a running node, an in-process node when empty",
	}
	waitFlag = cli.DurationFlag{
		Name:  "wait",
		Value: 10 * time.Second,
		Usage: "time the NFT stays staked",
	}
	orderFlag = cli.StringFlag{
		Name:  "order",
		Value: "reward-while-staked",
		Usage: "steps after staking (reward-while-staked|reward-after-undelegate)",
	}
	clusterFlag = cli.StringFlag{
		Name:  "cluster",
		Usage: "cluster appended to explorer links, e.g. devnet",
	}
	probesFlag = cli.BoolFlag{
		Name:  "probes",
		Usage: "also send the operations a staked NFT must refuse",
	}
	nameFlag = cli.StringFlag{
		Name:  "name",
		Value: "my test NFT",
		Usage: "NFT name",
	}
	symbolFlag = cli.StringFlag{
		Name:  "symbol",
		Value: "DDR",
		Usage: "NFT symbol",
	}
	uriFlag = cli.StringFlag{
		Name:  "uri",
		Value: "test-uri",
		Usage: "NFT metadata uri",
	}
	outFlag = cli.StringFlag{
		Name:  "out",
		Usage: "write the keypair to this file instead of stdout",
	}
)
