// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/nftstake/api"
	"github.com/vechain/nftstake/cmd/nftstake/httpserver"
	"github.com/vechain/nftstake/log"
	"github.com/vechain/nftstake/lvldb"
	"github.com/vechain/nftstake/metrics"
	"github.com/vechain/nftstake/solo"
)

const ntpCheckInterval = 10 * time.Minute

func soloAction(ctx *cli.Context) error {
	defer func() { log.Info("exited") }()

	closeLog := initLogger(ctx)
	defer closeLog()

	opts, apiOpts, err := makeOptions(ctx)
	if err != nil {
		return err
	}
	enableMetrics := ctx.Bool(enableMetricsFlag.Name)
	if enableMetrics {
		metrics.InitializePrometheusMetrics()
	}

	var (
		mainDB  *lvldb.LevelDB
		dataDir string
	)
	if ctx.Bool(persistFlag.Name) {
		dataDir = makeDataDir(ctx)
		mainDB = openMainDB(dataDir)
	} else {
		dataDir = "Memory"
		mainDB = openMemMainDB()
	}
	defer func() { log.Info("closing ledger database..."); mainDB.Close() }()

	node, err := solo.New(mainDB, opts)
	if err != nil {
		return err
	}
	defer func() { log.Info("closing node..."); node.Close() }()

	handler, closeAPI := api.New(node, apiOpts)
	defer closeAPI()

	apiURL, stopAPI, err := httpserver.StartAPIServer(ctx.String(apiAddrFlag.Name), handler)
	if err != nil {
		return err
	}
	defer func() { log.Info("stopping API server..."); stopAPI() }()

	var metricsURL string
	if enableMetrics {
		if addr := ctx.String(metricsAddrFlag.Name); addr != "" {
			url, stopMetrics, err := httpserver.StartMetricsServer(addr)
			if err != nil {
				return err
			}
			defer func() { log.Info("stopping metrics server..."); stopMetrics() }()
			metricsURL = url
		} else {
			metricsURL = apiURL + "metrics"
		}
	}

	printSoloStartupMessage(node, dataDir, apiURL, metricsURL)

	g, gctx := errgroup.WithContext(handleExitSignal())
	g.Go(func() error {
		node.Run(gctx)
		return nil
	})
	if !ctx.Bool(skipNTPFlag.Name) {
		g.Go(func() error {
			watchClock(gctx)
			return nil
		})
	}
	return g.Wait()
}

// watchClock checks the clock offset at startup and then periodically.
func watchClock(ctx context.Context) {
	ticker := time.NewTicker(ntpCheckInterval)
	defer ticker.Stop()
	for {
		checkClockOffset()
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
