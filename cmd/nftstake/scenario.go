// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/nftstake/client"
	"github.com/vechain/nftstake/client/httpclient"
	"github.com/vechain/nftstake/log"
	"github.com/vechain/nftstake/solo"
)

// skewedClock is a wall clock that can be pushed forward, letting rewards
// accrue on an in-process node without sleeping.
type skewedClock struct {
	skew atomic.Int64
}

func (c *skewedClock) Now() time.Time {
	return time.Now().Add(time.Duration(c.skew.Load()))
}

func (c *skewedClock) Advance(d time.Duration) {
	c.skew.Add(int64(d))
}

func scenarioAction(ctx *cli.Context) error {
	closeLog := initLogger(ctx)
	defer closeLog()

	order, err := client.ParseOrder(ctx.String(orderFlag.Name))
	if err != nil {
		return err
	}
	payer, err := loadKeypair(ctx.String(keypairFlag.Name))
	if err != nil {
		return err
	}

	opts := client.DefaultScenarioOptions()
	opts.Name = ctx.String(nameFlag.Name)
	opts.Symbol = ctx.String(symbolFlag.Name)
	opts.URI = ctx.String(uriFlag.Name)
	opts.Order = order
	opts.Probes = ctx.Bool(probesFlag.Name)
	opts.Cluster = ctx.String(clusterFlag.Name)
	wait := ctx.Duration(waitFlag.Name)

	var backend client.Backend
	if url := ctx.String(apiURLFlag.Name); url != "" {
		backend = httpclient.New(url)
		opts.RewardRate = ctx.Uint64(rewardRateFlag.Name)
		opts.Wait = func(ctx context.Context) error {
			log.Info("waiting while staked", "duration", wait)
			select {
			case <-time.After(wait):
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	} else {
		nodeOpts, _, err := makeOptions(ctx)
		if err != nil {
			return err
		}
		clock := &skewedClock{}
		nodeOpts.Now = clock.Now

		db := openMemMainDB()
		defer db.Close()
		node, err := solo.New(db, nodeOpts)
		if err != nil {
			return err
		}
		defer node.Close()

		backend = client.NewLocal(node)
		opts.RewardRate = node.RewardRate()
		opts.Wait = func(context.Context) error {
			clock.Advance(wait)
			return nil
		}
	}

	log.Info("running scenario", "payer", payer.PublicKey(), "order", order)
	report, err := client.New(backend, payer).RunScenario(handleExitSignal(), opts)
	if report != nil {
		fmt.Println(report)
	}
	return err
}
