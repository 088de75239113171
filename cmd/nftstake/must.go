// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"os/user"
	"path/filepath"
	"syscall"
	"time"

	"github.com/beevik/ntp"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
	"gopkg.in/natefinch/lumberjack.v2"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/nftstake/builtin/associated"
	"github.com/vechain/nftstake/builtin/metadata"
	"github.com/vechain/nftstake/builtin/staking"
	"github.com/vechain/nftstake/builtin/system"
	"github.com/vechain/nftstake/builtin/token"
	"github.com/vechain/nftstake/log"
	"github.com/vechain/nftstake/lvldb"
	"github.com/vechain/nftstake/solo"
)

// clock offsets above this skew the reward checkpoints noticeably
const maxClockOffset = time.Second

func fatal(args ...any) {
	var w io.Writer = os.Stderr
	fmt.Fprint(w, "Fatal: ")
	fmt.Fprintln(w, args...)
	os.Exit(1)
}

// initLogger installs the root logger and returns a func releasing the log file.
func initLogger(ctx *cli.Context) func() {
	lvl := log.FromVerbosity(ctx.Int(verbosityFlag.Name))

	var (
		out      io.Writer = os.Stderr
		useColor           = log.IsTerminal(os.Stderr)
		closer             = func() {}
	)
	if file := ctx.String(logFileFlag.Name); file != "" {
		rotator := &lumberjack.Logger{
			Filename:   file,
			MaxSize:    100, // MB
			MaxBackups: 5,
			MaxAge:     28, // days
			Compress:   true,
		}
		out = io.MultiWriter(os.Stderr, rotator)
		useColor = false
		closer = func() { rotator.Close() }
	}

	var handler = log.NewTerminalHandlerWithLevel(out, lvl, useColor)
	if ctx.Bool(jsonLogsFlag.Name) {
		handler = log.JSONHandlerWithLevel(out, lvl)
	}
	log.SetDefault(log.NewLogger(handler))
	return closer
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}

func defaultDataDir() string {
	if home := homeDir(); home != "" {
		return filepath.Join(home, ".nftstake")
	}
	return ""
}

func makeDataDir(ctx *cli.Context) string {
	dataDir := ctx.String(dataDirFlag.Name)
	if dataDir == "" {
		fatal(fmt.Sprintf("unable to infer default data dir, use -%s to specify", dataDirFlag.Name))
	}
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		fatal(fmt.Sprintf("create data dir [%v]: %v", dataDir, err))
	}
	return dataDir
}

func openMainDB(dataDir string) *lvldb.LevelDB {
	dir := filepath.Join(dataDir, "ledger.db")
	db, err := lvldb.New(dir, lvldb.Options{
		CacheSize:              64,
		OpenFilesCacheCapacity: 64,
	})
	if err != nil {
		fatal(fmt.Sprintf("open ledger database [%v]: %v", dir, err))
	}
	return db
}

func openMemMainDB() *lvldb.LevelDB {
	db, err := lvldb.NewMem()
	if err != nil {
		fatal(fmt.Sprintf("open ledger database: %v", err))
	}
	return db
}

// loadKeypair reads a keypair file in the JSON byte array format of the
// solana keygen tool. An empty path yields a fresh key.
func loadKeypair(path string) (solana.PrivateKey, error) {
	if path == "" {
		return solana.NewRandomPrivateKey()
	}
	key, err := solana.PrivateKeyFromSolanaKeygenFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "load keypair [%v]", path)
	}
	return key, nil
}

// writeKeypair writes key in the format read by loadKeypair.
func writeKeypair(w io.Writer, key solana.PrivateKey) error {
	raw := make([]int, len(key))
	for i, b := range key {
		raw[i] = int(b)
	}
	return json.NewEncoder(w).Encode(raw)
}

func handleExitSignal() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		exitSignalCh := make(chan os.Signal, 1)
		signal.Notify(exitSignalCh, os.Interrupt, syscall.SIGTERM)

		sig := <-exitSignalCh
		log.Info("exit signal received", "signal", sig)
		cancel()
	}()
	return ctx
}

func checkClockOffset() {
	resp, err := ntp.Query("pool.ntp.org")
	if err != nil {
		log.Debug("failed to access NTP", "err", err)
		return
	}
	offset := resp.ClockOffset
	if offset < 0 {
		offset = -offset
	}
	if offset > maxClockOffset {
		log.Warn("clock offset detected", "offset", common.PrettyDuration(resp.ClockOffset))
	}
}

func printSoloStartupMessage(n *solo.Node, dataDir, apiURL, metricsURL string) {
	clock := n.Clock()
	info := fmt.Sprintf(`Starting %v
    Latest slot  [ %v %v @%v ]
    Reward rate  [ %v per second ]
    Data dir     [ %v ]
    API portal   [ %v ]
    Metrics      [ %v ]
    Programs
      system     [ %v ]
      token      [ %v ]
      associated [ %v ]
      metadata   [ %v ]
      staking    [ %v ]
`,
		"NFT staking solo "+fullVersion(),
		clock.Slot, n.LatestBlockhash(), time.Unix(clock.UnixTimestamp, 0),
		n.RewardRate(),
		dataDir,
		apiURL,
		func() string {
			if metricsURL == "" {
				return "disabled"
			}
			return metricsURL
		}(),
		system.ProgramID,
		token.ProgramID,
		associated.ProgramID,
		metadata.ProgramID,
		staking.ProgramID,
	)
	fmt.Print(info)
}
