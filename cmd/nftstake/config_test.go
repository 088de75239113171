// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/nftstake/ledger"
)

func newContext(t *testing.T, flags []cli.Flag, args ...string) *cli.Context {
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	for _, f := range flags {
		f.Apply(set)
	}
	require.NoError(t, set.Parse(args))
	return cli.NewContext(nil, set, nil)
}

var soloFlags = []cli.Flag{
	configFlag,
	apiCorsFlag,
	enableAPILogsFlag,
	enableMetricsFlag,
	metricsAddrFlag,
	rateLimitFlag,
	rewardRateFlag,
	slotIntervalFlag,
}

func writeFile(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	want := &Config{
		RewardRate:           3,
		SlotInterval:         Duration{400 * time.Millisecond},
		LamportsPerSignature: 10000,
		BlockhashWindow:      50,
		APIRateLimit:         20,
	}

	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "yaml",
			file: "config.yaml",
			content: `reward_rate: 3
slot_interval: 400ms
lamports_per_signature: 10000
blockhash_window: 50
api_rate_limit: 20
`,
		},
		{
			name: "yml",
			file: "config.yml",
			content: `reward_rate: 3
slot_interval: "400ms"
lamports_per_signature: 10000
blockhash_window: 50
api_rate_limit: 20
`,
		},
		{
			name: "toml",
			file: "config.toml",
			content: `reward_rate = 3
slot_interval = "400ms"
lamports_per_signature = 10000
blockhash_window = 50
api_rate_limit = 20
`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := loadConfig(writeFile(t, tt.file, tt.content))
			require.NoError(t, err)
			assert.Equal(t, want, cfg)
		})
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"unknown yaml key", "c.yaml", "reward: 3\n"},
		{"unknown toml key", "c.toml", "reward = 3\n"},
		{"bad duration", "c.yaml", "slot_interval: soon\n"},
		{"bad toml duration", "c.toml", "slot_interval = \"soon\"\n"},
		{"unsupported format", "c.json", "{}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadConfig(writeFile(t, tt.file, tt.content))
			assert.Error(t, err)
		})
	}

	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigEmpty(t *testing.T) {
	cfg, err := loadConfig(writeFile(t, "empty.yaml", ""))
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)
}

func TestMakeOptions(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		opts, apiOpts, err := makeOptions(newContext(t, soloFlags))
		require.NoError(t, err)
		assert.Equal(t, uint64(1), opts.Builtin.RewardRate)
		assert.Equal(t, uint64(ledger.LamportsPerSignature), opts.LamportsPerSignature)
		assert.Equal(t, ledger.RecentBlockhashWindow, opts.BlockhashWindow)
		assert.Zero(t, opts.SlotInterval)
		assert.Zero(t, apiOpts.TxRateLimit)
		assert.False(t, apiOpts.EnableMetrics)
	})

	t.Run("config file", func(t *testing.T) {
		path := writeFile(t, "c.yaml", "reward_rate: 7\nslot_interval: 1s\napi_rate_limit: 5\n")
		opts, apiOpts, err := makeOptions(newContext(t, soloFlags, "--config", path))
		require.NoError(t, err)
		assert.Equal(t, uint64(7), opts.Builtin.RewardRate)
		assert.Equal(t, time.Second, opts.SlotInterval)
		assert.Equal(t, 5, apiOpts.TxRateLimit)
	})

	t.Run("flags override the file", func(t *testing.T) {
		path := writeFile(t, "c.toml", "reward_rate = 7\nslot_interval = \"1s\"\napi_rate_limit = 5\n")
		opts, apiOpts, err := makeOptions(newContext(t, soloFlags,
			"--config", path,
			"--reward-rate", "9",
			"--slot-interval", "2s",
			"--rate-limit", "0",
			"--api-cors", "*",
			"--enable-metrics",
		))
		require.NoError(t, err)
		assert.Equal(t, uint64(9), opts.Builtin.RewardRate)
		assert.Equal(t, 2*time.Second, opts.SlotInterval)
		assert.Zero(t, apiOpts.TxRateLimit)
		assert.Equal(t, "*", apiOpts.AllowedOrigins)
		assert.True(t, apiOpts.EnableMetrics)
	})

	t.Run("metrics on a separate address", func(t *testing.T) {
		_, apiOpts, err := makeOptions(newContext(t, soloFlags, "--enable-metrics", "--metrics-addr", "localhost:2112"))
		require.NoError(t, err)
		assert.False(t, apiOpts.EnableMetrics)
	})

	t.Run("zero reward rate", func(t *testing.T) {
		_, _, err := makeOptions(newContext(t, soloFlags, "--reward-rate", "0"))
		assert.Error(t, err)
	})
}
