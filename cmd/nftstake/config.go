// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/nftstake/api"
	"github.com/vechain/nftstake/solo"
)

// Duration is a time.Duration read from a string such as "400ms".
type Duration struct {
	time.Duration
}

// UnmarshalYAML parses human readable duration strings.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return errors.New("duration must be a string")
	}
	return d.UnmarshalText([]byte(value.Value))
}

// UnmarshalText parses human readable duration strings.
func (d *Duration) UnmarshalText(text []byte) error {
	raw := strings.TrimSpace(string(text))
	if raw == "" {
		d.Duration = 0
		return nil
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return errors.Wrapf(err, "parse duration %q", raw)
	}
	d.Duration = parsed
	return nil
}

// Config is the content of the --config file. Zero values keep the defaults.
type Config struct {
	RewardRate           uint64   `yaml:"reward_rate" toml:"reward_rate"`
	SlotInterval         Duration `yaml:"slot_interval" toml:"slot_interval"`
	LamportsPerSignature uint64   `yaml:"lamports_per_signature" toml:"lamports_per_signature"`
	BlockhashWindow      int      `yaml:"blockhash_window" toml:"blockhash_window"`
	APIRateLimit         int      `yaml:"api_rate_limit" toml:"api_rate_limit"`
}

// loadConfig reads a YAML or TOML config, chosen by the file extension.
func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	cfg := &Config{}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && err != io.EOF {
			return nil, errors.Wrapf(err, "decode %v", path)
		}
	case ".toml":
		meta, err := toml.Decode(string(data), cfg)
		if err != nil {
			return nil, errors.Wrapf(err, "decode %v", path)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return nil, errors.Errorf("unknown config key %q in %v", undecoded[0].String(), path)
		}
	default:
		return nil, errors.Errorf("unsupported config format %q", ext)
	}
	return cfg, nil
}

// apply overlays the non zero values of the config on the node and API options.
func (c *Config) apply(opts *solo.Options, apiOpts *api.Options) {
	if c.RewardRate > 0 {
		opts.Builtin.RewardRate = c.RewardRate
	}
	if c.SlotInterval.Duration > 0 {
		opts.SlotInterval = c.SlotInterval.Duration
	}
	if c.LamportsPerSignature > 0 {
		opts.LamportsPerSignature = c.LamportsPerSignature
	}
	if c.BlockhashWindow > 0 {
		opts.BlockhashWindow = c.BlockhashWindow
	}
	if c.APIRateLimit > 0 {
		apiOpts.TxRateLimit = c.APIRateLimit
	}
}

// makeOptions builds the node and API options from the defaults, the config
// file and the flags, in increasing precedence.
func makeOptions(ctx *cli.Context) (solo.Options, api.Options, error) {
	opts := solo.DefaultOptions()
	apiOpts := api.Options{
		AllowedOrigins:  ctx.String(apiCorsFlag.Name),
		EnableReqLogger: ctx.Bool(enableAPILogsFlag.Name),
		EnableMetrics:   ctx.Bool(enableMetricsFlag.Name) && ctx.String(metricsAddrFlag.Name) == "",
	}

	if path := ctx.String(configFlag.Name); path != "" {
		cfg, err := loadConfig(path)
		if err != nil {
			return opts, apiOpts, err
		}
		cfg.apply(&opts, &apiOpts)
	}

	if ctx.IsSet(rewardRateFlag.Name) {
		opts.Builtin.RewardRate = ctx.Uint64(rewardRateFlag.Name)
	}
	if ctx.IsSet(slotIntervalFlag.Name) {
		opts.SlotInterval = ctx.Duration(slotIntervalFlag.Name)
	}
	if ctx.IsSet(rateLimitFlag.Name) {
		apiOpts.TxRateLimit = ctx.Int(rateLimitFlag.Name)
	}
	if opts.Builtin.RewardRate == 0 {
		return opts, apiOpts, errors.New("reward rate must be positive")
	}
	return opts, apiOpts, nil
}
