// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package builtin registers the native programs of the ledger.
package builtin

import (
	"github.com/gagliardetto/solana-go"

	"github.com/vechain/nftstake/builtin/associated"
	"github.com/vechain/nftstake/builtin/metadata"
	"github.com/vechain/nftstake/builtin/staking"
	"github.com/vechain/nftstake/builtin/system"
	"github.com/vechain/nftstake/builtin/token"
	"github.com/vechain/nftstake/ledger"
	"github.com/vechain/nftstake/state"
	"github.com/vechain/nftstake/xenv"
)

// Config configures the builtin programs.
type Config struct {
	// RewardRate is the reward minted per second of staking.
	RewardRate uint64
}

// DefaultConfig returns the default config.
func DefaultConfig() Config {
	return Config{RewardRate: staking.DefaultRewardRate}
}

// Programs creates the builtin programs.
func Programs(cfg Config) []xenv.Program {
	return []xenv.Program{
		system.New(),
		token.New(),
		associated.New(),
		metadata.New(),
		staking.New(cfg.RewardRate),
	}
}

// ProgramSet indexes the builtin programs by id.
func ProgramSet(cfg Config) xenv.ProgramSet {
	return xenv.NewProgramSet(Programs(cfg)...)
}

// GenesisAccounts returns the accounts the ledger starts with: one executable
// account per program and the rent sysvar.
func GenesisAccounts(programs []xenv.Program, rent ledger.Rent) (map[solana.PublicKey]*state.Account, error) {
	accounts := make(map[solana.PublicKey]*state.Account, len(programs)+1)
	for _, p := range programs {
		accounts[p.ID()] = &state.Account{
			Lamports:   1,
			Owner:      ledger.NativeLoaderID,
			Executable: true,
			Data:       []byte(p.Name()),
		}
	}
	data, err := rent.Encode()
	if err != nil {
		return nil, err
	}
	accounts[solana.SysVarRentPubkey] = &state.Account{
		Lamports: rent.MinimumBalance(uint64(len(data))),
		Owner:    ledger.SysvarOwnerID,
		Data:     data,
	}
	return accounts, nil
}
