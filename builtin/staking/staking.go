// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package staking implements the NFT staking program.
//
// An owner delegates its NFT to the keyless staking authority, which freezes
// the token account while the NFT is staked and thaws it on unstake. A stake
// record per (owner, mint) tracks the staking session; rewards accrue per
// second since the last settlement and are minted by the keyless mint
// authority of the reward mint.
package staking

import (
	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"

	"github.com/vechain/nftstake/builtin/layout"
	"github.com/vechain/nftstake/xenv"
)

// ProgramID is the id of the staking program.
var ProgramID = solana.MustPublicKeyFromBase58("DtwR5igWmGM14GSgS844Szeh9qvSZt4HPie96bw7Dbqv")

// DefaultRewardRate is the reward minted per second of staking.
const DefaultRewardRate uint64 = 1

// Program is the staking program.
type Program struct {
	rate uint64
}

// New creates the staking program minting rate reward units per second.
func New(rate uint64) *Program {
	return &Program{rate: rate}
}

func (p *Program) ID() solana.PublicKey { return ProgramID }
func (p *Program) Name() string         { return "staking" }
func (p *Program) Rate() uint64         { return p.rate }

func (p *Program) Execute(env *xenv.Environment) error {
	data := env.Data()
	if len(data) < 8 {
		return ErrInvalidInstruction
	}
	switch bin.TypeIDFromBytes(data[:8]) {
	case InstructionInitializeMint:
		env.Log("Instruction: InitializeMint")
		return initializeMint(env)
	case InstructionCreateNft:
		env.Log("Instruction: CreateNft")
		var args CreateNftArgs
		if err := layout.Decode(data[8:], &args); err != nil {
			return ErrInvalidInstruction
		}
		return createNft(env, &args)
	case InstructionDelegateNft:
		env.Log("Instruction: DelegateNft")
		return delegateNft(env, false)
	case InstructionUndelegateNft:
		env.Log("Instruction: UndelegateNft")
		return delegateNft(env, true)
	case InstructionStakeNft:
		env.Log("Instruction: StakeNft")
		return stakeNft(env)
	case InstructionUnstakeNft:
		env.Log("Instruction: UnstakeNft")
		return unstakeNft(env)
	case InstructionSendRewards:
		env.Log("Instruction: SendRewards")
		return p.sendRewards(env)
	case InstructionCloseRecord:
		env.Log("Instruction: CloseRecord")
		return closeRecord(env)
	default:
		return ErrInvalidInstruction
	}
}
