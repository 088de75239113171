// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"bytes"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"

	"github.com/vechain/nftstake/builtin/associated"
	"github.com/vechain/nftstake/builtin/layout"
	"github.com/vechain/nftstake/builtin/metadata"
	"github.com/vechain/nftstake/builtin/system"
	"github.com/vechain/nftstake/builtin/token"
	"github.com/vechain/nftstake/tx"
)

// Instruction discriminators.
var (
	InstructionInitializeMint = sighash("initialize_mint")
	InstructionCreateNft      = sighash("create_nft")
	InstructionDelegateNft    = sighash("delegate_nft")
	InstructionUndelegateNft  = sighash("undelegate_nft")
	InstructionStakeNft       = sighash("stake_nft")
	InstructionUnstakeNft     = sighash("unstake_nft")
	InstructionSendRewards    = sighash("send_rewards")
	InstructionCloseRecord    = sighash("close_record")
)

func sighash(name string) bin.TypeID {
	return bin.SighashTypeID(bin.SIGHASH_GLOBAL_NAMESPACE, name)
}

// CreateNftArgs are the arguments of create_nft.
type CreateNftArgs struct {
	Name   string
	Symbol string
	URI    string
}

func (a *CreateNftArgs) MarshalWithEncoder(enc *bin.Encoder) error {
	if err := layout.WriteString(enc, a.Name); err != nil {
		return err
	}
	if err := layout.WriteString(enc, a.Symbol); err != nil {
		return err
	}
	return layout.WriteString(enc, a.URI)
}

func (a *CreateNftArgs) UnmarshalWithDecoder(dec *bin.Decoder) (err error) {
	if a.Name, err = layout.ReadString(dec); err != nil {
		return err
	}
	if a.Symbol, err = layout.ReadString(dec); err != nil {
		return err
	}
	a.URI, err = layout.ReadString(dec)
	return err
}

func encode(disc bin.TypeID, args layout.Marshaler) []byte {
	buf := new(bytes.Buffer)
	buf.Write(disc[:])
	if args != nil {
		_ = args.MarshalWithEncoder(bin.NewBinEncoder(buf))
	}
	return buf.Bytes()
}

func must(key solana.PublicKey, _ uint8, err error) solana.PublicKey {
	if err != nil {
		panic(err)
	}
	return key
}

func ata(owner, mint solana.PublicKey) solana.PublicKey {
	return must(associated.Address(owner, mint))
}

// InitializeMint builds the one-time creation of the reward mint and its metadata.
func InitializeMint(payer, rewardMint solana.PublicKey) *tx.Instruction {
	return tx.NewInstruction(ProgramID, encode(InstructionInitializeMint, nil),
		solana.NewAccountMeta(rewardMint, true, true),
		solana.NewAccountMeta(must(MintAuthorityAddress()), false, false),
		solana.NewAccountMeta(must(metadata.MetadataAddress(rewardMint)), true, false),
		solana.NewAccountMeta(payer, true, true),
		solana.NewAccountMeta(solana.SysVarRentPubkey, false, false),
		solana.NewAccountMeta(metadata.ProgramID, false, false),
		solana.NewAccountMeta(token.ProgramID, false, false),
		solana.NewAccountMeta(system.ProgramID, false, false),
	)
}

// CreateNft builds the issuance of nftMint to user with its metadata and master edition.
func CreateNft(user, nftMint solana.PublicKey, args *CreateNftArgs) *tx.Instruction {
	return tx.NewInstruction(ProgramID, encode(InstructionCreateNft, args),
		solana.NewAccountMeta(user, true, true),
		solana.NewAccountMeta(nftMint, true, true),
		solana.NewAccountMeta(ata(user, nftMint), true, false),
		solana.NewAccountMeta(must(metadata.MetadataAddress(nftMint)), true, false),
		solana.NewAccountMeta(must(metadata.EditionAddress(nftMint)), true, false),
		solana.NewAccountMeta(token.ProgramID, false, false),
		solana.NewAccountMeta(associated.ProgramID, false, false),
		solana.NewAccountMeta(metadata.ProgramID, false, false),
		solana.NewAccountMeta(system.ProgramID, false, false),
		solana.NewAccountMeta(solana.SysVarRentPubkey, false, false),
	)
}

// DelegateNft builds the approval of the staking authority over the NFT of user.
func DelegateNft(user, nftMint solana.PublicKey) *tx.Instruction {
	return delegation(InstructionDelegateNft, user, nftMint)
}

// UndelegateNft builds the revocation of the staking authority.
func UndelegateNft(user, nftMint solana.PublicKey) *tx.Instruction {
	return delegation(InstructionUndelegateNft, user, nftMint)
}

func delegation(disc bin.TypeID, user, nftMint solana.PublicKey) *tx.Instruction {
	return tx.NewInstruction(ProgramID, encode(disc, nil),
		solana.NewAccountMeta(user, true, true),
		solana.NewAccountMeta(must(StakingAuthorityAddress()), false, false),
		solana.NewAccountMeta(ata(user, nftMint), true, false),
		solana.NewAccountMeta(nftMint, false, false),
		solana.NewAccountMeta(token.ProgramID, false, false),
	)
}

// StakeNft builds the freeze of the NFT of user and the creation of its stake record.
func StakeNft(user, nftMint solana.PublicKey) *tx.Instruction {
	return tx.NewInstruction(ProgramID, encode(InstructionStakeNft, nil),
		solana.NewAccountMeta(user, true, true),
		solana.NewAccountMeta(nftMint, false, false),
		solana.NewAccountMeta(ata(user, nftMint), true, false),
		solana.NewAccountMeta(must(RecordAddress(user, nftMint)), true, false),
		solana.NewAccountMeta(must(StakingAuthorityAddress()), true, false),
		solana.NewAccountMeta(must(metadata.EditionAddress(nftMint)), false, false),
		solana.NewAccountMeta(metadata.ProgramID, false, false),
		solana.NewAccountMeta(token.ProgramID, false, false),
		solana.NewAccountMeta(system.ProgramID, false, false),
		solana.NewAccountMeta(solana.SysVarRentPubkey, false, false),
	)
}

// UnstakeNft builds the thaw of the NFT of user.
func UnstakeNft(user, nftMint solana.PublicKey) *tx.Instruction {
	return tx.NewInstruction(ProgramID, encode(InstructionUnstakeNft, nil),
		solana.NewAccountMeta(user, true, true),
		solana.NewAccountMeta(nftMint, false, false),
		solana.NewAccountMeta(ata(user, nftMint), true, false),
		solana.NewAccountMeta(must(RecordAddress(user, nftMint)), true, false),
		solana.NewAccountMeta(must(StakingAuthorityAddress()), true, false),
		solana.NewAccountMeta(must(metadata.EditionAddress(nftMint)), false, false),
		solana.NewAccountMeta(metadata.ProgramID, false, false),
		solana.NewAccountMeta(token.ProgramID, false, false),
	)
}

// SendRewards builds the settlement of the rewards accrued by the stake record of user.
// The reward token account of user must exist.
func SendRewards(user, rewardMint, nftMint solana.PublicKey) *tx.Instruction {
	return tx.NewInstruction(ProgramID, encode(InstructionSendRewards, nil),
		solana.NewAccountMeta(rewardMint, true, false),
		solana.NewAccountMeta(must(MintAuthorityAddress()), false, false),
		solana.NewAccountMeta(user, true, true),
		solana.NewAccountMeta(ata(user, rewardMint), true, false),
		solana.NewAccountMeta(nftMint, false, false),
		solana.NewAccountMeta(must(RecordAddress(user, nftMint)), true, false),
		solana.NewAccountMeta(solana.SysVarRentPubkey, false, false),
		solana.NewAccountMeta(token.ProgramID, false, false),
		solana.NewAccountMeta(system.ProgramID, false, false),
	)
}

// CloseRecord builds the closure of the stake record of user, refunding its rent.
func CloseRecord(user, nftMint solana.PublicKey) *tx.Instruction {
	return tx.NewInstruction(ProgramID, encode(InstructionCloseRecord, nil),
		solana.NewAccountMeta(user, true, true),
		solana.NewAccountMeta(must(RecordAddress(user, nftMint)), true, false),
		solana.NewAccountMeta(ata(user, nftMint), false, false),
	)
}
