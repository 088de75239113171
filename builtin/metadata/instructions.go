// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metadata

import (
	"bytes"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"

	"github.com/vechain/nftstake/builtin/layout"
	"github.com/vechain/nftstake/builtin/system"
	"github.com/vechain/nftstake/builtin/token"
	"github.com/vechain/nftstake/tx"
)

// Instruction tags, encoded as u8.
const (
	InstructionCreateMasterEditionV3   byte = 17
	InstructionFreezeDelegatedAccount  byte = 26
	InstructionThawDelegatedAccount    byte = 27
	InstructionCreateMetadataAccountV3 byte = 33
)

// CreateMetadataArgs are the arguments of CreateMetadataAccountV3.
// Collections, uses and collection details are encoded as absent options.
type CreateMetadataArgs struct {
	Data      Data
	IsMutable bool
}

func (a *CreateMetadataArgs) MarshalWithEncoder(enc *bin.Encoder) error {
	if err := a.Data.MarshalWithEncoder(enc); err != nil {
		return err
	}
	// collection, uses
	if err := enc.WriteByte(0); err != nil {
		return err
	}
	if err := enc.WriteByte(0); err != nil {
		return err
	}
	if err := enc.WriteBool(a.IsMutable); err != nil {
		return err
	}
	// collection details
	return enc.WriteByte(0)
}

func (a *CreateMetadataArgs) UnmarshalWithDecoder(dec *bin.Decoder) (err error) {
	if err := a.Data.UnmarshalWithDecoder(dec); err != nil {
		return err
	}
	for range 2 {
		tag, err := dec.ReadByte()
		if err != nil {
			return err
		}
		if tag != 0 {
			return ErrNotSupported
		}
	}
	if a.IsMutable, err = dec.ReadBool(); err != nil {
		return err
	}
	// collection details is optional in older encodings
	if dec.Remaining() > 0 {
		tag, err := dec.ReadByte()
		if err != nil {
			return err
		}
		if tag != 0 {
			return ErrNotSupported
		}
	}
	return nil
}

func encode(tag byte, args layout.Marshaler) []byte {
	buf := new(bytes.Buffer)
	enc := bin.NewBinEncoder(buf)
	_ = enc.WriteByte(tag)
	if args != nil {
		_ = args.MarshalWithEncoder(enc)
	}
	return buf.Bytes()
}

type maxSupplyArg struct{ v *uint64 }

func (m maxSupplyArg) MarshalWithEncoder(enc *bin.Encoder) error {
	return layout.WriteOptionU64(enc, m.v)
}

// CreateMetadataAccountV3 builds the creation of the metadata account of mint.
func CreateMetadataAccountV3(mint, mintAuthority, payer, updateAuthority solana.PublicKey, args *CreateMetadataArgs) *tx.Instruction {
	md, _, _ := MetadataAddress(mint)
	return tx.NewInstruction(ProgramID, encode(InstructionCreateMetadataAccountV3, args),
		solana.NewAccountMeta(md, true, false),
		solana.NewAccountMeta(mint, false, false),
		solana.NewAccountMeta(mintAuthority, false, true),
		solana.NewAccountMeta(payer, true, true),
		solana.NewAccountMeta(updateAuthority, false, false),
		solana.NewAccountMeta(system.ProgramID, false, false),
		solana.NewAccountMeta(solana.SysVarRentPubkey, false, false),
	)
}

// CreateMasterEditionV3 builds the creation of the master edition of mint.
func CreateMasterEditionV3(mint, updateAuthority, mintAuthority, payer solana.PublicKey, maxSupply *uint64) *tx.Instruction {
	md, _, _ := MetadataAddress(mint)
	ed, _, _ := EditionAddress(mint)
	return tx.NewInstruction(ProgramID, encode(InstructionCreateMasterEditionV3, maxSupplyArg{maxSupply}),
		solana.NewAccountMeta(ed, true, false),
		solana.NewAccountMeta(mint, true, false),
		solana.NewAccountMeta(updateAuthority, false, true),
		solana.NewAccountMeta(mintAuthority, false, true),
		solana.NewAccountMeta(payer, true, true),
		solana.NewAccountMeta(md, true, false),
		solana.NewAccountMeta(token.ProgramID, false, false),
		solana.NewAccountMeta(system.ProgramID, false, false),
		solana.NewAccountMeta(solana.SysVarRentPubkey, false, false),
	)
}

// FreezeDelegatedAccount builds the freeze of tokenAccount by its delegate.
func FreezeDelegatedAccount(delegate, tokenAccount, mint solana.PublicKey) *tx.Instruction {
	return delegated(InstructionFreezeDelegatedAccount, delegate, tokenAccount, mint)
}

// ThawDelegatedAccount builds the thaw of tokenAccount by its delegate.
func ThawDelegatedAccount(delegate, tokenAccount, mint solana.PublicKey) *tx.Instruction {
	return delegated(InstructionThawDelegatedAccount, delegate, tokenAccount, mint)
}

func delegated(tag byte, delegate, tokenAccount, mint solana.PublicKey) *tx.Instruction {
	ed, _, _ := EditionAddress(mint)
	return tx.NewInstruction(ProgramID, []byte{tag},
		solana.NewAccountMeta(delegate, true, true),
		solana.NewAccountMeta(tokenAccount, true, false),
		solana.NewAccountMeta(ed, false, false),
		solana.NewAccountMeta(mint, false, false),
		solana.NewAccountMeta(token.ProgramID, false, false),
	)
}
