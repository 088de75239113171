// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"bytes"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"

	"github.com/vechain/nftstake/builtin/layout"
	"github.com/vechain/nftstake/tx"
)

// Instruction tags, encoded as u8.
const (
	InstructionTransfer           byte = 3
	InstructionApprove            byte = 4
	InstructionRevoke             byte = 5
	InstructionSetAuthority       byte = 6
	InstructionMintTo             byte = 7
	InstructionFreezeAccount      byte = 10
	InstructionThawAccount        byte = 11
	InstructionInitializeAccount3 byte = 18
	InstructionInitializeMint2    byte = 20
)

// AuthorityType selects the authority changed by SetAuthority.
type AuthorityType uint8

const (
	AuthorityMintTokens AuthorityType = iota
	AuthorityFreezeAccount
	AuthorityAccountOwner
	AuthorityCloseAccount
)

type encodeFunc func(enc *bin.Encoder) error

func data(tag byte, fn encodeFunc) []byte {
	buf := new(bytes.Buffer)
	enc := bin.NewBinEncoder(buf)
	_ = enc.WriteByte(tag)
	if fn != nil {
		_ = fn(enc)
	}
	return buf.Bytes()
}

func amountData(tag byte, amount uint64) []byte {
	return data(tag, func(enc *bin.Encoder) error { return enc.WriteUint64(amount, bin.LE) })
}

// Transfer builds a transfer of amount from source to destination, signed by authority (owner or delegate).
func Transfer(source, destination, authority solana.PublicKey, amount uint64) *tx.Instruction {
	return tx.NewInstruction(ProgramID, amountData(InstructionTransfer, amount),
		solana.NewAccountMeta(source, true, false),
		solana.NewAccountMeta(destination, true, false),
		solana.NewAccountMeta(authority, false, true),
	)
}

// Approve builds an approval of delegate over amount of source.
func Approve(source, delegate, owner solana.PublicKey, amount uint64) *tx.Instruction {
	return tx.NewInstruction(ProgramID, amountData(InstructionApprove, amount),
		solana.NewAccountMeta(source, true, false),
		solana.NewAccountMeta(delegate, false, false),
		solana.NewAccountMeta(owner, false, true),
	)
}

// Revoke builds a revocation of the delegate of source.
func Revoke(source, owner solana.PublicKey) *tx.Instruction {
	return tx.NewInstruction(ProgramID, data(InstructionRevoke, nil),
		solana.NewAccountMeta(source, true, false),
		solana.NewAccountMeta(owner, false, true),
	)
}

// SetAuthority builds an authority change of a mint or token account. A nil newAuthority removes it.
func SetAuthority(account, current solana.PublicKey, typ AuthorityType, newAuthority *solana.PublicKey) *tx.Instruction {
	return tx.NewInstruction(ProgramID,
		data(InstructionSetAuthority, func(enc *bin.Encoder) error {
			if err := enc.WriteByte(byte(typ)); err != nil {
				return err
			}
			return layout.WriteOptionKey(enc, newAuthority)
		}),
		solana.NewAccountMeta(account, true, false),
		solana.NewAccountMeta(current, false, true),
	)
}

// MintTo builds a mint of amount into destination.
func MintTo(mint, destination, authority solana.PublicKey, amount uint64) *tx.Instruction {
	return tx.NewInstruction(ProgramID, amountData(InstructionMintTo, amount),
		solana.NewAccountMeta(mint, true, false),
		solana.NewAccountMeta(destination, true, false),
		solana.NewAccountMeta(authority, false, true),
	)
}

// FreezeAccount builds a freeze of account by the freeze authority of mint.
func FreezeAccount(account, mint, authority solana.PublicKey) *tx.Instruction {
	return tx.NewInstruction(ProgramID, data(InstructionFreezeAccount, nil),
		solana.NewAccountMeta(account, true, false),
		solana.NewAccountMeta(mint, false, false),
		solana.NewAccountMeta(authority, false, true),
	)
}

// ThawAccount builds a thaw of account by the freeze authority of mint.
func ThawAccount(account, mint, authority solana.PublicKey) *tx.Instruction {
	return tx.NewInstruction(ProgramID, data(InstructionThawAccount, nil),
		solana.NewAccountMeta(account, true, false),
		solana.NewAccountMeta(mint, false, false),
		solana.NewAccountMeta(authority, false, true),
	)
}

// InitializeAccount3 builds the initialization of a token account of mint held by owner.
func InitializeAccount3(account, mint, owner solana.PublicKey) *tx.Instruction {
	return tx.NewInstruction(ProgramID,
		data(InstructionInitializeAccount3, func(enc *bin.Encoder) error { return layout.WriteKey(enc, owner) }),
		solana.NewAccountMeta(account, true, false),
		solana.NewAccountMeta(mint, false, false),
	)
}

// InitializeMint2 builds the initialization of a mint.
func InitializeMint2(mint solana.PublicKey, decimals uint8, authority solana.PublicKey, freeze *solana.PublicKey) *tx.Instruction {
	return tx.NewInstruction(ProgramID,
		data(InstructionInitializeMint2, func(enc *bin.Encoder) error {
			if err := enc.WriteByte(decimals); err != nil {
				return err
			}
			if err := layout.WriteKey(enc, authority); err != nil {
				return err
			}
			return layout.WriteOptionKey(enc, freeze)
		}),
		solana.NewAccountMeta(mint, true, false),
	)
}
