// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package system implements the native program owning fresh accounts: it
// creates and funds accounts and hands them over to other programs.
package system

import (
	"bytes"
	"encoding/binary"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"

	"github.com/vechain/nftstake/builtin/layout"
	"github.com/vechain/nftstake/builtin/reverts"
	"github.com/vechain/nftstake/ledger"
	"github.com/vechain/nftstake/tx"
	"github.com/vechain/nftstake/xenv"
)

// ProgramID is the id of the system program.
var ProgramID = solana.SystemProgramID

// Instruction tags, encoded as u32.
const (
	InstructionCreateAccount uint32 = 0
	InstructionAssign        uint32 = 1
	InstructionTransfer      uint32 = 2
)

var (
	ErrAccountAlreadyInUse        = reverts.New("system", 0, "AccountAlreadyInUse", "an account with the same address already exists")
	ErrResultWithNegativeLamports = reverts.New("system", 1, "ResultWithNegativeLamports", "account does not have enough SOL to perform the operation")
	ErrInvalidAccountDataLength   = reverts.New("system", 3, "InvalidAccountDataLength", "cannot allocate account data of this length")
)

// Program is the system program.
type Program struct{}

func New() *Program { return &Program{} }

func (p *Program) ID() solana.PublicKey { return ProgramID }
func (p *Program) Name() string         { return "system" }

func (p *Program) Execute(env *xenv.Environment) error {
	data := env.Data()
	if len(data) < 4 {
		return xenv.ErrInvalidInstructionData
	}
	dec := bin.NewBinDecoder(data[4:])

	switch binary.LittleEndian.Uint32(data) {
	case InstructionCreateAccount:
		var args createAccountArgs
		if err := args.UnmarshalWithDecoder(dec); err != nil {
			return errors.Wrap(xenv.ErrInvalidInstructionData, err.Error())
		}
		return createAccount(env, args)
	case InstructionAssign:
		owner, err := layout.ReadKey(dec)
		if err != nil {
			return errors.Wrap(xenv.ErrInvalidInstructionData, err.Error())
		}
		return assign(env, owner)
	case InstructionTransfer:
		lamports, err := dec.ReadUint64(bin.LE)
		if err != nil {
			return errors.Wrap(xenv.ErrInvalidInstructionData, err.Error())
		}
		return transfer(env, lamports)
	default:
		return xenv.ErrInvalidInstructionData
	}
}

type createAccountArgs struct {
	Lamports uint64
	Space    uint64
	Owner    solana.PublicKey
}

func (a *createAccountArgs) MarshalWithEncoder(enc *bin.Encoder) error {
	if err := enc.WriteUint64(a.Lamports, bin.LE); err != nil {
		return err
	}
	if err := enc.WriteUint64(a.Space, bin.LE); err != nil {
		return err
	}
	return layout.WriteKey(enc, a.Owner)
}

func (a *createAccountArgs) UnmarshalWithDecoder(dec *bin.Decoder) (err error) {
	if a.Lamports, err = dec.ReadUint64(bin.LE); err != nil {
		return err
	}
	if a.Space, err = dec.ReadUint64(bin.LE); err != nil {
		return err
	}
	a.Owner, err = layout.ReadKey(dec)
	return err
}

func createAccount(env *xenv.Environment, args createAccountArgs) error {
	fromKey, err := env.RequireSigner(0)
	if err != nil {
		return err
	}
	toKey, err := env.RequireSigner(1)
	if err != nil {
		return err
	}

	to, err := env.Load(toKey)
	if err != nil {
		return err
	}
	if to.Lamports > 0 || len(to.Data) > 0 || to.Owner != ProgramID {
		env.Log("Create Account: account %v already in use", toKey)
		return ErrAccountAlreadyInUse
	}
	if args.Space > ledger.MaxPermittedDataLen {
		return ErrInvalidAccountDataLength
	}

	to.Data = make([]byte, args.Space)
	to.Owner = args.Owner
	if err := env.Store(toKey, to); err != nil {
		return err
	}
	return move(env, fromKey, toKey, args.Lamports)
}

func assign(env *xenv.Environment, owner solana.PublicKey) error {
	key, err := env.RequireSigner(0)
	if err != nil {
		return err
	}
	acc, err := env.Load(key)
	if err != nil {
		return err
	}
	if acc.Owner == owner {
		return nil
	}
	acc.Owner = owner
	return env.Store(key, acc)
}

func transfer(env *xenv.Environment, lamports uint64) error {
	fromKey, err := env.RequireSigner(0)
	if err != nil {
		return err
	}
	toKey, err := env.Key(1)
	if err != nil {
		return err
	}
	return move(env, fromKey, toKey, lamports)
}

func move(env *xenv.Environment, fromKey, toKey solana.PublicKey, lamports uint64) error {
	from, err := env.Load(fromKey)
	if err != nil {
		return err
	}
	if len(from.Data) > 0 {
		env.Log("Transfer: `from` must not carry data")
		return xenv.ErrInvalidArgument
	}
	if from.Lamports < lamports {
		env.Log("Transfer: insufficient lamports %d, need %d", from.Lamports, lamports)
		return ErrResultWithNegativeLamports
	}
	if fromKey == toKey {
		return nil
	}
	from.Lamports -= lamports
	if err := env.Store(fromKey, from); err != nil {
		return err
	}

	to, err := env.Load(toKey)
	if err != nil {
		return err
	}
	to.Lamports += lamports
	return env.Store(toKey, to)
}

func encode(tag uint32, args layout.Marshaler) []byte {
	buf := new(bytes.Buffer)
	enc := bin.NewBinEncoder(buf)
	_ = enc.WriteUint32(tag, bin.LE)
	if args != nil {
		_ = args.MarshalWithEncoder(enc)
	}
	return buf.Bytes()
}

type keyArg solana.PublicKey

func (k *keyArg) MarshalWithEncoder(enc *bin.Encoder) error {
	return layout.WriteKey(enc, solana.PublicKey(*k))
}

type u64Arg uint64

func (v *u64Arg) MarshalWithEncoder(enc *bin.Encoder) error {
	return enc.WriteUint64(uint64(*v), bin.LE)
}

// CreateAccount builds an instruction creating newAccount with space bytes, funded by from and owned by owner.
func CreateAccount(from, newAccount solana.PublicKey, lamports, space uint64, owner solana.PublicKey) *tx.Instruction {
	return tx.NewInstruction(ProgramID,
		encode(InstructionCreateAccount, &createAccountArgs{Lamports: lamports, Space: space, Owner: owner}),
		solana.NewAccountMeta(from, true, true),
		solana.NewAccountMeta(newAccount, true, true),
	)
}

// Assign builds an instruction assigning account to owner.
func Assign(account, owner solana.PublicKey) *tx.Instruction {
	arg := keyArg(owner)
	return tx.NewInstruction(ProgramID,
		encode(InstructionAssign, &arg),
		solana.NewAccountMeta(account, true, true),
	)
}

// Transfer builds a lamport transfer.
func Transfer(from, to solana.PublicKey, lamports uint64) *tx.Instruction {
	arg := u64Arg(lamports)
	return tx.NewInstruction(ProgramID,
		encode(InstructionTransfer, &arg),
		solana.NewAccountMeta(from, true, true),
		solana.NewAccountMeta(to, true, false),
	)
}
