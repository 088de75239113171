// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package associated implements the associated token account program, which
// creates the canonical token account of a (wallet, mint) pair.
package associated

import (
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"

	"github.com/vechain/nftstake/builtin/reverts"
	"github.com/vechain/nftstake/builtin/system"
	"github.com/vechain/nftstake/builtin/token"
	"github.com/vechain/nftstake/tx"
	"github.com/vechain/nftstake/xenv"
)

// ProgramID is the id of the associated token account program.
var ProgramID = solana.SPLAssociatedTokenAccountProgramID

// Instruction tags. Empty data is read as Create.
const (
	InstructionCreate           byte = 0
	InstructionCreateIdempotent byte = 1
)

var ErrInvalidOwner = reverts.New("associated", 0, "InvalidOwner", "Associated token account owner does not match address derivation")

// Program is the associated token account program.
type Program struct{}

func New() *Program { return &Program{} }

func (p *Program) ID() solana.PublicKey { return ProgramID }
func (p *Program) Name() string         { return "associated" }

// Address derives the associated token account of wallet for mint.
func Address(wallet, mint solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindAssociatedTokenAddress(wallet, mint)
}

func (p *Program) Execute(env *xenv.Environment) error {
	idempotent := false
	switch data := env.Data(); {
	case len(data) == 0 || data[0] == InstructionCreate:
		env.Log("Create")
	case data[0] == InstructionCreateIdempotent:
		env.Log("CreateIdempotent")
		idempotent = true
	default:
		return xenv.ErrInvalidInstructionData
	}

	keys := make([]solana.PublicKey, 6)
	for i := range keys {
		k, err := env.Key(i)
		if err != nil {
			return err
		}
		keys[i] = k
	}
	payer, ata, wallet, mint, systemProgram, tokenProgram := keys[0], keys[1], keys[2], keys[3], keys[4], keys[5]
	if systemProgram != system.ProgramID || tokenProgram != token.ProgramID {
		return xenv.ErrIncorrectProgramID
	}

	seeds := [][]byte{wallet[:], tokenProgram[:], mint[:]}
	expected, bump, err := solana.FindProgramAddress(seeds, ProgramID)
	if err != nil {
		return err
	}
	if expected != ata {
		env.Log("Error: Associated address does not match seed derivation")
		return xenv.ErrInvalidSeeds
	}

	acc, err := env.Load(ata)
	if err != nil {
		return err
	}
	if idempotent && acc.Owner == token.ProgramID {
		existing, err := token.DecodeAccount(acc.Data)
		if err != nil {
			return xenv.ErrInvalidAccountData
		}
		if existing.Owner != wallet {
			return ErrInvalidOwner
		}
		if existing.Mint != mint {
			return token.ErrMintMismatch
		}
		return nil
	}

	mintAcc, err := env.Load(mint)
	if err != nil {
		return err
	}
	if mintAcc.Owner != token.ProgramID {
		return errors.WithMessagef(xenv.ErrIncorrectProgramID, "mint %v", mint)
	}

	signer := append(seeds, []byte{bump})
	create := system.CreateAccount(payer, ata, env.Rent().MinimumBalance(token.AccountSize), token.AccountSize, token.ProgramID)
	if err := env.Invoke(create, signer); err != nil {
		return err
	}
	env.Log("Initialize the associated token account")
	return env.Invoke(token.InitializeAccount3(ata, mint, wallet))
}

// Create builds the creation of the associated token account of wallet for mint.
func Create(payer, wallet, mint solana.PublicKey) *tx.Instruction {
	return create(InstructionCreate, payer, wallet, mint)
}

// CreateIdempotent builds a creation that succeeds when the account already exists.
func CreateIdempotent(payer, wallet, mint solana.PublicKey) *tx.Instruction {
	return create(InstructionCreateIdempotent, payer, wallet, mint)
}

func create(tag byte, payer, wallet, mint solana.PublicKey) *tx.Instruction {
	ata, _, _ := Address(wallet, mint)
	return tx.NewInstruction(ProgramID, []byte{tag},
		solana.NewAccountMeta(payer, true, true),
		solana.NewAccountMeta(ata, true, false),
		solana.NewAccountMeta(wallet, false, false),
		solana.NewAccountMeta(mint, false, false),
		solana.NewAccountMeta(system.ProgramID, false, false),
		solana.NewAccountMeta(token.ProgramID, false, false),
	)
}
