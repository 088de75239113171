// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"bytes"

	"github.com/gagliardetto/solana-go"
)

var _ solana.Instruction = (*Instruction)(nil)

// Instruction is the basic execution unit of a transaction: a program, the
// accounts it may touch and the opaque data it decodes.
type Instruction struct {
	Program solana.PublicKey
	Metas   []*solana.AccountMeta
	Payload []byte
}

// NewInstruction create a new instruction instance.
func NewInstruction(program solana.PublicKey, data []byte, metas ...*solana.AccountMeta) *Instruction {
	return &Instruction{
		Program: program,
		Metas:   metas,
		Payload: bytes.Clone(data),
	}
}

// FromSolana converts any solana-go instruction.
func FromSolana(ix solana.Instruction) (*Instruction, error) {
	data, err := ix.Data()
	if err != nil {
		return nil, err
	}
	return NewInstruction(ix.ProgramID(), data, ix.Accounts()...), nil
}

// ProgramID implements solana.Instruction.
func (i *Instruction) ProgramID() solana.PublicKey { return i.Program }

// Accounts implements solana.Instruction.
func (i *Instruction) Accounts() []*solana.AccountMeta { return i.Metas }

// Data implements solana.Instruction.
func (i *Instruction) Data() ([]byte, error) { return i.Payload, nil }

// Copy returns a deep copy.
func (i *Instruction) Copy() *Instruction {
	metas := make([]*solana.AccountMeta, len(i.Metas))
	for j, m := range i.Metas {
		cpy := *m
		metas[j] = &cpy
	}
	return &Instruction{
		Program: i.Program,
		Metas:   metas,
		Payload: bytes.Clone(i.Payload),
	}
}
