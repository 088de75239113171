// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"github.com/gagliardetto/solana-go"

	"github.com/vechain/nftstake/ledger"
)

// Builder to make it easy to build transaction.
type Builder struct {
	body body
}

// NewBuilder creates a builder with the fee payer set.
func NewBuilder(feePayer solana.PublicKey) *Builder {
	return &Builder{body: body{FeePayer: feePayer}}
}

// FeePayer set fee payer.
func (b *Builder) FeePayer(payer solana.PublicKey) *Builder {
	b.body.FeePayer = payer
	return b
}

// RecentBlockhash set recent blockhash.
func (b *Builder) RecentBlockhash(hash ledger.Bytes32) *Builder {
	b.body.RecentBlockhash = hash
	return b
}

// Instruction add instructions.
func (b *Builder) Instruction(ixs ...*Instruction) *Builder {
	for _, ix := range ixs {
		b.body.Instructions = append(b.body.Instructions, ix.Copy())
	}
	return b
}

// Nonce set nonce.
func (b *Builder) Nonce(nonce uint64) *Builder {
	b.body.Nonce = nonce
	return b
}

// Build build tx object.
func (b *Builder) Build() *Transaction {
	body := b.body
	body.Instructions = append([]*Instruction(nil), b.body.Instructions...)
	return &Transaction{body: body}
}
