// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"

	"github.com/vechain/nftstake/tx"
	"github.com/vechain/nftstake/xenv"
)

// ResolvedInstruction is an instruction with the account privileges granted by the transaction.
type ResolvedInstruction struct {
	Program solana.PublicKey
	Refs    []xenv.AccountRef
	Data    []byte
}

// ResolvedTransaction resolve the transaction according to the ledger rules.
type ResolvedTransaction struct {
	tx           *tx.Transaction
	FeePayer     solana.PublicKey
	Instructions []*ResolvedInstruction
}

// ResolveTransaction checks the shape and signatures of the transaction and
// resolves the privileges of every account it references. An account is a
// signer or writable in every instruction if it is so anywhere in the message.
func ResolveTransaction(trx *tx.Transaction) (*ResolvedTransaction, error) {
	if err := trx.Validate(); err != nil {
		return nil, err
	}
	if err := trx.Verify(); err != nil {
		return nil, errors.WithMessage(err, "verify signatures")
	}

	privileges := make(map[solana.PublicKey]*solana.AccountMeta)
	for _, m := range trx.AccountMetas() {
		privileges[m.PublicKey] = m
	}

	ixs := trx.Instructions()
	resolved := make([]*ResolvedInstruction, 0, len(ixs))
	for _, ix := range ixs {
		refs := make([]xenv.AccountRef, 0, len(ix.Metas))
		for _, m := range ix.Metas {
			p := privileges[m.PublicKey]
			refs = append(refs, xenv.AccountRef{
				Key:        m.PublicKey,
				IsSigner:   p.IsSigner,
				IsWritable: p.IsWritable,
			})
		}
		resolved = append(resolved, &ResolvedInstruction{
			Program: ix.Program,
			Refs:    refs,
			Data:    ix.Payload,
		})
	}
	return &ResolvedTransaction{
		tx:           trx,
		FeePayer:     trx.FeePayer(),
		Instructions: resolved,
	}, nil
}
