// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package xenv

import (
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/vechain/nftstake/ledger"
)

// TransactionContext is shared by every instruction of a transaction,
// including cross-program invocations.
type TransactionContext struct {
	Signature solana.Signature
	FeePayer  solana.PublicKey
	Clock     ledger.Clock
	Rent      ledger.Rent
	Programs  Programs

	logs    []string
	stack   []solana.PublicKey
	touched map[solana.PublicKey]uint64 // lamports before the first write
	order   []solana.PublicKey
}

// NewTransactionContext creates the context.
func NewTransactionContext(sig solana.Signature, feePayer solana.PublicKey, clock ledger.Clock, rent ledger.Rent, programs Programs) *TransactionContext {
	return &TransactionContext{
		Signature: sig,
		FeePayer:  feePayer,
		Clock:     clock,
		Rent:      rent,
		Programs:  programs,
		touched:   make(map[solana.PublicKey]uint64),
	}
}

// Logs returns the log lines produced so far.
func (c *TransactionContext) Logs() []string {
	return append([]string(nil), c.logs...)
}

// Logf appends a formatted log line.
func (c *TransactionContext) Logf(format string, args ...any) {
	c.logs = append(c.logs, fmt.Sprintf(format, args...))
}

// Touched returns the written accounts in order of first write, with their
// lamports before that write.
func (c *TransactionContext) Touched() ([]solana.PublicKey, map[solana.PublicKey]uint64) {
	return append([]solana.PublicKey(nil), c.order...), c.touched
}

func (c *TransactionContext) touch(key solana.PublicKey, lamports uint64) {
	if _, ok := c.touched[key]; !ok {
		c.touched[key] = lamports
		c.order = append(c.order, key)
	}
}

func (c *TransactionContext) onStack(program solana.PublicKey) bool {
	for _, p := range c.stack {
		if p == program {
			return true
		}
	}
	return false
}
