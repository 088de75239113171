// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package client

import (
	"context"

	"github.com/gagliardetto/solana-go"

	"github.com/vechain/nftstake/ledger"
	"github.com/vechain/nftstake/solo"
	"github.com/vechain/nftstake/state"
	"github.com/vechain/nftstake/tx"
)

// Backend is the ledger the client talks to.
type Backend interface {
	LatestBlockhash(ctx context.Context) (ledger.Bytes32, error)
	// SendTransaction returns the receipt of a landed transaction, reverted or not,
	// and an error when the ledger refused it.
	SendTransaction(ctx context.Context, trx *tx.Transaction) (*tx.Receipt, error)
	GetAccount(ctx context.Context, key solana.PublicKey) (*state.Account, error)
	Airdrop(ctx context.Context, to solana.PublicKey, lamports uint64) (*tx.Receipt, error)
}

// Local is the backend of an in-process node.
type Local struct {
	node *solo.Node
}

var _ Backend = (*Local)(nil)

func NewLocal(node *solo.Node) *Local {
	return &Local{node}
}

func (l *Local) LatestBlockhash(_ context.Context) (ledger.Bytes32, error) {
	return l.node.LatestBlockhash(), nil
}

func (l *Local) SendTransaction(_ context.Context, trx *tx.Transaction) (*tx.Receipt, error) {
	return l.node.SendTransaction(trx)
}

func (l *Local) GetAccount(_ context.Context, key solana.PublicKey) (*state.Account, error) {
	return l.node.GetAccount(key)
}

func (l *Local) Airdrop(_ context.Context, to solana.PublicKey, lamports uint64) (*tx.Receipt, error) {
	return l.node.Airdrop(to, lamports)
}
