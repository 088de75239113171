// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package client drives the staking program through a ledger backend.
package client

import (
	"context"
	"math/rand/v2"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"

	"github.com/vechain/nftstake/builtin/staking"
	"github.com/vechain/nftstake/builtin/token"
	"github.com/vechain/nftstake/log"
	"github.com/vechain/nftstake/tx"
)

var logger = log.WithContext("pkg", "client")

// RevertError is returned when a transaction landed but its instructions reverted.
type RevertError struct {
	Receipt *tx.Receipt
}

func (e *RevertError) Error() string {
	return "transaction reverted: " + e.Receipt.Err
}

// Logs returns the program logs of the reverted transaction.
func (e *RevertError) Logs() string {
	return strings.Join(e.Receipt.Logs, "\n")
}

// Client sends transactions paid by one keypair.
type Client struct {
	backend Backend
	payer   solana.PrivateKey
}

func New(backend Backend, payer solana.PrivateKey) *Client {
	return &Client{backend, payer}
}

func (c *Client) Backend() Backend        { return c.backend }
func (c *Client) Payer() solana.PublicKey { return c.payer.PublicKey() }

// Send signs the instructions with the payer and the extra signers, sends them
// in one transaction and waits for the receipt. A reverted transaction gives a
// *RevertError along with its receipt.
func (c *Client) Send(ctx context.Context, ixs []*tx.Instruction, signers ...solana.PrivateKey) (*tx.Receipt, error) {
	blockhash, err := c.backend.LatestBlockhash(ctx)
	if err != nil {
		return nil, errors.WithMessage(err, "latest blockhash")
	}
	trx, err := tx.NewBuilder(c.payer.PublicKey()).
		RecentBlockhash(blockhash).
		Instruction(ixs...).
		Nonce(rand.Uint64()).
		Build().
		Sign(append([]solana.PrivateKey{c.payer}, signers...)...)
	if err != nil {
		return nil, err
	}
	receipt, err := c.backend.SendTransaction(ctx, trx)
	if err != nil {
		return nil, err
	}
	if receipt.Reverted {
		return receipt, &RevertError{receipt}
	}
	return receipt, nil
}

// Balance returns the lamports of key.
func (c *Client) Balance(ctx context.Context, key solana.PublicKey) (uint64, error) {
	acc, err := c.backend.GetAccount(ctx, key)
	if err != nil {
		return 0, err
	}
	return acc.Lamports, nil
}

// TokenAccount returns the token account at key, nil if there is none.
func (c *Client) TokenAccount(ctx context.Context, key solana.PublicKey) (*token.Account, error) {
	acc, err := c.backend.GetAccount(ctx, key)
	if err != nil {
		return nil, err
	}
	if acc.Owner != token.ProgramID || len(acc.Data) != token.AccountSize {
		return nil, nil
	}
	return token.DecodeAccount(acc.Data)
}

// Mint returns the mint at key, nil if there is none.
func (c *Client) Mint(ctx context.Context, key solana.PublicKey) (*token.Mint, error) {
	acc, err := c.backend.GetAccount(ctx, key)
	if err != nil {
		return nil, err
	}
	if acc.Owner != token.ProgramID || len(acc.Data) != token.MintSize {
		return nil, nil
	}
	return token.DecodeMint(acc.Data)
}

// Record returns the stake record at key, nil if there is none.
func (c *Client) Record(ctx context.Context, key solana.PublicKey) (*staking.Record, error) {
	acc, err := c.backend.GetAccount(ctx, key)
	if err != nil {
		return nil, err
	}
	if acc.Owner != staking.ProgramID || len(acc.Data) == 0 {
		return nil, nil
	}
	return staking.DecodeRecord(acc.Data)
}

// Status returns the custody state of the NFT of the address book.
func (c *Client) Status(ctx context.Context, book *AddressBook) (staking.Status, error) {
	rec, err := c.Record(ctx, book.Record)
	if err != nil {
		return 0, err
	}
	ta, err := c.TokenAccount(ctx, book.NftAccount)
	if err != nil {
		return 0, err
	}
	return staking.StatusOf(rec, ta, book.StakingAuthority), nil
}
