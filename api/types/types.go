// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package types holds the JSON bodies of the REST API.
package types

import (
	"encoding/base64"

	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"

	"github.com/vechain/nftstake/builtin/staking"
	"github.com/vechain/nftstake/builtin/token"
	"github.com/vechain/nftstake/ledger"
	"github.com/vechain/nftstake/state"
	"github.com/vechain/nftstake/tx"
)

// Blockhash is the latest blockhash with the clock of its slot.
type Blockhash struct {
	Blockhash     ledger.Bytes32 `json:"blockhash"`
	Slot          uint64         `json:"slot"`
	UnixTimestamp int64          `json:"unixTimestamp"`
}

type AirdropRequest struct {
	Address  string `json:"address"`
	Lamports uint64 `json:"lamports"`
}

type Account struct {
	Lamports   uint64 `json:"lamports"`
	Owner      string `json:"owner"`
	Executable bool   `json:"executable"`
	RentEpoch  uint64 `json:"rentEpoch"`
	// base64
	Data string `json:"data"`
}

func ConvertAccount(acc *state.Account) *Account {
	return &Account{
		Lamports:   acc.Lamports,
		Owner:      acc.Owner.String(),
		Executable: acc.Executable,
		RentEpoch:  acc.RentEpoch,
		Data:       base64.StdEncoding.EncodeToString(acc.Data),
	}
}

// ToState converts back to the ledger account.
func (a *Account) ToState() (*state.Account, error) {
	owner, err := solana.PublicKeyFromBase58(a.Owner)
	if err != nil {
		return nil, errors.WithMessage(err, "owner")
	}
	data, err := base64.StdEncoding.DecodeString(a.Data)
	if err != nil {
		return nil, errors.WithMessage(err, "data")
	}
	return &state.Account{
		Lamports:   a.Lamports,
		Owner:      owner,
		Executable: a.Executable,
		RentEpoch:  a.RentEpoch,
		Data:       data,
	}, nil
}

type TokenAccount struct {
	Mint            string  `json:"mint"`
	Owner           string  `json:"owner"`
	Amount          uint64  `json:"amount"`
	Delegate        *string `json:"delegate"`
	DelegatedAmount uint64  `json:"delegatedAmount"`
	State           string  `json:"state"`
	IsFrozen        bool    `json:"isFrozen"`
}

func ConvertTokenAccount(a *token.Account) *TokenAccount {
	ta := &TokenAccount{
		Mint:            a.Mint.String(),
		Owner:           a.Owner.String(),
		Amount:          a.Amount,
		DelegatedAmount: a.DelegatedAmount,
		State:           a.State.String(),
		IsFrozen:        a.IsFrozen(),
	}
	if a.Delegate != nil {
		d := a.Delegate.String()
		ta.Delegate = &d
	}
	return ta
}

// Stake is the custody state of an (owner, NFT mint) pair.
type Stake struct {
	Owner  string `json:"owner"`
	Mint   string `json:"mint"`
	Record string `json:"record"`
	Status string `json:"status"`
	// nil without a stake record
	StakedAt     *int64 `json:"stakedAt"`
	LastRewardAt *int64 `json:"lastRewardAt"`
	// reward claimable at the latest slot time
	PendingReward uint64 `json:"pendingReward"`
}

type RawTx struct {
	// base64 of the RLP encoded transaction
	Raw string `json:"raw"`
}

func EncodeRawTx(trx *tx.Transaction) (*RawTx, error) {
	data, err := trx.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return &RawTx{Raw: base64.StdEncoding.EncodeToString(data)}, nil
}

func (r *RawTx) Decode() (*tx.Transaction, error) {
	data, err := base64.StdEncoding.DecodeString(r.Raw)
	if err != nil {
		return nil, err
	}
	var trx tx.Transaction
	if err := trx.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return &trx, nil
}

type Receipt struct {
	Signature string   `json:"signature"`
	Slot      uint64   `json:"slot"`
	BlockTime uint64   `json:"blockTime"`
	Fee       uint64   `json:"fee"`
	Reverted  bool     `json:"reverted"`
	Err       string   `json:"err,omitempty"`
	Logs      []string `json:"logs"`
}

func ConvertReceipt(r *tx.Receipt) *Receipt {
	logs := r.Logs
	if logs == nil {
		logs = []string{}
	}
	return &Receipt{
		Signature: r.Signature.String(),
		Slot:      r.Slot,
		BlockTime: r.BlockTime,
		Fee:       r.Fee,
		Reverted:  r.Reverted,
		Err:       r.Err,
		Logs:      logs,
	}
}

// ToReceipt converts back to the ledger receipt.
func (r *Receipt) ToReceipt() (*tx.Receipt, error) {
	sig, err := solana.SignatureFromBase58(r.Signature)
	if err != nil {
		return nil, errors.WithMessage(err, "signature")
	}
	return &tx.Receipt{
		Signature: sig,
		Slot:      r.Slot,
		BlockTime: r.BlockTime,
		Fee:       r.Fee,
		Reverted:  r.Reverted,
		Err:       r.Err,
		Logs:      r.Logs,
	}, nil
}

// ConvertStake builds the stake view of owner and mint.
func ConvertStake(owner, mint, recordKey solana.PublicKey, rec *staking.Record, account *token.Account, rate uint64, now int64) *Stake {
	authority, _, _ := staking.StakingAuthorityAddress()
	s := &Stake{
		Owner:  owner.String(),
		Mint:   mint.String(),
		Record: recordKey.String(),
		Status: staking.StatusOf(rec, account, authority).String(),
	}
	if rec != nil {
		stakedAt, last := rec.StakedAt, rec.LastRewardAt
		s.StakedAt = &stakedAt
		s.LastRewardAt = &last
		// an overflowing reward is reported as zero, the program rejects it
		s.PendingReward, _ = staking.Reward(rate, last, now)
	}
	return s
}
