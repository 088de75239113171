// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"

	"github.com/vechain/nftstake/ledger"
	"github.com/vechain/nftstake/log"
	"github.com/vechain/nftstake/state"
	"github.com/vechain/nftstake/tx"
	"github.com/vechain/nftstake/xenv"
)

var logger = log.WithContext("pkg", "runtime")

// Errors rejecting a transaction before anything is charged.
var (
	ErrInvalidFeePayer         = errors.New("fee payer is not a system account")
	ErrInsufficientFundsForFee = errors.New("insufficient funds for fee")
)

// Errors reverting a transaction at its end.
var (
	ErrInsufficientFundsForRent = errors.New("insufficient funds for rent")
	ErrUnbalancedTransaction    = errors.New("sum of account balances before and after transaction do not match")
)

// Runtime is to support transaction execution.
type Runtime struct {
	state                *state.State
	clock                ledger.Clock
	rent                 ledger.Rent
	programs             xenv.Programs
	lamportsPerSignature uint64
}

// New create a Runtime object.
func New(
	state *state.State,
	clock ledger.Clock,
	rent ledger.Rent,
	programs xenv.Programs,
	lamportsPerSignature uint64,
) *Runtime {
	return &Runtime{
		state:                state,
		clock:                clock,
		rent:                 rent,
		programs:             programs,
		lamportsPerSignature: lamportsPerSignature,
	}
}

func (rt *Runtime) State() *state.State { return rt.state }
func (rt *Runtime) Clock() ledger.Clock { return rt.clock }

// ExecuteTransaction executes a transaction.
// A returned error means the transaction is rejected and changed nothing. Otherwise
// the fee is charged and the receipt tells whether the instructions were reverted.
func (rt *Runtime) ExecuteTransaction(trx *tx.Transaction) (*tx.Receipt, error) {
	resolved, err := ResolveTransaction(trx)
	if err != nil {
		return nil, err
	}

	fee, err := rt.chargeFee(resolved.FeePayer, trx.Fee(rt.lamportsPerSignature))
	if err != nil {
		return nil, err
	}

	receipt := &tx.Receipt{
		Signature: trx.ID(),
		Slot:      rt.clock.Slot,
		BlockTime: uint64(rt.clock.UnixTimestamp),
		Fee:       fee,
	}

	// checkpoint to be reverted when any instruction fails.
	checkpoint := rt.state.NewCheckpoint()

	txCtx := xenv.NewTransactionContext(trx.ID(), resolved.FeePayer, rt.clock, rt.rent, rt.programs)
	err = rt.execute(resolved, txCtx)
	if err == nil {
		err = rt.finalize(txCtx)
	}
	if err != nil {
		rt.state.RevertTo(checkpoint)
		receipt.Reverted = true
		receipt.Err = err.Error()
		logger.Debug("transaction reverted", "sig", trx.ID(), "err", err)
	}
	receipt.Logs = txCtx.Logs()
	return receipt, nil
}

func (rt *Runtime) chargeFee(payer solana.PublicKey, fee uint64) (uint64, error) {
	acc, err := rt.state.GetAccount(payer)
	if err != nil {
		return 0, err
	}
	if acc.Owner != solana.SystemProgramID || len(acc.Data) != 0 {
		return 0, ErrInvalidFeePayer
	}
	if acc.Lamports < fee {
		return 0, ErrInsufficientFundsForFee
	}
	acc.Lamports -= fee
	rt.state.SetAccount(payer, acc)
	return fee, nil
}

func (rt *Runtime) execute(resolved *ResolvedTransaction, txCtx *xenv.TransactionContext) error {
	for i, ix := range resolved.Instructions {
		if err := rt.executeInstruction(ix, txCtx); err != nil {
			return errors.WithMessage(err, fmt.Sprintf("Error processing Instruction %d", i))
		}
	}
	return nil
}

func (rt *Runtime) executeInstruction(ix *ResolvedInstruction, txCtx *xenv.TransactionContext) (err error) {
	name := ix.Program.String()
	if p, ok := rt.programs.Lookup(ix.Program); ok {
		name = p.Name()
	}
	defer func() {
		if e := recover(); e != nil {
			err = errors.Errorf("program panicked: %v", e)
			logger.Error("program panicked", "program", name, "err", e)
		}
		result := "success"
		if err != nil {
			result = "failure"
		}
		metricInstructionCount().AddWithLabel(1, map[string]string{"program": name, "result": result})
	}()
	return xenv.Process(ix.Program, ix.Refs, ix.Data, 1, rt.state, txCtx)
}

// finalize applies the end of transaction checks on every written account.
func (rt *Runtime) finalize(txCtx *xenv.TransactionContext) error {
	keys, pre := txCtx.Touched()

	var before, after uint64
	for _, key := range keys {
		acc, err := rt.state.GetAccount(key)
		if err != nil {
			return err
		}
		before += pre[key]
		after += acc.Lamports

		if acc.Lamports != 0 && !rt.rent.IsExempt(acc.Lamports, uint64(len(acc.Data))) {
			return errors.WithMessagef(ErrInsufficientFundsForRent, "account %v", key)
		}
	}
	if before != after {
		return ErrUnbalancedTransaction
	}
	return nil
}
