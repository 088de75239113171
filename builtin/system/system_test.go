// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package system_test

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/nftstake/builtin/system"
	"github.com/vechain/nftstake/ledger"
	"github.com/vechain/nftstake/test/datagen"
	"github.com/vechain/nftstake/test/testchain"
	"github.com/vechain/nftstake/tx"
)

func setup(t *testing.T) (*testchain.Chain, solana.PrivateKey) {
	chain, err := testchain.NewDefault()
	require.NoError(t, err)
	payer, err := chain.NewAccount(ledger.LamportsPerSOL)
	require.NoError(t, err)
	return chain, payer
}

func TestTransfer(t *testing.T) {
	chain, payer := setup(t)
	to := datagen.RandomPublicKey()
	amount := chain.Rent().MinimumBalance(0)

	receipt, err := chain.MustSucceed([]*tx.Instruction{system.Transfer(payer.PublicKey(), to, amount)}, payer)
	require.NoError(t, err)
	assert.Equal(t, ledger.LamportsPerSignature, receipt.Fee)

	balance, err := chain.Balance(to)
	require.NoError(t, err)
	assert.Equal(t, amount, balance)

	balance, err = chain.Balance(payer.PublicKey())
	require.NoError(t, err)
	assert.Equal(t, ledger.LamportsPerSOL-amount-ledger.LamportsPerSignature, balance)
}

func TestTransferInsufficient(t *testing.T) {
	chain, payer := setup(t)
	to := datagen.RandomPublicKey()

	receipt, err := chain.Send([]*tx.Instruction{system.Transfer(payer.PublicKey(), to, 2*ledger.LamportsPerSOL)}, payer)
	require.NoError(t, err)
	assert.True(t, receipt.Reverted)
	assert.Contains(t, receipt.Err, system.ErrResultWithNegativeLamports.Error())

	// the fee is charged anyway
	balance, err := chain.Balance(payer.PublicKey())
	require.NoError(t, err)
	assert.Equal(t, ledger.LamportsPerSOL-ledger.LamportsPerSignature, balance)
}

func TestTransferBelowRent(t *testing.T) {
	chain, payer := setup(t)
	to := datagen.RandomPublicKey()

	receipt, err := chain.Send([]*tx.Instruction{system.Transfer(payer.PublicKey(), to, 1)}, payer)
	require.NoError(t, err)
	assert.True(t, receipt.Reverted)
	assert.Contains(t, receipt.Err, "insufficient funds for rent")
}

func TestCreateAccount(t *testing.T) {
	chain, payer := setup(t)
	account := datagen.RandomKey()
	owner := datagen.RandomPublicKey()
	lamports := chain.Rent().MinimumBalance(10)

	create := system.CreateAccount(payer.PublicKey(), account.PublicKey(), lamports, 10, owner)
	_, err := chain.MustSucceed([]*tx.Instruction{create}, payer, account)
	require.NoError(t, err)

	acc, err := chain.Account(account.PublicKey())
	require.NoError(t, err)
	assert.Equal(t, owner, acc.Owner)
	assert.Equal(t, lamports, acc.Lamports)
	assert.Equal(t, make([]byte, 10), acc.Data)

	// the address is taken
	receipt, err := chain.Send([]*tx.Instruction{create}, payer, account)
	require.NoError(t, err)
	assert.True(t, receipt.Reverted)
	assert.Contains(t, receipt.Err, system.ErrAccountAlreadyInUse.Error())
}

func TestCreateAccountUnsigned(t *testing.T) {
	chain, payer := setup(t)
	account := datagen.RandomPublicKey()

	create := system.CreateAccount(payer.PublicKey(), account, chain.Rent().MinimumBalance(0), 0, datagen.RandomPublicKey())
	create.Metas[1].IsSigner = false
	receipt, err := chain.Send([]*tx.Instruction{create}, payer)
	require.NoError(t, err)
	assert.True(t, receipt.Reverted)
	assert.Contains(t, receipt.Err, "missing required signature")
}

func TestAssign(t *testing.T) {
	chain, payer := setup(t)
	owner := datagen.RandomPublicKey()

	account, err := chain.NewAccount(chain.Rent().MinimumBalance(0))
	require.NoError(t, err)
	_, err = chain.MustSucceed([]*tx.Instruction{system.Assign(account.PublicKey(), owner)}, payer, account)
	require.NoError(t, err)

	acc, err := chain.Account(account.PublicKey())
	require.NoError(t, err)
	assert.Equal(t, owner, acc.Owner)
}
