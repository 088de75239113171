// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package associated_test

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/nftstake/builtin/associated"
	"github.com/vechain/nftstake/builtin/system"
	"github.com/vechain/nftstake/builtin/token"
	"github.com/vechain/nftstake/ledger"
	"github.com/vechain/nftstake/test/datagen"
	"github.com/vechain/nftstake/test/testchain"
	"github.com/vechain/nftstake/tx"
	"github.com/vechain/nftstake/xenv"
)

func newMint(t *testing.T) (*testchain.Chain, solana.PrivateKey, solana.PublicKey) {
	chain, err := testchain.NewDefault()
	require.NoError(t, err)
	payer, err := chain.NewAccount(ledger.LamportsPerSOL)
	require.NoError(t, err)

	mint := datagen.RandomKey()
	_, err = chain.MustSucceed([]*tx.Instruction{
		system.CreateAccount(payer.PublicKey(), mint.PublicKey(), chain.Rent().MinimumBalance(token.MintSize), token.MintSize, token.ProgramID),
		token.InitializeMint2(mint.PublicKey(), 0, payer.PublicKey(), nil),
	}, payer, mint)
	require.NoError(t, err)
	return chain, payer, mint.PublicKey()
}

func TestCreate(t *testing.T) {
	chain, payer, mint := newMint(t)
	wallet := datagen.RandomPublicKey()

	_, err := chain.MustSucceed([]*tx.Instruction{associated.Create(payer.PublicKey(), wallet, mint)}, payer)
	require.NoError(t, err)

	ata, _, err := associated.Address(wallet, mint)
	require.NoError(t, err)
	acc, err := chain.TokenAccount(ata)
	require.NoError(t, err)
	assert.Equal(t, wallet, acc.Owner)
	assert.Equal(t, mint, acc.Mint)
	assert.Equal(t, uint64(0), acc.Amount)

	balance, err := chain.Balance(ata)
	require.NoError(t, err)
	assert.Equal(t, chain.Rent().MinimumBalance(token.AccountSize), balance)

	// a second plain create fails, the idempotent one does not
	receipt, err := chain.Send([]*tx.Instruction{associated.Create(payer.PublicKey(), wallet, mint)}, payer)
	require.NoError(t, err)
	assert.True(t, receipt.Reverted)
	assert.Contains(t, receipt.Err, system.ErrAccountAlreadyInUse.Error())

	_, err = chain.MustSucceed([]*tx.Instruction{associated.CreateIdempotent(payer.PublicKey(), wallet, mint)}, payer)
	assert.NoError(t, err)
}

func TestCreateIdempotentFresh(t *testing.T) {
	chain, payer, mint := newMint(t)
	wallet := datagen.RandomPublicKey()

	_, err := chain.MustSucceed([]*tx.Instruction{
		associated.CreateIdempotent(payer.PublicKey(), wallet, mint),
		associated.CreateIdempotent(payer.PublicKey(), wallet, mint),
	}, payer)
	require.NoError(t, err)

	ata, _, _ := associated.Address(wallet, mint)
	acc, err := chain.TokenAccount(ata)
	require.NoError(t, err)
	assert.Equal(t, wallet, acc.Owner)
}

func TestCreateWrongAddress(t *testing.T) {
	chain, payer, mint := newMint(t)
	wallet := datagen.RandomPublicKey()

	ix := tx.NewInstruction(associated.ProgramID, []byte{associated.InstructionCreate},
		solana.NewAccountMeta(payer.PublicKey(), true, true),
		solana.NewAccountMeta(datagen.RandomPublicKey(), true, false),
		solana.NewAccountMeta(wallet, false, false),
		solana.NewAccountMeta(mint, false, false),
		solana.NewAccountMeta(system.ProgramID, false, false),
		solana.NewAccountMeta(token.ProgramID, false, false),
	)
	receipt, err := chain.Send([]*tx.Instruction{ix}, payer)
	require.NoError(t, err)
	assert.True(t, receipt.Reverted)
	assert.Contains(t, receipt.Err, xenv.ErrInvalidSeeds.Error())
}

func TestCreateNotAMint(t *testing.T) {
	chain, payer, _ := newMint(t)
	notMint := datagen.RandomPublicKey()

	receipt, err := chain.Send([]*tx.Instruction{associated.Create(payer.PublicKey(), payer.PublicKey(), notMint)}, payer)
	require.NoError(t, err)
	assert.True(t, receipt.Reverted)
	assert.Contains(t, receipt.Err, xenv.ErrIncorrectProgramID.Error())
}
