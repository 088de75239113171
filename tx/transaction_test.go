// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx_test

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/nftstake/ledger"
	"github.com/vechain/nftstake/tx"
)

func newKey(t *testing.T) solana.PrivateKey {
	key, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)
	return key
}

func buildTx(payer, other solana.PrivateKey) *tx.Transaction {
	program := solana.TokenProgramID
	return tx.NewBuilder(payer.PublicKey()).
		RecentBlockhash(ledger.Blake2b([]byte("genesis"))).
		Instruction(
			tx.NewInstruction(program, []byte{4, 1},
				solana.NewAccountMeta(other.PublicKey(), true, true),
				solana.NewAccountMeta(payer.PublicKey(), false, false),
			),
			tx.NewInstruction(program, []byte{5},
				solana.NewAccountMeta(other.PublicKey(), false, false),
			),
		).
		Nonce(7).
		Build()
}

func TestSigners(t *testing.T) {
	payer, other := newKey(t), newKey(t)
	trx := buildTx(payer, other)

	assert.Equal(t, []solana.PublicKey{payer.PublicKey(), other.PublicKey()}, trx.Signers())
	assert.Equal(t, uint64(10000), trx.Fee(ledger.LamportsPerSignature))
	assert.True(t, trx.IsSigner(other.PublicKey()))
	assert.False(t, trx.IsSigner(solana.TokenProgramID))

	metas := trx.AccountMetas()
	require.Len(t, metas, 3)
	assert.Equal(t, payer.PublicKey(), metas[0].PublicKey)
	assert.True(t, metas[0].IsSigner && metas[0].IsWritable)
	assert.True(t, metas[1].IsSigner && metas[1].IsWritable)
	assert.Equal(t, solana.TokenProgramID, metas[2].PublicKey)
	assert.False(t, metas[2].IsWritable)
}

func TestSignVerify(t *testing.T) {
	payer, other := newKey(t), newKey(t)
	trx := buildTx(payer, other)

	assert.ErrorIs(t, trx.Verify(), tx.ErrUnsigned)

	_, err := trx.Sign(payer)
	assert.Error(t, err, "missing signer key")

	signed, err := trx.Sign(other, payer, newKey(t))
	require.NoError(t, err)
	require.NoError(t, signed.Verify())
	assert.Equal(t, signed.Signatures()[0], signed.ID())

	// swapped signatures do not verify
	sigs := signed.Signatures()
	swapped := trx.WithSignatures(sigs[1], sigs[0])
	assert.ErrorIs(t, swapped.Verify(), tx.ErrInvalidSignature)

	assert.ErrorIs(t, trx.WithSignatures(sigs[0]).Verify(), tx.ErrSignatureMismatch)
}

func TestEncoding(t *testing.T) {
	payer, other := newKey(t), newKey(t)
	signed, err := buildTx(payer, other).Sign(payer, other)
	require.NoError(t, err)

	data, err := signed.MarshalBinary()
	require.NoError(t, err)

	var decoded tx.Transaction
	require.NoError(t, decoded.UnmarshalBinary(data))
	assert.Equal(t, signed.SigningHash(), decoded.SigningHash())
	assert.Equal(t, signed.Signatures(), decoded.Signatures())
	assert.Equal(t, uint64(7), decoded.Nonce())
	require.NoError(t, decoded.Verify())

	ixs := decoded.Instructions()
	require.Len(t, ixs, 2)
	payload, _ := ixs[0].Data()
	assert.Equal(t, []byte{4, 1}, payload)
}

func TestSigningHashCoversBody(t *testing.T) {
	payer, other := newKey(t), newKey(t)
	base := buildTx(payer, other).SigningHash()

	f := fuzz.New().NilChance(0)
	for range 20 {
		var nonce uint64
		f.Fuzz(&nonce)
		if nonce == 7 {
			continue
		}
		trx := tx.NewBuilder(payer.PublicKey()).
			RecentBlockhash(ledger.Blake2b([]byte("genesis"))).
			Instruction(buildTx(payer, other).Instructions()...).
			Nonce(nonce).
			Build()
		assert.NotEqual(t, base, trx.SigningHash())
	}
}

func TestValidate(t *testing.T) {
	payer := newKey(t)
	assert.ErrorIs(t, tx.NewBuilder(payer.PublicKey()).Build().Validate(), tx.ErrNoInstructions)

	b := tx.NewBuilder(payer.PublicKey())
	for range ledger.MaxInstructionsPerTx + 1 {
		b.Instruction(tx.NewInstruction(solana.SystemProgramID, nil))
	}
	assert.ErrorIs(t, b.Build().Validate(), tx.ErrTooManyIxs)
}

func TestReceiptCodec(t *testing.T) {
	r := &tx.Receipt{
		Slot:      3,
		BlockTime: 1700000000,
		Fee:       5000,
		Reverted:  true,
		Err:       "custom program error: 0x1771",
		Logs:      []string{"Program log: Instruction: StakeNft"},
	}
	data, err := tx.EncodeReceipt(r)
	require.NoError(t, err)
	dec, err := tx.DecodeReceipt(data)
	require.NoError(t, err)
	assert.Equal(t, r, dec)
	assert.True(t, dec.HasLog("StakeNft"))
}
