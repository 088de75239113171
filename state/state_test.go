// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/nftstake/kv"
	"github.com/vechain/nftstake/lvldb"
)

func newTestStore(t *testing.T) *Store {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewStore(db, 1)
}

func TestMissingAccount(t *testing.T) {
	st := New(newTestStore(t))
	key := solana.NewWallet().PublicKey()

	acc, err := st.GetAccount(key)
	require.NoError(t, err)
	assert.True(t, acc.IsEmpty())
	assert.Equal(t, solana.SystemProgramID, acc.Owner)

	exists, err := st.Exists(key)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGetReturnsCopy(t *testing.T) {
	st := New(newTestStore(t))
	key := solana.NewWallet().PublicKey()

	st.SetAccount(key, &Account{Lamports: 10, Owner: solana.TokenProgramID, Data: []byte{1, 2, 3}})
	acc, err := st.GetAccount(key)
	require.NoError(t, err)
	acc.Data[0] = 9
	acc.Lamports = 0

	again, err := st.GetAccount(key)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), again.Lamports)
	assert.Equal(t, []byte{1, 2, 3}, again.Data)
}

func TestCheckpointRevert(t *testing.T) {
	st := New(newTestStore(t))
	a := solana.NewWallet().PublicKey()
	b := solana.NewWallet().PublicKey()

	st.SetAccount(a, &Account{Lamports: 1, Owner: solana.SystemProgramID})
	cp := st.NewCheckpoint()
	st.SetAccount(a, &Account{Lamports: 2, Owner: solana.SystemProgramID})
	st.SetAccount(b, &Account{Lamports: 3, Owner: solana.SystemProgramID})

	inner := st.NewCheckpoint()
	st.SetAccount(b, &Account{Lamports: 4, Owner: solana.SystemProgramID})
	st.RevertTo(inner)

	acc, _ := st.GetAccount(b)
	assert.Equal(t, uint64(3), acc.Lamports)

	st.RevertTo(cp)
	acc, _ = st.GetAccount(a)
	assert.Equal(t, uint64(1), acc.Lamports)
	exists, _ := st.Exists(b)
	assert.False(t, exists)

	assert.Len(t, st.Changes(), 1)
}

func TestStageCommit(t *testing.T) {
	store := newTestStore(t)
	a := solana.NewWallet().PublicKey()
	b := solana.NewWallet().PublicKey()

	st := New(store)
	st.SetAccount(a, &Account{Lamports: 100, Owner: solana.TokenProgramID, Data: make([]byte, 165)})
	st.SetAccount(b, &Account{Lamports: 5, Owner: solana.SystemProgramID})

	stage := st.Stage()
	assert.Equal(t, 2, stage.Len())
	h1, err := stage.Hash()
	require.NoError(t, err)
	h2, err := New(store).Stage().Hash()
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)

	metaKey := []byte("slot")
	require.NoError(t, stage.Commit(func(p kv.Putter) error {
		return kv.Bucket("m").NewPutter(p).Put(metaKey, []byte{1})
	}))

	st = New(store)
	acc, err := st.GetAccount(a)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), acc.Lamports)
	assert.Equal(t, solana.TokenProgramID, acc.Owner)
	assert.Len(t, acc.Data, 165)

	v, err := kv.Bucket("m").NewGetter(store.DB()).Get(metaKey)
	require.NoError(t, err)
	assert.Equal(t, []byte{1}, v)

	// drain b, which removes it on commit
	st.SetAccount(b, &Account{Owner: solana.SystemProgramID})
	require.NoError(t, st.Stage().Commit())

	committed, err := store.Get(b)
	require.NoError(t, err)
	assert.Nil(t, committed)

	var keys []solana.PublicKey
	require.NoError(t, store.Iterate(func(key solana.PublicKey, _ *Account) bool {
		keys = append(keys, key)
		return true
	}))
	assert.Equal(t, []solana.PublicKey{a}, keys)
}

func TestAccountCodec(t *testing.T) {
	acc := &Account{
		Lamports:   2039280,
		Owner:      solana.TokenProgramID,
		Executable: false,
		RentEpoch:  18446744073709551615,
		Data:       []byte("token account data"),
	}
	blob, err := encodeAccount(acc)
	require.NoError(t, err)
	dec, err := decodeAccount(blob)
	require.NoError(t, err)
	assert.True(t, acc.Equal(dec))

	_, err = decodeAccount([]byte{0xff, 0xff})
	assert.Error(t, err)
}
