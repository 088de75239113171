// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/nftstake/kv"
	"github.com/vechain/nftstake/lvldb"
)

func TestBucket(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	accounts := kv.Bucket("a")
	meta := kv.Bucket("m")

	require.NoError(t, accounts.NewPutter(db).Put([]byte("k1"), []byte("v1")))
	require.NoError(t, accounts.NewPutter(db).Put([]byte("k2"), []byte("v2")))
	require.NoError(t, meta.NewPutter(db).Put([]byte("k1"), []byte("m1")))

	v, err := accounts.NewGetter(db).Get([]byte("k1"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), v)

	v, err = db.Get([]byte("mk1"))
	require.NoError(t, err)
	assert.Equal(t, []byte("m1"), v)

	has, err := meta.NewGetter(db).Has([]byte("k2"))
	require.NoError(t, err)
	assert.False(t, has)

	_, err = meta.NewGetter(db).Get([]byte("k2"))
	assert.True(t, meta.NewGetter(db).IsNotFound(err))

	var keys []string
	require.NoError(t, accounts.Iterate(db, kv.Range{}, func(p kv.Pair) bool {
		keys = append(keys, string(p.Key()))
		return true
	}))
	assert.Equal(t, []string{"k1", "k2"}, keys)

	batch := db.NewBatch()
	require.NoError(t, accounts.NewPutter(batch).Delete([]byte("k1")))
	assert.Equal(t, 1, batch.Len())
	require.NoError(t, batch.Write())

	has, err = accounts.NewGetter(db).Has([]byte("k1"))
	require.NoError(t, err)
	assert.False(t, has)
}
