// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package lvldb

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/nftstake/kv"
)

func TestLevelDB(t *testing.T) {
	var (
		key        = []byte("123")
		value      = []byte("456")
		inValidKey = []byte("abc")
	)

	persisted, err := New(filepath.Join(t.TempDir(), "main.db"), Options{16, 16})
	require.NoError(t, err)
	defer persisted.Close()

	mem, err := NewMem()
	require.NoError(t, err)
	defer mem.Close()

	for _, db := range []*LevelDB{persisted, mem} {
		require.NoError(t, db.Put(key, value))

		got, err := db.Get(key)
		require.NoError(t, err)
		assert.Equal(t, value, got)

		has, err := db.Has(key)
		require.NoError(t, err)
		assert.True(t, has)

		has, err = db.Has(inValidKey)
		require.NoError(t, err)
		assert.False(t, has)

		require.NoError(t, db.Delete(key))
		_, err = db.Get(key)
		assert.True(t, db.IsNotFound(err))
	}
}

func TestLevelDBBatch(t *testing.T) {
	db, err := NewMem()
	require.NoError(t, err)
	defer db.Close()

	batch := db.NewBatch()
	require.NoError(t, batch.Put([]byte("a"), []byte("1")))
	require.NoError(t, batch.Put([]byte("b"), []byte("2")))
	require.NoError(t, batch.Delete([]byte("c")))
	assert.Equal(t, 3, batch.Len())

	has, err := db.Has([]byte("a"))
	require.NoError(t, err)
	assert.False(t, has, "batch not written yet")

	require.NoError(t, batch.Write())

	var pairs [][2]string
	require.NoError(t, db.Iterate(kv.Range{}, func(p kv.Pair) bool {
		pairs = append(pairs, [2]string{string(p.Key()), string(p.Value())})
		return true
	}))
	assert.Equal(t, [][2]string{{"a", "1"}, {"b", "2"}}, pairs)

	var n int
	require.NoError(t, db.Iterate(kv.Range{Start: []byte("b")}, func(p kv.Pair) bool {
		n++
		return false
	}))
	assert.Equal(t, 1, n)
}

func TestLevelDBReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.db")

	db, err := New(path, Options{})
	require.NoError(t, err)
	require.NoError(t, db.Put([]byte("k"), []byte("v")))
	require.NoError(t, db.Close())

	db, err = New(path, Options{})
	require.NoError(t, err)
	defer db.Close()

	got, err := db.Get([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)
}
