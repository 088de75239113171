// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"slices"

	"github.com/gagliardetto/solana-go"
	"github.com/qianbin/directcache"

	"github.com/vechain/nftstake/kv"
)

// AccountBucket is the kv bucket accounts are persisted in.
const AccountBucket kv.Bucket = "a"

// Store is the committed account store, a kv bucket fronted by a blob cache.
type Store struct {
	db       kv.Store
	accounts kv.GetPutter
	cache    *directcache.Cache
}

// NewStore creates the account store over db with a cache of cacheSizeMB megabytes.
func NewStore(db kv.Store, cacheSizeMB int) *Store {
	if cacheSizeMB <= 0 {
		cacheSizeMB = 16
	}
	return &Store{
		db:       db,
		accounts: AccountBucket.NewGetPutter(db),
		cache:    directcache.New(cacheSizeMB * 1024 * 1024),
	}
}

// DB returns the underlying kv store.
func (s *Store) DB() kv.Store { return s.db }

// Get loads the committed account. It returns nil if the account does not exist.
func (s *Store) Get(key solana.PublicKey) (*Account, error) {
	var blob []byte
	if s.cache.AdvGet(key[:], func(val []byte) {
		blob = slices.Clone(val)
	}, false) && len(blob) > 0 {
		metricAccountCounter().AddWithLabel(1, map[string]string{"type": "read", "target": "cache"})
		return decodeAccount(blob)
	}

	blob, err := s.accounts.Get(key[:])
	if err != nil {
		if s.accounts.IsNotFound(err) {
			return nil, nil
		}
		return nil, &Error{err}
	}
	metricAccountCounter().AddWithLabel(1, map[string]string{"type": "read", "target": "db"})
	s.cache.Set(key[:], blob)
	return decodeAccount(blob)
}

// Iterate traverses committed accounts in key order until fn returns false.
func (s *Store) Iterate(fn func(key solana.PublicKey, acc *Account) bool) error {
	var iterErr error
	err := AccountBucket.Iterate(s.db, kv.Range{}, func(pair kv.Pair) bool {
		acc, err := decodeAccount(pair.Value())
		if err != nil {
			iterErr = err
			return false
		}
		return fn(solana.PublicKeyFromBytes(pair.Key()), acc)
	})
	if err != nil {
		return &Error{err}
	}
	return iterErr
}

// commit writes changes and anything written by extra into one batch.
// Empty accounts are deleted.
func (s *Store) commit(changes []change, extra ...func(kv.Putter) error) error {
	batch := s.db.NewBatch()
	putter := AccountBucket.NewPutter(batch)

	blobs := make([][]byte, len(changes))
	for i, c := range changes {
		if c.account.IsEmpty() {
			if err := putter.Delete(c.key[:]); err != nil {
				return &Error{err}
			}
			continue
		}
		blob, err := encodeAccount(c.account)
		if err != nil {
			return &Error{err}
		}
		if err := putter.Put(c.key[:], blob); err != nil {
			return &Error{err}
		}
		blobs[i] = blob
	}
	for _, fn := range extra {
		if err := fn(batch); err != nil {
			return err
		}
	}
	if err := batch.Write(); err != nil {
		return &Error{err}
	}

	// cache is updated only after the batch lands
	for i, c := range changes {
		// an empty value is treated as a miss
		s.cache.Set(c.key[:], blobs[i])
	}
	metricAccountCounter().AddWithLabel(int64(len(changes)), map[string]string{"type": "write", "target": "db"})
	return nil
}

func sortChanges(changes []change) {
	slices.SortFunc(changes, func(a, b change) int {
		return bytes.Compare(a.key[:], b.key[:])
	})
}
