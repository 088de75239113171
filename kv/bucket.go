// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

import (
	"sync"

	"github.com/syndtr/goleveldb/leveldb/util"
)

// Bucket provides logical bucket for kv store.
type Bucket string

type buf struct {
	k []byte
}

var bufPool = sync.Pool{
	New: func() any {
		return &buf{}
	},
}

func (b Bucket) key(buf *buf, key []byte) []byte {
	buf.k = append(append(buf.k[:0], b...), key...)
	return buf.k
}

// NewGetter creates a bucket getter from the source getter.
func (b Bucket) NewGetter(src Getter) Getter {
	return &struct {
		GetFunc
		HasFunc
		IsNotFoundFunc
	}{
		func(key []byte) ([]byte, error) {
			buf := bufPool.Get().(*buf)
			defer bufPool.Put(buf)
			return src.Get(b.key(buf, key))
		},
		func(key []byte) (bool, error) {
			buf := bufPool.Get().(*buf)
			defer bufPool.Put(buf)
			return src.Has(b.key(buf, key))
		},
		src.IsNotFound,
	}
}

// NewPutter creates a bucket putter from the source putter.
// Keys are copied since batches may retain them.
func (b Bucket) NewPutter(src Putter) Putter {
	return &struct {
		PutFunc
		DeleteFunc
	}{
		func(key, val []byte) error {
			return src.Put(append([]byte(b), key...), val)
		},
		func(key []byte) error {
			return src.Delete(append([]byte(b), key...))
		},
	}
}

// NewGetPutter creates a bucket getter/putter from the source.
func (b Bucket) NewGetPutter(src GetPutter) GetPutter {
	return &struct {
		Getter
		Putter
	}{
		b.NewGetter(src),
		b.NewPutter(src),
	}
}

// Iterate traverses pairs of the bucket in the given range. Keys passed to fn have the bucket prefix trimmed.
func (b Bucket) Iterate(src Store, r Range, fn func(Pair) bool) error {
	rng := Range{Start: append([]byte(b), r.Start...)}
	if len(r.Limit) == 0 {
		rng.Limit = util.BytesPrefix([]byte(b)).Limit
	} else {
		rng.Limit = append([]byte(b), r.Limit...)
	}
	return src.Iterate(rng, func(pair Pair) bool {
		return fn(&struct {
			KeyFunc
			ValueFunc
		}{
			func() []byte { return pair.Key()[len(b):] },
			pair.Value,
		})
	})
}
