// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solo

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/gagliardetto/solana-go"

	"github.com/vechain/nftstake/kv"
	"github.com/vechain/nftstake/ledger"
	"github.com/vechain/nftstake/tx"
)

const (
	metaBucket    kv.Bucket = "m"
	receiptBucket kv.Bucket = "r"
)

var metaKey = []byte("head")

// meta is the persisted head of the node.
type meta struct {
	Slot uint64
	// unix seconds, stored unsigned for rlp
	LastTimestamp uint64
	EpochStart    uint64
	// oldest first, the last one is the latest blockhash
	Blockhashes []ledger.Bytes32
}

func (m *meta) latest() ledger.Bytes32 {
	return m.Blockhashes[len(m.Blockhashes)-1]
}

func (m *meta) isRecent(hash ledger.Bytes32) bool {
	for _, h := range m.Blockhashes {
		if h == hash {
			return true
		}
	}
	return false
}

// next moves to the next slot with the given blockhash, trimming the window.
func (m *meta) next(hash ledger.Bytes32, timestamp int64, window int) {
	m.Slot++
	m.LastTimestamp = uint64(timestamp)
	m.Blockhashes = append(m.Blockhashes, hash)
	if n := len(m.Blockhashes); n > window {
		m.Blockhashes = append([]ledger.Bytes32(nil), m.Blockhashes[n-window:]...)
	}
}

func (m *meta) lastTimestamp() int64 { return int64(m.LastTimestamp) }
func (m *meta) epochStart() int64    { return int64(m.EpochStart) }

func (m *meta) copy() *meta {
	cpy := *m
	cpy.Blockhashes = append([]ledger.Bytes32(nil), m.Blockhashes...)
	return &cpy
}

func loadMeta(db kv.Getter) (*meta, error) {
	data, err := metaBucket.NewGetter(db).Get(metaKey)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	var m meta
	if err := rlp.DecodeBytes(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func saveMeta(m *meta) func(kv.Putter) error {
	return func(w kv.Putter) error {
		data, err := rlp.EncodeToBytes(m)
		if err != nil {
			return err
		}
		return metaBucket.NewPutter(w).Put(metaKey, data)
	}
}

func saveReceipt(r *tx.Receipt) func(kv.Putter) error {
	return func(w kv.Putter) error {
		data, err := tx.EncodeReceipt(r)
		if err != nil {
			return err
		}
		return receiptBucket.NewPutter(w).Put(r.Signature[:], data)
	}
}

func loadReceipt(db kv.Getter, sig solana.Signature) (*tx.Receipt, error) {
	data, err := receiptBucket.NewGetter(db).Get(sig[:])
	if err != nil {
		if db.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return tx.DecodeReceipt(data)
}
