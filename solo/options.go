// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solo

import (
	"time"

	"github.com/vechain/nftstake/builtin"
	"github.com/vechain/nftstake/ledger"
)

// Options configures a Node.
type Options struct {
	Builtin              builtin.Config
	LamportsPerSignature uint64
	// BlockhashWindow is the count of recent blockhashes a transaction may reference.
	BlockhashWindow int
	// SlotInterval advances empty slots in Run. Zero disables the ticker.
	SlotInterval time.Duration
	ReceiptCacheSize int
	StateCacheMB     int
	// Now is the wall clock feeding the clock sysvar. Defaults to time.Now.
	Now func() time.Time
}

// DefaultOptions returns the options of a local node.
func DefaultOptions() Options {
	return Options{
		Builtin:              builtin.DefaultConfig(),
		LamportsPerSignature: ledger.LamportsPerSignature,
		BlockhashWindow:      ledger.RecentBlockhashWindow,
		SlotInterval:         0,
		ReceiptCacheSize:     1024,
		StateCacheMB:         64,
		Now:                  time.Now,
	}
}

func (o *Options) normalize() {
	def := DefaultOptions()
	if o.LamportsPerSignature == 0 {
		o.LamportsPerSignature = def.LamportsPerSignature
	}
	if o.BlockhashWindow <= 0 {
		o.BlockhashWindow = def.BlockhashWindow
	}
	if o.ReceiptCacheSize <= 0 {
		o.ReceiptCacheSize = def.ReceiptCacheSize
	}
	if o.StateCacheMB <= 0 {
		o.StateCacheMB = def.StateCacheMB
	}
	if o.Now == nil {
		o.Now = def.Now
	}
}
