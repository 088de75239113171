// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"time"

	"github.com/gagliardetto/solana-go"
)

// Constants of the ledger.
const (
	LamportsPerSOL       uint64 = 1_000_000_000
	LamportsPerSignature uint64 = 5000 // fee charged per transaction signature.

	SlotsPerEpoch uint64        = 432_000
	SlotInterval  time.Duration = 400 * time.Millisecond

	MaxInvokeDepth        = 4        // top-level instruction counts as depth 1.
	MaxPermittedDataLen   = 10 << 20 // max account data length.
	MaxInstructionsPerTx  = 64
	MaxAccountsPerIx      = 64
	RecentBlockhashWindow = 150
)

// Well-known accounts that are not exported by solana-go.
var (
	NativeLoaderID = solana.MustPublicKeyFromBase58("NativeLoader1111111111111111111111111111111")
	SysvarOwnerID  = solana.MustPublicKeyFromBase58("Sysvar1111111111111111111111111111111111111")
)
