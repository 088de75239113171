// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"strings"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/gagliardetto/solana-go"
)

// Receipt represents the results of a transaction.
type Receipt struct {
	Signature solana.Signature
	Slot      uint64
	BlockTime uint64
	// fee charged to the fee payer, kept when reverted
	Fee      uint64
	Reverted bool
	// the revert reason, empty on success
	Err  string
	Logs []string
}

// HasLog reports whether any log line contains substr.
func (r *Receipt) HasLog(substr string) bool {
	for _, l := range r.Logs {
		if strings.Contains(l, substr) {
			return true
		}
	}
	return false
}

// EncodeReceipt encodes the receipt for persistence.
func EncodeReceipt(r *Receipt) ([]byte, error) {
	return rlp.EncodeToBytes(r)
}

// DecodeReceipt decodes a persisted receipt.
func DecodeReceipt(data []byte) (*Receipt, error) {
	var r Receipt
	if err := rlp.DecodeBytes(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}
