// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solo

import (
	"fmt"
	"strings"

	"github.com/vechain/nftstake/metrics"
	"github.com/vechain/nftstake/tx"
)

var (
	metricTxCount      = metrics.LazyLoadCounterVec("solo_tx_count", []string{"result"})
	metricSlot         = metrics.LazyLoadGauge("solo_slot")
	metricFee          = metrics.LazyLoadCounter("solo_fee_lamports")
	metricAirdrop      = metrics.LazyLoadCounter("solo_airdrop_lamports")
	metricRewardMinted = metrics.LazyLoadCounter("solo_reward_minted")
)

// rewardsMinted sums the rewards reported by the staking program in the receipt logs.
func rewardsMinted(r *tx.Receipt) uint64 {
	var total uint64
	for _, l := range r.Logs {
		i := strings.Index(l, "Sending ")
		if i < 0 {
			continue
		}
		var amount uint64
		if _, err := fmt.Sscanf(l[i:], "Sending %d reward tokens", &amount); err == nil {
			total += amount
		}
	}
	return total
}
