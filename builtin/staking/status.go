// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/gagliardetto/solana-go"

	"github.com/vechain/nftstake/builtin/token"
)

// Status is the custody state of an (owner, NFT mint) pair.
type Status uint8

const (
	StatusUnstaked Status = iota
	StatusDelegated
	StatusStaked
	// StatusThawed is the state after unstaking, until the record is closed.
	StatusThawed
)

func (s Status) String() string {
	switch s {
	case StatusUnstaked:
		return "Unstaked"
	case StatusDelegated:
		return "Delegated"
	case StatusStaked:
		return "Staked"
	case StatusThawed:
		return "Delegated(thawed)"
	}
	return "Unknown"
}

// StatusOf derives the custody state from the stake record, nil when absent,
// and the owner's NFT token account, nil when absent.
func StatusOf(record *Record, account *token.Account, stakingAuthority solana.PublicKey) Status {
	switch {
	case account != nil && account.IsFrozen():
		return StatusStaked
	case record != nil:
		return StatusThawed
	case account != nil && account.Delegate != nil && *account.Delegate == stakingAuthority && account.DelegatedAmount == 1:
		return StatusDelegated
	default:
		return StatusUnstaked
	}
}
