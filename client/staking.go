// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package client

import (
	"github.com/vechain/nftstake/builtin/associated"
	"github.com/vechain/nftstake/builtin/staking"
	"github.com/vechain/nftstake/tx"
)

// Staking builds the instructions of the staking program for an address book.
type Staking struct {
	book *AddressBook
}

func NewStaking(book *AddressBook) *Staking {
	return &Staking{book}
}

func (s *Staking) Book() *AddressBook { return s.book }

// InitializeMint creates the reward mint, paid and signed by the owner.
// The reward mint key must sign too.
func (s *Staking) InitializeMint() *tx.Instruction {
	return staking.InitializeMint(s.book.Owner, s.book.RewardMint)
}

// CreateNft mints the NFT to the owner. The NFT mint key must sign too.
func (s *Staking) CreateNft(name, symbol, uri string) *tx.Instruction {
	return staking.CreateNft(s.book.Owner, s.book.NftMint, &staking.CreateNftArgs{
		Name:   name,
		Symbol: symbol,
		URI:    uri,
	})
}

func (s *Staking) DelegateNft() *tx.Instruction {
	return staking.DelegateNft(s.book.Owner, s.book.NftMint)
}

func (s *Staking) UndelegateNft() *tx.Instruction {
	return staking.UndelegateNft(s.book.Owner, s.book.NftMint)
}

func (s *Staking) StakeNft() *tx.Instruction {
	return staking.StakeNft(s.book.Owner, s.book.NftMint)
}

func (s *Staking) UnstakeNft() *tx.Instruction {
	return staking.UnstakeNft(s.book.Owner, s.book.NftMint)
}

// SendRewards settles the rewards. The reward token account must exist,
// see CreateRewardAccount.
func (s *Staking) SendRewards() *tx.Instruction {
	return staking.SendRewards(s.book.Owner, s.book.RewardMint, s.book.NftMint)
}

// CreateRewardAccount creates the owner's reward token account unless it exists.
func (s *Staking) CreateRewardAccount() *tx.Instruction {
	return associated.CreateIdempotent(s.book.Owner, s.book.Owner, s.book.RewardMint)
}

func (s *Staking) CloseRecord() *tx.Instruction {
	return staking.CloseRecord(s.book.Owner, s.book.NftMint)
}
