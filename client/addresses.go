// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package client

import (
	"github.com/gagliardetto/solana-go"

	"github.com/vechain/nftstake/builtin/associated"
	"github.com/vechain/nftstake/builtin/metadata"
	"github.com/vechain/nftstake/builtin/staking"
)

// AddressBook holds every address derived for one owner staking one NFT
// against one reward mint.
type AddressBook struct {
	Owner      solana.PublicKey
	RewardMint solana.PublicKey
	NftMint    solana.PublicKey

	MintAuthority    solana.PublicKey
	StakingAuthority solana.PublicKey
	Record           solana.PublicKey
	NftAccount       solana.PublicKey
	RewardAccount    solana.PublicKey
	NftMetadata      solana.PublicKey
	NftEdition       solana.PublicKey
	RewardMetadata   solana.PublicKey
}

// NewAddressBook derives the addresses of owner, rewardMint and nftMint.
func NewAddressBook(owner, rewardMint, nftMint solana.PublicKey) (*AddressBook, error) {
	b := &AddressBook{
		Owner:      owner,
		RewardMint: rewardMint,
		NftMint:    nftMint,
	}
	var err error
	derive := func(dst *solana.PublicKey, fn func() (solana.PublicKey, uint8, error)) {
		if err != nil {
			return
		}
		*dst, _, err = fn()
	}
	derive(&b.MintAuthority, staking.MintAuthorityAddress)
	derive(&b.StakingAuthority, staking.StakingAuthorityAddress)
	derive(&b.Record, func() (solana.PublicKey, uint8, error) { return staking.RecordAddress(owner, nftMint) })
	derive(&b.NftAccount, func() (solana.PublicKey, uint8, error) { return associated.Address(owner, nftMint) })
	derive(&b.RewardAccount, func() (solana.PublicKey, uint8, error) { return associated.Address(owner, rewardMint) })
	derive(&b.NftMetadata, func() (solana.PublicKey, uint8, error) { return metadata.MetadataAddress(nftMint) })
	derive(&b.NftEdition, func() (solana.PublicKey, uint8, error) { return metadata.EditionAddress(nftMint) })
	derive(&b.RewardMetadata, func() (solana.PublicKey, uint8, error) { return metadata.MetadataAddress(rewardMint) })
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Entries lists the addresses with their names, in a stable order.
func (b *AddressBook) Entries() []Entry {
	return []Entry{
		{"owner", b.Owner},
		{"rewardMint", b.RewardMint},
		{"nftMint", b.NftMint},
		{"mintAuthority", b.MintAuthority},
		{"stakingAuthority", b.StakingAuthority},
		{"nftRecord", b.Record},
		{"nftAccount", b.NftAccount},
		{"rewardAccount", b.RewardAccount},
		{"nftMetadata", b.NftMetadata},
		{"nftEdition", b.NftEdition},
		{"rewardMetadata", b.RewardMetadata},
	}
}

type Entry struct {
	Name string
	Key  solana.PublicKey
}
