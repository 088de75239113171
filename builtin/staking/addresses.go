// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import "github.com/gagliardetto/solana-go"

// Seed tags of the program addresses.
var (
	MintAuthoritySeed    = []byte("mint-authority")
	StakingAuthoritySeed = []byte("staking-authority")
	RecordSeed           = []byte("nft_record")
)

func mintAuthoritySeeds() [][]byte    { return [][]byte{MintAuthoritySeed} }
func stakingAuthoritySeeds() [][]byte { return [][]byte{StakingAuthoritySeed} }

func recordSeeds(owner, mint solana.PublicKey) [][]byte {
	return [][]byte{RecordSeed, owner[:], mint[:]}
}

// MintAuthorityAddress derives the keyless mint authority of the reward mint.
func MintAuthorityAddress() (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress(mintAuthoritySeeds(), ProgramID)
}

// StakingAuthorityAddress derives the keyless custodian delegated over staked NFTs.
func StakingAuthorityAddress() (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress(stakingAuthoritySeeds(), ProgramID)
}

// RecordAddress derives the stake record of owner for mint.
func RecordAddress(owner, mint solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress(recordSeeds(owner, mint), ProgramID)
}

func withBump(seeds [][]byte, bump uint8) [][]byte {
	return append(seeds, []byte{bump})
}
