// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metadata

import (
	"github.com/gagliardetto/solana-go"
)

var (
	prefix  = []byte("metadata")
	edition = []byte("edition")
)

func metadataSeeds(mint solana.PublicKey) [][]byte {
	return [][]byte{prefix, ProgramID[:], mint[:]}
}

func editionSeeds(mint solana.PublicKey) [][]byte {
	return [][]byte{prefix, ProgramID[:], mint[:], edition}
}

// MetadataAddress derives the metadata account of mint.
func MetadataAddress(mint solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindTokenMetadataAddress(mint)
}

// EditionAddress derives the master edition account of mint.
func EditionAddress(mint solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress(editionSeeds(mint), ProgramID)
}

func withBump(seeds [][]byte, bump uint8) [][]byte {
	return append(append([][]byte(nil), seeds...), []byte{bump})
}
