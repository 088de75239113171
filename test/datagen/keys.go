// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package datagen

import (
	"github.com/gagliardetto/solana-go"
)

// RandomKey generates a new ed25519 keypair.
func RandomKey() solana.PrivateKey {
	key, err := solana.NewRandomPrivateKey()
	if err != nil {
		panic(err)
	}
	return key
}

// RandomPublicKey returns the public key of a fresh keypair.
func RandomPublicKey() solana.PublicKey {
	return RandomKey().PublicKey()
}
