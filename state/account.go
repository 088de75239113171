// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/gagliardetto/solana-go"
	"github.com/golang/snappy"
	"github.com/pkg/errors"
)

// Account is the ledger representation of an account.
// RLP encoded and snappy compressed objects are stored in the account bucket.
type Account struct {
	Lamports   uint64
	Owner      solana.PublicKey
	Executable bool
	RentEpoch  uint64
	Data       []byte
}

// emptyAccount returns the zero account, owned by the system program.
func emptyAccount() *Account {
	return &Account{Owner: solana.SystemProgramID}
}

// IsEmpty returns if an account is empty.
// An empty account holds no lamports, no data and is not executable.
func (a *Account) IsEmpty() bool {
	return a.Lamports == 0 && len(a.Data) == 0 && !a.Executable
}

// Copy returns a deep copy of the account.
func (a *Account) Copy() *Account {
	cpy := *a
	if a.Data != nil {
		cpy.Data = bytes.Clone(a.Data)
	}
	return &cpy
}

// Equal reports whether the two accounts hold identical content.
func (a *Account) Equal(other *Account) bool {
	return a.Lamports == other.Lamports &&
		a.Owner == other.Owner &&
		a.Executable == other.Executable &&
		a.RentEpoch == other.RentEpoch &&
		bytes.Equal(a.Data, other.Data)
}

func encodeAccount(a *Account) ([]byte, error) {
	enc, err := rlp.EncodeToBytes(a)
	if err != nil {
		return nil, errors.Wrap(err, "encode account")
	}
	return snappy.Encode(nil, enc), nil
}

func decodeAccount(blob []byte) (*Account, error) {
	dec, err := snappy.Decode(nil, blob)
	if err != nil {
		return nil, errors.Wrap(err, "decompress account")
	}
	var a Account
	if err := rlp.DecodeBytes(dec, &a); err != nil {
		return nil, errors.Wrap(err, "decode account")
	}
	return &a, nil
}
