// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"io"

	"github.com/gagliardetto/solana-go"

	"github.com/vechain/nftstake/kv"
	"github.com/vechain/nftstake/ledger"
)

type change struct {
	key     solana.PublicKey
	account *Account
}

// Stage abstracts the changes of a state, ordered by key.
type Stage struct {
	store   *Store
	changes []change
}

func newStage(store *Store, changes map[solana.PublicKey]*Account) *Stage {
	list := make([]change, 0, len(changes))
	for key, acc := range changes {
		list = append(list, change{key, acc})
	}
	sortChanges(list)
	return &Stage{store: store, changes: list}
}

// Len returns the count of changed accounts.
func (s *Stage) Len() int { return len(s.changes) }

// Hash computes the digest of the staged changes.
func (s *Stage) Hash() (ledger.Bytes32, error) {
	var encErr error
	h := ledger.Blake2bFn(func(w io.Writer) {
		for _, c := range s.changes {
			w.Write(c.key[:])
			if c.account.IsEmpty() {
				continue
			}
			blob, err := encodeAccount(c.account)
			if err != nil {
				encErr = err
				return
			}
			w.Write(blob)
		}
	})
	if encErr != nil {
		return ledger.Bytes32{}, encErr
	}
	return h, nil
}

// Commit writes the staged changes. Each extra writer is applied to the same batch.
func (s *Stage) Commit(extra ...func(kv.Putter) error) error {
	return s.store.commit(s.changes, extra...)
}
