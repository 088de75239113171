// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/vechain/nftstake/stackedmap"
)

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

func (e *Error) Unwrap() error { return e.cause }

// State manages the account arena on top of a committed store.
type State struct {
	store *Store
	sm    *stackedmap.StackedMap[solana.PublicKey, *Account] // keeps revisions of accounts
}

// New create state object.
func New(store *Store) *State {
	s := &State{store: store}
	s.sm = stackedmap.New[solana.PublicKey, *Account](s.load)
	return s
}

// load implements stackedmap.MapGetter.
func (s *State) load(key solana.PublicKey) (*Account, bool, error) {
	acc, err := s.store.Get(key)
	if err != nil {
		return nil, false, err
	}
	if acc == nil {
		return emptyAccount(), false, nil
	}
	return acc, true, nil
}

// GetAccount returns a copy of the account. A missing account reads as an
// empty system owned account.
func (s *State) GetAccount(key solana.PublicKey) (*Account, error) {
	acc, _, err := s.sm.Get(key)
	if err != nil {
		return nil, &Error{err}
	}
	return acc.Copy(), nil
}

// SetAccount replaces the account content.
func (s *State) SetAccount(key solana.PublicKey, acc *Account) {
	s.sm.Put(key, acc.Copy())
}

// Exists returns whether an account exists at the key.
func (s *State) Exists(key solana.PublicKey) (bool, error) {
	acc, _, err := s.sm.Get(key)
	if err != nil {
		return false, &Error{err}
	}
	return !acc.IsEmpty(), nil
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo revert to checkpoint specified by revision.
func (s *State) RevertTo(revision int) {
	if revision < 0 {
		panic("invalid revision")
	}
	s.sm.PopTo(revision)
	if s.sm.Depth() == 0 {
		s.sm.Push()
	}
}

// Changes returns the latest content of every account written since the state was created.
func (s *State) Changes() map[solana.PublicKey]*Account {
	changes := make(map[solana.PublicKey]*Account)
	s.sm.Journal(func(key solana.PublicKey, acc *Account) bool {
		changes[key] = acc
		return true
	})
	return changes
}

// Stage makes a stage object to compute hash of the changes or commit them.
func (s *State) Stage() *Stage {
	return newStage(s.store, s.Changes())
}
