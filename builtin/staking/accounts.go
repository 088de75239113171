// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"

	"github.com/vechain/nftstake/builtin/associated"
	"github.com/vechain/nftstake/builtin/layout"
	"github.com/vechain/nftstake/builtin/metadata"
	"github.com/vechain/nftstake/builtin/token"
	"github.com/vechain/nftstake/state"
	"github.com/vechain/nftstake/xenv"
)

// accounts are the keys passed to one instruction, checked one by one.
type accounts struct {
	env  *xenv.Environment
	keys []solana.PublicKey
}

func resolve(env *xenv.Environment, n int) (*accounts, error) {
	if env.NumAccounts() < n {
		return nil, xenv.ErrNotEnoughAccountKeys
	}
	keys := make([]solana.PublicKey, n)
	for i := range keys {
		keys[i], _ = env.Key(i)
	}
	return &accounts{env: env, keys: keys}, nil
}

func (a *accounts) signer(i int) (solana.PublicKey, error) {
	key := a.keys[i]
	if !a.env.IsSigner(key) {
		return key, errors.WithMessagef(ErrMissingSigner, "%v", key)
	}
	return key, nil
}

// derived checks that the i-th key is the program address derived from seeds
// and returns its bump.
func (a *accounts) derived(i int, seeds [][]byte, program solana.PublicKey) (uint8, error) {
	expected, bump, err := solana.FindProgramAddress(seeds, program)
	if err != nil {
		return 0, err
	}
	if expected != a.keys[i] {
		return 0, errors.WithMessagef(ErrInvalidDerivation, "account %d: expected %v, got %v", i, expected, a.keys[i])
	}
	return bump, nil
}

func (a *accounts) expect(i int, expected solana.PublicKey) error {
	if expected != a.keys[i] {
		return errors.WithMessagef(ErrInvalidDerivation, "account %d: expected %v, got %v", i, expected, a.keys[i])
	}
	return nil
}

func (a *accounts) programs(from int, ids ...solana.PublicKey) error {
	for j, id := range ids {
		if a.keys[from+j] != id {
			return errors.WithMessagef(xenv.ErrIncorrectProgramID, "account %d", from+j)
		}
	}
	return nil
}

func (a *accounts) mint(i int) (*token.Mint, error) {
	acc, err := a.env.Load(a.keys[i])
	if err != nil {
		return nil, err
	}
	if acc.Owner != token.ProgramID {
		return nil, errors.WithMessagef(ErrInvalidAccount, "mint %v", a.keys[i])
	}
	m, err := token.DecodeMint(acc.Data)
	if err != nil || !m.IsInitialized {
		return nil, errors.WithMessagef(ErrInvalidAccount, "mint %v", a.keys[i])
	}
	return m, nil
}

func (a *accounts) tokenAccount(i int) (*token.Account, error) {
	acc, err := a.env.Load(a.keys[i])
	if err != nil {
		return nil, err
	}
	if acc.Owner != token.ProgramID {
		return nil, errors.WithMessagef(ErrInvalidAccount, "token account %v", a.keys[i])
	}
	ta, err := token.DecodeAccount(acc.Data)
	if err != nil || ta.State == token.AccountUninitialized {
		return nil, errors.WithMessagef(ErrInvalidAccount, "token account %v", a.keys[i])
	}
	return ta, nil
}

// nft loads the NFT mint at i and the token account of owner at j holding it.
func (a *accounts) nft(i, j int, owner solana.PublicKey) (*token.Account, error) {
	m, err := a.mint(i)
	if err != nil {
		return nil, err
	}
	if m.Decimals != 0 || m.Supply != 1 {
		return nil, ErrTokenNotNFT
	}
	expected, _, err := associated.Address(owner, a.keys[i])
	if err != nil {
		return nil, err
	}
	if err := a.expect(j, expected); err != nil {
		return nil, err
	}
	ta, err := a.tokenAccount(j)
	if err != nil {
		return nil, err
	}
	if ta.Owner != owner || ta.Mint != a.keys[i] {
		return nil, errors.WithMessagef(ErrInvalidAccount, "token account %v", a.keys[j])
	}
	if ta.Amount != 1 {
		return nil, ErrTokenAccountEmpty
	}
	return ta, nil
}

func (a *accounts) metadata(i int, mint solana.PublicKey) error {
	expected, _, err := metadata.MetadataAddress(mint)
	if err != nil {
		return err
	}
	return a.expect(i, expected)
}

// edition checks that the master edition at i of mint caps its print supply at 0.
func (a *accounts) edition(i int, mint solana.PublicKey) error {
	expected, _, err := metadata.EditionAddress(mint)
	if err != nil {
		return err
	}
	if err := a.expect(i, expected); err != nil {
		return err
	}
	acc, err := a.env.Load(a.keys[i])
	if err != nil {
		return err
	}
	if acc.Owner != metadata.ProgramID {
		return errors.WithMessagef(ErrInvalidAccount, "edition %v", a.keys[i])
	}
	ed, err := metadata.DecodeMasterEdition(acc.Data)
	if err != nil {
		return errors.WithMessagef(ErrInvalidAccount, "edition %v", a.keys[i])
	}
	if ed.MaxSupply == nil || *ed.MaxSupply != 0 {
		return ErrTokenNotNFT
	}
	return nil
}

// record loads the stake record at i. The record is nil when the account
// holds none.
func (a *accounts) record(i int) (*state.Account, *Record, error) {
	acc, err := a.env.Load(a.keys[i])
	if err != nil {
		return nil, nil, err
	}
	if acc.Owner != ProgramID || len(acc.Data) == 0 {
		return acc, nil, nil
	}
	rec, err := DecodeRecord(acc.Data)
	if err != nil {
		return nil, nil, errors.WithMessagef(ErrInvalidAccount, "record %v", a.keys[i])
	}
	return acc, rec, nil
}

func storeRecord(env *xenv.Environment, key solana.PublicKey, acc *state.Account, rec *Record) error {
	if err := layout.EncodeInto(acc.Data, rec); err != nil {
		return err
	}
	return env.Store(key, acc)
}
