// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"

	"github.com/vechain/nftstake/builtin/layout"
)

// Account data sizes.
const (
	MintSize    = 82
	AccountSize = 165
)

// AccountState is the state of a token account.
type AccountState uint8

const (
	AccountUninitialized AccountState = iota
	AccountInitialized
	AccountFrozen
)

func (s AccountState) String() string {
	switch s {
	case AccountUninitialized:
		return "uninitialized"
	case AccountInitialized:
		return "initialized"
	case AccountFrozen:
		return "frozen"
	}
	return "unknown"
}

// Mint is the layout of a mint account.
type Mint struct {
	MintAuthority   *solana.PublicKey
	Supply          uint64
	Decimals        uint8
	IsInitialized   bool
	FreezeAuthority *solana.PublicKey
}

func (m *Mint) MarshalWithEncoder(enc *bin.Encoder) error {
	if err := layout.WriteCOptionKey(enc, m.MintAuthority); err != nil {
		return err
	}
	if err := enc.WriteUint64(m.Supply, bin.LE); err != nil {
		return err
	}
	if err := enc.WriteByte(m.Decimals); err != nil {
		return err
	}
	if err := enc.WriteBool(m.IsInitialized); err != nil {
		return err
	}
	return layout.WriteCOptionKey(enc, m.FreezeAuthority)
}

func (m *Mint) UnmarshalWithDecoder(dec *bin.Decoder) (err error) {
	if m.MintAuthority, err = layout.ReadCOptionKey(dec); err != nil {
		return err
	}
	if m.Supply, err = dec.ReadUint64(bin.LE); err != nil {
		return err
	}
	if m.Decimals, err = dec.ReadByte(); err != nil {
		return err
	}
	if m.IsInitialized, err = dec.ReadBool(); err != nil {
		return err
	}
	m.FreezeAuthority, err = layout.ReadCOptionKey(dec)
	return err
}

// Account is the layout of a token account.
type Account struct {
	Mint            solana.PublicKey
	Owner           solana.PublicKey
	Amount          uint64
	Delegate        *solana.PublicKey
	State           AccountState
	IsNative        *uint64
	DelegatedAmount uint64
	CloseAuthority  *solana.PublicKey
}

// IsFrozen reports whether the account is frozen.
func (a *Account) IsFrozen() bool { return a.State == AccountFrozen }

func (a *Account) MarshalWithEncoder(enc *bin.Encoder) error {
	if err := layout.WriteKey(enc, a.Mint); err != nil {
		return err
	}
	if err := layout.WriteKey(enc, a.Owner); err != nil {
		return err
	}
	if err := enc.WriteUint64(a.Amount, bin.LE); err != nil {
		return err
	}
	if err := layout.WriteCOptionKey(enc, a.Delegate); err != nil {
		return err
	}
	if err := enc.WriteByte(byte(a.State)); err != nil {
		return err
	}
	if err := layout.WriteCOptionU64(enc, a.IsNative); err != nil {
		return err
	}
	if err := enc.WriteUint64(a.DelegatedAmount, bin.LE); err != nil {
		return err
	}
	return layout.WriteCOptionKey(enc, a.CloseAuthority)
}

func (a *Account) UnmarshalWithDecoder(dec *bin.Decoder) (err error) {
	if a.Mint, err = layout.ReadKey(dec); err != nil {
		return err
	}
	if a.Owner, err = layout.ReadKey(dec); err != nil {
		return err
	}
	if a.Amount, err = dec.ReadUint64(bin.LE); err != nil {
		return err
	}
	if a.Delegate, err = layout.ReadCOptionKey(dec); err != nil {
		return err
	}
	state, err := dec.ReadByte()
	if err != nil {
		return err
	}
	if state > byte(AccountFrozen) {
		return errors.Errorf("invalid account state %d", state)
	}
	a.State = AccountState(state)
	if a.IsNative, err = layout.ReadCOptionU64(dec); err != nil {
		return err
	}
	if a.DelegatedAmount, err = dec.ReadUint64(bin.LE); err != nil {
		return err
	}
	a.CloseAuthority, err = layout.ReadCOptionKey(dec)
	return err
}

// DecodeMint decodes mint account data.
func DecodeMint(data []byte) (*Mint, error) {
	if len(data) != MintSize {
		return nil, layout.ErrInvalidData
	}
	var m Mint
	if err := layout.Decode(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// DecodeAccount decodes token account data.
func DecodeAccount(data []byte) (*Account, error) {
	if len(data) != AccountSize {
		return nil, layout.ErrInvalidData
	}
	var a Account
	if err := layout.Decode(data, &a); err != nil {
		return nil, err
	}
	return &a, nil
}
