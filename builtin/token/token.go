// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package token implements the fungible and non-fungible token program:
// mints, token accounts, delegation and freezing.
package token

import (
	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"

	"github.com/vechain/nftstake/builtin/layout"
	"github.com/vechain/nftstake/state"
	"github.com/vechain/nftstake/xenv"
)

// ProgramID is the id of the token program.
var ProgramID = solana.TokenProgramID

// Program is the token program.
type Program struct{}

func New() *Program { return &Program{} }

func (p *Program) ID() solana.PublicKey { return ProgramID }
func (p *Program) Name() string         { return "token" }

func (p *Program) Execute(env *xenv.Environment) error {
	data := env.Data()
	if len(data) == 0 {
		return ErrInvalidInstruction
	}
	dec := bin.NewBinDecoder(data[1:])

	switch data[0] {
	case InstructionTransfer:
		env.Log("Instruction: Transfer")
		amount, err := dec.ReadUint64(bin.LE)
		if err != nil {
			return ErrInvalidInstruction
		}
		return processTransfer(env, amount)
	case InstructionApprove:
		env.Log("Instruction: Approve")
		amount, err := dec.ReadUint64(bin.LE)
		if err != nil {
			return ErrInvalidInstruction
		}
		return processApprove(env, amount)
	case InstructionRevoke:
		env.Log("Instruction: Revoke")
		return processRevoke(env)
	case InstructionSetAuthority:
		env.Log("Instruction: SetAuthority")
		typ, err := dec.ReadByte()
		if err != nil {
			return ErrInvalidInstruction
		}
		newAuthority, err := layout.ReadOptionKey(dec)
		if err != nil {
			return ErrInvalidInstruction
		}
		return processSetAuthority(env, AuthorityType(typ), newAuthority)
	case InstructionMintTo:
		env.Log("Instruction: MintTo")
		amount, err := dec.ReadUint64(bin.LE)
		if err != nil {
			return ErrInvalidInstruction
		}
		return processMintTo(env, amount)
	case InstructionFreezeAccount:
		env.Log("Instruction: FreezeAccount")
		return processToggleFreeze(env, true)
	case InstructionThawAccount:
		env.Log("Instruction: ThawAccount")
		return processToggleFreeze(env, false)
	case InstructionInitializeAccount3:
		env.Log("Instruction: InitializeAccount3")
		owner, err := layout.ReadKey(dec)
		if err != nil {
			return ErrInvalidInstruction
		}
		return processInitializeAccount(env, owner)
	case InstructionInitializeMint2:
		env.Log("Instruction: InitializeMint2")
		decimals, err := dec.ReadByte()
		if err != nil {
			return ErrInvalidInstruction
		}
		authority, err := layout.ReadKey(dec)
		if err != nil {
			return ErrInvalidInstruction
		}
		freeze, err := layout.ReadOptionKey(dec)
		if err != nil {
			return ErrInvalidInstruction
		}
		return processInitializeMint(env, decimals, authority, freeze)
	default:
		return ErrInvalidInstruction
	}
}

func loadMint(env *xenv.Environment, key solana.PublicKey) (*state.Account, *Mint, error) {
	acc, err := env.Load(key)
	if err != nil {
		return nil, nil, err
	}
	if acc.Owner != ProgramID {
		return nil, nil, errors.WithMessagef(xenv.ErrIncorrectProgramID, "mint %v", key)
	}
	m, err := DecodeMint(acc.Data)
	if err != nil {
		return nil, nil, ErrInvalidMint
	}
	if !m.IsInitialized {
		return nil, nil, ErrUninitializedState
	}
	return acc, m, nil
}

func loadAccount(env *xenv.Environment, key solana.PublicKey) (*state.Account, *Account, error) {
	acc, err := env.Load(key)
	if err != nil {
		return nil, nil, err
	}
	if acc.Owner != ProgramID {
		return nil, nil, errors.WithMessagef(xenv.ErrIncorrectProgramID, "token account %v", key)
	}
	a, err := DecodeAccount(acc.Data)
	if err != nil {
		return nil, nil, xenv.ErrInvalidAccountData
	}
	if a.State == AccountUninitialized {
		return nil, nil, ErrUninitializedState
	}
	return acc, a, nil
}

func store(env *xenv.Environment, key solana.PublicKey, acc *state.Account, v layout.Marshaler) error {
	if err := layout.EncodeInto(acc.Data, v); err != nil {
		return err
	}
	return env.Store(key, acc)
}

// validateOwner checks that authority is expected and signed the instruction.
func validateOwner(env *xenv.Environment, expected, authority solana.PublicKey) error {
	if expected != authority {
		return ErrOwnerMismatch
	}
	if !env.IsSigner(authority) {
		return errors.WithMessagef(xenv.ErrMissingRequiredSignature, "%v", authority)
	}
	return nil
}

func processTransfer(env *xenv.Environment, amount uint64) error {
	srcKey, err := env.Key(0)
	if err != nil {
		return err
	}
	dstKey, err := env.Key(1)
	if err != nil {
		return err
	}
	authority, err := env.Key(2)
	if err != nil {
		return err
	}

	srcAcc, src, err := loadAccount(env, srcKey)
	if err != nil {
		return err
	}
	dstAcc, dst, err := loadAccount(env, dstKey)
	if err != nil {
		return err
	}
	if src.IsFrozen() || dst.IsFrozen() {
		return ErrAccountFrozen
	}
	if src.Amount < amount {
		return ErrInsufficientFunds
	}
	if src.Mint != dst.Mint {
		return ErrMintMismatch
	}

	if src.Delegate != nil && *src.Delegate == authority {
		if err := validateOwner(env, *src.Delegate, authority); err != nil {
			return err
		}
		if src.DelegatedAmount < amount {
			return ErrInsufficientFunds
		}
		src.DelegatedAmount -= amount
		if src.DelegatedAmount == 0 {
			src.Delegate = nil
		}
	} else if err := validateOwner(env, src.Owner, authority); err != nil {
		return err
	}

	if srcKey == dstKey || amount == 0 {
		return store(env, srcKey, srcAcc, src)
	}
	src.Amount -= amount
	dst.Amount += amount
	if err := store(env, srcKey, srcAcc, src); err != nil {
		return err
	}
	return store(env, dstKey, dstAcc, dst)
}

func processApprove(env *xenv.Environment, amount uint64) error {
	srcKey, err := env.Key(0)
	if err != nil {
		return err
	}
	delegate, err := env.Key(1)
	if err != nil {
		return err
	}
	owner, err := env.Key(2)
	if err != nil {
		return err
	}
	srcAcc, src, err := loadAccount(env, srcKey)
	if err != nil {
		return err
	}
	if src.IsFrozen() {
		return ErrAccountFrozen
	}
	if err := validateOwner(env, src.Owner, owner); err != nil {
		return err
	}
	src.Delegate = &delegate
	src.DelegatedAmount = amount
	return store(env, srcKey, srcAcc, src)
}

func processRevoke(env *xenv.Environment) error {
	srcKey, err := env.Key(0)
	if err != nil {
		return err
	}
	owner, err := env.Key(1)
	if err != nil {
		return err
	}
	srcAcc, src, err := loadAccount(env, srcKey)
	if err != nil {
		return err
	}
	if src.IsFrozen() {
		return ErrAccountFrozen
	}
	if err := validateOwner(env, src.Owner, owner); err != nil {
		return err
	}
	src.Delegate = nil
	src.DelegatedAmount = 0
	return store(env, srcKey, srcAcc, src)
}

func processSetAuthority(env *xenv.Environment, typ AuthorityType, newAuthority *solana.PublicKey) error {
	key, err := env.Key(0)
	if err != nil {
		return err
	}
	authority, err := env.Key(1)
	if err != nil {
		return err
	}
	acc, err := env.Load(key)
	if err != nil {
		return err
	}
	if acc.Owner != ProgramID {
		return xenv.ErrIncorrectProgramID
	}

	switch len(acc.Data) {
	case AccountSize:
		_, a, err := loadAccount(env, key)
		if err != nil {
			return err
		}
		if a.IsFrozen() {
			return ErrAccountFrozen
		}
		switch typ {
		case AuthorityAccountOwner:
			if err := validateOwner(env, a.Owner, authority); err != nil {
				return err
			}
			if newAuthority == nil {
				return ErrInvalidInstruction
			}
			a.Owner = *newAuthority
			a.Delegate = nil
			a.DelegatedAmount = 0
		case AuthorityCloseAccount:
			current := a.Owner
			if a.CloseAuthority != nil {
				current = *a.CloseAuthority
			}
			if err := validateOwner(env, current, authority); err != nil {
				return err
			}
			a.CloseAuthority = newAuthority
		default:
			return ErrAuthorityTypeNotSupp
		}
		return store(env, key, acc, a)
	case MintSize:
		_, m, err := loadMint(env, key)
		if err != nil {
			return err
		}
		switch typ {
		case AuthorityMintTokens:
			if m.MintAuthority == nil {
				return ErrFixedSupply
			}
			if err := validateOwner(env, *m.MintAuthority, authority); err != nil {
				return err
			}
			m.MintAuthority = newAuthority
		case AuthorityFreezeAccount:
			if m.FreezeAuthority == nil {
				return ErrMintCannotFreeze
			}
			if err := validateOwner(env, *m.FreezeAuthority, authority); err != nil {
				return err
			}
			m.FreezeAuthority = newAuthority
		default:
			return ErrAuthorityTypeNotSupp
		}
		return store(env, key, acc, m)
	default:
		return xenv.ErrInvalidAccountData
	}
}

func processMintTo(env *xenv.Environment, amount uint64) error {
	mintKey, err := env.Key(0)
	if err != nil {
		return err
	}
	dstKey, err := env.Key(1)
	if err != nil {
		return err
	}
	authority, err := env.Key(2)
	if err != nil {
		return err
	}

	dstAcc, dst, err := loadAccount(env, dstKey)
	if err != nil {
		return err
	}
	if dst.IsFrozen() {
		return ErrAccountFrozen
	}
	if dst.Mint != mintKey {
		return ErrMintMismatch
	}
	mintAcc, m, err := loadMint(env, mintKey)
	if err != nil {
		return err
	}
	if m.MintAuthority == nil {
		return ErrFixedSupply
	}
	if err := validateOwner(env, *m.MintAuthority, authority); err != nil {
		return err
	}

	if m.Supply+amount < m.Supply || dst.Amount+amount < dst.Amount {
		return ErrOverflow
	}
	m.Supply += amount
	dst.Amount += amount
	if err := store(env, dstKey, dstAcc, dst); err != nil {
		return err
	}
	return store(env, mintKey, mintAcc, m)
}

func processToggleFreeze(env *xenv.Environment, freeze bool) error {
	key, err := env.Key(0)
	if err != nil {
		return err
	}
	mintKey, err := env.Key(1)
	if err != nil {
		return err
	}
	authority, err := env.Key(2)
	if err != nil {
		return err
	}

	acc, a, err := loadAccount(env, key)
	if err != nil {
		return err
	}
	if freeze == a.IsFrozen() {
		return ErrInvalidState
	}
	if a.Mint != mintKey {
		return ErrMintMismatch
	}
	_, m, err := loadMint(env, mintKey)
	if err != nil {
		return err
	}
	if m.FreezeAuthority == nil {
		return ErrMintCannotFreeze
	}
	if err := validateOwner(env, *m.FreezeAuthority, authority); err != nil {
		return err
	}

	if freeze {
		a.State = AccountFrozen
	} else {
		a.State = AccountInitialized
	}
	return store(env, key, acc, a)
}

func processInitializeAccount(env *xenv.Environment, owner solana.PublicKey) error {
	key, err := env.Key(0)
	if err != nil {
		return err
	}
	mintKey, err := env.Key(1)
	if err != nil {
		return err
	}
	acc, err := env.Load(key)
	if err != nil {
		return err
	}
	if acc.Owner != ProgramID {
		return xenv.ErrIncorrectProgramID
	}
	a, err := DecodeAccount(acc.Data)
	if err != nil {
		return xenv.ErrInvalidAccountData
	}
	if a.State != AccountUninitialized {
		return ErrAlreadyInUse
	}
	if !env.Rent().IsExempt(acc.Lamports, uint64(len(acc.Data))) {
		return ErrNotRentExempt
	}
	if _, _, err := loadMint(env, mintKey); err != nil {
		return ErrInvalidMint
	}

	*a = Account{
		Mint:  mintKey,
		Owner: owner,
		State: AccountInitialized,
	}
	return store(env, key, acc, a)
}

func processInitializeMint(env *xenv.Environment, decimals uint8, authority solana.PublicKey, freeze *solana.PublicKey) error {
	key, err := env.Key(0)
	if err != nil {
		return err
	}
	acc, err := env.Load(key)
	if err != nil {
		return err
	}
	if acc.Owner != ProgramID {
		return xenv.ErrIncorrectProgramID
	}
	m, err := DecodeMint(acc.Data)
	if err != nil {
		return xenv.ErrInvalidAccountData
	}
	if m.IsInitialized {
		return ErrAlreadyInUse
	}
	if !env.Rent().IsExempt(acc.Lamports, uint64(len(acc.Data))) {
		return ErrNotRentExempt
	}

	*m = Mint{
		MintAuthority:   &authority,
		Decimals:        decimals,
		IsInitialized:   true,
		FreezeAuthority: freeze,
	}
	return store(env, key, acc, m)
}
