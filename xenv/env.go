// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package xenv

import (
	"bytes"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"

	"github.com/vechain/nftstake/ledger"
	"github.com/vechain/nftstake/state"
	"github.com/vechain/nftstake/tx"
)

// AccountRef is an account passed to an instruction with its privileges.
type AccountRef struct {
	Key        solana.PublicKey
	IsSigner   bool
	IsWritable bool
}

// Environment an env to execute one instruction of a native program.
type Environment struct {
	program  solana.PublicKey
	accounts []AccountRef
	data     []byte
	depth    int
	state    *state.State
	txCtx    *TransactionContext
}

func (env *Environment) ProgramID() solana.PublicKey             { return env.program }
func (env *Environment) Data() []byte                            { return env.data }
func (env *Environment) Depth() int                              { return env.depth }
func (env *Environment) NumAccounts() int                        { return len(env.accounts) }
func (env *Environment) TransactionContext() *TransactionContext { return env.txCtx }
func (env *Environment) Clock() ledger.Clock                     { return env.txCtx.Clock }
func (env *Environment) Rent() ledger.Rent                       { return env.txCtx.Rent }

// Ref returns the i-th account of the instruction.
func (env *Environment) Ref(i int) (AccountRef, error) {
	if i < 0 || i >= len(env.accounts) {
		return AccountRef{}, ErrNotEnoughAccountKeys
	}
	return env.accounts[i], nil
}

// Key returns the key of the i-th account.
func (env *Environment) Key(i int) (solana.PublicKey, error) {
	ref, err := env.Ref(i)
	return ref.Key, err
}

func (env *Environment) find(key solana.PublicKey) (AccountRef, bool) {
	var (
		merged AccountRef
		found  bool
	)
	for _, ref := range env.accounts {
		if ref.Key == key {
			merged.Key = key
			merged.IsSigner = merged.IsSigner || ref.IsSigner
			merged.IsWritable = merged.IsWritable || ref.IsWritable
			found = true
		}
	}
	return merged, found
}

// IsSigner returns whether the key signed for this instruction.
func (env *Environment) IsSigner(key solana.PublicKey) bool {
	ref, ok := env.find(key)
	return ok && ref.IsSigner
}

// IsWritable returns whether the key is writable for this instruction.
func (env *Environment) IsWritable(key solana.PublicKey) bool {
	ref, ok := env.find(key)
	return ok && ref.IsWritable
}

// Account loads a copy of the i-th account.
func (env *Environment) Account(i int) (solana.PublicKey, *state.Account, error) {
	key, err := env.Key(i)
	if err != nil {
		return key, nil, err
	}
	acc, err := env.state.GetAccount(key)
	return key, acc, err
}

// Load loads a copy of an account passed to the instruction.
func (env *Environment) Load(key solana.PublicKey) (*state.Account, error) {
	if _, ok := env.find(key); !ok {
		return nil, errors.WithMessagef(ErrMissingAccount, "%v", key)
	}
	return env.state.GetAccount(key)
}

// Store writes an account back, enforcing the ownership rules of the ledger
// against its current content.
func (env *Environment) Store(key solana.PublicKey, post *state.Account) error {
	ref, ok := env.find(key)
	if !ok {
		return errors.WithMessagef(ErrMissingAccount, "%v", key)
	}
	pre, err := env.state.GetAccount(key)
	if err != nil {
		return err
	}
	if pre.Equal(post) {
		return nil
	}

	dataChanged := !bytes.Equal(pre.Data, post.Data)
	ownerChanged := pre.Owner != post.Owner
	isOwner := pre.Owner == env.program

	if !ref.IsWritable {
		if pre.Lamports != post.Lamports {
			return errors.WithMessagef(ErrReadonlyLamportChange, "%v", key)
		}
		return errors.WithMessagef(ErrReadonlyDataModified, "%v", key)
	}
	if pre.Executable || post.Executable != pre.Executable {
		return errors.WithMessagef(ErrExecutableModified, "%v", key)
	}
	if ownerChanged && (!isOwner || !isZeroed(pre.Data)) {
		return errors.WithMessagef(ErrModifiedProgramID, "%v", key)
	}
	if dataChanged && !isOwner {
		return errors.WithMessagef(ErrExternalAccountDataModified, "%v", key)
	}
	if len(post.Data) > ledger.MaxPermittedDataLen {
		return errors.WithMessagef(ErrInvalidRealloc, "%v", key)
	}
	if post.Lamports < pre.Lamports && !isOwner {
		return errors.WithMessagef(ErrExternalAccountLamportSpend, "%v", key)
	}

	env.txCtx.touch(key, pre.Lamports)
	env.state.SetAccount(key, post)
	return nil
}

func isZeroed(data []byte) bool {
	for _, b := range data {
		if b != 0 {
			return false
		}
	}
	return true
}

// Log appends a program log line to the transaction logs.
func (env *Environment) Log(format string, args ...any) {
	env.txCtx.Logf("Program log: "+format, args...)
}

// Invoke executes ix as a cross-program invocation. Each entry of signerSeeds
// is the seed list, bump included, of a program address derived from the
// calling program, which then counts as a signer of ix.
func (env *Environment) Invoke(ix *tx.Instruction, signerSeeds ...[][]byte) error {
	if env.depth+1 > ledger.MaxInvokeDepth {
		return ErrCallDepth
	}

	pdas := make(map[solana.PublicKey]bool, len(signerSeeds))
	for _, seeds := range signerSeeds {
		pda, err := solana.CreateProgramAddress(seeds, env.program)
		if err != nil {
			return errors.Wrap(ErrInvalidSeeds, err.Error())
		}
		pdas[pda] = true
	}

	if _, ok := env.find(ix.Program); !ok {
		return errors.WithMessagef(ErrMissingAccount, "program %v", ix.Program)
	}
	refs := make([]AccountRef, 0, len(ix.Metas))
	for _, m := range ix.Metas {
		caller, ok := env.find(m.PublicKey)
		if !ok {
			return errors.WithMessagef(ErrMissingAccount, "%v", m.PublicKey)
		}
		if m.IsWritable && !caller.IsWritable {
			return errors.WithMessagef(ErrPrivilegeEscalation, "%v writable", m.PublicKey)
		}
		if m.IsSigner && !caller.IsSigner && !pdas[m.PublicKey] {
			return errors.WithMessagef(ErrPrivilegeEscalation, "%v signer", m.PublicKey)
		}
		refs = append(refs, AccountRef{Key: m.PublicKey, IsSigner: m.IsSigner, IsWritable: m.IsWritable})
	}

	if ix.Program != env.program && env.txCtx.onStack(ix.Program) {
		return ErrReentrancyNotAllowed
	}
	return Process(ix.Program, refs, ix.Payload, env.depth+1, env.state, env.txCtx)
}

// Process executes one instruction at the given depth, top-level instructions
// being at depth 1.
func Process(program solana.PublicKey, refs []AccountRef, data []byte, depth int, st *state.State, txCtx *TransactionContext) (err error) {
	p, ok := txCtx.Programs.Lookup(program)
	if !ok {
		return errors.WithMessagef(ErrUnsupportedProgram, "%v", program)
	}

	txCtx.Logf("Program %v invoke [%d]", program, depth)
	txCtx.stack = append(txCtx.stack, program)
	defer func() {
		txCtx.stack = txCtx.stack[:len(txCtx.stack)-1]
		if err != nil {
			txCtx.Logf("Program %v failed: %v", program, err)
		} else {
			txCtx.Logf("Program %v success", program)
		}
	}()

	env := &Environment{
		program:  program,
		accounts: refs,
		data:     data,
		depth:    depth,
		state:    st,
		txCtx:    txCtx,
	}
	return p.Execute(env)
}

func (ref AccountRef) String() string {
	return fmt.Sprintf("%v(signer=%v,writable=%v)", ref.Key, ref.IsSigner, ref.IsWritable)
}

// RequireSigner fails unless the i-th account signed.
func (env *Environment) RequireSigner(i int) (solana.PublicKey, error) {
	ref, err := env.Ref(i)
	if err != nil {
		return ref.Key, err
	}
	if !env.IsSigner(ref.Key) {
		return ref.Key, errors.WithMessagef(ErrMissingRequiredSignature, "%v", ref.Key)
	}
	return ref.Key, nil
}
