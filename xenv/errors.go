// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package xenv

import "github.com/pkg/errors"

// Instruction errors raised by the environment itself.
var (
	ErrNotEnoughAccountKeys        = errors.New("insufficient account keys for instruction")
	ErrMissingAccount              = errors.New("an account required by the instruction is missing")
	ErrReadonlyDataModified        = errors.New("instruction modified data of a read-only account")
	ErrReadonlyLamportChange       = errors.New("instruction changed the balance of a read-only account")
	ErrExecutableModified          = errors.New("instruction changed executable account")
	ErrModifiedProgramID           = errors.New("instruction illegally modified the program id of an account")
	ErrExternalAccountDataModified = errors.New("instruction modified data of an account it does not own")
	ErrExternalAccountLamportSpend = errors.New("instruction spent from the balance of an account it does not own")
	ErrInvalidRealloc              = errors.New("failed to reallocate account data")
	ErrPrivilegeEscalation         = errors.New("cross-program invocation with unauthorized signer or writable account")
	ErrCallDepth                   = errors.New("cross-program invocation call depth too deep")
	ErrReentrancyNotAllowed        = errors.New("cross-program invocation reentrancy not allowed for this instruction")
	ErrUnsupportedProgram          = errors.New("unsupported program id")
	ErrInvalidSeeds                = errors.New("could not create program address with signer seeds")
)

// Generic instruction errors shared by the native programs.
var (
	ErrMissingRequiredSignature = errors.New("missing required signature for instruction")
	ErrInvalidInstructionData   = errors.New("invalid instruction data")
	ErrInvalidAccountData       = errors.New("invalid account data for instruction")
	ErrInvalidAccountOwner      = errors.New("invalid account owner")
	ErrIncorrectProgramID       = errors.New("incorrect program id for instruction")
	ErrInvalidArgument          = errors.New("invalid program argument")
)
