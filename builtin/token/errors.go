// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import "github.com/vechain/nftstake/builtin/reverts"

func tokenErr(code uint32, name, message string) *reverts.Error {
	return reverts.New("token", code, name, message)
}

var (
	ErrNotRentExempt        = tokenErr(0, "NotRentExempt", "Lamport balance below rent-exempt threshold")
	ErrInsufficientFunds    = tokenErr(1, "InsufficientFunds", "Insufficient funds")
	ErrInvalidMint          = tokenErr(2, "InvalidMint", "Invalid Mint")
	ErrMintMismatch         = tokenErr(3, "MintMismatch", "Account not associated with this Mint")
	ErrOwnerMismatch        = tokenErr(4, "OwnerMismatch", "Owner does not match")
	ErrFixedSupply          = tokenErr(5, "FixedSupply", "Fixed supply")
	ErrAlreadyInUse         = tokenErr(6, "AlreadyInUse", "Already in use")
	ErrUninitializedState   = tokenErr(9, "UninitializedState", "State is uninitialized")
	ErrInvalidInstruction   = tokenErr(12, "InvalidInstruction", "Invalid instruction")
	ErrInvalidState         = tokenErr(13, "InvalidState", "State is invalid for requested operation")
	ErrOverflow             = tokenErr(14, "Overflow", "Operation overflowed")
	ErrAuthorityTypeNotSupp = tokenErr(15, "AuthorityTypeNotSupported", "Account does not support specified authority type")
	ErrMintCannotFreeze     = tokenErr(16, "MintCannotFreeze", "This token mint cannot freeze accounts")
	ErrAccountFrozen        = tokenErr(17, "AccountFrozen", "Account is frozen")
	ErrMintDecimalsMismatch = tokenErr(18, "MintDecimalsMismatch", "The provided decimals value different from the Mint decimals")
)
