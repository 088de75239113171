// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metadata

import "github.com/vechain/nftstake/builtin/reverts"

func metadataErr(code uint32, name, message string) *reverts.Error {
	return reverts.New("metadata", code, name, message)
}

var (
	ErrAlreadyInitialized              = metadataErr(3, "AlreadyInitialized", "Already initialized")
	ErrUninitialized                   = metadataErr(4, "Uninitialized", "Uninitialized")
	ErrInvalidMetadataKey              = metadataErr(5, "InvalidMetadataKey", "Metadata's key must match seed of ['metadata', program id, mint] provided")
	ErrInvalidEditionKey               = metadataErr(6, "InvalidEditionKey", "Edition's key must match seed of ['metadata', program id, name, 'edition'] provided")
	ErrUpdateAuthorityIncorrect        = metadataErr(7, "UpdateAuthorityIncorrect", "Update Authority given does not match")
	ErrUpdateAuthorityIsNotSigner      = metadataErr(8, "UpdateAuthorityIsNotSigner", "Update Authority needs to be signer to update metadata")
	ErrNotMintAuthority                = metadataErr(9, "NotMintAuthority", "You must be the mint authority and signer on this transaction")
	ErrNameTooLong                     = metadataErr(11, "NameTooLong", "Name too long")
	ErrSymbolTooLong                   = metadataErr(12, "SymbolTooLong", "Symbol too long")
	ErrURITooLong                      = metadataErr(13, "UriTooLong", "URI too long")
	ErrMintMismatch                    = metadataErr(32, "MintMismatch", "Mint given does not match mint on Metadata")
	ErrEditionsMustHaveExactlyOneToken = metadataErr(33, "EditionsMustHaveExactlyOneToken", "Editions must have exactly one token")
	ErrShareTotalMustBe100             = metadataErr(43, "ShareTotalMustBe100", "Share total must equal 100 for creator array")
	ErrCannotVerifyAnotherCreator      = metadataErr(45, "CannotVerifyAnotherCreator", "You cannot unilaterally verify another creator, they must sign")
	ErrCreatorsTooLong                 = metadataErr(54, "CreatorsTooLong", "Creators list too long")
	ErrInvalidBasisPoints              = metadataErr(60, "InvalidBasisPoints", "Basis points cannot be more than 10000")
	ErrInvalidDelegate                 = metadataErr(71, "InvalidDelegate", "This token has no delegate or the delegate does not match")
	ErrNotSupported                    = metadataErr(87, "NotSupported", "Collections and uses are not supported")
)
