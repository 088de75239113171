// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import "github.com/vechain/nftstake/builtin/reverts"

func stakingErr(code uint32, name, message string) *reverts.Error {
	return reverts.New("staking", code, name, message)
}

var (
	ErrTokenNotNFT        = stakingErr(6000, "TokenNotNFT", "This token has a supply greater than 1 so it is not an NFT")
	ErrTokenAccountEmpty  = stakingErr(6001, "TokenAccountEmpty", "Associated token accounts holds no tokens")
	ErrAlreadyStaked      = stakingErr(6002, "AlreadyStaked", "A stake record already exists for this NFT")
	ErrNotDelegated       = stakingErr(6003, "NotDelegated", "The staking authority is not the delegate of exactly one token")
	ErrNotStaked          = stakingErr(6004, "NotStaked", "The NFT is not staked")
	ErrStillStaked        = stakingErr(6005, "StillStaked", "The NFT is still staked")
	ErrNotOwner           = stakingErr(6006, "NotOwner", "Signer is not the owner of the stake record")
	ErrInvalidDerivation  = stakingErr(6007, "InvalidDerivation", "Account does not match its seed derivation")
	ErrRewardOverflow     = stakingErr(6008, "RewardOverflow", "Reward amount overflows")
	ErrRecordMismatch     = stakingErr(6009, "RecordMismatch", "Stake record does not belong to this mint")
	ErrRecordNotFound     = stakingErr(6010, "RecordNotFound", "Stake record does not exist")
	ErrRewardMintMismatch = stakingErr(6011, "RewardMintMismatch", "Token account or mint is not the reward mint")
	ErrInvalidAccount     = stakingErr(6012, "InvalidAccount", "Account is not owned by the expected program")
	ErrMissingSigner      = stakingErr(6013, "MissingSigner", "A required signature is missing")
	ErrInvalidInstruction = stakingErr(6014, "InvalidInstruction", "Instruction data could not be decoded")
)
