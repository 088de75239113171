// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/vechain/nftstake/builtin/token"
	"github.com/vechain/nftstake/xenv"
)

// delegateNft approves, or revokes, the staking authority as delegate of the
// single NFT unit of user.
//
// accounts: user(ws), stakingAuthority, userTokenAccount(w), nftMint, tokenProgram
func delegateNft(env *xenv.Environment, revoke bool) error {
	a, err := resolve(env, 5)
	if err != nil {
		return err
	}
	user, err := a.signer(0)
	if err != nil {
		return err
	}
	if _, err := a.derived(1, stakingAuthoritySeeds(), ProgramID); err != nil {
		return err
	}
	if err := a.programs(4, token.ProgramID); err != nil {
		return err
	}
	ta, err := a.nft(3, 2, user)
	if err != nil {
		return err
	}
	stakingAuthority, userTokenAccount := a.keys[1], a.keys[2]

	if revoke {
		// a frozen account could never be thawed without its delegate
		if ta.IsFrozen() {
			return ErrStillStaked
		}
		if err := env.Invoke(token.Revoke(userTokenAccount, user)); err != nil {
			return err
		}
		env.Log("Revoke successful")
		return nil
	}

	if ta.IsFrozen() {
		return ErrAlreadyStaked
	}
	if err := env.Invoke(token.Approve(userTokenAccount, stakingAuthority, user, 1)); err != nil {
		return err
	}
	env.Log("Approve successful")
	return nil
}
