// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/holiman/uint256"

	"github.com/vechain/nftstake/builtin/system"
	"github.com/vechain/nftstake/builtin/token"
	"github.com/vechain/nftstake/xenv"
)

// Reward computes the reward accrued at rate per second from the checkpoint
// last up to now. A clock behind the checkpoint accrues nothing.
func Reward(rate uint64, last, now int64) (uint64, error) {
	if now <= last {
		return 0, nil
	}
	elapsed := uint64(now) - uint64(last)
	amount, overflow := new(uint256.Int).MulOverflow(uint256.NewInt(rate), uint256.NewInt(elapsed))
	if overflow || !amount.IsUint64() {
		return 0, ErrRewardOverflow
	}
	return amount.Uint64(), nil
}

// sendRewards mints the reward accrued by the stake record of user since its
// last checkpoint, and advances the checkpoint.
//
// accounts: tokenMint(w), mintAuthority, user(ws), userTokenAccount(w), nftMint, nftRecord(w), rent,
// tokenProgram, systemProgram
func (p *Program) sendRewards(env *xenv.Environment) error {
	a, err := resolve(env, 9)
	if err != nil {
		return err
	}
	user, err := a.signer(2)
	if err != nil {
		return err
	}
	tokenMint, mintAuthority, userTokenAccount, nftMint, recordKey := a.keys[0], a.keys[1], a.keys[3], a.keys[4], a.keys[5]

	if err := a.programs(7, token.ProgramID, system.ProgramID); err != nil {
		return err
	}
	authorityBump, err := a.derived(1, mintAuthoritySeeds(), ProgramID)
	if err != nil {
		return err
	}
	m, err := a.mint(0)
	if err != nil {
		return err
	}
	if m.MintAuthority == nil || *m.MintAuthority != mintAuthority {
		return ErrRewardMintMismatch
	}
	ta, err := a.tokenAccount(3)
	if err != nil {
		return err
	}
	if ta.Mint != tokenMint {
		return ErrRewardMintMismatch
	}
	if ta.Owner != user {
		return ErrNotOwner
	}
	if _, err := a.derived(5, recordSeeds(user, nftMint), ProgramID); err != nil {
		return err
	}
	recAcc, rec, err := a.record(5)
	if err != nil {
		return err
	}
	if rec == nil {
		return ErrRecordNotFound
	}
	if rec.Owner != user {
		return ErrNotOwner
	}
	if rec.Mint != nftMint {
		return ErrRecordMismatch
	}

	now := env.Clock().UnixTimestamp
	amount, err := Reward(p.rate, rec.LastRewardAt, now)
	if err != nil {
		return err
	}

	env.Log("Sending %d reward tokens..", amount)
	if amount > 0 {
		mint := token.MintTo(tokenMint, userTokenAccount, mintAuthority, amount)
		if err := env.Invoke(mint, withBump(mintAuthoritySeeds(), authorityBump)); err != nil {
			return err
		}
	}
	if now > rec.LastRewardAt {
		rec.LastRewardAt = now
		if err := storeRecord(env, recordKey, recAcc, rec); err != nil {
			return err
		}
	}
	env.Log("Transaction complete!")
	return nil
}
