// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/vechain/nftstake/builtin/metadata"
	"github.com/vechain/nftstake/builtin/system"
	"github.com/vechain/nftstake/builtin/token"
	"github.com/vechain/nftstake/xenv"
)

// stakeNft freezes the delegated NFT of user and opens its stake record.
//
// accounts: user(ws), nftMint, userTokenAccount(w), nftRecord(w), stakingAuthority(w), masterEdition,
// metadataProgram, tokenProgram, systemProgram, rent
func stakeNft(env *xenv.Environment) error {
	a, err := resolve(env, 10)
	if err != nil {
		return err
	}
	user, err := a.signer(0)
	if err != nil {
		return err
	}
	nftMint, userTokenAccount, recordKey, stakingAuthority := a.keys[1], a.keys[2], a.keys[3], a.keys[4]

	if err := a.programs(6, metadata.ProgramID, token.ProgramID, system.ProgramID); err != nil {
		return err
	}
	ta, err := a.nft(1, 2, user)
	if err != nil {
		return err
	}
	recordBump, err := a.derived(3, recordSeeds(user, nftMint), ProgramID)
	if err != nil {
		return err
	}
	authorityBump, err := a.derived(4, stakingAuthoritySeeds(), ProgramID)
	if err != nil {
		return err
	}
	if err := a.edition(5, nftMint); err != nil {
		return err
	}

	_, existing, err := a.record(3)
	if err != nil {
		return err
	}
	if existing != nil || ta.IsFrozen() {
		return ErrAlreadyStaked
	}
	if ta.Delegate == nil || *ta.Delegate != stakingAuthority || ta.DelegatedAmount != 1 {
		return ErrNotDelegated
	}

	now := env.Clock().UnixTimestamp
	create := system.CreateAccount(user, recordKey, env.Rent().MinimumBalance(RecordSize), RecordSize, ProgramID)
	if err := env.Invoke(create, withBump(recordSeeds(user, nftMint), recordBump)); err != nil {
		return err
	}
	acc, err := env.Load(recordKey)
	if err != nil {
		return err
	}
	rec := &Record{
		Owner:        user,
		Mint:         nftMint,
		StakedAt:     now,
		LastRewardAt: now,
		Bump:         recordBump,
	}
	if err := storeRecord(env, recordKey, acc, rec); err != nil {
		return err
	}

	freeze := metadata.FreezeDelegatedAccount(stakingAuthority, userTokenAccount, nftMint)
	if err := env.Invoke(freeze, withBump(stakingAuthoritySeeds(), authorityBump)); err != nil {
		return err
	}
	env.Log("NFT staked at %d", now)
	return nil
}

// unstakeNft thaws the NFT of user. The stake record is kept for a later
// settlement and closure.
//
// accounts: user(ws), nftMint, userTokenAccount(w), nftRecord(w), stakingAuthority(w), masterEdition,
// metadataProgram, tokenProgram
func unstakeNft(env *xenv.Environment) error {
	a, err := resolve(env, 8)
	if err != nil {
		return err
	}
	user, err := a.signer(0)
	if err != nil {
		return err
	}
	nftMint, userTokenAccount, stakingAuthority := a.keys[1], a.keys[2], a.keys[4]

	if err := a.programs(6, metadata.ProgramID, token.ProgramID); err != nil {
		return err
	}
	ta, err := a.nft(1, 2, user)
	if err != nil {
		return err
	}
	if _, err := a.derived(3, recordSeeds(user, nftMint), ProgramID); err != nil {
		return err
	}
	authorityBump, err := a.derived(4, stakingAuthoritySeeds(), ProgramID)
	if err != nil {
		return err
	}
	if err := a.edition(5, nftMint); err != nil {
		return err
	}

	_, rec, err := a.record(3)
	if err != nil {
		return err
	}
	if rec == nil || !ta.IsFrozen() {
		return ErrNotStaked
	}
	if rec.Owner != user {
		return ErrNotOwner
	}
	if rec.Mint != nftMint {
		return ErrRecordMismatch
	}

	thaw := metadata.ThawDelegatedAccount(stakingAuthority, userTokenAccount, nftMint)
	if err := env.Invoke(thaw, withBump(stakingAuthoritySeeds(), authorityBump)); err != nil {
		return err
	}
	env.Log("NFT unstaked, staked since %d", rec.StakedAt)
	return nil
}

// closeRecord deletes the stake record of user and refunds its rent.
//
// accounts: user(ws), nftRecord(w), userTokenAccount
func closeRecord(env *xenv.Environment) error {
	a, err := resolve(env, 3)
	if err != nil {
		return err
	}
	user, err := a.signer(0)
	if err != nil {
		return err
	}
	recordKey := a.keys[1]

	recAcc, rec, err := a.record(1)
	if err != nil {
		return err
	}
	if rec == nil {
		return ErrRecordNotFound
	}
	if rec.Owner != user {
		return ErrNotOwner
	}
	if _, err := a.derived(1, recordSeeds(user, rec.Mint), ProgramID); err != nil {
		return err
	}
	if err := a.expect(2, ata(user, rec.Mint)); err != nil {
		return err
	}
	// the token account may be gone, which cannot leave it frozen
	taAcc, err := env.Load(a.keys[2])
	if err != nil {
		return err
	}
	if taAcc.Owner == token.ProgramID {
		ta, err := token.DecodeAccount(taAcc.Data)
		if err != nil {
			return ErrInvalidAccount
		}
		if ta.IsFrozen() {
			return ErrStillStaked
		}
	}

	refund := recAcc.Lamports
	recAcc.Lamports = 0
	recAcc.Data = nil
	if err := env.Store(recordKey, recAcc); err != nil {
		return err
	}
	recAcc.Owner = system.ProgramID
	if err := env.Store(recordKey, recAcc); err != nil {
		return err
	}
	userAcc, err := env.Load(user)
	if err != nil {
		return err
	}
	userAcc.Lamports += refund
	if err := env.Store(user, userAcc); err != nil {
		return err
	}
	env.Log("NFT Record Closed!")
	return nil
}
