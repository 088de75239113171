// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking_test

import (
	"math"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/nftstake/builtin/metadata"
	"github.com/vechain/nftstake/builtin/staking"
	"github.com/vechain/nftstake/builtin/system"
	"github.com/vechain/nftstake/builtin/token"
	"github.com/vechain/nftstake/ledger"
	"github.com/vechain/nftstake/test/datagen"
	"github.com/vechain/nftstake/tx"
)

func staked(t *testing.T, rate uint64) *TestSequence {
	seq := NewSequence(t, newChain(t, rate))
	seq.InitializeMint().
		CreateNft("my test NFT", "DDR", "test-uri").
		Delegate().
		Stake()
	return seq
}

func TestEndToEnd(t *testing.T) {
	seq := NewSequence(t, newChain(t, staking.DefaultRewardRate))

	var rewards, lamports uint64
	seq.InitializeMint().
		CreateNft("my test NFT", "DDR", "test-uri").
		AssertToken(func(a *TokenAssertions) { a.Amount(1).Frozen(false).Delegated(0) }).
		Delegate().
		AssertToken(func(a *TokenAssertions) { a.Delegated(1) }).
		Stake().
		AssertToken(func(a *TokenAssertions) { a.Frozen(true).Delegated(1) }).
		Then(func(t *testing.T) {
			rec := seq.record(t)
			require.NotNil(t, rec)
			assert.Equal(t, seq.User(), rec.Owner)
			assert.Equal(t, seq.NftMint(), rec.Mint)
			assert.Equal(t, seq.chain.Now(), rec.StakedAt)
			assert.Equal(t, rec.StakedAt, rec.LastRewardAt)
			rewards = seq.rewardBalance(t)
		}).
		Advance(100).
		SendRewards().
		Then(func(t *testing.T) {
			assert.Equal(t, rewards+100, seq.rewardBalance(t))
		}).
		Unstake().
		AssertToken(func(a *TokenAssertions) { a.Frozen(false) }).
		Undelegate().
		AssertToken(func(a *TokenAssertions) { a.Delegated(0) }).
		Then(func(t *testing.T) {
			var err error
			lamports, err = seq.chain.Balance(seq.User())
			require.NoError(t, err)
		}).
		CloseRecord().
		Then(func(t *testing.T) {
			assert.Nil(t, seq.record(t))
			balance, err := seq.chain.Balance(seq.User())
			require.NoError(t, err)
			refund := seq.chain.Rent().MinimumBalance(staking.RecordSize)
			assert.Equal(t, lamports+refund-ledger.LamportsPerSignature, balance)
		}).
		Run(t)
}

func TestInitializeMint(t *testing.T) {
	seq := NewSequence(t, newChain(t, 1))
	seq.InitializeMint().
		Then(func(t *testing.T) {
			m, err := seq.chain.Mint(seq.RewardMint())
			require.NoError(t, err)
			authority, _, _ := staking.MintAuthorityAddress()
			require.NotNil(t, m.MintAuthority)
			assert.Equal(t, authority, *m.MintAuthority)
			assert.Nil(t, m.FreezeAuthority)
			assert.Equal(t, uint8(staking.RewardDecimals), m.Decimals)

			key, _, _ := metadata.MetadataAddress(seq.RewardMint())
			acc, err := seq.chain.Account(key)
			require.NoError(t, err)
			md, err := metadata.DecodeMetadata(acc.Data)
			require.NoError(t, err)
			assert.Equal(t, staking.RewardName, md.Data.Name)
			assert.Equal(t, staking.RewardSymbol, md.Data.Symbol)
			assert.Equal(t, authority, md.UpdateAuthority)
			assert.True(t, md.IsMutable)
		}).
		Then(func(t *testing.T) {
			// one-time: a second call fails instead of being a no-op
			ix := staking.InitializeMint(seq.User(), seq.RewardMint())
			receipt, err := seq.chain.Send([]*tx.Instruction{ix}, seq.user, seq.rewardMint)
			require.NoError(t, err)
			require.True(t, receipt.Reverted)
			assert.Contains(t, receipt.Err, system.ErrAccountAlreadyInUse.Error())
		}).
		Run(t)
}

func TestCreateNft(t *testing.T) {
	seq := NewSequence(t, newChain(t, 1))
	seq.CreateNft("my test NFT", "DDR", "test-uri").
		AssertToken(func(a *TokenAssertions) { a.Amount(1).Frozen(false).Delegated(0) }).
		Then(func(t *testing.T) {
			edition, _, _ := metadata.EditionAddress(seq.NftMint())

			m, err := seq.chain.Mint(seq.NftMint())
			require.NoError(t, err)
			assert.Equal(t, uint64(1), m.Supply)
			assert.Equal(t, uint8(0), m.Decimals)
			require.NotNil(t, m.MintAuthority)
			assert.Equal(t, edition, *m.MintAuthority)
			require.NotNil(t, m.FreezeAuthority)
			assert.Equal(t, edition, *m.FreezeAuthority)

			mdKey, _, _ := metadata.MetadataAddress(seq.NftMint())
			acc, err := seq.chain.Account(mdKey)
			require.NoError(t, err)
			md, err := metadata.DecodeMetadata(acc.Data)
			require.NoError(t, err)
			assert.Equal(t, "my test NFT", md.Data.Name)
			assert.Equal(t, "DDR", md.Data.Symbol)
			assert.Equal(t, "test-uri", md.Data.URI)
			assert.False(t, md.IsMutable)
			assert.Equal(t, metadata.NonFungible, md.TokenStandard)
			require.Len(t, md.Data.Creators, 1)
			assert.Equal(t, metadata.Creator{Address: seq.User(), Verified: true, Share: 100}, md.Data.Creators[0])

			acc, err = seq.chain.Account(edition)
			require.NoError(t, err)
			ed, err := metadata.DecodeMasterEdition(acc.Data)
			require.NoError(t, err)
			require.NotNil(t, ed.MaxSupply)
			assert.Equal(t, uint64(0), *ed.MaxSupply)
		}).
		Run(t)
}

func TestStakeTwice(t *testing.T) {
	seq := staked(t, 1)
	seq.Fails("second stake", staking.ErrAlreadyStaked, staking.StakeNft(seq.User(), seq.NftMint())).
		Unstake().
		// the record survives unstake
		Fails("stake before close", staking.ErrAlreadyStaked, staking.StakeNft(seq.User(), seq.NftMint())).
		CloseRecord().
		Stake().
		AssertToken(func(a *TokenAssertions) { a.Frozen(true) }).
		Run(t)
}

func TestFreezeFlag(t *testing.T) {
	seq := staked(t, 1)
	seq.AssertToken(func(a *TokenAssertions) { a.Frozen(true) }).
		Unstake().
		AssertToken(func(a *TokenAssertions) { a.Frozen(false) }).
		Fails("second unstake", staking.ErrNotStaked, staking.UnstakeNft(seq.User(), seq.NftMint())).
		Run(t)
}

func TestNoDoubleReward(t *testing.T) {
	seq := staked(t, 1)

	var balance uint64
	seq.Advance(10).
		SendRewards().
		Then(func(t *testing.T) {
			balance = seq.rewardBalance(t)
			assert.Equal(t, uint64(10), balance)
		}).
		SendRewards().
		Then(func(t *testing.T) {
			assert.Equal(t, balance, seq.rewardBalance(t))
			assert.Equal(t, seq.chain.Now(), seq.record(t).LastRewardAt)
		}).
		Run(t)
}

func TestClosureGuard(t *testing.T) {
	seq := staked(t, 1)
	seq.Fails("close while staked", staking.ErrStillStaked, staking.CloseRecord(seq.User(), seq.NftMint())).
		Fails("undelegate while staked", staking.ErrStillStaked, staking.UndelegateNft(seq.User(), seq.NftMint())).
		Unstake().
		CloseRecord().
		Then(func(t *testing.T) {
			assert.Nil(t, seq.record(t))
			acc, err := seq.chain.Account(seq.Record())
			require.NoError(t, err)
			assert.True(t, acc.IsEmpty())
		}).
		Fails("close twice", staking.ErrRecordNotFound, staking.CloseRecord(seq.User(), seq.NftMint())).
		Run(t)
}

func TestDelegationAmount(t *testing.T) {
	seq := NewSequence(t, newChain(t, 1))
	seq.CreateNft("n", "s", "u").
		Delegate().
		AssertToken(func(a *TokenAssertions) { a.Delegated(1) }).
		Undelegate().
		AssertToken(func(a *TokenAssertions) { a.Delegated(0) }).
		Fails("stake undelegated", staking.ErrNotDelegated, staking.StakeNft(seq.User(), seq.NftMint())).
		Fails("unstake unstaked", staking.ErrNotStaked, staking.UnstakeNft(seq.User(), seq.NftMint())).
		Run(t)
}

func TestRewardsAfterUnstake(t *testing.T) {
	seq := staked(t, 3)
	seq.Advance(5).
		Unstake().
		Advance(7).
		SendRewards().
		Then(func(t *testing.T) {
			assert.Equal(t, uint64(3*12), seq.rewardBalance(t))
		}).
		Undelegate().
		CloseRecord().
		Advance(5).
		Fails("rewards without record", staking.ErrRecordNotFound, seq.sendRewardsIxs()...).
		Run(t)
}

func TestClockRegression(t *testing.T) {
	seq := staked(t, 1)

	var stakedAt int64
	seq.Then(func(t *testing.T) {
		stakedAt = seq.record(t).LastRewardAt
		seq.chain.SetNow(stakedAt - 100)
	}).
		SendRewards().
		Then(func(t *testing.T) {
			assert.Equal(t, uint64(0), seq.rewardBalance(t))
			assert.Equal(t, stakedAt, seq.record(t).LastRewardAt)
		}).
		Run(t)
}

func TestRewardAtomicity(t *testing.T) {
	seq := staked(t, math.MaxUint64)

	var checkpoint int64
	seq.Advance(1).
		SendRewards().
		Then(func(t *testing.T) {
			assert.Equal(t, uint64(math.MaxUint64), seq.rewardBalance(t))
			checkpoint = seq.record(t).LastRewardAt
		}).
		Advance(1).
		// the mint overflows the supply, the checkpoint must not move
		Fails("supply overflow", token.ErrOverflow, seq.sendRewardsIxs()...).
		Then(func(t *testing.T) {
			assert.Equal(t, checkpoint, seq.record(t).LastRewardAt)
		}).
		Advance(1).
		Fails("reward overflow", staking.ErrRewardOverflow, seq.sendRewardsIxs()...).
		Then(func(t *testing.T) {
			assert.Equal(t, checkpoint, seq.record(t).LastRewardAt)
			assert.Equal(t, uint64(math.MaxUint64), seq.rewardBalance(t))
		}).
		Run(t)
}

func TestInvalidDerivation(t *testing.T) {
	seq := NewSequence(t, newChain(t, 1))

	badAuthority := staking.DelegateNft(seq.User(), seq.NftMint())
	badAuthority.Metas[1].PublicKey = datagen.RandomPublicKey()

	badRecord := staking.StakeNft(seq.User(), seq.NftMint())
	badRecord.Metas[3].PublicKey = datagen.RandomPublicKey()

	badAccount := staking.StakeNft(seq.User(), seq.NftMint())
	badAccount.Metas[2].PublicKey = datagen.RandomPublicKey()

	seq.InitializeMint().
		CreateNft("n", "s", "u").
		Fails("delegate to another authority", staking.ErrInvalidDerivation, badAuthority).
		Delegate().
		Fails("stake into another record", staking.ErrInvalidDerivation, badRecord).
		Fails("stake another token account", staking.ErrInvalidDerivation, badAccount).
		Stake().
		Run(t)
}

func TestNotOwner(t *testing.T) {
	seq := staked(t, 1)
	other, err := seq.chain.NewAccount(ledger.LamportsPerSOL)
	require.NoError(t, err)

	// other closes the record of user
	ix := staking.CloseRecord(other.PublicKey(), seq.NftMint())
	ix.Metas[1].PublicKey = seq.Record()

	seq.Unstake().
		Then(func(t *testing.T) {
			receipt, err := seq.chain.Send([]*tx.Instruction{ix}, other)
			require.NoError(t, err)
			require.True(t, receipt.Reverted)
			assert.Contains(t, receipt.Err, staking.ErrNotOwner.Error())
			assert.NotNil(t, seq.record(t))
		}).
		Run(t)
}

func TestMissingSigner(t *testing.T) {
	seq := staked(t, 1)
	ix := staking.UnstakeNft(seq.User(), seq.NftMint())
	ix.Metas[0].IsSigner = false

	other, err := seq.chain.NewAccount(ledger.LamportsPerSOL)
	require.NoError(t, err)

	receipt, err := seq.chain.Send([]*tx.Instruction{ix}, other)
	require.NoError(t, err)
	require.True(t, receipt.Reverted)
	assert.Contains(t, receipt.Err, staking.ErrMissingSigner.Error())
}

func TestInvalidInstruction(t *testing.T) {
	seq := NewSequence(t, newChain(t, 1))
	ix := tx.NewInstruction(staking.ProgramID, []byte{1, 2, 3},
		solana.NewAccountMeta(seq.User(), true, true))
	seq.Fails("short data", staking.ErrInvalidInstruction, ix).Run(t)
}

func TestLogs(t *testing.T) {
	seq := staked(t, 1)
	seq.Advance(2).
		Then(func(t *testing.T) {
			receipt, err := seq.chain.Send(seq.sendRewardsIxs(), seq.user)
			require.NoError(t, err)
			require.False(t, receipt.Reverted, receipt.Err)
			assert.True(t, receipt.HasLog("Program log: Sending 2 reward tokens.."))
			assert.True(t, receipt.HasLog("Program log: Transaction complete!"))
		}).
		Run(t)
}
