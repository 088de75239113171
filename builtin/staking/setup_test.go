// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking_test

import (
	"strings"
	"sync"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"

	"github.com/vechain/nftstake/builtin"
	"github.com/vechain/nftstake/builtin/associated"
	"github.com/vechain/nftstake/builtin/reverts"
	"github.com/vechain/nftstake/builtin/staking"
	"github.com/vechain/nftstake/ledger"
	"github.com/vechain/nftstake/test/datagen"
	"github.com/vechain/nftstake/test/testchain"
	"github.com/vechain/nftstake/tx"
)

type TestFunc func(t *testing.T)

// TestSequence runs staking operations of one user over one NFT in order.
type TestSequence struct {
	chain      *testchain.Chain
	user       solana.PrivateKey
	rewardMint solana.PrivateKey
	nftMint    solana.PrivateKey

	funcs []TestFunc
	mu    sync.Mutex
}

func newChain(t *testing.T, rate uint64) *testchain.Chain {
	chain, err := testchain.New(builtin.Config{RewardRate: rate})
	require.NoError(t, err)
	return chain
}

func NewSequence(t *testing.T, chain *testchain.Chain) *TestSequence {
	user, err := chain.NewAccount(10 * ledger.LamportsPerSOL)
	require.NoError(t, err)
	return &TestSequence{
		chain:      chain,
		user:       user,
		rewardMint: datagen.RandomKey(),
		nftMint:    datagen.RandomKey(),
		funcs:      make([]TestFunc, 0),
	}
}

func (st *TestSequence) User() solana.PublicKey       { return st.user.PublicKey() }
func (st *TestSequence) NftMint() solana.PublicKey    { return st.nftMint.PublicKey() }
func (st *TestSequence) RewardMint() solana.PublicKey { return st.rewardMint.PublicKey() }

func (st *TestSequence) NftAccount() solana.PublicKey {
	key, _, _ := associated.Address(st.User(), st.NftMint())
	return key
}

func (st *TestSequence) RewardAccount() solana.PublicKey {
	key, _, _ := associated.Address(st.User(), st.RewardMint())
	return key
}

func (st *TestSequence) Record() solana.PublicKey {
	key, _, _ := staking.RecordAddress(st.User(), st.NftMint())
	return key
}

func (st *TestSequence) AddFunc(f TestFunc) *TestSequence {
	st.mu.Lock()
	defer st.mu.Unlock()

	st.funcs = append(st.funcs, f)
	return st
}

func (st *TestSequence) send(t *testing.T, name string, ixs []*tx.Instruction, signers ...solana.PrivateKey) {
	receipt, err := st.chain.Send(ixs, append([]solana.PrivateKey{st.user}, signers...)...)
	if err != nil {
		t.Fatalf("%s rejected: %v", name, err)
	}
	if receipt.Reverted {
		t.Fatalf("%s reverted: %s\n%s", name, receipt.Err, strings.Join(receipt.Logs, "\n"))
	}
	t.Logf("%s: %v", name, receipt.Signature)
}

func (st *TestSequence) InitializeMint() *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		st.send(t, "initializeMint", []*tx.Instruction{staking.InitializeMint(st.User(), st.RewardMint())}, st.rewardMint)
	})
}

func (st *TestSequence) CreateNft(name, symbol, uri string) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		args := &staking.CreateNftArgs{Name: name, Symbol: symbol, URI: uri}
		st.send(t, "createNft", []*tx.Instruction{staking.CreateNft(st.User(), st.NftMint(), args)}, st.nftMint)
	})
}

func (st *TestSequence) Delegate() *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		st.send(t, "delegateNft", []*tx.Instruction{staking.DelegateNft(st.User(), st.NftMint())})
	})
}

func (st *TestSequence) Undelegate() *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		st.send(t, "undelegateNft", []*tx.Instruction{staking.UndelegateNft(st.User(), st.NftMint())})
	})
}

func (st *TestSequence) Stake() *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		st.send(t, "stakeNft", []*tx.Instruction{staking.StakeNft(st.User(), st.NftMint())})
	})
}

func (st *TestSequence) Unstake() *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		st.send(t, "unstakeNft", []*tx.Instruction{staking.UnstakeNft(st.User(), st.NftMint())})
	})
}

func (st *TestSequence) sendRewardsIxs() []*tx.Instruction {
	return []*tx.Instruction{
		associated.CreateIdempotent(st.User(), st.User(), st.RewardMint()),
		staking.SendRewards(st.User(), st.RewardMint(), st.NftMint()),
	}
}

func (st *TestSequence) SendRewards() *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		st.send(t, "sendRewards", st.sendRewardsIxs())
	})
}

func (st *TestSequence) CloseRecord() *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		st.send(t, "closeRecord", []*tx.Instruction{staking.CloseRecord(st.User(), st.NftMint())})
	})
}

func (st *TestSequence) Advance(seconds int64) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		st.chain.Advance(seconds)
	})
}

// Fails sends ixs, signed by the user, and expects the program error want.
func (st *TestSequence) Fails(name string, want *reverts.Error, ixs ...*tx.Instruction) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		receipt, err := st.chain.Send(ixs, st.user)
		require.NoError(t, err, name)
		require.True(t, receipt.Reverted, "%s should revert", name)
		require.Contains(t, receipt.Err, want.Error(), name)
		t.Logf("%s reverted as expected: %s", name, want.Name)
	})
}

// Then runs an assertion in sequence.
func (st *TestSequence) Then(f TestFunc) *TestSequence {
	return st.AddFunc(f)
}

func (st *TestSequence) Run(t *testing.T) {
	st.mu.Lock()
	defer st.mu.Unlock()

	for _, f := range st.funcs {
		f(t)
	}
}

// TokenAssertions checks the NFT token account of a sequence.
type TokenAssertions struct {
	st *TestSequence

	frozen    *bool
	delegated *uint64
	amount    *uint64
}

func AssertToken(st *TestSequence) *TokenAssertions {
	return &TokenAssertions{st: st}
}

func (ta *TokenAssertions) Frozen(expected bool) *TokenAssertions {
	ta.frozen = &expected
	return ta
}

func (ta *TokenAssertions) Delegated(expected uint64) *TokenAssertions {
	ta.delegated = &expected
	return ta
}

func (ta *TokenAssertions) Amount(expected uint64) *TokenAssertions {
	ta.amount = &expected
	return ta
}

func (ta *TokenAssertions) Assert(t *testing.T) {
	acc, err := ta.st.chain.TokenAccount(ta.st.NftAccount())
	require.NoError(t, err)
	if ta.frozen != nil {
		require.Equal(t, *ta.frozen, acc.IsFrozen(), "frozen")
	}
	if ta.delegated != nil {
		require.Equal(t, *ta.delegated, acc.DelegatedAmount, "delegated amount")
		if *ta.delegated == 0 {
			require.Nil(t, acc.Delegate)
		} else {
			authority, _, _ := staking.StakingAuthorityAddress()
			require.NotNil(t, acc.Delegate)
			require.Equal(t, authority, *acc.Delegate)
		}
	}
	if ta.amount != nil {
		require.Equal(t, *ta.amount, acc.Amount, "amount")
	}
}

func (st *TestSequence) AssertToken(f func(*TokenAssertions)) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		ta := AssertToken(st)
		f(ta)
		ta.Assert(t)
	})
}

func (st *TestSequence) record(t *testing.T) *staking.Record {
	acc, err := st.chain.Account(st.Record())
	require.NoError(t, err)
	if acc.IsEmpty() {
		return nil
	}
	rec, err := staking.DecodeRecord(acc.Data)
	require.NoError(t, err)
	return rec
}

func (st *TestSequence) rewardBalance(t *testing.T) uint64 {
	acc, err := st.chain.Account(st.RewardAccount())
	require.NoError(t, err)
	if acc.IsEmpty() {
		return 0
	}
	ta, err := st.chain.TokenAccount(st.RewardAccount())
	require.NoError(t, err)
	return ta.Amount
}
