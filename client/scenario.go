// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"

	"github.com/vechain/nftstake/builtin/reverts"
	"github.com/vechain/nftstake/builtin/staking"
	"github.com/vechain/nftstake/ledger"
	"github.com/vechain/nftstake/tx"
)

// Order is the order of the steps following the stake.
type Order int

const (
	// OrderRewardWhileStaked settles the rewards before unstaking.
	OrderRewardWhileStaked Order = iota
	// OrderRewardAfterUndelegate settles the rewards once unstaked and
	// undelegated, just before closing the record.
	OrderRewardAfterUndelegate
)

func (o Order) String() string {
	if o == OrderRewardAfterUndelegate {
		return "reward-after-undelegate"
	}
	return "reward-while-staked"
}

// ParseOrder parses the name of an order.
func ParseOrder(s string) (Order, error) {
	switch s {
	case "", OrderRewardWhileStaked.String():
		return OrderRewardWhileStaked, nil
	case OrderRewardAfterUndelegate.String():
		return OrderRewardAfterUndelegate, nil
	}
	return 0, errors.Errorf("unknown order %q", s)
}

type ScenarioOptions struct {
	Name   string
	Symbol string
	URI    string
	// RewardRate must match the rate of the staking program.
	RewardRate uint64
	Order      Order
	// Airdrop tops the payer up to this many lamports when it holds less. Zero disables it.
	Airdrop uint64
	// Wait is called while the NFT is staked, to let rewards accrue.
	Wait func(ctx context.Context) error
	// Probes also sends the operations the staked NFT must refuse.
	Probes bool
	// Cluster is appended to explorer links, none when empty.
	Cluster string
	// RewardMint and NftMint default to fresh keys.
	RewardMint solana.PrivateKey
	NftMint    solana.PrivateKey
}

// DefaultScenarioOptions returns the options of the end to end flow.
func DefaultScenarioOptions() ScenarioOptions {
	return ScenarioOptions{
		Name:       "my test NFT",
		Symbol:     "DDR",
		URI:        "test-uri",
		RewardRate: staking.DefaultRewardRate,
		Airdrop:    2 * ledger.LamportsPerSOL,
	}
}

// StepResult is one transaction of the scenario.
type StepResult struct {
	Step      string
	Signature solana.Signature
	Slot      uint64
	Explorer  string
	Status    staking.Status
	Note      string
}

// Report is the outcome of a scenario.
type Report struct {
	Book   *AddressBook
	Order  Order
	Steps  []StepResult
	Reward uint64
	// Refund is the rent returned by the closed record.
	Refund uint64
}

func (r *Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "owner %v, nft %v, reward mint %v (%v)\n", r.Book.Owner, r.Book.NftMint, r.Book.RewardMint, r.Order)
	for _, s := range r.Steps {
		fmt.Fprintf(&b, "  %-14s slot %-4d %-18s %s", s.Step, s.Slot, s.Status, s.Explorer)
		if s.Note != "" {
			fmt.Fprintf(&b, " (%s)", s.Note)
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "  reward %d, refund %d lamports", r.Reward, r.Refund)
	return b.String()
}

// ExplorerLink returns the explorer url of a transaction.
func ExplorerLink(sig solana.Signature, cluster string) string {
	link := "https://solscan.io/tx/" + sig.String()
	if cluster != "" {
		link += "?cluster=" + cluster
	}
	return link
}

type scenario struct {
	c       *Client
	opts    ScenarioOptions
	staking *Staking
	book    *AddressBook
	report  *Report
}

// RunScenario runs the whole staking life cycle of a fresh NFT, checking the
// ledger after every step.
func (c *Client) RunScenario(ctx context.Context, opts ScenarioOptions) (*Report, error) {
	if opts.RewardMint == nil {
		opts.RewardMint = solana.NewWallet().PrivateKey
	}
	if opts.NftMint == nil {
		opts.NftMint = solana.NewWallet().PrivateKey
	}
	book, err := NewAddressBook(c.Payer(), opts.RewardMint.PublicKey(), opts.NftMint.PublicKey())
	if err != nil {
		return nil, err
	}
	s := &scenario{
		c:       c,
		opts:    opts,
		staking: NewStaking(book),
		book:    book,
		report:  &Report{Book: book, Order: opts.Order},
	}
	if err := s.run(ctx); err != nil {
		return s.report, err
	}
	return s.report, nil
}

func (s *scenario) run(ctx context.Context) error {
	if err := s.fund(ctx); err != nil {
		return err
	}
	steps := []func(context.Context) error{
		s.initializeMint,
		s.createNft,
		s.delegate,
		s.stake,
	}
	if s.opts.Probes {
		steps = append(steps, s.probe)
	}
	steps = append(steps, s.wait)
	if s.opts.Order == OrderRewardAfterUndelegate {
		steps = append(steps, s.unstake, s.undelegate, s.sendRewards)
	} else {
		steps = append(steps, s.sendRewards, s.unstake, s.undelegate)
	}
	steps = append(steps, s.closeRecord)

	for _, step := range steps {
		if err := step(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (s *scenario) fund(ctx context.Context) error {
	if s.opts.Airdrop == 0 {
		return nil
	}
	balance, err := s.c.Balance(ctx, s.book.Owner)
	if err != nil {
		return err
	}
	if balance >= s.opts.Airdrop {
		return nil
	}
	r, err := s.c.Backend().Airdrop(ctx, s.book.Owner, s.opts.Airdrop-balance)
	if err != nil {
		return errors.WithMessage(err, "airdrop")
	}
	return s.record(ctx, "airdrop", r, "")
}

func (s *scenario) send(ctx context.Context, name string, ixs []*tx.Instruction, signers ...solana.PrivateKey) (*tx.Receipt, error) {
	r, err := s.c.Send(ctx, ixs, signers...)
	if err != nil {
		var re *RevertError
		if errors.As(err, &re) {
			logger.Debug("step reverted", "step", name, "logs", re.Logs())
		}
		return nil, errors.WithMessage(err, name)
	}
	return r, nil
}

func (s *scenario) record(ctx context.Context, name string, r *tx.Receipt, note string) error {
	status, err := s.c.Status(ctx, s.book)
	if err != nil {
		return err
	}
	res := StepResult{
		Step:      name,
		Signature: r.Signature,
		Slot:      r.Slot,
		Explorer:  ExplorerLink(r.Signature, s.opts.Cluster),
		Status:    status,
		Note:      note,
	}
	s.report.Steps = append(s.report.Steps, res)
	logger.Info("scenario step", "step", name, "slot", r.Slot, "status", status, "tx", res.Explorer)
	return nil
}

func (s *scenario) expectStatus(ctx context.Context, name string, want staking.Status) error {
	got, err := s.c.Status(ctx, s.book)
	if err != nil {
		return err
	}
	if got != want {
		return errors.Errorf("%s: status %v, want %v", name, got, want)
	}
	return nil
}

func (s *scenario) initializeMint(ctx context.Context) error {
	r, err := s.send(ctx, "initializeMint", []*tx.Instruction{s.staking.InitializeMint()}, s.opts.RewardMint)
	if err != nil {
		return err
	}
	m, err := s.c.Mint(ctx, s.book.RewardMint)
	if err != nil {
		return err
	}
	if m == nil || m.MintAuthority == nil || *m.MintAuthority != s.book.MintAuthority {
		return errors.New("initializeMint: reward mint not controlled by the mint authority")
	}
	return s.record(ctx, "initializeMint", r, "")
}

func (s *scenario) createNft(ctx context.Context) error {
	r, err := s.send(ctx, "createNft", []*tx.Instruction{s.staking.CreateNft(s.opts.Name, s.opts.Symbol, s.opts.URI)}, s.opts.NftMint)
	if err != nil {
		return err
	}
	ta, err := s.c.TokenAccount(ctx, s.book.NftAccount)
	if err != nil {
		return err
	}
	if ta == nil || ta.Amount != 1 {
		return errors.New("createNft: owner does not hold the NFT")
	}
	return s.record(ctx, "createNft", r, "")
}

func (s *scenario) delegate(ctx context.Context) error {
	r, err := s.send(ctx, "delegateNft", []*tx.Instruction{s.staking.DelegateNft()})
	if err != nil {
		return err
	}
	ta, err := s.c.TokenAccount(ctx, s.book.NftAccount)
	if err != nil {
		return err
	}
	if ta.DelegatedAmount != 1 {
		return errors.Errorf("delegateNft: delegated amount %d, want 1", ta.DelegatedAmount)
	}
	if err := s.expectStatus(ctx, "delegateNft", staking.StatusDelegated); err != nil {
		return err
	}
	return s.record(ctx, "delegateNft", r, "")
}

func (s *scenario) stake(ctx context.Context) error {
	r, err := s.send(ctx, "stakeNft", []*tx.Instruction{s.staking.StakeNft()})
	if err != nil {
		return err
	}
	ta, err := s.c.TokenAccount(ctx, s.book.NftAccount)
	if err != nil {
		return err
	}
	if !ta.IsFrozen() {
		return errors.New("stakeNft: token account not frozen")
	}
	if err := s.expectStatus(ctx, "stakeNft", staking.StatusStaked); err != nil {
		return err
	}
	return s.record(ctx, "stakeNft", r, "frozen")
}

// probe checks the staked NFT refuses a second stake and the closure of its record.
func (s *scenario) probe(ctx context.Context) error {
	probes := []struct {
		name string
		ix   *tx.Instruction
		want *reverts.Error
	}{
		{"stakeNft again", s.staking.StakeNft(), staking.ErrAlreadyStaked},
		{"closeRecord while staked", s.staking.CloseRecord(), staking.ErrStillStaked},
	}
	for _, p := range probes {
		r, err := s.c.Send(ctx, []*tx.Instruction{p.ix})
		var re *RevertError
		if !errors.As(err, &re) {
			return errors.Errorf("probe %s: expected a revert, got %v", p.name, err)
		}
		if !strings.Contains(r.Err, p.want.Error()) {
			return errors.Errorf("probe %s: reverted with %q, want %v", p.name, r.Err, p.want)
		}
		if err := s.record(ctx, "probe", r, p.name+" refused"); err != nil {
			return err
		}
	}
	return nil
}

func (s *scenario) wait(ctx context.Context) error {
	if s.opts.Wait == nil {
		return nil
	}
	return s.opts.Wait(ctx)
}

func (s *scenario) sendRewards(ctx context.Context) error {
	rec, err := s.c.Record(ctx, s.book.Record)
	if err != nil {
		return err
	}
	if rec == nil {
		return errors.New("sendRewards: no stake record")
	}
	var before uint64
	if ta, err := s.c.TokenAccount(ctx, s.book.RewardAccount); err != nil {
		return err
	} else if ta != nil {
		before = ta.Amount
	}

	r, err := s.send(ctx, "sendRewards", []*tx.Instruction{s.staking.CreateRewardAccount(), s.staking.SendRewards()})
	if err != nil {
		return err
	}
	ta, err := s.c.TokenAccount(ctx, s.book.RewardAccount)
	if err != nil {
		return err
	}
	want, err := staking.Reward(s.opts.RewardRate, rec.LastRewardAt, int64(r.BlockTime))
	if err != nil {
		return err
	}
	if got := ta.Amount - before; got != want {
		return errors.Errorf("sendRewards: rewarded %d, want %d", got, want)
	}
	s.report.Reward += want
	return s.record(ctx, "sendRewards", r, fmt.Sprintf("+%d reward", want))
}

func (s *scenario) unstake(ctx context.Context) error {
	r, err := s.send(ctx, "unstakeNft", []*tx.Instruction{s.staking.UnstakeNft()})
	if err != nil {
		return err
	}
	ta, err := s.c.TokenAccount(ctx, s.book.NftAccount)
	if err != nil {
		return err
	}
	if ta.IsFrozen() {
		return errors.New("unstakeNft: token account still frozen")
	}
	if err := s.expectStatus(ctx, "unstakeNft", staking.StatusThawed); err != nil {
		return err
	}
	return s.record(ctx, "unstakeNft", r, "thawed")
}

func (s *scenario) undelegate(ctx context.Context) error {
	r, err := s.send(ctx, "undelegateNft", []*tx.Instruction{s.staking.UndelegateNft()})
	if err != nil {
		return err
	}
	ta, err := s.c.TokenAccount(ctx, s.book.NftAccount)
	if err != nil {
		return err
	}
	if ta.DelegatedAmount != 0 || ta.Delegate != nil {
		return errors.Errorf("undelegateNft: delegated amount %d, want 0", ta.DelegatedAmount)
	}
	return s.record(ctx, "undelegateNft", r, "")
}

func (s *scenario) closeRecord(ctx context.Context) error {
	rent, err := s.c.Balance(ctx, s.book.Record)
	if err != nil {
		return err
	}
	before, err := s.c.Balance(ctx, s.book.Owner)
	if err != nil {
		return err
	}
	r, err := s.send(ctx, "closeRecord", []*tx.Instruction{s.staking.CloseRecord()})
	if err != nil {
		return err
	}
	if left, err := s.c.Balance(ctx, s.book.Record); err != nil {
		return err
	} else if left != 0 {
		return errors.Errorf("closeRecord: record still holds %d lamports", left)
	}
	after, err := s.c.Balance(ctx, s.book.Owner)
	if err != nil {
		return err
	}
	if after != before-r.Fee+rent {
		return errors.Errorf("closeRecord: owner balance %d, want %d", after, before-r.Fee+rent)
	}
	if err := s.expectStatus(ctx, "closeRecord", staking.StatusUnstaked); err != nil {
		return err
	}
	s.report.Refund = rent
	return s.record(ctx, "closeRecord", r, fmt.Sprintf("refunded %d lamports", rent))
}
