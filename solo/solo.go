// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package solo implements a standalone ledger node: a single writer executing
// transactions one slot at a time against a persistent account store.
package solo

import (
	"context"
	"encoding/binary"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/event"
	"github.com/gagliardetto/solana-go"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"

	"github.com/vechain/nftstake/builtin"
	"github.com/vechain/nftstake/co"
	"github.com/vechain/nftstake/kv"
	"github.com/vechain/nftstake/ledger"
	"github.com/vechain/nftstake/log"
	"github.com/vechain/nftstake/runtime"
	"github.com/vechain/nftstake/state"
	"github.com/vechain/nftstake/tx"
	"github.com/vechain/nftstake/xenv"
)

var logger = log.WithContext("pkg", "solo")

var (
	ErrBlockhashNotFound = errors.New("blockhash not found")
	ErrAlreadyProcessed  = errors.New("transaction already processed")
	ErrNotSystemAccount  = errors.New("airdrop target is not a system account")
)

var genesisBlockhash = ledger.Blake2b([]byte("nftstake genesis"))

// Node is the solo ledger node.
type Node struct {
	db       kv.Store
	store    *state.Store
	programs xenv.ProgramSet
	rent     ledger.Rent
	opts     Options

	mu       sync.Mutex
	head     *meta
	nowFn    func() time.Time
	receipts *lru.Cache[solana.Signature, *tx.Receipt]

	feed  event.Feed
	scope event.SubscriptionScope
	goes  co.Goes
}

// New opens the node over db, writing the genesis accounts on first use.
func New(db kv.Store, opts Options) (*Node, error) {
	opts.normalize()
	receipts, err := lru.New[solana.Signature, *tx.Receipt](opts.ReceiptCacheSize)
	if err != nil {
		return nil, err
	}
	n := &Node{
		db:       db,
		store:    state.NewStore(db, opts.StateCacheMB),
		programs: builtin.ProgramSet(opts.Builtin),
		rent:     ledger.DefaultRent(),
		opts:     opts,
		nowFn:    opts.Now,
		receipts: receipts,
	}

	head, err := loadMeta(db)
	if err != nil {
		return nil, errors.Wrap(err, "load head")
	}
	if head == nil {
		if head, err = n.genesis(); err != nil {
			return nil, errors.Wrap(err, "genesis")
		}
		logger.Info("genesis written", "blockhash", head.latest())
	} else {
		logger.Info("resumed", "slot", head.Slot, "blockhash", head.latest())
	}
	n.head = head
	metricSlot().Set(int64(head.Slot))
	return n, nil
}

func (n *Node) genesis() (*meta, error) {
	accounts, err := builtin.GenesisAccounts(builtin.Programs(n.opts.Builtin), n.rent)
	if err != nil {
		return nil, err
	}
	st := state.New(n.store)
	for key, acc := range accounts {
		st.SetAccount(key, acc)
	}
	now := uint64(max(n.nowFn().Unix(), 0))
	head := &meta{
		LastTimestamp: now,
		EpochStart:    now,
		Blockhashes:   []ledger.Bytes32{genesisBlockhash},
	}
	if err := st.Stage().Commit(saveMeta(head)); err != nil {
		return nil, err
	}
	return head, nil
}

// SetNowFunc replaces the wall clock feeding the clock sysvar.
func (n *Node) SetNowFunc(fn func() time.Time) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.nowFn = fn
}

func (n *Node) Rent() ledger.Rent            { return n.rent }
func (n *Node) Programs() xenv.ProgramSet    { return n.programs }
func (n *Node) LamportsPerSignature() uint64 { return n.opts.LamportsPerSignature }
func (n *Node) RewardRate() uint64           { return n.opts.Builtin.RewardRate }
func (n *Node) State() *state.State          { return state.New(n.store) }

// SubscribeReceipts delivers the receipt of every committed transaction to ch.
func (n *Node) SubscribeReceipts(ch chan *tx.Receipt) event.Subscription {
	return n.scope.Track(n.feed.Subscribe(ch))
}

// Slot returns the latest slot.
func (n *Node) Slot() uint64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.head.Slot
}

// LatestBlockhash returns the blockhash transactions should reference.
func (n *Node) LatestBlockhash() ledger.Bytes32 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.head.latest()
}

// Clock returns the clock sysvar of the latest slot.
func (n *Node) Clock() ledger.Clock {
	n.mu.Lock()
	defer n.mu.Unlock()
	return ledger.NewClock(n.head.Slot, n.head.lastTimestamp(), n.head.epochStart())
}

// GetAccount reads a committed account. A missing account reads as empty.
func (n *Node) GetAccount(key solana.PublicKey) (*state.Account, error) {
	return state.New(n.store).GetAccount(key)
}

// GetReceipt returns the receipt of a processed transaction, or nil.
func (n *Node) GetReceipt(sig solana.Signature) (*tx.Receipt, error) {
	if r, ok := n.receipts.Get(sig); ok {
		return r, nil
	}
	r, err := loadReceipt(n.db, sig)
	if err != nil || r == nil {
		return nil, err
	}
	n.receipts.Add(sig, r)
	return r, nil
}

// nextClock builds the clock of the next slot. The timestamp never goes back.
func (n *Node) nextClock() ledger.Clock {
	ts := n.nowFn().Unix()
	if last := n.head.lastTimestamp(); ts < last {
		ts = last
	}
	return ledger.NewClock(n.head.Slot+1, ts, n.head.epochStart())
}

// SendTransaction executes trx in the next slot. A returned error means the
// transaction was rejected. A reverted transaction still lands and pays its fee.
func (n *Node) SendTransaction(trx *tx.Transaction) (*tx.Receipt, error) {
	receipt, err := n.sendTransaction(trx)
	if err != nil {
		metricTxCount().AddWithLabel(1, map[string]string{"result": "rejected"})
		logger.Debug("transaction rejected", "sig", trx.ID(), "err", err)
		return nil, err
	}
	result := "success"
	if receipt.Reverted {
		result = "reverted"
	}
	metricTxCount().AddWithLabel(1, map[string]string{"result": result})
	metricFee().Add(int64(receipt.Fee))
	if !receipt.Reverted {
		if minted := rewardsMinted(receipt); minted > 0 {
			metricRewardMinted().Add(int64(minted))
		}
	}
	n.publish(receipt)
	return receipt, nil
}

func (n *Node) sendTransaction(trx *tx.Transaction) (*tx.Receipt, error) {
	if err := trx.Validate(); err != nil {
		return nil, err
	}
	sig := trx.ID()

	n.mu.Lock()
	defer n.mu.Unlock()

	if r, err := n.GetReceipt(sig); err != nil {
		return nil, err
	} else if r != nil {
		return nil, errors.WithMessagef(ErrAlreadyProcessed, "%v", sig)
	}
	if !n.head.isRecent(trx.RecentBlockhash()) {
		return nil, errors.WithMessagef(ErrBlockhashNotFound, "%v", trx.RecentBlockhash())
	}

	clock := n.nextClock()
	st := state.New(n.store)
	rt := runtime.New(st, clock, n.rent, n.programs, n.opts.LamportsPerSignature)
	receipt, err := rt.ExecuteTransaction(trx)
	if err != nil {
		return nil, err
	}
	if err := n.commit(st, receipt, clock, sig[:]); err != nil {
		return nil, err
	}

	logger.Debug("transaction processed", "sig", sig, "slot", receipt.Slot, "reverted", receipt.Reverted, "err", receipt.Err)
	for _, l := range receipt.Logs {
		logger.Trace(l, "sig", sig)
	}
	return receipt, nil
}

// commit writes the state changes, the receipt and the new head in one batch.
func (n *Node) commit(st *state.State, receipt *tx.Receipt, clock ledger.Clock, seed []byte) error {
	head := n.head.copy()
	prev := head.latest()
	head.next(ledger.Blake2b(prev[:], seed), clock.UnixTimestamp, n.opts.BlockhashWindow)

	if err := st.Stage().Commit(saveMeta(head), saveReceipt(receipt)); err != nil {
		return errors.Wrap(err, "commit")
	}
	n.head = head
	n.receipts.Add(receipt.Signature, receipt)
	metricSlot().Set(int64(head.Slot))
	return nil
}

func (n *Node) publish(receipt *tx.Receipt) {
	n.goes.Go(func() {
		n.feed.Send(receipt)
	})
}

// Airdrop credits lamports to a system account from the faucet, occupying one slot.
func (n *Node) Airdrop(to solana.PublicKey, lamports uint64) (*tx.Receipt, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	st := state.New(n.store)
	acc, err := st.GetAccount(to)
	if err != nil {
		return nil, err
	}
	if acc.Owner != solana.SystemProgramID || len(acc.Data) != 0 {
		return nil, errors.WithMessagef(ErrNotSystemAccount, "%v", to)
	}
	if acc.Lamports+lamports < acc.Lamports {
		return nil, errors.New("airdrop overflows balance")
	}
	acc.Lamports += lamports
	st.SetAccount(to, acc)

	clock := n.nextClock()
	var seed [8]byte
	binary.BigEndian.PutUint64(seed[:], clock.Slot)
	h1 := ledger.Blake2b([]byte("airdrop"), to[:], seed[:])
	h2 := ledger.Blake2b(h1[:], seed[:])
	var sig solana.Signature
	copy(sig[:32], h1[:])
	copy(sig[32:], h2[:])

	receipt := &tx.Receipt{
		Signature: sig,
		Slot:      clock.Slot,
		BlockTime: uint64(clock.UnixTimestamp),
		Logs:      []string{"Airdrop " + to.String()},
	}
	if err := n.commit(st, receipt, clock, sig[:]); err != nil {
		return nil, err
	}
	logger.Debug("airdrop", "to", to, "lamports", lamports, "slot", clock.Slot)
	metricAirdrop().Add(int64(lamports))
	n.publish(receipt)
	return receipt, nil
}

// Tick advances one empty slot.
func (n *Node) Tick() {
	n.mu.Lock()
	defer n.mu.Unlock()

	clock := n.nextClock()
	var seed [8]byte
	binary.BigEndian.PutUint64(seed[:], clock.Slot)
	head := n.head.copy()
	prev := head.latest()
	head.next(ledger.Blake2b(prev[:], seed[:]), clock.UnixTimestamp, n.opts.BlockhashWindow)
	if err := saveMeta(head)(n.db); err != nil {
		logger.Error("failed to save head", "err", err)
		return
	}
	n.head = head
	metricSlot().Set(int64(head.Slot))
}

// Run advances empty slots every SlotInterval until ctx is done.
func (n *Node) Run(ctx context.Context) {
	if n.opts.SlotInterval <= 0 {
		<-ctx.Done()
		return
	}
	logger.Info("slot ticker started", "interval", n.opts.SlotInterval)

	ticker := time.NewTicker(n.opts.SlotInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			logger.Info("stopping slot ticker......")
			return
		case <-ticker.C:
			n.Tick()
		}
	}
}

// Close stops the receipt feed.
func (n *Node) Close() {
	n.scope.Close()
	n.goes.Wait()
}
