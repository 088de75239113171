// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package testchain

import (
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"

	"github.com/vechain/nftstake/builtin"
	"github.com/vechain/nftstake/builtin/token"
	"github.com/vechain/nftstake/ledger"
	"github.com/vechain/nftstake/lvldb"
	"github.com/vechain/nftstake/runtime"
	"github.com/vechain/nftstake/state"
	"github.com/vechain/nftstake/test/datagen"
	"github.com/vechain/nftstake/tx"
	"github.com/vechain/nftstake/xenv"
)

// Chain is an in-memory ledger executing transactions one slot at a time,
// with a clock moved by hand.
type Chain struct {
	db        *lvldb.LevelDB
	store     *state.Store
	programs  xenv.ProgramSet
	rent      ledger.Rent
	slot      uint64
	now       int64
	blockhash ledger.Bytes32
}

// NewDefault creates a Chain with the default builtin config.
func NewDefault() (*Chain, error) {
	return New(builtin.DefaultConfig())
}

// New creates a Chain running the builtin programs with cfg.
func New(cfg builtin.Config) (*Chain, error) {
	db, err := lvldb.NewMem()
	if err != nil {
		return nil, err
	}
	c := &Chain{
		db:        db,
		store:     state.NewStore(db, 16),
		programs:  builtin.ProgramSet(cfg),
		rent:      ledger.DefaultRent(),
		now:       time.Now().Unix(),
		blockhash: datagen.RandomHash(),
	}
	genesis, err := builtin.GenesisAccounts(builtin.Programs(cfg), c.rent)
	if err != nil {
		return nil, err
	}
	st := state.New(c.store)
	for key, acc := range genesis {
		st.SetAccount(key, acc)
	}
	if err := st.Stage().Commit(); err != nil {
		return nil, fmt.Errorf("unable to commit genesis: %w", err)
	}
	return c, nil
}

func (c *Chain) Rent() ledger.Rent         { return c.rent }
func (c *Chain) Now() int64                { return c.now }
func (c *Chain) Slot() uint64              { return c.slot }
func (c *Chain) Blockhash() ledger.Bytes32 { return c.blockhash }

// Advance moves the clock forward.
func (c *Chain) Advance(seconds int64) {
	c.now += seconds
}

// SetNow sets the clock, possibly backwards.
func (c *Chain) SetNow(now int64) {
	c.now = now
}

// State returns a fresh state over the committed accounts.
func (c *Chain) State() *state.State {
	return state.New(c.store)
}

// Account reads a committed account.
func (c *Chain) Account(key solana.PublicKey) (*state.Account, error) {
	return c.State().GetAccount(key)
}

// Balance reads the lamports of a committed account.
func (c *Chain) Balance(key solana.PublicKey) (uint64, error) {
	acc, err := c.Account(key)
	if err != nil {
		return 0, err
	}
	return acc.Lamports, nil
}

// TokenAccount decodes a committed token account.
func (c *Chain) TokenAccount(key solana.PublicKey) (*token.Account, error) {
	acc, err := c.Account(key)
	if err != nil {
		return nil, err
	}
	if acc.Owner != token.ProgramID {
		return nil, fmt.Errorf("account %v is not a token account", key)
	}
	return token.DecodeAccount(acc.Data)
}

// Mint decodes a committed mint.
func (c *Chain) Mint(key solana.PublicKey) (*token.Mint, error) {
	acc, err := c.Account(key)
	if err != nil {
		return nil, err
	}
	if acc.Owner != token.ProgramID {
		return nil, fmt.Errorf("account %v is not a mint", key)
	}
	return token.DecodeMint(acc.Data)
}

// Fund credits lamports to a system account.
func (c *Chain) Fund(key solana.PublicKey, lamports uint64) error {
	st := c.State()
	acc, err := st.GetAccount(key)
	if err != nil {
		return err
	}
	acc.Lamports += lamports
	st.SetAccount(key, acc)
	return st.Stage().Commit()
}

// NewAccount generates a keypair funded with lamports.
func (c *Chain) NewAccount(lamports uint64) (solana.PrivateKey, error) {
	key := datagen.RandomKey()
	if err := c.Fund(key.PublicKey(), lamports); err != nil {
		return nil, err
	}
	return key, nil
}

// Execute runs trx in the next slot and commits its effects.
func (c *Chain) Execute(trx *tx.Transaction) (*tx.Receipt, error) {
	st := c.State()
	clock := ledger.NewClock(c.slot+1, c.now, c.now)
	rt := runtime.New(st, clock, c.rent, c.programs, ledger.LamportsPerSignature)

	receipt, err := rt.ExecuteTransaction(trx)
	if err != nil {
		return nil, err
	}
	if err := st.Stage().Commit(); err != nil {
		return nil, err
	}
	c.slot++
	id := trx.ID()
	c.blockhash = ledger.Blake2b(c.blockhash[:], id[:])
	return receipt, nil
}

// Send signs the instructions with the signers, the first one paying the
// fee, and executes them.
func (c *Chain) Send(ixs []*tx.Instruction, signers ...solana.PrivateKey) (*tx.Receipt, error) {
	if len(signers) == 0 {
		return nil, fmt.Errorf("no signer")
	}
	trx := tx.NewBuilder(signers[0].PublicKey()).
		RecentBlockhash(c.blockhash).
		Instruction(ixs...).
		Nonce(datagen.RandUint64()).
		Build()
	trx, err := trx.Sign(signers...)
	if err != nil {
		return nil, err
	}
	return c.Execute(trx)
}

// MustSucceed sends the instructions and fails unless they landed without revert.
func (c *Chain) MustSucceed(ixs []*tx.Instruction, signers ...solana.PrivateKey) (*tx.Receipt, error) {
	receipt, err := c.Send(ixs, signers...)
	if err != nil {
		return nil, err
	}
	if receipt.Reverted {
		return receipt, fmt.Errorf("transaction reverted: %s", receipt.Err)
	}
	return receipt, nil
}
