// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/nftstake/api/types"
	"github.com/vechain/nftstake/client"
	"github.com/vechain/nftstake/ledger"
	"github.com/vechain/nftstake/test"
	"github.com/vechain/nftstake/test/datagen"
	"github.com/vechain/nftstake/test/testnode"
	"github.com/vechain/nftstake/tx"
)

func TestClient_Blockhash(t *testing.T) {
	expected := &types.Blockhash{Blockhash: datagen.RandomHash(), Slot: 3, UnixTimestamp: 1000}

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/node/blockhash", r.URL.Path)
		b, _ := json.Marshal(expected)
		w.Write(b)
	}))
	defer ts.Close()

	c := New(ts.URL + "/")
	bh, err := c.Blockhash(context.Background())
	require.NoError(t, err)
	assert.Equal(t, expected, bh)

	hash, err := c.LatestBlockhash(context.Background())
	require.NoError(t, err)
	assert.Equal(t, expected.Blockhash, hash)
}

func TestClient_GetAccount(t *testing.T) {
	key := datagen.RandomPublicKey()
	expected := &types.Account{Lamports: 10, Owner: key.String(), Data: "AQI="}

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/accounts/"+key.String(), r.URL.Path)
		b, _ := json.Marshal(expected)
		w.Write(b)
	}))
	defer ts.Close()

	acc, err := New(ts.URL).GetAccount(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), acc.Lamports)
	assert.Equal(t, key, acc.Owner)
	assert.Equal(t, []byte{1, 2}, acc.Data)
}

func TestClient_Airdrop(t *testing.T) {
	to := datagen.RandomPublicKey()
	expected := &types.Receipt{Signature: datagen.RandomSignature().String(), Slot: 1, Logs: []string{"Airdrop"}}

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/node/airdrop", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		var req types.AirdropRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, to.String(), req.Address)
		assert.Equal(t, uint64(5), req.Lamports)
		b, _ := json.Marshal(expected)
		w.Write(b)
	}))
	defer ts.Close()

	r, err := New(ts.URL).Airdrop(context.Background(), to, 5)
	require.NoError(t, err)
	assert.Equal(t, expected.Signature, r.Signature.String())
	assert.Equal(t, expected.Logs, r.Logs)
}

func TestClient_Errors(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/transactions/" + solanaSigZero:
			http.Error(w, "receipt not found", http.StatusNotFound)
		default:
			http.Error(w, "rejected tx", http.StatusForbidden)
		}
	}))
	defer ts.Close()

	c := New(ts.URL)
	_, err := c.GetReceipt(context.Background(), [64]byte{})
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = c.GetAccount(context.Background(), datagen.RandomPublicKey())
	assert.True(t, errors.Is(err, ErrNot200Status))
	assert.Contains(t, err.Error(), "403")

	_, err = New("http://127.0.0.1:0").LatestBlockhash(context.Background())
	assert.Error(t, err)
}

const solanaSigZero = "1111111111111111111111111111111111111111111111111111111111111111"

func newNode(t *testing.T) testnode.Node {
	n, err := testnode.NewDefaultNode()
	require.NoError(t, err)
	require.NoError(t, n.Start())
	t.Cleanup(func() { n.Stop() })
	return n
}

func TestClient_Scenario(t *testing.T) {
	n := newNode(t)
	ctx := context.Background()
	backend := New(n.APIServer().URL)

	c := client.New(backend, datagen.RandomKey())
	opts := client.DefaultScenarioOptions()
	opts.Wait = func(context.Context) error {
		n.Advance(5 * time.Second)
		return nil
	}
	report, err := c.RunScenario(ctx, opts)
	require.NoError(t, err, report)
	assert.Equal(t, uint64(5), report.Reward)

	for _, step := range report.Steps {
		r, err := backend.GetReceipt(ctx, step.Signature)
		require.NoError(t, err)
		assert.Equal(t, step.Slot, r.Slot)
	}

	stake, err := backend.GetStake(ctx, report.Book.Owner, report.Book.NftMint)
	require.NoError(t, err)
	assert.Equal(t, "Unstaked", stake.Status)

	ta, err := backend.GetTokenAccount(ctx, report.Book.RewardAccount)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), ta.Amount)

	_, err = backend.GetTokenAccount(ctx, report.Book.Record)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestClient_Rejected(t *testing.T) {
	n := newNode(t)
	ctx := context.Background()
	backend := New(n.APIServer().URL)

	// an unfunded fee payer is refused
	c := client.New(backend, datagen.RandomKey())
	book, err := client.NewAddressBook(c.Payer(), datagen.RandomPublicKey(), datagen.RandomPublicKey())
	require.NoError(t, err)
	_, err = c.Send(ctx, []*tx.Instruction{client.NewStaking(book).DelegateNft()})
	assert.True(t, errors.Is(err, ErrNot200Status))
	assert.Contains(t, err.Error(), "403")
}

func TestClient_SubscribeReceipts(t *testing.T) {
	n := newNode(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	backend := New(n.APIServer().URL)

	ch, err := backend.SubscribeReceipts(ctx)
	require.NoError(t, err)

	to := datagen.RandomPublicKey()
	// the subscription is registered asynchronously
	err = test.Retry(func() error {
		if _, err := backend.Airdrop(ctx, to, ledger.LamportsPerSOL); err != nil {
			return err
		}
		select {
		case r := <-ch:
			require.NotEmpty(t, r.Logs)
			assert.Contains(t, r.Logs[0], "Airdrop")
			return nil
		case <-time.After(50 * time.Millisecond):
			return errors.New("no receipt")
		}
	}, 10*time.Millisecond, 5*time.Second)
	require.NoError(t, err)

	cancel()
	for range ch {
	}
}
