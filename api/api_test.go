// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/nftstake/api"
	"github.com/vechain/nftstake/api/types"
	"github.com/vechain/nftstake/builtin/associated"
	"github.com/vechain/nftstake/builtin/staking"
	"github.com/vechain/nftstake/builtin/system"
	"github.com/vechain/nftstake/ledger"
	"github.com/vechain/nftstake/metrics"
	"github.com/vechain/nftstake/test/datagen"
	"github.com/vechain/nftstake/test/testnode"
	"github.com/vechain/nftstake/tx"
)

func init() {
	metrics.InitializePrometheusMetrics()
}

func newNode(t *testing.T, opts api.Options) testnode.Node {
	n, err := testnode.NewNodeBuilder().WithAPIOptions(opts).Build()
	require.NoError(t, err)
	require.NoError(t, n.Start())
	t.Cleanup(func() { n.Stop() })
	return n
}

func httpGet(t *testing.T, url string) ([]byte, int) {
	res, err := http.Get(url) //#nosec G107
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return body, res.StatusCode
}

func httpPost(t *testing.T, url string, obj any) ([]byte, int) {
	data, err := json.Marshal(obj)
	require.NoError(t, err)
	res, err := http.Post(url, "application/x-www-form-urlencoded", bytes.NewReader(data)) //#nosec G107
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return body, res.StatusCode
}

func airdrop(t *testing.T, n testnode.Node, to solana.PublicKey) *types.Receipt {
	body, code := httpPost(t, n.APIServer().URL+"/node/airdrop", &types.AirdropRequest{
		Address:  to.String(),
		Lamports: ledger.LamportsPerSOL,
	})
	require.Equal(t, http.StatusOK, code, string(body))
	var r types.Receipt
	require.NoError(t, json.Unmarshal(body, &r))
	return &r
}

func transfer(t *testing.T, from solana.PrivateKey, blockhash ledger.Bytes32, to solana.PublicKey) *types.RawTx {
	trx, err := tx.NewBuilder(from.PublicKey()).
		RecentBlockhash(blockhash).
		Instruction(system.Transfer(from.PublicKey(), to, ledger.LamportsPerSOL/10)).
		Nonce(datagen.RandUint64()).
		Build().
		Sign(from)
	require.NoError(t, err)
	raw, err := types.EncodeRawTx(trx)
	require.NoError(t, err)
	return raw
}

func TestBlockhash(t *testing.T) {
	n := newNode(t, api.Options{AllowedOrigins: "*"})

	body, code := httpGet(t, n.APIServer().URL+"/node/blockhash")
	require.Equal(t, http.StatusOK, code)
	var bh types.Blockhash
	require.NoError(t, json.Unmarshal(body, &bh))
	assert.Equal(t, n.Solo().LatestBlockhash(), bh.Blockhash)
	assert.Equal(t, uint64(0), bh.Slot)
	assert.Equal(t, testnode.GenesisTime.Unix(), bh.UnixTimestamp)
}

func TestAirdrop(t *testing.T) {
	n := newNode(t, api.Options{AllowedOrigins: "*"})
	url := n.APIServer().URL
	to := datagen.RandomPublicKey()

	r := airdrop(t, n, to)
	assert.False(t, r.Reverted)
	assert.Equal(t, uint64(1), r.Slot)

	body, code := httpGet(t, url+"/accounts/"+to.String())
	require.Equal(t, http.StatusOK, code)
	var acc types.Account
	require.NoError(t, json.Unmarshal(body, &acc))
	assert.Equal(t, ledger.LamportsPerSOL, acc.Lamports)
	assert.Equal(t, solana.SystemProgramID.String(), acc.Owner)

	tests := []struct {
		name string
		req  *types.AirdropRequest
		code int
	}{
		{"bad address", &types.AirdropRequest{Address: "0x", Lamports: 1}, http.StatusBadRequest},
		{"zero", &types.AirdropRequest{Address: to.String()}, http.StatusBadRequest},
		{"too much", &types.AirdropRequest{Address: to.String(), Lamports: 101 * ledger.LamportsPerSOL}, http.StatusBadRequest},
		{"program", &types.AirdropRequest{Address: staking.ProgramID.String(), Lamports: 1}, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, code := httpPost(t, url+"/node/airdrop", tt.req)
			assert.Equal(t, tt.code, code)
		})
	}
}

func TestAccounts(t *testing.T) {
	n := newNode(t, api.Options{AllowedOrigins: "*"})
	url := n.APIServer().URL

	_, code := httpGet(t, url+"/accounts/invalid")
	assert.Equal(t, http.StatusBadRequest, code)

	body, code := httpGet(t, url+"/accounts/"+staking.ProgramID.String())
	require.Equal(t, http.StatusOK, code)
	var acc types.Account
	require.NoError(t, json.Unmarshal(body, &acc))
	assert.True(t, acc.Executable)

	// missing accounts are empty, not absent
	body, code = httpGet(t, url+"/accounts/"+datagen.RandomPublicKey().String())
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(body, &acc))
	assert.Equal(t, uint64(0), acc.Lamports)

	_, code = httpGet(t, url+"/accounts/"+datagen.RandomPublicKey().String()+"/token")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestTransactions(t *testing.T) {
	n := newNode(t, api.Options{AllowedOrigins: "*"})
	url := n.APIServer().URL

	key := datagen.RandomKey()
	airdrop(t, n, key.PublicKey())

	to := datagen.RandomPublicKey()
	raw := transfer(t, key, n.Solo().LatestBlockhash(), to)
	body, code := httpPost(t, url+"/transactions", raw)
	require.Equal(t, http.StatusOK, code, string(body))
	var r types.Receipt
	require.NoError(t, json.Unmarshal(body, &r))
	assert.False(t, r.Reverted)
	assert.Equal(t, ledger.LamportsPerSignature, r.Fee)

	body, code = httpGet(t, url+"/transactions/"+r.Signature)
	require.Equal(t, http.StatusOK, code)
	var got types.Receipt
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, r, got)

	// duplicate
	_, code = httpPost(t, url+"/transactions", raw)
	assert.Equal(t, http.StatusForbidden, code)

	// unknown blockhash
	_, code = httpPost(t, url+"/transactions", transfer(t, key, datagen.RandomHash(), to))
	assert.Equal(t, http.StatusForbidden, code)

	_, code = httpPost(t, url+"/transactions", &types.RawTx{Raw: "!"})
	assert.Equal(t, http.StatusBadRequest, code)

	_, code = httpGet(t, url+"/transactions/"+datagen.RandomSignature().String())
	assert.Equal(t, http.StatusNotFound, code)
	_, code = httpGet(t, url+"/transactions/0x")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestTxRateLimit(t *testing.T) {
	n := newNode(t, api.Options{AllowedOrigins: "*", TxRateLimit: 1})
	url := n.APIServer().URL

	_, code := httpPost(t, url+"/transactions", &types.RawTx{Raw: "!"})
	assert.Equal(t, http.StatusBadRequest, code)
	_, code = httpPost(t, url+"/transactions", &types.RawTx{Raw: "!"})
	assert.Equal(t, http.StatusTooManyRequests, code)
}

func TestStakes(t *testing.T) {
	n := newNode(t, api.Options{AllowedOrigins: "*"})
	url := n.APIServer().URL
	owner, mint := datagen.RandomPublicKey(), datagen.RandomPublicKey()

	body, code := httpGet(t, url+"/stakes/"+owner.String()+"/"+mint.String())
	require.Equal(t, http.StatusOK, code)
	var s types.Stake
	require.NoError(t, json.Unmarshal(body, &s))
	assert.Equal(t, staking.StatusUnstaked.String(), s.Status)
	assert.Nil(t, s.StakedAt)

	record, _, err := staking.RecordAddress(owner, mint)
	require.NoError(t, err)
	assert.Equal(t, record.String(), s.Record)

	_, code = httpGet(t, url+"/stakes/"+owner.String()+"/bad")
	assert.Equal(t, http.StatusBadRequest, code)

	// the ata is derivable for any pair
	_, _, err = associated.Address(owner, mint)
	assert.NoError(t, err)
}

func TestMetrics(t *testing.T) {
	n := newNode(t, api.Options{AllowedOrigins: "*", EnableMetrics: true})
	url := n.APIServer().URL

	httpGet(t, url+"/node/blockhash")
	httpGet(t, url+"/accounts/invalid")
	// unnamed routes are not recorded
	httpGet(t, url+"/unknown")

	body, code := httpGet(t, url+"/metrics")
	require.Equal(t, http.StatusOK, code)
	text := string(body)
	assert.Contains(t, text, `nftstake_api_request_count{code="200",method="GET",name="GET /blockhash"} 1`)
	assert.Contains(t, text, `nftstake_api_request_count{code="400",method="GET",name="GET /accounts/{address}"} 1`)
	assert.NotContains(t, text, "unknown")
}

func TestRequestLogger(t *testing.T) {
	n := newNode(t, api.Options{AllowedOrigins: "*", EnableReqLogger: true})

	res, err := http.Get(n.APIServer().URL + "/node/blockhash")
	require.NoError(t, err)
	res.Body.Close()
	assert.NotEmpty(t, res.Header.Get("X-Request-Id"))

	req, err := http.NewRequest(http.MethodGet, n.APIServer().URL+"/node/blockhash", nil)
	require.NoError(t, err)
	req.Header.Set("X-Request-Id", "abc")
	res, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, "abc", res.Header.Get("X-Request-Id"))
}

func TestSubscribeReceipts(t *testing.T) {
	n := newNode(t, api.Options{AllowedOrigins: "*"})
	wsURL := "ws" + strings.TrimPrefix(n.APIServer().URL, "http") + "/subscriptions/receipts"

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	// the subscription is set up after the upgrade, keep producing receipts until one arrives
	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(20 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				n.Solo().Airdrop(datagen.RandomPublicKey(), 1_000_000)
			}
		}
	}()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var r types.Receipt
	require.NoError(t, conn.ReadJSON(&r))
	assert.False(t, r.Reverted)
	require.NotEmpty(t, r.Logs)
	assert.True(t, strings.HasPrefix(r.Logs[0], "Airdrop"))
}

func TestSubscribeOrigin(t *testing.T) {
	n := newNode(t, api.Options{AllowedOrigins: "https://example.org"})
	wsURL := "ws" + strings.TrimPrefix(n.APIServer().URL, "http") + "/subscriptions/receipts"

	_, res, err := websocket.DefaultDialer.Dial(wsURL, http.Header{"Origin": []string{"https://evil.org"}})
	assert.Error(t, err)
	require.NotNil(t, res)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}
