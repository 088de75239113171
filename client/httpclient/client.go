// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package httpclient provides an HTTP client to interact with a staking node.
// It implements the client backend over the REST API and streams receipts
// from the websocket API.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/gorilla/websocket"

	"github.com/vechain/nftstake/api/types"
	"github.com/vechain/nftstake/client"
	"github.com/vechain/nftstake/ledger"
	"github.com/vechain/nftstake/state"
	"github.com/vechain/nftstake/tx"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrNot200Status = errors.New("not 200 status code")
)

// Client represents the HTTP client of a staking node.
type Client struct {
	url string
	c   *http.Client
}

var _ client.Backend = (*Client)(nil)

// New creates a new Client with the provided URL.
func New(url string) *Client {
	return NewWithHTTP(url, http.DefaultClient)
}

func NewWithHTTP(url string, c *http.Client) *Client {
	return &Client{
		url: strings.TrimSuffix(url, "/"),
		c:   c,
	}
}

// Blockhash retrieves the latest blockhash and the clock of its slot.
func (c *Client) Blockhash(ctx context.Context) (*types.Blockhash, error) {
	body, err := c.httpGET(ctx, c.url+"/node/blockhash")
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve blockhash - %w", err)
	}

	var bh types.Blockhash
	if err = json.Unmarshal(body, &bh); err != nil {
		return nil, fmt.Errorf("unable to unmarshal blockhash - %w", err)
	}
	return &bh, nil
}

func (c *Client) LatestBlockhash(ctx context.Context) (ledger.Bytes32, error) {
	bh, err := c.Blockhash(ctx)
	if err != nil {
		return ledger.Bytes32{}, err
	}
	return bh.Blockhash, nil
}

// SendTransaction sends a signed transaction and returns its receipt.
func (c *Client) SendTransaction(ctx context.Context, trx *tx.Transaction) (*tx.Receipt, error) {
	raw, err := types.EncodeRawTx(trx)
	if err != nil {
		return nil, fmt.Errorf("unable to encode transaction - %w", err)
	}
	body, err := c.httpPOST(ctx, c.url+"/transactions", raw)
	if err != nil {
		return nil, fmt.Errorf("unable to send transaction - %w", err)
	}
	return decodeReceipt(body)
}

// GetReceipt retrieves the receipt of a transaction, ErrNotFound when unknown.
func (c *Client) GetReceipt(ctx context.Context, sig solana.Signature) (*tx.Receipt, error) {
	body, err := c.httpGET(ctx, c.url+"/transactions/"+sig.String())
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve receipt - %w", err)
	}
	return decodeReceipt(body)
}

func (c *Client) GetAccount(ctx context.Context, key solana.PublicKey) (*state.Account, error) {
	body, err := c.httpGET(ctx, c.url+"/accounts/"+key.String())
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve account - %w", err)
	}

	var acc types.Account
	if err = json.Unmarshal(body, &acc); err != nil {
		return nil, fmt.Errorf("unable to unmarshal account - %w", err)
	}
	return acc.ToState()
}

// GetTokenAccount retrieves the decoded token account at key, ErrNotFound when there is none.
func (c *Client) GetTokenAccount(ctx context.Context, key solana.PublicKey) (*types.TokenAccount, error) {
	body, err := c.httpGET(ctx, c.url+"/accounts/"+key.String()+"/token")
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve token account - %w", err)
	}

	var ta types.TokenAccount
	if err = json.Unmarshal(body, &ta); err != nil {
		return nil, fmt.Errorf("unable to unmarshal token account - %w", err)
	}
	return &ta, nil
}

// GetStake retrieves the custody state of the NFT mint held by owner.
func (c *Client) GetStake(ctx context.Context, owner, mint solana.PublicKey) (*types.Stake, error) {
	body, err := c.httpGET(ctx, c.url+"/stakes/"+owner.String()+"/"+mint.String())
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve stake - %w", err)
	}

	var s types.Stake
	if err = json.Unmarshal(body, &s); err != nil {
		return nil, fmt.Errorf("unable to unmarshal stake - %w", err)
	}
	return &s, nil
}

func (c *Client) Airdrop(ctx context.Context, to solana.PublicKey, lamports uint64) (*tx.Receipt, error) {
	body, err := c.httpPOST(ctx, c.url+"/node/airdrop", &types.AirdropRequest{
		Address:  to.String(),
		Lamports: lamports,
	})
	if err != nil {
		return nil, fmt.Errorf("unable to airdrop - %w", err)
	}
	return decodeReceipt(body)
}

// SubscribeReceipts streams the receipts committed by the node until ctx is done
// or the connection fails. The channel is closed then.
func (c *Client) SubscribeReceipts(ctx context.Context) (<-chan *tx.Receipt, error) {
	u, err := url.Parse(c.url)
	if err != nil {
		return nil, fmt.Errorf("invalid url - %w", err)
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path += "/subscriptions/receipts"

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("unable to connect - %w", err)
	}

	ch := make(chan *tx.Receipt)
	go func() {
		<-ctx.Done()
		conn.Close()
	}()
	go func() {
		defer close(ch)
		defer conn.Close()
		for {
			var r types.Receipt
			if err := conn.ReadJSON(&r); err != nil {
				return
			}
			receipt, err := r.ToReceipt()
			if err != nil {
				return
			}
			select {
			case ch <- receipt:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch, nil
}

func decodeReceipt(body []byte) (*tx.Receipt, error) {
	var r types.Receipt
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, fmt.Errorf("unable to unmarshal receipt - %w", err)
	}
	return r.ToReceipt()
}

func (c *Client) httpRequest(ctx context.Context, method, url string, payload io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, payload)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	if method == http.MethodPost {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.c.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error performing request: %w", err)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return responseBody, nil
	case http.StatusNotFound:
		return nil, fmt.Errorf("%s - %w", strings.TrimSpace(string(responseBody)), ErrNotFound)
	default:
		return nil, fmt.Errorf("http error - Status Code %d - %s - %w", resp.StatusCode, strings.TrimSpace(string(responseBody)), ErrNot200Status)
	}
}

func (c *Client) httpGET(ctx context.Context, url string) ([]byte, error) {
	return c.httpRequest(ctx, http.MethodGet, url, nil)
}

func (c *Client) httpPOST(ctx context.Context, url string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("unable to marshal payload - %w", err)
	}
	return c.httpRequest(ctx, http.MethodPost, url, bytes.NewReader(data))
}
