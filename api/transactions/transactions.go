// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package transactions

import (
	"net/http"

	"github.com/gagliardetto/solana-go"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"

	"github.com/vechain/nftstake/api/restutil"
	"github.com/vechain/nftstake/api/types"
	"github.com/vechain/nftstake/solo"
	"github.com/vechain/nftstake/state"
)

var errTooManyRequests = errors.New("too many transactions, retry later")

type Transactions struct {
	node    *solo.Node
	limiter *rate.Limiter
}

// New creates the transactions API. A positive limit caps the submissions
// per second, with a burst of the same size.
func New(node *solo.Node, limit int) *Transactions {
	l := rate.NewLimiter(rate.Inf, 0)
	if limit > 0 {
		l = rate.NewLimiter(rate.Limit(limit), limit)
	}
	return &Transactions{node, l}
}

func (t *Transactions) handleSendTransaction(w http.ResponseWriter, req *http.Request) error {
	if !t.limiter.Allow() {
		return restutil.HTTPError(errTooManyRequests, http.StatusTooManyRequests)
	}

	var raw types.RawTx
	if err := restutil.ParseJSON(req.Body, &raw); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	trx, err := raw.Decode()
	if err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "raw"))
	}
	if err := trx.Validate(); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "bad tx"))
	}

	receipt, err := t.node.SendTransaction(trx)
	if err != nil {
		var se *state.Error
		if errors.As(err, &se) {
			return err
		}
		return restutil.Forbidden(errors.WithMessage(err, "rejected tx"))
	}
	return restutil.WriteJSON(w, types.ConvertReceipt(receipt))
}

func (t *Transactions) handleGetReceipt(w http.ResponseWriter, req *http.Request) error {
	sig, err := solana.SignatureFromBase58(mux.Vars(req)["signature"])
	if err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "signature"))
	}
	receipt, err := t.node.GetReceipt(sig)
	if err != nil {
		return err
	}
	if receipt == nil {
		return restutil.NotFound(errors.New("receipt not found"))
	}
	return restutil.WriteJSON(w, types.ConvertReceipt(receipt))
}

func (t *Transactions) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodPost).
		Name("POST /transactions").
		HandlerFunc(restutil.WrapHandlerFunc(t.handleSendTransaction))
	sub.Path("/{signature}").
		Methods(http.MethodGet).
		Name("GET /transactions/{signature}").
		HandlerFunc(restutil.WrapHandlerFunc(t.handleGetReceipt))
}
