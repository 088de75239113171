// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package node

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/nftstake/api/restutil"
	"github.com/vechain/nftstake/api/types"
	"github.com/vechain/nftstake/ledger"
	"github.com/vechain/nftstake/solo"
)

// MaxAirdrop caps the lamports of a single airdrop.
const MaxAirdrop = 100 * ledger.LamportsPerSOL

type Node struct {
	node *solo.Node
}

func New(node *solo.Node) *Node {
	return &Node{node}
}

func (n *Node) handleGetBlockhash(w http.ResponseWriter, _ *http.Request) error {
	clock := n.node.Clock()
	return restutil.WriteJSON(w, &types.Blockhash{
		Blockhash:     n.node.LatestBlockhash(),
		Slot:          clock.Slot,
		UnixTimestamp: clock.UnixTimestamp,
	})
}

func (n *Node) handleAirdrop(w http.ResponseWriter, req *http.Request) error {
	var body types.AirdropRequest
	if err := restutil.ParseJSON(req.Body, &body); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	to, err := restutil.ParsePublicKey("address", body.Address)
	if err != nil {
		return err
	}
	if body.Lamports == 0 || body.Lamports > MaxAirdrop {
		return restutil.BadRequest(errors.Errorf("lamports: must be within (0, %d]", MaxAirdrop))
	}
	receipt, err := n.node.Airdrop(to, body.Lamports)
	if err != nil {
		if errors.Is(err, solo.ErrNotSystemAccount) {
			return restutil.Forbidden(err)
		}
		return err
	}
	return restutil.WriteJSON(w, types.ConvertReceipt(receipt))
}

func (n *Node) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/blockhash").
		Methods(http.MethodGet).
		Name("GET /blockhash").
		HandlerFunc(restutil.WrapHandlerFunc(n.handleGetBlockhash))
	sub.Path("/airdrop").
		Methods(http.MethodPost).
		Name("POST /airdrop").
		HandlerFunc(restutil.WrapHandlerFunc(n.handleAirdrop))
}
