// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/nftstake/api/restutil"
	"github.com/vechain/nftstake/api/types"
	"github.com/vechain/nftstake/builtin/token"
	"github.com/vechain/nftstake/solo"
)

type Accounts struct {
	node *solo.Node
}

func New(node *solo.Node) *Accounts {
	return &Accounts{node}
}

func (a *Accounts) handleGetAccount(w http.ResponseWriter, req *http.Request) error {
	key, err := restutil.ParsePublicKey("address", mux.Vars(req)["address"])
	if err != nil {
		return err
	}
	acc, err := a.node.GetAccount(key)
	if err != nil {
		return err
	}
	return restutil.WriteJSON(w, types.ConvertAccount(acc))
}

func (a *Accounts) handleGetTokenAccount(w http.ResponseWriter, req *http.Request) error {
	key, err := restutil.ParsePublicKey("address", mux.Vars(req)["address"])
	if err != nil {
		return err
	}
	acc, err := a.node.GetAccount(key)
	if err != nil {
		return err
	}
	if acc.Owner != token.ProgramID || len(acc.Data) != token.AccountSize {
		return restutil.NotFound(errors.New("not a token account"))
	}
	ta, err := token.DecodeAccount(acc.Data)
	if err != nil {
		return err
	}
	return restutil.WriteJSON(w, types.ConvertTokenAccount(ta))
}

func (a *Accounts) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{address}").
		Methods(http.MethodGet).
		Name("GET /accounts/{address}").
		HandlerFunc(restutil.WrapHandlerFunc(a.handleGetAccount))
	sub.Path("/{address}/token").
		Methods(http.MethodGet).
		Name("GET /accounts/{address}/token").
		HandlerFunc(restutil.WrapHandlerFunc(a.handleGetTokenAccount))
}
