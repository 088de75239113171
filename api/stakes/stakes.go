// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stakes

import (
	"net/http"

	"github.com/gagliardetto/solana-go"
	"github.com/gorilla/mux"

	"github.com/vechain/nftstake/api/restutil"
	"github.com/vechain/nftstake/api/types"
	"github.com/vechain/nftstake/builtin/associated"
	"github.com/vechain/nftstake/builtin/staking"
	"github.com/vechain/nftstake/builtin/token"
	"github.com/vechain/nftstake/solo"
)

type Stakes struct {
	node *solo.Node
}

func New(node *solo.Node) *Stakes {
	return &Stakes{node}
}

func (s *Stakes) record(key solana.PublicKey) (*staking.Record, error) {
	acc, err := s.node.GetAccount(key)
	if err != nil {
		return nil, err
	}
	if acc.Owner != staking.ProgramID || len(acc.Data) == 0 {
		return nil, nil
	}
	return staking.DecodeRecord(acc.Data)
}

func (s *Stakes) tokenAccount(key solana.PublicKey) (*token.Account, error) {
	acc, err := s.node.GetAccount(key)
	if err != nil {
		return nil, err
	}
	if acc.Owner != token.ProgramID || len(acc.Data) != token.AccountSize {
		return nil, nil
	}
	return token.DecodeAccount(acc.Data)
}

func (s *Stakes) handleGetStake(w http.ResponseWriter, req *http.Request) error {
	owner, err := restutil.ParsePublicKey("owner", mux.Vars(req)["owner"])
	if err != nil {
		return err
	}
	mint, err := restutil.ParsePublicKey("mint", mux.Vars(req)["mint"])
	if err != nil {
		return err
	}

	recordKey, _, err := staking.RecordAddress(owner, mint)
	if err != nil {
		return err
	}
	rec, err := s.record(recordKey)
	if err != nil {
		return err
	}
	ata, _, err := associated.Address(owner, mint)
	if err != nil {
		return err
	}
	ta, err := s.tokenAccount(ata)
	if err != nil {
		return err
	}
	now := s.node.Clock().UnixTimestamp
	return restutil.WriteJSON(w, types.ConvertStake(owner, mint, recordKey, rec, ta, s.node.RewardRate(), now))
}

func (s *Stakes) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{owner}/{mint}").
		Methods(http.MethodGet).
		Name("GET /stakes/{owner}/{mint}").
		HandlerFunc(restutil.WrapHandlerFunc(s.handleGetStake))
}
