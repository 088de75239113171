// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/nftstake/builtin/metadata"
	"github.com/vechain/nftstake/builtin/staking"
	"github.com/vechain/nftstake/builtin/token"
	"github.com/vechain/nftstake/client"
	"github.com/vechain/nftstake/client/httpclient"
	"github.com/vechain/nftstake/solo"
	"github.com/vechain/nftstake/state"
)

var dumper = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

func parseKeys(args cli.Args, names ...string) ([]solana.PublicKey, error) {
	if len(args) != len(names) {
		return nil, errors.Errorf("expected %d arguments, got %d", len(names), len(args))
	}
	keys := make([]solana.PublicKey, len(names))
	for i, name := range names {
		key, err := solana.PublicKeyFromBase58(args[i])
		if err != nil {
			return nil, errors.Wrapf(err, "invalid %s", name)
		}
		keys[i] = key
	}
	return keys, nil
}

func deriveAction(ctx *cli.Context) error {
	keys, err := parseKeys(ctx.Args(), "owner", "reward mint", "nft mint")
	if err != nil {
		return err
	}
	book, err := client.NewAddressBook(keys[0], keys[1], keys[2])
	if err != nil {
		return err
	}
	printEntries(os.Stdout, book)
	return nil
}

func printEntries(w io.Writer, book *client.AddressBook) {
	for _, e := range book.Entries() {
		fmt.Fprintf(w, "%-18s %v\n", e.Name, e.Key)
	}
}

// decodeAccountData decodes the data of the accounts owned by the builtin
// programs. Unknown layouts yield nil.
func decodeAccountData(acc *state.Account) (any, error) {
	switch acc.Owner {
	case token.ProgramID:
		switch len(acc.Data) {
		case token.AccountSize:
			return token.DecodeAccount(acc.Data)
		case token.MintSize:
			return token.DecodeMint(acc.Data)
		}
	case metadata.ProgramID:
		if len(acc.Data) == 0 {
			return nil, nil
		}
		switch metadata.Key(acc.Data[0]) {
		case metadata.KeyMetadataV1:
			return metadata.DecodeMetadata(acc.Data)
		case metadata.KeyMasterEditionV2:
			return metadata.DecodeMasterEdition(acc.Data)
		}
	case staking.ProgramID:
		if len(acc.Data) == staking.RecordSize {
			return staking.DecodeRecord(acc.Data)
		}
	}
	return nil, nil
}

func inspectAction(ctx *cli.Context) error {
	keys, err := parseKeys(ctx.Args(), "address")
	if err != nil {
		return err
	}

	var backend client.Backend
	if url := ctx.String(apiURLFlag.Name); url != "" {
		backend = httpclient.New(url)
	} else {
		db := openMainDB(makeDataDir(ctx))
		defer db.Close()
		node, err := solo.New(db, solo.DefaultOptions())
		if err != nil {
			return err
		}
		defer node.Close()
		backend = client.NewLocal(node)
	}

	acc, err := backend.GetAccount(context.Background(), keys[0])
	if err != nil {
		return err
	}
	return dumpAccount(os.Stdout, keys[0], acc)
}

func dumpAccount(w io.Writer, key solana.PublicKey, acc *state.Account) error {
	fmt.Fprintf(w, "address    %v\nlamports   %v\nowner      %v\nexecutable %v\ndata       %d bytes\n",
		key, acc.Lamports, acc.Owner, acc.Executable, len(acc.Data))
	decoded, err := decodeAccountData(acc)
	if err != nil {
		return errors.WithMessage(err, "decode account data")
	}
	if decoded != nil {
		dumper.Fdump(w, decoded)
	}
	return nil
}

func keygenAction(ctx *cli.Context) error {
	key, err := solana.NewRandomPrivateKey()
	if err != nil {
		return err
	}
	var w io.Writer = os.Stdout
	if out := ctx.String(outFlag.Name); out != "" {
		f, err := os.OpenFile(out, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	if err := writeKeypair(w, key); err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, "public key:", key.PublicKey())
	return nil
}
