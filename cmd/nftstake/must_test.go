// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/nftstake/builtin/metadata"
	"github.com/vechain/nftstake/builtin/token"
	"github.com/vechain/nftstake/client"
	"github.com/vechain/nftstake/state"
	"github.com/vechain/nftstake/test/datagen"
	"github.com/vechain/nftstake/test/testnode"
)

func TestKeypairFile(t *testing.T) {
	key := datagen.RandomKey()
	path := filepath.Join(t.TempDir(), "id.json")

	var buf bytes.Buffer
	require.NoError(t, writeKeypair(&buf, key))
	assert.Equal(t, byte('['), buf.Bytes()[0])
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))

	loaded, err := loadKeypair(path)
	require.NoError(t, err)
	assert.Equal(t, key, loaded)
	assert.Equal(t, key.PublicKey(), loaded.PublicKey())

	fresh, err := loadKeypair("")
	require.NoError(t, err)
	assert.Len(t, fresh, 64)

	_, err = loadKeypair(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestKeygenAction(t *testing.T) {
	out := filepath.Join(t.TempDir(), "id.json")
	require.NoError(t, newApp().Run([]string{"nftstake", "keygen", "--out", out}))

	key, err := loadKeypair(out)
	require.NoError(t, err)
	assert.Len(t, key, 64)

	// never overwrites
	assert.Error(t, newApp().Run([]string{"nftstake", "keygen", "--out", out}))
}

func TestParseKeys(t *testing.T) {
	a, b := datagen.RandomPublicKey(), datagen.RandomPublicKey()

	keys, err := parseKeys([]string{a.String(), b.String()}, "a", "b")
	require.NoError(t, err)
	assert.Equal(t, []solana.PublicKey{a, b}, keys)

	_, err = parseKeys([]string{a.String()}, "a", "b")
	assert.Error(t, err)
	_, err = parseKeys([]string{"not a key"}, "a")
	assert.Error(t, err)
}

func TestPrintEntries(t *testing.T) {
	owner, rewardMint, nftMint := datagen.RandomPublicKey(), datagen.RandomPublicKey(), datagen.RandomPublicKey()
	book, err := client.NewAddressBook(owner, rewardMint, nftMint)
	require.NoError(t, err)

	var buf bytes.Buffer
	printEntries(&buf, book)
	for _, e := range book.Entries() {
		assert.Contains(t, buf.String(), e.Key.String())
	}
	assert.Error(t, newApp().Run([]string{"nftstake", "derive", owner.String()}))
}

func TestDecodeAccountData(t *testing.T) {
	n, err := testnode.NewDefaultNode()
	require.NoError(t, err)
	defer n.Solo().Close()

	payer := datagen.RandomKey()
	opts := client.DefaultScenarioOptions()
	opts.RewardMint = datagen.RandomKey()
	opts.NftMint = datagen.RandomKey()
	opts.Wait = func(context.Context) error {
		n.Advance(3 * time.Second)
		return nil
	}
	report, err := client.New(client.NewLocal(n.Solo()), payer).RunScenario(context.Background(), opts)
	require.NoError(t, err)
	book := report.Book

	decode := func(key solana.PublicKey) any {
		acc, err := n.Solo().GetAccount(key)
		require.NoError(t, err)
		v, err := decodeAccountData(acc)
		require.NoError(t, err)
		return v
	}

	mint, ok := decode(book.RewardMint).(*token.Mint)
	require.True(t, ok)
	assert.Equal(t, uint64(3), mint.Supply)

	nft, ok := decode(book.NftAccount).(*token.Account)
	require.True(t, ok)
	assert.Equal(t, uint64(1), nft.Amount)
	assert.False(t, nft.IsFrozen())

	md, ok := decode(book.NftMetadata).(*metadata.Metadata)
	require.True(t, ok)
	assert.Equal(t, book.NftMint, md.Mint)

	_, ok = decode(book.NftEdition).(*metadata.MasterEdition)
	assert.True(t, ok)

	assert.Nil(t, decode(book.Record))
	assert.Nil(t, decode(book.Owner))

	acc, err := n.Solo().GetAccount(book.NftAccount)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, dumpAccount(&buf, book.NftAccount, acc))
	assert.Contains(t, buf.String(), book.NftAccount.String())
	assert.Contains(t, buf.String(), "Amount: (uint64) 1")

	_, err = decodeAccountData(&state.Account{Owner: metadata.ProgramID, Data: []byte{byte(metadata.KeyMetadataV1), 1}})
	assert.Error(t, err)
}

func TestScenarioAction(t *testing.T) {
	for _, order := range []string{"reward-while-staked", "reward-after-undelegate"} {
		t.Run(order, func(t *testing.T) {
			err := newApp().Run([]string{
				"nftstake", "scenario",
				"--order", order,
				"--wait", "5s",
				"--probes",
				"--verbosity", "0",
			})
			assert.NoError(t, err)
		})
	}

	assert.Error(t, newApp().Run([]string{"nftstake", "scenario", "--order", "backwards", "--verbosity", "0"}))
}
