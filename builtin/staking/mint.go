// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/vechain/nftstake/builtin/associated"
	"github.com/vechain/nftstake/builtin/metadata"
	"github.com/vechain/nftstake/builtin/system"
	"github.com/vechain/nftstake/builtin/token"
	"github.com/vechain/nftstake/xenv"
)

// Reward mint display data.
const (
	RewardName     = "Reward Token"
	RewardSymbol   = "RWT"
	RewardDecimals = 0
)

// initializeMint accounts: tokenMint(ws), mintAuthority, metadataAccount(w), payer(ws), rent,
// metadataProgram, tokenProgram, systemProgram
func initializeMint(env *xenv.Environment) error {
	a, err := resolve(env, 8)
	if err != nil {
		return err
	}
	tokenMint, err := a.signer(0)
	if err != nil {
		return err
	}
	payer, err := a.signer(3)
	if err != nil {
		return err
	}
	env.Log("Token mint initialized: %v", tokenMint)

	mintAuthority := a.keys[1]
	bump, err := a.derived(1, mintAuthoritySeeds(), ProgramID)
	if err != nil {
		return err
	}
	if err := a.programs(5, metadata.ProgramID, token.ProgramID, system.ProgramID); err != nil {
		return err
	}
	if err := a.metadata(2, tokenMint); err != nil {
		return err
	}

	// fails with AccountAlreadyInUse on a second call
	if err := env.Invoke(system.CreateAccount(payer, tokenMint, env.Rent().MinimumBalance(token.MintSize), token.MintSize, token.ProgramID)); err != nil {
		return err
	}
	if err := env.Invoke(token.InitializeMint2(tokenMint, RewardDecimals, mintAuthority, nil)); err != nil {
		return err
	}
	args := &metadata.CreateMetadataArgs{
		Data:      metadata.Data{Name: RewardName, Symbol: RewardSymbol},
		IsMutable: true,
	}
	return env.Invoke(
		metadata.CreateMetadataAccountV3(tokenMint, mintAuthority, payer, mintAuthority, args),
		withBump(mintAuthoritySeeds(), bump),
	)
}

// createNft accounts: user(ws), nftMint(ws), userTokenAccount(w), metadataAccount(w), masterEdition(w),
// tokenProgram, associatedTokenProgram, metadataProgram, systemProgram, rent
func createNft(env *xenv.Environment, args *CreateNftArgs) error {
	a, err := resolve(env, 10)
	if err != nil {
		return err
	}
	user, err := a.signer(0)
	if err != nil {
		return err
	}
	nftMint, err := a.signer(1)
	if err != nil {
		return err
	}
	if err := a.programs(5, token.ProgramID, associated.ProgramID, metadata.ProgramID, system.ProgramID); err != nil {
		return err
	}
	userTokenAccount, _, err := associated.Address(user, nftMint)
	if err != nil {
		return err
	}
	if err := a.expect(2, userTokenAccount); err != nil {
		return err
	}
	if err := a.metadata(3, nftMint); err != nil {
		return err
	}
	edition, _, err := metadata.EditionAddress(nftMint)
	if err != nil {
		return err
	}
	if err := a.expect(4, edition); err != nil {
		return err
	}

	if err := env.Invoke(system.CreateAccount(user, nftMint, env.Rent().MinimumBalance(token.MintSize), token.MintSize, token.ProgramID)); err != nil {
		return err
	}
	if err := env.Invoke(token.InitializeMint2(nftMint, 0, user, &user)); err != nil {
		return err
	}
	if err := env.Invoke(associated.Create(user, user, nftMint)); err != nil {
		return err
	}

	md := &metadata.CreateMetadataArgs{
		Data: metadata.Data{
			Name:     args.Name,
			Symbol:   args.Symbol,
			URI:      args.URI,
			Creators: []metadata.Creator{{Address: user, Verified: true, Share: 100}},
		},
	}
	if err := env.Invoke(metadata.CreateMetadataAccountV3(nftMint, user, user, user, md)); err != nil {
		return err
	}
	if err := env.Invoke(token.MintTo(nftMint, userTokenAccount, user, 1)); err != nil {
		return err
	}
	// no prints
	var maxSupply uint64
	if err := env.Invoke(metadata.CreateMasterEditionV3(nftMint, user, user, user, &maxSupply)); err != nil {
		return err
	}
	env.Log("NFT minted: %v", nftMint)
	return nil
}
