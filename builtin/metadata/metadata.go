// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package metadata implements the token metadata program: display data of a
// mint, master editions, and freezing of delegated token accounts through the
// edition acting as freeze authority.
package metadata

import (
	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"

	"github.com/vechain/nftstake/builtin/layout"
	"github.com/vechain/nftstake/builtin/system"
	"github.com/vechain/nftstake/builtin/token"
	"github.com/vechain/nftstake/xenv"
)

// ProgramID is the id of the token metadata program.
var ProgramID = solana.TokenMetadataProgramID

// Program is the token metadata program.
type Program struct{}

func New() *Program { return &Program{} }

func (p *Program) ID() solana.PublicKey { return ProgramID }
func (p *Program) Name() string         { return "metadata" }

func (p *Program) Execute(env *xenv.Environment) error {
	data := env.Data()
	if len(data) == 0 {
		return xenv.ErrInvalidInstructionData
	}
	switch data[0] {
	case InstructionCreateMetadataAccountV3:
		env.Log("IX: Create Metadata Accounts v3")
		var args CreateMetadataArgs
		if err := layout.Decode(data[1:], &args); err != nil {
			return errors.Wrap(xenv.ErrInvalidInstructionData, err.Error())
		}
		return createMetadata(env, &args)
	case InstructionCreateMasterEditionV3:
		env.Log("IX: Create Master Edition v3")
		maxSupply, err := layout.ReadOptionU64(bin.NewBinDecoder(data[1:]))
		if err != nil {
			return errors.Wrap(xenv.ErrInvalidInstructionData, err.Error())
		}
		return createMasterEdition(env, maxSupply)
	case InstructionFreezeDelegatedAccount:
		env.Log("IX: Freeze Delegated Account")
		return toggleDelegatedFreeze(env, true)
	case InstructionThawDelegatedAccount:
		env.Log("IX: Thaw Delegated Account")
		return toggleDelegatedFreeze(env, false)
	default:
		return xenv.ErrInvalidInstructionData
	}
}

func keys(env *xenv.Environment, n int) ([]solana.PublicKey, error) {
	out := make([]solana.PublicKey, n)
	for i := range out {
		k, err := env.Key(i)
		if err != nil {
			return nil, err
		}
		out[i] = k
	}
	return out, nil
}

func validateData(env *xenv.Environment, d *Data) error {
	if len(d.Name) > MaxNameLength {
		return ErrNameTooLong
	}
	if len(d.Symbol) > MaxSymbolLength {
		return ErrSymbolTooLong
	}
	if len(d.URI) > MaxURILength {
		return ErrURITooLong
	}
	if d.SellerFeeBasisPoints > 10000 {
		return ErrInvalidBasisPoints
	}
	if d.Creators == nil {
		return nil
	}
	if len(d.Creators) > MaxCreatorLimit {
		return ErrCreatorsTooLong
	}
	total := 0
	for _, c := range d.Creators {
		total += int(c.Share)
		if c.Verified && !env.IsSigner(c.Address) {
			return ErrCannotVerifyAnotherCreator
		}
	}
	if total != 100 {
		return ErrShareTotalMustBe100
	}
	return nil
}

// createAccount creates a program owned account at a metadata program address.
func createAccount(env *xenv.Environment, payer, key solana.PublicKey, size uint64, seeds [][]byte) error {
	acc, err := env.Load(key)
	if err != nil {
		return err
	}
	if acc.Owner == ProgramID && len(acc.Data) > 0 {
		return ErrAlreadyInitialized
	}
	ix := system.CreateAccount(payer, key, env.Rent().MinimumBalance(size), size, ProgramID)
	return env.Invoke(ix, seeds)
}

// createMetadata accounts: metadata(w), mint, mintAuthority(s), payer(ws), updateAuthority, systemProgram, [rent]
func createMetadata(env *xenv.Environment, args *CreateMetadataArgs) error {
	ks, err := keys(env, 6)
	if err != nil {
		return err
	}
	metadataKey, mintKey, mintAuthority, payer, updateAuthority := ks[0], ks[1], ks[2], ks[3], ks[4]

	expected, bump, err := solana.FindProgramAddress(metadataSeeds(mintKey), ProgramID)
	if err != nil {
		return err
	}
	if expected != metadataKey {
		return ErrInvalidMetadataKey
	}

	mintAcc, err := env.Load(mintKey)
	if err != nil {
		return err
	}
	if mintAcc.Owner != token.ProgramID {
		return xenv.ErrIncorrectProgramID
	}
	mint, err := token.DecodeMint(mintAcc.Data)
	if err != nil || !mint.IsInitialized {
		return token.ErrInvalidMint
	}
	if mint.MintAuthority == nil || *mint.MintAuthority != mintAuthority || !env.IsSigner(mintAuthority) {
		return ErrNotMintAuthority
	}
	if err := validateData(env, &args.Data); err != nil {
		return err
	}

	if err := createAccount(env, payer, metadataKey, MetadataSize, withBump(metadataSeeds(mintKey), bump)); err != nil {
		return err
	}

	standard := Fungible
	if mint.Decimals == 0 {
		standard = FungibleAsset
	}
	md := &Metadata{
		Key:             KeyMetadataV1,
		UpdateAuthority: updateAuthority,
		Mint:            mintKey,
		Data:            args.Data,
		IsMutable:       args.IsMutable,
		TokenStandard:   standard,
	}
	acc, err := env.Load(metadataKey)
	if err != nil {
		return err
	}
	if err := layout.EncodeInto(acc.Data, md); err != nil {
		return err
	}
	return env.Store(metadataKey, acc)
}

// createMasterEdition accounts: edition(w), mint(w), updateAuthority(s), mintAuthority(s), payer(ws),
// metadata(w), tokenProgram, systemProgram, [rent]
func createMasterEdition(env *xenv.Environment, maxSupply *uint64) error {
	ks, err := keys(env, 8)
	if err != nil {
		return err
	}
	editionKey, mintKey, updateAuthority, mintAuthority, payer, metadataKey := ks[0], ks[1], ks[2], ks[3], ks[4], ks[5]

	if expected, _, err := MetadataAddress(mintKey); err != nil || expected != metadataKey {
		return ErrInvalidMetadataKey
	}
	expected, bump, err := EditionAddress(mintKey)
	if err != nil {
		return err
	}
	if expected != editionKey {
		return ErrInvalidEditionKey
	}

	mdAcc, err := env.Load(metadataKey)
	if err != nil {
		return err
	}
	if mdAcc.Owner != ProgramID {
		return xenv.ErrIncorrectProgramID
	}
	md, err := DecodeMetadata(mdAcc.Data)
	if err != nil {
		return err
	}
	if md.Mint != mintKey {
		return ErrMintMismatch
	}
	if md.UpdateAuthority != updateAuthority {
		return ErrUpdateAuthorityIncorrect
	}
	if !env.IsSigner(updateAuthority) {
		return ErrUpdateAuthorityIsNotSigner
	}

	mintAcc, err := env.Load(mintKey)
	if err != nil {
		return err
	}
	mint, err := token.DecodeMint(mintAcc.Data)
	if err != nil || mintAcc.Owner != token.ProgramID {
		return token.ErrInvalidMint
	}
	if mint.MintAuthority == nil || *mint.MintAuthority != mintAuthority || !env.IsSigner(mintAuthority) {
		return ErrNotMintAuthority
	}
	if mint.Supply != 1 || mint.Decimals != 0 {
		return ErrEditionsMustHaveExactlyOneToken
	}

	if err := createAccount(env, payer, editionKey, MasterEditionSize, withBump(editionSeeds(mintKey), bump)); err != nil {
		return err
	}
	edAcc, err := env.Load(editionKey)
	if err != nil {
		return err
	}
	if err := layout.EncodeInto(edAcc.Data, &MasterEdition{Key: KeyMasterEditionV2, MaxSupply: maxSupply}); err != nil {
		return err
	}
	if err := env.Store(editionKey, edAcc); err != nil {
		return err
	}

	// the edition becomes mint and freeze authority of the mint
	if err := env.Invoke(token.SetAuthority(mintKey, mintAuthority, token.AuthorityMintTokens, &editionKey)); err != nil {
		return err
	}
	if mint.FreezeAuthority != nil {
		if err := env.Invoke(token.SetAuthority(mintKey, *mint.FreezeAuthority, token.AuthorityFreezeAccount, &editionKey)); err != nil {
			return err
		}
	}

	md.TokenStandard = NonFungible
	if err := layout.EncodeInto(mdAcc.Data, md); err != nil {
		return err
	}
	return env.Store(metadataKey, mdAcc)
}

// toggleDelegatedFreeze accounts: delegate(s), tokenAccount(w), edition, mint, tokenProgram
func toggleDelegatedFreeze(env *xenv.Environment, freeze bool) error {
	ks, err := keys(env, 5)
	if err != nil {
		return err
	}
	delegate, tokenAccount, editionKey, mintKey := ks[0], ks[1], ks[2], ks[3]

	if !env.IsSigner(delegate) {
		return errors.WithMessagef(xenv.ErrMissingRequiredSignature, "%v", delegate)
	}
	expected, bump, err := EditionAddress(mintKey)
	if err != nil {
		return err
	}
	if expected != editionKey {
		return ErrInvalidEditionKey
	}

	acc, err := env.Load(tokenAccount)
	if err != nil {
		return err
	}
	ta, err := token.DecodeAccount(acc.Data)
	if err != nil || acc.Owner != token.ProgramID {
		return xenv.ErrInvalidAccountData
	}
	if ta.Mint != mintKey {
		return ErrMintMismatch
	}
	if ta.Delegate == nil || *ta.Delegate != delegate {
		return ErrInvalidDelegate
	}

	signer := withBump(editionSeeds(mintKey), bump)
	if freeze {
		return env.Invoke(token.FreezeAccount(tokenAccount, mintKey, editionKey), signer)
	}
	return env.Invoke(token.ThawAccount(tokenAccount, mintKey, editionKey), signer)
}
