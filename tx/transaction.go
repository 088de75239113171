// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"

	"github.com/vechain/nftstake/ledger"
)

var (
	ErrUnsigned          = errors.New("transaction not signed")
	ErrSignatureMismatch = errors.New("signature count mismatch")
	ErrInvalidSignature  = errors.New("invalid signature")
	ErrTooManyIxs        = errors.New("too many instructions")
	ErrTooManyAccounts   = errors.New("too many accounts in instruction")
	ErrNoInstructions    = errors.New("no instructions")
)

// Transaction is an immutable tx type.
type Transaction struct {
	body       body
	signatures []solana.Signature

	cache struct {
		signingHash *ledger.Bytes32
		signers     []solana.PublicKey
	}
}

// body describes details of a tx.
type body struct {
	FeePayer        solana.PublicKey
	RecentBlockhash ledger.Bytes32
	Instructions    []*Instruction
	Nonce           uint64
}

// FeePayer returns the account charged for the fee. It is always the first signer.
func (t *Transaction) FeePayer() solana.PublicKey {
	return t.body.FeePayer
}

// RecentBlockhash returns the blockhash the transaction was built against.
func (t *Transaction) RecentBlockhash() ledger.Bytes32 {
	return t.body.RecentBlockhash
}

// Nonce returns nonce.
func (t *Transaction) Nonce() uint64 {
	return t.body.Nonce
}

// Instructions returns copies of the instructions.
func (t *Transaction) Instructions() []*Instruction {
	ixs := make([]*Instruction, len(t.body.Instructions))
	for i, ix := range t.body.Instructions {
		ixs[i] = ix.Copy()
	}
	return ixs
}

// SigningHash returns hash of tx excludes signatures.
func (t *Transaction) SigningHash() ledger.Bytes32 {
	if cached := t.cache.signingHash; cached != nil {
		return *cached
	}
	h := ledger.Blake2bFn(func(w io.Writer) {
		rlp.Encode(w, &t.body)
	})
	t.cache.signingHash = &h
	return h
}

// Signers returns the keys required to sign: the fee payer followed by every
// other signer key in order of appearance.
func (t *Transaction) Signers() []solana.PublicKey {
	if t.cache.signers != nil {
		return t.cache.signers
	}
	signers := []solana.PublicKey{t.body.FeePayer}
	seen := map[solana.PublicKey]bool{t.body.FeePayer: true}
	for _, ix := range t.body.Instructions {
		for _, m := range ix.Metas {
			if m.IsSigner && !seen[m.PublicKey] {
				seen[m.PublicKey] = true
				signers = append(signers, m.PublicKey)
			}
		}
	}
	t.cache.signers = signers
	return signers
}

// IsSigner returns whether key is one of the signers.
func (t *Transaction) IsSigner(key solana.PublicKey) bool {
	for _, s := range t.Signers() {
		if s == key {
			return true
		}
	}
	return false
}

// AccountMetas returns the merged privileges of every account referenced by the
// transaction. The fee payer comes first and is a writable signer.
func (t *Transaction) AccountMetas() []*solana.AccountMeta {
	index := make(map[solana.PublicKey]*solana.AccountMeta)
	metas := []*solana.AccountMeta{solana.NewAccountMeta(t.body.FeePayer, true, true)}
	index[t.body.FeePayer] = metas[0]

	merge := func(m *solana.AccountMeta) {
		if existing, ok := index[m.PublicKey]; ok {
			existing.IsSigner = existing.IsSigner || m.IsSigner
			existing.IsWritable = existing.IsWritable || m.IsWritable
			return
		}
		cpy := *m
		index[m.PublicKey] = &cpy
		metas = append(metas, &cpy)
	}
	for _, ix := range t.body.Instructions {
		for _, m := range ix.Metas {
			merge(m)
		}
		merge(solana.NewAccountMeta(ix.Program, false, false))
	}
	return metas
}

// Signatures returns the signatures in signer order.
func (t *Transaction) Signatures() []solana.Signature {
	return append([]solana.Signature(nil), t.signatures...)
}

// ID returns the first signature, which identifies the transaction.
func (t *Transaction) ID() solana.Signature {
	if len(t.signatures) == 0 {
		return solana.Signature{}
	}
	return t.signatures[0]
}

// Fee returns the fee charged for the transaction.
func (t *Transaction) Fee(lamportsPerSignature uint64) uint64 {
	return uint64(len(t.Signers())) * lamportsPerSignature
}

// WithSignatures create a new tx with signatures set.
func (t *Transaction) WithSignatures(sigs ...solana.Signature) *Transaction {
	newTx := Transaction{body: t.body}
	newTx.signatures = append([]solana.Signature(nil), sigs...)
	return &newTx
}

// Sign signs the transaction with the given keys, which must cover every signer.
// Extra keys are ignored.
func (t *Transaction) Sign(keys ...solana.PrivateKey) (*Transaction, error) {
	byPub := make(map[solana.PublicKey]solana.PrivateKey, len(keys))
	for _, k := range keys {
		byPub[k.PublicKey()] = k
	}

	hash := t.SigningHash()
	signers := t.Signers()
	sigs := make([]solana.Signature, 0, len(signers))
	for _, s := range signers {
		key, ok := byPub[s]
		if !ok {
			return nil, errors.Errorf("missing key for signer %v", s)
		}
		sig, err := key.Sign(hash[:])
		if err != nil {
			return nil, errors.Wrap(err, "sign")
		}
		sigs = append(sigs, sig)
	}
	return t.WithSignatures(sigs...), nil
}

// Validate checks the transaction shape against the ledger limits.
func (t *Transaction) Validate() error {
	if len(t.body.Instructions) == 0 {
		return ErrNoInstructions
	}
	if len(t.body.Instructions) > ledger.MaxInstructionsPerTx {
		return ErrTooManyIxs
	}
	for _, ix := range t.body.Instructions {
		if len(ix.Metas) > ledger.MaxAccountsPerIx {
			return ErrTooManyAccounts
		}
	}
	return nil
}

// Verify checks every signature against its signer.
func (t *Transaction) Verify() error {
	if len(t.signatures) == 0 {
		return ErrUnsigned
	}
	signers := t.Signers()
	if len(signers) != len(t.signatures) {
		return ErrSignatureMismatch
	}
	hash := t.SigningHash()
	for i, s := range signers {
		if !t.signatures[i].Verify(s, hash[:]) {
			return errors.WithMessagef(ErrInvalidSignature, "signer %v", s)
		}
	}
	return nil
}

// EncodeRLP implements rlp.Encoder
func (t *Transaction) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, []any{&t.body, t.signatures})
}

// DecodeRLP implements rlp.Decoder
func (t *Transaction) DecodeRLP(s *rlp.Stream) error {
	var payload struct {
		Body       body
		Signatures []solana.Signature
	}
	if err := s.Decode(&payload); err != nil {
		return err
	}
	*t = Transaction{
		body:       payload.Body,
		signatures: payload.Signatures,
	}
	return nil
}

// MarshalBinary implements encoding.BinaryMarshaler
func (t *Transaction) MarshalBinary() ([]byte, error) {
	return rlp.EncodeToBytes(t)
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler
func (t *Transaction) UnmarshalBinary(data []byte) error {
	return rlp.DecodeBytes(data, t)
}

func (t *Transaction) String() string {
	return fmt.Sprintf(`Tx(%v)
	FeePayer:        %v
	RecentBlockhash: %v
	Instructions:    %d
	Signers:         %d
	Nonce:           %v`,
		t.ID(), t.body.FeePayer, t.body.RecentBlockhash, len(t.body.Instructions), len(t.Signers()), t.body.Nonce)
}
