// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metadata

import (
	"strings"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"

	"github.com/vechain/nftstake/builtin/layout"
)

// Limits and sizes of the metadata accounts.
const (
	MaxNameLength     = 32
	MaxSymbolLength   = 10
	MaxURILength      = 200
	MaxCreatorLimit   = 5
	MetadataSize      = 679
	MasterEditionSize = 282
)

// Key tags the kind of a metadata program account.
type Key uint8

const (
	KeyUninitialized   Key = 0
	KeyMasterEditionV2 Key = 6
	KeyMetadataV1      Key = 4
)

// TokenStandard classifies the mint a metadata account describes.
type TokenStandard uint8

const (
	NonFungible TokenStandard = iota
	FungibleAsset
	Fungible
)

// Creator is a royalty recipient of an asset.
type Creator struct {
	Address  solana.PublicKey
	Verified bool
	Share    uint8
}

func (c *Creator) MarshalWithEncoder(enc *bin.Encoder) error {
	if err := layout.WriteKey(enc, c.Address); err != nil {
		return err
	}
	if err := enc.WriteBool(c.Verified); err != nil {
		return err
	}
	return enc.WriteByte(c.Share)
}

func (c *Creator) UnmarshalWithDecoder(dec *bin.Decoder) (err error) {
	if c.Address, err = layout.ReadKey(dec); err != nil {
		return err
	}
	if c.Verified, err = dec.ReadBool(); err != nil {
		return err
	}
	c.Share, err = dec.ReadByte()
	return err
}

// Data is the display data of an asset.
type Data struct {
	Name                 string
	Symbol               string
	URI                  string
	SellerFeeBasisPoints uint16
	Creators             []Creator // nil when absent
}

func (d *Data) MarshalWithEncoder(enc *bin.Encoder) error {
	for _, s := range []string{d.Name, d.Symbol, d.URI} {
		if err := layout.WriteString(enc, s); err != nil {
			return err
		}
	}
	if err := enc.WriteUint16(d.SellerFeeBasisPoints, bin.LE); err != nil {
		return err
	}
	if d.Creators == nil {
		return enc.WriteByte(0)
	}
	if err := enc.WriteByte(1); err != nil {
		return err
	}
	if err := enc.WriteUint32(uint32(len(d.Creators)), bin.LE); err != nil {
		return err
	}
	for i := range d.Creators {
		if err := d.Creators[i].MarshalWithEncoder(enc); err != nil {
			return err
		}
	}
	return nil
}

func (d *Data) UnmarshalWithDecoder(dec *bin.Decoder) (err error) {
	if d.Name, err = layout.ReadString(dec); err != nil {
		return err
	}
	if d.Symbol, err = layout.ReadString(dec); err != nil {
		return err
	}
	if d.URI, err = layout.ReadString(dec); err != nil {
		return err
	}
	if d.SellerFeeBasisPoints, err = dec.ReadUint16(bin.LE); err != nil {
		return err
	}
	tag, err := dec.ReadByte()
	if err != nil {
		return err
	}
	if tag == 0 {
		d.Creators = nil
		return nil
	}
	n, err := dec.ReadUint32(bin.LE)
	if err != nil {
		return err
	}
	if n > MaxCreatorLimit {
		return errors.Errorf("too many creators %d", n)
	}
	d.Creators = make([]Creator, n)
	for i := range d.Creators {
		if err := d.Creators[i].UnmarshalWithDecoder(dec); err != nil {
			return err
		}
	}
	return nil
}

// Metadata is the layout of a metadata account. Strings are stored padded with
// zero bytes to their maximum length.
type Metadata struct {
	Key                 Key
	UpdateAuthority     solana.PublicKey
	Mint                solana.PublicKey
	Data                Data
	PrimarySaleHappened bool
	IsMutable           bool
	TokenStandard       TokenStandard
}

func pad(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return s + strings.Repeat("\x00", n-len(s))
}

func trim(s string) string {
	return strings.TrimRight(s, "\x00")
}

func (m *Metadata) MarshalWithEncoder(enc *bin.Encoder) error {
	if err := enc.WriteByte(byte(m.Key)); err != nil {
		return err
	}
	if err := layout.WriteKey(enc, m.UpdateAuthority); err != nil {
		return err
	}
	if err := layout.WriteKey(enc, m.Mint); err != nil {
		return err
	}
	padded := m.Data
	padded.Name = pad(padded.Name, MaxNameLength)
	padded.Symbol = pad(padded.Symbol, MaxSymbolLength)
	padded.URI = pad(padded.URI, MaxURILength)
	if err := padded.MarshalWithEncoder(enc); err != nil {
		return err
	}
	if err := enc.WriteBool(m.PrimarySaleHappened); err != nil {
		return err
	}
	if err := enc.WriteBool(m.IsMutable); err != nil {
		return err
	}
	return enc.WriteByte(byte(m.TokenStandard))
}

func (m *Metadata) UnmarshalWithDecoder(dec *bin.Decoder) (err error) {
	key, err := dec.ReadByte()
	if err != nil {
		return err
	}
	m.Key = Key(key)
	if m.UpdateAuthority, err = layout.ReadKey(dec); err != nil {
		return err
	}
	if m.Mint, err = layout.ReadKey(dec); err != nil {
		return err
	}
	if err := m.Data.UnmarshalWithDecoder(dec); err != nil {
		return err
	}
	m.Data.Name = trim(m.Data.Name)
	m.Data.Symbol = trim(m.Data.Symbol)
	m.Data.URI = trim(m.Data.URI)
	if m.PrimarySaleHappened, err = dec.ReadBool(); err != nil {
		return err
	}
	if m.IsMutable, err = dec.ReadBool(); err != nil {
		return err
	}
	standard, err := dec.ReadByte()
	m.TokenStandard = TokenStandard(standard)
	return err
}

// MasterEdition is the layout of a master edition account.
type MasterEdition struct {
	Key       Key
	Supply    uint64
	MaxSupply *uint64
}

func (e *MasterEdition) MarshalWithEncoder(enc *bin.Encoder) error {
	if err := enc.WriteByte(byte(e.Key)); err != nil {
		return err
	}
	if err := enc.WriteUint64(e.Supply, bin.LE); err != nil {
		return err
	}
	return layout.WriteOptionU64(enc, e.MaxSupply)
}

func (e *MasterEdition) UnmarshalWithDecoder(dec *bin.Decoder) (err error) {
	key, err := dec.ReadByte()
	if err != nil {
		return err
	}
	e.Key = Key(key)
	if e.Supply, err = dec.ReadUint64(bin.LE); err != nil {
		return err
	}
	e.MaxSupply, err = layout.ReadOptionU64(dec)
	return err
}

// DecodeMetadata decodes a metadata account.
func DecodeMetadata(data []byte) (*Metadata, error) {
	var m Metadata
	if err := layout.Decode(data, &m); err != nil {
		return nil, err
	}
	if m.Key != KeyMetadataV1 {
		return nil, ErrUninitialized
	}
	return &m, nil
}

// DecodeMasterEdition decodes a master edition account.
func DecodeMasterEdition(data []byte) (*MasterEdition, error) {
	var e MasterEdition
	if err := layout.Decode(data, &e); err != nil {
		return nil, err
	}
	if e.Key != KeyMasterEditionV2 {
		return nil, ErrUninitialized
	}
	return &e, nil
}
