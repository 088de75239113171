// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"errors"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"

	"github.com/vechain/nftstake/builtin/layout"
)

// RecordSize is the data length of a stake record account.
const RecordSize = 8 + 32 + 32 + 8 + 8 + 1

// RecordDiscriminator prefixes the data of every stake record.
var RecordDiscriminator = bin.SighashTypeID("account", "NFTRecord")

var errBadDiscriminator = errors.New("stake record discriminator mismatch")

// Record is the bookkeeping of one staking session of owner over mint.
type Record struct {
	Owner        solana.PublicKey
	Mint         solana.PublicKey
	StakedAt     int64
	LastRewardAt int64
	Bump         uint8
}

func (r *Record) MarshalWithEncoder(enc *bin.Encoder) error {
	if err := enc.WriteBytes(RecordDiscriminator[:], false); err != nil {
		return err
	}
	if err := layout.WriteKey(enc, r.Owner); err != nil {
		return err
	}
	if err := layout.WriteKey(enc, r.Mint); err != nil {
		return err
	}
	if err := enc.WriteInt64(r.StakedAt, bin.LE); err != nil {
		return err
	}
	if err := enc.WriteInt64(r.LastRewardAt, bin.LE); err != nil {
		return err
	}
	return enc.WriteUint8(r.Bump)
}

func (r *Record) UnmarshalWithDecoder(dec *bin.Decoder) (err error) {
	disc, err := dec.ReadBytes(8)
	if err != nil {
		return err
	}
	if bin.TypeIDFromBytes(disc) != RecordDiscriminator {
		return errBadDiscriminator
	}
	if r.Owner, err = layout.ReadKey(dec); err != nil {
		return err
	}
	if r.Mint, err = layout.ReadKey(dec); err != nil {
		return err
	}
	if r.StakedAt, err = dec.ReadInt64(bin.LE); err != nil {
		return err
	}
	if r.LastRewardAt, err = dec.ReadInt64(bin.LE); err != nil {
		return err
	}
	r.Bump, err = dec.ReadUint8()
	return err
}

// DecodeRecord decodes the data of a stake record account.
func DecodeRecord(data []byte) (*Record, error) {
	if len(data) != RecordSize {
		return nil, layout.ErrInvalidData
	}
	var r Record
	if err := layout.Decode(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}
