// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"bytes"

	bin "github.com/gagliardetto/binary"
)

// AccountStorageOverhead is the number of bytes charged for an account on top of its data.
const AccountStorageOverhead uint64 = 128

// Rent is the rent sysvar.
type Rent struct {
	LamportsPerByteYear uint64
	ExemptionThreshold  float64
	BurnPercent         uint8
}

// DefaultRent returns rent parameters of a default cluster.
func DefaultRent() Rent {
	return Rent{
		LamportsPerByteYear: 3480,
		ExemptionThreshold:  2.0,
		BurnPercent:         50,
	}
}

// MinimumBalance returns the lamports an account holding dataLen bytes must keep to be rent exempt.
func (r Rent) MinimumBalance(dataLen uint64) uint64 {
	return uint64(float64((AccountStorageOverhead+dataLen)*r.LamportsPerByteYear) * r.ExemptionThreshold)
}

// IsExempt tells whether the balance covers the exemption threshold of dataLen bytes.
func (r Rent) IsExempt(lamports uint64, dataLen uint64) bool {
	return lamports >= r.MinimumBalance(dataLen)
}

func (r *Rent) MarshalWithEncoder(encoder *bin.Encoder) error {
	if err := encoder.WriteUint64(r.LamportsPerByteYear, bin.LE); err != nil {
		return err
	}
	if err := encoder.WriteFloat64(r.ExemptionThreshold, bin.LE); err != nil {
		return err
	}
	return encoder.WriteByte(r.BurnPercent)
}

func (r *Rent) UnmarshalWithDecoder(decoder *bin.Decoder) (err error) {
	if r.LamportsPerByteYear, err = decoder.ReadUint64(bin.LE); err != nil {
		return err
	}
	if r.ExemptionThreshold, err = decoder.ReadFloat64(bin.LE); err != nil {
		return err
	}
	r.BurnPercent, err = decoder.ReadByte()
	return err
}

// Encode returns the sysvar account data.
func (r Rent) Encode() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := r.MarshalWithEncoder(bin.NewBinEncoder(buf)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
