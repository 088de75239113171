// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package layout holds the binary helpers shared by the account and instruction layouts of the native programs.
package layout

import (
	"bytes"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
)

// ErrInvalidData is returned when account or instruction data is malformed.
var ErrInvalidData = errors.New("invalid account data for instruction")

// Marshaler is implemented by fixed layouts.
type Marshaler interface {
	MarshalWithEncoder(encoder *bin.Encoder) error
}

// Unmarshaler is implemented by fixed layouts.
type Unmarshaler interface {
	UnmarshalWithDecoder(decoder *bin.Decoder) error
}

// Encode serializes v.
func Encode(v Marshaler) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := v.MarshalWithEncoder(bin.NewBinEncoder(buf)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeInto serializes v into dst, which must be large enough.
func EncodeInto(dst []byte, v Marshaler) error {
	data, err := Encode(v)
	if err != nil {
		return err
	}
	if len(data) > len(dst) {
		return errors.WithMessagef(ErrInvalidData, "layout of %d bytes exceeds %d", len(data), len(dst))
	}
	copy(dst, data)
	return nil
}

// Decode deserializes data into v.
func Decode(data []byte, v Unmarshaler) error {
	if err := v.UnmarshalWithDecoder(bin.NewBinDecoder(data)); err != nil {
		return errors.Wrap(ErrInvalidData, err.Error())
	}
	return nil
}

// WriteKey writes a public key.
func WriteKey(enc *bin.Encoder, key solana.PublicKey) error {
	return enc.WriteBytes(key[:], false)
}

// ReadKey reads a public key.
func ReadKey(dec *bin.Decoder) (solana.PublicKey, error) {
	b, err := dec.ReadBytes(solana.PublicKeyLength)
	if err != nil {
		return solana.PublicKey{}, err
	}
	return solana.PublicKeyFromBytes(b), nil
}

// WriteCOptionKey writes a C-style optional key: a u32 tag followed by 32 bytes, zeroed when absent.
func WriteCOptionKey(enc *bin.Encoder, key *solana.PublicKey) error {
	var (
		tag uint32
		val solana.PublicKey
	)
	if key != nil {
		tag, val = 1, *key
	}
	if err := enc.WriteUint32(tag, bin.LE); err != nil {
		return err
	}
	return WriteKey(enc, val)
}

// ReadCOptionKey reads a C-style optional key.
func ReadCOptionKey(dec *bin.Decoder) (*solana.PublicKey, error) {
	tag, err := dec.ReadUint32(bin.LE)
	if err != nil {
		return nil, err
	}
	key, err := ReadKey(dec)
	if err != nil {
		return nil, err
	}
	switch tag {
	case 0:
		return nil, nil
	case 1:
		return &key, nil
	default:
		return nil, errors.Errorf("invalid option tag %d", tag)
	}
}

// WriteCOptionU64 writes a C-style optional u64.
func WriteCOptionU64(enc *bin.Encoder, v *uint64) error {
	var (
		tag uint32
		val uint64
	)
	if v != nil {
		tag, val = 1, *v
	}
	if err := enc.WriteUint32(tag, bin.LE); err != nil {
		return err
	}
	return enc.WriteUint64(val, bin.LE)
}

// ReadCOptionU64 reads a C-style optional u64.
func ReadCOptionU64(dec *bin.Decoder) (*uint64, error) {
	tag, err := dec.ReadUint32(bin.LE)
	if err != nil {
		return nil, err
	}
	val, err := dec.ReadUint64(bin.LE)
	if err != nil {
		return nil, err
	}
	switch tag {
	case 0:
		return nil, nil
	case 1:
		return &val, nil
	default:
		return nil, errors.Errorf("invalid option tag %d", tag)
	}
}

// WriteOptionKey writes a borsh optional key: a u8 tag followed by the key when present.
func WriteOptionKey(enc *bin.Encoder, key *solana.PublicKey) error {
	if key == nil {
		return enc.WriteByte(0)
	}
	if err := enc.WriteByte(1); err != nil {
		return err
	}
	return WriteKey(enc, *key)
}

// ReadOptionKey reads a borsh optional key.
func ReadOptionKey(dec *bin.Decoder) (*solana.PublicKey, error) {
	tag, err := dec.ReadByte()
	if err != nil {
		return nil, err
	}
	switch tag {
	case 0:
		return nil, nil
	case 1:
		key, err := ReadKey(dec)
		if err != nil {
			return nil, err
		}
		return &key, nil
	default:
		return nil, errors.Errorf("invalid option tag %d", tag)
	}
}

// WriteOptionU64 writes a borsh optional u64.
func WriteOptionU64(enc *bin.Encoder, v *uint64) error {
	if v == nil {
		return enc.WriteByte(0)
	}
	if err := enc.WriteByte(1); err != nil {
		return err
	}
	return enc.WriteUint64(*v, bin.LE)
}

// ReadOptionU64 reads a borsh optional u64.
func ReadOptionU64(dec *bin.Decoder) (*uint64, error) {
	tag, err := dec.ReadByte()
	if err != nil {
		return nil, err
	}
	switch tag {
	case 0:
		return nil, nil
	case 1:
		v, err := dec.ReadUint64(bin.LE)
		if err != nil {
			return nil, err
		}
		return &v, nil
	default:
		return nil, errors.Errorf("invalid option tag %d", tag)
	}
}

// WriteString writes a borsh string, u32 length prefixed.
func WriteString(enc *bin.Encoder, s string) error {
	if err := enc.WriteUint32(uint32(len(s)), bin.LE); err != nil {
		return err
	}
	return enc.WriteBytes([]byte(s), false)
}

// ReadString reads a borsh string.
func ReadString(dec *bin.Decoder) (string, error) {
	n, err := dec.ReadUint32(bin.LE)
	if err != nil {
		return "", err
	}
	if int(n) > dec.Remaining() {
		return "", errors.Errorf("string length %d exceeds remaining %d", n, dec.Remaining())
	}
	b, err := dec.ReadBytes(int(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}
